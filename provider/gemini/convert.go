package gemini

import (
	"strings"

	"google.golang.org/genai"

	"github.com/mhpenta/slidegen"
)

// toEnvelope converts a Gemini response into the provider-neutral envelope.
// A nil response yields an envelope without candidates.
func toEnvelope(resp *genai.GenerateContentResponse) *slidegen.Envelope {
	env := &slidegen.Envelope{}
	if resp == nil {
		return env
	}

	for _, cand := range resp.Candidates {
		if cand == nil {
			continue
		}
		var c slidegen.Candidate
		if cand.Content != nil {
			c.Parts = make([]slidegen.Part, 0, len(cand.Content.Parts))
			for _, p := range cand.Content.Parts {
				c.Parts = append(c.Parts, toPart(p))
			}
		}
		env.Candidates = append(env.Candidates, c)
	}

	if u := resp.UsageMetadata; u != nil {
		env.Usage = &slidegen.UsageMetadata{
			PromptTokens:     int(u.PromptTokenCount),
			CandidatesTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}

	return env
}

func toPart(p *genai.Part) slidegen.Part {
	switch {
	case p == nil:
		return slidegen.Part{Kind: slidegen.PartMalformed}
	case p.Thought:
		return slidegen.Part{Kind: slidegen.PartThought, Text: p.Text}
	case p.InlineData != nil && len(p.InlineData.Data) > 0:
		return slidegen.ImagePart(p.InlineData.Data, p.InlineData.MIMEType)
	case p.Text != "":
		return slidegen.TextPart(p.Text)
	default:
		return slidegen.Part{Kind: slidegen.PartMalformed}
	}
}

// responseParts returns the non-thought parts of the first candidate, which
// is what the model said for this turn.
func responseParts(resp *genai.GenerateContentResponse) []*genai.Part {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return nil
	}

	parts := make([]*genai.Part, 0, len(cand.Content.Parts))
	for _, p := range cand.Content.Parts {
		if p != nil && !p.Thought {
			parts = append(parts, p)
		}
	}
	return parts
}

// modelTurn summarizes model content as a history turn.
func modelTurn(content *genai.Content) slidegen.ConversationTurn {
	turn := slidegen.ConversationTurn{Role: "model"}

	var text strings.Builder
	for _, p := range content.Parts {
		if p == nil || p.Thought {
			continue
		}
		if p.Text != "" {
			text.WriteString(p.Text)
		}
		if p.InlineData != nil && len(p.InlineData.Data) > 0 {
			turn.Images = append(turn.Images, slidegen.Image{
				Data:     p.InlineData.Data,
				MIMEType: p.InlineData.MIMEType,
			})
		}
	}
	turn.Text = text.String()

	return turn
}
