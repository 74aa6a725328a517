package slidegen

// Extract pulls sanitized caption text and at most one image out of a
// response envelope. Text from every candidate is concatenated in order; when
// several images are present the last one wins. Missing structure yields an
// empty Partial. Extract never mutates env.
func Extract(env *Envelope) Partial {
	var p Partial
	if env == nil {
		return p
	}

	for _, candidate := range env.Candidates {
		for _, part := range candidate.Parts {
			switch part.Kind {
			case PartText:
				if cleaned := Sanitize(part.Text); cleaned != "" {
					p.Text += cleaned
				}
			case PartImage:
				if part.Image != nil && len(part.Image.Data) > 0 {
					p.Image = part.Image
				}
			case PartThought, PartMalformed:
				// Not slide content.
			}
		}
	}

	return p
}
