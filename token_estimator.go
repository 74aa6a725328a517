package slidegen

import (
	"math"
	"unicode/utf8"
)

const (
	charsPerToken         = 4.0
	messageOverheadTokens = 3
)

// TokenEstimator estimates the prompt cost of a message for rate limiting.
type TokenEstimator interface {
	EstimateTokens(text string) int
}

// SimpleTokenEstimator approximates one token per four runes, padded by
// SafetyMargin. Turkish text has many multi-byte runes, so bytes would
// overestimate badly.
type SimpleTokenEstimator struct {
	SafetyMargin float64
}

func NewSimpleTokenEstimator() *SimpleTokenEstimator {
	return &SimpleTokenEstimator{SafetyMargin: 1.2}
}

func (e *SimpleTokenEstimator) EstimateTokens(text string) int {
	runes := utf8.RuneCountInString(text)
	if runes == 0 {
		return 0
	}

	margin := e.SafetyMargin
	if margin <= 0 {
		margin = 1
	}
	return int(math.Ceil(float64(runes)/charsPerToken*margin)) + messageOverheadTokens
}
