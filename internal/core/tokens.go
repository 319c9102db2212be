package core

import "unicode/utf8"

const DefaultCharsPerToken = 4

// Estimator approximates how many model tokens a text costs.
type Estimator interface {
	Estimate(text string) int
}

// CharEstimator counts one token per CharsPerToken characters, rounding down.
type CharEstimator struct {
	CharsPerToken int
}

func (e CharEstimator) Estimate(text string) int {
	perToken := e.CharsPerToken
	if perToken <= 0 {
		perToken = DefaultCharsPerToken
	}
	return utf8.RuneCountInString(text) / perToken
}

var DefaultEstimator Estimator = CharEstimator{CharsPerToken: DefaultCharsPerToken}

// EstimateTokens is the default estimate: characters divided by four.
func EstimateTokens(text string) int {
	return DefaultEstimator.Estimate(text)
}
