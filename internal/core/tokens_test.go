package core

import (
	"strings"
	"testing"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "under one token", text: "abc", want: 0},
		{name: "exact", text: "abcdefgh", want: 2},
		{name: "floors", text: "abcdefghij", want: 2},
		{name: "counts runes not bytes", text: strings.Repeat("ñ", 8), want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateTokens(tt.text); got != tt.want {
				t.Errorf("EstimateTokens(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestCharEstimator(t *testing.T) {
	if got := (CharEstimator{CharsPerToken: 2}).Estimate("abcdef"); got != 3 {
		t.Errorf("expected 3 tokens, got %d", got)
	}
	if got := (CharEstimator{}).Estimate("abcdefgh"); got != 2 {
		t.Errorf("zero ratio should fall back to the default, got %d", got)
	}
}
