package heuristic

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/datar-psa/evalreport/api"
)

func TestContains(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		opts      ContainsOptions
		output    string
		expected  string
		wantErr   error
		wantScore float64
	}{
		{
			name:      "substring present",
			output:    "The capital of France is Paris.",
			expected:  "Paris",
			wantScore: 1.0,
		},
		{
			name:      "substring absent",
			output:    "The capital of France is Lyon.",
			expected:  "Paris",
			wantScore: 0.0,
		},
		{
			name:      "case sensitive mismatch",
			output:    "the capital is paris",
			expected:  "Paris",
			wantScore: 0.0,
		},
		{
			name:      "case insensitive match",
			opts:      ContainsOptions{CaseInsensitive: true},
			output:    "the capital is paris",
			expected:  "Paris",
			wantScore: 1.0,
		},
		{
			name:    "no expected value",
			output:  "anything",
			wantErr: api.ErrNoExpectedValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Contains(tt.opts).Score(ctx, api.ScoreInputs{Output: tt.output, Expected: tt.expected})

			if result.Error != tt.wantErr {
				t.Errorf("Contains.Score() error = %v, wantErr %v", result.Error, tt.wantErr)
			}
			if result.Score != tt.wantScore {
				t.Errorf("Contains.Score() score = %v, wantScore %v", result.Score, tt.wantScore)
			}
			if result.Name != "Contains" {
				t.Errorf("Contains.Score() name = %v, want 'Contains'", result.Name)
			}
		})
	}
}

func TestRegexMatch(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		pattern   string
		output    string
		wantErr   bool
		wantScore float64
	}{
		{
			name:      "matching date",
			pattern:   `\d{4}-\d{2}-\d{2}`,
			output:    "Departure on 2024-05-01",
			wantScore: 1.0,
		},
		{
			name:      "no match",
			pattern:   `^\d+$`,
			output:    "forty two",
			wantScore: 0.0,
		},
		{
			name:    "invalid pattern",
			pattern: `(unclosed`,
			output:  "anything",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RegexMatch(RegexMatchOptions{Pattern: tt.pattern}).Score(ctx, api.ScoreInputs{Output: tt.output})

			if (result.Error != nil) != tt.wantErr {
				t.Errorf("RegexMatch.Score() error = %v, wantErr %v", result.Error, tt.wantErr)
			}
			if result.Score != tt.wantScore {
				t.Errorf("RegexMatch.Score() score = %v, wantScore %v", result.Score, tt.wantScore)
			}
		})
	}
}

func TestIsJSON(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		output    string
		wantScore float64
	}{
		{name: "object", output: `{"answer": 4}`, wantScore: 1.0},
		{name: "array with whitespace", output: "  [1, 2, 3]\n", wantScore: 1.0},
		{name: "plain text", output: "the answer is 4", wantScore: 0.0},
		{name: "truncated object", output: `{"answer": `, wantScore: 0.0},
		{name: "empty", output: "", wantScore: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsJSON().Score(ctx, api.ScoreInputs{Output: tt.output})

			if result.Error != nil {
				t.Errorf("IsJSON.Score() unexpected error = %v", result.Error)
			}
			if result.Score != tt.wantScore {
				t.Errorf("IsJSON.Score() score = %v, wantScore %v", result.Score, tt.wantScore)
			}
		})
	}
}

func TestLevenshteinRatio(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		opts      LevenshteinRatioOptions
		output    string
		expected  string
		wantErr   error
		wantScore float64
	}{
		{
			name:      "identical",
			output:    "kitten",
			expected:  "kitten",
			wantScore: 1.0,
		},
		{
			name:      "three edits",
			output:    "kitten",
			expected:  "sitting",
			wantScore: 1.0 - 3.0/7.0,
		},
		{
			name:      "case insensitive",
			opts:      LevenshteinRatioOptions{CaseInsensitive: true},
			output:    "PARIS",
			expected:  "paris",
			wantScore: 1.0,
		},
		{
			name:      "multibyte runes",
			output:    "café",
			expected:  "cafe",
			wantScore: 0.75,
		},
		{
			name:      "whitespace only collapses to empty",
			opts:      LevenshteinRatioOptions{TrimWhitespace: true},
			output:    "   ",
			expected:  " ",
			wantScore: 1.0,
		},
		{
			name:    "no expected value",
			output:  "kitten",
			wantErr: api.ErrNoExpectedValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := LevenshteinRatio(tt.opts).Score(ctx, api.ScoreInputs{Output: tt.output, Expected: tt.expected})

			if !errors.Is(result.Error, tt.wantErr) {
				t.Errorf("LevenshteinRatio.Score() error = %v, wantErr %v", result.Error, tt.wantErr)
			}
			if math.Abs(result.Score-tt.wantScore) > 1e-9 {
				t.Errorf("LevenshteinRatio.Score() score = %v, wantScore %v", result.Score, tt.wantScore)
			}
		})
	}
}
