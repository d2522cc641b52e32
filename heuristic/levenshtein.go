package heuristic

import (
	"context"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/datar-psa/evalreport/api"
)

// LevenshteinRatioOptions configures the LevenshteinRatio scorer
type LevenshteinRatioOptions struct {
	// CaseInsensitive determines if the comparison should ignore case
	CaseInsensitive bool
	// TrimWhitespace determines if leading and trailing whitespace should be trimmed
	TrimWhitespace bool
}

// LevenshteinRatio returns a scorer that measures edit-distance similarity between
// the output and the expected value: 1 - distance / max(len(output), len(expected)).
// Lengths are counted in runes.
func LevenshteinRatio(opts LevenshteinRatioOptions) api.Scorer {
	return &levenshteinScorer{opts: opts}
}

type levenshteinScorer struct {
	opts LevenshteinRatioOptions
}

func (s *levenshteinScorer) Score(ctx context.Context, in api.ScoreInputs) api.Score {
	result := api.Score{
		Name:     "LevenshteinRatio",
		Metadata: make(map[string]any),
	}

	if in.Expected == "" {
		result.Error = api.ErrNoExpectedValue
		return result
	}

	output := normalize(in.Output, s.opts.TrimWhitespace, s.opts.CaseInsensitive)
	expected := normalize(in.Expected, s.opts.TrimWhitespace, s.opts.CaseInsensitive)

	longest := max(utf8.RuneCountInString(output), utf8.RuneCountInString(expected))
	if longest == 0 {
		result.Score = 1.0
		result.Metadata["distance"] = 0
		return result
	}

	distance := levenshtein.ComputeDistance(output, expected)
	result.Score = 1.0 - float64(distance)/float64(longest)
	result.Metadata["distance"] = distance

	return result
}
