package heuristic

import (
	"context"
	"strings"

	"github.com/datar-psa/evalreport/api"
)

// ExactMatchOptions configures the ExactMatch scorer
type ExactMatchOptions struct {
	// CaseInsensitive determines if the comparison should ignore case
	CaseInsensitive bool
	// TrimWhitespace determines if leading and trailing whitespace should be trimmed
	TrimWhitespace bool
}

// ExactMatch returns a scorer that checks if the output exactly matches the expected value
func ExactMatch(opts ExactMatchOptions) api.Scorer {
	return &exactMatchScorer{opts: opts}
}

type exactMatchScorer struct {
	opts ExactMatchOptions
}

func (s *exactMatchScorer) Score(ctx context.Context, in api.ScoreInputs) api.Score {
	result := api.Score{
		Name:     "ExactMatch",
		Metadata: make(map[string]any),
	}

	if in.Expected == "" {
		result.Error = api.ErrNoExpectedValue
		result.Score = 0
		return result
	}

	output, expected := normalize(in.Output, s.opts.TrimWhitespace, s.opts.CaseInsensitive),
		normalize(in.Expected, s.opts.TrimWhitespace, s.opts.CaseInsensitive)

	if output == expected {
		result.Score = 1.0
	} else {
		result.Score = 0.0
	}

	result.Metadata["case_insensitive"] = s.opts.CaseInsensitive
	result.Metadata["trim_whitespace"] = s.opts.TrimWhitespace
	result.Metadata["output_length"] = len(in.Output)
	result.Metadata["expected_length"] = len(in.Expected)

	return result
}

func normalize(s string, trim, lower bool) string {
	if trim {
		s = strings.TrimSpace(s)
	}
	if lower {
		s = strings.ToLower(s)
	}
	return s
}
