package heuristic

import (
	"context"
	"strings"

	"github.com/datar-psa/evalreport/api"
)

// ContainsOptions configures the Contains scorer
type ContainsOptions struct {
	// CaseInsensitive determines if the search should ignore case
	CaseInsensitive bool
}

// Contains returns a scorer that checks whether the output contains the expected value
func Contains(opts ContainsOptions) api.Scorer {
	return &containsScorer{opts: opts}
}

type containsScorer struct {
	opts ContainsOptions
}

func (s *containsScorer) Score(ctx context.Context, in api.ScoreInputs) api.Score {
	result := api.Score{
		Name:     "Contains",
		Metadata: make(map[string]any),
	}

	if in.Expected == "" {
		result.Error = api.ErrNoExpectedValue
		return result
	}

	output := normalize(in.Output, false, s.opts.CaseInsensitive)
	expected := normalize(in.Expected, false, s.opts.CaseInsensitive)

	if strings.Contains(output, expected) {
		result.Score = 1.0
	}
	result.Metadata["case_insensitive"] = s.opts.CaseInsensitive

	return result
}
