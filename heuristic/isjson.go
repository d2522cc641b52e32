package heuristic

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/datar-psa/evalreport/api"
)

// IsJSON returns a scorer that checks whether the output is a valid JSON document
func IsJSON() api.Scorer {
	return isJSONScorer{}
}

type isJSONScorer struct{}

func (isJSONScorer) Score(ctx context.Context, in api.ScoreInputs) api.Score {
	result := api.Score{
		Name:     "IsJSON",
		Metadata: make(map[string]any),
	}

	output := strings.TrimSpace(in.Output)
	if output != "" && json.Valid([]byte(output)) {
		result.Score = 1.0
	}

	return result
}
