package collector

import (
	"context"
	"fmt"

	"github.com/datar-psa/evalreport/api"
)

// OpikNames maps scorer names to the metric names Opik reports them under.
var OpikNames = map[string]string{
	"ExactMatch":       "Equals",
	"Contains":         "Contains",
	"RegexMatch":       "RegexMatch",
	"IsJSON":           "IsJson",
	"LevenshteinRatio": "LevenshteinRatio",
	"Moderation":       "Moderation",
	"Hallucination":    "Hallucination",
	"AnswerRelevancy":  "AnswerRelevance",
}

// DeepEvalNames maps scorer names to the metric names DeepEval reports them under.
var DeepEvalNames = map[string]string{
	"AnswerRelevancy":     "AnswerRelevancyMetric",
	"Hallucination":       "HallucinationMetric",
	"ContextualRelevancy": "ContextualRelevancyMetric",
	"Factuality":          "GEval",
	"Moderation":          "ToxicityMetric",
}

// safetyScores are scorers that report 1 for safe content. Both providers read
// their moderation metrics the other way round, 0 safe and 1 harmful.
var safetyScores = map[string]bool{
	"Moderation": true,
}

// vocabularies holds the name tables known per provider
var vocabularies = map[string]map[string]string{
	"opik":     OpikNames,
	"deepeval": DeepEvalNames,
}

// Named wraps scorer so its results are reported under name.
func Named(name string, scorer api.Scorer) api.Scorer {
	return &renamingScorer{scorer: scorer, convert: func(result api.Score) api.Score {
		result.Name = name
		return result
	}}
}

// ForProvider wraps every scorer so results use the metric vocabulary of provider.
// Names without an entry in the provider's table, and unknown providers, are left unchanged.
// Safety scores are flipped to the provider's direction (1 - score).
func ForProvider(provider string, scorers []api.Scorer) []api.Scorer {
	names, ok := vocabularies[provider]
	if !ok {
		return scorers
	}

	out := make([]api.Scorer, 0, len(scorers))
	for _, s := range scorers {
		out = append(out, &renamingScorer{scorer: s, convert: func(result api.Score) api.Score {
			if result.Error == nil && safetyScores[result.Name] {
				result.Score = 1 - result.Score
			}
			if mapped, ok := names[result.Name]; ok {
				result.Name = mapped
			}
			return result
		}})
	}
	return out
}

type renamingScorer struct {
	scorer  api.Scorer
	convert func(api.Score) api.Score
}

func (s *renamingScorer) Score(ctx context.Context, in api.ScoreInputs) api.Score {
	if s.scorer == nil {
		return api.Score{Error: fmt.Errorf("scorer is nil")}
	}
	return s.convert(s.scorer.Score(ctx, in))
}
