package main

import (
	"fmt"

	"github.com/datar-psa/evalreport"
	"github.com/datar-psa/evalreport/api"
)

// backends are the services LLM, embedding and moderation scorers call.
// A nil backend disables the scorers that need it.
type backends struct {
	llm        api.LLMGenerator
	embedder   api.Embedder
	moderation api.ModerationProvider
}

type scorerOptions struct {
	moderationThreshold float64
	pattern             string
	expectJSON          bool
}

// providerScorers picks the scorers of provider that can run on in, already
// renamed to the provider's metric vocabulary.
func providerScorers(provider string, b backends, in api.ScoreInputs, opts scorerOptions) ([]api.Scorer, error) {
	judge := evalreport.NewLLMJudge(
		evalreport.WithLLMGenerator(b.llm),
		evalreport.WithModerationProvider(b.moderation),
	)
	h := evalreport.NewHeuristic()

	var scorers []api.Scorer
	switch provider {
	case "opik":
		if in.Expected != "" {
			scorers = append(scorers,
				h.ExactMatch(evalreport.ExactMatchOptions{}),
				h.Contains(evalreport.ContainsOptions{}),
				h.LevenshteinRatio(evalreport.LevenshteinRatioOptions{}),
			)
			if b.embedder != nil {
				emb := evalreport.NewEmbedding(evalreport.WithEmbedder(b.embedder))
				scorers = append(scorers, emb.Similarity(evalreport.EmbeddingSimilarityOptions{}))
			}
		}
		if opts.pattern != "" {
			scorers = append(scorers, h.RegexMatch(evalreport.RegexMatchOptions{Pattern: opts.pattern}))
		}
		if opts.expectJSON {
			scorers = append(scorers, h.IsJSON())
		}
		if b.llm != nil && in.Input != "" {
			scorers = append(scorers, judge.AnswerRelevancy(evalreport.AnswerRelevancyOptions{}))
		}
		if b.llm != nil && len(in.Context) > 0 {
			scorers = append(scorers, judge.Hallucination(evalreport.HallucinationOptions{}))
		}
	case "deepeval":
		if b.llm != nil {
			if in.Input != "" {
				scorers = append(scorers, judge.AnswerRelevancy(evalreport.AnswerRelevancyOptions{}))
			}
			if len(in.Context) > 0 {
				scorers = append(scorers, judge.Hallucination(evalreport.HallucinationOptions{}))
			}
			if in.Input != "" && len(in.RetrievalContext) > 0 {
				scorers = append(scorers, judge.ContextualRelevancy(evalreport.ContextualRelevancyOptions{}))
			}
			if in.Expected != "" {
				scorers = append(scorers, judge.Factuality(evalreport.FactualityOptions{}))
			}
		}
	default:
		return nil, fmt.Errorf("unsupported provider %q (want opik or deepeval)", provider)
	}

	if b.moderation != nil {
		scorers = append(scorers, judge.Moderation(evalreport.ModerationOptions{Threshold: opts.moderationThreshold}))
	}
	if len(scorers) == 0 {
		return nil, fmt.Errorf("no %s scorer applies to the given inputs", provider)
	}

	return evalreport.ForProvider(provider, scorers), nil
}
