package llmjudge

import (
	"context"
	"fmt"

	"github.com/datar-psa/evalreport/api"
)

// ContextualRelevancyOptions configures the ContextualRelevancy scorer
type ContextualRelevancyOptions struct{}

// ContextualRelevancy returns a scorer that measures the fraction of retrieved passages
// that are relevant to the input. It requires RetrievalContext.
func ContextualRelevancy(llm api.LLMGenerator, opts ContextualRelevancyOptions) api.Scorer {
	return &contextualRelevancyScorer{opts: opts, llm: llm}
}

type contextualRelevancyScorer struct {
	opts ContextualRelevancyOptions
	llm  api.LLMGenerator
}

const contextualRelevancyPromptTemplate = `You are judging a retrieval step of a question answering pipeline.

[BEGIN DATA]
[Input]: %s
[Retrieved passages]:
%s
[END DATA]

Return exactly one verdict per retrieved passage, in order:
- "yes" if the passage contains information useful for answering the input
- "no" otherwise`

func (s *contextualRelevancyScorer) Score(ctx context.Context, in api.ScoreInputs) api.Score {
	result := api.Score{
		Name:     "ContextualRelevancy",
		Metadata: make(map[string]any),
	}

	if len(in.RetrievalContext) == 0 {
		return fail(&result, api.ErrNoRetrievalContext, nil)
	}

	if in.Input == "" {
		return fail(&result, api.ErrNoInput, nil)
	}

	if s.llm == nil {
		return fail(&result, fmt.Errorf("LLM generator is required"), nil)
	}

	schema := verdictSchema("verdicts", "One verdict per retrieved passage, in passage order", "yes", "no")
	prompt := fmt.Sprintf(contextualRelevancyPromptTemplate, in.Input, numbered(in.RetrievalContext))

	resp, err := s.llm.StructuredGenerate(ctx, prompt, schema)
	if err != nil {
		return fail(&result, fmt.Errorf("%w: %v", api.ErrLLMGenerationFailed, err), nil)
	}

	verdicts, err := extractVerdicts(resp, "verdicts", len(in.RetrievalContext))
	if err != nil {
		return fail(&result, err, resp)
	}

	relevant := 0
	for _, v := range verdicts {
		if v.Verdict == "yes" {
			relevant++
		}
	}

	result.Score = float64(relevant) / float64(len(verdicts))
	result.Metadata["relevant_passages"] = relevant
	result.Metadata["passages"] = len(verdicts)

	return result
}
