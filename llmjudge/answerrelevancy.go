package llmjudge

import (
	"context"
	"fmt"

	"github.com/datar-psa/evalreport/api"
)

// AnswerRelevancyOptions configures the AnswerRelevancy scorer
type AnswerRelevancyOptions struct{}

// AnswerRelevancy returns a scorer that measures how much of the output addresses the input.
// The judge splits the output into statements and marks each as relevant ("yes"),
// irrelevant ("no") or ambiguous ("idk"). Ambiguous statements count as relevant.
func AnswerRelevancy(llm api.LLMGenerator, opts AnswerRelevancyOptions) api.Scorer {
	return &answerRelevancyScorer{opts: opts, llm: llm}
}

type answerRelevancyScorer struct {
	opts AnswerRelevancyOptions
	llm  api.LLMGenerator
}

const answerRelevancyPromptTemplate = `You are judging whether an AI response stays on topic.

[BEGIN DATA]
[Input]: %s
[Response]: %s
[END DATA]

Break the response into its individual statements. For every statement return a verdict:
- "yes" if the statement is relevant to answering the input
- "no" if the statement is irrelevant to the input
- "idk" if the statement is ambiguous or supporting information

Give a short reason for every "no" verdict.`

func (s *answerRelevancyScorer) Score(ctx context.Context, in api.ScoreInputs) api.Score {
	result := api.Score{
		Name:     "AnswerRelevancy",
		Metadata: make(map[string]any),
	}

	if in.Input == "" {
		return fail(&result, api.ErrNoInput, nil)
	}

	if s.llm == nil {
		return fail(&result, fmt.Errorf("LLM generator is required"), nil)
	}

	schema := verdictSchema("verdicts", "One verdict per statement in the response", "yes", "no", "idk")
	prompt := fmt.Sprintf(answerRelevancyPromptTemplate, in.Input, in.Output)

	resp, err := s.llm.StructuredGenerate(ctx, prompt, schema)
	if err != nil {
		return fail(&result, fmt.Errorf("%w: %v", api.ErrLLMGenerationFailed, err), nil)
	}

	verdicts, err := extractVerdicts(resp, "verdicts", 0)
	if err != nil {
		return fail(&result, err, resp)
	}

	// A response without statements cannot be irrelevant.
	if len(verdicts) == 0 {
		result.Score = 1.0
		result.Metadata["statements"] = 0
		return result
	}

	relevant := 0
	var reasons []string
	for _, v := range verdicts {
		if v.Verdict == "no" {
			if v.Reason != "" {
				reasons = append(reasons, v.Reason)
			}
			continue
		}
		relevant++
	}

	result.Score = float64(relevant) / float64(len(verdicts))
	result.Metadata["statements"] = len(verdicts)
	result.Metadata["relevant_statements"] = relevant
	result.Metadata["irrelevant_reasons"] = reasons

	return result
}
