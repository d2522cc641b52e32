package llmjudge

import (
	"context"
	"fmt"

	"github.com/datar-psa/evalreport/api"
)

// HallucinationOptions configures the Hallucination scorer
type HallucinationOptions struct{}

// Hallucination returns a scorer that measures how many context passages the output
// contradicts. The score is the fraction of contradicted passages, so 0 means no
// hallucination and 1 means every passage was contradicted.
func Hallucination(llm api.LLMGenerator, opts HallucinationOptions) api.Scorer {
	return &hallucinationScorer{opts: opts, llm: llm}
}

type hallucinationScorer struct {
	opts HallucinationOptions
	llm  api.LLMGenerator
}

const hallucinationPromptTemplate = `You are checking an AI response against ground truth passages.

[BEGIN DATA]
[Response]: %s
[Passages]:
%s
[END DATA]

Return exactly one verdict per passage, in order:
- "yes" if the response agrees with the passage or does not contradict it
- "no" if the response contradicts the passage

Give a short reason for every verdict.`

func (s *hallucinationScorer) Score(ctx context.Context, in api.ScoreInputs) api.Score {
	result := api.Score{
		Name:     "Hallucination",
		Metadata: make(map[string]any),
	}

	if len(in.Context) == 0 {
		return fail(&result, api.ErrNoContext, nil)
	}

	if s.llm == nil {
		return fail(&result, fmt.Errorf("LLM generator is required"), nil)
	}

	schema := verdictSchema("verdicts", "One verdict per passage, in passage order", "yes", "no")
	prompt := fmt.Sprintf(hallucinationPromptTemplate, in.Output, numbered(in.Context))

	resp, err := s.llm.StructuredGenerate(ctx, prompt, schema)
	if err != nil {
		return fail(&result, fmt.Errorf("%w: %v", api.ErrLLMGenerationFailed, err), nil)
	}

	verdicts, err := extractVerdicts(resp, "verdicts", len(in.Context))
	if err != nil {
		return fail(&result, err, resp)
	}

	contradicted := 0
	var reasons []string
	for _, v := range verdicts {
		if v.Verdict == "no" {
			contradicted++
			reasons = append(reasons, v.Reason)
		}
	}

	result.Score = float64(contradicted) / float64(len(verdicts))
	result.Metadata["contradicted"] = contradicted
	result.Metadata["passages"] = len(verdicts)
	result.Metadata["reasons"] = reasons

	return result
}
