package llmjudge

import (
	"context"
	"fmt"

	"github.com/datar-psa/evalreport/api"
)

// FactualityOptions configures the Factuality scorer
type FactualityOptions struct{}

// Factuality returns a scorer that uses an LLM to evaluate if the output is factually
// consistent with the expected answer.
func Factuality(llm api.LLMGenerator, opts FactualityOptions) api.Scorer {
	return &factualityScorer{opts: opts, llm: llm}
}

type factualityScorer struct {
	opts FactualityOptions
	llm  api.LLMGenerator
}

const factualityPromptTemplate = `You are comparing a submitted answer to an expert answer on a given question.

[BEGIN DATA]
[Question]: %s
[Expert]: %s
[Submission]: %s
[END DATA]

Compare the factual content of the submitted answer with the expert answer. Ignore any differences in style, grammar, or punctuation.
Select one option:
(A) The submitted answer contains all the same details as the expert answer.
(B) There are differences between the submitted answer and the expert answer, but these differences don't matter from the perspective of factuality.
(C) The submitted answer is a superset of the expert answer and is fully consistent with it.
(D) The submitted answer is a subset of the expert answer and is fully consistent with it.
(E) There is a disagreement between the submitted answer and the expert answer.

Explain your choice briefly.`

var factualityChoiceScores = map[string]float64{
	"A": 1.0,
	"B": 0.8,
	"C": 0.6,
	"D": 0.4,
	"E": 0.0,
}

func (s *factualityScorer) Score(ctx context.Context, in api.ScoreInputs) api.Score {
	result := api.Score{
		Name:     "Factuality",
		Metadata: make(map[string]any),
	}

	if in.Expected == "" {
		return fail(&result, api.ErrNoExpectedValue, nil)
	}

	if s.llm == nil {
		return fail(&result, fmt.Errorf("LLM generator is required"), nil)
	}

	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"choice": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"A", "B", "C", "D", "E"},
				"description": "The selected option",
			},
			"explanation": map[string]interface{}{
				"type":        "string",
				"description": "Why the option was selected",
			},
		},
		"required": []string{"choice", "explanation"},
	}

	prompt := fmt.Sprintf(factualityPromptTemplate, in.Input, in.Expected, in.Output)
	resp, err := s.llm.StructuredGenerate(ctx, prompt, schema)
	if err != nil {
		return fail(&result, fmt.Errorf("%w: %v", api.ErrLLMGenerationFailed, err), nil)
	}

	choice, ok := resp["choice"].(string)
	if !ok {
		return fail(&result, fmt.Errorf("failed to extract choice from structured response"), resp)
	}
	explanation, ok := resp["explanation"].(string)
	if !ok {
		return fail(&result, fmt.Errorf("failed to extract explanation from structured response"), resp)
	}
	score, ok := factualityChoiceScores[choice]
	if !ok {
		return fail(&result, fmt.Errorf("unknown choice %q", choice), resp)
	}

	result.Score = score
	result.Metadata["choice"] = choice
	result.Metadata["explanation"] = explanation
	result.Metadata["raw_response"] = resp

	return result
}
