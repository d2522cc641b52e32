package llmjudge

import (
	"fmt"
	"strings"

	"github.com/datar-psa/evalreport/api"
)

// verdict is a single yes/no/idk judgement returned by the judge model
type verdict struct {
	Verdict string
	Reason  string
}

// verdictSchema builds a JSON schema asking for a list of verdicts under key.
func verdictSchema(key, description string, allowed ...string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			key: map[string]interface{}{
				"type":        "array",
				"description": description,
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"verdict": map[string]interface{}{
							"type": "string",
							"enum": allowed,
						},
						"reason": map[string]interface{}{
							"type": "string",
						},
					},
					"required": []string{"verdict"},
				},
			},
		},
		"required": []string{key},
	}
}

// extractVerdicts reads the verdict list stored under key. If want is positive the
// number of verdicts must match it.
func extractVerdicts(resp map[string]interface{}, key string, want int) ([]verdict, error) {
	raw, ok := resp[key].([]interface{})
	if !ok {
		return nil, fmt.Errorf("failed to extract %s from structured response", key)
	}
	if want > 0 && len(raw) != want {
		return nil, fmt.Errorf("expected %d %s, got %d", want, key, len(raw))
	}

	verdicts := make([]verdict, 0, len(raw))
	for i, item := range raw {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s[%d] is not an object", key, i)
		}
		v, ok := obj["verdict"].(string)
		if !ok {
			return nil, fmt.Errorf("%s[%d] has no verdict", key, i)
		}
		reason, _ := obj["reason"].(string)
		verdicts = append(verdicts, verdict{Verdict: strings.ToLower(strings.TrimSpace(v)), Reason: reason})
	}
	return verdicts, nil
}

// fail records err on the result and zeroes the score.
func fail(result *api.Score, err error, resp map[string]interface{}) api.Score {
	result.Error = err
	result.Score = 0
	if resp != nil {
		result.Metadata["raw_response"] = resp
	}
	return *result
}

// numbered renders passages as a numbered list for prompts.
func numbered(items []string) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	return strings.TrimRight(b.String(), "\n")
}
