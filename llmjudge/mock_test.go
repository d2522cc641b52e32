package llmjudge

import (
	"context"
	"encoding/json"
	"fmt"
)

// mockLLMGenerator is a simple mock for unit tests
type mockLLMGenerator struct {
	response string
	err      error
	prompts  []string
}

func (m *mockLLMGenerator) StructuredGenerate(ctx context.Context, prompt string, schema map[string]interface{}) (map[string]interface{}, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return nil, m.err
	}

	// Parse the response as JSON for structured responses
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(m.response), &result); err != nil {
		return nil, fmt.Errorf("failed to parse mock response as JSON: %w", err)
	}
	return result, nil
}
