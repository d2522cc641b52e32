package api

import (
	"errors"
	"fmt"
)

var (
	// ErrNoExpectedValue is returned when an expected value is required but not provided
	ErrNoExpectedValue = errors.New("expected value is required for this scorer")
	// ErrNoInput is returned when the original input is required but not provided
	ErrNoInput = errors.New("input is required for this scorer")
	// ErrNoContext is returned when context passages are required but not provided
	ErrNoContext = errors.New("context is required for this scorer")
	// ErrNoRetrievalContext is returned when retrieval context is required but not provided
	ErrNoRetrievalContext = errors.New("retrieval_context is required for this scorer")
	// ErrLLMGenerationFailed is returned when LLM generation fails
	ErrLLMGenerationFailed = errors.New("LLM generation failed")
)

// EvaluationError reports that a scorer could not produce a usable score.
type EvaluationError struct {
	// Metric is the name the failing scorer reports under, if known
	Metric string
	Err    error
}

func (e *EvaluationError) Error() string {
	if e.Metric == "" {
		return fmt.Sprintf("evaluation failed: %v", e.Err)
	}
	return fmt.Sprintf("evaluation of %s failed: %v", e.Metric, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
