// Package evalreport scores LLM outputs with pluggable scorers and reports the
// collected metrics to the CognitiveView metrics API.
package evalreport

import (
	"github.com/datar-psa/evalreport/api"
	"github.com/datar-psa/evalreport/reporting"
)

type LLMGenerator = api.LLMGenerator
type Embedder = api.Embedder
type ModerationProvider = api.ModerationProvider
type ModerationCategory = api.ModerationCategory
type ModerationResult = api.ModerationResult

type Score = api.Score
type ScoreInputs = api.ScoreInputs
type Scorer = api.Scorer
type MetricResult = api.MetricResult
type EvaluationError = api.EvaluationError

type Metadata = reporting.Metadata
type Credentials = reporting.Credentials
type Report = reporting.Report

var ModerationCategories = api.ModerationCategories

var (
	ErrNoExpectedValue     = api.ErrNoExpectedValue
	ErrNoInput             = api.ErrNoInput
	ErrNoContext           = api.ErrNoContext
	ErrNoRetrievalContext  = api.ErrNoRetrievalContext
	ErrLLMGenerationFailed = api.ErrLLMGenerationFailed
)
