package evalreport

import (
	"context"

	language "cloud.google.com/go/language/apiv1"
	"google.golang.org/genai"

	"github.com/datar-psa/evalreport/api"
	"github.com/datar-psa/evalreport/collector"
	"github.com/datar-psa/evalreport/embedding"
	"github.com/datar-psa/evalreport/gemini"
	"github.com/datar-psa/evalreport/heuristic"
	"github.com/datar-psa/evalreport/llmjudge"
	"github.com/datar-psa/evalreport/reporting"
)

// LLMJudge wraps an LLM generator and exposes convenient constructors for LLM-as-a-judge scorers.
type LLMJudge struct {
	llm        api.LLMGenerator
	moderation api.ModerationProvider
}

// LLMJudgeOptions configures LLMJudge creation
type LLMJudgeOptions struct {
	llm        api.LLMGenerator
	moderation api.ModerationProvider
}

// WithLLMGenerator sets the LLM generator for the judge
func WithLLMGenerator(llm api.LLMGenerator) func(*LLMJudgeOptions) {
	return func(opts *LLMJudgeOptions) {
		opts.llm = llm
	}
}

// WithModerationProvider sets the moderation provider for the judge
func WithModerationProvider(provider api.ModerationProvider) func(*LLMJudgeOptions) {
	return func(opts *LLMJudgeOptions) {
		opts.moderation = provider
	}
}

// NewLLMJudge creates a new Judge wrapper using functional options.
func NewLLMJudge(opts ...func(*LLMJudgeOptions)) *LLMJudge {
	options := &LLMJudgeOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return &LLMJudge{
		llm:        options.llm,
		moderation: options.moderation,
	}
}

// GeminiOptions configures Gemini-backed judge and embedding creation
type GeminiOptions struct {
	genaiClient *genai.Client
	modelName   string
	langClient  *language.Client
}

// WithGenaiClient sets the Gemini client
func WithGenaiClient(client *genai.Client) func(*GeminiOptions) {
	return func(opts *GeminiOptions) {
		opts.genaiClient = client
	}
}

// WithModelName sets the model name
func WithModelName(modelName string) func(*GeminiOptions) {
	return func(opts *GeminiOptions) {
		opts.modelName = modelName
	}
}

// WithLanguageClient sets the Google Cloud Language client for moderation
func WithLanguageClient(langClient *language.Client) func(*GeminiOptions) {
	return func(opts *GeminiOptions) {
		opts.langClient = langClient
	}
}

// NewGeminiLLMJudge creates a Judge using Gemini client and model name.
// Example model: "publishers/google/models/gemini-2.5-flash".
func NewGeminiLLMJudge(opts ...func(*GeminiOptions)) *LLMJudge {
	options := &GeminiOptions{}
	for _, opt := range opts {
		opt(options)
	}

	var llmOptions []func(*LLMJudgeOptions)

	if options.genaiClient != nil && options.modelName != "" {
		llmOptions = append(llmOptions, WithLLMGenerator(gemini.NewGenerator(options.genaiClient, options.modelName)))
	}

	if options.langClient != nil {
		llmOptions = append(llmOptions, WithModerationProvider(gemini.NewGoogleLanguageProvider(options.langClient)))
	}

	return NewLLMJudge(llmOptions...)
}

type FactualityOptions = llmjudge.FactualityOptions

// Factuality returns a scorer that compares Output against Expected for factual consistency.
func (j *LLMJudge) Factuality(opts FactualityOptions) api.Scorer {
	return llmjudge.Factuality(j.llm, opts)
}

type AnswerRelevancyOptions = llmjudge.AnswerRelevancyOptions

// AnswerRelevancy returns a scorer that measures how much of Output addresses Input.
func (j *LLMJudge) AnswerRelevancy(opts AnswerRelevancyOptions) api.Scorer {
	return llmjudge.AnswerRelevancy(j.llm, opts)
}

type HallucinationOptions = llmjudge.HallucinationOptions

// Hallucination returns a scorer that measures the fraction of Context contradicted by Output.
func (j *LLMJudge) Hallucination(opts HallucinationOptions) api.Scorer {
	return llmjudge.Hallucination(j.llm, opts)
}

type ContextualRelevancyOptions = llmjudge.ContextualRelevancyOptions

// ContextualRelevancy returns a scorer that measures the fraction of RetrievalContext relevant to Input.
func (j *LLMJudge) ContextualRelevancy(opts ContextualRelevancyOptions) api.Scorer {
	return llmjudge.ContextualRelevancy(j.llm, opts)
}

type ModerationOptions = llmjudge.ModerationOptions

// Moderation returns a scorer that evaluates content safety using a moderation provider.
func (j *LLMJudge) Moderation(opts ModerationOptions) api.Scorer {
	return llmjudge.Moderation(j.moderation, opts)
}

// Embedding wraps an embedder and exposes convenient constructors for embedding-based scorers.
type Embedding struct{ embedder api.Embedder }

// EmbeddingOptions configures Embedding creation
type EmbeddingOptions struct {
	embedder api.Embedder
}

// WithEmbedder sets the embedder for the embedding scorer
func WithEmbedder(embedder api.Embedder) func(*EmbeddingOptions) {
	return func(opts *EmbeddingOptions) {
		opts.embedder = embedder
	}
}

// NewEmbedding creates a new Embedding wrapper using functional options.
func NewEmbedding(opts ...func(*EmbeddingOptions)) *Embedding {
	options := &EmbeddingOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return &Embedding{embedder: options.embedder}
}

// NewGeminiEmbedding creates an Embedding using Gemini client and model name.
// Example model: "text-embedding-005".
func NewGeminiEmbedding(opts ...func(*GeminiOptions)) *Embedding {
	options := &GeminiOptions{}
	for _, opt := range opts {
		opt(options)
	}

	var embeddingOptions []func(*EmbeddingOptions)
	if options.genaiClient != nil && options.modelName != "" {
		embeddingOptions = append(embeddingOptions, WithEmbedder(gemini.NewEmbedder(options.genaiClient, options.modelName)))
	}

	return NewEmbedding(embeddingOptions...)
}

type EmbeddingSimilarityOptions = embedding.EmbeddingSimilarityOptions

// Similarity returns a scorer that measures semantic similarity using embeddings.
func (e *Embedding) Similarity(opts EmbeddingSimilarityOptions) api.Scorer {
	return embedding.EmbeddingSimilarity(e.embedder, opts)
}

// Heuristic exposes convenient constructors for heuristic scorers.
type Heuristic struct{}

// NewHeuristic creates a new Heuristic.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

type ExactMatchOptions = heuristic.ExactMatchOptions

// ExactMatch returns a scorer that checks if the output exactly matches the expected value.
func (h *Heuristic) ExactMatch(opts ExactMatchOptions) api.Scorer {
	return heuristic.ExactMatch(opts)
}

type ContainsOptions = heuristic.ContainsOptions

// Contains returns a scorer that checks if the output contains the expected value.
func (h *Heuristic) Contains(opts ContainsOptions) api.Scorer {
	return heuristic.Contains(opts)
}

type RegexMatchOptions = heuristic.RegexMatchOptions

// RegexMatch returns a scorer that checks the output against a regular expression.
func (h *Heuristic) RegexMatch(opts RegexMatchOptions) api.Scorer {
	return heuristic.RegexMatch(opts)
}

// IsJSON returns a scorer that checks whether the output is valid JSON.
func (h *Heuristic) IsJSON() api.Scorer {
	return heuristic.IsJSON()
}

type LevenshteinRatioOptions = heuristic.LevenshteinRatioOptions

// LevenshteinRatio returns a scorer based on normalized edit distance.
func (h *Heuristic) LevenshteinRatio(opts LevenshteinRatioOptions) api.Scorer {
	return heuristic.LevenshteinRatio(opts)
}

// NewCollector creates a Collector; use collector.WithLogger to log collected metrics.
func NewCollector(opts ...collector.Option) *collector.Collector {
	return collector.New(opts...)
}

// Collect runs scorers once each, in order, and returns their scores by name.
// See collector.Collector for failure semantics.
func Collect(ctx context.Context, scorers []api.Scorer, in ScoreInputs) (MetricResult, error) {
	return collector.Collect(ctx, scorers, in)
}

// Named reports a scorer's results under name.
func Named(name string, scorer api.Scorer) api.Scorer {
	return collector.Named(name, scorer)
}

// ForProvider renames scorer results to the metric vocabulary of provider ("opik", "deepeval").
func ForProvider(provider string, scorers []api.Scorer) []api.Scorer {
	return collector.ForProvider(provider, scorers)
}

// NewReportingClient creates a metrics API client.
func NewReportingClient(opts ...reporting.Option) *reporting.Client {
	return reporting.NewClient(opts...)
}
