package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/datar-psa/evalreport/api"
)

// Embedder wraps a genai.Client to implement the Embedder interface
type Embedder struct {
	client    *genai.Client
	modelName string
}

// NewEmbedder creates a new Gemini embedder
// client: genai.Client from google.golang.org/genai
// modelName: the embedding model to use (e.g., "text-embedding-005")
func NewEmbedder(client *genai.Client, modelName string) *Embedder {
	return &Embedder{
		client:    client,
		modelName: modelName,
	}
}

// Embed implements Embedder.Embed
func (e *Embedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if e.client == nil {
		return nil, fmt.Errorf("genai client is required")
	}

	result, err := e.client.Models.EmbedContent(ctx, e.modelName, genai.Text(text), &genai.EmbedContentConfig{})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	values := result.Embeddings[0].Values
	if len(values) == 0 {
		return nil, fmt.Errorf("empty embedding vector")
	}

	embedding := make([]float64, len(values))
	for i, v := range values {
		embedding[i] = float64(v)
	}

	return embedding, nil
}

// Verify that Embedder implements api.Embedder
var _ api.Embedder = (*Embedder)(nil)
