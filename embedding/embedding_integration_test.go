package embedding

import (
	"context"
	"testing"

	"github.com/datar-psa/evalreport/api"
	"github.com/datar-psa/evalreport/internal/testutils"
)

// TestEmbeddingSimilarity_Integration tests the EmbeddingSimilarity scorer with real Gemini embeddings API
// Requests are replayed from testdata/embedding; record them with UPDATE_TESTS=true
func TestEmbeddingSimilarity_Integration(t *testing.T) {
	testutils.SkipWithoutRecordings(t, "embedding")

	ctx := context.Background()
	embedder := testutils.NewGeminiEmbedder(t, testutils.DefaultGeminiTestConfig("embedding"), "text-embedding-005")

	tests := []struct {
		name     string
		output   string
		expected string
		minScore float64
		maxScore float64
	}{
		{
			name:     "identical text",
			output:   "What is the type of the leave?",
			expected: "What is the type of the leave?",
			minScore: 0.95,
			maxScore: 1.0,
		},
		{
			name:     "similar but different phrasing",
			output:   "What is the capital of France?",
			expected: "Tell me France's capital city",
			minScore: 0.80,
			maxScore: 1.0,
		},
		{
			name:     "completely different",
			output:   "What is the capital of France?",
			expected: "How do I bake a cake?",
			minScore: 0.0,
			maxScore: 0.70,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer := EmbeddingSimilarity(embedder, EmbeddingSimilarityOptions{})
			result := scorer.Score(ctx, api.ScoreInputs{Output: tt.output, Expected: tt.expected})

			if result.Error != nil {
				t.Fatalf("EmbeddingSimilarity.Score() unexpected error = %v", result.Error)
			}

			if result.Score < tt.minScore || result.Score > tt.maxScore {
				t.Errorf("EmbeddingSimilarity.Score() score = %v, want between %v and %v", result.Score, tt.minScore, tt.maxScore)
				t.Logf("Cosine similarity: %v", result.Metadata["cosine_similarity"])
			}
		})
	}
}
