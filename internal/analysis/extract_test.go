package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragdebug/internal/domain"
)

func TestExtractChunks(t *testing.T) {
	t.Run("Extracts complete chunks sorted by ordinal", func(t *testing.T) {
		features := map[string]any{
			"chunk_2_text":   "second passage",
			"chunk_2_score":  0.7,
			"chunk_1_text":   "first passage",
			"chunk_1_score":  0.9,
			"chunk_10_text":  "tenth passage",
			"chunk_10_score": 0.5,
		}

		chunks := ExtractChunks(features)

		require.Len(t, chunks, 3)
		assert.Equal(t, domain.RetrievedChunk{Text: "first passage", Score: 0.9}, chunks[0])
		assert.Equal(t, domain.RetrievedChunk{Text: "second passage", Score: 0.7}, chunks[1])
		// Ordinal 10 sorts numerically after 2, not lexically before it.
		assert.Equal(t, domain.RetrievedChunk{Text: "tenth passage", Score: 0.5}, chunks[2])
	})

	t.Run("Handles dot namespaced keys", func(t *testing.T) {
		features := map[string]any{
			"retrieved_context.chunk_1_text":  "namespaced passage",
			"retrieved_context.chunk_1_score": 0.8,
		}

		chunks := ExtractChunks(features)

		require.Len(t, chunks, 1)
		assert.Equal(t, "namespaced passage", chunks[0].Text)
		assert.Equal(t, 0.8, chunks[0].Score)
	})

	t.Run("Drops ordinal missing its score", func(t *testing.T) {
		features := map[string]any{
			"chunk_1_text":  "complete",
			"chunk_1_score": 0.9,
			"chunk_2_text":  "no score for this one",
		}

		chunks := ExtractChunks(features)

		require.Len(t, chunks, 1)
		assert.Equal(t, "complete", chunks[0].Text)
	})

	t.Run("Drops ordinal missing its text", func(t *testing.T) {
		features := map[string]any{
			"chunk_1_score": 0.9,
		}

		assert.Empty(t, ExtractChunks(features))
	})

	t.Run("Skips null values", func(t *testing.T) {
		features := map[string]any{
			"chunk_1_text":  nil,
			"chunk_1_score": 0.9,
		}

		assert.Empty(t, ExtractChunks(features))
	})

	t.Run("Skips uncastable score without dropping other keys", func(t *testing.T) {
		features := map[string]any{
			"chunk_1_text":  "passage",
			"chunk_1_score": "not a number",
			"chunk_2_text":  "other passage",
			"chunk_2_score": 0.5,
		}

		chunks := ExtractChunks(features)

		require.Len(t, chunks, 1)
		assert.Equal(t, "other passage", chunks[0].Text)
	})

	t.Run("Coerces numeric score shapes", func(t *testing.T) {
		features := map[string]any{
			"chunk_1_text":  "int score",
			"chunk_1_score": 1,
			"chunk_2_text":  "string score",
			"chunk_2_score": "0.75",
			"chunk_3_text":  "float32 score",
			"chunk_3_score": float32(0.5),
		}

		chunks := ExtractChunks(features)

		require.Len(t, chunks, 3)
		assert.Equal(t, 1.0, chunks[0].Score)
		assert.Equal(t, 0.75, chunks[1].Score)
		assert.InDelta(t, 0.5, chunks[2].Score, 1e-6)
	})

	t.Run("Stringifies non-string text values", func(t *testing.T) {
		features := map[string]any{
			"chunk_1_text":  42,
			"chunk_1_score": 0.9,
		}

		chunks := ExtractChunks(features)

		require.Len(t, chunks, 1)
		assert.Equal(t, "42", chunks[0].Text)
	})

	t.Run("Ignores unrelated features", func(t *testing.T) {
		features := map[string]any{
			"user_profile.preferred_category": "electronics",
			"retrieved_context.answer":        "some answer",
			"transaction_count_7d":            15,
		}

		assert.Empty(t, ExtractChunks(features))
	})

	t.Run("Idempotent over repeated runs", func(t *testing.T) {
		features := map[string]any{
			"chunk_3_text":  "c",
			"chunk_3_score": 0.3,
			"chunk_1_text":  "a",
			"chunk_1_score": 0.1,
			"chunk_2_text":  "b",
			"chunk_2_score": 0.2,
		}

		first := ExtractChunks(features)
		for i := 0; i < 20; i++ {
			assert.Equal(t, first, ExtractChunks(features))
		}
	})
}
