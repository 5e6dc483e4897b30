package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ragdebug/internal/analysis"
	"ragdebug/internal/domain"
)

func healthyResult() domain.AnalysisResult {
	return domain.AnalysisResult{
		RetrievedChunks: []domain.RetrievedChunk{
			{Text: "Open Account Settings and choose Reset Password.", Score: 0.92},
			{Text: "A verification email arrives within five minutes.", Score: 0.88},
		},
		Health: domain.HealthReport{
			Status:                 domain.StatusHealthy,
			Message:                "GOOD: The chunks answer the user's question well and provide different useful information.",
			ChunkCount:             2,
			AvgRelevanceScore:      0.9,
			SemanticDiversityScore: 1.0,
		},
		GeneratedAnswer:  "Use the reset link in Account Settings.",
		AnswerConfidence: 0.9,
	}
}

func TestFormat(t *testing.T) {
	t.Run("Contains status, metrics and chunks", func(t *testing.T) {
		out := Format(healthyResult(), Options{})

		assert.Contains(t, out, "HEALTHY")
		assert.Contains(t, out, "Chunks Retrieved:   2")
		assert.Contains(t, out, "Avg Relevance:      0.900")
		assert.Contains(t, out, "Semantic Diversity: 1.000")
		assert.Contains(t, out, "score=0.92")
		assert.Contains(t, out, "Reset Password")
		assert.Contains(t, out, "Use the reset link")
	})

	t.Run("Truncates long chunk text", func(t *testing.T) {
		result := healthyResult()
		result.RetrievedChunks[0].Text = strings.Repeat("x", 500)

		out := Format(result, Options{MaxChunkChars: 40})

		assert.Contains(t, out, strings.Repeat("x", 40)+"...")
		assert.NotContains(t, out, strings.Repeat("x", 41))
	})

	t.Run("Empty retrieval is explicit", func(t *testing.T) {
		result := domain.AnalysisResult{
			Health: domain.HealthReport{
				Status:  domain.StatusCritical,
				Message: "No context chunks retrieved.",
			},
		}

		out := Format(result, Options{})

		assert.Contains(t, out, "CRITICAL")
		assert.Contains(t, out, "No context chunks were retrieved.")
	})

	t.Run("Error line appears when analysis errored", func(t *testing.T) {
		msg := "Received null feature vector."
		result := domain.AnalysisResult{
			Health: domain.HealthReport{Status: domain.StatusCritical, Message: msg},
			Err:    &msg,
		}

		out := Format(result, Options{})

		assert.Contains(t, out, "Error: Received null feature vector.")
	})
}

func TestFormatVector(t *testing.T) {
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	t.Run("With SLO and temporal sections", func(t *testing.T) {
		rep := analysis.VectorReport{
			Features: map[string]any{"a": 1, "b": nil},
			SLO:      &analysis.SLOReport{Eligible: true, ServerTimeSeconds: 0.085},
			Temporal: &analysis.TemporalReport{
				MinEffectiveTime:  base.Add(-35 * time.Minute),
				MaxEffectiveTime:  base,
				TimeSpreadSeconds: 2100,
				RiskLevel:         analysis.RiskMedium,
			},
		}

		out := FormatVector(rep, Options{ShowRawFeatures: true})

		assert.Contains(t, out, "a: 1")
		assert.Contains(t, out, "b: (NULL)")
		assert.Contains(t, out, "Server Latency: 0.0850s")
		assert.Contains(t, out, "MEDIUM")
		assert.Contains(t, out, "Time Spread: 2100.00 seconds")
	})

	t.Run("Missing sections degrade to placeholders", func(t *testing.T) {
		out := FormatVector(analysis.VectorReport{}, Options{})

		assert.Contains(t, out, "SLO info not available.")
		assert.Contains(t, out, "Temporal analysis not applicable")
	})
}
