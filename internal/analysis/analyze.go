package analysis

import "ragdebug/internal/domain"

const (
	answerKey           = "retrieved_context.answer"
	answerConfidenceKey = "retrieved_context.answer_confidence"
)

// AnalyzeRetrievedContext diagnoses the retrieved context in a feature
// vector and produces the full analysis result. It never fails: a nil
// vector yields a CRITICAL report with an explicit error string, an
// empty retrieval yields a CRITICAL report with a nil error, and
// malformed keys degrade to fewer chunks.
func AnalyzeRetrievedContext(fv *domain.FeatureVector) domain.AnalysisResult {
	if fv == nil {
		msg := "Received null feature vector."
		return domain.AnalysisResult{
			RetrievedChunks: []domain.RetrievedChunk{},
			Health: domain.HealthReport{
				Status:  domain.StatusCritical,
				Message: msg,
			},
			Err: &msg,
		}
	}

	chunks := ExtractChunks(fv.Features)

	generatedAnswer := ""
	if v, ok := fv.Features[answerKey]; ok && v != nil {
		generatedAnswer = asText(v)
	}
	answerConfidence, hasConfidence := 0.0, false
	if v, ok := fv.Features[answerConfidenceKey]; ok && v != nil {
		if f, ok := asFloat(v); ok {
			answerConfidence, hasConfidence = f, true
		}
	}

	if len(chunks) == 0 {
		return domain.AnalysisResult{
			RetrievedChunks: []domain.RetrievedChunk{},
			Health: domain.HealthReport{
				Status:  domain.StatusCritical,
				Message: "No context chunks retrieved.",
			},
			GeneratedAnswer:  generatedAnswer,
			AnswerConfidence: answerConfidence,
		}
	}

	sum := 0.0
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		sum += c.Score
		texts[i] = c.Text
	}
	avgScore := sum / float64(len(chunks))
	diversityScore := SemanticDiversity(texts)
	status, message := ClassifyHealth(avgScore, diversityScore)

	if !hasConfidence {
		answerConfidence = avgScore
	}

	return domain.AnalysisResult{
		RetrievedChunks: chunks,
		Health: domain.HealthReport{
			Status:                 status,
			Message:                message,
			ChunkCount:             len(chunks),
			AvgRelevanceScore:      avgScore,
			SemanticDiversityScore: diversityScore,
		},
		GeneratedAnswer:  generatedAnswer,
		AnswerConfidence: answerConfidence,
	}
}
