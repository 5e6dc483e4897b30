package analysis

import "ragdebug/internal/domain"

const (
	criticalRelevanceThreshold = 0.60
	healthyRelevanceThreshold  = 0.75
	diversityThreshold         = 0.80
)

// ClassifyHealth maps the aggregate metrics onto a status and message.
// Relevance decides first; low diversity then pulls a HEALTHY verdict
// down to WARNING, but never downgrades a CRITICAL one, and diversity
// alone can never reach CRITICAL.
func ClassifyHealth(avgScore, diversityScore float64) (domain.Status, string) {
	status := domain.StatusHealthy
	message := "GOOD: The chunks answer the user's question well and provide different useful information."

	if avgScore < criticalRelevanceThreshold {
		status = domain.StatusCritical
		message = "BAD: The chunks don't answer the user's question well. They're off-topic."
	} else if avgScore < healthyRelevanceThreshold {
		status = domain.StatusWarning
		message = "WARNING: The chunks only kinda answer the user's question. They're not very helpful."
	}

	if diversityScore < diversityThreshold && status != domain.StatusCritical {
		status = domain.StatusWarning
		message = "WARNING: The chunks are too similar to each other. They're basically saying the same thing."
	}
	return status, message
}
