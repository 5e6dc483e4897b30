package domain

import (
	"context"
	"time"
)

// Status is the three-level health verdict of a context analysis.
type Status string

const (
	StatusHealthy  Status = "HEALTHY"
	StatusWarning  Status = "WARNING"
	StatusCritical Status = "CRITICAL"
)

// SLOInfo carries the serving-latency metadata returned alongside a
// feature vector.
type SLOInfo struct {
	Eligible                 bool
	ServerTimeSeconds        float64
	SLOServerTimeSeconds     float64
	StoreResponseTimeSeconds float64
}

// FeatureVector is the materialized result of a feature-store lookup.
// Features holds the flat key/value map the analyzer reads; effective
// times and SLO metadata feed the freshness report only.
type FeatureVector struct {
	Features       map[string]any
	EffectiveTimes map[string]time.Time
	SLO            *SLOInfo
}

// RetrievedChunk is a single retrieved text passage with its relevance score.
type RetrievedChunk struct {
	Text  string
	Score float64
}

// HealthReport is the aggregate verdict over the retrieved context.
type HealthReport struct {
	Status                 Status
	Message                string
	ChunkCount             int
	AvgRelevanceScore      float64
	SemanticDiversityScore float64
}

// AnalysisResult bundles the per-chunk breakdown, the health report and
// the answer surface read from the feature vector. Err is non-nil only
// when the analyzer never received a vector at all; an empty retrieval
// is a valid result with a CRITICAL report and a nil Err.
type AnalysisResult struct {
	RetrievedChunks  []RetrievedChunk
	Health           HealthReport
	Err              *string
	GeneratedAnswer  string
	AnswerConfidence float64
}

// Provider fetches the context feature vector for a feature service.
// Both the mock client and the live REST client satisfy it; the
// analyzer does not know which one it is given.
type Provider interface {
	FetchContextVector(ctx context.Context, serviceName string, joinKeys map[string]any, requestData map[string]any) (*FeatureVector, error)
}
