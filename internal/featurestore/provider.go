package featurestore

import (
	"context"

	"ragdebug/internal/domain"
)

// Provider fetches the context feature vector for a feature service.
type Provider interface {
	FetchContextVector(ctx context.Context, serviceName string, joinKeys map[string]any, requestData map[string]any) (*domain.FeatureVector, error)
}
