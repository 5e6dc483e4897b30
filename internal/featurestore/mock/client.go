package mock

import (
	"context"
	"strings"
	"time"

	"ragdebug/internal/domain"
)

// Client is a stand-in for the live feature-store client. It returns
// pre-canned feature vectors keyed off the service name, so the
// application can be demonstrated and tested without credentials or a
// network connection.
type Client struct{}

func NewClient() *Client { return &Client{} }

// FetchContextVector dispatches on a substring of the service name:
// green, yellow, red, irrelevant, repetitive or fail. Unknown names
// fall back to the green scenario.
func (c *Client) FetchContextVector(_ context.Context, serviceName string, _ map[string]any, _ map[string]any) (*domain.FeatureVector, error) {
	name := strings.ToLower(serviceName)
	switch {
	case strings.Contains(name, "yellow"):
		return yellowScenario(), nil
	case strings.Contains(name, "red"):
		return redScenario(), nil
	case strings.Contains(name, "irrelevant"):
		return irrelevantScenario(), nil
	case strings.Contains(name, "repetitive"):
		return repetitiveScenario(), nil
	case strings.Contains(name, "fail"):
		// Simulates the upstream returning nothing at all.
		return nil, nil
	default:
		return greenScenario(), nil
	}
}

// greenScenario: relevant, mutually distinct chunks with a confident
// answer. Uses the dot-namespaced key notation.
func greenScenario() *domain.FeatureVector {
	now := time.Now().UTC()
	features := map[string]any{
		"retrieved_context.chunk_1_text":      "Open Account Settings and choose Reset Password.",
		"retrieved_context.chunk_1_score":     0.92,
		"retrieved_context.chunk_2_text":      "A verification email arrives within five minutes.",
		"retrieved_context.chunk_2_score":     0.88,
		"retrieved_context.chunk_3_text":      "Contact support if no message shows up.",
		"retrieved_context.chunk_3_score":     0.85,
		"retrieved_context.answer":            "Go to Account Settings, choose Reset Password and follow the verification email.",
		"retrieved_context.answer_confidence": 0.91,
	}
	return vectorWith(features, map[string]time.Duration{
		"retrieved_context.chunk_1_text": 45 * time.Second,
		"retrieved_context.chunk_2_text": 10 * time.Second,
		"retrieved_context.chunk_3_text": 0,
	}, now, &domain.SLOInfo{
		Eligible:                 true,
		ServerTimeSeconds:        0.085,
		SLOServerTimeSeconds:     0.1,
		StoreResponseTimeSeconds: 0.05,
	})
}

// yellowScenario: chunks that only loosely match the question. Uses
// the bare underscore key notation and includes a stale feature.
func yellowScenario() *domain.FeatureVector {
	now := time.Now().UTC()
	features := map[string]any{
		"chunk_1_text":             "Billing happens monthly unless paused.",
		"chunk_1_score":            0.72,
		"chunk_2_text":             "Invoices appear under payment history.",
		"chunk_2_score":            0.68,
		"chunk_3_text":             "Downgrades take effect next cycle.",
		"chunk_3_score":            0.66,
		"retrieved_context.answer": "Your subscription settings control billing, which may relate to your question.",
	}
	return vectorWith(features, map[string]time.Duration{
		"chunk_1_text": 35 * time.Minute,
		"chunk_2_text": 5 * time.Second,
		"chunk_3_text": 35 * time.Minute,
	}, now, &domain.SLOInfo{
		Eligible:                 true,
		ServerTimeSeconds:        0.095,
		SLOServerTimeSeconds:     0.1,
		StoreResponseTimeSeconds: 0.06,
	})
}

// redScenario: the lookup succeeded but retrieval found no context at
// all; the vector carries only unrelated features.
func redScenario() *domain.FeatureVector {
	now := time.Now().UTC()
	features := map[string]any{
		"user_profile.preferred_category": "electronics",
		"user_profile.is_premium_member":  nil,
		"retrieved_context.answer":        "",
	}
	return vectorWith(features, map[string]time.Duration{
		"user_profile.preferred_category": 150 * time.Minute,
	}, now, &domain.SLOInfo{
		Eligible:                 true,
		ServerTimeSeconds:        0.120,
		SLOServerTimeSeconds:     0.1,
		StoreResponseTimeSeconds: 0.08,
	})
}

// irrelevantScenario: retrieval returned chunks, but they are
// off-topic and score far below the relevance threshold.
func irrelevantScenario() *domain.FeatureVector {
	now := time.Now().UTC()
	features := map[string]any{
		"chunk_1_text":             "Shipping rates for international orders vary by region.",
		"chunk_1_score":            0.41,
		"chunk_2_text":             "Our office hours are nine to five on weekdays.",
		"chunk_2_score":            0.33,
		"retrieved_context.answer": "I found some information about shipping and office hours.",
	}
	return vectorWith(features, map[string]time.Duration{
		"chunk_1_text": 20 * time.Second,
		"chunk_2_text": 30 * time.Second,
	}, now, &domain.SLOInfo{
		Eligible:                 true,
		ServerTimeSeconds:        0.090,
		SLOServerTimeSeconds:     0.1,
		StoreResponseTimeSeconds: 0.05,
	})
}

// repetitiveScenario: highly relevant scores, but the chunks all say
// the same thing. Exercises the context-collapse detection.
func repetitiveScenario() *domain.FeatureVector {
	now := time.Now().UTC()
	features := map[string]any{
		"chunk_1_text":             "You can reset your password from the account settings page.",
		"chunk_1_score":            0.91,
		"chunk_2_text":             "You can reset your password from the account settings page. This works at any time.",
		"chunk_2_score":            0.90,
		"chunk_3_text":             "Resetting your password is done from the account settings page.",
		"chunk_3_score":            0.89,
		"retrieved_context.answer": "You can reset your password from the account settings page.",
	}
	return vectorWith(features, map[string]time.Duration{
		"chunk_1_text": 15 * time.Second,
		"chunk_2_text": 15 * time.Second,
		"chunk_3_text": 15 * time.Second,
	}, now, &domain.SLOInfo{
		Eligible:                 true,
		ServerTimeSeconds:        0.088,
		SLOServerTimeSeconds:     0.1,
		StoreResponseTimeSeconds: 0.05,
	})
}

func vectorWith(features map[string]any, ages map[string]time.Duration, now time.Time, slo *domain.SLOInfo) *domain.FeatureVector {
	effectiveTimes := make(map[string]time.Time, len(ages))
	for key, age := range ages {
		effectiveTimes[key] = now.Add(-age)
	}
	return &domain.FeatureVector{
		Features:       features,
		EffectiveTimes: effectiveTimes,
		SLO:            slo,
	}
}
