package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchContextVector(t *testing.T) {
	t.Run("Maps response into a feature vector", func(t *testing.T) {
		var gotPath, gotAuth string
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_, _ = w.Write([]byte(`{
				"result": {"features": ["passage one", 0.92, null]},
				"metadata": {"features": [
					{"name": "chunk_1_text", "effectiveTime": "2026-03-14T12:00:00Z"},
					{"name": "chunk_1_score", "effectiveTime": "2026-03-14T12:00:30Z"},
					{"name": "user_profile.is_premium_member", "effectiveTime": ""}
				]},
				"sloInfo": {"sloEligible": true, "serverTimeSeconds": 0.085, "sloServerTimeSeconds": 0.1, "storeResponseTimeSeconds": 0.05}
			}`))
		}))
		defer server.Close()

		client := NewClient(Config{URL: server.URL, APIKey: "secret", Workspace: "prod"})
		fv, err := client.FetchContextVector(context.Background(), "product_rag_service", map[string]any{"user_id": "u1"}, map[string]any{"query": "how do I reset my password"})

		require.NoError(t, err)
		assert.Equal(t, "/api/v1/feature-service/get-features", gotPath)
		assert.Equal(t, "Api-Key secret", gotAuth)

		params := gotBody["params"].(map[string]any)
		assert.Equal(t, "product_rag_service", params["feature_service_name"])
		assert.Equal(t, "prod", params["workspace_name"])

		require.NotNil(t, fv)
		assert.Equal(t, "passage one", fv.Features["chunk_1_text"])
		assert.Equal(t, 0.92, fv.Features["chunk_1_score"])
		assert.Nil(t, fv.Features["user_profile.is_premium_member"])
		assert.Equal(t, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), fv.EffectiveTimes["chunk_1_text"])
		_, hasTime := fv.EffectiveTimes["user_profile.is_premium_member"]
		assert.False(t, hasTime)
		require.NotNil(t, fv.SLO)
		assert.Equal(t, 0.085, fv.SLO.ServerTimeSeconds)
	})

	t.Run("Non-2xx status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error": "feature service not found"}`, http.StatusNotFound)
		}))
		defer server.Close()

		client := NewClient(Config{URL: server.URL})
		_, err := client.FetchContextVector(context.Background(), "missing_service", nil, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
		assert.Contains(t, err.Error(), "missing_service")
	})

	t.Run("Missing URL is an error", func(t *testing.T) {
		client := NewClient(Config{})
		_, err := client.FetchContextVector(context.Background(), "svc", nil, nil)
		assert.Error(t, err)
	})

	t.Run("Context cancellation propagates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		client := NewClient(Config{URL: server.URL})
		_, err := client.FetchContextVector(ctx, "svc", nil, nil)
		assert.Error(t, err)
	})
}
