package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"ragdebug/internal/domain"
)

// Client is a minimal REST client to a feature-store serving endpoint.
// It fetches online feature vectors for a feature service and maps the
// response into the domain shape the analyzer consumes.
type Client struct {
	url       string
	apiKey    string
	workspace string
	client    *http.Client
}

type Config struct {
	URL       string
	APIKey    string
	Workspace string
	Timeout   time.Duration
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		url:       cfg.URL,
		apiKey:    cfg.APIKey,
		workspace: cfg.Workspace,
		client:    &http.Client{Timeout: timeout},
	}
}

type getFeaturesRequest struct {
	Params getFeaturesParams `json:"params"`
}

type getFeaturesParams struct {
	FeatureServiceName string          `json:"feature_service_name"`
	WorkspaceName      string          `json:"workspace_name,omitempty"`
	JoinKeyMap         map[string]any  `json:"join_key_map"`
	RequestContextMap  map[string]any  `json:"request_context_map,omitempty"`
	MetadataOptions    metadataOptions `json:"metadata_options"`
}

type metadataOptions struct {
	IncludeNames          bool `json:"include_names"`
	IncludeEffectiveTimes bool `json:"include_effective_times"`
	IncludeSLOInfo        bool `json:"include_slo_info"`
}

type getFeaturesResponse struct {
	Result struct {
		Features []any `json:"features"`
	} `json:"result"`
	Metadata struct {
		Features []struct {
			Name          string `json:"name"`
			EffectiveTime string `json:"effectiveTime"`
		} `json:"features"`
	} `json:"metadata"`
	SLOInfo *struct {
		SLOEligible              bool    `json:"sloEligible"`
		ServerTimeSeconds        float64 `json:"serverTimeSeconds"`
		SLOServerTimeSeconds     float64 `json:"sloServerTimeSeconds"`
		StoreResponseTimeSeconds float64 `json:"storeResponseTimeSeconds"`
	} `json:"sloInfo"`
}

// FetchContextVector retrieves the online feature vector for the given
// service and join keys. Feature names arrive in response metadata and
// are zipped with the value array; entries without a name are dropped.
func (c *Client) FetchContextVector(ctx context.Context, serviceName string, joinKeys map[string]any, requestData map[string]any) (*domain.FeatureVector, error) {
	if c.url == "" {
		return nil, errors.New("feature store url not configured")
	}
	if joinKeys == nil {
		joinKeys = map[string]any{}
	}
	req := getFeaturesRequest{Params: getFeaturesParams{
		FeatureServiceName: serviceName,
		WorkspaceName:      c.workspace,
		JoinKeyMap:         joinKeys,
		RequestContextMap:  requestData,
		MetadataOptions: metadataOptions{
			IncludeNames:          true,
			IncludeEffectiveTimes: true,
			IncludeSLOInfo:        true,
		},
	}}

	var resp getFeaturesResponse
	if err := c.postJSON(ctx, c.url+"/api/v1/feature-service/get-features", req, &resp); err != nil {
		return nil, fmt.Errorf("fetch context vector for %q: %w", serviceName, err)
	}

	features := make(map[string]any, len(resp.Result.Features))
	effectiveTimes := make(map[string]time.Time)
	for i, meta := range resp.Metadata.Features {
		if meta.Name == "" || i >= len(resp.Result.Features) {
			continue
		}
		features[meta.Name] = resp.Result.Features[i]
		if meta.EffectiveTime != "" {
			if ts, err := time.Parse(time.RFC3339, meta.EffectiveTime); err == nil {
				effectiveTimes[meta.Name] = ts
			}
		}
	}

	fv := &domain.FeatureVector{Features: features, EffectiveTimes: effectiveTimes}
	if resp.SLOInfo != nil {
		fv.SLO = &domain.SLOInfo{
			Eligible:                 resp.SLOInfo.SLOEligible,
			ServerTimeSeconds:        resp.SLOInfo.ServerTimeSeconds,
			SLOServerTimeSeconds:     resp.SLOInfo.SLOServerTimeSeconds,
			StoreResponseTimeSeconds: resp.SLOInfo.StoreResponseTimeSeconds,
		}
	}
	return fv, nil
}

func (c *Client) postJSON(ctx context.Context, url string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Api-Key "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("feature store returned %s: %s", resp.Status, truncate(string(data), 200))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
