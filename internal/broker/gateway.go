// Package broker implements the compute-network broker gateway client, the
// access layer for metered inference and settlement checks.
package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tabsplit/internal/config"
	"tabsplit/internal/domain"
	"tabsplit/internal/port"
)

// GatewayClient talks to the broker sidecar over HTTP. The sidecar owns the
// wallet and the on-chain ledger; this process only asks it for billing
// headers and settlement verdicts.
type GatewayClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewGatewayClient creates a broker gateway client from config.
func NewGatewayClient(cfg *config.BrokerConfig) *GatewayClient {
	timeout := cfg.TimeoutSecs
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &GatewayClient{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
	}
}

func (g *GatewayClient) RequestHeaders(ctx context.Context, provider, query string) (map[string]string, error) {
	var out struct {
		Headers map[string]string `json:"headers"`
	}
	err := g.post(ctx, "/v1/inference/request-headers", map[string]string{
		"provider": provider,
		"query":    query,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Headers, nil
}

func (g *GatewayClient) Settle(ctx context.Context, provider, content, responseID string) (bool, error) {
	var out struct {
		Valid bool `json:"valid"`
	}
	err := g.post(ctx, "/v1/inference/settle", map[string]string{
		"provider":    provider,
		"content":     content,
		"response_id": responseID,
	}, &out)
	if err != nil {
		return false, err
	}
	return out.Valid, nil
}

func (g *GatewayClient) Balance(ctx context.Context) (*port.BalanceInfo, error) {
	var out port.BalanceInfo
	if err := g.get(ctx, "/v1/ledger/balance", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *GatewayClient) Services(ctx context.Context) ([]port.ServiceInfo, error) {
	var out struct {
		Services []port.ServiceInfo `json:"services"`
	}
	if err := g.get(ctx, "/v1/services", &out); err != nil {
		return nil, err
	}
	return out.Services, nil
}

func (g *GatewayClient) Acknowledge(ctx context.Context, provider string) error {
	return g.post(ctx, "/v1/inference/acknowledge", map[string]string{
		"provider": provider,
	}, nil)
}

func (g *GatewayClient) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling broker request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating broker request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return g.do(req, out)
}

func (g *GatewayClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+path, nil)
	if err != nil {
		return fmt.Errorf("creating broker request: %w", err)
	}
	return g.do(req, out)
}

func (g *GatewayClient) do(req *http.Request, out any) error {
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: broker gateway: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading broker response: %v", domain.ErrUpstreamUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: broker gateway status %d: %s", domain.ErrUpstreamUnavailable, resp.StatusCode, truncate(string(respBody), 200))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: decoding broker response: %v", domain.ErrUpstreamUnavailable, err)
	}
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
