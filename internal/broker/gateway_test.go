package broker_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabsplit/internal/broker"
	"tabsplit/internal/config"
	"tabsplit/internal/domain"
)

func newTestGateway(serverURL string) *broker.GatewayClient {
	return broker.NewGatewayClient(&config.BrokerConfig{
		Endpoint: serverURL,
		APIKey:   "test-gateway-key",
	})
}

func TestRequestHeaders_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/inference/request-headers", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-gateway-key", r.Header.Get("Authorization"))

		var reqBody map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "0xprovider", reqBody["provider"])
		assert.Equal(t, "abc123", reqBody["query"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"headers": map[string]string{"X-Billing-Signature": "sig", "X-Billing-Nonce": "7"},
		})
	}))
	defer server.Close()

	g := newTestGateway(server.URL)
	headers, err := g.RequestHeaders(context.Background(), "0xprovider", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "sig", headers["X-Billing-Signature"])
	assert.Equal(t, "7", headers["X-Billing-Nonce"])
}

func TestSettle_Verdicts(t *testing.T) {
	for _, valid := range []bool{true, false} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/inference/settle", r.URL.Path)

			var reqBody map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
			assert.Equal(t, "response content", reqBody["content"])
			assert.Equal(t, "chatcmpl-1", reqBody["response_id"])

			_ = json.NewEncoder(w).Encode(map[string]bool{"valid": valid})
		}))

		g := newTestGateway(server.URL)
		got, err := g.Settle(context.Background(), "0xprovider", "response content", "chatcmpl-1")
		require.NoError(t, err)
		assert.Equal(t, valid, got)
		server.Close()
	}
}

func TestBalance_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/ledger/balance", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]float64{"total": 10, "available": 7.5, "locked": 2.5})
	}))
	defer server.Close()

	g := newTestGateway(server.URL)
	balance, err := g.Balance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10.0, balance.Total)
	assert.Equal(t, 7.5, balance.Available)
	assert.Equal(t, 2.5, balance.Locked)
}

func TestServices_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/services", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"services": []map[string]interface{}{
				{"provider": "0xa", "model": "qwen2.5-vl-72b-instruct", "verified": true},
				{"provider": "0xb", "model": "deepseek-r1-70b", "verified": true},
			},
		})
	}))
	defer server.Close()

	g := newTestGateway(server.URL)
	services, err := g.Services(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "qwen2.5-vl-72b-instruct", services[0].Model)
}

func TestAcknowledge_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/inference/acknowledge", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	g := newTestGateway(server.URL)
	require.NoError(t, g.Acknowledge(context.Background(), "0xprovider"))
}

func TestGateway_ErrorStatusIsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"insufficient funds"}`))
	}))
	defer server.Close()

	g := newTestGateway(server.URL)
	_, err := g.RequestHeaders(context.Background(), "0xprovider", "abc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstreamUnavailable))
	assert.Contains(t, err.Error(), "insufficient funds")
}

func TestGateway_ConnectionRefusedIsUpstreamError(t *testing.T) {
	g := newTestGateway("http://127.0.0.1:1")
	_, err := g.Balance(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstreamUnavailable))
}
