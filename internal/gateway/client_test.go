package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"summit-registration/config"
	"summit-registration/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_CreateSession(t *testing.T) {
	ctx := context.Background()

	req := gateway.CreateSessionRequest{
		OrderID:       "SSS2025-1-abc123",
		Amount:        500_000,
		Currency:      "IDR",
		CustomerName:  "Ana Souza",
		CustomerEmail: "ana@example.com",
	}

	t.Run("real session from the gateway", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/payment-sessions", r.URL.Path)
			assert.Equal(t, "merchant-1", r.Header.Get("X-Merchant-ID"))
			assert.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))

			var body gateway.CreateSessionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "SSS2025-1-abc123", body.OrderID)

			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(gateway.Session{
				SessionID:  "sess-1",
				PaymentURL: "https://pay.example/s/sess-1",
			})
		}))
		defer server.Close()

		client := gateway.NewClient(config.GatewayConfig{
			BaseURL:    server.URL,
			MerchantID: "merchant-1",
			APIKey:     "key-1",
			Timeout:    time.Second,
		}, config.ServerConfig{BaseURL: "http://localhost:8080"})

		session, err := client.CreateSession(ctx, req)

		require.NoError(t, err)
		assert.False(t, session.Simulated)
		assert.Equal(t, "https://pay.example/s/sess-1", session.PaymentURL)
	})

	t.Run("unconfigured gateway yields a simulated session", func(t *testing.T) {
		client := gateway.NewClient(config.GatewayConfig{Timeout: time.Second},
			config.ServerConfig{BaseURL: "http://localhost:8080"})

		session, err := client.CreateSession(ctx, req)

		require.NoError(t, err)
		assert.True(t, session.Simulated)
		assert.Equal(t, "sim-SSS2025-1-abc123", session.SessionID)
		assert.Contains(t, session.PaymentURL, "/payments/return?order_id=SSS2025-1-abc123&status=SUCCESS")
	})

	t.Run("unreachable gateway falls back to a simulated session", func(t *testing.T) {
		client := gateway.NewClient(config.GatewayConfig{
			BaseURL: "http://127.0.0.1:1",
			Timeout: time.Second,
		}, config.ServerConfig{BaseURL: "http://localhost:8080"})

		session, err := client.CreateSession(ctx, req)

		require.NoError(t, err)
		assert.True(t, session.Simulated)
	})

	t.Run("gateway error status falls back to a simulated session", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := gateway.NewClient(config.GatewayConfig{
			BaseURL: server.URL,
			Timeout: time.Second,
		}, config.ServerConfig{BaseURL: "http://localhost:8080"})

		session, err := client.CreateSession(ctx, req)

		require.NoError(t, err)
		assert.True(t, session.Simulated)
	})
}
