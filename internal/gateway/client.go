package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"summit-registration/config"
	"summit-registration/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client creates hosted-payment sessions with the payment gateway.
type Client interface {
	CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error)
}

type CreateSessionRequest struct {
	OrderID       string `json:"invoice_number"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	ReturnURL     string `json:"return_url"`
	CallbackURL   string `json:"callback_url"`
}

type Session struct {
	SessionID  string `json:"session_id"`
	PaymentURL string `json:"payment_url"`
	// Simulated is set when the gateway was unreachable or unconfigured
	// and a demo session was returned instead.
	Simulated bool `json:"simulated"`
}

type HTTPClient struct {
	cfg       config.GatewayConfig
	serverCfg config.ServerConfig
	hc        *http.Client
	log       *zap.Logger
}

func NewClient(cfg config.GatewayConfig, serverCfg config.ServerConfig) Client {
	return &HTTPClient{
		cfg:       cfg,
		serverCfg: serverCfg,
		hc: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: logger.WithComponent("gateway"),
	}
}

// CreateSession calls the gateway, falling back to a simulated session
// when the gateway is unconfigured or unreachable. Registration must
// not fail because the gateway is down; reconciliation remains the
// authoritative state change either way.
func (c *HTTPClient) CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error) {
	if c.cfg.BaseURL == "" {
		return c.simulatedSession(req), nil
	}

	session, err := c.createSession(ctx, req)
	if err != nil {
		c.log.Warn("gateway unreachable, falling back to simulated session",
			zap.String("order_id", req.OrderID), zap.Error(err))
		return c.simulatedSession(req), nil
	}

	return session, nil
}

func (c *HTTPClient) createSession(ctx context.Context, req CreateSessionRequest) (*Session, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/v1/payment-sessions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Merchant-ID", c.cfg.MerchantID)
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	if session.PaymentURL == "" {
		return nil, fmt.Errorf("gateway response missing payment_url")
	}

	return &session, nil
}

func (c *HTTPClient) simulatedSession(req CreateSessionRequest) *Session {
	return &Session{
		SessionID: "sim-" + req.OrderID,
		PaymentURL: fmt.Sprintf("%s/payments/return?order_id=%s&status=SUCCESS",
			c.serverCfg.BaseURL, req.OrderID),
		Simulated: true,
	}
}
