package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a thin Paystack transaction API client. The core only asks
// the gateway to initialize a checkout and to verify a reference; the
// resulting status is persisted verbatim, never computed locally.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new Paystack client with the given configuration.
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() Config {
	return c.config
}

// Initialize starts a checkout session for the given amount and payer
// email, returning the authorization URL the payer is redirected to.
func (c *Client) Initialize(ctx context.Context, req InitializeRequest) (*InitializeData, error) {
	if req.Email == "" || req.Amount <= 0 {
		return nil, ErrInvalidRequest
	}
	if req.CallbackURL == "" {
		req.CallbackURL = c.config.CallbackURL
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/transaction/initialize", req)
	if err != nil {
		return nil, err
	}

	var envelope apiEnvelope[InitializeData]
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal initialize response: %w", err)
	}
	if !envelope.Status {
		return nil, fmt.Errorf("%w: %s", ErrGatewayFailure, envelope.Message)
	}

	return &envelope.Data, nil
}

// Verify fetches the gateway's view of a transaction reference.
func (c *Client) Verify(ctx context.Context, reference string) (*VerifyData, error) {
	if reference == "" {
		return nil, ErrInvalidRequest
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}

	var envelope apiEnvelope[VerifyData]
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal verify response: %w", err)
	}
	if !envelope.Status {
		return nil, fmt.Errorf("%w: %s", ErrGatewayFailure, envelope.Message)
	}

	return &envelope.Data, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return body, nil
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case http.StatusNotFound:
		return nil, ErrTransactionNotFound
	default:
		return nil, fmt.Errorf("%w: status %d", ErrGatewayFailure, resp.StatusCode)
	}
}
