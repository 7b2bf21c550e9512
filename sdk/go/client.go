// Package recibos provides a Go client for the SGCI receipt API
package recibos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is the receipt API client
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new receipt API client. The API key is only needed
// for the issuance calls; verification is public.
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Verificar checks a receipt by number. providedHash may be empty.
func (c *Client) Verificar(ctx context.Context, numero, providedHash string) (*VerifyResponse, error) {
	endpoint := c.baseURL + "/api/recibos/" + url.PathEscape(numero)
	if providedHash != "" {
		endpoint += "?hash=" + url.QueryEscape(providedHash)
	}

	var out VerifyResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Compartilhado retrieves a receipt by its public share identifier
func (c *Client) Compartilhado(ctx context.Context, shareID string) (*ShareResponse, error) {
	endpoint := c.baseURL + "/api/recibos/share/" + url.PathEscape(shareID)

	var out ShareResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Emitir computes the fingerprint and QR payload for a receipt without
// persisting it
func (c *Client) Emitir(ctx context.Context, req *ReciboRequest) (*EmitirResponse, error) {
	var out EmitirResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/api/recibos", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Salvar persists a receipt and returns its share identifier
func (c *Client) Salvar(ctx context.Context, req *ReciboRequest) (*SalvarResponse, error) {
	var out SalvarResponse
	if err := c.do(ctx, http.MethodPut, c.baseURL+"/api/recibos", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: "INTERNAL_ERROR"}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
