// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"bytes"
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jeranaias/opsdesk/internal/config"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DefaultBaseURL is the generative-language API root.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel is the model used when none is configured.
	DefaultModel = "gemini-1.5-flash"

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize caps how much of a response body is read (10 MiB).
	MaxResponseSize = 10 * 1024 * 1024
)

// sharedHTTPClient is reused across clients for connection pooling.
// Deadlines come from the request context, not from the http.Client.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
}

// =============================================================================
// CLIENT
// =============================================================================

// Client calls the generateContent endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	fallbacks  Fallbacks
	logger     *zap.Logger
}

// NewClient creates a client with default settings.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		timeout:    DefaultTimeout,
		httpClient: sharedHTTPClient,
		fallbacks:  DefaultFallbacks,
		logger:     zap.NewNop(),
	}
}

// NewClientFromConfig creates a client from the [gemini] config section.
func NewClientFromConfig(cfg config.GeminiConfig) *Client {
	c := NewClient(cfg.APIKey).
		WithTimeout(cfg.Timeout()).
		WithRateLimit(cfg.RequestsPerMinute)
	if cfg.BaseURL != "" {
		c = c.WithBaseURL(cfg.BaseURL)
	}
	if cfg.Model != "" {
		c = c.WithModel(cfg.Model)
	}
	return c
}

// WithBaseURL sets the API root.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// WithModel sets the model name.
func (c *Client) WithModel(model string) *Client {
	c.model = model
	return c
}

// WithTimeout sets the per-request timeout. Zero waits indefinitely.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.timeout = timeout
	return c
}

// WithRateLimit spaces requests to at most perMinute per minute.
// Zero or less disables the limiter.
func (c *Client) WithRateLimit(perMinute int) *Client {
	if perMinute <= 0 {
		c.limiter = nil
		return c
	}
	c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
	return c
}

// WithFallbacks sets the texts returned by GetResponse on failure.
func (c *Client) WithFallbacks(f Fallbacks) *Client {
	c.fallbacks = f
	return c
}

// WithLogger sets the diagnostic logger.
func (c *Client) WithLogger(logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger.Named("gemini")
	return c
}

// IsConfigured returns true if an API key is set.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Endpoint returns the generateContent URL without the key query.
// It is safe to log.
func (c *Client) Endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
}

// KeyFingerprint returns a short SHA-256 digest of the API key.
func (c *Client) KeyFingerprint() string {
	if c.apiKey == "" {
		return "none"
	}
	sum := sha256.Sum256([]byte(c.apiKey))
	return hex.EncodeToString(sum[:])[:12]
}

// =============================================================================
// GENERATE
// =============================================================================

// Generate sends a single prompt and returns the first candidate text verbatim.
//
// Errors are either an *APIError (wrapping ErrServiceUnavailable) or a
// *TransportError. Use Classify to reduce them to an Outcome.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.IsConfigured() {
		return "", &TransportError{Op: "configure", Err: ErrNotConfigured}
	}
	if strings.TrimSpace(prompt) == "" {
		return "", &TransportError{Op: "build request", Err: ErrEmptyPrompt}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", &TransportError{Op: "rate limit", Err: err}
		}
	}

	body, err := json.Marshal(NewGenerateRequest(prompt))
	if err != nil {
		return "", &TransportError{Op: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL(), bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	c.logger.Debug("request",
		zap.String("endpoint", c.Endpoint()),
		zap.String("key", c.KeyFingerprint()),
		zap.Int("prompt_len", len(prompt)),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Op: "send request", Err: redactURLError(err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return "", &TransportError{Op: "read response", Err: err}
	}

	c.logger.Debug("response",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		return "", c.handleErrorResponse(resp.StatusCode, data)
	}

	var result GenerateResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", &TransportError{Op: "decode response", Err: err}
	}

	text, ok := result.FirstText()
	if !ok {
		return "", &APIError{Status: resp.StatusCode, Message: "response has no candidates"}
	}
	return text, nil
}

// GetResponse returns the completion for prompt, or a fallback text on any
// failure. It never returns an error; failures are logged at warn level.
func (c *Client) GetResponse(ctx context.Context, prompt string) string {
	text, err := c.Generate(ctx, prompt)
	if err == nil {
		return text
	}
	c.logger.Warn("completion failed",
		zap.String("outcome", Classify(err).String()),
		zap.Error(err),
	)
	return c.fallbacks.For(Classify(err))
}

// requestURL returns the endpoint with the key query attached.
func (c *Client) requestURL() string {
	q := url.Values{}
	q.Set("key", c.apiKey)
	return c.Endpoint() + "?" + q.Encode()
}

// handleErrorResponse builds an APIError from a non-200 response.
func (c *Client) handleErrorResponse(status int, body []byte) error {
	var errResp apiErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return &APIError{
			Status:  status,
			Code:    errResp.Error.Status,
			Message: errResp.Error.Message,
		}
	}
	return &APIError{
		Status:  status,
		Message: http.StatusText(status),
	}
}

// redactURLError strips the URL (and so the key) from *url.Error values.
func redactURLError(err error) error {
	if uerr, ok := err.(*url.Error); ok {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}
