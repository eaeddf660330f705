package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/loopwork-ai/mcpcall/jsonrpc"
)

const (
	defaultTimeout       = 10 * time.Second
	defaultReadyAttempts = 40
	defaultReadyDelay    = 50 * time.Millisecond

	// Each readiness probe gets its own short deadline, independent of
	// the client's normal request timeout.
	readyProbeTimeout = 1 * time.Second
)

// Well-known request ids used by the typed helpers. Ids only need to be
// stable per logical call; uniqueness across the process is not required.
const (
	initializeID = 1
	toolsListID  = 2
	toolsCallID  = 3
)

// Client talks JSON-RPC 2.0 over HTTP POST to a single MCP endpoint.
// It holds no mutable state: every call is an independent round trip,
// and callers wanting parallel invocations can share one Client across
// goroutines.
type Client struct {
	url           string
	token         string
	client        *http.Client
	timeout       time.Duration
	readyAttempts int
	readyDelay    time.Duration
	logger        *slog.Logger
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient sets the underlying HTTP client used for all requests
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.client = httpClient
	}
}

// WithAuthToken sets a bearer token sent as the Authorization header
func WithAuthToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout sets the per-request timeout for normal calls
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithReadinessPolicy sets the attempt budget and inter-attempt delay
// used by WaitForReady
func WithReadinessPolicy(attempts int, delay time.Duration) ClientOption {
	return func(c *Client) {
		c.readyAttempts = attempts
		c.readyDelay = delay
	}
}

// NewClient creates a client for the MCP endpoint at url
func NewClient(url string, opts ...ClientOption) *Client {
	c := &Client{
		url:           url,
		client:        &http.Client{},
		timeout:       defaultTimeout,
		readyAttempts: defaultReadyAttempts,
		readyDelay:    defaultReadyDelay,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the endpoint this client talks to
func (c *Client) URL() string {
	return c.url
}

// Post sends a single JSON-RPC request and returns the decoded response
// object. It performs exactly one round trip: a non-2xx status yields a
// *TransportError preserving status and body, an undecodable body
// yields a *DecodeError. Retry policy lives in WaitForReady alone.
func (c *Client) Post(ctx context.Context, request jsonrpc.Request) (jsonrpc.Response, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("error encoding request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("sending request", "url", c.url, "method", request.Method, "id", request.ID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       body,
		}
	}

	var response jsonrpc.Response
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &DecodeError{Err: err}
	}

	c.logger.Debug("received response", "url", c.url, "method", request.Method, "id", request.ID)
	return response, nil
}

// Call sends a request for the given method and returns the raw result
// value, surfacing protocol errors as *jsonrpc.Error. Any method string
// is accepted, well known or not.
func (c *Client) Call(ctx context.Context, method string, params map[string]interface{}, id int) (json.RawMessage, error) {
	response, err := c.Post(ctx, jsonrpc.NewRequest(method, params, id))
	if err != nil {
		return nil, err
	}
	return response.Result()
}

// Initialize performs the initialize handshake and returns the server's
// advertised identity and capabilities.
func (c *Client) Initialize(ctx context.Context) (*InitializeResult, error) {
	raw, err := c.Call(ctx, "initialize", nil, initializeID)
	if err != nil {
		return nil, err
	}
	var result InitializeResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("error decoding initialize result: %w", err)
	}
	return &result, nil
}

// ListTools returns the tools advertised by the server
func (c *Client) ListTools(ctx context.Context) (*ToolsListResult, error) {
	raw, err := c.Call(ctx, "tools/list", nil, toolsListID)
	if err != nil {
		return nil, err
	}
	var result ToolsListResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("error decoding tools/list result: %w", err)
	}
	return &result, nil
}

// CallTool invokes the named tool. The arguments key is omitted from
// the params when no arguments are given. A returned *ToolResult with
// IsError set is a tool-level failure: it is data, not an error value,
// and the caller must check it explicitly.
func (c *Client) CallTool(ctx context.Context, name string, arguments map[string]interface{}) (*ToolResult, error) {
	params := map[string]interface{}{"name": name}
	if len(arguments) > 0 {
		params["arguments"] = arguments
	}

	raw, err := c.Call(ctx, "tools/call", params, toolsCallID)
	if err != nil {
		return nil, err
	}
	var result ToolResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("error decoding tools/call result: %w", err)
	}
	return &result, nil
}

// WaitForReady polls the endpoint with initialize requests until the
// server answers without a protocol error, tolerating a server that is
// still starting up. Connectivity and decode failures are absorbed and
// retried after the configured delay; a decoded protocol error is a
// genuine answer and is surfaced immediately. The result shape is
// deliberately not validated: any response lacking an error key counts
// as ready.
func (c *Client) WaitForReady(ctx context.Context) error {
	request := jsonrpc.NewRequest("initialize", nil, initializeID)

	for attempt := 1; attempt <= c.readyAttempts; attempt++ {
		probeCtx, cancel := context.WithTimeout(ctx, readyProbeTimeout)
		response, err := c.Post(probeCtx, request)
		cancel()

		if err == nil {
			if !response.HasError() {
				c.logger.Debug("server ready", "url", c.url, "attempt", attempt)
				return nil
			}
			if rpcErr, decodeErr := response.Err(); decodeErr == nil && rpcErr != nil {
				return rpcErr
			}
			// error key present but null or undecodable: keep probing
		} else {
			c.logger.Debug("server not ready", "url", c.url, "attempt", attempt, "error", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.readyDelay):
		}
	}

	return &ReadinessTimeoutError{URL: c.url, Attempts: c.readyAttempts, Delay: c.readyDelay}
}
