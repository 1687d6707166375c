// Package client is a Go client for the vlanreg HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"evalgo.org/vlanreg/models"
)

// Client talks to a vlanreg server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Error is a non-2xx answer from the server.
type Error struct {
	StatusCode int
	Message    string
	Details    string
	// Fields holds any extra keys of the error body, e.g. min/max or the
	// conflicting vlan.
	Fields map[string]json.RawMessage
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Message, e.StatusCode, e.Details)
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

// CreateRequest is the body of POST /vlans. An empty Name lets the server
// assign the default.
type CreateRequest struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// CreateResponse is returned when a VLAN is registered.
type CreateResponse struct {
	Message    string      `json:"message" yaml:"message"`
	VLAN       models.VLAN `json:"vlan" yaml:"vlan"`
	TotalVLANs int         `json:"total_vlans" yaml:"total_vlans"`
}

// ListResponse is returned by GET /vlans.
type ListResponse struct {
	TotalVLANs int           `json:"total_vlans" yaml:"total_vlans"`
	VLANs      []models.VLAN `json:"vlans" yaml:"vlans"`
}

// Health is returned by GET /health.
type Health struct {
	Status     string `json:"status" yaml:"status"`
	Service    string `json:"service" yaml:"service"`
	Version    string `json:"version" yaml:"version"`
	TotalVLANs int    `json:"total_vlans" yaml:"total_vlans"`
	Memory     struct {
		HeapAllocBytes uint64 `json:"heap_alloc_bytes" yaml:"heap_alloc_bytes"`
		SysBytes       uint64 `json:"sys_bytes" yaml:"sys_bytes"`
		Goroutines     int    `json:"goroutines" yaml:"goroutines"`
	} `json:"memory" yaml:"memory"`
	Uptime    string    `json:"uptime" yaml:"uptime"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Create registers a VLAN.
func (c *Client) Create(ctx context.Context, req CreateRequest) (*CreateResponse, error) {
	var out CreateResponse
	if err := c.do(ctx, http.MethodPost, "/vlans", req, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns every registered VLAN.
func (c *Client) List(ctx context.Context) (*ListResponse, error) {
	var out ListResponse
	if err := c.do(ctx, http.MethodGet, "/vlans", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns a single VLAN.
func (c *Client) Get(ctx context.Context, id int) (*models.VLAN, error) {
	var out models.VLAN
	if err := c.do(ctx, http.MethodGet, "/vlans/"+strconv.Itoa(id), nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health returns the server health report.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in interface{}, want int, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to API server: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != want {
		return decodeError(resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(status int, data []byte) error {
	apiErr := &Error{StatusCode: status, Message: http.StatusText(status)}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return apiErr
	}

	if raw, ok := fields["error"]; ok {
		_ = json.Unmarshal(raw, &apiErr.Message)
		delete(fields, "error")
	}
	if raw, ok := fields["details"]; ok {
		_ = json.Unmarshal(raw, &apiErr.Details)
		delete(fields, "details")
	}
	if len(fields) > 0 {
		apiErr.Fields = fields
	}
	return apiErr
}
