// Package reports is a thin client for the centralized report dashboard API.
// Calls are pass-throughs: no retries and no caching.
package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/toast/internal/core/logging"
)

const (
	accessPath        = "reports/access/"
	generatePath      = "reports/generate/"
	filterOptionsPath = "reports/filter-options/"

	defaultTimeout = 10 * time.Second
)

// ReportInfo is a report the current role may generate.
type ReportInfo struct {
	ReportType  string `json:"report_type"`
	DisplayName string `json:"display_name"`
}

// Access lists the reports available to the caller's role.
type Access struct {
	Role           string       `json:"role"`
	AllowedReports []ReportInfo `json:"allowed_reports"`
}

// GenerateRequest selects a report and its time window. Zero values are
// omitted so the server applies its own defaults.
type GenerateRequest struct {
	ReportType   string         `json:"report_type"`
	TimeFilter   string         `json:"time_filter,omitempty"`
	Quarter      int            `json:"quarter,omitempty"`
	Month        int            `json:"month,omitempty"`
	Year         int            `json:"year,omitempty"`
	DateFrom     string         `json:"date_from,omitempty"`
	DateTo       string         `json:"date_to,omitempty"`
	ExtraFilters map[string]any `json:"extra_filters,omitempty"`
}

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("reports api: status %d", e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Client talks to the reports API under a base URL.
type Client struct {
	baseURL *url.URL
	token   string
	http    *http.Client
	timeout time.Duration
	logger  zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request. It applies to a copy of the HTTP client,
// so a shared client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  logging.Component("reports"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c, nil
}

// ListAllowed returns the caller's role and the reports it may generate.
func (c *Client) ListAllowed(ctx context.Context) (Access, error) {
	var access Access
	body, err := c.do(ctx, http.MethodGet, accessPath, nil, nil)
	if err != nil {
		return access, err
	}
	if err := json.Unmarshal(body, &access); err != nil {
		return access, fmt.Errorf("decode report access: %w", err)
	}
	if access.AllowedReports == nil {
		access.AllowedReports = []ReportInfo{}
	}
	return access, nil
}

// Generate asks the server to build a report. The report shape depends on
// the report type, so the payload is returned undecoded.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (json.RawMessage, error) {
	if req.ReportType == "" {
		return nil, fmt.Errorf("report type is required")
	}
	return c.do(ctx, http.MethodPost, generatePath, nil, req)
}

// FilterOptions returns the filters the server offers for reportType.
func (c *Client) FilterOptions(ctx context.Context, reportType string) (json.RawMessage, error) {
	if reportType == "" {
		return nil, fmt.Errorf("report type is required")
	}
	return c.do(ctx, http.MethodGet, filterOptionsPath, url.Values{"report_type": {reportType}}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	u := c.baseURL.ResolveReference(&url.URL{Path: path})
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		bits, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(bits)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("reports request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, body)
	}

	return body, nil
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Error
		apiErr.Detail = payload.Detail
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
