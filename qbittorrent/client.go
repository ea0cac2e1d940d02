package qbittorrent

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const apiPrefix = "/api/v2/"

// Client talks to the qBittorrent WebUI API
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	logger     zerolog.Logger
}

// NewClient creates a new qBittorrent client for the given base URL
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("qbittorrent URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid qbittorrent URL %q: %w", baseURL, err)
	}

	options := clientOptions{
		timeout:   30 * time.Second,
		userAgent: "qbitgate",
	}
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		limiter:    options.limiter,
		userAgent:  options.userAgent,
		logger:     logger,
	}, nil
}

// BaseURL returns the upstream base URL without trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

type request struct {
	method      string
	endpoint    string
	query       url.Values
	body        io.Reader
	contentType string
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	return c.do(ctx, request{method: http.MethodGet, endpoint: endpoint, query: query})
}

func (c *Client) postForm(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	return c.do(ctx, request{
		method:      http.MethodPost,
		endpoint:    endpoint,
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	})
}

// do performs a single request against the API; there are no retries
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	u := c.baseURL + apiPrefix + r.endpoint
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, r.body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if cookie := CookieFromContext(ctx); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConnectionFailed, r.endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("method", r.method).
		Str("endpoint", r.endpoint).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("qBittorrent API call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   r.endpoint,
			Body:       string(bytes.TrimSpace(body)),
		}
	}

	return body, nil
}

type cookieKey struct{}

// WithCookie returns a context carrying the caller's Cookie header, which is
// forwarded verbatim on every outbound call made with that context
func WithCookie(ctx context.Context, cookie string) context.Context {
	if cookie == "" {
		return ctx
	}
	return context.WithValue(ctx, cookieKey{}, cookie)
}

// CookieFromContext returns the forwarded Cookie header, if any
func CookieFromContext(ctx context.Context) string {
	cookie, _ := ctx.Value(cookieKey{}).(string)
	return cookie
}
