package qbittorrent

import (
	"math"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout    time.Duration
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithHTTPClient replaces the underlying HTTP client. The timeout option is
// ignored when a client is supplied.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithRateLimiter throttles outbound calls.
func WithRateLimiter(limiter *rate.Limiter) Option {
	return func(o *clientOptions) {
		o.limiter = limiter
	}
}

var rateLimitPattern = regexp.MustCompile(`^(\d+)/(minute|second)$`)

// ParseRateLimit turns "200/minute" or "10/second" into a limiter.
// An empty string means no limit.
func ParseRateLimit(s string) (*rate.Limiter, error) {
	if s == "" {
		return nil, nil
	}

	matches := rateLimitPattern.FindStringSubmatch(s)
	if len(matches) != 3 {
		return nil, &InvalidRateLimitError{Value: s}
	}

	count, err := strconv.Atoi(matches[1])
	if err != nil || count <= 0 {
		return nil, &InvalidRateLimitError{Value: s}
	}

	switch matches[2] {
	case "minute":
		burst := int(math.Max(1, float64(count)/4))
		return rate.NewLimiter(rate.Limit(float64(count)/60.0), burst), nil
	default:
		return rate.NewLimiter(rate.Limit(count), count), nil
	}
}
