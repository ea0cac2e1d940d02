package qbittorrent

import (
	"errors"
	"fmt"
)

// Common errors returned by the qBittorrent client.
var (
	// ErrConnectionFailed is returned when the request never got a response.
	ErrConnectionFailed = errors.New("connection to qBittorrent failed")

	// ErrAddFailed is returned when torrents/add answers with its failure sentinel.
	ErrAddFailed = errors.New("qBittorrent rejected the torrent")

	// ErrInvalidResponse indicates a body that could not be decoded.
	ErrInvalidResponse = errors.New("invalid response from qBittorrent")
)

// APIError represents a non-2xx answer from the WebUI API
type APIError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("qbittorrent API error: %s: status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("qbittorrent API error: %s: status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// IsForbidden reports whether the session cookie was missing or expired
func (e *APIError) IsForbidden() bool {
	return e.StatusCode == 403
}

// IsNotFound reports whether the torrent hash was unknown
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// InvalidRateLimitError is returned by ParseRateLimit
type InvalidRateLimitError struct {
	Value string
}

func (e *InvalidRateLimitError) Error() string {
	return fmt.Sprintf("invalid rate limit %q (want N/second or N/minute)", e.Value)
}
