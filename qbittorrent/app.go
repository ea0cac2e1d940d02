package qbittorrent

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Version returns the qBittorrent application version, e.g. "v4.6.2"
func (c *Client) Version(ctx context.Context) (string, error) {
	body, err := c.get(ctx, "app/version", nil)
	if err != nil {
		return "", fmt.Errorf("failed to get version: %w", err)
	}
	return strings.TrimSpace(string(body)), nil
}

// WebAPIVersion returns the WebUI API version, e.g. "2.9.3"
func (c *Client) WebAPIVersion(ctx context.Context) (string, error) {
	body, err := c.get(ctx, "app/webapiVersion", nil)
	if err != nil {
		return "", fmt.Errorf("failed to get web API version: %w", err)
	}
	return strings.TrimSpace(string(body)), nil
}

// Preferences returns the application preferences snapshot
func (c *Client) Preferences(ctx context.Context) (*Preferences, error) {
	body, err := c.get(ctx, "app/preferences", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	var prefs Preferences
	if err := json.Unmarshal(body, &prefs); err != nil {
		return nil, fmt.Errorf("%w: preferences: %v", ErrInvalidResponse, err)
	}
	return &prefs, nil
}
