package qbittorrent

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// GetTorrents retrieves the full torrent list
func (c *Client) GetTorrents(ctx context.Context) ([]Torrent, error) {
	body, err := c.get(ctx, "torrents/info", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get torrents: %w", err)
	}

	var torrents []Torrent
	if err := json.Unmarshal(body, &torrents); err != nil {
		return nil, fmt.Errorf("%w: torrents: %v", ErrInvalidResponse, err)
	}

	c.logger.Debug().Msgf("Retrieved %d torrents from qBittorrent", len(torrents))
	return torrents, nil
}

// GetProperties retrieves the generic properties of one torrent
func (c *Client) GetProperties(ctx context.Context, hash string) (*TorrentProperties, error) {
	body, err := c.get(ctx, "torrents/properties", url.Values{"hash": {hash}})
	if err != nil {
		return nil, fmt.Errorf("failed to get properties of %s: %w", hash, err)
	}

	var props TorrentProperties
	if err := json.Unmarshal(body, &props); err != nil {
		return nil, fmt.Errorf("%w: properties of %s: %v", ErrInvalidResponse, hash, err)
	}
	return &props, nil
}

// GetFiles retrieves the file list of one torrent, in upstream order
func (c *Client) GetFiles(ctx context.Context, hash string) (TorrentFiles, error) {
	body, err := c.get(ctx, "torrents/files", url.Values{"hash": {hash}})
	if err != nil {
		return nil, fmt.Errorf("failed to get files of %s: %w", hash, err)
	}

	var files TorrentFiles
	if err := json.Unmarshal(body, &files); err != nil {
		return nil, fmt.Errorf("%w: files of %s: %v", ErrInvalidResponse, hash, err)
	}
	return files, nil
}

// GetCategories retrieves the category mapping keyed by category name.
// Records are kept raw so they can be passed on unmodified.
func (c *Client) GetCategories(ctx context.Context) (map[string]json.RawMessage, error) {
	body, err := c.get(ctx, "torrents/categories", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	categories := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &categories); err != nil {
		return nil, fmt.Errorf("%w: categories: %v", ErrInvalidResponse, err)
	}
	return categories, nil
}

func (c *Client) hashAction(ctx context.Context, endpoint, hash string) error {
	_, err := c.postForm(ctx, endpoint, url.Values{"hashes": {hash}})
	if err != nil {
		return fmt.Errorf("failed to %s %s: %w", strings.TrimPrefix(endpoint, "torrents/"), hash, err)
	}
	return nil
}

// Resume resumes a torrent
func (c *Client) Resume(ctx context.Context, hash string) error {
	return c.hashAction(ctx, "torrents/resume", hash)
}

// Pause pauses a torrent
func (c *Client) Pause(ctx context.Context, hash string) error {
	return c.hashAction(ctx, "torrents/pause", hash)
}

// IncreasePriority moves a torrent one step up the queue
func (c *Client) IncreasePriority(ctx context.Context, hash string) error {
	return c.hashAction(ctx, "torrents/increasePrio", hash)
}

// DecreasePriority moves a torrent one step down the queue
func (c *Client) DecreasePriority(ctx context.Context, hash string) error {
	return c.hashAction(ctx, "torrents/decreasePrio", hash)
}

// TopPriority moves a torrent to the top of the queue
func (c *Client) TopPriority(ctx context.Context, hash string) error {
	return c.hashAction(ctx, "torrents/topPrio", hash)
}

// BottomPriority moves a torrent to the bottom of the queue
func (c *Client) BottomPriority(ctx context.Context, hash string) error {
	return c.hashAction(ctx, "torrents/bottomPrio", hash)
}

// Delete removes a torrent, optionally with its downloaded data
func (c *Client) Delete(ctx context.Context, hash string, deleteFiles bool) error {
	form := url.Values{
		"hashes":      {hash},
		"deleteFiles": {strconv.FormatBool(deleteFiles)},
	}
	if _, err := c.postForm(ctx, "torrents/delete", form); err != nil {
		return fmt.Errorf("failed to delete %s: %w", hash, err)
	}
	return nil
}

// SetLocation moves a torrent's data to a new directory
func (c *Client) SetLocation(ctx context.Context, hash, location string) error {
	form := url.Values{
		"hashes":   {hash},
		"location": {location},
	}
	if _, err := c.postForm(ctx, "torrents/setLocation", form); err != nil {
		return fmt.Errorf("failed to set location of %s: %w", hash, err)
	}
	return nil
}

// Rename changes a torrent's display name
func (c *Client) Rename(ctx context.Context, hash, name string) error {
	form := url.Values{
		"hash": {hash},
		"name": {name},
	}
	if _, err := c.postForm(ctx, "torrents/rename", form); err != nil {
		return fmt.Errorf("failed to rename %s: %w", hash, err)
	}
	return nil
}

// SetDownloadLimit sets a torrent's download rate limit in bytes/s
func (c *Client) SetDownloadLimit(ctx context.Context, hash string, limit int64) error {
	return c.setLimit(ctx, "torrents/setDownloadLimit", hash, limit)
}

// SetUploadLimit sets a torrent's upload rate limit in bytes/s
func (c *Client) SetUploadLimit(ctx context.Context, hash string, limit int64) error {
	return c.setLimit(ctx, "torrents/setUploadLimit", hash, limit)
}

func (c *Client) setLimit(ctx context.Context, endpoint, hash string, limit int64) error {
	form := url.Values{
		"hashes": {hash},
		"limit":  {strconv.FormatInt(limit, 10)},
	}
	if _, err := c.postForm(ctx, endpoint, form); err != nil {
		return fmt.Errorf("failed to set limit on %s: %w", hash, err)
	}
	return nil
}

// SetFilePriority sets the priority of the given file indices in one call
func (c *Client) SetFilePriority(ctx context.Context, hash string, ids []int, priority int) error {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}

	form := url.Values{
		"hash":     {hash},
		"id":       {strings.Join(parts, "|")},
		"priority": {strconv.Itoa(priority)},
	}
	if _, err := c.postForm(ctx, "torrents/filePrio", form); err != nil {
		return fmt.Errorf("failed to set file priority on %s: %w", hash, err)
	}
	return nil
}

// RenameFile renames the file at index id inside a torrent
func (c *Client) RenameFile(ctx context.Context, hash string, id int, name string) error {
	form := url.Values{
		"hash": {hash},
		"id":   {strconv.Itoa(id)},
		"name": {name},
	}
	if _, err := c.postForm(ctx, "torrents/renameFile", form); err != nil {
		return fmt.Errorf("failed to rename file %d of %s: %w", id, hash, err)
	}
	return nil
}
