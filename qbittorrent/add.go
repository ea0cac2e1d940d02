package qbittorrent

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
)

// failSentinel is the body torrents/add answers with when nothing was added
const failSentinel = "Fails."

// AddTorrents submits links and .torrent files in a single multipart call
func (c *Client) AddTorrents(ctx context.Context, add AddRequest) error {
	body, contentType, err := encodeAddRequest(add)
	if err != nil {
		return fmt.Errorf("failed to encode add request: %w", err)
	}

	resp, err := c.do(ctx, request{
		method:      http.MethodPost,
		endpoint:    "torrents/add",
		body:        body,
		contentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to add torrents: %w", err)
	}

	if strings.TrimSpace(string(resp)) == failSentinel {
		return ErrAddFailed
	}
	return nil
}

func encodeAddRequest(add AddRequest) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	var links []string
	for _, link := range add.URLs {
		if link != "" {
			links = append(links, link)
		}
	}
	if len(links) > 0 {
		if err := w.WriteField("urls", strings.Join(links, "\n")); err != nil {
			return nil, "", err
		}
	}

	for _, file := range add.Files {
		part, err := w.CreateFormFile("torrents", file.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, "", err
		}
	}

	// stable field order keeps the body deterministic
	keys := make([]string, 0, len(add.Options))
	for k := range add.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, add.Options[k]); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
