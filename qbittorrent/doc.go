// Package qbittorrent provides a client for the qBittorrent WebUI API (v2).
//
// The client is a thin transport: one method per upstream endpoint, no
// retries, no session handling of its own. The caller's session cookie is
// carried in the request context and forwarded verbatim.
//
// # Features
//
//   - Wire types shared with github.com/autobrr/go-qbittorrent
//   - Form-encoded POSTs for every state-changing endpoint
//   - Multipart torrents/add with links and .torrent files in one call
//   - Optional outbound rate limiting
//
// # Usage
//
//	client, err := qbittorrent.NewClient("http://localhost:8080", logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx = qbittorrent.WithCookie(ctx, r.Header.Get("Cookie"))
//	torrents, err := client.GetTorrents(ctx)
package qbittorrent
