package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/s0up4200/qbitgate/gateway"
	"github.com/s0up4200/qbitgate/qbittorrent"
)

// maxBodyBytes caps request bodies; add requests carry base64 .torrent files
const maxBodyBytes = 32 << 20

func JSONResponse(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// emptyResponse writes a status with no body
func emptyResponse(w http.ResponseWriter, code int) {
	w.Header().Set("Content-Length", "0")
	w.WriteHeader(code)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

// fail logs the cause and answers with a bare status code. Upstream
// failures get upstreamStatus, everything else is the caller's fault.
func fail(w http.ResponseWriter, r *http.Request, err error, upstreamStatus int) {
	status := http.StatusBadRequest
	if gateway.IsUpstreamUnavailable(err) {
		status = upstreamStatus
	}

	event := requestLog(r).Warn().
		Err(err).
		Stringer("kind", gateway.KindOf(err)).
		Int("status", status)

	var apiErr *qbittorrent.APIError
	if errors.As(err, &apiErr) {
		event = event.Int("upstream_status", apiErr.StatusCode)
		switch {
		case apiErr.IsForbidden():
			// qBittorrent answers 403 once the forwarded SID has expired
			event = event.Bool("session_expired", true)
		case apiErr.IsNotFound():
			event = event.Bool("unknown_hash", true)
		}
	}

	event.Msg("Request failed")

	emptyResponse(w, status)
}
