package server

import (
	"bytes"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/qbitgate/gateway"
	"github.com/s0up4200/qbitgate/qbittorrent"
)

type upstreamCall struct {
	Method string
	Path   string
	Query  url.Values
	Form   url.Values
	Files  map[string][]byte
	Cookie string
}

// fakeQBittorrent is an httptest upstream that records every call
type fakeQBittorrent struct {
	mu     sync.Mutex
	calls  []upstreamCall
	fail   map[string]int
	bodies map[string]string
}

func newFakeQBittorrent() *fakeQBittorrent {
	return &fakeQBittorrent{
		fail:   map[string]int{},
		bodies: map[string]string{},
	}
}

func (f *fakeQBittorrent) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	endpoint := strings.TrimPrefix(r.URL.Path, "/api/v2/")
	call := upstreamCall{
		Method: r.Method,
		Path:   endpoint,
		Query:  r.URL.Query(),
		Cookie: r.Header.Get("Cookie"),
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		_ = r.ParseForm()
		call.Form = r.PostForm
	case "multipart/form-data":
		_ = r.ParseMultipartForm(1 << 20)
		call.Form = url.Values(r.MultipartForm.Value)
		call.Files = map[string][]byte{}
		for _, headers := range r.MultipartForm.File {
			for _, fh := range headers {
				file, _ := fh.Open()
				content, _ := io.ReadAll(file)
				file.Close()
				call.Files[fh.Filename] = content
			}
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	status, failing := f.fail[endpoint]
	body, hasBody := f.bodies[endpoint]
	f.mu.Unlock()

	if failing {
		w.WriteHeader(status)
		return
	}
	if hasBody {
		_, _ = io.WriteString(w, body)
		return
	}
	_, _ = io.WriteString(w, "Ok.")
}

func (f *fakeQBittorrent) Calls() []upstreamCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]upstreamCall(nil), f.calls...)
}

func setup(t *testing.T) (*fakeQBittorrent, http.Handler) {
	t.Helper()

	fake := newFakeQBittorrent()
	upstream := httptest.NewServer(fake)
	t.Cleanup(upstream.Close)

	client, err := qbittorrent.NewClient(upstream.URL, zerolog.Nop())
	require.NoError(t, err)

	srv := New(gateway.NewService(client, zerolog.Nop()), zerolog.Nop())
	return fake, srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/api/qbittorrent"+path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSetDownloadLimit(t *testing.T) {
	fake, h := setup(t)

	rec := do(t, h, http.MethodPost, "/torrent/abc123/setDownloadLimit", `{"limit": 1024}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, "torrents/setDownloadLimit", calls[0].Path)
	assert.Equal(t, url.Values{"hashes": {"abc123"}, "limit": {"1024"}}, calls[0].Form)
}

func TestCategories(t *testing.T) {
	fake, h := setup(t)
	fake.bodies["torrents/categories"] = `{
		"Movies": {"name": "Movies", "savePath": "/data/movies"},
		"TV": {"name": "TV", "savePath": "/data/tv"}
	}`

	rec := do(t, h, http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.ElementsMatch(t, []map[string]string{
		{"name": "Movies", "savePath": "/data/movies"},
		{"name": "TV", "savePath": "/data/tv"},
	}, got)
}

func TestValidationRejectsWithoutUpstreamCall(t *testing.T) {
	tests := []struct {
		path string
		body string
	}{
		{"/torrent/abc/setSavePath", `{}`},
		{"/torrent/abc/setSavePath", `{"savePath": ""}`},
		{"/torrent/abc/setName", `{"name": 5}`},
		{"/torrent/abc/setName", ``},
		{"/torrent/abc/setDownloadLimit", `{"limit": "1024"}`},
		{"/torrent/abc/setUploadLimit", `{}`},
		{"/torrent/abc/setFilesPriority", `{"ids": [1], "priority": 4}`},
		{"/torrent/abc/setFilesPriority", `{"ids": ["1"], "priority": 1}`},
		{"/torrent/abc/renameFile", `{"id": "1", "name": "x"}`},
		{"/torrent/abc/renameFile", `{"id": 1}`},
		{"/torrents/add", `{}`},
		{"/torrents/add", `{"links": "magnet:?xt=abc"}`},
	}

	for _, tt := range tests {
		t.Run(tt.path+" "+tt.body, func(t *testing.T) {
			fake, h := setup(t)

			rec := do(t, h, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, rec.Body.String())
			assert.Empty(t, fake.Calls())
		})
	}
}

func TestUpstreamFailureStatus(t *testing.T) {
	tests := []struct {
		method   string
		path     string
		body     string
		endpoint string
		want     int
	}{
		{http.MethodGet, "/applicationName", "", "app/version", http.StatusInternalServerError},
		{http.MethodGet, "/application/info", "", "app/webapiVersion", http.StatusInternalServerError},
		{http.MethodGet, "/application/preferences", "", "app/preferences", http.StatusInternalServerError},
		{http.MethodGet, "/categories", "", "torrents/categories", http.StatusInternalServerError},
		{http.MethodGet, "/torrents", "", "torrents/info", http.StatusBadRequest},
		{http.MethodGet, "/torrent/abc/files", "", "torrents/files", http.StatusBadRequest},
		{http.MethodPost, "/torrent/abc/resume", "", "torrents/resume", http.StatusBadRequest},
		{http.MethodPost, "/torrent/abc/delete", "", "torrents/delete", http.StatusBadRequest},
		{http.MethodPost, "/torrent/abc/setFilesPriority", `{"ids": [0], "priority": 7}`, "torrents/filePrio", http.StatusBadRequest},
		{http.MethodPost, "/torrents/add", `{"links": ["magnet:?xt=abc"]}`, "torrents/add", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			fake, h := setup(t)
			fake.fail[tt.endpoint] = http.StatusForbidden

			rec := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code)
			assert.Empty(t, rec.Body.String())
		})
	}
}

func TestApplicationName(t *testing.T) {
	fake, h := setup(t)
	fake.bodies["app/version"] = "v4.6.2"
	fake.bodies["app/webapiVersion"] = "2.9.3"

	for _, path := range []string{"/applicationName", "/application/info"} {
		rec := do(t, h, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "qBittorrent v4.6.2 (API v2.9.3)", rec.Body.String())
	}
}

func TestTorrentsAggregatesProperties(t *testing.T) {
	fake, h := setup(t)
	fake.bodies["torrents/info"] = `[
		{"hash": "aaa", "name": "one", "state": "pausedUP", "added_on": 1700000000, "dl_limit": 10},
		{"hash": "bbb", "name": "two", "state": "metaDL", "added_on": 1700000100}
	]`
	fake.bodies["torrents/properties"] = `{"peers_total": 42, "pieces_num": 8, "comment": "hello", "creation_date": 1600000000}`

	rec := do(t, h, http.MethodGet, "/torrents", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)

	assert.Equal(t, "aaa", got[0]["hash"])
	assert.Equal(t, float64(gateway.StateCompleted), got[0]["state"])
	assert.Equal(t, float64(gateway.StateFetchingMetadata), got[1]["state"])
	assert.Equal(t, float64(42), got[0]["totalPeers"])
	assert.Equal(t, float64(10), got[0]["downloadLimit"])
	assert.Equal(t, "hello", got[1]["creatorComment"])
	assert.Equal(t, "2023-11-14T22:13:20Z", got[0]["addDate"])
	assert.NotContains(t, got[0], "added_on")

	var props []string
	for _, c := range fake.Calls() {
		if c.Path == "torrents/properties" {
			props = append(props, c.Query.Get("hash"))
		}
	}
	assert.ElementsMatch(t, []string{"aaa", "bbb"}, props)
	assert.Len(t, fake.Calls(), 3)
}

func TestTorrentsFilter(t *testing.T) {
	fake, h := setup(t)
	fake.bodies["torrents/info"] = `[
		{"hash": "aaa", "name": "Ubuntu", "state": "uploading"},
		{"hash": "bbb", "name": "Debian", "state": "downloading"}
	]`
	fake.bodies["torrents/properties"] = `{}`

	rec := do(t, h, http.MethodGet, "/torrents?filter="+url.QueryEscape(`State == "Seeding"`), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []gateway.Torrent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "aaa", got[0].Hash)
}

func TestTorrentsBadFilter(t *testing.T) {
	fake, h := setup(t)

	rec := do(t, h, http.MethodGet, "/torrents?filter="+url.QueryEscape(`Name ==`), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, fake.Calls())
}

func TestFiles(t *testing.T) {
	fake, h := setup(t)
	fake.bodies["torrents/files"] = `[
		{"index": 0, "name": "Show/.unwanted/sample.mkv", "priority": 0, "progress": 0, "availability": 1, "size": 10},
		{"index": 1, "name": "Show/e01.mkv", "priority": 4, "progress": 1, "availability": 1, "size": 20}
	]`

	rec := do(t, h, http.MethodGet, "/torrent/abc/files", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"name": "Show/sample.mkv", "priority": 0, "progress": 0, "availability": 1, "size": 10},
		{"name": "Show/e01.mkv", "priority": 1, "progress": 1, "availability": 1, "size": 20}
	]`, rec.Body.String())

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "abc", calls[0].Query.Get("hash"))
}

func TestFilesKeepFractions(t *testing.T) {
	fake, h := setup(t)
	fake.bodies["torrents/files"] = `[{"index": 0, "name": "a.mkv", "priority": 1, "progress": 0.1, "availability": 0.3, "size": 1}]`

	rec := do(t, h, http.MethodGet, "/torrent/abc/files", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"progress":0.1,`)
	assert.Contains(t, rec.Body.String(), `"availability":0.3,`)
}

func TestFailureLogTagsUpstreamStatus(t *testing.T) {
	fake := newFakeQBittorrent()
	upstream := httptest.NewServer(fake)
	defer upstream.Close()

	client, err := qbittorrent.NewClient(upstream.URL, zerolog.Nop())
	require.NoError(t, err)

	var buf bytes.Buffer
	h := New(gateway.NewService(client, zerolog.Nop()), zerolog.New(&buf)).Handler()

	fake.fail["torrents/pause"] = http.StatusForbidden
	fake.fail["torrents/files"] = http.StatusNotFound

	rec := do(t, h, http.MethodPost, "/torrent/abc/pause", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, buf.String(), `"upstream_status":403`)
	assert.Contains(t, buf.String(), `"session_expired":true`)

	buf.Reset()
	rec = do(t, h, http.MethodGet, "/torrent/abc/files", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, buf.String(), `"upstream_status":404`)
	assert.Contains(t, buf.String(), `"unknown_hash":true`)
	assert.NotContains(t, buf.String(), "session_expired")
}

func TestMutationForms(t *testing.T) {
	tests := []struct {
		path     string
		body     string
		endpoint string
		form     url.Values
	}{
		{"/torrent/abc/resume", "", "torrents/resume", url.Values{"hashes": {"abc"}}},
		{"/torrent/abc/pause", "", "torrents/pause", url.Values{"hashes": {"abc"}}},
		{"/torrent/abc/delete", `{"deleteFiles": true}`, "torrents/delete", url.Values{"hashes": {"abc"}, "deleteFiles": {"true"}}},
		{"/torrent/abc/delete", `garbage`, "torrents/delete", url.Values{"hashes": {"abc"}, "deleteFiles": {"false"}}},
		{"/torrent/abc/increasePriority", "", "torrents/increasePrio", url.Values{"hashes": {"abc"}}},
		{"/torrent/abc/decreasePriority", "", "torrents/decreasePrio", url.Values{"hashes": {"abc"}}},
		{"/torrent/abc/maxPriority", "", "torrents/topPrio", url.Values{"hashes": {"abc"}}},
		{"/torrent/abc/minPriority", "", "torrents/bottomPrio", url.Values{"hashes": {"abc"}}},
		{"/torrent/abc/setSavePath", `{"savePath": "/data"}`, "torrents/setLocation", url.Values{"hashes": {"abc"}, "location": {"/data"}}},
		{"/torrent/abc/setName", `{"name": "New"}`, "torrents/rename", url.Values{"hash": {"abc"}, "name": {"New"}}},
		{"/torrent/abc/setUploadLimit", `{"limit": 99.9}`, "torrents/setUploadLimit", url.Values{"hashes": {"abc"}, "limit": {"99"}}},
		{"/torrent/abc/setFilesPriority", `{"ids": [1, 3], "priority": 6}`, "torrents/filePrio", url.Values{"hash": {"abc"}, "id": {"1|3"}, "priority": {"6"}}},
		{"/torrent/abc/renameFile", `{"id": 2, "name": "b.mkv"}`, "torrents/renameFile", url.Values{"hash": {"abc"}, "id": {"2"}, "name": {"b.mkv"}}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			fake, h := setup(t)

			rec := do(t, h, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Empty(t, rec.Body.String())

			calls := fake.Calls()
			require.Len(t, calls, 1)
			assert.Equal(t, http.MethodPost, calls[0].Method)
			assert.Equal(t, tt.endpoint, calls[0].Path)
			assert.Equal(t, tt.form, calls[0].Form)
		})
	}
}

func TestAddTorrents(t *testing.T) {
	t.Run("links only", func(t *testing.T) {
		fake, h := setup(t)

		rec := do(t, h, http.MethodPost, "/torrents/add", `{"links": ["magnet:?xt=abc"]}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		calls := fake.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, "torrents/add", calls[0].Path)
		assert.Equal(t, []string{"magnet:?xt=abc"}, calls[0].Form["urls"])
	})

	t.Run("links, files and options", func(t *testing.T) {
		fake, h := setup(t)

		rec := do(t, h, http.MethodPost, "/torrents/add", `{
			"links": ["magnet:?xt=one", "", "magnet:?xt=two"],
			"files": [["a.torrent", "ZDQ6dGVzdGU="]],
			"savePath": "/data",
			"downloadCookie": "",
			"startTorrent": true,
			"downloadSeqOrder": true,
			"downloadLimit": 0,
			"uploadLimit": 512
		}`)
		require.Equal(t, http.StatusOK, rec.Code)

		calls := fake.Calls()
		require.Len(t, calls, 1)
		form := calls[0].Form
		assert.Equal(t, "magnet:?xt=one\nmagnet:?xt=two", form.Get("urls"))
		assert.Equal(t, "/data", form.Get("savepath"))
		assert.Equal(t, "false", form.Get("paused"))
		assert.Equal(t, "true", form.Get("sequentialDownload"))
		assert.Equal(t, "512", form.Get("upLimit"))
		assert.NotContains(t, form, "cookie")
		assert.NotContains(t, form, "dlLimit")
		assert.Equal(t, []byte("d4:teste"), calls[0].Files["a.torrent"])
	})

	t.Run("failure sentinel", func(t *testing.T) {
		fake, h := setup(t)
		fake.bodies["torrents/add"] = "Fails."

		rec := do(t, h, http.MethodPost, "/torrents/add", `{"links": ["magnet:?xt=abc"]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Len(t, fake.Calls(), 1)
	})
}

func TestCookieForwarded(t *testing.T) {
	fake, h := setup(t)

	req := httptest.NewRequest(http.MethodPost, "/api/qbittorrent/torrent/abc/pause", nil)
	req.Header.Set("Cookie", "SID=abcdef")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "SID=abcdef", calls[0].Cookie)
}

func TestHealthAndRequestID(t *testing.T) {
	fake, h := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
	assert.Empty(t, fake.Calls())
}

func TestPreferences(t *testing.T) {
	fake, h := setup(t)
	fake.bodies["app/preferences"] = `{"locale": "en", "listen_port": 6881, "dhtSameAsBT": true, "web_ui_username": "admin", "max_ratio_act": 0}`

	rec := do(t, h, http.MethodGet, "/application/preferences", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "en", got["locale"])
	assert.Equal(t, float64(6881), got["listenPort"])
	assert.Equal(t, true, got["dhtSameAsBt"])
	assert.Equal(t, "admin", got["webUiUsername"])
	assert.NotContains(t, got, "webUiPassword")
	assert.NotContains(t, got, "listen_port")
}

