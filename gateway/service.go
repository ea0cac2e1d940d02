package gateway

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/qbitgate/qbittorrent"
)

// Upstream is the part of the qBittorrent API the gateway forwards to
type Upstream interface {
	Version(ctx context.Context) (string, error)
	WebAPIVersion(ctx context.Context) (string, error)
	Preferences(ctx context.Context) (*qbittorrent.Preferences, error)
	GetTorrents(ctx context.Context) ([]qbittorrent.Torrent, error)
	GetProperties(ctx context.Context, hash string) (*qbittorrent.TorrentProperties, error)
	GetFiles(ctx context.Context, hash string) (qbittorrent.TorrentFiles, error)
	GetCategories(ctx context.Context) (map[string]json.RawMessage, error)

	Resume(ctx context.Context, hash string) error
	Pause(ctx context.Context, hash string) error
	Delete(ctx context.Context, hash string, deleteFiles bool) error
	IncreasePriority(ctx context.Context, hash string) error
	DecreasePriority(ctx context.Context, hash string) error
	TopPriority(ctx context.Context, hash string) error
	BottomPriority(ctx context.Context, hash string) error
	SetLocation(ctx context.Context, hash, location string) error
	Rename(ctx context.Context, hash, name string) error
	SetDownloadLimit(ctx context.Context, hash string, limit int64) error
	SetUploadLimit(ctx context.Context, hash string, limit int64) error
	SetFilePriority(ctx context.Context, hash string, ids []int, priority int) error
	RenameFile(ctx context.Context, hash string, id int, name string) error
	AddTorrents(ctx context.Context, add qbittorrent.AddRequest) error
}

// Service translates dashboard operations into qBittorrent calls
type Service struct {
	upstream    Upstream
	concurrency int
	logger      zerolog.Logger
}

// Option configures a Service
type Option func(*Service)

// WithConcurrency caps the number of parallel properties fetches. Zero or
// less means one goroutine per torrent.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		s.concurrency = n
	}
}

// NewService creates a Service on top of the given upstream
func NewService(upstream Upstream, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		upstream: upstream,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ApplicationName describes the upstream, e.g. "qBittorrent v4.6.2 (API v2.9.3)"
func (s *Service) ApplicationName(ctx context.Context) (string, error) {
	const op = "applicationName"

	version, err := s.upstream.Version(ctx)
	if err != nil {
		return "", upstream(op, err)
	}
	apiVersion, err := s.upstream.WebAPIVersion(ctx)
	if err != nil {
		return "", upstream(op, err)
	}

	return fmt.Sprintf("qBittorrent %s (API v%s)", version, apiVersion), nil
}

// Preferences returns the camelCase preferences snapshot
func (s *Service) Preferences(ctx context.Context) (*Preferences, error) {
	prefs, err := s.upstream.Preferences(ctx)
	if err != nil {
		return nil, upstream("preferences", err)
	}
	out := newPreferences(prefs)
	return &out, nil
}

// Torrents lists every torrent joined with its properties. One failed
// properties fetch fails the whole listing, but the others are left to finish.
func (s *Service) Torrents(ctx context.Context) ([]Torrent, error) {
	const op = "torrents"

	list, err := s.upstream.GetTorrents(ctx)
	if err != nil {
		return nil, upstream(op, err)
	}

	props := make([]*qbittorrent.TorrentProperties, len(list))

	var g errgroup.Group
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}
	for i, t := range list {
		g.Go(func() error {
			p, err := s.upstream.GetProperties(ctx, t.Hash)
			if err != nil {
				s.logger.Debug().Err(err).Str("hash", t.Hash).Msg("Failed to fetch torrent properties")
				return err
			}
			props[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, upstream(op, err)
	}

	torrents := make([]Torrent, len(list))
	for i, t := range list {
		torrents[i] = newTorrent(t, props[i])
	}

	s.logger.Debug().Int("count", len(torrents)).Msg("Listed torrents")
	return torrents, nil
}

// Files lists a torrent's files in upstream order
func (s *Service) Files(ctx context.Context, hash string) ([]TorrentFile, error) {
	raw, err := s.upstream.GetFiles(ctx, hash)
	if err != nil {
		return nil, upstream("files", err)
	}
	return newTorrentFiles(raw), nil
}

// Categories returns the category records; the order is unspecified
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	raw, err := s.upstream.GetCategories(ctx)
	if err != nil {
		return nil, upstream("categories", err)
	}

	categories := make([]Category, 0, len(raw))
	for _, c := range raw {
		categories = append(categories, Category(c))
	}
	return categories, nil
}

// Resume resumes a torrent
func (s *Service) Resume(ctx context.Context, hash string) error {
	return s.forward("resume", s.upstream.Resume(ctx, hash))
}

// Pause pauses a torrent
func (s *Service) Pause(ctx context.Context, hash string) error {
	return s.forward("pause", s.upstream.Pause(ctx, hash))
}

// Delete removes a torrent and, if asked, its data
func (s *Service) Delete(ctx context.Context, hash string, deleteFiles bool) error {
	return s.forward("delete", s.upstream.Delete(ctx, hash, deleteFiles))
}

// IncreasePriority moves a torrent up the queue
func (s *Service) IncreasePriority(ctx context.Context, hash string) error {
	return s.forward("increasePriority", s.upstream.IncreasePriority(ctx, hash))
}

// DecreasePriority moves a torrent down the queue
func (s *Service) DecreasePriority(ctx context.Context, hash string) error {
	return s.forward("decreasePriority", s.upstream.DecreasePriority(ctx, hash))
}

// MaxPriority moves a torrent to the top of the queue
func (s *Service) MaxPriority(ctx context.Context, hash string) error {
	return s.forward("maxPriority", s.upstream.TopPriority(ctx, hash))
}

// MinPriority moves a torrent to the bottom of the queue
func (s *Service) MinPriority(ctx context.Context, hash string) error {
	return s.forward("minPriority", s.upstream.BottomPriority(ctx, hash))
}

// SetSavePath relocates a torrent
func (s *Service) SetSavePath(ctx context.Context, hash, savePath string) error {
	const op = "setSavePath"
	if savePath == "" {
		return invalid(op, "savePath", "must not be empty")
	}
	return s.forward(op, s.upstream.SetLocation(ctx, hash, savePath))
}

// SetName renames a torrent
func (s *Service) SetName(ctx context.Context, hash, name string) error {
	const op = "setName"
	if name == "" {
		return invalid(op, "name", "must not be empty")
	}
	return s.forward(op, s.upstream.Rename(ctx, hash, name))
}

// SetDownloadLimit sets a torrent's download limit in bytes/s
func (s *Service) SetDownloadLimit(ctx context.Context, hash string, limit int64) error {
	return s.forward("setDownloadLimit", s.upstream.SetDownloadLimit(ctx, hash, limit))
}

// SetUploadLimit sets a torrent's upload limit in bytes/s
func (s *Service) SetUploadLimit(ctx context.Context, hash string, limit int64) error {
	return s.forward("setUploadLimit", s.upstream.SetUploadLimit(ctx, hash, limit))
}

// SetFilesPriority sets one priority on several files in a single call
func (s *Service) SetFilesPriority(ctx context.Context, hash string, req SetFilesPriorityRequest) error {
	const op = "setFilesPriority"
	if !req.Priority.Valid() {
		return invalid(op, "priority", "must be one of 0, 1, 6, 7")
	}
	return s.forward(op, s.upstream.SetFilePriority(ctx, hash, req.IDs, int(req.Priority)))
}

// RenameFile renames one file of a torrent
func (s *Service) RenameFile(ctx context.Context, hash string, req RenameFileRequest) error {
	return s.forward("renameFile", s.upstream.RenameFile(ctx, hash, req.ID, req.Name))
}

// AddTorrents submits links and files in one upstream call
func (s *Service) AddTorrents(ctx context.Context, req AddRequest) error {
	const op = "addTorrents"
	if req.empty() {
		return invalid(op, "links", "nothing to add")
	}
	return s.forward(op, s.upstream.AddTorrents(ctx, req.upstreamAdd()))
}

func (s *Service) forward(op string, err error) error {
	if err != nil {
		return upstream(op, err)
	}
	return nil
}
