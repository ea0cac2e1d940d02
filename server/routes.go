package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Upstream failures surface as 500 on the identity and configuration
// queries and as 400 everywhere else, including the torrent and file lists.
func (s *Server) routes(r chi.Router) {
	r.Get("/healthz", s.handleHealth)

	api := func(r chi.Router) {
		r.Get("/applicationName", s.handleApplicationName)
		r.Get("/application/info", s.handleApplicationName)
		r.Get("/application/preferences", s.handlePreferences)
		r.Get("/categories", s.handleCategories)

		r.Get("/torrents", s.handleTorrents)
		r.Post("/torrents/add", s.handleAdd)

		r.Route("/torrent/{torrentHash}", func(r chi.Router) {
			r.Get("/files", s.handleFiles)

			r.Post("/resume", s.hashAction(s.service.Resume))
			r.Post("/pause", s.hashAction(s.service.Pause))
			r.Post("/increasePriority", s.hashAction(s.service.IncreasePriority))
			r.Post("/decreasePriority", s.hashAction(s.service.DecreasePriority))
			r.Post("/maxPriority", s.hashAction(s.service.MaxPriority))
			r.Post("/minPriority", s.hashAction(s.service.MinPriority))

			r.Post("/delete", s.handleDelete)
			r.Post("/setSavePath", s.handleSetSavePath)
			r.Post("/setName", s.handleSetName)
			r.Post("/setDownloadLimit", s.handleSetLimit("setDownloadLimit", s.service.SetDownloadLimit))
			r.Post("/setUploadLimit", s.handleSetLimit("setUploadLimit", s.service.SetUploadLimit))
			r.Post("/setFilesPriority", s.handleSetFilesPriority)
			r.Post("/renameFile", s.handleRenameFile)
		})
	}

	if s.basePath == "" {
		api(r)
		return
	}
	r.Route(s.basePath, api)
}

func torrentHash(r *http.Request) string {
	return chi.URLParam(r, "torrentHash")
}
