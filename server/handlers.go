package server

import (
	"context"
	"net/http"

	"github.com/s0up4200/qbitgate/filter"
	"github.com/s0up4200/qbitgate/gateway"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (s *Server) handleApplicationName(w http.ResponseWriter, r *http.Request) {
	name, err := s.service.ApplicationName(r.Context())
	if err != nil {
		fail(w, r, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(name))
}

func (s *Server) handlePreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.service.Preferences(r.Context())
	if err != nil {
		fail(w, r, err, http.StatusInternalServerError)
		return
	}
	JSONResponse(w, prefs, http.StatusOK)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.service.Categories(r.Context())
	if err != nil {
		fail(w, r, err, http.StatusInternalServerError)
		return
	}
	JSONResponse(w, categories, http.StatusOK)
}

func (s *Server) handleTorrents(w http.ResponseWriter, r *http.Request) {
	// compile before touching the upstream so a bad expression costs nothing
	var f filter.CompiledFilter
	if expression := r.URL.Query().Get("filter"); expression != "" {
		var err error
		if f, err = s.compiler.Compile(expression); err != nil {
			requestLog(r).Warn().Err(err).Msg("Invalid torrent filter")
			emptyResponse(w, http.StatusBadRequest)
			return
		}
	}

	torrents, err := s.service.Torrents(r.Context())
	if err != nil {
		fail(w, r, err, http.StatusBadRequest)
		return
	}

	if f != nil {
		if torrents, err = s.evaluator.Apply(r.Context(), f, torrents); err != nil {
			fail(w, r, err, http.StatusBadRequest)
			return
		}
	}
	JSONResponse(w, torrents, http.StatusOK)
}

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.service.Files(r.Context(), torrentHash(r))
	if err != nil {
		fail(w, r, err, http.StatusBadRequest)
		return
	}
	JSONResponse(w, files, http.StatusOK)
}

// hashAction adapts a body-less mutation
func (s *Server) hashAction(action func(ctx context.Context, hash string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := action(r.Context(), torrentHash(r)); err != nil {
			fail(w, r, err, http.StatusBadRequest)
			return
		}
		emptyResponse(w, http.StatusOK)
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	body, _ := readBody(w, r)
	if err := s.service.Delete(r.Context(), torrentHash(r), gateway.ParseDeleteFiles(body)); err != nil {
		fail(w, r, err, http.StatusBadRequest)
		return
	}
	emptyResponse(w, http.StatusOK)
}

func (s *Server) handleSetSavePath(w http.ResponseWriter, r *http.Request) {
	s.withBody(w, r, func(body []byte) error {
		path, err := gateway.ParseSavePath(body)
		if err != nil {
			return err
		}
		return s.service.SetSavePath(r.Context(), torrentHash(r), path)
	})
}

func (s *Server) handleSetName(w http.ResponseWriter, r *http.Request) {
	s.withBody(w, r, func(body []byte) error {
		name, err := gateway.ParseName(body)
		if err != nil {
			return err
		}
		return s.service.SetName(r.Context(), torrentHash(r), name)
	})
}

func (s *Server) handleSetLimit(op string, set func(ctx context.Context, hash string, limit int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.withBody(w, r, func(body []byte) error {
			limit, err := gateway.ParseLimit(op, body)
			if err != nil {
				return err
			}
			return set(r.Context(), torrentHash(r), limit)
		})
	}
}

func (s *Server) handleSetFilesPriority(w http.ResponseWriter, r *http.Request) {
	s.withBody(w, r, func(body []byte) error {
		req, err := gateway.ParseSetFilesPriority(body)
		if err != nil {
			return err
		}
		return s.service.SetFilesPriority(r.Context(), torrentHash(r), req)
	})
}

func (s *Server) handleRenameFile(w http.ResponseWriter, r *http.Request) {
	s.withBody(w, r, func(body []byte) error {
		req, err := gateway.ParseRenameFile(body)
		if err != nil {
			return err
		}
		return s.service.RenameFile(r.Context(), torrentHash(r), req)
	})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	s.withBody(w, r, func(body []byte) error {
		req, err := gateway.ParseAdd(body)
		if err != nil {
			return err
		}
		return s.service.AddTorrents(r.Context(), req)
	})
}

// withBody reads the request body and runs a mutation on it. Every failure,
// upstream ones included, is a 400.
func (s *Server) withBody(w http.ResponseWriter, r *http.Request, mutate func(body []byte) error) {
	body, err := readBody(w, r)
	if err != nil {
		fail(w, r, err, http.StatusBadRequest)
		return
	}
	if err := mutate(body); err != nil {
		fail(w, r, err, http.StatusBadRequest)
		return
	}
	emptyResponse(w, http.StatusOK)
}
