package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/bigpicture/pkg/errors"
	"github.com/matzehuels/bigpicture/pkg/observability"
	"github.com/matzehuels/bigpicture/pkg/render/box/layout"
	"github.com/matzehuels/bigpicture/pkg/render/box/sink"
	"github.com/matzehuels/bigpicture/pkg/search"
)

// sessionInfo describes a session and its current canvas size.
type sessionInfo struct {
	ID     string  `json:"id"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Boxes  int     `json:"boxes"`
}

// toggleResult is returned by the toggle endpoint.
type toggleResult struct {
	Box       string  `json:"box"`
	Collapsed bool    `json:"collapsed"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}

// bulkResult is returned by expand-all and collapse-all.
type bulkResult struct {
	Changed int     `json:"changed"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// searchResult is returned by the search endpoint.
type searchResult struct {
	Query    string   `json:"query"`
	Matches  []string `json:"matches"`
	Revealed []string `json:"revealed"`
}

func endpointFor(id string) string { return "/api/sessions/" + id }

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	sess, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if err := errors.ValidateQuery(q); err != nil {
		s.writeError(w, r, err)
		return
	}
	sess, err := s.store.Create()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var page []byte
	err = sess.With(func(l *layout.Layout) error {
		var err error
		page, err = sink.RenderHTML(l,
			sink.WithTitle(s.title),
			sink.WithEndpoint(endpointFor(sess.ID)),
			sink.WithHTMLSVGOptions(sink.WithSearch(search.Match(l, q))))
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Debug("session created", "session", sess.ID)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Create()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var info sessionInfo
	sess.With(func(l *layout.Layout) error {
		info = sessionInfo{ID: sess.ID, Width: l.Width(), Height: l.Height(), Boxes: l.Len()}
		return nil
	})
	s.logger.Debug("session created", "session", sess.ID)
	writeJSON(w, http.StatusCreated, info)
}

func (s *Server) handleGeometry(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var data []byte
	err := sess.With(func(l *layout.Layout) error {
		var err error
		data, err = sink.RenderJSON(l)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.session(w, r); !ok {
		return
	}
	s.store.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "box")
	if err := errors.ValidateBoxID(id); err != nil {
		s.writeError(w, r, err)
		return
	}

	var res toggleResult
	err := sess.With(func(l *layout.Layout) error {
		start := time.Now()
		if err := l.Toggle(id); err != nil {
			return err
		}
		b, _ := l.Box(id)
		res = toggleResult{Box: id, Collapsed: b.Collapsed, Width: l.Width(), Height: l.Height()}
		observability.Relayout().OnToggle(r.Context(), id, b.Collapsed, len(l.Ancestors(id)), time.Since(start))
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Debug("toggled", "session", sess.ID, "box", id, "collapsed", res.Collapsed)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleExpandAll(w http.ResponseWriter, r *http.Request) {
	s.bulk(w, r, "expand-all", (*layout.Layout).ExpandAll)
}

func (s *Server) handleCollapseAll(w http.ResponseWriter, r *http.Request) {
	s.bulk(w, r, "collapse-all", (*layout.Layout).CollapseAll)
}

func (s *Server) bulk(w http.ResponseWriter, r *http.Request, op string, fn func(*layout.Layout) int) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var res bulkResult
	sess.With(func(l *layout.Layout) error {
		start := time.Now()
		n := fn(l)
		res = bulkResult{Changed: n, Width: l.Width(), Height: l.Height()}
		observability.Relayout().OnBulk(r.Context(), op, n, time.Since(start))
		return nil
	})
	s.logger.Debug(op, "session", sess.ID, "changed", res.Changed)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	q := r.URL.Query().Get("q")
	if err := errors.ValidateQuery(q); err != nil {
		s.writeError(w, r, err)
		return
	}

	res := searchResult{Matches: []string{}, Revealed: []string{}}
	sess.With(func(l *layout.Layout) error {
		m := search.Match(l, q)
		res.Query = m.Query
		res.Matches = append(res.Matches, m.Matches...)
		// Revealed in preorder so responses are stable.
		l.Walk(func(b *layout.Box) bool {
			if m.Revealed[b.ID] {
				res.Revealed = append(res.Revealed, b.ID)
			}
			return true
		})
		return nil
	})
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	q := r.URL.Query().Get("q")
	if err := errors.ValidateQuery(q); err != nil {
		s.writeError(w, r, err)
		return
	}

	var data []byte
	sess.With(func(l *layout.Layout) error {
		opts := []sink.SVGOption{sink.WithSearch(search.Match(l, q))}
		if r.URL.Query().Get("embedded") == "1" {
			opts = append(opts, sink.WithEmbedded())
		}
		data = sink.RenderSVG(l, opts...)
		return nil
	})
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(data)
}
