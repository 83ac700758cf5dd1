package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/brainboard/pkg/board"
	"github.com/matzehuels/brainboard/pkg/errors"
	"github.com/matzehuels/brainboard/pkg/geometry"
	"github.com/matzehuels/brainboard/pkg/interaction"
	"github.com/matzehuels/brainboard/pkg/layer"
	"github.com/matzehuels/brainboard/pkg/store"
)

// DefaultUser acts for requests that do not name a user.
const DefaultUser = "anonymous"

// maxBody limits request bodies.
const maxBody = 1 << 20

// OpsResponse is returned by endpoints that change the document.
type OpsResponse struct {
	Ops       layer.Batch `json:"ops"`
	Selection []string    `json:"selection"`
}

// HistoryResponse is returned by undo and redo.
type HistoryResponse struct {
	OK      bool `json:"ok"`
	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
}

// EventsRequest carries a user's pointer events in order.
type EventsRequest struct {
	User   string                     `json:"user"`
	Events []interaction.PointerEvent `json:"events"`
}

// EventsResponse reports the machine after the events were handled.
type EventsResponse struct {
	State     interaction.State `json:"state"`
	Camera    geometry.Camera   `json:"camera"`
	Selection []string          `json:"selection"`
}

func userOf(r *http.Request) string {
	if u := r.URL.Query().Get("user"); u != "" {
		return u
	}
	return DefaultUser
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ids, err := s.registry.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"boards": ids})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	b, err := s.registry.Create(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeSnapshot(w, r, http.StatusCreated, b.Snapshot())
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	b, err := s.registry.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeSnapshot(w, r, http.StatusOK, b.Snapshot())
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.registry.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.forget(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	s.template(w, r, (*board.Board).Generate)
}

func (s *Server) handleAddRow(w http.ResponseWriter, r *http.Request) {
	s.template(w, r, (*board.Board).AddRow)
}

func (s *Server) handleReflow(w http.ResponseWriter, r *http.Request) {
	s.template(w, r, (*board.Board).Reflow)
}

type templateFunc func(b *board.Board, ctx context.Context, user, name string) (layer.Batch, error)

func (s *Server) template(w http.ResponseWriter, r *http.Request, fn templateFunc) {
	b, err := s.registry.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	user := userOf(r)
	ops, err := fn(b, r.Context(), user, chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ops == nil {
		ops = layer.Batch{}
	}
	writeJSON(w, http.StatusOK, OpsResponse{Ops: ops, Selection: nonNil(b.Selection(user))})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	b, err := s.registry.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req EventsRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.User == "" {
		req.User = userOf(r)
	}
	m := s.machine(b, req.User)
	for _, ev := range req.Events {
		if err := m.Handle(r.Context(), ev); err != nil {
			s.writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, EventsResponse{
		State:     m.State(),
		Camera:    m.Camera(),
		Selection: nonNil(b.Selection(req.User)),
	})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.history(w, r, (*board.Board).Undo)
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	s.history(w, r, (*board.Board).Redo)
}

func (s *Server) history(w http.ResponseWriter, r *http.Request, fn func(*board.Board, context.Context, string) (bool, error)) {
	b, err := s.registry.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	user := userOf(r)
	ok, err := fn(b, r.Context(), user)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, HistoryResponse{OK: ok, CanUndo: b.CanUndo(user), CanRedo: b.CanRedo(user)})
}

func (s *Server) handlePresence(w http.ResponseWriter, r *http.Request) {
	b, err := s.registry.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	p := b.Presence(chi.URLParam(r, "user"))
	p.Selection = nonNil(p.Selection)
	writeJSON(w, http.StatusOK, p)
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	if err := dec.Decode(v); err != nil {
		if errors.GetCode(err) != "" {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// writeSnapshot writes the document with its hash as entity tag and honours
// If-None-Match.
func writeSnapshot(w http.ResponseWriter, r *http.Request, status int, snap layer.Snapshot) {
	etag := `"` + store.Hash(snap) + `"`
	w.Header().Set("ETag", etag)
	if status == http.StatusOK && r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, status, snap)
}
