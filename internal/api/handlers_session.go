package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"docfill/internal/session"
	"docfill/internal/subst"
)

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) *session.Session {
	id := chi.URLParam(r, "sessionID")
	sess := s.sessions.Get(id)
	if sess == nil {
		jsonError(w, "session not found", http.StatusNotFound)
		return nil
	}
	return sess
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}
	writeSnapshot(w, sess)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := sess.Conv.SubmitAnswer(req.Text); err != nil {
		jsonError(w, err.Error(), http.StatusConflict)
		return
	}
	writeSnapshot(w, sess)
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}

	var req struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	// Skipping a non-current placeholder is a silent no-op, not an error.
	sess.Conv.Skip(req.Index)
	writeSnapshot(w, sess)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}
	sess.Conv.Reset()
	writeSnapshot(w, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	s.sessions.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// handleDocument fills the template with the collected answers and
// streams the serialized file. Only a Complete conversation may generate.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}
	if !sess.Conv.IsComplete() {
		jsonError(w, "conversation is not finished yet", http.StatusConflict)
		return
	}

	if err := sess.Template.Fill(sess.Conv.Answers()); err != nil {
		if errors.Is(err, subst.ErrInvalidMarkup) {
			jsonError(w, "document generation failed: the template's markup could not be rewritten", http.StatusUnprocessableEntity)
			return
		}
		jsonError(w, "document generation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	name := sess.Template.OutputName(sess.Filename)
	w.Header().Set("Content-Type", sess.Template.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if err := sess.Template.Write(w); err != nil {
		s.log.Error("serialize document", "session_id", sess.ID, "error", err)
	}
}

func (s *Server) handleEnrichmentStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		jsonError(w, "enrichment stats unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"stats": s.stats.Snapshot(),
	})
}

func writeSnapshot(w http.ResponseWriter, sess *session.Session) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"session_id":   sess.ID,
		"filename":     sess.Filename,
		"conversation": sess.Conv.Snapshot(),
	})
}
