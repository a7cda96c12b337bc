package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"strings"

	"docfill/internal/convo"
	"docfill/internal/docfile"
	"docfill/internal/placeholder"
	"docfill/internal/sample"
	"docfill/internal/session"
)

// handleUpload accepts a multipart template upload, parses it, extracts
// its placeholders, and opens a new fill session.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size (extra 1MB for form overhead).
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(16 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !docfile.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusUnsupportedMediaType)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	tmpl, err := docfile.Open(data, filename)
	if err != nil {
		jsonError(w, "could not read that document — try re-exporting it: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s.startSession(w, r, filename, tmpl)
}

// handleSample opens a session over the built-in sample template.
func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	s.startSession(w, r, sample.Filename, sample.New())
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request, filename string, tmpl docfile.Template) {
	text := tmpl.PlainText()
	placeholders := placeholder.Extract(text)

	conv := convo.New(placeholders, nil)
	epoch := conv.Epoch()

	// One batched enrichment call per document, bounded by its own
	// timeout. Any failure inside resolves to deterministic questions. The
	// epoch check drops the batch if the conversation was reset while the
	// call was outstanding.
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.EnrichTimeout)
	defer cancel()
	questions := s.questions.QuestionsFor(ctx, clientIdentity(r), placeholders, text)
	conv.ApplyQuestions(epoch, questions)

	conv.Start(tmpl.Title(), tmpl.Note())

	sess := session.New(filename, tmpl, conv)
	s.sessions.Put(sess)

	s.log.Info("session created",
		"session_id", sess.ID,
		"filename", filename,
		"placeholders", len(placeholders),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"session_id":   sess.ID,
		"filename":     sess.Filename,
		"title":        tmpl.Title(),
		"conversation": conv.Snapshot(),
	})
}

// clientIdentity keys the enrichment quota. Best effort: remote IP.
func clientIdentity(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
