package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/lift/internal/ingestion"
	"github.com/jonathan/lift/internal/server/middleware"
	"github.com/jonathan/lift/internal/templates"
)

// ExtractResponse is the body returned by POST /api/notes/extract
type ExtractResponse struct {
	Text     string              `json:"text"`
	Metadata *ingestion.Metadata `json:"metadata"`
}

// handleNotes generates a study summary and flashcards
func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	in, err := s.notesInput(w, r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	ctx := r.Context()
	prefs := s.preferences.Get(ctx, middleware.UserIDFromContext(ctx))
	result, err := s.generator.Notes(ctx, in, prefs)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleQuiz generates a multiple-choice quiz
func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	in, err := s.notesInput(w, r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	ctx := r.Context()
	prefs := s.preferences.Get(ctx, middleware.UserIDFromContext(ctx))
	result, err := s.generator.Quiz(ctx, in, prefs)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// notesInput decodes a NotesRequest, converting HTML notes to text
func (s *Server) notesInput(w http.ResponseWriter, r *http.Request) (templates.NotesInput, error) {
	var req NotesRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		return templates.NotesInput{}, err
	}

	notes := req.Notes
	if strings.TrimSpace(notes) == "" && strings.TrimSpace(req.HTML) != "" {
		text, err := ingestion.HTMLToText(req.HTML)
		if err != nil {
			return templates.NotesInput{}, &ErrValidation{Field: "html", Message: "could not be parsed"}
		}
		notes = ingestion.CleanText(text)
	}
	return templates.NotesInput{Notes: notes}, nil
}

// handleExtract converts an uploaded text, HTML or PDF file into plain notes text
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.maxUploadBytes {
		s.handleError(w, r, &ErrPayloadTooLarge{Limit: s.maxUploadBytes})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			s.handleError(w, r, &ErrPayloadTooLarge{Limit: maxBytes.Limit})
			return
		}
		s.handleError(w, r, &ErrValidation{Field: "file", Message: "expected a multipart upload"})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.handleError(w, r, &ErrValidation{Field: "file", Message: "is required"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	text, metadata, err := ingestion.Extract(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ExtractResponse{Text: text, Metadata: metadata})
}
