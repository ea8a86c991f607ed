package server

import (
	"net/http"

	"github.com/jonathan/lift/internal/server/middleware"
)

// handleCareer generates a resume or a cover letter
func (s *Server) handleCareer(w http.ResponseWriter, r *http.Request) {
	var req CareerRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	ctx := r.Context()
	prefs := s.preferences.Get(ctx, middleware.UserIDFromContext(ctx))

	switch req.Type {
	case CareerTypeResume:
		result, err := s.generator.Resume(ctx, req.ResumeInput(), prefs)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, result)
	case CareerTypeCover:
		result, err := s.generator.Cover(ctx, req.CoverInput(), prefs)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, result)
	default:
		s.handleError(w, r, &ErrValidation{Field: "type", Message: "must be one of: resume, cover"})
	}
}
