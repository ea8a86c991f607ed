package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/lift/internal/server/middleware"
)

// handleGetPreferences returns the caller's preferences, or defaults for anonymous callers
func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.jsonResponse(w, http.StatusOK, s.preferences.Get(ctx, middleware.UserIDFromContext(ctx)))
}

// handlePutPreferences stores the caller's preferences
func (s *Server) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.UserIDFromContext(ctx)
	if userID == uuid.Nil {
		s.handleError(w, r, &ErrUnauthorized{Reason: "preferences can only be saved for an authenticated user"})
		return
	}

	var req PreferencesRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	prefs, err := s.preferences.Save(ctx, userID, req.Preferences())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, prefs)
}
