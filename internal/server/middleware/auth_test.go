package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTokenValidator accepts a fixed set of tokens.
type testTokenValidator struct {
	validTokens map[string]uuid.UUID
}

func (v *testTokenValidator) ValidateToken(tokenString string) (UserIDGetter, error) {
	userID, ok := v.validTokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return testClaims(userID), nil
}

type testClaims uuid.UUID

func (c testClaims) GetUserID() uuid.UUID {
	return uuid.UUID(c)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()
	validator := &testTokenValidator{validTokens: map[string]uuid.UUID{"good-token": userID}}

	var contextUserID uuid.UUID
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserID(r)
		require.NoError(t, err)
		contextUserID = id
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/notes", nil)
	req.Header.Set("Authorization", "bearer good-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, contextUserID)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	validator := &testTokenValidator{validTokens: map[string]uuid.UUID{"good-token": uuid.New()}}

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic good-token"},
		{name: "no token", header: "Bearer"},
		{name: "extra parts", header: "Bearer good-token extra"},
		{name: "unknown token", header: "Bearer forged"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := AuthMiddleware(validator)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/career", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
			assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestUserIDFromContext(t *testing.T) {
	assert.Equal(t, uuid.Nil, UserIDFromContext(context.Background()))

	userID := uuid.New()
	assert.Equal(t, userID, UserIDFromContext(WithUserID(context.Background(), userID)))
}

func TestGetUserID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetUserID(req)
	assert.Error(t, err)

	// Wrong type under the key
	req = req.WithContext(context.WithValue(req.Context(), userIDKey, "not-a-uuid"))
	_, err = GetUserID(req)
	assert.Error(t, err)

	userID := uuid.New()
	req = req.WithContext(WithUserID(req.Context(), userID))
	got, err := GetUserID(req)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}
