package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KhashayarRezaei/bookverse/internal/auth"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	logger := zerolog.Nop()
	tokens := auth.NewTokenManager("middleware-secret", time.Hour)

	valid, err := tokens.Issue(auth.Principal{ID: 42})
	require.NoError(t, err)
	foreign, err := auth.NewTokenManager("other-secret", time.Hour).Issue(auth.Principal{ID: 42})
	require.NoError(t, err)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectHandler  bool
	}{
		{
			name:           "Valid bearer token",
			header:         "Bearer " + valid,
			expectedStatus: http.StatusOK,
			expectHandler:  true,
		},
		{
			name:           "Lowercase scheme",
			header:         "bearer " + valid,
			expectedStatus: http.StatusOK,
			expectHandler:  true,
		},
		{
			name:           "Missing header",
			header:         "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong scheme",
			header:         "Basic " + valid,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "No token after scheme",
			header:         "Bearer",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Token signed with another secret",
			header:         "Bearer " + foreign,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Garbage token",
			header:         "Bearer not-a-jwt",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got auth.Principal
			handlerCalled := false
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				got, _ = auth.FromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			handler := Authenticate(tokens, logger)(testHandler)

			req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectHandler, handlerCalled)
			if tt.expectHandler {
				assert.Equal(t, int64(42), got.ID)
			} else {
				assert.JSONEq(t, `{"message":"Unauthenticated."}`, w.Body.String())
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		principal      *auth.Principal
		expectedStatus int
		expectHandler  bool
	}{
		{
			name:           "Admin passes",
			principal:      &auth.Principal{ID: 1, IsAdmin: true},
			expectedStatus: http.StatusOK,
			expectHandler:  true,
		},
		{
			name:           "Customer is forbidden",
			principal:      &auth.Principal{ID: 2},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "No principal",
			principal:      nil,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			handler := RequireAdmin(logger)(testHandler)

			req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
			if tt.principal != nil {
				req = req.WithContext(auth.WithPrincipal(req.Context(), *tt.principal))
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectHandler, handlerCalled)
		})
	}
}
