package middleware

import (
	"net/http"
	"strings"

	"github.com/KhashayarRezaei/bookverse/internal/auth"

	"github.com/rs/zerolog"
)

// TokenParser resolves a bearer token to a principal.
type TokenParser interface {
	Parse(token string) (auth.Principal, error)
}

// Authenticate requires a valid "Authorization: Bearer <token>" header and
// stores the resolved principal in the request context.
func Authenticate(tokens TokenParser, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				logger.Debug().Str("path", r.URL.Path).Msg("missing bearer token")
				writeMessage(w, http.StatusUnauthorized, "Unauthenticated.")
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				logger.Warn().Str("path", r.URL.Path).Msg("malformed authorization header")
				writeMessage(w, http.StatusUnauthorized, "Unauthenticated.")
				return
			}

			principal, err := tokens.Parse(token)
			if err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("invalid bearer token")
				writeMessage(w, http.StatusUnauthorized, "Unauthenticated.")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		})
	}
}

// RequireAdmin rejects principals without the admin flag. It must run after Authenticate.
func RequireAdmin(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.FromContext(r.Context())
			if !ok {
				writeMessage(w, http.StatusUnauthorized, "Unauthenticated.")
				return
			}

			if !principal.IsAdmin {
				logger.Warn().
					Int64("user_id", principal.ID).
					Str("path", r.URL.Path).
					Msg("admin access denied")
				writeMessage(w, http.StatusForbidden, "This action is unauthorized.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
