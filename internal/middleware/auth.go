package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"smartlearn/internal/auth"
	"smartlearn/internal/httputil"
)

// Auth requires a valid bearer token and stores its subject as the user ID.
// A nil verifier disables the check.
func Auth(verifier auth.JWTVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if verifier == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Debug("request rejected",
					"path", r.URL.Path,
					"request_id", httputil.RequestID(r.Context()),
				)
				httputil.RespondError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.GetUserID()))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
