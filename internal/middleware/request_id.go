package middleware

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"smartlearn/internal/httputil"
)

const RequestIDHeader = "X-Request-ID"

// incoming IDs are echoed only when they are short and log-safe
var validRequestID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// RequestID tags each request with an ID, reusing the caller's X-Request-ID when valid
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if !validRequestID.MatchString(id) {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, httputil.WithRequestID(r, id))
	})
}
