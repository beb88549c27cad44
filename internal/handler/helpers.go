package handler

import (
	"log/slog"
	"net/http"

	models "smartlearn/internal/domain/models/learning"
	"smartlearn/internal/httputil"
)

// handleError converts domain errors to HTTP responses.
// Errors outside the domain taxonomy are logged and reported as a bare 500.
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	result := models.ErrorResultFrom(err)

	if result.Status >= http.StatusInternalServerError {
		logger.Error("request failed",
			"path", r.URL.Path,
			"kind", result.Kind,
			"request_id", httputil.RequestID(r.Context()),
			"error", err,
		)
	}

	httputil.RespondError(w, result.Status, result.Message)
}
