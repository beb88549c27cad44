package handler

import (
	"log/slog"
	"net/http"

	learningSvc "smartlearn/internal/domain/services/learning"
	"smartlearn/internal/httputil"
)

// TranslationHandler handles translation requests
type TranslationHandler struct {
	translationService learningSvc.TranslationService
	logger             *slog.Logger
}

// NewTranslationHandler creates a new translation handler
func NewTranslationHandler(translationService learningSvc.TranslationService, logger *slog.Logger) *TranslationHandler {
	return &TranslationHandler{
		translationService: translationService,
		logger:             logger,
	}
}

// TranslationResponse carries translated text
type TranslationResponse struct {
	TranslatedText string `json:"translated_text"`
}

// Translate translates generated lesson text
// POST /translate
func (h *TranslationHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req learningSvc.TranslationRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, httputil.ParseStatus(err), err.Error())
		return
	}

	translated, err := h.translationService.Translate(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, TranslationResponse{TranslatedText: translated})
}
