package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	models "smartlearn/internal/domain/models/learning"
	learningSvc "smartlearn/internal/domain/services/learning"
	"smartlearn/internal/httputil"
)

// audioFilename is the download name the form saves audio lessons under
const audioFilename = "output_audio.mp3"

// LessonHandler handles lesson generation requests
type LessonHandler struct {
	lessonService learningSvc.LessonService
	logger        *slog.Logger
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(lessonService learningSvc.LessonService, logger *slog.Logger) *LessonHandler {
	return &LessonHandler{
		lessonService: lessonService,
		logger:        logger,
	}
}

// LessonResponse carries generated text
type LessonResponse struct {
	Response string `json:"response"`
}

// PromptResponse carries a rendered prompt
type PromptResponse struct {
	Prompt string `json:"prompt"`
}

// GetResponse generates a lesson as text or, when requested, as mp3 audio
// POST /get_response
func (h *LessonHandler) GetResponse(w http.ResponseWriter, r *http.Request) {
	var req learningSvc.LessonRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, httputil.ParseStatus(err), err.Error())
		return
	}

	result, err := h.lessonService.Generate(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	switch res := result.(type) {
	case models.TextResult:
		httputil.RespondJSON(w, http.StatusOK, LessonResponse{Response: res.Text})
	case models.AudioResult:
		httputil.RespondAttachment(w, res.ContentType, audioFilename, res.Audio)
	default:
		handleError(w, r, h.logger, fmt.Errorf("unexpected result type %T", result))
	}
}

// PreviewPrompt returns the prompt a lesson request would send (dev only)
// POST /debug/prompt
func (h *LessonHandler) PreviewPrompt(w http.ResponseWriter, r *http.Request) {
	var req learningSvc.LessonRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, httputil.ParseStatus(err), err.Error())
		return
	}

	prompt, err := h.lessonService.Preview(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, PromptResponse{Prompt: prompt})
}
