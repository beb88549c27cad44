package learning

import (
	"context"

	models "smartlearn/internal/domain/models/learning"
)

// PromptResolver maps an activity and its parameters to the instruction
// sent to the generation service.
type PromptResolver interface {
	// Resolve validates params against the activity's declared slots and
	// renders its template. It never returns a partial prompt.
	//
	// Errors: UnsupportedActivityError, MissingContentError, ValidationError.
	Resolve(activity models.ActivityKind, params models.PromptParameters) (string, error)

	// RequiredSlots returns the slots the activity's template declares
	RequiredSlots(activity models.ActivityKind) ([]models.Slot, error)
}

// LessonRequest is the inbound envelope for lesson generation
type LessonRequest struct {
	Subject           string `json:"subject"`
	Topic             string `json:"topic"`
	Age               int    `json:"age"`
	LearnerType       string `json:"learner-type"`
	Activity          string `json:"activity"`
	AudioBookRequired bool   `json:"audio-book-required"`

	// Optional: reference text supplied inline. Takes precedence over ContentLocator.
	ReferenceContent string `json:"reference-content,omitempty"`

	// Optional: where to load reference text from. Defaults to the configured locator.
	ContentLocator string `json:"content-locator,omitempty"`
}

// LessonService runs the generate-lesson workflow
type LessonService interface {
	// Generate validates the envelope, resolves the prompt, calls the
	// generation service and, when requested, the speech service.
	// Returns a TextResult or an AudioResult.
	Generate(ctx context.Context, req *LessonRequest) (models.Result, error)

	// Preview performs every step up to prompt resolution and returns the prompt
	Preview(ctx context.Context, req *LessonRequest) (string, error)
}

// TranslationRequest is the inbound envelope for translation
type TranslationRequest struct {
	Query          string `json:"translate-query"`
	TargetLanguage string `json:"target-language"`

	// Optional: defaults to the configured source language ("en")
	SourceLanguage string `json:"source-language,omitempty"`
}

// TranslationService translates previously generated text
type TranslationService interface {
	Translate(ctx context.Context, req *TranslationRequest) (string, error)
}
