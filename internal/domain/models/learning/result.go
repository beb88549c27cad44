package learning

import (
	"errors"
	"net/http"

	"smartlearn/internal/domain"
)

// AudioContentType is the media type of synthesized audio
const AudioContentType = "audio/mpeg"

// Result is the envelope returned to the edge caller:
// one of TextResult, AudioResult or ErrorResult.
type Result interface {
	isResult()
}

// TextResult carries generated text
type TextResult struct {
	Text string
}

// AudioResult carries synthesized speech
type AudioResult struct {
	Audio       []byte
	ContentType string
}

// ErrorKind classifies an ErrorResult
type ErrorKind string

const (
	ErrorKindValidation          ErrorKind = "validation"
	ErrorKindUnsupportedActivity ErrorKind = "unsupported_activity"
	ErrorKindMissingContent      ErrorKind = "missing_content"
	ErrorKindDownstream          ErrorKind = "downstream"
	ErrorKindInternal            ErrorKind = "internal"
)

// ErrorResult describes a failed request
type ErrorResult struct {
	Kind    ErrorKind
	Message string
	Status  int
}

func (TextResult) isResult()  {}
func (AudioResult) isResult() {}
func (ErrorResult) isResult() {}

// ErrorResultFrom classifies err into an ErrorResult.
// Errors outside the domain taxonomy become a generic internal error.
func ErrorResultFrom(err error) ErrorResult {
	var httpErr domain.HTTPError
	if !errors.As(err, &httpErr) {
		return ErrorResult{
			Kind:    ErrorKindInternal,
			Message: "internal server error",
			Status:  http.StatusInternalServerError,
		}
	}

	kind := ErrorKindInternal
	switch {
	case errors.Is(err, domain.ErrUnsupportedActivity):
		kind = ErrorKindUnsupportedActivity
	case errors.Is(err, domain.ErrMissingContent):
		kind = ErrorKindMissingContent
	case errors.Is(err, domain.ErrValidation):
		kind = ErrorKindValidation
	case errors.Is(err, domain.ErrDownstream):
		kind = ErrorKindDownstream
	}

	return ErrorResult{
		Kind:    kind,
		Message: err.Error(),
		Status:  httpErr.StatusCode(),
	}
}
