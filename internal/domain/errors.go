package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrValidation          = errors.New("validation failed")
	ErrUnsupportedActivity = errors.New("unsupported activity")
	ErrMissingContent      = errors.New("reference content is missing")
	ErrUnauthorized        = errors.New("unauthorized")

	// ErrDownstream matches any failed call to an external service
	ErrDownstream         = errors.New("downstream failure")
	ErrContentUnavailable = errors.New("content unavailable")
	ErrGenerationFailed   = errors.New("generation failed")
	ErrSynthesisFailed    = errors.New("synthesis failed")
	ErrTranslationFailed  = errors.New("translation failed")
)

// ValidationError indicates a missing or invalid user-supplied field
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string        { return e.Message }
func (e *ValidationError) StatusCode() int      { return http.StatusBadRequest }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError builds a ValidationError from a formatted message
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// UnsupportedActivityError names an activity that has no template
type UnsupportedActivityError struct {
	Activity string
}

func (e *UnsupportedActivityError) Error() string {
	return fmt.Sprintf("unsupported activity type: %q", e.Activity)
}
func (e *UnsupportedActivityError) StatusCode() int      { return http.StatusBadRequest }
func (e *UnsupportedActivityError) Is(target error) bool { return target == ErrUnsupportedActivity }

// MissingContentError indicates the reference content is empty
type MissingContentError struct{}

func (e *MissingContentError) Error() string {
	return "reference content is missing: provide it directly or via a content locator"
}
func (e *MissingContentError) StatusCode() int      { return http.StatusBadRequest }
func (e *MissingContentError) Is(target error) bool { return target == ErrMissingContent }

// DownstreamOp identifies which external collaborator failed
type DownstreamOp string

const (
	OpContent     DownstreamOp = "content"
	OpGeneration  DownstreamOp = "generation"
	OpSynthesis   DownstreamOp = "synthesis"
	OpTranslation DownstreamOp = "translation"
)

var downstreamSentinels = map[DownstreamOp]error{
	OpContent:     ErrContentUnavailable,
	OpGeneration:  ErrGenerationFailed,
	OpSynthesis:   ErrSynthesisFailed,
	OpTranslation: ErrTranslationFailed,
}

var downstreamMessages = map[DownstreamOp]string{
	OpContent:     "error loading reference content",
	OpGeneration:  "error generating response",
	OpSynthesis:   "error generating audio",
	OpTranslation: "error translating text",
}

// DownstreamError wraps a failure of an external service call.
// Never retried; always reported with a 500.
type DownstreamError struct {
	Op  DownstreamOp
	Err error
}

// NewDownstreamError wraps err as a failure of op
func NewDownstreamError(op DownstreamOp, err error) *DownstreamError {
	return &DownstreamError{Op: op, Err: err}
}

func (e *DownstreamError) Error() string {
	prefix, ok := downstreamMessages[e.Op]
	if !ok {
		prefix = "error calling " + string(e.Op)
	}
	if e.Err == nil {
		return prefix
	}
	return prefix + ": " + e.Err.Error()
}

func (e *DownstreamError) Unwrap() error   { return e.Err }
func (e *DownstreamError) StatusCode() int { return http.StatusInternalServerError }

// Is matches ErrDownstream and the op-specific sentinel
func (e *DownstreamError) Is(target error) bool {
	if target == ErrDownstream {
		return true
	}
	sentinel, ok := downstreamSentinels[e.Op]
	return ok && target == sentinel
}

// MissingFieldsMessage formats the message used when required fields are absent,
// e.g. "Missing required fields: subject and activity".
func MissingFieldsMessage(fields ...string) string {
	switch len(fields) {
	case 0:
		return "Missing required fields"
	case 1:
		return "Missing required field: " + fields[0]
	default:
		return "Missing required fields: " + strings.Join(fields[:len(fields)-1], ", ") + " and " + fields[len(fields)-1]
	}
}
