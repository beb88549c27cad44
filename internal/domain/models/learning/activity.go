package learning

import (
	"strings"

	"smartlearn/internal/domain"
)

// ActivityKind is the pedagogical task requested (summarize, teach, evaluate).
// The set is closed: any value outside the constants below is unsupported.
type ActivityKind string

const (
	ActivitySummarization ActivityKind = "Summarization"
	ActivityTeaching      ActivityKind = "Teaching"
	ActivityEvaluation    ActivityKind = "Evaluation"
)

// activityOrder is the canonical order used in listings and error messages
var activityOrder = []ActivityKind{
	ActivitySummarization,
	ActivityTeaching,
	ActivityEvaluation,
}

// Activities returns the known activity kinds in canonical order
func Activities() []ActivityKind {
	out := make([]ActivityKind, len(activityOrder))
	copy(out, activityOrder)
	return out
}

// Valid reports whether a is one of the known kinds
func (a ActivityKind) Valid() bool {
	for _, known := range activityOrder {
		if a == known {
			return true
		}
	}
	return false
}

func (a ActivityKind) String() string {
	return string(a)
}

// ParseActivityKind maps a wire name to an ActivityKind.
// Matching ignores case and surrounding whitespace.
func ParseActivityKind(value string) (ActivityKind, error) {
	trimmed := strings.TrimSpace(value)
	for _, known := range activityOrder {
		if strings.EqualFold(trimmed, string(known)) {
			return known, nil
		}
	}
	return "", &domain.UnsupportedActivityError{Activity: value}
}
