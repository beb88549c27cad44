package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"smartlearn/internal/domain"
	models "smartlearn/internal/domain/models/learning"
	learningSvc "smartlearn/internal/domain/services/learning"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

// activityTemplate binds an activity to its template file and the slots it declares
type activityTemplate struct {
	file  string
	slots []models.Slot
}

var activityTemplates = map[models.ActivityKind]activityTemplate{
	models.ActivitySummarization: {
		file:  "templates/summarization.tmpl",
		slots: []models.Slot{models.SlotAge, models.SlotSubject, models.SlotTopic, models.SlotReferenceContent},
	},
	models.ActivityTeaching: {
		file:  "templates/teaching.tmpl",
		slots: []models.Slot{models.SlotLearnerType, models.SlotAge, models.SlotSubject, models.SlotTopic, models.SlotReferenceContent},
	},
	models.ActivityEvaluation: {
		file:  "templates/evaluation.tmpl",
		slots: []models.Slot{models.SlotAge, models.SlotSubject, models.SlotTopic, models.SlotLearnerType, models.SlotReferenceContent},
	},
}

// compiled templates are shared read-only by every Resolver
var compiled = mustCompile()

func mustCompile() map[models.ActivityKind]*template.Template {
	out := make(map[models.ActivityKind]*template.Template, len(activityTemplates))
	for kind, at := range activityTemplates {
		out[kind] = template.Must(template.ParseFS(templateFiles, at.file))
	}
	return out
}

// Resolver renders the compiled-in activity templates.
// Implements learningSvc.PromptResolver.
type Resolver struct {
	templates map[models.ActivityKind]*template.Template
}

// NewResolver creates a resolver over the compiled-in templates
func NewResolver() learningSvc.PromptResolver {
	return &Resolver{templates: compiled}
}

// Resolve checks, in order: the activity is known, the reference content is
// present, every other declared slot is present. Only then is the template rendered.
func (r *Resolver) Resolve(activity models.ActivityKind, params models.PromptParameters) (string, error) {
	tmpl, ok := r.templates[activity]
	if !ok {
		return "", &domain.UnsupportedActivityError{Activity: string(activity)}
	}

	if strings.TrimSpace(params.ReferenceContent) == "" {
		return "", &domain.MissingContentError{}
	}

	if missing := missingSlots(activityTemplates[activity].slots, params); len(missing) > 0 {
		return "", domain.NewValidationError("%s for activity %s", domain.MissingFieldsMessage(missing...), activity)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params); err != nil {
		return "", fmt.Errorf("render %s template: %w", activity, err)
	}

	return buf.String(), nil
}

// RequiredSlots returns the slots declared by the activity's template
func (r *Resolver) RequiredSlots(activity models.ActivityKind) ([]models.Slot, error) {
	at, ok := activityTemplates[activity]
	if !ok {
		return nil, &domain.UnsupportedActivityError{Activity: string(activity)}
	}
	slots := make([]models.Slot, len(at.slots))
	copy(slots, at.slots)
	return slots, nil
}

// missingSlots lists declared slots with no value.
// Reference content is checked separately because it has its own error.
func missingSlots(slots []models.Slot, params models.PromptParameters) []string {
	var missing []string
	for _, slot := range slots {
		switch slot {
		case models.SlotAge:
			if params.Age <= 0 {
				missing = append(missing, string(slot))
			}
		case models.SlotSubject:
			if strings.TrimSpace(params.Subject) == "" {
				missing = append(missing, string(slot))
			}
		case models.SlotTopic:
			if strings.TrimSpace(params.Topic) == "" {
				missing = append(missing, string(slot))
			}
		case models.SlotLearnerType:
			if strings.TrimSpace(params.LearnerType) == "" {
				missing = append(missing, string(slot))
			}
		}
	}
	return missing
}
