package learning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"smartlearn/internal/catalog"
	"smartlearn/internal/config"
	"smartlearn/internal/domain"
	models "smartlearn/internal/domain/models/learning"
	learningSvc "smartlearn/internal/domain/services/learning"
	"smartlearn/internal/httputil"
	"smartlearn/internal/metrics"
)

// FormCatalog is the part of the catalog used to validate requests
type FormCatalog interface {
	Grades() catalog.GradeRange
	LearnerTypeNames() []string
}

// lessonService implements the LessonService interface
type lessonService struct {
	resolver       learningSvc.PromptResolver
	content        learningSvc.ContentProvider
	generator      learningSvc.TextGenerator
	synthesizer    learningSvc.SpeechSynthesizer
	catalog        FormCatalog
	defaultLocator string
	downstream     downstream
	metrics        *metrics.Metrics
	logger         *slog.Logger
}

// NewLessonService creates a new lesson service. m may be nil.
func NewLessonService(
	resolver learningSvc.PromptResolver,
	content learningSvc.ContentProvider,
	generator learningSvc.TextGenerator,
	synthesizer learningSvc.SpeechSynthesizer,
	formCatalog FormCatalog,
	cfg *config.Config,
	m *metrics.Metrics,
	logger *slog.Logger,
) learningSvc.LessonService {
	return &lessonService{
		resolver:       resolver,
		content:        content,
		generator:      generator,
		synthesizer:    synthesizer,
		catalog:        formCatalog,
		defaultLocator: cfg.ContentDefaultLocator,
		downstream:     downstream{timeout: cfg.DownstreamTimeout, metrics: m, logger: logger},
		metrics:        m,
		logger:         logger,
	}
}

// Generate runs the full workflow and returns a TextResult or an AudioResult
func (s *lessonService) Generate(ctx context.Context, req *learningSvc.LessonRequest) (models.Result, error) {
	activity, prompt, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	var text string
	err = s.downstream.call(ctx, domain.OpGeneration, s.generator.Name(), func(ctx context.Context) error {
		var err error
		text, err = s.generator.Generate(ctx, prompt)
		return err
	})
	if err != nil {
		return nil, err
	}

	if !req.AudioBookRequired {
		s.logger.Info("lesson generated",
			"activity", activity,
			"subject", req.Subject,
			"prompt_length", len(prompt),
			"response_length", len(text),
			"request_id", httputil.RequestID(ctx),
			"user_id", httputil.UserID(ctx),
		)
		return models.TextResult{Text: text}, nil
	}

	var audio []byte
	err = s.downstream.call(ctx, domain.OpSynthesis, "polly", func(ctx context.Context) error {
		var err error
		audio, err = s.synthesizer.Synthesize(ctx, text)
		if err == nil && len(audio) == 0 {
			err = errors.New("speech service returned no audio")
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("lesson generated",
		"activity", activity,
		"subject", req.Subject,
		"prompt_length", len(prompt),
		"response_length", len(text),
		"audio_bytes", len(audio),
		"request_id", httputil.RequestID(ctx),
		"user_id", httputil.UserID(ctx),
	)
	return models.AudioResult{Audio: audio, ContentType: models.AudioContentType}, nil
}

// Preview returns the prompt Generate would send, without calling the model
func (s *lessonService) Preview(ctx context.Context, req *learningSvc.LessonRequest) (string, error) {
	_, prompt, err := s.prepare(ctx, req)
	return prompt, err
}

// prepare validates the envelope, loads reference content and resolves the prompt
func (s *lessonService) prepare(ctx context.Context, req *learningSvc.LessonRequest) (models.ActivityKind, string, error) {
	if err := s.validateRequest(req); err != nil {
		return "", "", err
	}

	activity, err := models.ParseActivityKind(req.Activity)
	if err != nil {
		return "", "", err
	}

	content, err := s.referenceContent(ctx, req)
	if err != nil {
		return "", "", err
	}

	prompt, err := s.resolver.Resolve(activity, models.PromptParameters{
		Age:              req.Age,
		Subject:          strings.TrimSpace(req.Subject),
		Topic:            strings.TrimSpace(req.Topic),
		LearnerType:      strings.TrimSpace(req.LearnerType),
		ReferenceContent: content,
	})
	if err != nil {
		return "", "", err
	}

	s.metrics.PromptRendered(string(activity))
	s.logger.Debug("prompt resolved",
		"activity", activity,
		"subject", req.Subject,
		"prompt_length", len(prompt),
		"request_id", httputil.RequestID(ctx),
		"user_id", httputil.UserID(ctx),
	)
	return activity, prompt, nil
}

// referenceContent prefers inline content, then the request's locator,
// then the configured default. An empty result is left for the resolver to reject.
func (s *lessonService) referenceContent(ctx context.Context, req *learningSvc.LessonRequest) (string, error) {
	if strings.TrimSpace(req.ReferenceContent) != "" {
		return req.ReferenceContent, nil
	}

	locator := strings.TrimSpace(req.ContentLocator)
	if locator == "" {
		locator = s.defaultLocator
	}
	if locator == "" {
		return "", nil
	}

	var content string
	err := s.downstream.call(ctx, domain.OpContent, "content", func(ctx context.Context) error {
		var err error
		content, err = s.content.Load(ctx, locator)
		return err
	})
	return content, err
}

// validateRequest checks the envelope before any collaborator runs
func (s *lessonService) validateRequest(req *learningSvc.LessonRequest) error {
	var missing []string
	if strings.TrimSpace(req.Subject) == "" {
		missing = append(missing, "subject")
	}
	if strings.TrimSpace(req.Activity) == "" {
		missing = append(missing, "activity")
	}
	if len(missing) > 0 {
		return &domain.ValidationError{Message: domain.MissingFieldsMessage(missing...)}
	}

	grades := s.catalog.Grades()
	learnerTypes := s.catalog.LearnerTypeNames()

	err := validation.ValidateStruct(req,
		validation.Field(&req.Subject, validation.RuneLength(1, config.MaxSubjectLength)),
		validation.Field(&req.Topic, validation.RuneLength(0, config.MaxTopicLength)),
		validation.Field(&req.Age,
			validation.When(req.Age != 0,
				validation.Min(grades.Min).Error(gradeRangeMessage(grades)),
				validation.Max(grades.Max).Error(gradeRangeMessage(grades)),
			),
		),
		validation.Field(&req.LearnerType,
			validation.When(req.LearnerType != "",
				validation.In(toInterfaces(learnerTypes)...).Error("must be one of: "+strings.Join(learnerTypes, ", ")),
			),
		),
		validation.Field(&req.ReferenceContent, validation.Length(0, config.MaxReferenceContentLength)),
	)
	if err != nil {
		return &domain.ValidationError{Message: err.Error()}
	}
	return nil
}

func gradeRangeMessage(g catalog.GradeRange) string {
	return fmt.Sprintf("must be a grade between %d and %d", g.Min, g.Max)
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
