package learning

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"smartlearn/internal/config"
	"smartlearn/internal/domain"
	learningSvc "smartlearn/internal/domain/services/learning"
	"smartlearn/internal/httputil"
	"smartlearn/internal/metrics"
)

// languageCodePattern accepts ISO 639 codes with an optional region ("en", "fil", "zh-TW", "fr-CA")
var languageCodePattern = regexp.MustCompile(`^[a-zA-Z]{2,3}(-[a-zA-Z]{2,4})?$`)

// translationService implements the TranslationService interface
type translationService struct {
	translator     learningSvc.Translator
	sourceLanguage string
	downstream     downstream
	logger         *slog.Logger
}

// NewTranslationService creates a new translation service. m may be nil.
func NewTranslationService(
	translator learningSvc.Translator,
	cfg *config.Config,
	m *metrics.Metrics,
	logger *slog.Logger,
) learningSvc.TranslationService {
	return &translationService{
		translator:     translator,
		sourceLanguage: cfg.TranslateSourceLanguage,
		downstream:     downstream{timeout: cfg.DownstreamTimeout, metrics: m, logger: logger},
		logger:         logger,
	}
}

// Translate translates previously generated text into the target language
func (s *translationService) Translate(ctx context.Context, req *learningSvc.TranslationRequest) (string, error) {
	if err := s.validateRequest(req); err != nil {
		return "", err
	}

	source := strings.TrimSpace(req.SourceLanguage)
	if source == "" {
		source = s.sourceLanguage
	}
	target := strings.TrimSpace(req.TargetLanguage)

	var translated string
	err := s.downstream.call(ctx, domain.OpTranslation, "translate", func(ctx context.Context) error {
		var err error
		translated, err = s.translator.Translate(ctx, req.Query, source, target)
		return err
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("text translated",
		"source", source,
		"target", target,
		"query_length", len(req.Query),
		"request_id", httputil.RequestID(ctx),
		"user_id", httputil.UserID(ctx),
	)
	return translated, nil
}

func (s *translationService) validateRequest(req *learningSvc.TranslationRequest) error {
	// Both fields are named together, whichever one is absent
	if strings.TrimSpace(req.Query) == "" || strings.TrimSpace(req.TargetLanguage) == "" {
		return &domain.ValidationError{Message: domain.MissingFieldsMessage("translate-query", "target-language")}
	}

	languageCode := validation.Match(languageCodePattern).Error("must be a language code such as \"fr\" or \"pt-BR\"")

	err := validation.ValidateStruct(req,
		validation.Field(&req.Query, validation.Length(1, config.MaxTranslateQueryLength)),
		validation.Field(&req.TargetLanguage, languageCode),
		validation.Field(&req.SourceLanguage, validation.When(req.SourceLanguage != "", languageCode)),
	)
	if err != nil {
		return &domain.ValidationError{Message: err.Error()}
	}
	return nil
}
