package translation

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/translate"
	"github.com/aws/aws-sdk-go/service/translate/translateiface"

	learningSvc "smartlearn/internal/domain/services/learning"
)

// AWSTranslator translates text with Amazon Translate
type AWSTranslator struct {
	client translateiface.TranslateAPI
	logger *slog.Logger
}

func NewAWSTranslator(client translateiface.TranslateAPI, logger *slog.Logger) learningSvc.Translator {
	return &AWSTranslator{
		client: client,
		logger: logger,
	}
}

func (t *AWSTranslator) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	out, err := t.client.TextWithContext(ctx, &translate.TextInput{
		Text:               aws.String(text),
		SourceLanguageCode: aws.String(sourceLanguage),
		TargetLanguageCode: aws.String(targetLanguage),
	})
	if err != nil {
		return "", err
	}

	t.logger.Debug("text translated",
		"source", aws.StringValue(out.SourceLanguageCode),
		"target", aws.StringValue(out.TargetLanguageCode),
		"chars", len(text),
	)
	return aws.StringValue(out.TranslatedText), nil
}
