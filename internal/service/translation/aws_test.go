package translation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/translate"
	"github.com/aws/aws-sdk-go/service/translate/translateiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTranslate struct {
	translateiface.TranslateAPI
	input *translate.TextInput
	err   error
}

func (f *fakeTranslate) TextWithContext(ctx aws.Context, in *translate.TextInput, _ ...request.Option) (*translate.TextOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &translate.TextOutput{
		TranslatedText:     aws.String("Le cycle de l'eau"),
		SourceLanguageCode: in.SourceLanguageCode,
		TargetLanguageCode: in.TargetLanguageCode,
	}, nil
}

func TestAWSTranslator_Translate(t *testing.T) {
	client := &fakeTranslate{}
	tr := NewAWSTranslator(client, slog.New(slog.NewTextHandler(io.Discard, nil)))

	got, err := tr.Translate(context.Background(), "The water cycle", "en", "fr")
	require.NoError(t, err)
	assert.Equal(t, "Le cycle de l'eau", got)

	assert.Equal(t, "The water cycle", aws.StringValue(client.input.Text))
	assert.Equal(t, "en", aws.StringValue(client.input.SourceLanguageCode))
	assert.Equal(t, "fr", aws.StringValue(client.input.TargetLanguageCode))
}

func TestAWSTranslator_Error(t *testing.T) {
	client := &fakeTranslate{err: errors.New("UnsupportedLanguagePairException")}
	tr := NewAWSTranslator(client, slog.New(slog.NewTextHandler(io.Discard, nil)))

	got, err := tr.Translate(context.Background(), "text", "en", "xx")
	require.Error(t, err)
	assert.Empty(t, got)
}
