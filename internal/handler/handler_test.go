package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartlearn/internal/catalog"
	"smartlearn/internal/config"
	"smartlearn/internal/domain"
	models "smartlearn/internal/domain/models/learning"
	learningSvc "smartlearn/internal/domain/services/learning"
	"smartlearn/internal/service/prompt"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeLessonService struct {
	result models.Result
	prompt string
	err    error
	got    *learningSvc.LessonRequest
}

func (f *fakeLessonService) Generate(ctx context.Context, req *learningSvc.LessonRequest) (models.Result, error) {
	f.got = req
	return f.result, f.err
}

func (f *fakeLessonService) Preview(ctx context.Context, req *learningSvc.LessonRequest) (string, error) {
	f.got = req
	return f.prompt, f.err
}

type fakeTranslationService struct {
	text string
	err  error
	got  *learningSvc.TranslationRequest
}

func (f *fakeTranslationService) Translate(ctx context.Context, req *learningSvc.TranslationRequest) (string, error) {
	f.got = req
	return f.text, f.err
}

func post(h http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var msg string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg), "body: %s", rec.Body.String())
	return msg
}

const lessonBody = `{"subject":"Science","topic":"Water Cycle","age":5,"learner-type":"Visual","activity":"Summarization","audio-book-required":false}`

func TestLessonHandler_GetResponse_Text(t *testing.T) {
	svc := &fakeLessonService{result: models.TextResult{Text: "Rain falls."}}
	h := NewLessonHandler(svc, discardLogger())

	rec := post(h.GetResponse, "/get_response", lessonBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"response":"Rain falls."}`, rec.Body.String())

	require.NotNil(t, svc.got)
	assert.Equal(t, "Science", svc.got.Subject)
	assert.Equal(t, 5, svc.got.Age)
	assert.Equal(t, "Visual", svc.got.LearnerType)
	assert.False(t, svc.got.AudioBookRequired)
}

func TestLessonHandler_GetResponse_Audio(t *testing.T) {
	audio := []byte{0xFF, 0xFB, 0x90, 0x00}
	svc := &fakeLessonService{result: models.AudioResult{Audio: audio, ContentType: models.AudioContentType}}
	h := NewLessonHandler(svc, discardLogger())

	rec := post(h.GetResponse, "/get_response", strings.Replace(lessonBody, `"audio-book-required":false`, `"audio-book-required":true`, 1))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/mpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="output_audio.mp3"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "4", rec.Header().Get("Content-Length"))
	assert.Equal(t, audio, rec.Body.Bytes())
	assert.True(t, svc.got.AudioBookRequired)
}

func TestLessonHandler_GetResponse_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "invalid json",
			body:       `{"subject":`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid JSON",
		},
		{
			name:       "validation",
			body:       `{}`,
			err:        &domain.ValidationError{Message: domain.MissingFieldsMessage("subject", "activity")},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Missing required fields: subject and activity",
		},
		{
			name:       "unsupported activity",
			body:       lessonBody,
			err:        &domain.UnsupportedActivityError{Activity: "Debate"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Debate",
		},
		{
			name:       "generation failure",
			body:       lessonBody,
			err:        domain.NewDownstreamError(domain.OpGeneration, errors.New("ThrottlingException")),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "error generating response: ThrottlingException",
		},
		{
			name:       "unclassified failure",
			body:       lessonBody,
			err:        errors.New("nil pointer somewhere"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewLessonHandler(&fakeLessonService{err: tt.err}, discardLogger())

			rec := post(h.GetResponse, "/get_response", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, errorBody(t, rec), tt.wantMsg)
		})
	}
}

func TestLessonHandler_GetResponse_BodyTooLarge(t *testing.T) {
	svc := &fakeLessonService{result: models.TextResult{Text: "unused"}}
	h := NewLessonHandler(svc, discardLogger())

	body := `{"subject":"Science","reference-content":"` + strings.Repeat("x", config.MaxRequestBodyBytes) + `"}`
	rec := post(h.GetResponse, "/get_response", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, errorBody(t, rec), "too large")
	assert.Nil(t, svc.got)
}

func TestLessonHandler_PreviewPrompt(t *testing.T) {
	svc := &fakeLessonService{prompt: "Summarize for grade 5"}
	h := NewLessonHandler(svc, discardLogger())

	rec := post(h.PreviewPrompt, "/debug/prompt", lessonBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"prompt":"Summarize for grade 5"}`, rec.Body.String())
}

func TestTranslationHandler_Translate(t *testing.T) {
	svc := &fakeTranslationService{text: "La lluvia cae."}
	h := NewTranslationHandler(svc, discardLogger())

	rec := post(h.Translate, "/translate", `{"translate-query":"Rain falls.","target-language":"es"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"translated_text":"La lluvia cae."}`, rec.Body.String())
	require.NotNil(t, svc.got)
	assert.Equal(t, "Rain falls.", svc.got.Query)
	assert.Equal(t, "es", svc.got.TargetLanguage)
	assert.Empty(t, svc.got.SourceLanguage)
}

func TestTranslationHandler_Errors(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		svc := &fakeTranslationService{err: &domain.ValidationError{Message: "Missing required fields: translate-query and target-language"}}
		rec := post(NewTranslationHandler(svc, discardLogger()).Translate, "/translate", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Missing required fields: translate-query and target-language", errorBody(t, rec))
	})

	t.Run("translator failure", func(t *testing.T) {
		svc := &fakeTranslationService{err: domain.NewDownstreamError(domain.OpTranslation, errors.New("UnsupportedLanguagePairException"))}
		rec := post(NewTranslationHandler(svc, discardLogger()).Translate, "/translate", `{"translate-query":"x","target-language":"xx"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, errorBody(t, rec), "UnsupportedLanguagePairException")
	})

	t.Run("trailing data", func(t *testing.T) {
		svc := &fakeTranslationService{}
		rec := post(NewTranslationHandler(svc, discardLogger()).Translate, "/translate", `{"translate-query":"x"}{"target-language":"es"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, svc.got)
	})
}

func TestCatalogHandler_GetCatalog(t *testing.T) {
	registry, err := catalog.NewRegistry()
	require.NoError(t, err)
	h := NewCatalogHandler(registry, prompt.NewResolver(), discardLogger())

	rec := httptest.NewRecorder()
	h.GetCatalog(rec, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Grades struct {
			Min int `json:"min"`
			Max int `json:"max"`
		} `json:"grades"`
		Activities []struct {
			Name          string   `json:"name"`
			RequiredSlots []string `json:"required_slots"`
		} `json:"activities"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, 1, body.Grades.Min)
	assert.Equal(t, 12, body.Grades.Max)
	require.Len(t, body.Activities, 3)
	assert.Equal(t, "Summarization", body.Activities[0].Name)
	assert.Contains(t, body.Activities[0].RequiredSlots, "reference-content")
	assert.NotContains(t, body.Activities[0].RequiredSlots, "learner-type")
	assert.Contains(t, body.Activities[1].RequiredSlots, "learner-type")
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
