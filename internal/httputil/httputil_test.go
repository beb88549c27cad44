package httputil

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartlearn/internal/config"
)

func TestRespondError_JSONString(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusBadRequest, `Missing required fields: subject and activity`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, `"Missing required fields: subject and activity"`, rec.Body.String())
}

func TestRespondAttachment(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondAttachment(rec, "audio/mpeg", "output_audio.mp3", []byte("ID3"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/mpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="output_audio.mp3"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "3", rec.Header().Get("Content-Length"))
	assert.Equal(t, "ID3", rec.Body.String())
}

func TestParseJSON(t *testing.T) {
	type payload struct {
		Subject string `json:"subject"`
	}

	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{name: "valid", body: `{"subject": "Science", "extra": 1}`, want: "Science"},
		{name: "empty", body: ``, wantErr: true},
		{name: "malformed", body: `{"subject":`, wantErr: true},
		{name: "trailing data", body: `{"subject": "a"} {"subject": "b"}`, wantErr: true},
		{name: "trailing brace", body: `{"subject": "a"}}`, wantErr: true},
		{name: "trailing whitespace", body: "{\"subject\": \"a\"}\n  ", want: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var got payload
			err := ParseJSON(httptest.NewRecorder(), req, &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Subject)
		})
	}
}

func TestParseJSON_BodyTooLarge(t *testing.T) {
	body := `{"subject": "` + strings.Repeat("a", config.MaxRequestBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	var got struct {
		Subject string `json:"subject"`
	}
	err := ParseJSON(httptest.NewRecorder(), req, &got)
	require.Error(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, ParseStatus(err))
}

func TestParseStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ParseStatus(ErrEmptyBody))
	assert.Equal(t, http.StatusBadRequest, ParseStatus(errors.New("invalid JSON: unexpected EOF")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, ParseStatus(fmt.Errorf("invalid JSON: %w", &http.MaxBytesError{Limit: 10})))
}

func TestRequestIDContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, RequestID(req.Context()))

	req = WithRequestID(req, "abc-123")
	assert.Equal(t, "abc-123", RequestID(req.Context()))

	req = WithUserID(req, "user-1")
	assert.Equal(t, "user-1", UserID(req.Context()))
}
