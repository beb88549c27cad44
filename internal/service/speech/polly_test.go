package speech

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/polly"
	"github.com/aws/aws-sdk-go/service/polly/pollyiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePolly struct {
	pollyiface.PollyAPI
	inputs []*polly.SynthesizeSpeechInput
	audio  string
	err    error
}

func (f *fakePolly) SynthesizeSpeechWithContext(ctx aws.Context, in *polly.SynthesizeSpeechInput, _ ...request.Option) (*polly.SynthesizeSpeechOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &polly.SynthesizeSpeechOutput{
		AudioStream: io.NopCloser(strings.NewReader(f.audio)),
		ContentType: aws.String("audio/mpeg"),
	}, nil
}

func newTestSynthesizer(client pollyiface.PollyAPI, maxChars int) *PollySynthesizer {
	s := NewPollySynthesizer(client, "Joanna", "standard", slog.New(slog.NewTextHandler(io.Discard, nil))).(*PollySynthesizer)
	if maxChars > 0 {
		s.maxChars = maxChars
	}
	return s
}

func TestPollySynthesizer_SingleRequest(t *testing.T) {
	client := &fakePolly{audio: "ID3mp3"}
	s := newTestSynthesizer(client, 0)

	audio, err := s.Synthesize(context.Background(), "## Summary\nThe **water cycle** moves water.")
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3mp3"), audio)

	require.Len(t, client.inputs, 1)
	in := client.inputs[0]
	assert.Equal(t, "Summary\nThe water cycle moves water.", aws.StringValue(in.Text))
	assert.Equal(t, polly.OutputFormatMp3, aws.StringValue(in.OutputFormat))
	assert.Equal(t, "Joanna", aws.StringValue(in.VoiceId))
	assert.Equal(t, "standard", aws.StringValue(in.Engine))
}

func TestPollySynthesizer_ChunksLongText(t *testing.T) {
	client := &fakePolly{audio: "f"}
	s := newTestSynthesizer(client, 40)

	text := "Evaporation lifts water into the air. Condensation forms the clouds. Precipitation returns it to the ground."
	audio, err := s.Synthesize(context.Background(), text)
	require.NoError(t, err)

	require.Len(t, client.inputs, 3)
	assert.Equal(t, "fff", string(audio))
	assert.Equal(t, "Evaporation lifts water into the air.", aws.StringValue(client.inputs[0].Text))
	assert.Equal(t, "Condensation forms the clouds.", aws.StringValue(client.inputs[1].Text))
}

func TestPollySynthesizer_Errors(t *testing.T) {
	_, err := newTestSynthesizer(&fakePolly{err: errors.New("TextLengthExceededException")}, 0).
		Synthesize(context.Background(), "Hello.")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TextLengthExceededException")

	_, err = newTestSynthesizer(&fakePolly{audio: ""}, 0).Synthesize(context.Background(), "Hello.")
	assert.ErrorIs(t, err, errEmptyAudio)

	client := &fakePolly{audio: "x"}
	_, err = newTestSynthesizer(client, 0).Synthesize(context.Background(), " ** ## ")
	assert.ErrorIs(t, err, errNothingToSay)
	assert.Empty(t, client.inputs)
}

func TestSplitForSpeech(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{
			name:  "fits in one chunk",
			text:  "One. Two. Three.",
			limit: 100,
			want:  []string{"One. Two. Three."},
		},
		{
			name:  "packs sentences",
			text:  "One. Two. Three.",
			limit: 10,
			want:  []string{"One. Two.", "Three."},
		},
		{
			name:  "long sentence splits at words",
			text:  "alpha beta gamma delta",
			limit: 11,
			want:  []string{"alpha beta", "gamma delta"},
		},
		{
			name:  "long word hard splits",
			text:  "abcdefghij",
			limit: 4,
			want:  []string{"abcd", "efgh", "ij"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitForSpeech(tt.text, tt.limit)
			assert.Equal(t, tt.want, got)
			for _, chunk := range got {
				assert.LessOrEqual(t, utf8.RuneCountInString(chunk), tt.limit)
			}
		})
	}
}
