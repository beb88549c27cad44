package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/polly"
	"github.com/aws/aws-sdk-go/service/polly/pollyiface"

	"smartlearn/internal/config"
	learningSvc "smartlearn/internal/domain/services/learning"
)

var (
	errNothingToSay = errors.New("no speakable text")
	errEmptyAudio   = errors.New("speech service returned no audio")
)

// PollySynthesizer converts text to mp3 with Amazon Polly.
// Text longer than one request allows is sent in chunks and the mp3
// frames are concatenated in order.
type PollySynthesizer struct {
	client   pollyiface.PollyAPI
	voiceID  string
	engine   string
	maxChars int
	logger   *slog.Logger
}

// NewPollySynthesizer creates a synthesizer. engine may be empty to use the voice's default.
func NewPollySynthesizer(client pollyiface.PollyAPI, voiceID, engine string, logger *slog.Logger) learningSvc.SpeechSynthesizer {
	return &PollySynthesizer{
		client:   client,
		voiceID:  voiceID,
		engine:   engine,
		maxChars: config.MaxSpeechTextLength,
		logger:   logger,
	}
}

func (s *PollySynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	text = prepareSpeechText(text)
	if text == "" {
		return nil, errNothingToSay
	}

	chunks := splitForSpeech(text, s.maxChars)

	var audio bytes.Buffer
	for i, chunk := range chunks {
		if err := s.synthesizeChunk(ctx, chunk, &audio); err != nil {
			return nil, fmt.Errorf("chunk %d of %d: %w", i+1, len(chunks), err)
		}
	}

	s.logger.Debug("speech synthesized",
		"voice", s.voiceID,
		"chunks", len(chunks),
		"chars", len(text),
		"bytes", audio.Len(),
	)
	return audio.Bytes(), nil
}

func (s *PollySynthesizer) synthesizeChunk(ctx context.Context, chunk string, dst io.Writer) error {
	input := &polly.SynthesizeSpeechInput{
		Text:         aws.String(chunk),
		OutputFormat: aws.String(polly.OutputFormatMp3),
		VoiceId:      aws.String(s.voiceID),
	}
	if s.engine != "" {
		input.Engine = aws.String(s.engine)
	}

	out, err := s.client.SynthesizeSpeechWithContext(ctx, input)
	if err != nil {
		return err
	}
	if out.AudioStream == nil {
		return errEmptyAudio
	}
	defer out.AudioStream.Close()

	n, err := io.Copy(dst, out.AudioStream)
	if err != nil {
		return fmt.Errorf("read audio stream: %w", err)
	}
	if n == 0 {
		return errEmptyAudio
	}
	return nil
}
