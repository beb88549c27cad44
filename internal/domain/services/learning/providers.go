package learning

import "context"

// ContentProvider yields UTF-8 reference text for a locator.
// Locators are file paths, "file://" URLs or "s3://bucket/key" URLs.
type ContentProvider interface {
	Load(ctx context.Context, locator string) (string, error)
}

// TextGenerator sends a rendered prompt to a generative-text service
// and returns the generated text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)

	// Name identifies the backing service in logs and metrics (e.g., "bedrock")
	Name() string
}

// SpeechSynthesizer converts text to encoded audio (mp3)
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Translator translates text between language codes
type Translator interface {
	Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error)
}

// ContentConverter turns fetched bytes into plain reference text.
// Each converter handles one family of file types (text, html, pdf).
type ContentConverter interface {
	Convert(ctx context.Context, input []byte) (string, error)

	// SupportedExtensions returns the extensions handled, with the leading dot
	SupportedExtensions() []string

	// Name identifies the converter in logs
	Name() string
}
