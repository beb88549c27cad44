package config

const (
	// MaxSubjectLength is the maximum length for a subject name.
	MaxSubjectLength = 100

	// MaxTopicLength is the maximum length for a topic.
	// Topics are free text typed into the form, so they get more room than subjects.
	MaxTopicLength = 255

	// MaxReferenceContentLength caps inline reference content (in bytes).
	// Larger material should be loaded through a content locator.
	MaxReferenceContentLength = 200_000

	// MaxTranslateQueryLength is Amazon Translate's synchronous request limit (10,000 bytes).
	MaxTranslateQueryLength = 10_000

	// MaxSpeechTextLength is Amazon Polly's per-request character limit for
	// SynthesizeSpeech (3,000 billed characters).
	MaxSpeechTextLength = 3_000

	// MaxRequestBodyBytes limits inbound JSON bodies
	MaxRequestBodyBytes = 1 << 20
)
