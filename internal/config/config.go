package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Generation providers
const (
	ProviderBedrock   = "bedrock"
	ProviderAnthropic = "anthropic"
	ProviderLorem     = "lorem"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Logging
	LogDir      string // Empty disables the log file
	LogMaxFiles int
	// AWS
	AWSRegion string
	// Generation
	GenerationProvider string
	BedrockModelID     string
	MaxTokens          int
	Temperature        float64
	TopK               int
	TopP               float64
	AnthropicAPIKey    string
	AnthropicModel     string
	// Speech
	PollyVoiceID string
	PollyEngine  string
	// Translation
	TranslateSourceLanguage string
	// Reference content
	ContentBaseDir        string
	ContentDefaultLocator string
	ContentS3Bucket       string
	// ContentS3AllowedBuckets are readable in addition to ContentS3Bucket
	ContentS3AllowedBuckets []string
	// DownstreamTimeout bounds each external service call (0 = request context only)
	DownstreamTimeout time.Duration
	// AuthJWKSURL enables bearer-token auth when set
	AuthJWKSURL string
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:8501"),
		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getEnvInt("LOG_MAX_FILES", 10),
		AWSRegion:   getEnv("AWS_REGION", "us-west-2"),
		// Generation defaults are the Claude 3.5 Sonnet settings the lesson form was tuned with
		GenerationProvider: getEnv("GENERATION_PROVIDER", ProviderBedrock),
		BedrockModelID:     getEnv("BEDROCK_MODEL_ID", "anthropic.claude-3-5-sonnet-20240620-v1:0"),
		MaxTokens:          getEnvInt("GENERATION_MAX_TOKENS", 4096),
		Temperature:        getEnvFloat("GENERATION_TEMPERATURE", 0.7),
		TopK:               getEnvInt("GENERATION_TOP_K", 200),
		TopP:               getEnvFloat("GENERATION_TOP_P", 0.9),
		AnthropicAPIKey:    getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:     getEnv("ANTHROPIC_MODEL", "claude-3-5-sonnet-20240620"),
		// Speech
		PollyVoiceID: getEnv("POLLY_VOICE_ID", "Joanna"),
		PollyEngine:  getEnv("POLLY_ENGINE", "standard"),
		// Translation
		TranslateSourceLanguage: getEnv("TRANSLATE_SOURCE_LANGUAGE", "en"),
		// Reference content
		ContentBaseDir:          getEnv("CONTENT_BASE_DIR", "."),
		ContentDefaultLocator:   getEnv("CONTENT_DEFAULT_LOCATOR", "textbook_content.txt"),
		ContentS3Bucket:         getEnv("CONTENT_S3_BUCKET", ""),
		ContentS3AllowedBuckets: getEnvList("CONTENT_S3_ALLOWED_BUCKETS"),
		DownstreamTimeout:       getEnvDuration("DOWNSTREAM_TIMEOUT", 0),
		AuthJWKSURL:             getEnv("AUTH_JWKS_URL", ""),
	}
}

// Validate checks the loaded configuration for values the services cannot run with
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required),
		validation.Field(&c.Environment, validation.Required, validation.In("dev", "test", "prod")),
		validation.Field(&c.GenerationProvider,
			validation.Required,
			validation.In(ProviderBedrock, ProviderAnthropic, ProviderLorem),
		),
		validation.Field(&c.AnthropicAPIKey,
			validation.When(c.GenerationProvider == ProviderAnthropic, validation.Required.Error("is required when GENERATION_PROVIDER=anthropic")),
		),
		validation.Field(&c.BedrockModelID, validation.When(c.GenerationProvider == ProviderBedrock, validation.Required)),
		validation.Field(&c.MaxTokens, validation.Min(1)),
		validation.Field(&c.Temperature, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.TopP, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.PollyVoiceID, validation.Required),
		validation.Field(&c.TranslateSourceLanguage, validation.Required),
		validation.Field(&c.LogMaxFiles, validation.Min(1)),
	)
}

// IsDev reports whether dev-only routes and debug logging are enabled
func (c *Config) IsDev() bool {
	return c.Environment == "dev"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvList splits a comma-separated variable, dropping blank entries
func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
