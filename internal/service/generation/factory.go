package generation

import (
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/bedrockruntime"
	"github.com/haowjy/meridian-llm-go/providers/anthropic"
	"github.com/haowjy/meridian-llm-go/providers/lorem"

	"smartlearn/internal/config"
	learningSvc "smartlearn/internal/domain/services/learning"
)

// NewFromConfig builds the generator named by cfg.GenerationProvider.
//
// Supported providers:
//   - "bedrock" - Anthropic models on Amazon Bedrock (needs an AWS session)
//   - "anthropic" - Anthropic API through meridian-llm-go
//   - "lorem" - lorem ipsum text, no credentials required
func NewFromConfig(cfg *config.Config, sess *session.Session, logger *slog.Logger) (learningSvc.TextGenerator, error) {
	params := Params{
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		TopK:        cfg.TopK,
		TopP:        cfg.TopP,
	}

	switch cfg.GenerationProvider {
	case config.ProviderBedrock:
		if sess == nil {
			return nil, fmt.Errorf("bedrock provider requires an AWS session")
		}
		params.Model = cfg.BedrockModelID
		return NewBedrockGenerator(bedrockruntime.New(sess), params, logger), nil

	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
		provider, err := anthropic.NewProvider(cfg.AnthropicAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create Anthropic provider: %w", err)
		}
		params.Model = cfg.AnthropicModel
		return NewLibraryGenerator(provider, config.ProviderAnthropic, params, logger), nil

	case config.ProviderLorem:
		params.Model = "lorem-fast"
		return NewLibraryGenerator(lorem.NewProvider(), config.ProviderLorem, params, logger), nil

	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", cfg.GenerationProvider)
	}
}
