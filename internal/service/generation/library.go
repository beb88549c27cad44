package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	llmprovider "github.com/haowjy/meridian-llm-go"

	learningSvc "smartlearn/internal/domain/services/learning"
)

// responder is the part of llmprovider.Provider the generator needs
type responder interface {
	GenerateResponse(ctx context.Context, req *llmprovider.GenerateRequest) (*llmprovider.GenerateResponse, error)
}

// LibraryGenerator calls a model through a meridian-llm-go provider
type LibraryGenerator struct {
	provider responder
	name     string
	params   Params
	logger   *slog.Logger
}

func NewLibraryGenerator(provider responder, name string, params Params, logger *slog.Logger) learningSvc.TextGenerator {
	return &LibraryGenerator{
		provider: provider,
		name:     name,
		params:   params,
		logger:   logger,
	}
}

func (g *LibraryGenerator) Name() string {
	return g.name
}

func (g *LibraryGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.provider.GenerateResponse(ctx, g.buildRequest(prompt))
	if err != nil {
		return "", fmt.Errorf("%s: %w", g.name, err)
	}

	var sb strings.Builder
	for _, block := range resp.Blocks {
		if block == nil || block.TextContent == nil {
			continue
		}
		if block.BlockType == "" || block.BlockType == "text" {
			sb.WriteString(*block.TextContent)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", errEmptyCompletion
	}

	g.logger.Debug("library completion",
		"provider", g.name,
		"model", resp.Model,
		"stop_reason", resp.StopReason,
		"input_tokens", resp.InputTokens,
		"output_tokens", resp.OutputTokens,
	)
	return sb.String(), nil
}

func (g *LibraryGenerator) buildRequest(prompt string) *llmprovider.GenerateRequest {
	maxTokens := g.params.MaxTokens
	temperature := g.params.Temperature
	topP := g.params.TopP
	topK := g.params.TopK

	return &llmprovider.GenerateRequest{
		Model: g.params.Model,
		Messages: []llmprovider.Message{{
			Role: "user",
			Blocks: []*llmprovider.Block{{
				BlockType:   "text",
				TextContent: &prompt,
			}},
		}},
		Params: &llmprovider.RequestParams{
			MaxTokens:   &maxTokens,
			Temperature: &temperature,
			TopP:        &topP,
			TopK:        &topK,
		},
	}
}
