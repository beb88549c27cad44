package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/bedrockruntime"
	"github.com/aws/aws-sdk-go/service/bedrockruntime/bedrockruntimeiface"

	learningSvc "smartlearn/internal/domain/services/learning"
)

const (
	bedrockAnthropicVersion = "bedrock-2023-05-31"
	jsonContentType         = "application/json"
)

// errEmptyCompletion is returned when the model replies with no text
var errEmptyCompletion = errors.New("model returned no text")

// Params are the sampling settings sent with every request
type Params struct {
	Model       string
	MaxTokens   int
	Temperature float64
	TopK        int
	TopP        float64
}

// bedrockRequest is the Anthropic messages body accepted by Bedrock
type bedrockRequest struct {
	AnthropicVersion string           `json:"anthropic_version"`
	MaxTokens        int              `json:"max_tokens"`
	Temperature      float64          `json:"temperature"`
	TopK             int              `json:"top_k"`
	TopP             float64          `json:"top_p"`
	Messages         []bedrockMessage `json:"messages"`
}

type bedrockMessage struct {
	Role    string           `json:"role"`
	Content []bedrockContent `json:"content"`
}

type bedrockContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type bedrockResponse struct {
	Content    []bedrockContent `json:"content"`
	StopReason string           `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// BedrockGenerator invokes an Anthropic model hosted on Amazon Bedrock
type BedrockGenerator struct {
	client bedrockruntimeiface.BedrockRuntimeAPI
	params Params
	logger *slog.Logger
}

func NewBedrockGenerator(client bedrockruntimeiface.BedrockRuntimeAPI, params Params, logger *slog.Logger) learningSvc.TextGenerator {
	return &BedrockGenerator{
		client: client,
		params: params,
		logger: logger,
	}
}

func (g *BedrockGenerator) Name() string {
	return "bedrock"
}

// Generate sends prompt as a single user turn and joins the text blocks of the reply
func (g *BedrockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(bedrockRequest{
		AnthropicVersion: bedrockAnthropicVersion,
		MaxTokens:        g.params.MaxTokens,
		Temperature:      g.params.Temperature,
		TopK:             g.params.TopK,
		TopP:             g.params.TopP,
		Messages: []bedrockMessage{{
			Role:    "user",
			Content: []bedrockContent{{Type: "text", Text: prompt}},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal bedrock request: %w", err)
	}

	out, err := g.client.InvokeModelWithContext(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(g.params.Model),
		Body:        body,
		ContentType: aws.String(jsonContentType),
		Accept:      aws.String(jsonContentType),
	})
	if err != nil {
		return "", fmt.Errorf("invoke %s: %w", g.params.Model, err)
	}

	var resp bedrockResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("decode bedrock response: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", errEmptyCompletion
	}

	g.logger.Debug("bedrock completion",
		"model", g.params.Model,
		"stop_reason", resp.StopReason,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
	)
	return sb.String(), nil
}
