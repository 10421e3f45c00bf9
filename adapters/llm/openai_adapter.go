package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/internal/config"
	"github.com/khoahotran/credably/pkg/logger"
)

type openAIAdapter struct {
	client *openai.Client
	model  string
	log    logger.Logger
}

func NewOpenAIAdapter(cfg config.Config, log logger.Logger) (service.LLMService, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("openai api key is not configured")
	}

	clientCfg := openai.DefaultConfig(cfg.OpenAI.APIKey)
	if cfg.OpenAI.BaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAI.BaseURL
	}

	log.Info("OpenAI Adapter initialized", zap.String("model", cfg.OpenAI.Model))
	return &openAIAdapter{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.OpenAI.Model,
		log:    log,
	}, nil
}

// CompleteJSON asks for a JSON object response and returns the raw object text.
func (a *openAIAdapter) CompleteJSON(ctx context.Context, system, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
		Temperature:    0.2,
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no chat choices")
	}

	content := stripCodeFence(resp.Choices[0].Message.Content)
	if !gjson.Valid(content) {
		a.log.Warn("OpenAI returned non-JSON content", zap.Int("length", len(content)))
		return "", fmt.Errorf("openai returned malformed JSON")
	}

	a.log.Debug("OpenAI completion", zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens))
	return content, nil
}

// stripCodeFence removes a ```json fence some compatible backends still emit.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
