package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	openRouterBaseURL  = "https://openrouter.ai/api/v1"
	httpClientTimeout  = 120 * time.Second
	emptyChoicesErrFmt = "%w: provider returned no choices"
)

// openAICompatClient обслуживает оба OpenAI-совместимых пути: сам OpenAI и
// OpenRouter (тот же chat-completion протокол, другой BaseURL).
type openAICompatClient struct {
	client   *openai.Client
	provider Provider
}

// NewOpenAIClient создает клиент для OpenAI API.
func NewOpenAIClient(apiKey string) Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.HTTPClient = &http.Client{Timeout: httpClientTimeout}
	return &openAICompatClient{
		client:   openai.NewClientWithConfig(cfg),
		provider: ProviderOpenAI,
	}
}

// NewOpenRouterClient создает клиент для OpenRouter API.
func NewOpenRouterClient(apiKey string) Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = openRouterBaseURL
	cfg.HTTPClient = &http.Client{Timeout: httpClientTimeout}
	return &openAICompatClient{
		client:   openai.NewClientWithConfig(cfg),
		provider: ProviderOpenRouter,
	}
}

// GenerateText отправляет двухсообщенный запрос (system, user).
func (c *openAICompatClient) GenerateText(ctx context.Context, systemPrompt, userPrompt string, params Params) (string, UsageInfo, error) {
	req := openai.ChatCompletionRequest{
		Model: params.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: float32(params.Temperature),
		MaxTokens:   params.MaxTokens,
	}
	if params.JSONMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		recordRequest(c.provider, params.Model, "error", time.Since(start))
		return "", UsageInfo{}, fmt.Errorf("%w: %s request failed: %v", ErrGenerationFailed, c.provider, err)
	}
	if len(resp.Choices) == 0 {
		recordRequest(c.provider, params.Model, "empty", time.Since(start))
		return "", UsageInfo{}, fmt.Errorf(emptyChoicesErrFmt, ErrGenerationFailed)
	}

	usage := UsageInfo{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}
	text := resp.Choices[0].Message.Content
	if usage.TotalTokens == 0 {
		// Провайдер не вернул usage - оцениваем сами
		usage = estimateUsage(params.Model, systemPrompt+userPrompt, text)
	}
	usage.EstimatedCostUSD = estimateCost(usage)

	recordRequest(c.provider, params.Model, "success", time.Since(start))
	recordUsage(c.provider, params.Model, usage)
	return text, usage, nil
}
