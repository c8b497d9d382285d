package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"writer-server/internal/models"
)

// Keys - расшифрованные API-ключи пользователя по провайдерам.
// Пустая строка означает, что ключ не настроен.
type Keys struct {
	OpenAI     string
	Gemini     string
	OpenRouter string
}

// Dispatcher выбирает бэкенд по строке модели и выполняет запрос.
// Фабрики клиентов подменяются в тестах.
type Dispatcher struct {
	factories map[Provider]Factory
	logger    *zap.Logger
}

// NewDispatcher создает диспетчер с боевыми клиентами провайдеров.
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		factories: map[Provider]Factory{
			ProviderOpenAI:     NewOpenAIClient,
			ProviderOpenRouter: NewOpenRouterClient,
			ProviderGemini:     NewGeminiClient,
		},
		logger: logger.Named("LLMDispatcher"),
	}
}

// RegisterFactory заменяет фабрику клиента для провайдера.
func (d *Dispatcher) RegisterFactory(provider Provider, factory Factory) {
	d.factories[provider] = factory
}

// Generate разрешает провайдера, проверяет наличие ключа и выполняет запрос.
// Отсутствие ключа - конфигурационная ошибка пользователя, не ретраится.
func (d *Dispatcher) Generate(ctx context.Context, keys Keys, systemPrompt, userPrompt string, params Params) (string, UsageInfo, error) {
	provider := ResolveProvider(params.Model)

	var apiKey string
	switch provider {
	case ProviderGemini:
		apiKey = keys.Gemini
	case ProviderOpenRouter:
		apiKey = keys.OpenRouter
	default:
		apiKey = keys.OpenAI
	}
	if apiKey == "" {
		return "", UsageInfo{}, fmt.Errorf("%s: %w", provider, models.ErrProviderKeyMissing)
	}

	factory, ok := d.factories[provider]
	if !ok {
		return "", UsageInfo{}, fmt.Errorf("no client factory registered for provider %s", provider)
	}

	d.logger.Debug("Dispatching generation request",
		zap.String("provider", string(provider)),
		zap.String("model", params.Model),
		zap.Bool("jsonMode", params.JSONMode),
	)

	return factory(apiKey).GenerateText(ctx, systemPrompt, userPrompt, params)
}
