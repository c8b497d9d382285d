package llm

import (
	"context"
	"errors"
	"strings"
)

// ErrGenerationFailed - ошибка при генерации текста AI.
var ErrGenerationFailed = errors.New("AI text generation failed")

// Provider - закрытое перечисление поддерживаемых LLM-бэкендов.
// Разрешается один раз в начале диспетчеризации по строке модели.
type Provider string

const (
	ProviderOpenAI     Provider = "openai"
	ProviderOpenRouter Provider = "openrouter"
	ProviderGemini     Provider = "gemini"
)

// Префиксы моделей Gemini. Проверяются до правила "/" (OpenRouter),
// порядок проверок значим.
var geminiModelPrefixes = []string{"gemini-", "models/gemini-", "learnlm-"}

// ResolveProvider определяет бэкенд по идентификатору модели:
//  1. известный префикс Gemini -> Gemini;
//  2. содержит "/" (именование vendor/model) -> OpenRouter;
//  3. иначе плоский OpenAI-style id -> OpenAI.
func ResolveProvider(model string) Provider {
	for _, prefix := range geminiModelPrefixes {
		if strings.HasPrefix(model, prefix) {
			return ProviderGemini
		}
	}
	if strings.Contains(model, "/") {
		return ProviderOpenRouter
	}
	return ProviderOpenAI
}

// Params - параметры одного вызова генерации.
type Params struct {
	Model       string
	Temperature float64
	MaxTokens   int
	// JSONMode запрашивает нативный JSON-режим провайдера, если тот поддерживается.
	// Это best-effort: корректность структурированного ответа гарантирует
	// цикл валидации в service, а не провайдер.
	JSONMode bool
}

// UsageInfo содержит информацию об использовании токенов и стоимости.
type UsageInfo struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	EstimatedCostUSD float64
}

// Client - единый контракт для всех вариантов провайдеров.
type Client interface {
	// GenerateText генерирует текст на основе системного промпта, ввода
	// пользователя и параметров.
	GenerateText(ctx context.Context, systemPrompt, userPrompt string, params Params) (string, UsageInfo, error)
}

// Factory создает клиент провайдера для заданного API-ключа пользователя.
// Ключи пользовательские, поэтому клиент конструируется на запрос.
type Factory func(apiKey string) Client
