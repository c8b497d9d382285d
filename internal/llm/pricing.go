package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

const (
	openRouterModelsURL = "https://openrouter.ai/api/v1/models"
	pricingCacheTTL     = 24 * time.Hour
)

// ModelInfo - информация о модели для UI выбора (листинг + цены).
// На корректность генерации не влияет.
type ModelInfo struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Provider        string  `json:"provider"`
	PromptPrice     float64 `json:"promptPrice,omitempty"`     // USD за 1М входных токенов
	CompletionPrice float64 `json:"completionPrice,omitempty"` // USD за 1М выходных токенов
}

// PricingService - сквозной read-through кэш листинга моделей.
// Ключ кэша учитывает только наличие/отсутствие пользовательского API-ключа;
// инвалидации кроме истечения TTL (24ч) нет.
type PricingService struct {
	cache  *expirable.LRU[string, []ModelInfo]
	client *http.Client
	logger *zap.Logger
}

// NewPricingService создает сервис листинга моделей.
func NewPricingService(logger *zap.Logger) *PricingService {
	return &PricingService{
		cache:  expirable.NewLRU[string, []ModelInfo](8, nil, pricingCacheTTL),
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger.Named("PricingService"),
	}
}

// ListModels возвращает объединенный список моделей OpenRouter и Gemini.
// geminiKey может быть пустым: тогда Gemini-часть листинга пропускается.
func (s *PricingService) ListModels(ctx context.Context, geminiKey string) ([]ModelInfo, error) {
	cacheKey := "models:anon"
	if geminiKey != "" {
		cacheKey = "models:keyed"
	}
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached, nil
	}

	models, err := s.fetchOpenRouterModels(ctx)
	if err != nil {
		// Листинг некритичен для генерации, но ошибку отдаем наверх как есть
		return nil, err
	}
	if geminiKey != "" {
		geminiModels, err := s.fetchGeminiModels(ctx, geminiKey)
		if err != nil {
			s.logger.Warn("Failed to fetch Gemini model list, serving OpenRouter models only", zap.Error(err))
		} else {
			models = append(models, geminiModels...)
		}
	}

	s.cache.Add(cacheKey, models)
	return models, nil
}

type openRouterModelsResponse struct {
	Data []struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Pricing struct {
			Prompt     string `json:"prompt"`
			Completion string `json:"completion"`
		} `json:"pricing"`
	} `json:"data"`
}

func (s *PricingService) fetchOpenRouterModels(ctx context.Context) ([]ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, openRouterModelsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build openrouter models request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openrouter models request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openrouter models request failed: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read openrouter models response: %w", err)
	}
	var parsed openRouterModelsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode openrouter models response: %w", err)
	}

	result := make([]ModelInfo, 0, len(parsed.Data))
	for _, m := range parsed.Data {
		info := ModelInfo{ID: m.ID, Name: m.Name, Provider: string(ProviderOpenRouter)}
		// Цены приходят строками в USD за токен; приводим к USD за 1М токенов
		if p, err := parsePerTokenPrice(m.Pricing.Prompt); err == nil {
			info.PromptPrice = p * 1_000_000
		}
		if p, err := parsePerTokenPrice(m.Pricing.Completion); err == nil {
			info.CompletionPrice = p * 1_000_000
		}
		result = append(result, info)
	}
	return result, nil
}

type geminiModelsResponse struct {
	Models []struct {
		Name        string `json:"name"` // вида "models/gemini-1.5-pro"
		DisplayName string `json:"displayName"`
	} `json:"models"`
}

func (s *PricingService) fetchGeminiModels(ctx context.Context, apiKey string) ([]ModelInfo, error) {
	endpoint, err := url.Parse(geminiBaseURL + "/v1beta/models")
	if err != nil {
		return nil, err
	}
	q := endpoint.Query()
	q.Set("key", apiKey)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build gemini models request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini models request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini models request failed: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gemini models response: %w", err)
	}
	var parsed geminiModelsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode gemini models response: %w", err)
	}

	result := make([]ModelInfo, 0, len(parsed.Models))
	for _, m := range parsed.Models {
		id := m.Name
		result = append(result, ModelInfo{ID: id, Name: m.DisplayName, Provider: string(ProviderGemini)})
	}
	return result, nil
}

func parsePerTokenPrice(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
