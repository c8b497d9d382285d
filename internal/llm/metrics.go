package llm

import (
	"time"

	"github.com/pkoukk/tiktoken-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ориентировочные цены за 1М токенов в USD. Точные цены зависят от модели
// и берутся из pricing lookup только для UI; здесь достаточно грубой оценки
// для метрики стоимости.
const (
	pricePerMillionInputTokensUSD  = 0.15
	pricePerMillionOutputTokensUSD = 0.60
)

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "writer_server_ai_requests_total",
			Help: "Total number of requests to the AI providers.",
		},
		[]string{"provider", "model", "status"},
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "writer_server_ai_request_duration_seconds",
			Help:    "Histogram of AI provider request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "model"},
	)
	aiPromptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "writer_server_ai_prompt_tokens",
			Help:    "Histogram of prompt token counts.",
			Buckets: prometheus.LinearBuckets(250, 250, 20), // 250, 500, ..., 5000
		},
		[]string{"provider", "model"},
	)
	aiCompletionTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "writer_server_ai_completion_tokens",
			Help:    "Histogram of completion token counts.",
			Buckets: prometheus.LinearBuckets(100, 100, 20), // 100, 200, ..., 2000
		},
		[]string{"provider", "model"},
	)
	aiEstimatedCostUSD = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "writer_server_ai_estimated_cost_usd_total",
			Help: "Estimated total cost of AI requests in USD.",
		},
		[]string{"provider", "model"},
	)
)

func recordRequest(provider Provider, model, status string, duration time.Duration) {
	aiRequestsTotal.WithLabelValues(string(provider), model, status).Inc()
	aiRequestDuration.WithLabelValues(string(provider), model).Observe(duration.Seconds())
}

func recordUsage(provider Provider, model string, usage UsageInfo) {
	aiPromptTokens.WithLabelValues(string(provider), model).Observe(float64(usage.PromptTokens))
	aiCompletionTokens.WithLabelValues(string(provider), model).Observe(float64(usage.CompletionTokens))
	aiEstimatedCostUSD.WithLabelValues(string(provider), model).Add(usage.EstimatedCostUSD)
}

// estimateUsage считает токены через tiktoken, когда провайдер не вернул usage.
// Для не-OpenAI моделей кодировка cl100k_base дает приемлемое приближение.
func estimateUsage(model, prompt, completion string) UsageInfo {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			// Последний fallback: очень грубая оценка по длине
			pt := len(prompt) / 4
			ct := len(completion) / 4
			return UsageInfo{PromptTokens: pt, CompletionTokens: ct, TotalTokens: pt + ct}
		}
	}
	pt := len(enc.Encode(prompt, nil, nil))
	ct := len(enc.Encode(completion, nil, nil))
	return UsageInfo{PromptTokens: pt, CompletionTokens: ct, TotalTokens: pt + ct}
}

func estimateCost(usage UsageInfo) float64 {
	inputCost := float64(usage.PromptTokens) / 1_000_000.0 * pricePerMillionInputTokensUSD
	outputCost := float64(usage.CompletionTokens) / 1_000_000.0 * pricePerMillionOutputTokensUSD
	return inputCost + outputCost
}
