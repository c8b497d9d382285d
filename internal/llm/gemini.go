package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com"

// geminiClient - минимальная обертка над Gemini generateContent API.
type geminiClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewGeminiClient создает клиент для Gemini API.
func NewGeminiClient(apiKey string) Client {
	return &geminiClient{
		apiKey:  apiKey,
		baseURL: geminiBaseURL,
		client:  &http.Client{Timeout: httpClientTimeout},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	// response_mime_type для JSON-режима (best-effort)
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// GenerateText отправляет запрос generateContent. Отдельной системной роли
// в этой интеграции нет: системный и пользовательский промпты склеиваются
// в единый текстовый блок.
func (c *geminiClient) GenerateText(ctx context.Context, systemPrompt, userPrompt string, params Params) (string, UsageInfo, error) {
	combined := userPrompt
	if systemPrompt != "" {
		combined = systemPrompt + "\n\n" + userPrompt
	}

	genCfg := &geminiGenerationConfig{
		Temperature:     params.Temperature,
		MaxOutputTokens: params.MaxTokens,
	}
	if params.JSONMode {
		genCfg.ResponseMIMEType = "application/json"
	}
	payload := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: combined}}},
		},
		GenerationConfig: genCfg,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", UsageInfo{}, fmt.Errorf("failed to marshal gemini request: %w", err)
	}

	model := strings.TrimPrefix(params.Model, "models/")
	endpoint, err := url.Parse(fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, model))
	if err != nil {
		return "", UsageInfo{}, fmt.Errorf("invalid gemini endpoint: %w", err)
	}
	q := endpoint.Query()
	q.Set("key", c.apiKey)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return "", UsageInfo{}, fmt.Errorf("failed to build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		recordRequest(ProviderGemini, params.Model, "error", time.Since(start))
		return "", UsageInfo{}, fmt.Errorf("%w: gemini request failed: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		recordRequest(ProviderGemini, params.Model, "error", time.Since(start))
		return "", UsageInfo{}, fmt.Errorf("%w: failed to read gemini response: %v", ErrGenerationFailed, err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		recordRequest(ProviderGemini, params.Model, "error", time.Since(start))
		return "", UsageInfo{}, fmt.Errorf("%w: failed to decode gemini response (status %d): %v", ErrGenerationFailed, resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		recordRequest(ProviderGemini, params.Model, "error", time.Since(start))
		msg := resp.Status
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return "", UsageInfo{}, fmt.Errorf("%w: gemini API error: %s", ErrGenerationFailed, msg)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		recordRequest(ProviderGemini, params.Model, "empty", time.Since(start))
		return "", UsageInfo{}, fmt.Errorf("%w: gemini returned no candidates", ErrGenerationFailed)
	}

	var sb strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	text := sb.String()

	usage := UsageInfo{
		PromptTokens:     parsed.UsageMetadata.PromptTokenCount,
		CompletionTokens: parsed.UsageMetadata.CandidatesTokenCount,
		TotalTokens:      parsed.UsageMetadata.TotalTokenCount,
	}
	if usage.TotalTokens == 0 {
		usage = estimateUsage(params.Model, combined, text)
	}
	usage.EstimatedCostUSD = estimateCost(usage)

	recordRequest(ProviderGemini, params.Model, "success", time.Since(start))
	recordUsage(ProviderGemini, params.Model, usage)
	return text, usage, nil
}
