package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lingolog.app/backend/internal/language"
	"lingolog.app/backend/internal/records"
)

const defaultOpenAIEndpoint = "https://api.openai.com/v1"

// OpenAIProvider translates text through the chat completions endpoint with
// a natural-language instruction prompt. The model key from the request is
// passed through unchanged ("gpt-4o-mini", "gpt-4.1", ...).
type OpenAIProvider struct {
	endpointURL string
	apiKey      string
	client      *http.Client
}

func NewOpenAIProvider(endpoint, apiKey string, timeout time.Duration) *OpenAIProvider {
	base := strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if base == "" {
		base = defaultOpenAIEndpoint
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIProvider{
		endpointURL: base + "/chat/completions",
		apiKey:      strings.TrimSpace(apiKey),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (p *OpenAIProvider) Name() string {
	return "gpt"
}

func (p *OpenAIProvider) SupportedLanguages() []string {
	return PromptSupportedLanguages()
}

func (p *OpenAIProvider) Translate(ctx context.Context, req Request) (*Result, error) {
	if p == nil {
		return nil, fmt.Errorf("openai provider is nil")
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, records.NewValidationError("text", "is required")
	}

	target := language.DisplayName(req.TargetLanguage)
	if target == "" {
		return nil, records.NewValidationError("language", "is required")
	}

	model := strings.TrimSpace(req.Model)
	if model == "" {
		return nil, records.NewValidationError("model", "is required")
	}

	body, err := json.Marshal(chatCompletionRequest{
		Model: model,
		Messages: []chatMessage{
			{
				Role:    "user",
				Content: buildTranslationPrompt(text, target),
			},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal translation request: %w", err)
	}

	started := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpointURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build translation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &UpstreamError{Provider: p.Name(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Provider: p.Name(), Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errPayload chatErrorResponse
		if unmarshalErr := json.Unmarshal(respBody, &errPayload); unmarshalErr == nil {
			if msg := strings.TrimSpace(errPayload.Error.Message); msg != "" {
				return nil, &UpstreamError{Provider: p.Name(), Status: resp.StatusCode, Err: fmt.Errorf("%s", msg)}
			}
		}
		return nil, &UpstreamError{
			Provider: p.Name(),
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("%s", strings.TrimSpace(string(respBody))),
		}
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &UpstreamError{Provider: p.Name(), Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(parsed.Choices) == 0 {
		return nil, &UpstreamError{Provider: p.Name(), Err: fmt.Errorf("response missing choices")}
	}

	translated := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if translated == "" {
		return nil, &UpstreamError{Provider: p.Name(), Err: fmt.Errorf("response translation was empty")}
	}

	return &Result{
		Text:         translated,
		ProviderName: p.Name(),
		Model:        model,
		LatencyMs:    time.Since(started).Milliseconds(),
	}, nil
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func buildTranslationPrompt(text, targetLanguage string) string {
	return fmt.Sprintf("Translate the following message into %s. Reply with the translation only, no explanations.\n\n%s", targetLanguage, text)
}
