package translation

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

	"lingolog.app/backend/internal/language"
	"lingolog.app/backend/internal/records"
)

const defaultGeminiEndpoint = "https://generativelanguage.googleapis.com"

// GeminiProvider translates text through the generateContent REST API with
// a natural-language instruction prompt. The model key selects the Gemini
// model handle ("gemini-2.0-flash", ...).
type GeminiProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewGeminiProvider(endpoint, apiKey string, timeout time.Duration) *GeminiProvider {
	base := strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if base == "" {
		base = defaultGeminiEndpoint
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GeminiProvider{
		baseURL: base,
		apiKey:  strings.TrimSpace(apiKey),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (p *GeminiProvider) Name() string {
	return "gemini"
}

func (p *GeminiProvider) SupportedLanguages() []string {
	return PromptSupportedLanguages()
}

func (p *GeminiProvider) Translate(ctx context.Context, req Request) (*Result, error) {
	if p == nil {
		return nil, fmt.Errorf("gemini provider is nil")
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

	body, err := json.Marshal(geminiGenerateRequest{
		Contents: []geminiContent{
			{
				Parts: []geminiPart{
					{Text: buildTranslationPrompt(text, target)},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal translation request: %w", err)
	}

	endpoint := fmt.Sprintf(
		"%s/v1beta/models/%s:generateContent?key=%s",
		p.baseURL,
		url.PathEscape(model),
		url.QueryEscape(p.apiKey),
	)

	started := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build translation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

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
		var errPayload geminiErrorResponse
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

	var parsed geminiGenerateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &UpstreamError{Provider: p.Name(), Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, &UpstreamError{Provider: p.Name(), Err: fmt.Errorf("response missing candidates")}
	}

	translated := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
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

type geminiGenerateRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
