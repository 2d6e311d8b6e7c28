package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lingolog.app/backend/internal/langdetect"
	"lingolog.app/backend/internal/records"
)

const defaultDeepLEndpoint = "https://api-free.deepl.com"

// DeepLProvider translates text through the DeepL v2 REST API. DeepL takes
// short language codes, so display names are mapped before the call.
type DeepLProvider struct {
	endpointURL string
	authKey     string
	client      *http.Client
}

func NewDeepLProvider(endpoint, authKey string, timeout time.Duration) *DeepLProvider {
	base := strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if base == "" {
		base = defaultDeepLEndpoint
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &DeepLProvider{
		endpointURL: base + "/v2/translate",
		authKey:     strings.TrimSpace(authKey),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (p *DeepLProvider) Name() string {
	return "deepl"
}

func (p *DeepLProvider) SupportedLanguages() []string {
	return DeepLSupportedLanguages()
}

func (p *DeepLProvider) Translate(ctx context.Context, req Request) (*Result, error) {
	if p == nil {
		return nil, fmt.Errorf("deepl provider is nil")
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, records.NewValidationError("text", "is required")
	}

	targetCode, ok := deepLTargetCode(req.TargetLanguage)
	if !ok {
		return nil, records.NewValidationError("language", fmt.Sprintf("%q is not supported by deepl", strings.TrimSpace(req.TargetLanguage)))
	}

	form := url.Values{}
	form.Set("auth_key", p.authKey)
	form.Set("text", text)
	form.Set("target_lang", targetCode)
	if sourceCode := langdetect.DetectISO6391(text); sourceCode != "" {
		form.Set("source_lang", strings.ToUpper(sourceCode))
	}

	started := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpointURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build deepl request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

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
		return nil, &UpstreamError{
			Provider: p.Name(),
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("%s", strings.TrimSpace(string(respBody))),
		}
	}

	var parsed deepLResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &UpstreamError{Provider: p.Name(), Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(parsed.Translations) == 0 {
		return nil, &UpstreamError{Provider: p.Name(), Err: fmt.Errorf("response missing translations")}
	}

	translated := strings.TrimSpace(parsed.Translations[0].Text)
	if translated == "" {
		return nil, &UpstreamError{Provider: p.Name(), Err: fmt.Errorf("response translation was empty")}
	}

	return &Result{
		Text:               translated,
		DetectedSourceLang: strings.ToLower(strings.TrimSpace(parsed.Translations[0].DetectedSourceLanguage)),
		ProviderName:       p.Name(),
		Model:              p.Name(),
		LatencyMs:          time.Since(started).Milliseconds(),
	}, nil
}

type deepLResponse struct {
	Translations []struct {
		DetectedSourceLanguage string `json:"detected_source_language"`
		Text                   string `json:"text"`
	} `json:"translations"`
}
