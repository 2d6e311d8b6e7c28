package translation

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lingolog.app/backend/internal/records"
)

func TestDeepLProvider_Translate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/translate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("unexpected content type %s", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.PostFormValue("auth_key"); got != "key-123" {
			t.Errorf("unexpected auth_key %q", got)
		}
		if got := r.PostFormValue("text"); got != "Hi!" {
			t.Errorf("unexpected text %q", got)
		}
		if got := r.PostFormValue("target_lang"); got != "FR" {
			t.Errorf("unexpected target_lang %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"translations":[{"detected_source_language":"EN","text":"Salut !"}]}`)
	}))
	defer server.Close()

	provider := NewDeepLProvider(server.URL, "key-123", 5*time.Second)

	result, err := provider.Translate(context.Background(), Request{
		Text:           "Hi!",
		TargetLanguage: "French",
		Model:          "deepl",
	})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if result.Text != "Salut !" {
		t.Fatalf("unexpected translation %q", result.Text)
	}
	if result.DetectedSourceLang != "en" {
		t.Fatalf("unexpected detected source %q", result.DetectedSourceLang)
	}
	if result.ProviderName != "deepl" {
		t.Fatalf("unexpected provider name %q", result.ProviderName)
	}
}

func TestDeepLProvider_RejectsUnsupportedLanguageWithoutCall(t *testing.T) {
	t.Parallel()

	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	provider := NewDeepLProvider(server.URL, "key-123", 5*time.Second)

	_, err := provider.Translate(context.Background(), Request{Text: "Hi!", TargetLanguage: "Klingon"})
	if !records.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if called {
		t.Fatalf("unsupported language reached the upstream API")
	}
}

func TestDeepLProvider_UpstreamStatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, "invalid auth key")
	}))
	defer server.Close()

	provider := NewDeepLProvider(server.URL, "bad-key", 5*time.Second)

	_, err := provider.Translate(context.Background(), Request{Text: "Hi!", TargetLanguage: "French"})
	if !IsUpstream(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	var upstream *UpstreamError
	if !errors.As(err, &upstream) || upstream.Status != http.StatusForbidden {
		t.Fatalf("unexpected upstream error %v", err)
	}
}

func TestDeepLProvider_EmptyTranslationIsUpstreamError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"translations":[]}`)
	}))
	defer server.Close()

	provider := NewDeepLProvider(server.URL, "key-123", 5*time.Second)

	_, err := provider.Translate(context.Background(), Request{Text: "Hi!", TargetLanguage: "French"})
	if !IsUpstream(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestOpenAIProvider_Translate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key-123" {
			t.Errorf("unexpected authorization header %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"model":"gpt-4o-mini"`) {
			t.Errorf("model key was not passed through: %s", body)
		}
		if !strings.Contains(string(body), "Translate the following message into French.") {
			t.Errorf("prompt missing target language: %s", body)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"choices":[{"message":{"content":"Bonjour"}}]}`)
	}))
	defer server.Close()

	provider := NewOpenAIProvider(server.URL, "key-123", 5*time.Second)

	result, err := provider.Translate(context.Background(), Request{
		Text:           "Hello",
		TargetLanguage: "French",
		Model:          "gpt-4o-mini",
	})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if result.Text != "Bonjour" || result.ProviderName != "gpt" || result.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestOpenAIProvider_ErrorPayloadMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"message":"Incorrect API key provided"}}`)
	}))
	defer server.Close()

	provider := NewOpenAIProvider(server.URL, "bad-key", 5*time.Second)

	_, err := provider.Translate(context.Background(), Request{
		Text:           "Hello",
		TargetLanguage: "French",
		Model:          "gpt-4o-mini",
	})
	if !IsUpstream(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Incorrect API key provided") {
		t.Fatalf("error payload message was dropped: %v", err)
	}
}

func TestGeminiProvider_Translate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-2.0-flash:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "key-123" {
			t.Errorf("unexpected key %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "Translate the following message into Spanish.") {
			t.Errorf("prompt missing target language: %s", body)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"Hola"}]}}]}`)
	}))
	defer server.Close()

	provider := NewGeminiProvider(server.URL, "key-123", 5*time.Second)

	result, err := provider.Translate(context.Background(), Request{
		Text:           "Hello",
		TargetLanguage: "Spanish",
		Model:          "gemini-2.0-flash",
	})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if result.Text != "Hola" || result.ProviderName != "gemini" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestGeminiProvider_ErrorPayloadMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":{"code":400,"message":"API key not valid"}}`)
	}))
	defer server.Close()

	provider := NewGeminiProvider(server.URL, "bad-key", 5*time.Second)

	_, err := provider.Translate(context.Background(), Request{
		Text:           "Hello",
		TargetLanguage: "Spanish",
		Model:          "gemini-2.0-flash",
	})
	if !IsUpstream(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if !strings.Contains(err.Error(), "API key not valid") {
		t.Fatalf("error payload message was dropped: %v", err)
	}
}

func TestLanguageSupportTables(t *testing.T) {
	t.Parallel()

	deepl := DeepLSupportedLanguages()
	if len(deepl) == 0 {
		t.Fatalf("deepl language table is empty")
	}
	for i := 1; i < len(deepl); i++ {
		if deepl[i] < deepl[i-1] {
			t.Fatalf("deepl languages out of order: %q before %q", deepl[i-1], deepl[i])
		}
	}

	if code, ok := deepLTargetCode("  french "); !ok || code != "FR" {
		t.Fatalf("french target code: got (%q, %v)", code, ok)
	}
	if code, ok := deepLTargetCode("Chinese (Simplified)"); !ok || code != "ZH" {
		t.Fatalf("chinese target code: got (%q, %v)", code, ok)
	}
	if _, ok := deepLTargetCode("Klingon"); ok {
		t.Fatalf("unsupported language resolved to a target code")
	}

	prompt := PromptSupportedLanguages()
	if len(prompt) < len(deepl) {
		t.Fatalf("prompt language table smaller than deepl table: %d < %d", len(prompt), len(deepl))
	}
}
