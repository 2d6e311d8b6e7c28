package translation

import "context"

// Provider translates free-form text into a target language.
type Provider interface {
	Translate(ctx context.Context, req Request) (*Result, error)
	Name() string
	SupportedLanguages() []string
}

// Request describes one translation request.
type Request struct {
	Text           string
	TargetLanguage string // display name, for example "French"
	Model          string // provider/model key, for example "deepl" or "gpt-4o-mini"
}

// Result contains translated text and provider metadata.
type Result struct {
	Text               string
	DetectedSourceLang string // ISO 639-1 when the provider reports it
	ProviderName       string
	Model              string
	LatencyMs          int64
}
