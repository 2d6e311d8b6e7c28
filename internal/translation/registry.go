package translation

import (
	"fmt"
	"sort"
	"strings"

	"lingolog.app/backend/internal/config"
	"lingolog.app/backend/internal/records"
)

// Family identifies one provider adapter. A model key resolves to exactly
// one family: "deepl" exactly, any "gpt*" key, any "gemini*" key.
type Family string

const (
	FamilyDeepL  Family = "deepl"
	FamilyGPT    Family = "gpt"
	FamilyGemini Family = "gemini"
)

// FamilyForModel resolves the provider family for a model key.
func FamilyForModel(model string) (Family, bool) {
	key := strings.ToLower(strings.TrimSpace(model))
	switch {
	case key == string(FamilyDeepL):
		return FamilyDeepL, true
	case strings.HasPrefix(key, string(FamilyGemini)):
		return FamilyGemini, true
	case strings.HasPrefix(key, string(FamilyGPT)):
		return FamilyGPT, true
	default:
		return "", false
	}
}

// Registry holds one provider adapter per family.
type Registry struct {
	providers map[Family]Provider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[Family]Provider)}
}

// NewRegistryFromConfig builds the three provider adapters from configuration.
func NewRegistryFromConfig(cfg *config.Config) *Registry {
	registry := NewRegistry()
	_ = registry.Register(FamilyDeepL, NewDeepLProvider(cfg.DeepLEndpoint, cfg.DeepLAPIKey, cfg.ProviderTimeout))
	_ = registry.Register(FamilyGPT, NewOpenAIProvider(cfg.OpenAIEndpoint, cfg.OpenAIAPIKey, cfg.ProviderTimeout))
	_ = registry.Register(FamilyGemini, NewGeminiProvider(cfg.GeminiEndpoint, cfg.GeminiAPIKey, cfg.ProviderTimeout))
	return registry
}

// Register adds one provider for a family.
func (r *Registry) Register(family Family, provider Provider) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}
	if provider == nil {
		return fmt.Errorf("provider is nil")
	}
	switch family {
	case FamilyDeepL, FamilyGPT, FamilyGemini:
	default:
		return fmt.Errorf("unknown provider family %q", family)
	}
	r.providers[family] = provider
	return nil
}

// ProviderForModel resolves the provider adapter for a model key. An
// unrecognized key is a validation failure, reported before any network call.
func (r *Registry) ProviderForModel(model string) (Provider, error) {
	if r == nil || len(r.providers) == 0 {
		return nil, fmt.Errorf("no translation providers are registered")
	}

	family, ok := FamilyForModel(model)
	if !ok {
		return nil, records.NewValidationError("model", fmt.Sprintf("%q is not a recognized provider model", strings.TrimSpace(model)))
	}
	provider, exists := r.providers[family]
	if !exists {
		return nil, records.NewValidationError("model", fmt.Sprintf("provider %s is not configured", family))
	}
	return provider, nil
}

// ProviderLanguages pairs a provider name with its supported language list.
type ProviderLanguages struct {
	Provider  string   `json:"provider"`
	Languages []string `json:"languages"`
}

// LanguageOptions returns the static support table, one entry per registered
// provider, sorted by provider name.
func (r *Registry) LanguageOptions() []ProviderLanguages {
	if r == nil {
		return nil
	}
	options := make([]ProviderLanguages, 0, len(r.providers))
	for _, provider := range r.providers {
		options = append(options, ProviderLanguages{
			Provider:  provider.Name(),
			Languages: provider.SupportedLanguages(),
		})
	}
	sort.Slice(options, func(i, j int) bool {
		return options[i].Provider < options[j].Provider
	})
	return options
}
