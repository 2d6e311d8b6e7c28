package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"lingolog.app/backend/internal/language"
	"lingolog.app/backend/internal/records"
)

type recordAppender interface {
	AppendTranslation(ctx context.Context, record records.NewRecord) (*records.Record, error)
}

// Gateway validates a translation request, dispatches it to the matching
// provider adapter and persists the result as a translation record.
type Gateway struct {
	registry *Registry
	store    recordAppender
	logger   zerolog.Logger
}

func NewGateway(registry *Registry, store recordAppender, logger zerolog.Logger) *Gateway {
	return &Gateway{
		registry: registry,
		store:    store,
		logger:   logger,
	}
}

// Outcome is the result of one gateway invocation. When Saved is false and
// TranslatedText is set, the translation succeeded but the record write
// failed; the accompanying error wraps ErrRecordNotSaved.
type Outcome struct {
	TranslatedText string          `json:"translated_text"`
	Provider       string          `json:"provider"`
	Model          string          `json:"model"`
	Saved          bool            `json:"saved"`
	Record         *records.Record `json:"record,omitempty"`
}

// Translate runs one request end to end: validate, call the provider, save
// the record. Every failure is terminal; nothing is retried.
func (g *Gateway) Translate(ctx context.Context, text, targetLanguage, model string) (*Outcome, error) {
	if g == nil || g.registry == nil {
		return nil, fmt.Errorf("translation gateway is not initialized")
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, records.NewValidationError("text", "is required")
	}

	provider, err := g.registry.ProviderForModel(model)
	if err != nil {
		return nil, err
	}

	target := language.DisplayName(targetLanguage)
	if target == "" {
		return nil, records.NewValidationError("language", "is required")
	}
	if !supportsLanguage(provider, target) {
		return nil, records.NewValidationError("language", fmt.Sprintf("%q is not supported by %s", target, provider.Name()))
	}

	modelKey := strings.TrimSpace(model)
	result, err := provider.Translate(ctx, Request{
		Text:           trimmed,
		TargetLanguage: target,
		Model:          modelKey,
	})
	if err != nil {
		g.logger.Error().
			Err(err).
			Str("provider", provider.Name()).
			Str("model", modelKey).
			Str("language", target).
			Msg("translation failed")
		return nil, err
	}

	outcome := &Outcome{
		TranslatedText: result.Text,
		Provider:       result.ProviderName,
		Model:          modelKey,
	}

	if g.store == nil {
		return outcome, nil
	}

	record, err := g.store.AppendTranslation(ctx, records.NewRecord{
		OriginalMessage:   trimmed,
		TranslatedMessage: result.Text,
		Language:          target,
		Model:             modelKey,
	})
	if err != nil {
		g.logger.Error().
			Err(err).
			Str("provider", provider.Name()).
			Str("model", modelKey).
			Msg("translation record save failed")
		return outcome, fmt.Errorf("%w: %w", ErrRecordNotSaved, err)
	}

	outcome.Saved = true
	outcome.Record = record

	g.logger.Info().
		Str("provider", provider.Name()).
		Str("model", modelKey).
		Str("language", target).
		Str("record_uuid", record.RecordUUID).
		Int64("latency_ms", result.LatencyMs).
		Msg("translation stored")

	return outcome, nil
}
