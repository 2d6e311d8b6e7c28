package records

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"lingolog.app/backend/internal/db"
)

const (
	// DefaultHistoryLimit is the fixed history window shown to clients.
	DefaultHistoryLimit = 5

	ScoreMin = 0.0
	ScoreMax = 5.0
)

// Kind selects one of the two independent record tables.
type Kind string

const (
	KindTranslation Kind = "translation"
	KindComparison  Kind = "comparison"
)

// NewRecord carries the caller-supplied fields of a record to append.
type NewRecord struct {
	OriginalMessage   string   `json:"original_message"`
	TranslatedMessage string   `json:"translated_message"`
	Language          string   `json:"language"`
	Model             string   `json:"model"`
	Score             *float64 `json:"score,omitempty"`
}

// Record is one stored record. RecordUUID and CreatedAt are store-assigned
// and immutable; records are never updated or deleted.
type Record struct {
	RecordUUID        string    `json:"record_uuid"`
	OriginalMessage   string    `json:"original_message"`
	TranslatedMessage string    `json:"translated_message"`
	Language          string    `json:"language"`
	Model             string    `json:"model"`
	Score             *float64  `json:"score,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type recordStore interface {
	InsertTranslationRecord(ctx context.Context, params db.InsertRecordParams) (db.RecordRow, error)
	ListRecentTranslationRecords(ctx context.Context, limit int) ([]db.RecordRow, error)
	InsertComparisonRecord(ctx context.Context, params db.InsertRecordParams) (db.RecordRow, error)
	ListRecentComparisonRecords(ctx context.Context, limit int) ([]db.RecordRow, error)
}

// Store is the append-only record store service over both record kinds.
type Store struct {
	store recordStore
}

func NewStore(pool *db.Pool) *Store {
	return &Store{store: pool}
}

// NewStoreWithBackend builds a store over a custom backend. Used by tests.
func NewStoreWithBackend(backend recordStore) *Store {
	return &Store{store: backend}
}

func (s *Store) AppendTranslation(ctx context.Context, record NewRecord) (*Record, error) {
	return s.append(ctx, KindTranslation, record)
}

func (s *Store) AppendComparison(ctx context.Context, record NewRecord) (*Record, error) {
	return s.append(ctx, KindComparison, record)
}

func (s *Store) ListRecentTranslations(ctx context.Context, n int) ([]Record, error) {
	return s.listRecent(ctx, KindTranslation, n)
}

func (s *Store) ListRecentComparisons(ctx context.Context, n int) ([]Record, error) {
	return s.listRecent(ctx, KindComparison, n)
}

func (s *Store) append(ctx context.Context, kind Kind, record NewRecord) (*Record, error) {
	if err := ValidateNewRecord(record); err != nil {
		return nil, err
	}

	params := db.InsertRecordParams{
		RecordUUID:        uuid.NewString(),
		OriginalMessage:   strings.TrimSpace(record.OriginalMessage),
		TranslatedMessage: strings.TrimSpace(record.TranslatedMessage),
		Language:          strings.TrimSpace(record.Language),
		Model:             strings.TrimSpace(record.Model),
		Score:             record.Score,
	}

	var (
		row db.RecordRow
		err error
	)
	switch kind {
	case KindComparison:
		row, err = s.store.InsertComparisonRecord(ctx, params)
	default:
		row, err = s.store.InsertTranslationRecord(ctx, params)
	}
	if err != nil {
		return nil, &StoreError{Op: "append", Err: err}
	}

	stored := fromRow(row)
	return &stored, nil
}

func (s *Store) listRecent(ctx context.Context, kind Kind, n int) ([]Record, error) {
	if n < 1 {
		n = 1
	}

	var (
		rows []db.RecordRow
		err  error
	)
	switch kind {
	case KindComparison:
		rows, err = s.store.ListRecentComparisonRecords(ctx, n)
	default:
		rows, err = s.store.ListRecentTranslationRecords(ctx, n)
	}
	if err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}

	items := make([]Record, 0, len(rows))
	for _, row := range rows {
		items = append(items, fromRow(row))
	}
	return items, nil
}

// ValidateNewRecord rejects records with empty required fields or an
// out-of-range score before they reach the store.
func ValidateNewRecord(record NewRecord) error {
	if strings.TrimSpace(record.OriginalMessage) == "" {
		return NewValidationError("original_message", "is required")
	}
	if strings.TrimSpace(record.TranslatedMessage) == "" {
		return NewValidationError("translated_message", "is required")
	}
	if strings.TrimSpace(record.Language) == "" {
		return NewValidationError("language", "is required")
	}
	if strings.TrimSpace(record.Model) == "" {
		return NewValidationError("model", "is required")
	}
	if record.Score != nil && (*record.Score < ScoreMin || *record.Score > ScoreMax) {
		return NewValidationError("score", "must be between 0 and 5")
	}
	return nil
}

// ParseKind resolves a record kind name. Empty input means translation.
func ParseKind(raw string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(KindTranslation):
		return KindTranslation, true
	case string(KindComparison):
		return KindComparison, true
	default:
		return "", false
	}
}

func fromRow(row db.RecordRow) Record {
	return Record{
		RecordUUID:        row.RecordUUID,
		OriginalMessage:   row.OriginalMessage,
		TranslatedMessage: row.TranslatedMessage,
		Language:          row.Language,
		Model:             row.Model,
		Score:             row.Score,
		CreatedAt:         row.CreatedAt,
	}
}
