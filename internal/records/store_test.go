package records

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"lingolog.app/backend/internal/db"
)

type stubBackend struct {
	translations []db.RecordRow
	comparisons  []db.RecordRow
	insertErr    error
	listErr      error
	insertCalls  int
	listLimits   []int
	nextID       int64
	base         time.Time
}

func newStubBackend() *stubBackend {
	return &stubBackend{base: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (s *stubBackend) insert(rows *[]db.RecordRow, params db.InsertRecordParams) (db.RecordRow, error) {
	s.insertCalls++
	if s.insertErr != nil {
		return db.RecordRow{}, s.insertErr
	}
	s.nextID++
	row := db.RecordRow{
		RecordID:          s.nextID,
		RecordUUID:        params.RecordUUID,
		OriginalMessage:   params.OriginalMessage,
		TranslatedMessage: params.TranslatedMessage,
		Language:          params.Language,
		Model:             params.Model,
		Score:             params.Score,
		CreatedAt:         s.base.Add(time.Duration(s.nextID) * time.Second),
	}
	*rows = append([]db.RecordRow{row}, *rows...)
	return row, nil
}

func (s *stubBackend) list(rows []db.RecordRow, limit int) ([]db.RecordRow, error) {
	s.listLimits = append(s.listLimits, limit)
	if s.listErr != nil {
		return nil, s.listErr
	}
	if limit > len(rows) {
		limit = len(rows)
	}
	return rows[:limit], nil
}

func (s *stubBackend) InsertTranslationRecord(_ context.Context, params db.InsertRecordParams) (db.RecordRow, error) {
	return s.insert(&s.translations, params)
}

func (s *stubBackend) ListRecentTranslationRecords(_ context.Context, limit int) ([]db.RecordRow, error) {
	return s.list(s.translations, limit)
}

func (s *stubBackend) InsertComparisonRecord(_ context.Context, params db.InsertRecordParams) (db.RecordRow, error) {
	return s.insert(&s.comparisons, params)
}

func (s *stubBackend) ListRecentComparisonRecords(_ context.Context, limit int) ([]db.RecordRow, error) {
	return s.list(s.comparisons, limit)
}

func validNewRecord() NewRecord {
	score := 4.5
	return NewRecord{
		OriginalMessage:   "Hello",
		TranslatedMessage: "Bonjour",
		Language:          "French",
		Model:             "deepl",
		Score:             &score,
	}
}

func TestAppendTranslation_RejectsEmptyFieldsBeforeStore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		field  string
		mutate func(*NewRecord)
	}{
		{"original_message", func(r *NewRecord) { r.OriginalMessage = " " }},
		{"translated_message", func(r *NewRecord) { r.TranslatedMessage = "" }},
		{"language", func(r *NewRecord) { r.Language = "" }},
		{"model", func(r *NewRecord) { r.Model = "\t" }},
	}

	for _, tc := range cases {
		backend := newStubBackend()
		store := NewStoreWithBackend(backend)

		record := validNewRecord()
		tc.mutate(&record)

		_, err := store.AppendTranslation(context.Background(), record)
		if !IsValidation(err) {
			t.Fatalf("field %s: expected validation error, got %v", tc.field, err)
		}
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != tc.field {
			t.Fatalf("field %s: unexpected validation error %v", tc.field, err)
		}
		if backend.insertCalls != 0 {
			t.Fatalf("field %s: insert reached the store", tc.field)
		}
	}
}

func TestAppendTranslation_RejectsOutOfRangeScore(t *testing.T) {
	t.Parallel()

	backend := newStubBackend()
	store := NewStoreWithBackend(backend)

	for _, score := range []float64{-0.1, 5.5} {
		record := validNewRecord()
		record.Score = &score

		_, err := store.AppendTranslation(context.Background(), record)
		if !IsValidation(err) {
			t.Fatalf("score %v: expected validation error, got %v", score, err)
		}
	}
	if backend.insertCalls != 0 {
		t.Fatalf("insert reached the store")
	}
}

func TestAppendTranslation_AssignsUUIDAndTrims(t *testing.T) {
	t.Parallel()

	backend := newStubBackend()
	store := NewStoreWithBackend(backend)

	record := validNewRecord()
	record.OriginalMessage = "  Hello  "

	stored, err := store.AppendTranslation(context.Background(), record)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if stored.RecordUUID == "" {
		t.Fatalf("record uuid was not assigned")
	}
	if stored.OriginalMessage != "Hello" {
		t.Fatalf("original message was not trimmed: %q", stored.OriginalMessage)
	}
	if stored.CreatedAt.IsZero() {
		t.Fatalf("created_at was not assigned")
	}
}

func TestAppendThenListRecent_ReturnsNewRecordFirst(t *testing.T) {
	t.Parallel()

	backend := newStubBackend()
	store := NewStoreWithBackend(backend)

	for i := 0; i < 3; i++ {
		record := validNewRecord()
		record.OriginalMessage = fmt.Sprintf("message %d", i)
		if _, err := store.AppendTranslation(context.Background(), record); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	stored, err := store.AppendTranslation(context.Background(), validNewRecord())
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	items, err := store.ListRecentTranslations(context.Background(), 1)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("unexpected item count: got %d want 1", len(items))
	}
	if items[0].RecordUUID != stored.RecordUUID {
		t.Fatalf("newest record is not first: got %s want %s", items[0].RecordUUID, stored.RecordUUID)
	}
	if items[0].OriginalMessage != "Hello" || items[0].TranslatedMessage != "Bonjour" {
		t.Fatalf("unexpected record content: %+v", items[0])
	}
	if items[0].Score == nil || *items[0].Score != 4.5 {
		t.Fatalf("unexpected score: %+v", items[0].Score)
	}
}

func TestListRecent_BoundsAndOrder(t *testing.T) {
	t.Parallel()

	backend := newStubBackend()
	store := NewStoreWithBackend(backend)

	for i := 0; i < 7; i++ {
		record := validNewRecord()
		record.OriginalMessage = fmt.Sprintf("message %d", i)
		if _, err := store.AppendTranslation(context.Background(), record); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	items, err := store.ListRecentTranslations(context.Background(), 5)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("unexpected item count: got %d want 5", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].CreatedAt.After(items[i-1].CreatedAt) {
			t.Fatalf("records out of descending created_at order at index %d", i)
		}
	}

	// A non-positive limit still returns at most one record.
	if _, err := store.ListRecentTranslations(context.Background(), 0); err != nil {
		t.Fatalf("list recent with zero limit: %v", err)
	}
	if got := backend.listLimits[len(backend.listLimits)-1]; got != 1 {
		t.Fatalf("zero limit was not clamped: got %d want 1", got)
	}
}

func TestRecordKindsAreIndependent(t *testing.T) {
	t.Parallel()

	backend := newStubBackend()
	store := NewStoreWithBackend(backend)

	if _, err := store.AppendComparison(context.Background(), validNewRecord()); err != nil {
		t.Fatalf("append comparison: %v", err)
	}

	translations, err := store.ListRecentTranslations(context.Background(), 5)
	if err != nil {
		t.Fatalf("list translations: %v", err)
	}
	if len(translations) != 0 {
		t.Fatalf("comparison record leaked into translations: %+v", translations)
	}

	comparisons, err := store.ListRecentComparisons(context.Background(), 5)
	if err != nil {
		t.Fatalf("list comparisons: %v", err)
	}
	if len(comparisons) != 1 {
		t.Fatalf("unexpected comparison count: got %d want 1", len(comparisons))
	}
}

func TestStoreErrorsAreWrapped(t *testing.T) {
	t.Parallel()

	backend := newStubBackend()
	backend.insertErr = errors.New("connection reset")
	backend.listErr = errors.New("connection reset")
	store := NewStoreWithBackend(backend)

	_, err := store.AppendTranslation(context.Background(), validNewRecord())
	if !IsStore(err) {
		t.Fatalf("expected store error from append, got %v", err)
	}
	if IsValidation(err) {
		t.Fatalf("store error must not read as validation error")
	}

	_, err = store.ListRecentTranslations(context.Background(), 5)
	if !IsStore(err) {
		t.Fatalf("expected store error from list, got %v", err)
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	if kind, ok := ParseKind(""); !ok || kind != KindTranslation {
		t.Fatalf("empty kind: got %v %v", kind, ok)
	}
	if kind, ok := ParseKind(" Comparison "); !ok || kind != KindComparison {
		t.Fatalf("comparison kind: got %v %v", kind, ok)
	}
	if _, ok := ParseKind("ledger"); ok {
		t.Fatalf("unknown kind was accepted")
	}
}
