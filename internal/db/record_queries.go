package db

import (
	"context"
	"fmt"
	"time"
)

// RecordRow is one stored translation or comparison record.
type RecordRow struct {
	RecordID          int64
	RecordUUID        string
	OriginalMessage   string
	TranslatedMessage string
	Language          string
	Model             string
	Score             *float64
	CreatedAt         time.Time
}

// InsertRecordParams carries the caller-supplied fields of a new record.
// record_id and created_at are assigned by the database.
type InsertRecordParams struct {
	RecordUUID        string
	OriginalMessage   string
	TranslatedMessage string
	Language          string
	Model             string
	Score             *float64
}

func (p *Pool) InsertTranslationRecord(ctx context.Context, params InsertRecordParams) (RecordRow, error) {
	return p.insertRecord(ctx, "records.translations", params)
}

func (p *Pool) ListRecentTranslationRecords(ctx context.Context, limit int) ([]RecordRow, error) {
	return p.listRecentRecords(ctx, "records.translations", limit)
}

func (p *Pool) InsertComparisonRecord(ctx context.Context, params InsertRecordParams) (RecordRow, error) {
	return p.insertRecord(ctx, "records.comparisons", params)
}

func (p *Pool) ListRecentComparisonRecords(ctx context.Context, limit int) ([]RecordRow, error) {
	return p.listRecentRecords(ctx, "records.comparisons", limit)
}

func (p *Pool) insertRecord(ctx context.Context, table string, params InsertRecordParams) (RecordRow, error) {
	q := fmt.Sprintf(`
INSERT INTO %s (
	record_uuid,
	original_message,
	translated_message,
	language,
	model,
	score
)
VALUES ($1::uuid, $2, $3, $4, $5, $6)
RETURNING
	record_id,
	record_uuid::text,
	original_message,
	translated_message,
	language,
	model,
	score,
	created_at
`, table)

	var row RecordRow
	err := p.QueryRow(
		ctx,
		q,
		params.RecordUUID,
		params.OriginalMessage,
		params.TranslatedMessage,
		params.Language,
		params.Model,
		params.Score,
	).Scan(
		&row.RecordID,
		&row.RecordUUID,
		&row.OriginalMessage,
		&row.TranslatedMessage,
		&row.Language,
		&row.Model,
		&row.Score,
		&row.CreatedAt,
	)
	if err != nil {
		return RecordRow{}, fmt.Errorf("insert record into %s: %w", table, err)
	}
	return row, nil
}

func (p *Pool) listRecentRecords(ctx context.Context, table string, limit int) ([]RecordRow, error) {
	q := fmt.Sprintf(`
SELECT
	record_id,
	record_uuid::text,
	original_message,
	translated_message,
	language,
	model,
	score,
	created_at
FROM %s
ORDER BY created_at DESC, record_id DESC
LIMIT $1
`, table)

	rows, err := p.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent records from %s: %w", table, err)
	}
	defer rows.Close()

	items := make([]RecordRow, 0, limit)
	for rows.Next() {
		var row RecordRow
		if err := rows.Scan(
			&row.RecordID,
			&row.RecordUUID,
			&row.OriginalMessage,
			&row.TranslatedMessage,
			&row.Language,
			&row.Model,
			&row.Score,
			&row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan record row from %s: %w", table, err)
		}
		items = append(items, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate record rows from %s: %w", table, err)
	}

	return items, nil
}
