package db

import "time"

// TranslationRecord maps records.translations. Rows are append-only: no
// update or delete statement exists anywhere in the codebase.
type TranslationRecord struct {
	RecordID          int64     `gorm:"column:record_id;primaryKey;autoIncrement"`
	RecordUUID        string    `gorm:"column:record_uuid;type:uuid;not null;unique"`
	OriginalMessage   string    `gorm:"column:original_message;type:text;not null"`
	TranslatedMessage string    `gorm:"column:translated_message;type:text;not null"`
	Language          string    `gorm:"column:language;type:text;not null"`
	Model             string    `gorm:"column:model;type:text;not null"`
	Score             *float64  `gorm:"column:score;type:double precision;check:score IS NULL OR (score >= 0 AND score <= 5)"`
	CreatedAt         time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (TranslationRecord) TableName() string { return "records.translations" }

// ComparisonRecord maps records.comparisons. Same shape as
// TranslationRecord, independent identifiers and ordering.
type ComparisonRecord struct {
	RecordID          int64     `gorm:"column:record_id;primaryKey;autoIncrement"`
	RecordUUID        string    `gorm:"column:record_uuid;type:uuid;not null;unique"`
	OriginalMessage   string    `gorm:"column:original_message;type:text;not null"`
	TranslatedMessage string    `gorm:"column:translated_message;type:text;not null"`
	Language          string    `gorm:"column:language;type:text;not null"`
	Model             string    `gorm:"column:model;type:text;not null"`
	Score             *float64  `gorm:"column:score;type:double precision;check:score IS NULL OR (score >= 0 AND score <= 5)"`
	CreatedAt         time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (ComparisonRecord) TableName() string { return "records.comparisons" }

func autoMigrateModels() []any {
	return []any{
		&TranslationRecord{},
		&ComparisonRecord{},
	}
}
