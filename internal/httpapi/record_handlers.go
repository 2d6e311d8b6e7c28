package httpapi

import (
	"errors"
	"fmt"
	"io"

	"github.com/labstack/echo/v4"

	"lingolog.app/backend/internal/records"
)

// historyLimit is the fixed window for record listings; there is no
// pagination beyond it.
const historyLimit = records.DefaultHistoryLimit

const maxBodyBytes = 1 << 20

func (s *Server) handleCreateTranslation(c echo.Context) error {
	return s.createRecord(c, records.KindTranslation)
}

func (s *Server) handleListTranslations(c echo.Context) error {
	return s.listRecords(c, records.KindTranslation)
}

func (s *Server) handleCreateComparison(c echo.Context) error {
	return s.createRecord(c, records.KindComparison)
}

func (s *Server) handleListComparisons(c echo.Context) error {
	return s.listRecords(c, records.KindComparison)
}

func (s *Server) createRecord(c echo.Context, kind records.Kind) error {
	body, err := readRequestBody(c)
	if err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	payload, err := validateRecordPayload(body)
	if err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	var stored *records.Record
	switch kind {
	case records.KindComparison:
		stored, err = s.store.AppendComparison(c.Request().Context(), *payload)
	default:
		stored, err = s.store.AppendTranslation(c.Request().Context(), *payload)
	}
	if err != nil {
		if records.IsValidation(err) {
			return failValidation(c, validationErrorFields(err))
		}
		s.logger.Error().Err(err).Str("kind", string(kind)).Msg("append record failed")
		return internalError(c, "Failed to save record")
	}

	return successCreated(c, map[string]any{
		"record": stored,
	})
}

func (s *Server) listRecords(c echo.Context, kind records.Kind) error {
	var (
		items []records.Record
		err   error
	)
	switch kind {
	case records.KindComparison:
		items, err = s.store.ListRecentComparisons(c.Request().Context(), historyLimit)
	default:
		items, err = s.store.ListRecentTranslations(c.Request().Context(), historyLimit)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("kind", string(kind)).Msg("list records failed")
		return internalError(c, "Failed to load records")
	}

	return success(c, map[string]any{
		"items": items,
		"limit": historyLimit,
	})
}

func readRequestBody(c echo.Context) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("request body exceeds %d bytes", maxBodyBytes)
	}
	return body, nil
}

func validationErrorFields(err error) map[string]string {
	var ve *records.ValidationError
	if errors.As(err, &ve) {
		return map[string]string{ve.Field: ve.Reason}
	}
	return map[string]string{"body": err.Error()}
}
