package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"lingolog.app/backend/internal/records"
	"lingolog.app/backend/internal/translation"
)

type translateRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Model    string `json:"model"`
}

func (s *Server) handleTranslate(c echo.Context) error {
	body, err := readRequestBody(c)
	if err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	var req translateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return failValidation(c, map[string]string{"body": "must be a JSON object"})
	}

	outcome, err := s.gateway.Translate(c.Request().Context(), req.Text, req.Language, req.Model)
	if err != nil {
		switch {
		case records.IsValidation(err):
			return failValidation(c, validationErrorFields(err))
		case errors.Is(err, translation.ErrRecordNotSaved):
			// Translation succeeded; the caller still gets the text.
			return internalErrorWithData(c, "Translation succeeded but the record was not saved", outcome)
		case translation.IsUpstream(err):
			s.logger.Error().Err(err).Str("model", req.Model).Msg("provider call failed")
			return fail(c, http.StatusBadGateway, "Translation failed", nil)
		default:
			s.logger.Error().Err(err).Str("model", req.Model).Msg("translate request failed")
			return internalError(c, "Internal server error")
		}
	}

	return successCreated(c, outcome)
}

func (s *Server) handleLanguages(c echo.Context) error {
	return success(c, map[string]any{
		"providers": s.registry.LanguageOptions(),
	})
}
