package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/apperrors"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/logger"
)

// envelope is the uniform response shape: exactly one of data and error is
// set, never both. Partial results are not served.
type envelope struct {
	Data  interface{} `json:"data"`
	Error string      `json:"error,omitempty"`
}

// respondData writes a successful envelope.
func respondData(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, envelope{Data: data})
}

// respondError maps a service error to a status code and writes an error
// envelope. Internal error detail stays in the log; the client sees the
// sentinel message only.
func respondError(c echo.Context, err error) error {
	status := statusFor(err)
	log := logger.FromContext(c.Request().Context())

	if status >= http.StatusInternalServerError {
		log.Error("Request failed", zap.Int("status", status), zap.Error(err))
		return c.JSON(status, envelope{Error: publicMessage(err)})
	}
	log.Warn("Request rejected", zap.Int("status", status), zap.Error(err))
	return c.JSON(status, envelope{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case apperrors.IsBadRequestError(err), apperrors.IsValidationError(err):
		return http.StatusBadRequest
	case apperrors.IsNotFoundError(err):
		return http.StatusNotFound
	case apperrors.IsDuplicateError(err):
		return http.StatusConflict
	case apperrors.IsTimeoutError(err):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func publicMessage(err error) string {
	switch {
	case apperrors.IsTimeoutError(err):
		return apperrors.ErrTimeout.Error()
	case errors.Is(err, apperrors.ErrMailer):
		return apperrors.ErrMailer.Error()
	case errors.Is(err, apperrors.ErrSummaryGen):
		return apperrors.ErrSummaryGen.Error()
	default:
		return apperrors.ErrDatabase.Error()
	}
}
