// Package response provides standardized HTTP response formatting for the
// chi-direct handlers that sit outside the typed API surface.
package response

import (
	"net/http"

	"encoding/json/v2"

	domainerrors "github.com/lectioapp/lectio-server/internal/errors"
	"github.com/lectioapp/lectio-server/internal/logger"
)

// Envelope provides a consistent JSON response structure.
type Envelope struct {
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Success bool   `json:"success"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any, log *logger.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	envelope := Envelope{
		Success: status < 400,
		Data:    data,
	}
	if err := json.MarshalWrite(w, envelope); err != nil && log != nil {
		log.WithError(err).Error("encode JSON response")
	}
}

// Success writes a successful JSON response (200 OK).
func Success(w http.ResponseWriter, data any, log *logger.Logger) {
	JSON(w, http.StatusOK, data, log)
}

// Error writes an error response, mapping domain errors to their status and code.
func Error(w http.ResponseWriter, err error, log *logger.Logger) {
	status := http.StatusInternalServerError
	code := string(domainerrors.CodeInternal)
	message := "internal server error"

	var domainErr *domainerrors.Error
	if domainerrors.As(err, &domainErr) {
		status = domainErr.HTTPStatus()
		code = string(domainErr.Code)
		message = domainErr.Message
	} else if log != nil {
		log.WithError(err).Error("unhandled error in HTTP handler")
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	envelope := Envelope{
		Success: false,
		Error:   message,
		Code:    code,
	}
	if encErr := json.MarshalWrite(w, envelope); encErr != nil && log != nil {
		log.WithError(encErr).Error("encode error response")
	}
}
