// Package respond writes JSON bodies and maps record errors to HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

type ErrorCode string

const (
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeBadRequest   ErrorCode = "BAD_REQUEST"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeUpstream     ErrorCode = "UPSTREAM_ERROR"
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorBody struct {
	Code    ErrorCode    `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

type errorResponse struct {
	Error ErrorBody `json:"error"`
}

func statusOf(code ErrorCode) int {
	switch code {
	case CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Classify maps an error from a record store onto an error code.
func Classify(err error) ErrorCode {
	switch {
	case errors.Is(err, records.ErrValidation):
		return CodeValidation
	case errors.Is(err, records.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, records.ErrNetwork):
		return CodeUpstream
	default:
		return CodeInternal
	}
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("failed to encode response", zap.Error(err))
	}
}

// Fail writes an error body with the status that belongs to code.
func Fail(w http.ResponseWriter, code ErrorCode, message string) {
	JSON(w, statusOf(code), errorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// Error classifies err and writes it. Validation errors carry their fields.
func Error(w http.ResponseWriter, err error) {
	code := Classify(err)
	body := ErrorBody{Code: code, Message: err.Error()}

	var verr *records.ValidationError
	if errors.As(err, &verr) {
		for _, f := range verr.Fields {
			body.Fields = append(body.Fields, FieldError{Field: f.Field, Message: f.Message})
		}
	}

	status := statusOf(code)
	if status >= http.StatusInternalServerError {
		zap.L().Error("request failed", zap.String("code", string(code)), zap.Error(err))
	}

	JSON(w, status, errorResponse{Error: body})
}
