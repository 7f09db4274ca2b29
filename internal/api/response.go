package api

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rgehrsitz/ukpaye/internal/config"
)

// Response is the envelope every endpoint returns
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		fallback := Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "ENCODING_ERROR",
				Message: "Failed to encode response",
			},
		}
		_ = json.NewEncoder(w).Encode(fallback)
	}
}

func success(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func successWithMessage(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func badRequest(w http.ResponseWriter, message string, details map[string]string) {
	writeJSON(w, http.StatusBadRequest, Response{
		Error: &ErrorDetail{Code: "BAD_REQUEST", Message: message, Details: details},
	})
}

func validationFailed(w http.ResponseWriter, details map[string]string) {
	writeJSON(w, http.StatusUnprocessableEntity, Response{
		Error: &ErrorDetail{Code: "VALIDATION_ERROR", Message: "Validation failed", Details: details},
	})
}

func notFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, Response{
		Error: &ErrorDetail{Code: "NOT_FOUND", Message: message},
	})
}

func internalServerError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusInternalServerError, Response{
		Error: &ErrorDetail{Code: "INTERNAL_SERVER_ERROR", Message: message},
	})
}

// handleError maps errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var validationErrs config.ValidationErrors
	if errors.As(err, &validationErrs) {
		validationFailed(w, validationErrs.ToMap())
		return
	}
	internalServerError(w, "An unexpected error occurred")
}
