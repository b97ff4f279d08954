package web

// errors.go provides unified error response handling for the web layer.
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err, statusCode), usually with statusFor(err)
//  3. Error is mapped via core.MapError to get a user-friendly message
//  4. Technical error is logged with the request id for correlation
//  5. The client gets {success:false, error, code, action}

import (
	"errors"
	"net/http"

	"github.com/JonMunkholm/invbackoffice/internal/core"
	"github.com/JonMunkholm/invbackoffice/internal/logging"
)

// ErrorResponse represents the JSON structure for API error responses.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Action  string `json:"action,omitempty"`
}

// statusFor picks the HTTP status for a service error.
func statusFor(err error) int {
	var (
		ve *core.ValidationError
		nf *core.NotFoundError
		ce *core.ConstraintError
		pe *core.ParseError
		mb *http.MaxBytesError
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &pe),
		errors.Is(err, errNoFile), errors.Is(err, errEmptyFile):
		return http.StatusBadRequest
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &ce):
		return http.StatusConflict
	case errors.As(err, &mb):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs the technical error and writes the mapped user message.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	level := logger.Warn
	if statusCode >= http.StatusInternalServerError {
		level = logger.Error
	}
	level("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	writeJSON(w, r, statusCode, ErrorResponse{
		Success: false,
		Error:   userMsg.Message,
		Code:    userMsg.Code,
		Action:  userMsg.Action,
	})
}
