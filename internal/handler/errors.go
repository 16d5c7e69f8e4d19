package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ArtemMoroz51/trivia-api/internal/trivia"
	"go.uber.org/zap"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

var errorMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusInternalServerError: "internal server error",
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, trivia.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, trivia.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, trivia.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int) {
	msg, ok := errorMessages[code]
	if !ok {
		code = http.StatusInternalServerError
		msg = errorMessages[code]
	}
	writeJSON(w, code, errorResponse{Success: false, Error: code, Message: msg})
}

// fail logs err at a level matching who is at fault and writes the envelope.
func fail(w http.ResponseWriter, log *zap.Logger, msg string, err error, fields ...zap.Field) {
	code := statusFor(err)
	fields = append(fields, zap.Int("status", code), zap.Error(err))
	if code >= http.StatusInternalServerError {
		log.Error(msg, fields...)
	} else {
		log.Warn(msg, fields...)
	}
	writeError(w, code)
}

func notFoundHandler(log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Warn("route not found", zap.String("path", r.URL.Path), zap.String("method", r.Method))
		writeError(w, http.StatusNotFound)
	}
}

func methodNotAllowedHandler(log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Warn("method not allowed", zap.String("path", r.URL.Path), zap.String("method", r.Method))
		writeError(w, http.StatusMethodNotAllowed)
	}
}
