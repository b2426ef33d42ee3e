// Package handler adapts the services to HTTP. Request bodies are JSON,
// responses are JSON with the error envelope of model.ErrorResponse.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/AlexZinkM/vendora/internal/auth"
	"github.com/AlexZinkM/vendora/internal/logging"
	"github.com/AlexZinkM/vendora/internal/model"
	"github.com/AlexZinkM/vendora/internal/service"
	"github.com/AlexZinkM/vendora/internal/validation"
)

// maxBodyBytes bounds request bodies. Two base64 documents must fit.
const maxBodyBytes = 20 << 20

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("failed to encode response", zap.Error(err))
	}
}

// writeError maps service and validation failures to their status codes.
// Anything else is logged and answered with 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errs, ok := validation.AsErrors(err); ok {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Error:  "Validation failed",
			Code:   "VALIDATION_ERROR",
			Fields: errs,
		})
		return
	}

	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		writeJSON(w, svcErr.Status, model.ErrorResponse{Error: svcErr.Message, Code: svcErr.Code})
		return
	}

	logging.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
		Error: "Internal server error",
		Code:  "INTERNAL_ERROR",
	})
}

// decode reads a JSON body into v. It writes the error response itself and
// reports whether the handler may continue.
func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, model.ErrorResponse{Error: "Request body too large", Code: "BAD_REQUEST"})
	case errors.Is(err, io.EOF):
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "Request body is required", Code: "BAD_REQUEST"})
	default:
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "Invalid JSON body", Code: "BAD_REQUEST"})
	}
	return false
}

// userID returns the id of the signed-in user. Routes using it sit behind
// the session middleware.
func userID(r *http.Request) string {
	claims, ok := auth.SessionFrom(r.Context())
	if !ok {
		return ""
	}
	return claims.UserID
}
