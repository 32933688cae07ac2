package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"incidentserver/internal/dto"
	"incidentserver/internal/logger"
	"incidentserver/internal/middleware"
	"incidentserver/internal/service/incident"
)

const maxBodyBytes = 1 << 20

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, logger *logger.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Error encoding JSON response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, logger *logger.Logger, status int, message string) {
	writeJSON(w, logger, status, dto.ErrorResponse{
		Message:   message,
		RequestID: middleware.RequestIDFromContext(r.Context()),
	})
}

// writeServiceError maps service errors onto HTTP statuses. fallback is the
// message used for unexpected failures, which are also logged.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *logger.Logger, err error, notFound, fallback string) {
	switch {
	case errors.Is(err, incident.ErrIncidentNotFound), errors.Is(err, incident.ErrCameraNotFound):
		writeError(w, r, logger, http.StatusNotFound, notFound)
	case errors.Is(err, incident.ErrInvalidInput):
		writeError(w, r, logger, http.StatusBadRequest, err.Error())
	default:
		logger.Error(fallback,
			zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
			zap.Error(err))
		writeError(w, r, logger, http.StatusInternalServerError, fallback)
	}
}

// pathID parses the {id} path segment as an integer.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// decodeBody reads a JSON object into out, rejecting unknown fields.
func decodeBody(r *http.Request, out any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
