package handler

import (
	"net/http"

	"incidentserver/internal/logger"
)

// HealthHandler reports liveness.
func HealthHandler(logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, http.StatusOK, map[string]string{"status": "ok"})
	}
}
