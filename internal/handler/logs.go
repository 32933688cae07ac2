package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"incidentserver/internal/logger"
)

var logFiles = map[string]string{
	"info":    logger.InfoFile,
	"warning": logger.WarningFile,
	"error":   logger.ErrorFile,
}

// ShowLogsHandler serves the log file of the {level} path segment as text/plain.
func ShowLogsHandler(logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename, ok := logFiles[r.PathValue("level")]
		if !ok {
			writeError(w, r, logger, http.StatusNotFound, "Unknown log level")
			return
		}
		serveLogFile(w, r, logger, filename)
	}
}

// serveLogFile sets headers and serves a log file if it exists.
func serveLogFile(w http.ResponseWriter, r *http.Request, logger *logger.Logger, filename string) {
	if logger.Dir() == "" {
		writeError(w, r, logger, http.StatusNotFound, "Log file not found: "+filename)
		return
	}
	filePath := filepath.Join(logger.Dir(), filename)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		writeError(w, r, logger, http.StatusNotFound, "Log file not found: "+filename)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")

	http.ServeFile(w, r, filePath)
}

// ClearLogsHandler truncates the log file of the {level} path segment.
func ClearLogsHandler(logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename, ok := logFiles[r.PathValue("level")]
		if !ok {
			writeError(w, r, logger, http.StatusNotFound, "Unknown log level")
			return
		}

		if err := logger.CleanLogs(filename); err != nil {
			logger.Error("Failed to clear log file", zap.String("file", filename), zap.Error(err))
			writeError(w, r, logger, http.StatusInternalServerError, "Failed to clear logs")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
