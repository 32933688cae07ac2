package handler

import (
	"net/http"

	"incidentserver/internal/dto"
	"incidentserver/internal/logger"
	"incidentserver/internal/service/incident"
)

// ListCamerasHandler handles GET /api/cameras.
func ListCamerasHandler(svc *incident.Service, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cameras, err := svc.ListCameras()
		if err != nil {
			writeServiceError(w, r, logger, err, "Camera not found", "Failed to fetch cameras")
			return
		}
		writeJSON(w, logger, http.StatusOK, cameras)
	}
}

// GetCameraHandler handles GET /api/cameras/{id}.
func GetCameraHandler(svc *incident.Service, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, logger, http.StatusBadRequest, "Invalid camera ID")
			return
		}

		camera, err := svc.GetCamera(id)
		if err != nil {
			writeServiceError(w, r, logger, err, "Camera not found", "Failed to fetch camera")
			return
		}
		writeJSON(w, logger, http.StatusOK, camera)
	}
}

// CreateCameraHandler handles POST /api/cameras.
func CreateCameraHandler(svc *incident.Service, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in dto.CameraInput
		if err := decodeBody(r, &in); err != nil {
			writeError(w, r, logger, http.StatusBadRequest, err.Error())
			return
		}

		camera, err := svc.CreateCamera(in)
		if err != nil {
			writeServiceError(w, r, logger, err, "Camera not found", "Failed to create camera")
			return
		}
		writeJSON(w, logger, http.StatusCreated, camera)
	}
}
