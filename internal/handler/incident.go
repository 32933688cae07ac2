package handler

import (
	"net/http"

	"incidentserver/internal/dto"
	"incidentserver/internal/logger"
	"incidentserver/internal/model"
	"incidentserver/internal/service/incident"
)

// ListIncidentsHandler handles GET /api/incidents. The optional resolved
// query parameter filters by flag: "true" selects resolved incidents, any
// other value unresolved ones.
func ListIncidentsHandler(svc *incident.Service, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter dto.IncidentFilter
		if q := r.URL.Query(); q.Has("resolved") {
			filter = dto.ResolvedFilter(q.Get("resolved") == "true")
		}

		incidents, err := svc.ListIncidents(filter)
		if err != nil {
			writeServiceError(w, r, logger, err, "Incident not found", "Failed to fetch incidents")
			return
		}
		writeJSON(w, logger, http.StatusOK, incidents)
	}
}

// GetIncidentHandler handles GET /api/incidents/{id}.
func GetIncidentHandler(svc *incident.Service, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, logger, http.StatusBadRequest, "Invalid incident ID")
			return
		}

		inc, err := svc.GetIncident(id)
		if err != nil {
			writeServiceError(w, r, logger, err, "Incident not found", "Failed to fetch incident")
			return
		}
		writeJSON(w, logger, http.StatusOK, inc)
	}
}

// CreateIncidentHandler handles POST /api/incidents.
func CreateIncidentHandler(svc *incident.Service, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in dto.IncidentInput
		if err := decodeBody(r, &in); err != nil {
			writeError(w, r, logger, http.StatusBadRequest, err.Error())
			return
		}

		created, err := svc.CreateIncident(in)
		if err != nil {
			writeServiceError(w, r, logger, err, "Incident not found", "Failed to create incident")
			return
		}
		writeJSON(w, logger, http.StatusCreated, created)
	}
}

// UpdateIncidentHandler handles PATCH /api/incidents/{id} with a partial body.
func UpdateIncidentHandler(svc *incident.Service, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, logger, http.StatusBadRequest, "Invalid incident ID")
			return
		}

		var patch model.IncidentPatch
		if err := decodeBody(r, &patch); err != nil {
			writeError(w, r, logger, http.StatusBadRequest, err.Error())
			return
		}

		updated, err := svc.UpdateIncident(id, patch)
		if err != nil {
			writeServiceError(w, r, logger, err, "Incident not found", "Failed to update incident")
			return
		}
		writeJSON(w, logger, http.StatusOK, updated)
	}
}

// ResolveIncidentHandler handles PATCH /api/incidents/{id}/resolve.
func ResolveIncidentHandler(svc *incident.Service, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, logger, http.StatusBadRequest, "Invalid incident ID")
			return
		}

		resolved, err := svc.ResolveIncident(id)
		if err != nil {
			writeServiceError(w, r, logger, err, "Incident not found", "Failed to resolve incident")
			return
		}
		writeJSON(w, logger, http.StatusOK, resolved)
	}
}
