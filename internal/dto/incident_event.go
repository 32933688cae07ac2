package dto

import (
	"time"

	"incidentserver/internal/model"
)

// Event kinds pushed to dashboard viewers.
const (
	EventIncidentCreated  = "incident.created"
	EventIncidentUpdated  = "incident.updated"
	EventIncidentResolved = "incident.resolved"
)

// IncidentEvent describes an incident mutation broadcast over the event hub.
type IncidentEvent struct {
	Kind     string         `json:"kind"`
	Incident model.Incident `json:"incident"`
	At       time.Time      `json:"at"`
}
