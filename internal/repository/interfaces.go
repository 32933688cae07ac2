package repository

import (
	"incidentserver/internal/dto"
	"incidentserver/internal/model"
)

// CameraRepository defines the interface for camera data operations.
// Lookups of a missing id return (nil, nil).
type CameraRepository interface {
	// Create operations
	Create(camera model.Camera) (*model.Camera, error)

	// Read operations
	GetByID(id int64) (*model.Camera, error)
	GetAll() ([]model.Camera, error)
	Count() (int, error)
}

// IncidentCheck vets a merged incident before an update is written. A
// non-nil error aborts the update and is returned unchanged.
type IncidentCheck func(merged model.Incident) error

// IncidentRepository defines the interface for incident data operations.
// Lookups and updates of a missing id return (nil, nil).
type IncidentRepository interface {
	// Create operations
	Create(incident model.Incident) (*model.Incident, error)

	// Read operations
	GetByID(id int64) (*model.Incident, error)
	GetAll(filter dto.IncidentFilter) ([]model.Incident, error)

	// Update operations
	// Update merges patch and runs check (when non-nil) on the result in the
	// same critical section as the write.
	Update(id int64, patch model.IncidentPatch, check IncidentCheck) (*model.Incident, error)
	Resolve(id int64) (*model.Incident, error)
}

// Store bundles the repositories backed by one storage engine.
type Store interface {
	Cameras() CameraRepository
	Incidents() IncidentRepository
	Close() error
}
