package memory

import (
	"sync"

	"incidentserver/internal/model"
	"incidentserver/internal/repository"
)

// DB is a volatile store holding cameras and incidents behind a single lock.
// Ids are counters starting at 1 and are never reused.
type DB struct {
	mu sync.RWMutex

	cameras     map[int64]model.Camera
	cameraOrder []int64
	nextCamera  int64

	incidents     map[int64]model.Incident
	incidentOrder []int64
	nextIncident  int64
}

// New creates an empty in-memory store.
func New() *DB {
	return &DB{
		cameras:      make(map[int64]model.Camera),
		incidents:    make(map[int64]model.Incident),
		nextCamera:   1,
		nextIncident: 1,
	}
}

// Cameras returns the camera repository backed by this store.
func (db *DB) Cameras() repository.CameraRepository {
	return NewCameraRepository(db)
}

// Incidents returns the incident repository backed by this store.
func (db *DB) Incidents() repository.IncidentRepository {
	return NewIncidentRepository(db)
}

// Close is a no-op; the data lives as long as the process.
func (db *DB) Close() error {
	return nil
}
