package memory

import (
	"incidentserver/internal/dto"
	"incidentserver/internal/model"
	"incidentserver/internal/repository"
)

// IncidentRepository implements repository.IncidentRepository in memory.
type IncidentRepository struct {
	db *DB
}

// NewIncidentRepository creates an incident repository over db.
func NewIncidentRepository(db *DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

// Create assigns the next incident id and stores the incident as given.
func (r *IncidentRepository) Create(incident model.Incident) (*model.Incident, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	incident.ID = r.db.nextIncident
	r.db.nextIncident++

	r.db.incidents[incident.ID] = incident
	r.db.incidentOrder = append(r.db.incidentOrder, incident.ID)
	return &incident, nil
}

// GetByID returns a copy of the incident, or nil when it does not exist.
func (r *IncidentRepository) GetByID(id int64) (*model.Incident, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	incident, ok := r.db.incidents[id]
	if !ok {
		return nil, nil
	}
	return &incident, nil
}

// GetAll returns the incidents passing filter in insertion order.
func (r *IncidentRepository) GetAll(filter dto.IncidentFilter) ([]model.Incident, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	incidents := make([]model.Incident, 0, len(r.db.incidentOrder))
	for _, id := range r.db.incidentOrder {
		incident := r.db.incidents[id]
		if filter.Matches(incident.Resolved) {
			incidents = append(incidents, incident)
		}
	}
	return incidents, nil
}

// Update merges patch onto the stored incident. It returns nil when the id
// is unknown. check runs under the write lock, so it sees the latest record.
func (r *IncidentRepository) Update(id int64, patch model.IncidentPatch, check repository.IncidentCheck) (*model.Incident, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	incident, ok := r.db.incidents[id]
	if !ok {
		return nil, nil
	}

	updated := patch.Apply(incident)
	if check != nil {
		if err := check(updated); err != nil {
			return nil, err
		}
	}
	r.db.incidents[id] = updated
	return &updated, nil
}

// Resolve marks the incident resolved. Resolving twice is a no-op.
func (r *IncidentRepository) Resolve(id int64) (*model.Incident, error) {
	return r.Update(id, model.ResolvePatch(), nil)
}
