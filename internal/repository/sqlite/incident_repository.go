package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"incidentserver/internal/dto"
	"incidentserver/internal/model"
	"incidentserver/internal/repository"
)

const incidentColumns = `id, camera_id, type, ts_start, ts_end, thumbnail_url, resolved`

// IncidentRepository implements repository.IncidentRepository for SQLite.
type IncidentRepository struct {
	db *DB
}

// NewIncidentRepository creates a new SQLite incident repository.
func NewIncidentRepository(db *DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIncident(row rowScanner) (model.Incident, error) {
	var inc model.Incident
	err := row.Scan(&inc.ID, &inc.CameraID, &inc.Type, &inc.TsStart, &inc.TsEnd, &inc.ThumbnailURL, &inc.Resolved)
	return inc, err
}

// Create inserts an incident and returns it with its assigned id.
func (r *IncidentRepository) Create(incident model.Incident) (*model.Incident, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO incidents (camera_id, type, ts_start, ts_end, thumbnail_url, resolved)
		VALUES (?, ?, ?, ?, ?, ?)
	`, incident.CameraID, incident.Type, incident.TsStart, incident.TsEnd, incident.ThumbnailURL, incident.Resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to insert incident: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read incident id: %w", err)
	}
	incident.ID = id
	return &incident, nil
}

// GetByID retrieves an incident by its ID, or nil if it does not exist.
func (r *IncidentRepository) GetByID(id int64) (*model.Incident, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	inc, err := scanIncident(r.db.Conn().QueryRow(`SELECT `+incidentColumns+` FROM incidents WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get incident: %w", err)
	}
	return &inc, nil
}

// GetAll retrieves incidents matching filter, ordered by id.
func (r *IncidentRepository) GetAll(filter dto.IncidentFilter) ([]model.Incident, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE 1=1`
	args := []interface{}{}

	if filter.Resolved != nil {
		query += " AND resolved = ?"
		args = append(args, *filter.Resolved)
	}

	query += " ORDER BY id"

	rows, err := r.db.Conn().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	defer rows.Close()

	incidents := []model.Incident{}
	for rows.Next() {
		inc, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident: %w", err)
		}
		incidents = append(incidents, inc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate incidents: %w", err)
	}
	return incidents, nil
}

// Update merges patch onto the stored incident in a single transaction.
// It returns nil when the id is unknown. A failing check rolls back.
func (r *IncidentRepository) Update(id int64, patch model.IncidentPatch, check repository.IncidentCheck) (*model.Incident, error) {
	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := scanIncident(tx.QueryRow(`SELECT `+incidentColumns+` FROM incidents WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load incident: %w", err)
	}

	updated := patch.Apply(current)
	if check != nil {
		if err := check(updated); err != nil {
			return nil, err
		}
	}
	if _, err := tx.Exec(`
		UPDATE incidents
		SET camera_id = ?, type = ?, ts_start = ?, ts_end = ?, thumbnail_url = ?, resolved = ?
		WHERE id = ?
	`, updated.CameraID, updated.Type, updated.TsStart, updated.TsEnd, updated.ThumbnailURL, updated.Resolved, id); err != nil {
		return nil, fmt.Errorf("failed to update incident: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit incident update: %w", err)
	}
	return &updated, nil
}

// Resolve marks the incident resolved. Resolving twice is a no-op.
func (r *IncidentRepository) Resolve(id int64) (*model.Incident, error) {
	return r.Update(id, model.ResolvePatch(), nil)
}
