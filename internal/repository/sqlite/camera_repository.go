package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"incidentserver/internal/model"
)

// CameraRepository implements repository.CameraRepository for SQLite.
type CameraRepository struct {
	db *DB
}

// NewCameraRepository creates a new SQLite camera repository.
func NewCameraRepository(db *DB) *CameraRepository {
	return &CameraRepository{db: db}
}

// Create inserts a camera and returns it with its assigned id.
func (r *CameraRepository) Create(camera model.Camera) (*model.Camera, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`INSERT INTO cameras (name, location) VALUES (?, ?)`,
		camera.Name, camera.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to insert camera: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read camera id: %w", err)
	}
	camera.ID = id
	return &camera, nil
}

// GetByID retrieves a camera by its ID, or nil if it does not exist.
func (r *CameraRepository) GetByID(id int64) (*model.Camera, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var camera model.Camera
	err := r.db.Conn().QueryRow(`SELECT id, name, location FROM cameras WHERE id = ?`, id).
		Scan(&camera.ID, &camera.Name, &camera.Location)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get camera: %w", err)
	}
	return &camera, nil
}

// GetAll returns every camera ordered by id.
func (r *CameraRepository) GetAll() ([]model.Camera, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`SELECT id, name, location FROM cameras ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cameras: %w", err)
	}
	defer rows.Close()

	cameras := []model.Camera{}
	for rows.Next() {
		var camera model.Camera
		if err := rows.Scan(&camera.ID, &camera.Name, &camera.Location); err != nil {
			return nil, fmt.Errorf("failed to scan camera: %w", err)
		}
		cameras = append(cameras, camera)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cameras: %w", err)
	}
	return cameras, nil
}

// Count returns the number of stored cameras.
func (r *CameraRepository) Count() (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var count int
	if err := r.db.Conn().QueryRow(`SELECT COUNT(*) FROM cameras`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cameras: %w", err)
	}
	return count, nil
}
