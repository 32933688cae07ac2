package memory

import "incidentserver/internal/model"

// CameraRepository implements repository.CameraRepository in memory.
type CameraRepository struct {
	db *DB
}

// NewCameraRepository creates a camera repository over db.
func NewCameraRepository(db *DB) *CameraRepository {
	return &CameraRepository{db: db}
}

// Create assigns the next camera id and stores the camera.
func (r *CameraRepository) Create(camera model.Camera) (*model.Camera, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	camera.ID = r.db.nextCamera
	r.db.nextCamera++

	r.db.cameras[camera.ID] = camera
	r.db.cameraOrder = append(r.db.cameraOrder, camera.ID)
	return &camera, nil
}

// GetByID returns a copy of the camera, or nil when it does not exist.
func (r *CameraRepository) GetByID(id int64) (*model.Camera, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	camera, ok := r.db.cameras[id]
	if !ok {
		return nil, nil
	}
	return &camera, nil
}

// GetAll returns every camera in insertion order.
func (r *CameraRepository) GetAll() ([]model.Camera, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	cameras := make([]model.Camera, 0, len(r.db.cameraOrder))
	for _, id := range r.db.cameraOrder {
		cameras = append(cameras, r.db.cameras[id])
	}
	return cameras, nil
}

// Count returns the number of stored cameras.
func (r *CameraRepository) Count() (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return len(r.db.cameras), nil
}
