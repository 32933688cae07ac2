package incident

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"incidentserver/internal/dto"
	"incidentserver/internal/logger"
	"incidentserver/internal/metrics"
	"incidentserver/internal/model"
	"incidentserver/internal/repository"
)

// EventPublisher receives incident mutations, e.g. the websocket hub.
type EventPublisher interface {
	Publish(event dto.IncidentEvent)
}

// Service joins incidents with their cameras and runs the resolution workflow
// on top of an injected store.
type Service struct {
	cameras   repository.CameraRepository
	incidents repository.IncidentRepository
	events    EventPublisher
	metrics   *metrics.Metrics
	logger    *logger.Logger
	now       func() time.Time
}

// NewService wires the service to store. events and metrics may be nil.
func NewService(store repository.Store, events EventPublisher, metrics *metrics.Metrics, logger *logger.Logger) *Service {
	return &Service{
		cameras:   store.Cameras(),
		incidents: store.Incidents(),
		events:    events,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// ListCameras returns every camera in store order.
func (s *Service) ListCameras() ([]model.Camera, error) {
	cameras, err := s.cameras.GetAll()
	if err != nil {
		return nil, fmt.Errorf("list cameras: %w", err)
	}
	return cameras, nil
}

// GetCamera returns one camera or ErrCameraNotFound.
func (s *Service) GetCamera(id int64) (*model.Camera, error) {
	camera, err := s.cameras.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("get camera %d: %w", id, err)
	}
	if camera == nil {
		return nil, fmt.Errorf("camera %d: %w", id, ErrCameraNotFound)
	}
	return camera, nil
}

// CreateCamera validates and stores a new camera.
func (s *Service) CreateCamera(in dto.CameraInput) (*model.Camera, error) {
	name := strings.TrimSpace(in.Name)
	location := strings.TrimSpace(in.Location)
	if name == "" {
		return nil, fmt.Errorf("%w: camera name is required", ErrInvalidInput)
	}
	if location == "" {
		return nil, fmt.Errorf("%w: camera location is required", ErrInvalidInput)
	}

	camera, err := s.cameras.Create(model.Camera{Name: name, Location: location})
	if err != nil {
		return nil, fmt.Errorf("create camera: %w", err)
	}

	s.logger.Info("camera created", zap.Int64("camera_id", camera.ID), zap.String("name", camera.Name))
	return camera, nil
}

// ListIncidents returns the incidents passing filter, newest tsStart first,
// each joined with its camera. Equal tsStart values keep store order.
// A dangling camera reference fails the whole read with ErrIntegrity.
func (s *Service) ListIncidents(filter dto.IncidentFilter) ([]model.IncidentWithCamera, error) {
	incidents, err := s.incidents.GetAll(filter)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}

	slices.SortStableFunc(incidents, func(a, b model.Incident) int {
		return b.TsStart.Compare(a.TsStart)
	})

	cameras, err := s.cameraIndex()
	if err != nil {
		return nil, err
	}

	joined := make([]model.IncidentWithCamera, 0, len(incidents))
	for _, inc := range incidents {
		camera, ok := cameras[inc.CameraID]
		if !ok {
			return nil, fmt.Errorf("%w: incident %d references camera %d", ErrIntegrity, inc.ID, inc.CameraID)
		}
		joined = append(joined, model.IncidentWithCamera{Incident: inc, Camera: camera})
	}
	return joined, nil
}

// GetIncident returns one incident joined with its camera.
func (s *Service) GetIncident(id int64) (*model.IncidentWithCamera, error) {
	inc, err := s.incidents.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("get incident %d: %w", id, err)
	}
	if inc == nil {
		return nil, fmt.Errorf("incident %d: %w", id, ErrIncidentNotFound)
	}

	camera, err := s.cameras.GetByID(inc.CameraID)
	if err != nil {
		return nil, fmt.Errorf("get camera %d: %w", inc.CameraID, err)
	}
	if camera == nil {
		return nil, fmt.Errorf("%w: incident %d references camera %d", ErrIntegrity, inc.ID, inc.CameraID)
	}
	return &model.IncidentWithCamera{Incident: *inc, Camera: *camera}, nil
}

// CreateIncident validates and stores a new incident.
func (s *Service) CreateIncident(in dto.IncidentInput) (*model.Incident, error) {
	candidate := model.Incident{
		CameraID:     in.CameraID,
		Type:         strings.TrimSpace(in.Type),
		TsStart:      in.TsStart,
		TsEnd:        in.TsEnd,
		ThumbnailURL: strings.TrimSpace(in.ThumbnailURL),
		Resolved:     in.Resolved,
	}
	if err := checkIncident(candidate); err != nil {
		return nil, err
	}
	if err := s.requireCamera(candidate.CameraID); err != nil {
		return nil, err
	}

	created, err := s.incidents.Create(candidate)
	if err != nil {
		return nil, fmt.Errorf("create incident: %w", err)
	}

	s.logger.Info("incident created",
		zap.Int64("incident_id", created.ID),
		zap.Int64("camera_id", created.CameraID),
		zap.String("type", created.Type))
	s.publish(dto.EventIncidentCreated, *created)
	return created, nil
}

// UpdateIncident shallow-merges patch onto the incident. The merged record
// is checked inside the store's write, so concurrent patches cannot combine
// into an invalid incident.
func (s *Service) UpdateIncident(id int64, patch model.IncidentPatch) (*model.Incident, error) {
	current, err := s.incidents.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("get incident %d: %w", id, err)
	}
	if current == nil {
		return nil, fmt.Errorf("incident %d: %w", id, ErrIncidentNotFound)
	}
	if patch.IsEmpty() {
		return current, nil
	}

	if patch.Type != nil {
		trimmed := strings.TrimSpace(*patch.Type)
		patch.Type = &trimmed
	}
	// Cameras and incidents are never deleted, so existence checks made
	// outside the write stay true.
	if patch.CameraID != nil {
		if err := s.requireCamera(*patch.CameraID); err != nil {
			return nil, err
		}
	}

	updated, err := s.incidents.Update(id, patch, checkIncident)
	if errors.Is(err, ErrInvalidInput) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("update incident %d: %w", id, err)
	}
	if updated == nil {
		return nil, fmt.Errorf("incident %d: %w", id, ErrIncidentNotFound)
	}

	s.logger.Info("incident updated", zap.Int64("incident_id", id))
	s.publish(dto.EventIncidentUpdated, *updated)
	return updated, nil
}

// ResolveIncident marks the incident resolved and returns it. Resolving an
// already resolved incident succeeds without changing it.
func (s *Service) ResolveIncident(id int64) (*model.Incident, error) {
	resolved, err := s.incidents.Resolve(id)
	if err != nil {
		return nil, fmt.Errorf("resolve incident %d: %w", id, err)
	}
	if resolved == nil {
		return nil, fmt.Errorf("incident %d: %w", id, ErrIncidentNotFound)
	}

	s.metrics.IncidentResolved()
	s.logger.Info("incident resolved", zap.Int64("incident_id", id), zap.String("type", resolved.Type))
	s.publish(dto.EventIncidentResolved, *resolved)
	return resolved, nil
}

// checkIncident validates the fields of a complete incident record.
func checkIncident(inc model.Incident) error {
	if inc.Type == "" {
		return fmt.Errorf("%w: incident type is required", ErrInvalidInput)
	}
	if inc.TsStart.IsZero() || inc.TsEnd.IsZero() {
		return fmt.Errorf("%w: tsStart and tsEnd are required", ErrInvalidInput)
	}
	if inc.TsStart.After(inc.TsEnd) {
		return fmt.Errorf("%w: tsStart must not be after tsEnd", ErrInvalidInput)
	}
	return nil
}

func (s *Service) requireCamera(id int64) error {
	camera, err := s.cameras.GetByID(id)
	if err != nil {
		return fmt.Errorf("get camera %d: %w", id, err)
	}
	if camera == nil {
		return fmt.Errorf("%w: camera %d does not exist", ErrInvalidInput, id)
	}
	return nil
}

func (s *Service) cameraIndex() (map[int64]model.Camera, error) {
	cameras, err := s.cameras.GetAll()
	if err != nil {
		return nil, fmt.Errorf("list cameras: %w", err)
	}

	index := make(map[int64]model.Camera, len(cameras))
	for _, camera := range cameras {
		index[camera.ID] = camera
	}
	return index, nil
}

func (s *Service) publish(kind string, inc model.Incident) {
	if s.events == nil {
		return
	}
	s.events.Publish(dto.IncidentEvent{Kind: kind, Incident: inc, At: s.now()})
}
