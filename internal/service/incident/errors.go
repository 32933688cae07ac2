package incident

import "errors"

var (
	// ErrIncidentNotFound means the referenced incident id is not stored.
	ErrIncidentNotFound = errors.New("incident not found")
	// ErrCameraNotFound means the referenced camera id is not stored.
	ErrCameraNotFound = errors.New("camera not found")
	// ErrInvalidInput wraps every validation failure of caller-supplied data.
	ErrInvalidInput = errors.New("invalid input")
	// ErrIntegrity means a stored incident points at a camera that does not exist.
	ErrIntegrity = errors.New("data integrity fault")
)
