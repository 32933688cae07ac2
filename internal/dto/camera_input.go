package dto

// CameraInput is the payload for creating a camera.
type CameraInput struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}
