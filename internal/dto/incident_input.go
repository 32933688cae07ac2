package dto

import "time"

// IncidentInput is the payload for creating an incident. Resolved defaults to false.
type IncidentInput struct {
	CameraID     int64     `json:"cameraId"`
	Type         string    `json:"type"`
	TsStart      time.Time `json:"tsStart"`
	TsEnd        time.Time `json:"tsEnd"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Resolved     bool      `json:"resolved"`
}
