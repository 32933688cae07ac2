package model

import "time"

// Incident represents a timestamped security event raised by one camera.
type Incident struct {
	ID           int64     `json:"id"`
	CameraID     int64     `json:"cameraId"`
	Type         string    `json:"type"`
	TsStart      time.Time `json:"tsStart"`
	TsEnd        time.Time `json:"tsEnd"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Resolved     bool      `json:"resolved"`
}

// IncidentWithCamera is an incident joined with the camera that recorded it.
// It is built on read and never stored.
type IncidentWithCamera struct {
	Incident
	Camera Camera `json:"camera"`
}

// IncidentPatch carries a partial incident update. Nil fields are left untouched.
type IncidentPatch struct {
	CameraID     *int64     `json:"cameraId,omitempty"`
	Type         *string    `json:"type,omitempty"`
	TsStart      *time.Time `json:"tsStart,omitempty"`
	TsEnd        *time.Time `json:"tsEnd,omitempty"`
	ThumbnailURL *string    `json:"thumbnailUrl,omitempty"`
	Resolved     *bool      `json:"resolved,omitempty"`
}

// Apply returns a copy of inc with the non-nil patch fields merged in.
func (p IncidentPatch) Apply(inc Incident) Incident {
	if p.CameraID != nil {
		inc.CameraID = *p.CameraID
	}
	if p.Type != nil {
		inc.Type = *p.Type
	}
	if p.TsStart != nil {
		inc.TsStart = *p.TsStart
	}
	if p.TsEnd != nil {
		inc.TsEnd = *p.TsEnd
	}
	if p.ThumbnailURL != nil {
		inc.ThumbnailURL = *p.ThumbnailURL
	}
	if p.Resolved != nil {
		inc.Resolved = *p.Resolved
	}
	return inc
}

// IsEmpty reports whether the patch changes nothing.
func (p IncidentPatch) IsEmpty() bool {
	return p.CameraID == nil && p.Type == nil && p.TsStart == nil &&
		p.TsEnd == nil && p.ThumbnailURL == nil && p.Resolved == nil
}

// ResolvePatch marks an incident as resolved.
func ResolvePatch() IncidentPatch {
	resolved := true
	return IncidentPatch{Resolved: &resolved}
}
