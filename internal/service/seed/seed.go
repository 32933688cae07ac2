package seed

import (
	"fmt"
	"time"

	"incidentserver/internal/dto"
	"incidentserver/internal/model"
	"incidentserver/internal/repository"
)

const (
	thumbAccess   = "https://images.unsplash.com/photo-1560472354-b33ff0c44a43?ixlib=rb-4.0.3&auto=format&fit=crop&w=80&h=60"
	thumbGun      = "https://images.unsplash.com/photo-1551522435-a13afa10f103?ixlib=rb-4.0.3&auto=format&fit=crop&w=80&h=60"
	thumbFace     = "https://images.unsplash.com/photo-1515378960530-7c0da6231fb1?ixlib=rb-4.0.3&auto=format&fit=crop&w=80&h=60"
	thumbMultiple = "https://images.unsplash.com/photo-1497366216548-37526070297c?ixlib=rb-4.0.3&auto=format&fit=crop&w=80&h=60"
)

// Cameras is the fixed camera set loaded on start.
func Cameras() []dto.CameraInput {
	return []dto.CameraInput{
		{Name: "Camera - 01", Location: "Shop Floor A"},
		{Name: "Camera - 02", Location: "Vault"},
		{Name: "Camera - 03", Location: "Entrance"},
	}
}

type incidentTemplate struct {
	camera   int // index into Cameras()
	kind     string
	start    time.Duration // offset from midnight
	duration time.Duration
	thumb    string
}

func at(hour, minute int) time.Duration {
	return time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute
}

var templates = []incidentTemplate{
	{0, "Unauthorised Access", at(14, 35), 2 * time.Minute, thumbAccess},
	{0, "Gun Threat", at(17, 45), 2 * time.Minute, thumbGun},
	{2, "Face Recognised", at(12, 15), time.Minute, thumbFace},
	{1, "Multiple Events", at(9, 22), 3 * time.Minute, thumbMultiple},
	{2, "Traffic Congestion", at(8, 45), 5 * time.Minute, thumbFace},
	{0, "Unauthorised Access", at(16, 10), 2 * time.Minute, thumbAccess},
	{1, "Face Recognised", at(10, 30), time.Minute, thumbFace},
	{2, "Unauthorised Access", at(13, 20), 2 * time.Minute, thumbAccess},
	{0, "Traffic Congestion", at(7, 15), 5 * time.Minute, thumbFace},
	{1, "Gun Threat", at(19, 45), time.Minute, thumbGun},
	{2, "Multiple Events", at(21, 30), 5 * time.Minute, thumbMultiple},
	{0, "Face Recognised", at(15, 45), time.Minute, thumbFace},
}

// Incidents returns the seed incidents placed on the day containing now,
// referencing cameras by the ids in cameraIDs (parallel to Cameras()).
func Incidents(now time.Time, cameraIDs []int64) []dto.IncidentInput {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	incidents := make([]dto.IncidentInput, 0, len(templates))
	for _, tpl := range templates {
		start := midnight.Add(tpl.start)
		incidents = append(incidents, dto.IncidentInput{
			CameraID:     cameraIDs[tpl.camera],
			Type:         tpl.kind,
			TsStart:      start,
			TsEnd:        start.Add(tpl.duration),
			ThumbnailURL: tpl.thumb,
		})
	}
	return incidents
}

// Load writes the seed dataset into store.
func Load(store repository.Store, now time.Time) error {
	var cameraIDs []int64
	for _, in := range Cameras() {
		camera, err := store.Cameras().Create(model.Camera{Name: in.Name, Location: in.Location})
		if err != nil {
			return fmt.Errorf("seed camera %q: %w", in.Name, err)
		}
		cameraIDs = append(cameraIDs, camera.ID)
	}

	for _, in := range Incidents(now, cameraIDs) {
		_, err := store.Incidents().Create(model.Incident{
			CameraID:     in.CameraID,
			Type:         in.Type,
			TsStart:      in.TsStart,
			TsEnd:        in.TsEnd,
			ThumbnailURL: in.ThumbnailURL,
			Resolved:     in.Resolved,
		})
		if err != nil {
			return fmt.Errorf("seed incident %q: %w", in.Type, err)
		}
	}
	return nil
}

// LoadIfEmpty seeds store unless it already holds cameras. It reports whether
// it seeded.
func LoadIfEmpty(store repository.Store, now time.Time) (bool, error) {
	count, err := store.Cameras().Count()
	if err != nil {
		return false, fmt.Errorf("count cameras: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	return true, Load(store, now)
}
