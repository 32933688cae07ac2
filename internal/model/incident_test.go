package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncidentPatch_ApplyLeavesAbsentFieldsUntouched(t *testing.T) {
	start := time.Date(2025, 6, 15, 14, 35, 0, 0, time.UTC)
	inc := Incident{
		ID:           7,
		CameraID:     1,
		Type:         "Gun Threat",
		TsStart:      start,
		TsEnd:        start.Add(2 * time.Minute),
		ThumbnailURL: "https://example.com/a.jpg",
	}

	kind := "Face Recognised"
	got := IncidentPatch{Type: &kind}.Apply(inc)

	assert.Equal(t, "Face Recognised", got.Type)
	assert.Equal(t, inc.ID, got.ID)
	assert.Equal(t, inc.CameraID, got.CameraID)
	assert.Equal(t, inc.TsStart, got.TsStart)
	assert.Equal(t, inc.ThumbnailURL, got.ThumbnailURL)
	assert.False(t, got.Resolved)
	assert.Equal(t, "Gun Threat", inc.Type, "original must not change")
}

func TestIncidentPatch_IsEmpty(t *testing.T) {
	assert.True(t, IncidentPatch{}.IsEmpty())
	assert.False(t, ResolvePatch().IsEmpty())
	assert.True(t, *ResolvePatch().Resolved)
}

func TestIncidentWithCamera_JSONFlattensIncident(t *testing.T) {
	start := time.Date(2025, 6, 15, 9, 22, 0, 0, time.UTC)
	view := IncidentWithCamera{
		Incident: Incident{ID: 4, CameraID: 2, Type: "Multiple Events", TsStart: start, TsEnd: start},
		Camera:   Camera{ID: 2, Name: "Camera - 02", Location: "Vault"},
	}

	data, err := json.Marshal(view)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.EqualValues(t, 4, out["id"])
	assert.EqualValues(t, 2, out["cameraId"])
	assert.Equal(t, "2025-06-15T09:22:00Z", out["tsStart"])
	assert.Equal(t, false, out["resolved"])

	camera, ok := out["camera"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Vault", camera["location"])
}
