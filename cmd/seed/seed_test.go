package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"incidentserver/internal/config"
	"incidentserver/internal/repository/sqlite"
)

func TestRun_SeedsOnceAndPrintsStats(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "incidents.db")

	var out bytes.Buffer
	require.NoError(t, run(&out, dbPath, false, false))
	assert.Contains(t, out.String(), "Seeded")
	assert.Contains(t, out.String(), "Camera - 01")
	assert.Contains(t, out.String(), "Shop Floor A")

	out.Reset()
	require.NoError(t, run(&out, dbPath, false, true))
	assert.Contains(t, out.String(), "skipping seed")

	// JSON follows the status line.
	body := out.Bytes()[bytes.IndexByte(out.Bytes(), '\n')+1:]
	var stats []CameraStats
	require.NoError(t, json.Unmarshal(body, &stats))
	require.Len(t, stats, 3)

	total := 0
	for _, s := range stats {
		total += s.Incidents
		assert.Equal(t, s.Incidents, s.Unresolved)
	}
	assert.Equal(t, 12, total)
	assert.Equal(t, 5, stats[0].Incidents)
}

func TestRun_ResetReloads(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "incidents.db")
	require.NoError(t, run(&bytes.Buffer{}, dbPath, false, false))

	db, err := sqlite.New(dbPath)
	require.NoError(t, err)
	_, err = db.Incidents().Resolve(1)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	var out bytes.Buffer
	require.NoError(t, run(&out, dbPath, true, true))
	assert.Contains(t, out.String(), "Seeded")

	db, err = sqlite.New(dbPath)
	require.NoError(t, err)
	defer db.Close()

	inc, err := db.Incidents().GetByID(1)
	require.NoError(t, err)
	require.NotNil(t, inc)
	assert.False(t, inc.Resolved)

	count, err := db.Cameras().Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestResolveDBPath(t *testing.T) {
	loads := 0
	load := func() (*config.Config, error) {
		loads++
		return &config.Config{DatabasePath: filepath.Join("data", "from-env.db")}, nil
	}

	path, err := resolveDBPath("custom.db", load)
	require.NoError(t, err)
	assert.Equal(t, "custom.db", path)
	assert.Zero(t, loads)

	path, err = resolveDBPath("", load)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("data", "from-env.db"), path)
	assert.Equal(t, 1, loads)

	_, err = resolveDBPath("", func() (*config.Config, error) { return nil, errors.New("bad config file") })
	assert.EqualError(t, err, "bad config file")
}
