package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"incidentserver/internal/dto"
	"incidentserver/internal/model"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedCamera(t *testing.T, db *DB) *model.Camera {
	t.Helper()

	camera, err := db.Cameras().Create(model.Camera{Name: "Camera - 01", Location: "Shop Floor A"})
	require.NoError(t, err)
	return camera
}

func testIncident(cameraID int64, start time.Time) model.Incident {
	return model.Incident{
		CameraID:     cameraID,
		Type:         "Gun Threat",
		TsStart:      start,
		TsEnd:        start.Add(2 * time.Minute),
		ThumbnailURL: "https://example.com/thumb.jpg",
	}
}

func TestDatabase_CreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "incidents.db")

	db, err := New(dbPath)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestDatabase_InMemory(t *testing.T) {
	db, err := New(":memory:")
	require.NoError(t, err)
	defer db.Close()

	camera, err := db.Cameras().Create(model.Camera{Name: "Camera - 03", Location: "Entrance"})
	require.NoError(t, err)

	found, err := db.Cameras().GetByID(camera.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Entrance", found.Location)
}

func TestCameraRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := db.Cameras()

	first := seedCamera(t, db)
	second, err := repo.Create(model.Camera{Name: "Camera - 02", Location: "Vault"})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Equal(t, []model.Camera{*first, *second}, all)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	missing, err := repo.GetByID(999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIncidentRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	camera := seedCamera(t, db)
	repo := db.Incidents()

	start := time.Date(2025, 6, 15, 17, 45, 0, 0, time.UTC)
	created, err := repo.Create(testIncident(camera.ID, start))
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.False(t, created.Resolved)

	found, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.Type, found.Type)
	assert.Equal(t, camera.ID, found.CameraID)
	assert.True(t, found.TsStart.Equal(start))
	assert.True(t, found.TsEnd.Equal(start.Add(2*time.Minute)))
	assert.False(t, found.Resolved)

	missing, err := repo.GetByID(999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIncidentRepository_ForeignKeyRejectsUnknownCamera(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.Incidents().Create(testIncident(42, time.Now()))
	assert.Error(t, err)
}

func TestIncidentRepository_ResolveAndFilter(t *testing.T) {
	db := setupTestDB(t)
	camera := seedCamera(t, db)
	repo := db.Incidents()

	start := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	var ids []int64
	for i := 0; i < 4; i++ {
		created, err := repo.Create(testIncident(camera.ID, start.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	first, err := repo.Resolve(ids[1])
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.True(t, first.Resolved)

	second, err := repo.Resolve(ids[1])
	require.NoError(t, err)
	assert.True(t, second.Resolved)
	assert.Equal(t, ids[1], second.ID)

	resolved, err := repo.GetAll(dto.ResolvedFilter(true))
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, ids[1], resolved[0].ID)

	open, err := repo.GetAll(dto.ResolvedFilter(false))
	require.NoError(t, err)
	assert.Len(t, open, 3)

	all, err := repo.GetAll(dto.IncidentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestIncidentRepository_UpdateMerges(t *testing.T) {
	db := setupTestDB(t)
	camera := seedCamera(t, db)
	repo := db.Incidents()

	start := time.Date(2025, 6, 15, 12, 15, 0, 0, time.UTC)
	created, err := repo.Create(testIncident(camera.ID, start))
	require.NoError(t, err)

	kind := "Face Recognised"
	updated, err := repo.Update(created.ID, model.IncidentPatch{Type: &kind}, nil)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, kind, updated.Type)
	assert.Equal(t, created.ThumbnailURL, updated.ThumbnailURL)

	stored, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, kind, stored.Type)
	assert.True(t, stored.TsStart.Equal(start))

	missing, err := repo.Update(999, model.IncidentPatch{Type: &kind}, nil)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIncidentRepository_QueryErrorIsWrapped(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("SELECT (.+) FROM incidents").WillReturnError(errors.New("disk I/O error"))

	repo := NewIncidentRepository(NewWithConn(conn))
	_, err = repo.GetAll(dto.IncidentFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query incidents")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncidentRepository_UpdateMissingRollsBack(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM incidents WHERE id = ?").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "camera_id", "type", "ts_start", "ts_end", "thumbnail_url", "resolved"}))
	mock.ExpectRollback()

	repo := NewIncidentRepository(NewWithConn(conn))
	updated, err := repo.Resolve(7)
	require.NoError(t, err)
	assert.Nil(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncidentRepository_UpdateExecFailureRollsBack(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	start := time.Date(2025, 6, 15, 19, 45, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM incidents WHERE id = ?").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "camera_id", "type", "ts_start", "ts_end", "thumbnail_url", "resolved"}).
			AddRow(int64(3), int64(2), "Gun Threat", start, start.Add(time.Minute), "https://example.com/t.jpg", false))
	mock.ExpectExec("UPDATE incidents").WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	repo := NewIncidentRepository(NewWithConn(conn))
	_, err = repo.Resolve(3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to update incident")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCameraRepository_InsertErrorIsWrapped(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec("INSERT INTO cameras").
		WithArgs("Camera - 01", "Shop Floor A").
		WillReturnError(errors.New("constraint failed"))

	repo := NewCameraRepository(NewWithConn(conn))
	_, err = repo.Create(model.Camera{Name: "Camera - 01", Location: "Shop Floor A"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert camera")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncidentRepository_UpdateCheckRejectionRollsBack(t *testing.T) {
	db := setupTestDB(t)
	camera := seedCamera(t, db)
	repo := db.Incidents()

	start := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	created, err := repo.Create(testIncident(camera.ID, start))
	require.NoError(t, err)

	errRejected := errors.New("rejected")
	kind := "False Alarm"
	updated, err := repo.Update(created.ID, model.IncidentPatch{Type: &kind}, func(merged model.Incident) error {
		assert.Equal(t, kind, merged.Type)
		return errRejected
	})
	require.ErrorIs(t, err, errRejected)
	assert.Nil(t, updated)

	stored, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gun Threat", stored.Type)
}

func TestIncidentRepository_UpdateCheckRunsBeforeWrite(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	start := time.Date(2025, 6, 15, 9, 22, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM incidents WHERE id = ?").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "camera_id", "type", "ts_start", "ts_end", "thumbnail_url", "resolved"}).
			AddRow(int64(4), int64(2), "Multiple Events", start, start.Add(3*time.Minute), "https://example.com/t.jpg", false))
	mock.ExpectRollback()

	repo := NewIncidentRepository(NewWithConn(conn))
	_, err = repo.Update(4, model.ResolvePatch(), func(model.Incident) error { return errors.New("no") })
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
