package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"incidentserver/internal/dto"
	"incidentserver/internal/logger"
	"incidentserver/internal/repository/sqlite"
	"incidentserver/internal/service/incident"
	"incidentserver/internal/service/seed"
)

// CameraStats summarises the incidents recorded by one camera.
type CameraStats struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Location   string `json:"location"`
	Incidents  int    `json:"incidents"`
	Unresolved int    `json:"unresolved"`
}

func run(out io.Writer, dbPath string, reset, asJSON bool) error {
	if reset {
		if err := removeDatabase(dbPath); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sqlite.New(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	seeded, err := seed.LoadIfEmpty(db, time.Now())
	if err != nil {
		return err
	}
	if seeded {
		fmt.Fprintf(out, "Seeded %s\n", dbPath)
	} else {
		fmt.Fprintf(out, "%s already holds data, skipping seed (use --reset to reload)\n", dbPath)
	}

	stats, err := collectStats(incident.NewService(db, nil, nil, logger.NewNop()))
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLOCATION\tINCIDENTS\tUNRESOLVED")
	for _, s := range stats {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n", s.ID, s.Name, s.Location, s.Incidents, s.Unresolved)
	}
	return w.Flush()
}

func collectStats(svc *incident.Service) ([]CameraStats, error) {
	cameras, err := svc.ListCameras()
	if err != nil {
		return nil, err
	}
	incidents, err := svc.ListIncidents(dto.IncidentFilter{})
	if err != nil {
		return nil, err
	}

	byCamera := make(map[int64]*CameraStats, len(cameras))
	stats := make([]CameraStats, len(cameras))
	for i, c := range cameras {
		stats[i] = CameraStats{ID: c.ID, Name: c.Name, Location: c.Location}
		byCamera[c.ID] = &stats[i]
	}
	for _, inc := range incidents {
		s := byCamera[inc.CameraID]
		s.Incidents++
		if !inc.Resolved {
			s.Unresolved++
		}
	}
	return stats, nil
}

// removeDatabase deletes the database file and its WAL side files.
func removeDatabase(dbPath string) error {
	for _, suffix := range []string{"", "-wal", "-shm"} {
		if err := os.Remove(dbPath + suffix); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", dbPath+suffix, err)
		}
	}
	return nil
}
