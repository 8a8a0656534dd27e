// Package storage persists extracted election records as per-year JSON
// files and loads them back for report rendering.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"grenada-elections/models"
)

const (
	summaryFile      = "election_general.json"
	constituencyFile = "election_constituency.json"
)

// ErrNoYears is returned when the results directory holds no loadable
// year data.
var ErrNoYears = errors.New("no election data found in results directory")

// Store reads and writes the per-year results directory layout:
// <dir>/<year>/election_general.json plus an optional
// election_constituency.json next to it.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// SummaryPath returns where a year's summary file lives.
func (s *Store) SummaryPath(year int) string {
	return filepath.Join(s.dir, strconv.Itoa(year), summaryFile)
}

// ConstituencyPath returns where a year's constituency file lives.
func (s *Store) ConstituencyPath(year int) string {
	return filepath.Join(s.dir, strconv.Itoa(year), constituencyFile)
}

// IndexPath returns where the rendered report lives.
func (s *Store) IndexPath() string {
	return filepath.Join(s.dir, "index.html")
}

// WriteSummary persists a year's party results.
func (s *Store) WriteSummary(data *models.ElectionYear) error {
	return s.writeJSON(s.SummaryPath(data.Year), data)
}

// WriteConstituencies persists a year's constituency breakdown. Callers
// only invoke this when extraction produced at least one group.
func (s *Store) WriteConstituencies(data *models.ConstituencyReport) error {
	return s.writeJSON(s.ConstituencyPath(data.Year), data)
}

func (s *Store) writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// YearData pairs a year's summary with its optional constituency
// breakdown.
type YearData struct {
	Year           int
	Summary        *models.ElectionYear
	Constituencies *models.ConstituencyReport
}

// LoadAllYears loads every stored year, newest first. Year directories
// without a summary file are skipped with a warning; a missing
// constituency file is the normal case for older elections.
func (s *Store) LoadAllYears() ([]YearData, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read results directory %s: %w", s.dir, err)
	}

	var years []int
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		year, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	var loaded []YearData
	for _, year := range years {
		var summary models.ElectionYear
		if err := readJSON(s.SummaryPath(year), &summary); err != nil {
			log.Printf("skipping %d: %v\n", year, err)
			continue
		}

		data := YearData{Year: year, Summary: &summary}

		var constituencies models.ConstituencyReport
		err := readJSON(s.ConstituencyPath(year), &constituencies)
		switch {
		case err == nil:
			data.Constituencies = &constituencies
		case !errors.Is(err, os.ErrNotExist):
			log.Printf("ignoring constituency data for %d: %v\n", year, err)
		}

		loaded = append(loaded, data)
	}

	if len(loaded) == 0 {
		return nil, ErrNoYears
	}
	return loaded, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}
