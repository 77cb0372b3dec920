package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/referee-stats/internal/league"
	"github.com/pfrederiksen/referee-stats/internal/referee"
)

// CombinedDir and CombinedFile locate the cross-league dataset.
const (
	CombinedDir  = "uefa_combined"
	CombinedFile = "uefa_all_leagues_combined.csv"
)

// Storage handles the dataset files under one data directory
type Storage struct {
	dataDir string
}

// New creates a new Storage instance rooted at dataDir
func New(dataDir string) (*Storage, error) {
	dataDir, err := ExpandHome(dataDir)
	if err != nil {
		return nil, err
	}
	if dataDir == "" {
		return nil, fmt.Errorf("data directory must not be empty")
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// ExpandHome expands a leading ~/ to the home directory.
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// DataDir returns the root directory
func (s *Storage) DataDir() string {
	return s.dataDir
}

// SeasonPath returns e.g. champions_league/champions_league_2021_2022.csv
func (s *Storage) SeasonPath(l league.League, season league.Season) string {
	return filepath.Join(s.dataDir, l.Dir(), fmt.Sprintf("%s_%s.csv", l.Dir(), season.Label()))
}

// TotalPath returns e.g. champions_league/champions_league_total.csv
func (s *Storage) TotalPath(l league.League) string {
	return filepath.Join(s.dataDir, l.Dir(), l.Dir()+"_total.csv")
}

// CombinedPath returns the cross-league dataset path
func (s *Storage) CombinedPath() string {
	return filepath.Join(s.dataDir, CombinedDir, CombinedFile)
}

// LoadSeason loads one competition's rows for one season
func (s *Storage) LoadSeason(l league.League, season league.Season) ([]referee.Record, error) {
	return ReadRecords(s.SeasonPath(l, season))
}

// SaveSeason overwrites one competition's season file
func (s *Storage) SaveSeason(l league.League, season league.Season, records []referee.Record) error {
	return WriteRecords(s.SeasonPath(l, season), records)
}

// LoadSeasons loads every season of a competition, in season order.
// The first missing or malformed file aborts the load.
func (s *Storage) LoadSeasons(l league.League, seasons []league.Season) ([][]referee.Record, error) {
	all := make([][]referee.Record, 0, len(seasons))
	for _, season := range seasons {
		records, err := s.LoadSeason(l, season)
		if err != nil {
			return nil, err
		}
		all = append(all, records)
	}
	return all, nil
}

// LoadTotal loads a competition's career totals
func (s *Storage) LoadTotal(l league.League) ([]referee.Record, error) {
	return ReadRecords(s.TotalPath(l))
}

// SaveTotal overwrites a competition's career totals
func (s *Storage) SaveTotal(l league.League, records []referee.Record) error {
	return WriteRecords(s.TotalPath(l), records)
}

// LoadCombined loads the cross-league dataset
func (s *Storage) LoadCombined() ([]referee.Combined, error) {
	return ReadCombined(s.CombinedPath())
}

// SaveCombined overwrites the cross-league dataset
func (s *Storage) SaveCombined(records []referee.Combined) error {
	return WriteCombined(s.CombinedPath(), records)
}
