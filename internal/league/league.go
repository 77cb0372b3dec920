// Package league describes the three UEFA club competitions and the four
// seasons covered by the datasets.
package league

import (
	"fmt"
	"strconv"
	"strings"
)

// League is one UEFA club competition.
type League struct {
	// Slug is the dataset directory prefix, e.g. "champions".
	Slug string
	// Tag is the literal written to the league column of the combined file.
	Tag string
	// Path and Code locate the referee table on transfermarkt.
	Path string
	Code string
}

var (
	Champions  = League{Slug: "champions", Tag: "Champions", Path: "uefa-champions-league", Code: "CL"}
	Conference = League{Slug: "conference", Tag: "Conference", Path: "uefa-conference-league", Code: "UCOL"}
	Europa     = League{Slug: "europa", Tag: "Europa", Path: "uefa-europa-league", Code: "EL"}
)

// All lists the competitions in combined-file order.
var All = []League{Champions, Conference, Europa}

// Dir returns the dataset directory name, e.g. "champions_league".
func (l League) Dir() string {
	return l.Slug + "_league"
}

func (l League) String() string {
	return l.Tag
}

// Parse accepts a slug, tag, directory name or transfermarkt code, case-insensitively.
func Parse(s string) (League, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, l := range All {
		if norm == l.Slug || norm == strings.ToLower(l.Tag) || norm == l.Dir() || norm == strings.ToLower(l.Code) {
			return l, nil
		}
	}
	return League{}, fmt.Errorf("unknown league: %s (must be champions, conference or europa)", s)
}

// Select returns the leagues named by s, or All when s is empty or "all".
func Select(s string) ([]League, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if norm == "" || norm == "all" {
		return All, nil
	}
	l, err := Parse(norm)
	if err != nil {
		return nil, err
	}
	return []League{l}, nil
}

// Season is identified by the calendar year it starts in.
type Season int

// Seasons lists 2021-2022 through 2024-2025.
var Seasons = []Season{2021, 2022, 2023, 2024}

// ID is the transfermarkt saison_id.
func (s Season) ID() string {
	return strconv.Itoa(int(s))
}

// Label is the file name suffix, e.g. "2021_2022".
func (s Season) Label() string {
	return fmt.Sprintf("%d_%d", int(s), int(s)+1)
}

func (s Season) String() string {
	return fmt.Sprintf("%d-%d", int(s), int(s)+1)
}

// ParseSeason accepts "2021", "2021_2022" or "2021-2022".
func ParseSeason(s string) (Season, error) {
	norm := strings.TrimSpace(s)
	if i := strings.IndexAny(norm, "_-/"); i > 0 {
		norm = norm[:i]
	}
	year, err := strconv.Atoi(norm)
	if err != nil {
		return 0, fmt.Errorf("invalid season: %s", s)
	}
	for _, season := range Seasons {
		if int(season) == year {
			return season, nil
		}
	}
	return 0, fmt.Errorf("unsupported season: %s (must be 2021 through 2024)", s)
}

// SelectSeasons returns the season named by s, or Seasons when s is empty or "all".
func SelectSeasons(s string) ([]Season, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if norm == "" || norm == "all" {
		return Seasons, nil
	}
	season, err := ParseSeason(norm)
	if err != nil {
		return nil, err
	}
	return []Season{season}, nil
}
