package cli

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pfrederiksen/referee-stats/internal/region"
)

// SortField names a region column to order the rollup by
type SortField string

// SortByRegion keeps the canonical Nordic, Southern, Western, Eastern order
const SortByRegion SortField = "region"

// sortKeys maps each numeric column to its value
var sortKeys = map[SortField]func(region.Aggregate) float64{
	"yellow_cards":             func(a region.Aggregate) float64 { return float64(a.YellowCards) },
	"double_yellow_cards":      func(a region.Aggregate) float64 { return float64(a.DoubleYellowCards) },
	"red_cards":                func(a region.Aggregate) float64 { return float64(a.RedCards) },
	"penalties":                func(a region.Aggregate) float64 { return float64(a.Penalties) },
	"appearances":              func(a region.Aggregate) float64 { return float64(a.Appearances) },
	"referees":                 func(a region.Aggregate) float64 { return float64(a.Referees) },
	"total_cards":              func(a region.Aggregate) float64 { return float64(a.TotalCards) },
	"yc_per_appearance":        func(a region.Aggregate) float64 { return a.YellowPerAppearance },
	"yyc_per_appearance":       func(a region.Aggregate) float64 { return a.DoubleYellowPerAppearance },
	"rc_per_appearance":        func(a region.Aggregate) float64 { return a.RedPerAppearance },
	"penalties_per_appearance": func(a region.Aggregate) float64 { return a.PenaltiesPerAppearance },
	"tc_per_appearance":        func(a region.Aggregate) float64 { return a.TotalCardsPerAppearance },
	"appearances_per_referee":  func(a region.Aggregate) float64 { return a.AppearancesPerReferee },
}

// ParseSortField validates a --sort value. Empty means SortByRegion.
func ParseSortField(s string) (SortField, error) {
	f := SortField(strings.ToLower(strings.TrimSpace(s)))
	if f == "" || f == SortByRegion {
		return SortByRegion, nil
	}
	if _, ok := sortKeys[f]; !ok {
		return "", fmt.Errorf("invalid sort field: %s", s)
	}
	return f, nil
}

// sortRegions orders aggregates by field, highest first. NaN values go last
// and ties keep their input order, which Rollup makes the canonical one.
func sortRegions(aggregates []region.Aggregate, field SortField) {
	key, ok := sortKeys[field]
	if !ok {
		return
	}

	sort.SliceStable(aggregates, func(i, j int) bool {
		a, b := key(aggregates[i]), key(aggregates[j])
		switch {
		case math.IsNaN(a):
			return false
		case math.IsNaN(b):
			return true
		default:
			return a > b
		}
	})
}
