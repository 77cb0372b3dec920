package region

import (
	"fmt"
	"sort"
	"strings"
)

// Region is a geographic grouping label.
type Region string

const (
	Nordic   Region = "Nordic"
	Southern Region = "Southern"
	Western  Region = "Western"
	Eastern  Region = "Eastern"
)

// Order is the display order of the default regions.
var Order = []Region{Nordic, Southern, Western, Eastern}

// Map assigns nationalities to regions. The zero Map maps nothing.
type Map struct {
	byNationality map[string]Region
}

// NewMap builds a Map from region to nationality lists. A nationality listed
// under two regions is an error.
func NewMap(groups map[Region][]string) (Map, error) {
	m := Map{byNationality: make(map[string]Region)}
	for r, nationalities := range groups {
		if strings.TrimSpace(string(r)) == "" {
			return Map{}, fmt.Errorf("region name must not be empty")
		}
		for _, n := range nationalities {
			n = strings.TrimSpace(n)
			if n == "" {
				continue
			}
			if prev, ok := m.byNationality[n]; ok && prev != r {
				return Map{}, fmt.Errorf("nationality %q assigned to both %s and %s", n, prev, r)
			}
			m.byNationality[n] = r
		}
	}
	return m, nil
}

// Lookup returns the region of nationality.
func (m Map) Lookup(nationality string) (Region, bool) {
	r, ok := m.byNationality[nationality]
	return r, ok
}

// Len returns the number of mapped nationalities.
func (m Map) Len() int {
	return len(m.byNationality)
}

// Regions returns the distinct regions, default regions first in Order.
func (m Map) Regions() []Region {
	seen := make(map[Region]bool)
	for _, r := range m.byNationality {
		seen[r] = true
	}
	regions := make([]Region, 0, len(seen))
	for r := range seen {
		regions = append(regions, r)
	}
	SortRegions(regions)
	return regions
}

// SortRegions sorts default regions by Order, followed by any others alphabetically.
func SortRegions(regions []Region) {
	sort.Slice(regions, func(i, j int) bool {
		ri, rj := rank(regions[i]), rank(regions[j])
		if ri != rj {
			return ri < rj
		}
		return regions[i] < regions[j]
	})
}

func rank(r Region) int {
	for i, o := range Order {
		if r == o {
			return i
		}
	}
	return len(Order)
}

// defaultGroups mirrors the nationality names used by transfermarkt.
var defaultGroups = map[Region][]string{
	Nordic: {
		"Denmark", "Finland", "Iceland", "Norway", "Sweden",
	},
	Southern: {
		"Albania", "Bosnia-Herzegovina", "Croatia", "Greece", "Italy",
		"Malta", "Montenegro", "North Macedonia", "Portugal", "Serbia",
		"Slovenia", "Spain",
	},
	Western: {
		"Austria", "Belgium", "France", "Germany", "Ireland", "Luxembourg",
		"Netherlands", "Switzerland", "England", "Scotland", "Wales",
	},
	Eastern: {
		"Armenia", "Azerbaijan", "Belarus", "Bulgaria", "Czech Republic",
		"Estonia", "Georgia", "Hungary", "Kazakhstan", "Kosovo", "Latvia",
		"Lithuania", "Moldova", "Poland", "Romania", "Russia", "Slovakia",
		"Ukraine", "Türkiye", "Cyprus",
	},
}

// DefaultMap returns the standard four-region map.
func DefaultMap() Map {
	m, err := NewMap(defaultGroups)
	if err != nil {
		panic(err)
	}
	return m
}
