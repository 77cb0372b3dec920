package aggregate

import (
	"sort"

	"github.com/pfrederiksen/referee-stats/internal/league"
	"github.com/pfrederiksen/referee-stats/internal/referee"
)

// Careers groups the rows of all seasons by mode's key and sums their counts.
// Output rows are ordered by key.
//
// Under referee.KeyNameNationality the career row keeps the highest age seen
// in the group, so a known age wins over the 0 placeholder.
func Careers(seasons [][]referee.Record, mode referee.KeyMode) []referee.Record {
	groups := make(map[referee.Key]*referee.Record)
	for _, rows := range seasons {
		for _, r := range rows {
			key := mode.KeyOf(r)
			career, ok := groups[key]
			if !ok {
				career = &referee.Record{Name: r.Name, Nationality: r.Nationality, Age: r.Age}
				groups[key] = career
			}
			if r.Age > career.Age {
				career.Age = r.Age
			}
			career.AddCounts(r)
		}
	}

	keys := make([]referee.Key, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	careers := make([]referee.Record, 0, len(keys))
	for _, k := range keys {
		careers = append(careers, *groups[k])
	}
	return careers
}

// LeagueTotals is one competition's career rows.
type LeagueTotals struct {
	League  league.League
	Records []referee.Record
}

// Combine tags every row with its league and concatenates the sets in the
// order given. Rows are neither merged nor removed.
func Combine(sets []LeagueTotals) []referee.Combined {
	n := 0
	for _, s := range sets {
		n += len(s.Records)
	}

	combined := make([]referee.Combined, 0, n)
	for _, s := range sets {
		for _, r := range s.Records {
			combined = append(combined, referee.Combined{Record: r, League: s.League.Tag})
		}
	}
	return combined
}
