package region

import (
	"math"
	"sort"

	"github.com/pfrederiksen/referee-stats/internal/referee"
)

// Aggregate is one region's summed counts and derived rates.
type Aggregate struct {
	Region            Region `json:"region"`
	YellowCards       int    `json:"yellow_cards"`
	DoubleYellowCards int    `json:"double_yellow_cards"`
	RedCards          int    `json:"red_cards"`
	Penalties         int    `json:"penalties"`
	Appearances       int    `json:"appearances"`
	Referees          int    `json:"referees"`
	TotalCards        int    `json:"total_cards"`

	YellowPerAppearance       float64 `json:"yc_per_appearance"`
	DoubleYellowPerAppearance float64 `json:"yyc_per_appearance"`
	RedPerAppearance          float64 `json:"rc_per_appearance"`
	PenaltiesPerAppearance    float64 `json:"penalties_per_appearance"`
	TotalCardsPerAppearance   float64 `json:"tc_per_appearance"`
	AppearancesPerReferee     float64 `json:"appearances_per_referee"`
}

// NewAggregate derives the rate fields from summed counts and a referee count.
func NewAggregate(r Region, counts referee.Record, referees int) Aggregate {
	a := Aggregate{
		Region:            r,
		YellowCards:       counts.YellowCards,
		DoubleYellowCards: counts.DoubleYellowCards,
		RedCards:          counts.RedCards,
		Penalties:         counts.Penalties,
		Appearances:       counts.Appearances,
		Referees:          referees,
		TotalCards:        counts.TotalCards(),
	}
	a.YellowPerAppearance = Ratio(a.YellowCards, a.Appearances)
	a.DoubleYellowPerAppearance = Ratio(a.DoubleYellowCards, a.Appearances)
	a.RedPerAppearance = Ratio(a.RedCards, a.Appearances)
	a.PenaltiesPerAppearance = Ratio(a.Penalties, a.Appearances)
	a.TotalCardsPerAppearance = Ratio(a.TotalCards, a.Appearances)
	a.AppearancesPerReferee = Ratio(a.Appearances, a.Referees)
	return a
}

// Ratio returns n/d, or NaN when d is zero.
func Ratio(n, d int) float64 {
	if d == 0 {
		return math.NaN()
	}
	return float64(n) / float64(d)
}

// Exclusion counts the rows dropped for one unmapped nationality.
type Exclusion struct {
	Nationality string `json:"nationality"`
	Rows        int    `json:"rows"`
}

// Result is the outcome of a rollup.
type Result struct {
	// Aggregates holds one entry per region that has at least one row.
	Aggregates []Aggregate `json:"regions"`
	// Excluded lists unmapped nationalities by name.
	Excluded []Exclusion `json:"excluded,omitempty"`
}

// ExcludedRows returns the number of rows left out of Aggregates.
func (r Result) ExcludedRows() int {
	n := 0
	for _, e := range r.Excluded {
		n += e.Rows
	}
	return n
}

// Referees returns the sum of Referees over all aggregates.
func (r Result) Referees() int {
	n := 0
	for _, a := range r.Aggregates {
		n += a.Referees
	}
	return n
}

// Rollup groups records by the region of their nationality. Every row counts
// as one referee, so a referee present in several competitions counts once
// per competition.
func Rollup(records []referee.Combined, m Map) Result {
	counts := make(map[Region]*referee.Record)
	referees := make(map[Region]int)
	excluded := make(map[string]int)

	for _, rec := range records {
		r, ok := m.Lookup(rec.Nationality)
		if !ok {
			excluded[rec.Nationality]++
			continue
		}
		c, ok := counts[r]
		if !ok {
			c = &referee.Record{}
			counts[r] = c
		}
		c.AddCounts(rec.Record)
		referees[r]++
	}

	regions := make([]Region, 0, len(counts))
	for r := range counts {
		regions = append(regions, r)
	}
	SortRegions(regions)

	result := Result{Aggregates: make([]Aggregate, 0, len(regions))}
	for _, r := range regions {
		result.Aggregates = append(result.Aggregates, NewAggregate(r, *counts[r], referees[r]))
	}

	for n, rows := range excluded {
		result.Excluded = append(result.Excluded, Exclusion{Nationality: n, Rows: rows})
	}
	sort.Slice(result.Excluded, func(i, j int) bool {
		return result.Excluded[i].Nationality < result.Excluded[j].Nationality
	})

	return result
}
