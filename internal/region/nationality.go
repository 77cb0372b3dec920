package region

import (
	"math"
	"sort"

	"github.com/pfrederiksen/referee-stats/internal/referee"
)

// NationalityAggregate is the per-country breakdown used for the
// yellow-cards-per-appearance ranking.
type NationalityAggregate struct {
	Nationality         string  `json:"nationality"`
	Region              Region  `json:"region,omitempty"`
	YellowCards         int     `json:"yellow_cards"`
	DoubleYellowCards   int     `json:"double_yellow_cards"`
	RedCards            int     `json:"red_cards"`
	Penalties           int     `json:"penalties"`
	Appearances         int     `json:"appearances"`
	Referees            int     `json:"referees"`
	YellowPerAppearance float64 `json:"yc_per_appearance"`
}

// ByNationality sums records per nationality and ranks the result by yellow
// cards per appearance, highest first. NaN rates sort last; ties keep
// nationality order. Nationalities missing from m get an empty Region.
func ByNationality(records []referee.Record, m Map) []NationalityAggregate {
	groups := make(map[string]*NationalityAggregate)
	for _, rec := range records {
		g, ok := groups[rec.Nationality]
		if !ok {
			r, _ := m.Lookup(rec.Nationality)
			g = &NationalityAggregate{Nationality: rec.Nationality, Region: r}
			groups[rec.Nationality] = g
		}
		g.YellowCards += rec.YellowCards
		g.DoubleYellowCards += rec.DoubleYellowCards
		g.RedCards += rec.RedCards
		g.Penalties += rec.Penalties
		g.Appearances += rec.Appearances
		g.Referees++
	}

	out := make([]NationalityAggregate, 0, len(groups))
	for _, g := range groups {
		g.YellowPerAppearance = Ratio(g.YellowCards, g.Appearances)
		out = append(out, *g)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].YellowPerAppearance, out[j].YellowPerAppearance
		switch {
		case math.IsNaN(a) && math.IsNaN(b):
			return out[i].Nationality < out[j].Nationality
		case math.IsNaN(a):
			return false
		case math.IsNaN(b):
			return true
		case a != b:
			return a > b
		default:
			return out[i].Nationality < out[j].Nationality
		}
	})
	return out
}
