// Package strictness derives per-referee discipline metrics from career rows.
package strictness

import (
	"math"
	"sort"

	"github.com/pfrederiksen/referee-stats/internal/referee"
)

// Weights scores each sanction type for the strictness index.
type Weights struct {
	Yellow       float64
	DoubleYellow float64
	Red          float64
	Penalty      float64
}

// DefaultWeights rates a red card five times a yellow.
var DefaultWeights = Weights{Yellow: 1, DoubleYellow: 3, Red: 5, Penalty: 3}

// Referee is a combined row with its derived metrics, rounded to two decimals.
type Referee struct {
	referee.Combined
	TotalCards       int     `json:"total_cards"`
	CardsPerGame     float64 `json:"cards_per_game"`
	PenaltiesPerGame float64 `json:"penalties_per_game"`
	StrictnessIndex  float64 `json:"strictness_index"`
}

// Compute returns metrics for every row with at least one appearance, in input order.
//
// CardsPerGame counts yellow and straight red cards only.
func Compute(records []referee.Combined, w Weights) []Referee {
	out := make([]Referee, 0, len(records))
	for _, r := range records {
		if r.Appearances <= 0 {
			continue
		}
		games := float64(r.Appearances)
		score := float64(r.YellowCards)*w.Yellow +
			float64(r.DoubleYellowCards)*w.DoubleYellow +
			float64(r.RedCards)*w.Red +
			float64(r.Penalties)*w.Penalty

		out = append(out, Referee{
			Combined:         r,
			TotalCards:       r.TotalCards(),
			CardsPerGame:     round2(float64(r.YellowCards+r.RedCards) / games),
			PenaltiesPerGame: round2(float64(r.Penalties) / games),
			StrictnessIndex:  round2(score / games),
		})
	}
	return out
}

// Top returns the n referees with the most total cards. Ties keep input order.
// n <= 0 returns all referees sorted.
func Top(refs []Referee, n int) []Referee {
	sorted := make([]Referee, len(refs))
	copy(sorted, refs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalCards > sorted[j].TotalCards
	})
	if n > 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
