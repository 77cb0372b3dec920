package notifier

import (
	"fmt"
	"math"
	"strings"

	"github.com/pfrederiksen/referee-stats/internal/region"
)

// MaxLength is the Twitter status limit
const MaxLength = 280

// Notifier defines the interface for publishing a region summary
type Notifier interface {
	// Notify publishes the summary of the given aggregates
	Notify(aggregates []region.Aggregate) error
}

// FormatSummary formats region rates as a status of at most MaxLength runes
func FormatSummary(aggregates []region.Aggregate) string {
	var b strings.Builder
	b.WriteString("🟨 UEFA referees 2021-2025: cards per appearance by region\n\n")

	for _, a := range aggregates {
		fmt.Fprintf(&b, "%s: %s 🟨 %s 🟥 %s pen (%d refs)\n",
			a.Region,
			rate(a.YellowPerAppearance),
			rate(a.RedPerAppearance),
			rate(a.PenaltiesPerAppearance),
			a.Referees)
	}

	b.WriteString("\n#UCL #UEL #UECL #Referees")

	summary := b.String()
	if runes := []rune(summary); len(runes) > MaxLength {
		summary = string(runes[:MaxLength-3]) + "..."
	}
	return summary
}

func rate(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}
