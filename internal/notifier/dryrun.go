package notifier

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/pfrederiksen/referee-stats/internal/region"
)

// DryRunNotifier prints what would be posted without actually posting
type DryRunNotifier struct {
	w io.Writer
}

// NewDryRunNotifier creates a new dry-run notifier writing to w
func NewDryRunNotifier(w io.Writer) *DryRunNotifier {
	return &DryRunNotifier{w: w}
}

// Notify prints the status that would be posted
func (n *DryRunNotifier) Notify(aggregates []region.Aggregate) error {
	status := FormatSummary(aggregates)
	if _, err := fmt.Fprintf(n.w, "--- Status ---\n%s\n\n(Length: %d characters)\n", status, utf8.RuneCountInString(status)); err != nil {
		return fmt.Errorf("writing dry run: %w", err)
	}
	return nil
}
