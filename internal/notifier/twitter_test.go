package notifier

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck

	"github.com/pfrederiksen/referee-stats/internal/referee"
	"github.com/pfrederiksen/referee-stats/internal/region"
)

func sampleAggregates() []region.Aggregate {
	return []region.Aggregate{
		region.NewAggregate(region.Nordic, referee.Record{YellowCards: 120, RedCards: 3, Penalties: 10, Appearances: 40}, 6),
		region.NewAggregate(region.Southern, referee.Record{YellowCards: 480, RedCards: 20, Penalties: 35, Appearances: 110}, 21),
		region.NewAggregate(region.Western, referee.Record{YellowCards: 300, RedCards: 9, Penalties: 22, Appearances: 90}, 18),
		region.NewAggregate(region.Eastern, referee.Record{}, 2),
	}
}

type fakeStatuses struct {
	posted []string
	err    error
}

func (f *fakeStatuses) Update(status string, _ *twitter.StatusUpdateParams) (*twitter.Tweet, *http.Response, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	f.posted = append(f.posted, status)
	return &twitter.Tweet{Text: status}, nil, nil
}

func TestFormatSummary(t *testing.T) {
	summary := FormatSummary(sampleAggregates())

	for _, want := range []string{"Nordic: 3.00", "Southern: 4.36", "0.18 🟥", "(21 refs)", "Eastern: n/a", "#Referees"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
	if n := utf8.RuneCountInString(summary); n > MaxLength {
		t.Errorf("summary length = %d, want <= %d", n, MaxLength)
	}
}

func TestFormatSummary_Truncates(t *testing.T) {
	var aggs []region.Aggregate
	for i := 0; i < 12; i++ {
		aggs = append(aggs, region.NewAggregate(region.Region(strings.Repeat("X", 20)), referee.Record{YellowCards: 1, Appearances: 1}, 1))
	}

	summary := FormatSummary(aggs)
	if n := utf8.RuneCountInString(summary); n != MaxLength {
		t.Errorf("truncated length = %d, want %d", n, MaxLength)
	}
	if !strings.HasSuffix(summary, "...") {
		t.Error("truncated summary should end with ellipsis")
	}
}

func TestTwitterNotifier_Notify(t *testing.T) {
	fake := &fakeStatuses{}
	n := &TwitterNotifier{statuses: fake}

	if err := n.Notify(sampleAggregates()); err != nil {
		t.Fatalf("Notify() error: %v", err)
	}
	if len(fake.posted) != 1 {
		t.Fatalf("posted %d statuses, want 1", len(fake.posted))
	}

	fake.err = errors.New("rate limited")
	if err := n.Notify(sampleAggregates()); err == nil {
		t.Error("Notify() expected error when the API fails")
	}

	if err := n.Notify(nil); err == nil {
		t.Error("Notify(nil) expected error")
	}
}

func TestNewTwitterNotifier_MissingCredentials(t *testing.T) {
	t.Setenv("TWITTER_API_KEY", "")
	t.Setenv("TWITTER_API_SECRET", "secret")
	t.Setenv("TWITTER_ACCESS_TOKEN", "token")
	t.Setenv("TWITTER_ACCESS_SECRET", "secret")

	if _, err := NewTwitterNotifier(); err == nil {
		t.Error("NewTwitterNotifier() expected error with missing API key")
	}
}

func TestNewTwitterNotifier_WithCredentials(t *testing.T) {
	t.Setenv("TWITTER_API_KEY", "key")
	t.Setenv("TWITTER_API_SECRET", "secret")
	t.Setenv("TWITTER_ACCESS_TOKEN", "token")
	t.Setenv("TWITTER_ACCESS_SECRET", "secret")

	n, err := NewTwitterNotifier()
	if err != nil {
		t.Fatalf("NewTwitterNotifier() error: %v", err)
	}
	if n.statuses == nil {
		t.Error("statuses client is nil")
	}
}

func TestDryRunNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewDryRunNotifier(&buf)

	if err := n.Notify(sampleAggregates()); err != nil {
		t.Fatalf("Notify() error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "--- Status ---") || !strings.Contains(out, "Length:") {
		t.Errorf("dry run output = %q", out)
	}
}
