package referee

import (
	"fmt"
	"strings"
)

// Record is one referee row: per-season counts or career totals.
// An Age of 0 means the source had no age for the referee.
type Record struct {
	Name              string `json:"name"`
	Nationality       string `json:"nationality"`
	Age               int    `json:"age"`
	YellowCards       int    `json:"yellow_cards"`
	DoubleYellowCards int    `json:"double_yellow_cards"`
	RedCards          int    `json:"red_cards"`
	Penalties         int    `json:"penalties"`
	Appearances       int    `json:"appearances"`
}

// Combined is a career Record tagged with its competition.
type Combined struct {
	Record
	League string `json:"league"`
}

// TotalCards returns yellow + double yellow + red cards.
func (r Record) TotalCards() int {
	return r.YellowCards + r.DoubleYellowCards + r.RedCards
}

// AddCounts adds the five count fields of o to r. Identity fields are untouched.
func (r *Record) AddCounts(o Record) {
	r.YellowCards += o.YellowCards
	r.DoubleYellowCards += o.DoubleYellowCards
	r.RedCards += o.RedCards
	r.Penalties += o.Penalties
	r.Appearances += o.Appearances
}

// Totals sums the count fields of records into a Record with empty identity.
func Totals(records []Record) Record {
	var t Record
	for _, r := range records {
		t.AddCounts(r)
	}
	return t
}

// KeyMode selects which identity fields group records into one referee.
type KeyMode string

const (
	// KeyNameNationalityAge treats a differing recorded age as a different
	// referee, so a referee whose age is 0 in one season and known in another
	// yields two rows.
	KeyNameNationalityAge KeyMode = "name_nationality_age"

	// KeyNameNationality ignores age when grouping.
	KeyNameNationality KeyMode = "name_nationality"
)

// ParseKeyMode validates a key mode string. Empty selects KeyNameNationalityAge.
func ParseKeyMode(s string) (KeyMode, error) {
	switch KeyMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", KeyNameNationalityAge:
		return KeyNameNationalityAge, nil
	case KeyNameNationality:
		return KeyNameNationality, nil
	default:
		return "", fmt.Errorf("invalid key mode: %s (must be %q or %q)", s, KeyNameNationalityAge, KeyNameNationality)
	}
}

// Key identifies one referee within a competition.
type Key struct {
	Name        string
	Nationality string
	Age         int
}

// KeyOf returns the grouping key of r under mode m.
func (m KeyMode) KeyOf(r Record) Key {
	k := Key{Name: r.Name, Nationality: r.Nationality}
	if m != KeyNameNationality {
		k.Age = r.Age
	}
	return k
}

// Less orders keys by name, then nationality, then age.
func (k Key) Less(o Key) bool {
	if k.Name != o.Name {
		return k.Name < o.Name
	}
	if k.Nationality != o.Nationality {
		return k.Nationality < o.Nationality
	}
	return k.Age < o.Age
}
