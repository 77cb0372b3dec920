package referee

import "testing"

func TestRecord_TotalCards(t *testing.T) {
	r := Record{YellowCards: 11, DoubleYellowCards: 1, RedCards: 2, Penalties: 4}
	if got := r.TotalCards(); got != 14 {
		t.Errorf("TotalCards() = %d, want 14", got)
	}
}

func TestRecord_AddCounts(t *testing.T) {
	r := Record{Name: "Jane Doe", Nationality: "Germany", Age: 30, YellowCards: 2, Penalties: 1, Appearances: 10}
	r.AddCounts(Record{Name: "Other", Age: 99, YellowCards: 1, Appearances: 8})

	want := Record{Name: "Jane Doe", Nationality: "Germany", Age: 30, YellowCards: 3, Penalties: 1, Appearances: 18}
	if r != want {
		t.Errorf("AddCounts() = %+v, want %+v", r, want)
	}
}

func TestTotals(t *testing.T) {
	got := Totals([]Record{
		{Name: "A", YellowCards: 1, DoubleYellowCards: 1, RedCards: 1, Penalties: 1, Appearances: 1},
		{Name: "B", YellowCards: 2, DoubleYellowCards: 0, RedCards: 3, Penalties: 0, Appearances: 5},
	})
	want := Record{YellowCards: 3, DoubleYellowCards: 1, RedCards: 4, Penalties: 1, Appearances: 6}
	if got != want {
		t.Errorf("Totals() = %+v, want %+v", got, want)
	}

	if got := Totals(nil); got != (Record{}) {
		t.Errorf("Totals(nil) = %+v, want zero", got)
	}
}

func TestParseKeyMode(t *testing.T) {
	tests := []struct {
		in      string
		want    KeyMode
		wantErr bool
	}{
		{"", KeyNameNationalityAge, false},
		{"name_nationality_age", KeyNameNationalityAge, false},
		{" NAME_NATIONALITY ", KeyNameNationality, false},
		{"name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKeyMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKeyMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseKeyMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestKeyMode_KeyOf(t *testing.T) {
	known := Record{Name: "John Brooks", Nationality: "England", Age: 35}
	unknown := Record{Name: "John Brooks", Nationality: "England", Age: 0}

	if KeyNameNationalityAge.KeyOf(known) == KeyNameNationalityAge.KeyOf(unknown) {
		t.Error("name_nationality_age keys should differ when ages differ")
	}
	if KeyNameNationality.KeyOf(known) != KeyNameNationality.KeyOf(unknown) {
		t.Error("name_nationality keys should match when only ages differ")
	}
}

func TestKey_Less(t *testing.T) {
	tests := []struct {
		a, b Key
		want bool
	}{
		{Key{Name: "A"}, Key{Name: "B"}, true},
		{Key{Name: "B"}, Key{Name: "A"}, false},
		{Key{Name: "A", Nationality: "Malta"}, Key{Name: "A", Nationality: "Spain"}, true},
		{Key{Name: "A", Nationality: "Malta", Age: 0}, Key{Name: "A", Nationality: "Malta", Age: 41}, true},
		{Key{Name: "A"}, Key{Name: "A"}, false},
	}

	for _, tt := range tests {
		if got := tt.a.Less(tt.b); got != tt.want {
			t.Errorf("%+v.Less(%+v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
