package region

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/referee-stats/internal/referee"
)

func combined(name, nationality string, appearances int, league string) referee.Combined {
	return referee.Combined{
		Record: referee.Record{Name: name, Nationality: nationality, Appearances: appearances},
		League: league,
	}
}

func TestDefaultMap(t *testing.T) {
	m := DefaultMap()

	tests := map[string]Region{
		"Germany":            Western,
		"England":            Western,
		"Norway":             Nordic,
		"Bosnia-Herzegovina": Southern,
		"Türkiye":            Eastern,
		"Cyprus":             Eastern,
	}
	for nationality, want := range tests {
		got, ok := m.Lookup(nationality)
		assert.True(t, ok, "%s should be mapped", nationality)
		assert.Equal(t, want, got, "%s region", nationality)
	}

	_, ok := m.Lookup("Israel")
	assert.False(t, ok)
	assert.Equal(t, Order, m.Regions())
	assert.Equal(t, 48, m.Len())
}

func TestNewMap_DuplicateNationality(t *testing.T) {
	_, err := NewMap(map[Region][]string{
		Nordic:  {"Denmark"},
		Western: {"Denmark"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Denmark")
}

func TestNewMap_EmptyRegion(t *testing.T) {
	_, err := NewMap(map[Region][]string{"": {"Denmark"}})
	require.Error(t, err)
}

func TestMap_Regions_CustomAfterDefaults(t *testing.T) {
	m, err := NewMap(map[Region][]string{
		"Atlantic": {"Portugal"},
		Eastern:    {"Poland"},
		"Balkan":   {"Serbia"},
	})
	require.NoError(t, err)
	assert.Equal(t, []Region{Eastern, "Atlantic", "Balkan"}, m.Regions())
}

func TestRollup_WesternExample(t *testing.T) {
	records := []referee.Combined{
		combined("Jane Doe", "Germany", 18, "Champions"),
		combined("Max Muster", "Austria", 22, "Europa"),
	}

	result := Rollup(records, DefaultMap())

	require.Len(t, result.Aggregates, 1)
	w := result.Aggregates[0]
	assert.Equal(t, Western, w.Region)
	assert.Equal(t, 40, w.Appearances)
	assert.Equal(t, 2, w.Referees)
	assert.InDelta(t, 20.0, w.AppearancesPerReferee, 1e-9)
	assert.Empty(t, result.Excluded)
}

func TestRollup_SumsAndRates(t *testing.T) {
	records := []referee.Combined{
		{Record: referee.Record{Name: "A", Nationality: "Spain", YellowCards: 10, DoubleYellowCards: 1, RedCards: 1, Penalties: 2, Appearances: 4}, League: "Champions"},
		{Record: referee.Record{Name: "B", Nationality: "Italy", YellowCards: 6, DoubleYellowCards: 0, RedCards: 1, Penalties: 0, Appearances: 4}, League: "Europa"},
		{Record: referee.Record{Name: "C", Nationality: "Sweden", YellowCards: 3, Appearances: 3}, League: "Conference"},
	}

	result := Rollup(records, DefaultMap())

	require.Len(t, result.Aggregates, 2)
	assert.Equal(t, Nordic, result.Aggregates[0].Region)

	s := result.Aggregates[1]
	assert.Equal(t, Southern, s.Region)
	assert.Equal(t, 16, s.YellowCards)
	assert.Equal(t, 1, s.DoubleYellowCards)
	assert.Equal(t, 2, s.RedCards)
	assert.Equal(t, 2, s.Penalties)
	assert.Equal(t, 8, s.Appearances)
	assert.Equal(t, 2, s.Referees)
	assert.Equal(t, 19, s.TotalCards)
	assert.InDelta(t, 2.0, s.YellowPerAppearance, 1e-9)
	assert.InDelta(t, 0.125, s.DoubleYellowPerAppearance, 1e-9)
	assert.InDelta(t, 0.25, s.RedPerAppearance, 1e-9)
	assert.InDelta(t, 0.25, s.PenaltiesPerAppearance, 1e-9)
	assert.InDelta(t, 19.0/8.0, s.TotalCardsPerAppearance, 1e-9)
	assert.InDelta(t, 4.0, s.AppearancesPerReferee, 1e-9)
}

func TestRollup_UnmappedNationalitiesExcluded(t *testing.T) {
	records := []referee.Combined{
		combined("A", "Germany", 5, "Champions"),
		combined("B", "Israel", 7, "Champions"),
		combined("C", "Israel", 2, "Europa"),
		combined("D", "Faroe Islands", 1, "Conference"),
		combined("E", "Norway", 3, "Conference"),
	}

	result := Rollup(records, DefaultMap())

	mapped := 0
	for _, r := range records {
		if _, ok := DefaultMap().Lookup(r.Nationality); ok {
			mapped++
		}
	}
	assert.Equal(t, mapped, result.Referees())
	assert.Equal(t, 3, result.ExcludedRows())
	assert.Equal(t, []Exclusion{
		{Nationality: "Faroe Islands", Rows: 1},
		{Nationality: "Israel", Rows: 2},
	}, result.Excluded)
}

func TestRollup_InjectedMap(t *testing.T) {
	m, err := NewMap(map[Region][]string{"Islands": {"Malta", "Iceland"}})
	require.NoError(t, err)

	result := Rollup([]referee.Combined{
		combined("A", "Malta", 2, "Conference"),
		combined("B", "Iceland", 4, "Conference"),
		combined("C", "Germany", 9, "Champions"),
	}, m)

	require.Len(t, result.Aggregates, 1)
	assert.Equal(t, Region("Islands"), result.Aggregates[0].Region)
	assert.Equal(t, 6, result.Aggregates[0].Appearances)
	assert.Equal(t, 1, result.ExcludedRows())
}

func TestRollup_ZeroAppearancesIsNaN(t *testing.T) {
	result := Rollup([]referee.Combined{
		{Record: referee.Record{Name: "A", Nationality: "Malta", YellowCards: 1}, League: "Conference"},
	}, DefaultMap())

	require.Len(t, result.Aggregates, 1)
	a := result.Aggregates[0]
	assert.True(t, math.IsNaN(a.YellowPerAppearance))
	assert.True(t, math.IsNaN(a.TotalCardsPerAppearance))
	assert.Equal(t, 0.0, a.AppearancesPerReferee)
}

func TestNewAggregate_ZeroReferees(t *testing.T) {
	a := NewAggregate(Nordic, referee.Record{}, 0)
	assert.True(t, math.IsNaN(a.AppearancesPerReferee))
	assert.True(t, math.IsNaN(a.PenaltiesPerAppearance))
}

func TestRollup_Empty(t *testing.T) {
	result := Rollup(nil, DefaultMap())
	assert.Empty(t, result.Aggregates)
	assert.Empty(t, result.Excluded)
	assert.Equal(t, 0, result.Referees())
}

func TestRatio(t *testing.T) {
	assert.InDelta(t, 0.5, Ratio(1, 2), 1e-9)
	assert.True(t, math.IsNaN(Ratio(0, 0)))
	assert.True(t, math.IsNaN(Ratio(3, 0)))
}

func TestByNationality(t *testing.T) {
	records := []referee.Record{
		{Name: "A", Nationality: "Spain", YellowCards: 10, Appearances: 5},
		{Name: "B", Nationality: "Spain", YellowCards: 2, Appearances: 1},
		{Name: "C", Nationality: "Norway", YellowCards: 9, Appearances: 3},
		{Name: "D", Nationality: "Israel", YellowCards: 1, Appearances: 4},
		{Name: "E", Nationality: "Malta", YellowCards: 1},
	}

	got := ByNationality(records, DefaultMap())

	require.Len(t, got, 4)
	assert.Equal(t, "Norway", got[0].Nationality)
	assert.Equal(t, Nordic, got[0].Region)
	assert.InDelta(t, 3.0, got[0].YellowPerAppearance, 1e-9)

	assert.Equal(t, "Spain", got[1].Nationality)
	assert.Equal(t, 12, got[1].YellowCards)
	assert.Equal(t, 6, got[1].Appearances)
	assert.Equal(t, 2, got[1].Referees)

	assert.Equal(t, "Israel", got[2].Nationality)
	assert.Equal(t, Region(""), got[2].Region)

	assert.Equal(t, "Malta", got[3].Nationality)
	assert.True(t, math.IsNaN(got[3].YellowPerAppearance))
}
