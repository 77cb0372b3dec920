package chart

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/referee-stats/internal/referee"
	"github.com/pfrederiksen/referee-stats/internal/region"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRender(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plots")
	aggs := []region.Aggregate{
		region.NewAggregate(region.Nordic, referee.Record{YellowCards: 40, RedCards: 1, Appearances: 12}, 3),
		region.NewAggregate(region.Western, referee.Record{YellowCards: 90, DoubleYellowCards: 2, Penalties: 5, Appearances: 30}, 8),
		// zero appearances: NaN rates must still render
		region.NewAggregate(region.Eastern, referee.Record{}, 1),
	}

	paths, err := Render(dir, aggs)
	require.NoError(t, err)
	assert.Len(t, paths, len(Bars)+1)
	assert.Equal(t, filepath.Join(dir, GroupedFile), paths[len(paths)-1])

	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err, p)
		assert.True(t, bytes.HasPrefix(data, pngMagic), "%s is not a PNG", p)
	}
}

func TestRender_Empty(t *testing.T) {
	_, err := Render(t.TempDir(), nil)
	assert.Error(t, err)
}

func TestValues_ReplacesNaN(t *testing.T) {
	aggs := []region.Aggregate{{YellowPerAppearance: math.NaN()}, {YellowPerAppearance: 0.5}}
	vs := values(aggs, func(a region.Aggregate) float64 { return a.YellowPerAppearance })
	assert.Equal(t, 0.0, vs[0])
	assert.Equal(t, 0.5, vs[1])
}
