// Package chart renders region rollups as PNG bar charts.
package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/pfrederiksen/referee-stats/internal/region"
)

// Chart size matches the 12x6 inch figures of the published plots.
const (
	width  = 12 * vg.Inch
	height = 6 * vg.Inch
)

// Bar describes one single-series chart.
type Bar struct {
	File   string
	Title  string
	YLabel string
	Value  func(region.Aggregate) float64
}

// Bars lists the single-series charts in render order.
var Bars = []Bar{
	{"yellow_cards_per_appearance.png", "Yellow Cards per Appearance", "Yellow Cards",
		func(a region.Aggregate) float64 { return a.YellowPerAppearance }},
	{"double_yellow_cards_per_appearance.png", "Double Yellow Cards per Appearance", "Double-Yellow Cards",
		func(a region.Aggregate) float64 { return a.DoubleYellowPerAppearance }},
	{"red_cards_per_appearance.png", "Red Cards per Appearance", "Red Cards",
		func(a region.Aggregate) float64 { return a.RedPerAppearance }},
	{"penalties_per_appearance.png", "Penalties per Appearance", "Penalties",
		func(a region.Aggregate) float64 { return a.PenaltiesPerAppearance }},
	{"total_cards_per_appearance.png", "Total Cards per Appearance", "Total Cards",
		func(a region.Aggregate) float64 { return a.TotalCardsPerAppearance }},
	{"appearances_per_referee.png", "Appearances per referee", "Appearances",
		func(a region.Aggregate) float64 { return a.AppearancesPerReferee }},
}

// GroupedFile is the file name of the grouped per-type chart.
const GroupedFile = "grouped_bar_each_card_plus_penalties.png"

type series struct {
	label string
	color color.Color
	value func(region.Aggregate) float64
}

var groupedSeries = []series{
	{"Yellow", color.RGBA{R: 255, G: 215, A: 255}, func(a region.Aggregate) float64 { return a.YellowPerAppearance }},
	{"Double yellow", color.RGBA{R: 255, G: 140, A: 255}, func(a region.Aggregate) float64 { return a.DoubleYellowPerAppearance }},
	{"Red", color.RGBA{R: 220, G: 20, B: 20, A: 255}, func(a region.Aggregate) float64 { return a.RedPerAppearance }},
	{"Penalties", color.RGBA{R: 30, G: 80, B: 220, A: 255}, func(a region.Aggregate) float64 { return a.PenaltiesPerAppearance }},
}

// Render writes every chart into dir and returns the written paths.
// NaN rates are drawn as zero-height bars.
func Render(dir string, aggregates []region.Aggregate) ([]string, error) {
	if len(aggregates) == 0 {
		return nil, fmt.Errorf("no regions to plot")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating plots directory: %w", err)
	}

	paths := make([]string, 0, len(Bars)+1)
	for _, b := range Bars {
		path := filepath.Join(dir, b.File)
		if err := renderBar(path, b, aggregates); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	path := filepath.Join(dir, GroupedFile)
	if err := renderGrouped(path, aggregates); err != nil {
		return paths, err
	}
	return append(paths, path), nil
}

func renderBar(path string, b Bar, aggregates []region.Aggregate) error {
	p := plot.New()
	p.Title.Text = b.Title
	p.X.Label.Text = "Regions"
	p.Y.Label.Text = b.YLabel

	bars, err := plotter.NewBarChart(values(aggregates, b.Value), vg.Points(60))
	if err != nil {
		return fmt.Errorf("building %s: %w", b.File, err)
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}

	p.Add(bars)
	p.NominalX(labels(aggregates)...)

	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func renderGrouped(path string, aggregates []region.Aggregate) error {
	p := plot.New()
	p.Title.Text = "Cards per appearance by region and type"
	p.X.Label.Text = "Region"
	p.Y.Label.Text = "Cards / appearance"
	p.Legend.Top = true

	w := vg.Points(18)
	for i, s := range groupedSeries {
		bars, err := plotter.NewBarChart(values(aggregates, s.value), w)
		if err != nil {
			return fmt.Errorf("building grouped chart: %w", err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = s.color
		// Center the four bars on each tick: offsets -1.5w, -0.5w, 0.5w, 1.5w.
		bars.Offset = vg.Length(float64(i)-1.5) * w
		p.Add(bars)
		p.Legend.Add(s.label, bars)
	}
	p.NominalX(labels(aggregates)...)

	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func values(aggregates []region.Aggregate, f func(region.Aggregate) float64) plotter.Values {
	vs := make(plotter.Values, len(aggregates))
	for i, a := range aggregates {
		v := f(a)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		vs[i] = v
	}
	return vs
}

func labels(aggregates []region.Aggregate) []string {
	names := make([]string, len(aggregates))
	for i, a := range aggregates {
		names[i] = string(a.Region)
	}
	return names
}
