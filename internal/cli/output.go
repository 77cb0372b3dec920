package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"text/tabwriter"
	"time"

	"github.com/pfrederiksen/referee-stats/internal/region"
	"github.com/pfrederiksen/referee-stats/internal/strictness"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// RunSummary is the result of the run command
type RunSummary struct {
	RunID      string        `json:"run_id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	KeyMode    string        `json:"key_mode"`
	Files      []FileReport  `json:"files"`
	Regions    region.Result `json:"-"`
	Charts     []string      `json:"charts,omitempty"`
}

// regionRow is a region.Aggregate with undefined rates as JSON null
type regionRow struct {
	Region            region.Region `json:"region"`
	YellowCards       int           `json:"yellow_cards"`
	DoubleYellowCards int           `json:"double_yellow_cards"`
	RedCards          int           `json:"red_cards"`
	Penalties         int           `json:"penalties"`
	Appearances       int           `json:"appearances"`
	Referees          int           `json:"referees"`
	TotalCards        int           `json:"total_cards"`

	YellowPerAppearance       *float64 `json:"yc_per_appearance"`
	DoubleYellowPerAppearance *float64 `json:"yyc_per_appearance"`
	RedPerAppearance          *float64 `json:"rc_per_appearance"`
	PenaltiesPerAppearance    *float64 `json:"penalties_per_appearance"`
	TotalCardsPerAppearance   *float64 `json:"tc_per_appearance"`
	AppearancesPerReferee     *float64 `json:"appearances_per_referee"`
}

type regionsOutput struct {
	Regions      []regionRow        `json:"regions"`
	Excluded     []region.Exclusion `json:"excluded"`
	ExcludedRows int                `json:"excluded_rows"`
}

type nationalityRow struct {
	region.NationalityAggregate
	YellowPerAppearance *float64 `json:"yc_per_appearance"`
}

// nullable maps NaN to nil so encoding/json writes null
func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func toRegionRows(aggregates []region.Aggregate) []regionRow {
	rows := make([]regionRow, len(aggregates))
	for i, a := range aggregates {
		rows[i] = regionRow{
			Region:                    a.Region,
			YellowCards:               a.YellowCards,
			DoubleYellowCards:         a.DoubleYellowCards,
			RedCards:                  a.RedCards,
			Penalties:                 a.Penalties,
			Appearances:               a.Appearances,
			Referees:                  a.Referees,
			TotalCards:                a.TotalCards,
			YellowPerAppearance:       nullable(a.YellowPerAppearance),
			DoubleYellowPerAppearance: nullable(a.DoubleYellowPerAppearance),
			RedPerAppearance:          nullable(a.RedPerAppearance),
			PenaltiesPerAppearance:    nullable(a.PenaltiesPerAppearance),
			TotalCardsPerAppearance:   nullable(a.TotalCardsPerAppearance),
			AppearancesPerReferee:     nullable(a.AppearancesPerReferee),
		}
	}
	return rows
}

func toRegionsOutput(result region.Result) regionsOutput {
	excluded := result.Excluded
	if excluded == nil {
		excluded = []region.Exclusion{}
	}
	return regionsOutput{
		Regions:      toRegionRows(result.Aggregates),
		Excluded:     excluded,
		ExcludedRows: result.ExcludedRows(),
	}
}

// writeJSON outputs v as indented JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// rate formats a rate for text output
func rate(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", v)
}

// WriteFiles reports written files
func WriteFiles(w io.Writer, files []FileReport, format OutputFormat) error {
	if format == FormatJSON {
		if files == nil {
			files = []FileReport{}
		}
		return writeJSON(w, files)
	}

	for _, f := range files {
		label := f.League
		if f.Season != "" {
			label += " " + f.Season
		}
		if label == "" {
			fmt.Fprintf(w, "Wrote %d rows to %s\n", f.Rows, f.Path)
		} else {
			fmt.Fprintf(w, "%s: wrote %d rows to %s\n", label, f.Rows, f.Path)
		}
	}
	return nil
}

// WriteRegions writes a region rollup in the specified format
func WriteRegions(w io.Writer, result region.Result, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, toRegionsOutput(result))
	case FormatText:
		return writeRegionsText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeRegionsText(w io.Writer, result region.Result) error {
	if len(result.Aggregates) == 0 {
		fmt.Fprintln(w, "No regions found.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "REGION\tREFEREES\tAPPS\tYC\tYYC\tRC\tPEN\tYC/APP\tYYC/APP\tRC/APP\tPEN/APP\tTC/APP\tAPPS/REF")
		for _, a := range result.Aggregates {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				a.Region, a.Referees, a.Appearances,
				a.YellowCards, a.DoubleYellowCards, a.RedCards, a.Penalties,
				rate(a.YellowPerAppearance), rate(a.DoubleYellowPerAppearance),
				rate(a.RedPerAppearance), rate(a.PenaltiesPerAppearance),
				rate(a.TotalCardsPerAppearance), rate(a.AppearancesPerReferee))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(result.Excluded) > 0 {
		fmt.Fprintf(w, "\nExcluded %d rows with unmapped nationalities:\n", result.ExcludedRows())
		for _, x := range result.Excluded {
			fmt.Fprintf(w, "  %s (%d)\n", x.Nationality, x.Rows)
		}
	}
	return nil
}

// WriteNationalities writes the nationality ranking
func WriteNationalities(w io.Writer, aggregates []region.NationalityAggregate, format OutputFormat) error {
	if format == FormatJSON {
		rows := make([]nationalityRow, len(aggregates))
		for i, a := range aggregates {
			rows[i] = nationalityRow{NationalityAggregate: a, YellowPerAppearance: nullable(a.YellowPerAppearance)}
		}
		return writeJSON(w, rows)
	}

	if len(aggregates) == 0 {
		fmt.Fprintln(w, "No referees found.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NATIONALITY\tREGION\tREFEREES\tAPPS\tYC\tYC/APP")
	for _, a := range aggregates {
		r := string(a.Region)
		if r == "" {
			r = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n",
			a.Nationality, r, a.Referees, a.Appearances, a.YellowCards, rate(a.YellowPerAppearance))
	}
	return tw.Flush()
}

// WriteReferees writes per-referee metrics
func WriteReferees(w io.Writer, refs []strictness.Referee, format OutputFormat) error {
	if format == FormatJSON {
		if refs == nil {
			refs = []strictness.Referee{}
		}
		return writeJSON(w, refs)
	}

	if len(refs) == 0 {
		fmt.Fprintln(w, "No referees found.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tNATIONALITY\tLEAGUE\tAPPS\tCARDS\tCARDS/GAME\tPEN/GAME\tSTRICTNESS")
	for _, r := range refs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%.2f\t%.2f\t%.2f\n",
			r.Name, r.Nationality, r.League, r.Appearances, r.TotalCards,
			r.CardsPerGame, r.PenaltiesPerGame, r.StrictnessIndex)
	}
	return tw.Flush()
}

// WritePaths lists rendered files
func WritePaths(w io.Writer, paths []string, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, map[string][]string{"charts": paths})
	}
	for _, p := range paths {
		fmt.Fprintf(w, "Rendered %s\n", p)
	}
	return nil
}

// WriteRunSummary writes the run command result
func WriteRunSummary(w io.Writer, summary *RunSummary, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, struct {
			*RunSummary
			Regions regionsOutput `json:"regions"`
		}{summary, toRegionsOutput(summary.Regions)})
	case FormatText:
		fmt.Fprintf(w, "Run %s (%s)\n", summary.RunID, summary.StartedAt.Format(time.RFC3339))
		fmt.Fprintf(w, "Key mode: %s\n\n", summary.KeyMode)
		if err := WriteFiles(w, summary.Files, format); err != nil {
			return err
		}
		fmt.Fprintln(w)
		if err := writeRegionsText(w, summary.Regions); err != nil {
			return err
		}
		if len(summary.Charts) > 0 {
			fmt.Fprintf(w, "\nRendered %d charts\n", len(summary.Charts))
		}
		fmt.Fprintf(w, "\nFinished in %s\n", summary.FinishedAt.Sub(summary.StartedAt))
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
