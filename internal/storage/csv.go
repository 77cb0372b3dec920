package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pfrederiksen/referee-stats/internal/league"
	"github.com/pfrederiksen/referee-stats/internal/referee"
	"github.com/pfrederiksen/referee-stats/internal/region"
)

// RecordHeader is the header of season and career files.
var RecordHeader = []string{
	"name", "nationality", "age", "yellow_cards",
	"double_yellow_cards", "red_cards", "penalties", "appearances",
}

// CombinedHeader adds the trailing league column.
var CombinedHeader = append(append([]string{}, RecordHeader...), "league")

// RegionHeader is the header of a persisted region rollup.
var RegionHeader = []string{
	"region", "yellow_cards", "double_yellow_cards", "red_cards", "penalties",
	"appearances", "referees", "total_cards", "yc_per_appearance",
	"yyc_per_appearance", "rc_per_appearance", "penalties_per_appearance",
	"tc_per_appearance", "appearances_per_referee",
}

// ReadRecords loads a season or career file.
func ReadRecords(path string) ([]referee.Record, error) {
	rows, err := readTable(path, RecordHeader)
	if err != nil {
		return nil, err
	}
	records := make([]referee.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := parseRecord(path, row.line, row.cells)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadCombined loads the cross-league file.
func ReadCombined(path string) ([]referee.Combined, error) {
	rows, err := readTable(path, CombinedHeader)
	if err != nil {
		return nil, err
	}
	records := make([]referee.Combined, 0, len(rows))
	for _, row := range rows {
		rec, err := parseRecord(path, row.line, row.cells[:len(RecordHeader)])
		if err != nil {
			return nil, err
		}
		raw := row.cells[len(RecordHeader)]
		tag := strings.TrimSpace(raw)
		if !knownLeagueTag(tag) {
			return nil, &ValueError{Path: path, Line: row.line, Column: "league", Value: raw, Expected: leagueTags()}
		}
		records = append(records, referee.Combined{Record: rec, League: tag})
	}
	return records, nil
}

// WriteRecords overwrites path with records, creating parent directories.
func WriteRecords(path string, records []referee.Record) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, formatRecord(r))
	}
	return writeTable(path, RecordHeader, rows)
}

// WriteCombined overwrites path with league-tagged records.
func WriteCombined(path string, records []referee.Combined) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, append(formatRecord(r.Record), r.League))
	}
	return writeTable(path, CombinedHeader, rows)
}

// WriteRegions overwrites path with region aggregates. NaN rates are written
// as empty cells.
func WriteRegions(path string, aggregates []region.Aggregate) error {
	rows := make([][]string, 0, len(aggregates))
	for _, a := range aggregates {
		rows = append(rows, []string{
			string(a.Region),
			strconv.Itoa(a.YellowCards),
			strconv.Itoa(a.DoubleYellowCards),
			strconv.Itoa(a.RedCards),
			strconv.Itoa(a.Penalties),
			strconv.Itoa(a.Appearances),
			strconv.Itoa(a.Referees),
			strconv.Itoa(a.TotalCards),
			FormatRate(a.YellowPerAppearance),
			FormatRate(a.DoubleYellowPerAppearance),
			FormatRate(a.RedPerAppearance),
			FormatRate(a.PenaltiesPerAppearance),
			FormatRate(a.TotalCardsPerAppearance),
			FormatRate(a.AppearancesPerReferee),
		})
	}
	return writeTable(path, RegionHeader, rows)
}

// FormatRate renders a rate with the shortest exact representation, or "" for NaN.
func FormatRate(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func knownLeagueTag(tag string) bool {
	for _, l := range league.All {
		if tag == l.Tag {
			return true
		}
	}
	return false
}

func leagueTags() string {
	tags := make([]string, len(league.All))
	for i, l := range league.All {
		tags[i] = l.Tag
	}
	return "one of " + strings.Join(tags, ", ")
}

// tableRow is one data record and the physical line it starts on.
type tableRow struct {
	line  int
	cells []string
}

func readTable(path string, header []string) ([]tableRow, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	got, err := r.Read()
	if err == io.EOF {
		return nil, &SchemaError{Path: path, Line: 1, Expected: header}
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(got) > 0 {
		got[0] = strings.TrimPrefix(got[0], "\ufeff")
	}
	if !equalHeader(got, header) {
		return nil, &SchemaError{Path: path, Line: 1, Expected: header, Got: got}
	}

	var rows []tableRow
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		// Quoted fields may span lines, so the row index is not the line.
		line, _ := r.FieldPos(0)
		if len(row) != len(header) {
			return nil, &SchemaError{Path: path, Line: line, Expected: header, Got: row}
		}
		rows = append(rows, tableRow{line: line, cells: row})
	}
	return rows, nil
}

func equalHeader(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if strings.TrimSpace(got[i]) != want[i] {
			return false
		}
	}
	return true
}

func parseRecord(path string, line int, row []string) (referee.Record, error) {
	counts := make([]int, 0, 6)
	for i := 2; i < len(RecordHeader); i++ {
		raw := strings.TrimSpace(row[i])
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return referee.Record{}, &ValueError{Path: path, Line: line, Column: RecordHeader[i], Value: row[i]}
		}
		counts = append(counts, n)
	}
	return referee.Record{
		Name:              strings.TrimSpace(row[0]),
		Nationality:       strings.TrimSpace(row[1]),
		Age:               counts[0],
		YellowCards:       counts[1],
		DoubleYellowCards: counts[2],
		RedCards:          counts[3],
		Penalties:         counts[4],
		Appearances:       counts[5],
	}, nil
}

func formatRecord(r referee.Record) []string {
	return []string{
		r.Name,
		r.Nationality,
		strconv.Itoa(r.Age),
		strconv.Itoa(r.YellowCards),
		strconv.Itoa(r.DoubleYellowCards),
		strconv.Itoa(r.RedCards),
		strconv.Itoa(r.Penalties),
		strconv.Itoa(r.Appearances),
	}
}

// writeTable writes straight to path; an aborted write can leave a partial file.
func writeTable(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
