package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/pfrederiksen/referee-stats/internal/aggregate"
	"github.com/pfrederiksen/referee-stats/internal/chart"
	"github.com/pfrederiksen/referee-stats/internal/league"
	"github.com/pfrederiksen/referee-stats/internal/logger"
	"github.com/pfrederiksen/referee-stats/internal/referee"
	"github.com/pfrederiksen/referee-stats/internal/region"
	"github.com/pfrederiksen/referee-stats/internal/scraper"
)

// Stage names used as metric labels and log fields.
const (
	stageScrape    = "scrape"
	stageAggregate = "aggregate"
	stageCombine   = "combine"
	stageRegions   = "regions"
	stagePlot      = "plot"
)

// FileReport describes one written output file
type FileReport struct {
	League string `json:"league,omitempty"`
	Season string `json:"season,omitempty"`
	Path   string `json:"path"`
	Rows   int    `json:"rows"`
}

// scrape fetches and saves every requested league and season
func (e *env) scrape(ctx context.Context, leagues []league.League, seasons []league.Season) ([]FileReport, error) {
	defer e.metrics.ObserveStage(stageScrape, time.Now())

	sc := scraper.New(
		scraper.WithBaseURL(e.cfg.BaseURL),
		scraper.WithUserAgent(e.cfg.UserAgent),
		scraper.WithTimeout(e.cfg.Timeout),
		scraper.WithRetries(e.cfg.Retries),
		scraper.WithLogger(e.log),
		scraper.WithMetrics(e.metrics),
	)

	var reports []FileReport
	for _, l := range leagues {
		for _, season := range seasons {
			e.log.Info("scraping season", logger.Fields{"league": l.Tag, "season": season.String()})

			records, err := sc.FetchSeason(ctx, l, season)
			if err != nil {
				return reports, fmt.Errorf("scraping %s %s: %w", l.Tag, season, err)
			}
			if err := e.store.SaveSeason(l, season, records); err != nil {
				return reports, err
			}

			e.metrics.RowsRead.WithLabelValues(stageScrape).Add(float64(len(records)))
			e.metrics.RowsWritten.WithLabelValues(stageScrape).Add(float64(len(records)))
			e.metrics.FilesWritten.WithLabelValues(stageScrape).Inc()
			reports = append(reports, FileReport{
				League: l.Tag,
				Season: season.String(),
				Path:   e.store.SeasonPath(l, season),
				Rows:   len(records),
			})
		}
	}
	return reports, nil
}

// aggregate builds the career totals file of each league
func (e *env) aggregate(leagues []league.League) ([]FileReport, error) {
	defer e.metrics.ObserveStage(stageAggregate, time.Now())

	reports := make([]FileReport, 0, len(leagues))
	for _, l := range leagues {
		seasons, err := e.store.LoadSeasons(l, league.Seasons)
		if err != nil {
			return reports, err
		}

		rowsIn := 0
		for _, s := range seasons {
			rowsIn += len(s)
		}
		careers := aggregate.Careers(seasons, e.keyMode)

		if err := e.store.SaveTotal(l, careers); err != nil {
			return reports, err
		}

		e.metrics.RowsRead.WithLabelValues(stageAggregate).Add(float64(rowsIn))
		e.metrics.RowsWritten.WithLabelValues(stageAggregate).Add(float64(len(careers)))
		e.metrics.FilesWritten.WithLabelValues(stageAggregate).Inc()
		e.log.Info("aggregated careers", logger.Fields{
			"league":   l.Tag,
			"rows_in":  rowsIn,
			"rows_out": len(careers),
			"key_mode": string(e.keyMode),
		})
		reports = append(reports, FileReport{League: l.Tag, Path: e.store.TotalPath(l), Rows: len(careers)})
	}
	return reports, nil
}

// combine unions the three league totals into the combined file
func (e *env) combine() (FileReport, error) {
	defer e.metrics.ObserveStage(stageCombine, time.Now())

	sets := make([]aggregate.LeagueTotals, 0, len(league.All))
	rowsIn := 0
	for _, l := range league.All {
		records, err := e.store.LoadTotal(l)
		if err != nil {
			return FileReport{}, err
		}
		rowsIn += len(records)
		sets = append(sets, aggregate.LeagueTotals{League: l, Records: records})
	}

	combined := aggregate.Combine(sets)
	if err := e.store.SaveCombined(combined); err != nil {
		return FileReport{}, err
	}

	e.metrics.RowsRead.WithLabelValues(stageCombine).Add(float64(rowsIn))
	e.metrics.RowsWritten.WithLabelValues(stageCombine).Add(float64(len(combined)))
	e.metrics.FilesWritten.WithLabelValues(stageCombine).Inc()
	e.log.Info("combined leagues", logger.Fields{"rows": len(combined)})

	return FileReport{Path: e.store.CombinedPath(), Rows: len(combined)}, nil
}

// rollup loads the combined file and groups it by region
func (e *env) rollup() (region.Result, error) {
	defer e.metrics.ObserveStage(stageRegions, time.Now())

	records, err := e.store.LoadCombined()
	if err != nil {
		return region.Result{}, err
	}
	e.metrics.RowsRead.WithLabelValues(stageRegions).Add(float64(len(records)))

	result := region.Rollup(records, e.regions)
	e.metrics.ExcludedRows.Add(float64(result.ExcludedRows()))

	for _, x := range result.Excluded {
		e.log.Warn("nationality not mapped to a region", logger.Fields{
			"nationality": x.Nationality,
			"rows":        x.Rows,
		})
	}
	e.log.Info("rolled up regions", logger.Fields{
		"rows":          len(records),
		"regions":       len(result.Aggregates),
		"excluded_rows": result.ExcludedRows(),
	})
	return result, nil
}

// plot renders the region charts into the configured plots directory
func (e *env) plot(aggregates []region.Aggregate) ([]string, error) {
	defer e.metrics.ObserveStage(stagePlot, time.Now())

	paths, err := chart.Render(e.cfg.PlotsDir, aggregates)
	e.metrics.FilesWritten.WithLabelValues(stagePlot).Add(float64(len(paths)))
	if err != nil {
		return paths, fmt.Errorf("rendering charts: %w", err)
	}
	e.log.Info("rendered charts", logger.Fields{"dir": e.cfg.PlotsDir, "files": len(paths)})
	return paths, nil
}

// loadRecords reads one league's totals, or the combined file when l is nil
func (e *env) loadRecords(l *league.League) ([]referee.Record, error) {
	if l != nil {
		return e.store.LoadTotal(*l)
	}
	combined, err := e.store.LoadCombined()
	if err != nil {
		return nil, err
	}
	records := make([]referee.Record, len(combined))
	for i, c := range combined {
		records[i] = c.Record
	}
	return records, nil
}
