// Package cli implements the command-line interface for refstats.
//
// The cli package provides the Cobra-based command tree that drives each stage of
// the referee statistics pipeline: scraping season tables, aggregating careers per
// competition, combining competitions, rolling up by region, and the reports, charts
// and summaries built on top. It loads configuration, sets up logging and metrics,
// and formats output as text or JSON.
package cli
