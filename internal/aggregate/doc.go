// Package aggregate turns per-season referee rows into per-competition career
// totals and unions the three competitions into one league-tagged dataset.
package aggregate
