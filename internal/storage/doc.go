// Package storage reads and writes the pipeline's CSV datasets.
//
// The storage package owns the on-disk layout under a data directory
// (public/datasets by default): one directory per competition holding the
// per-season files and the career total, plus uefa_combined for the
// cross-league file. Every file is comma-delimited UTF-8 with a fixed header.
// Loading a missing file fails with ErrMissingInput; a wrong header or column
// count fails with a *SchemaError; a bad number fails with a *ValueError.
package storage
