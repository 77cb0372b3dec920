// Package notifier publishes region rollup summaries.
//
// The notifier package formats the per-region discipline rates as a short
// status update and posts it to Twitter, or prints it when running dry.
package notifier
