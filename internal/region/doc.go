// Package region rolls referee statistics up to coarse geographic regions.
//
// A Map assigns nationalities to regions. It is immutable once built and is
// passed to Rollup explicitly; DefaultMap returns the four-region partition of
// European countries used by the published charts. Rows whose nationality is
// not in the map are left out of the aggregates and reported in
// Result.Excluded. Rates whose denominator is zero are NaN.
package region
