// Package referee provides the row types shared by every stage of the pipeline.
//
// A Record holds one referee's disciplinary counts, either for a single season
// or summed across seasons within one competition. Combined tags a Record with
// the competition it came from. Records are grouped by a Key whose shape is
// selected with a KeyMode.
package referee
