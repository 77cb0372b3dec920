// Package scraper provides HTTP fetching and HTML parsing for transfermarkt
// referee tables.
//
// The scraper package walks the paginated referee table of one UEFA
// competition for one season and extracts each referee's name, nationality,
// age and disciplinary counts. The page count is read from the pagination
// control on the first page.
package scraper
