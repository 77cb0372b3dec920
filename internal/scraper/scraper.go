package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"

	"github.com/pfrederiksen/referee-stats/internal/league"
	"github.com/pfrederiksen/referee-stats/internal/logger"
	"github.com/pfrederiksen/referee-stats/internal/observability"
	"github.com/pfrederiksen/referee-stats/internal/referee"
)

const (
	DefaultBaseURL = "https://www.transfermarkt.co.uk"
	UserAgent      = "Mozilla/5.0"
	Timeout        = 30 * time.Second
)

// numericColumns are the td.zentriert cells after the portrait and flag cells.
const numericColumns = 6

var (
	pageTitlePattern = regexp.MustCompile(`(?i)page\s+(\d+)`)
	pageHrefPattern  = regexp.MustCompile(`/page/(\d+)`)
)

// Scraper handles fetching and parsing referee tables
type Scraper struct {
	client        *http.Client
	baseURL       string
	userAgent     string
	retries       int
	retryInterval time.Duration
	log           *logger.Logger
	metrics       *observability.Metrics
}

// Option configures a Scraper
type Option func(*Scraper)

// WithBaseURL points the scraper at another host, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(s *Scraper) { s.baseURL = strings.TrimRight(u, "/") }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *Scraper) { s.userAgent = ua }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) { s.client.Timeout = d }
}

// WithRetries retries failed page fetches n times with exponential backoff.
func WithRetries(n int) Option {
	return func(s *Scraper) { s.retries = n }
}

// WithLogger sets the logger used for skipped pages and retries.
func WithLogger(l *logger.Logger) Option {
	return func(s *Scraper) { s.log = l }
}

// WithMetrics records fetched pages and errors.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Scraper) { s.metrics = m }
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		baseURL:       DefaultBaseURL,
		userAgent:     UserAgent,
		retryInterval: 500 * time.Millisecond,
		log:           logger.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PageURL returns the URL of one page of a competition's referee table.
func (s *Scraper) PageURL(l league.League, season league.Season, page int) string {
	return fmt.Sprintf("%s/%s/schiedsrichter/pokalwettbewerb/%s/page/%d/?saison_id=%s",
		s.baseURL, l.Path, l.Code, page, season.ID())
}

// FetchSeason fetches every page of a competition's referee table for one season
func (s *Scraper) FetchSeason(ctx context.Context, l league.League, season league.Season) ([]referee.Record, error) {
	first, err := s.fetchPage(ctx, l, s.PageURL(l, season, 1))
	if err != nil {
		return nil, err
	}

	lastPage := parseLastPage(first)
	s.log.Debug("fetched first page", logger.Fields{
		"league":    l.Tag,
		"season":    season.String(),
		"last_page": lastPage,
	})

	records := make([]referee.Record, 0)
	for page := 1; page <= lastPage; page++ {
		doc := first
		if page > 1 {
			doc, err = s.fetchPage(ctx, l, s.PageURL(l, season, page))
			if err != nil {
				return nil, err
			}
		}

		rows, found, err := parseRecords(doc)
		if err != nil {
			return nil, fmt.Errorf("%s %s page %d: %w", l.Tag, season, page, err)
		}
		if !found {
			s.log.Warn("referee table missing, skipping page", logger.Fields{
				"league": l.Tag,
				"season": season.String(),
				"page":   page,
			})
			continue
		}
		records = append(records, rows...)
	}

	return records, nil
}

// fetchPage fetches and parses one page, retrying transport errors and 5xx responses
func (s *Scraper) fetchPage(ctx context.Context, l league.League, url string) (*goquery.Document, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.retryInterval

	op := func() (*goquery.Document, error) {
		doc, err := s.get(ctx, url)
		if err != nil && s.metrics != nil {
			s.metrics.FetchErrors.WithLabelValues(l.Tag).Inc()
		}
		return doc, err
	}
	notify := func(err error, wait time.Duration) {
		s.log.Warn("page fetch failed, retrying", logger.Fields{"url": url, "wait": wait.String(), "error": err.Error()})
	}

	doc, err := backoff.RetryNotifyWithData(op, backoff.WithContext(backoff.WithMaxRetries(b, uint64(s.retries)), ctx), notify)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.PagesFetched.WithLabelValues(l.Tag).Inc()
	}
	return doc, nil
}

func (s *Scraper) get(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(fmt.Errorf("fetching page: %w", err))
		}
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code: %d (%s)", resp.StatusCode, url)
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}

	return parseDocument(resp.Body)
}

func parseDocument(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("parsing HTML: %w", err))
	}
	return doc, nil
}

// parseLastPage reads the page number of the "last page" pagination link.
// Tables without pagination have one page.
func parseLastPage(doc *goquery.Document) int {
	link := doc.Find("li.tm-pagination__list-item--icon-last-page a.tm-pagination__link").First()
	if link.Length() == 0 {
		return 1
	}

	if title, ok := link.Attr("title"); ok {
		if m := pageTitlePattern.FindAllStringSubmatch(title, -1); len(m) > 0 {
			if n, err := strconv.Atoi(m[len(m)-1][1]); err == nil && n > 0 {
				return n
			}
		}
	}
	if href, ok := link.Attr("href"); ok {
		if m := pageHrefPattern.FindStringSubmatch(href); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				return n
			}
		}
	}
	return 1
}

// parseRecords extracts referee rows from the div#yw1 table. found is false
// when the page has no such table.
func parseRecords(doc *goquery.Document) (records []referee.Record, found bool, err error) {
	container := doc.Find("div#yw1").First()
	if container.Length() == 0 {
		return nil, false, nil
	}

	records = make([]referee.Record, 0)
	container.Find("tr.odd, tr.even").EachWithBreak(func(i int, row *goquery.Selection) bool {
		var rec referee.Record
		rec, err = parseRow(row)
		if err != nil {
			err = fmt.Errorf("row %d: %w", i+1, err)
			return false
		}
		records = append(records, rec)
		return true
	})
	if err != nil {
		return nil, true, err
	}
	return records, true, nil
}

func parseRow(row *goquery.Selection) (referee.Record, error) {
	nameCell := row.Find("td.hauptlink").First()
	if nameCell.Length() == 0 {
		return referee.Record{}, fmt.Errorf("missing name cell")
	}
	name := strings.TrimSpace(nameCell.Text())

	flag := row.Find("img.flaggenrahmen").First()
	nationality, ok := flag.Attr("title")
	if !ok {
		return referee.Record{}, fmt.Errorf("missing nationality flag for %s", name)
	}

	// Skip the portrait and flag cells.
	cells := row.Find("td.zentriert")
	if cells.Length() < 2+numericColumns {
		return referee.Record{}, fmt.Errorf("%s: expected %d numeric cells, got %d", name, numericColumns, cells.Length()-2)
	}

	counts := make([]int, 0, numericColumns)
	var parseErr error
	cells.Slice(2, 2+numericColumns).EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		var n int
		n, parseErr = parseCount(cell.Text())
		if parseErr != nil {
			parseErr = fmt.Errorf("%s: %w", name, parseErr)
			return false
		}
		counts = append(counts, n)
		return true
	})
	if parseErr != nil {
		return referee.Record{}, parseErr
	}

	return referee.Record{
		Name:              name,
		Nationality:       strings.TrimSpace(nationality),
		Age:               counts[0],
		YellowCards:       counts[1],
		DoubleYellowCards: counts[2],
		RedCards:          counts[3],
		Penalties:         counts[4],
		Appearances:       counts[5],
	}, nil
}

// parseCount reads a table count; "-" and empty cells are zero
func parseCount(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" || text == "-" {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.ReplaceAll(text, ".", ""))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid count %q", text)
	}
	return n, nil
}
