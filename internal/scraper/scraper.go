package scraper

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mserban/scena/internal/metrics"
)

const (
	// BaseURL is the root of the ticketing site all listing URLs hang off.
	BaseURL = "https://www.iabilet.ro"

	UserAgent = "Mozilla/5.0 (compatible; scena/1.0; +https://github.com/mserban/scena)"
	Timeout   = 15 * time.Second

	// EventPages is how many listing pages one event scrape visits,
	// covering roughly two to three months of listings.
	EventPages = 5

	// FetchWorkers bounds simultaneous in-flight page fetches.
	FetchWorkers = 3

	// AllCities is the reserved city value for the site-wide stand-up
	// category scrape.
	AllCities = "all"

	// noResultsSentinel appears in the body of a listing page past the
	// last page of results. Such pages still carry navigation markup with
	// structured data of their own, so the sentinel check has to come
	// before any block parsing.
	noResultsSentinel = "nu am gasit niciun rezultat"
)

// Scraper fetches and parses listing pages from the ticketing site
type Scraper struct {
	client  *http.Client
	baseURL string
}

// New creates a new Scraper instance
func New() *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		baseURL: BaseURL,
	}
}

// fetchPage performs one GET with the fixed header set and timeout and
// returns the raw body. Transport failures and non-200 responses come back
// as errors; callers degrade them to empty page contributions.
func (s *Scraper) fetchPage(url string) ([]byte, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.PagesFetched.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.PagesFetched.WithLabelValues(fmt.Sprintf("http_%d", resp.StatusCode)).Inc()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.PagesFetched.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("reading page body: %w", err)
	}

	return body, nil
}
