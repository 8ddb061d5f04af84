// Package metrics registers the prometheus instruments shared across the
// scraper, cache, and venue store.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PagesFetched counts listing-page fetch attempts by outcome
	// (ok, error, http_<code>, empty).
	PagesFetched = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scena",
		Name:      "pages_fetched_total",
		Help:      "Listing page fetch attempts by outcome",
	}, []string{"outcome"})

	// CacheRequests counts cache lookups by namespace and result (hit, miss).
	CacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scena",
		Name:      "cache_requests_total",
		Help:      "Cache lookups by namespace and result",
	}, []string{"namespace", "result"})

	// VenuesDerived counts venues synthesized from event data per scope.
	VenuesDerived = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scena",
		Name:      "venues_derived_total",
		Help:      "Venues synthesized from event location data",
	}, []string{"scope"})

	// ScrapeDuration tracks wall time of full multi-page event scrapes.
	ScrapeDuration = prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace: "scena",
		Name:      "scrape_duration_seconds",
		Help:      "Time spent scraping all listing pages for one query",
	})
)

func init() {
	prometheus.MustRegister(PagesFetched, CacheRequests, VenuesDerived, ScrapeDuration)
}

// Handler returns the exposition endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
