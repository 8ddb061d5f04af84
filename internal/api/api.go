// Package api exposes the query API over HTTP: city search, merged
// location views, event listings, and cache administration.
package api

import (
	"github.com/mserban/scena/internal/cache"
	"github.com/mserban/scena/internal/city"
	"github.com/mserban/scena/internal/event"
	"github.com/mserban/scena/internal/venue"
)

// DefaultCity is used when a query omits the city parameter.
const DefaultCity = "sibiu"

// Cache namespaces for the two query kinds.
const (
	eventsNamespace    = "evt"
	locationsNamespace = "loc"
)

// Scraper is the listing-scrape surface the handlers depend on.
type Scraper interface {
	ScrapeEvents(city string) []event.Record
	ScrapeLocations(city string) []venue.Venue
}

// Handler serves the query API, composing the cache, the scraper, and the
// venue store per request.
type Handler struct {
	cities  *city.List
	cache   *cache.Cache
	scraper Scraper
	venues  *venue.Store
}

// NewHandler wires the query API's collaborators together.
func NewHandler(cities *city.List, c *cache.Cache, s Scraper, venues *venue.Store) *Handler {
	return &Handler{
		cities:  cities,
		cache:   c,
		scraper: s,
		venues:  venues,
	}
}
