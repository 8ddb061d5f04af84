package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mserban/scena/internal/event"
	"github.com/mserban/scena/internal/logger"
	"github.com/mserban/scena/internal/venue"
)

// SearchCities filters the configured city list by a case-insensitive
// substring of the name. Empty query or "all" returns every city.
func (h *Handler) SearchCities(c *gin.Context) {
	query := c.Query("q")
	c.JSON(http.StatusOK, h.cities.Search(query))
}

// GetEvents returns the event listings for a city, serving from cache when
// a fresh-enough scrape exists. Venues referenced by the events are folded
// into the venue history before the response goes out.
func (h *Handler) GetEvents(c *gin.Context) {
	cityName := c.DefaultQuery("city", DefaultCity)

	var events []event.Record
	if !h.cache.Get(eventsNamespace, cityName, &events) {
		logger.Info("Scraping events", logger.Fields{"city": cityName})
		events = h.scraper.ScrapeEvents(cityName)
		if len(events) > 0 {
			h.cache.Put(eventsNamespace, cityName, events)
		}
	}

	h.venues.DeriveFromEvents(cityName, events)

	c.JSON(http.StatusOK, events)
}

// GetLocations returns the merged location view for a city: the persisted
// venue history unioned with a freshly scraped (possibly cached) venue
// list, with history winning on name collisions.
func (h *Handler) GetLocations(c *gin.Context) {
	cityName := c.DefaultQuery("city", DefaultCity)

	var scraped []venue.Venue
	if !h.cache.Get(locationsNamespace, cityName, &scraped) {
		logger.Info("Scraping locations", logger.Fields{"city": cityName})
		scraped = h.scraper.ScrapeLocations(cityName)
		if len(scraped) > 0 {
			h.cache.Put(locationsNamespace, cityName, scraped)
		}
	}

	merged := venue.Merge(h.venues.GetVenues(cityName), scraped)

	c.JSON(http.StatusOK, merged)
}

// ClearCache removes every cache entry regardless of TTL. This is the only
// operation whose I/O failures surface to the caller.
func (h *Handler) ClearCache(c *gin.Context) {
	removed, err := h.cache.ClearAll()
	if err != nil {
		logger.Error("Cache clear failed", nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// Health reports basic liveness plus the sizes of the loaded datasets.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"cities":       h.cities.Len(),
		"venue_scopes": h.venues.ScopeCount(),
	})
}
