package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mserban/scena/internal/cache"
	"github.com/mserban/scena/internal/city"
	"github.com/mserban/scena/internal/event"
	"github.com/mserban/scena/internal/venue"
)

// stubScraper implements Scraper with canned results and call counting.
type stubScraper struct {
	events        []event.Record
	locations     []venue.Venue
	eventCalls    int
	locationCalls int
}

func (s *stubScraper) ScrapeEvents(city string) []event.Record {
	s.eventCalls++
	return s.events
}

func (s *stubScraper) ScrapeLocations(city string) []venue.Venue {
	s.locationCalls++
	return s.locations
}

func newTestServer(t *testing.T, stub *stubScraper) (*gin.Engine, *venue.Store) {
	t.Helper()

	citiesPath := filepath.Join(t.TempDir(), "cities.json")
	if err := os.WriteFile(citiesPath, []byte(`[
		{"name": "Sibiu", "slug": "sibiu"},
		{"name": "Cluj-Napoca", "slug": "cluj-napoca"}
	]`), 0644); err != nil {
		t.Fatalf("writing cities: %v", err)
	}
	cities, err := city.Load(citiesPath)
	if err != nil {
		t.Fatalf("loading cities: %v", err)
	}

	c, err := cache.New(t.TempDir())
	if err != nil {
		t.Fatalf("creating cache: %v", err)
	}

	venues, err := venue.NewStore(filepath.Join(t.TempDir(), "venues.json"))
	if err != nil {
		t.Fatalf("creating venue store: %v", err)
	}

	return NewServer(NewHandler(cities, c, stub, venues)), venues
}

func doRequest(t *testing.T, engine *gin.Engine, method, target string, out interface{}) int {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	engine.ServeHTTP(w, req)
	if out != nil {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("decoding response %q: %v", w.Body.String(), err)
		}
	}
	return w.Code
}

func TestSearchCities(t *testing.T) {
	engine, _ := newTestServer(t, &stubScraper{})

	var cities []city.City
	if code := doRequest(t, engine, "GET", "/api/search_cities?q=sib", &cities); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(cities) != 1 || cities[0].Slug != "sibiu" {
		t.Errorf("expected just sibiu, got %+v", cities)
	}

	if doRequest(t, engine, "GET", "/api/search_cities", &cities); len(cities) != 2 {
		t.Errorf("empty query should return all cities, got %d", len(cities))
	}
}

func TestGetEventsDerivesVenues(t *testing.T) {
	stub := &stubScraper{
		events: []event.Record{{Title: "Jazz Night", Location: "Hall A"}},
	}
	engine, venues := newTestServer(t, stub)

	var events []event.Record
	if code := doRequest(t, engine, "GET", "/api/events?city=sibiu", &events); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(events) != 1 || events[0].Title != "Jazz Night" {
		t.Fatalf("unexpected events: %+v", events)
	}

	stored := venues.GetVenues("sibiu")
	if len(stored) != 1 {
		t.Fatalf("expected 1 derived venue, got %d", len(stored))
	}
	if stored[0].Name != "Hall A" || !stored[0].IsDerived {
		t.Errorf("unexpected venue: %+v", stored[0])
	}

	// A subsequent location query returns the derived venue even though the
	// location scrape finds nothing.
	var locations []venue.Venue
	if code := doRequest(t, engine, "GET", "/api/locations?city=sibiu", &locations); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(locations) != 1 || locations[0].Name != "Hall A" {
		t.Errorf("expected the derived venue in the merged view, got %+v", locations)
	}
}

func TestGetEventsServedFromCache(t *testing.T) {
	stub := &stubScraper{
		events: []event.Record{{Title: "Jazz Night", Location: "Hall A"}},
	}
	engine, _ := newTestServer(t, stub)

	doRequest(t, engine, "GET", "/api/events?city=sibiu", nil)
	doRequest(t, engine, "GET", "/api/events?city=sibiu", nil)

	if stub.eventCalls != 1 {
		t.Errorf("scrape calls = %d, expected the second request to hit the cache", stub.eventCalls)
	}
}

func TestGetLocationsMergePrecedence(t *testing.T) {
	stub := &stubScraper{
		// First request derives the venue into history via events.
		events: []event.Record{{Title: "Show", Location: "Arena X", LocationURL: "https://a.example.com"}},
		// The fresh scrape then claims a different URL under different casing.
		locations: []venue.Venue{{Name: "arena x", URL: "https://b.example.com"}},
	}
	engine, _ := newTestServer(t, stub)

	doRequest(t, engine, "GET", "/api/events?city=sibiu", nil)

	var locations []venue.Venue
	doRequest(t, engine, "GET", "/api/locations?city=sibiu", &locations)

	if len(locations) != 1 {
		t.Fatalf("expected exactly one merged venue, got %+v", locations)
	}
	if locations[0].Name != "Arena X" || locations[0].URL != "https://a.example.com" {
		t.Errorf("persisted entry must win the merge, got %+v", locations[0])
	}
}

func TestClearCache(t *testing.T) {
	stub := &stubScraper{
		events:    []event.Record{{Title: "Jazz Night"}},
		locations: []venue.Venue{{Name: "Hall A", URL: "https://a"}},
	}
	engine, _ := newTestServer(t, stub)

	doRequest(t, engine, "GET", "/api/events?city=sibiu", nil)
	doRequest(t, engine, "GET", "/api/locations?city=sibiu", nil)

	var resp map[string]int
	if code := doRequest(t, engine, "POST", "/api/cache/clear", &resp); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if resp["removed"] != 2 {
		t.Errorf("removed = %d, expected 2", resp["removed"])
	}

	// The next query scrapes again.
	doRequest(t, engine, "GET", "/api/events?city=sibiu", nil)
	if stub.eventCalls != 2 {
		t.Errorf("scrape calls = %d, expected a fresh scrape after clear", stub.eventCalls)
	}
}

func TestDefaultCity(t *testing.T) {
	stub := &stubScraper{events: []event.Record{{Title: "Jazz Night", Location: "Hall A"}}}
	engine, venues := newTestServer(t, stub)

	doRequest(t, engine, "GET", "/api/events", nil)

	if stored := venues.GetVenues(DefaultCity); len(stored) != 1 {
		t.Errorf("expected the default city scope to be populated, got %d venues", len(stored))
	}
}

func TestHealth(t *testing.T) {
	engine, _ := newTestServer(t, &stubScraper{})

	var health map[string]interface{}
	if code := doRequest(t, engine, "GET", "/health", &health); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if health["cities"].(float64) != 2 {
		t.Errorf("cities = %v, expected 2", health["cities"])
	}
}
