package venue

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mserban/scena/internal/event"
	"github.com/mserban/scena/internal/logger"
	"github.com/mserban/scena/internal/metrics"
)

// Store persists the per-city venue history as one JSON document mapping
// scope keys to name-sorted venue lists. The whole document is overwritten
// on every mutation that adds at least one venue.
type Store struct {
	mu   sync.Mutex
	path string
	db   map[string][]Venue
}

// NewStore loads the venue history from path, creating an empty document
// with only the global scope if none exists. An unreadable or corrupt
// document also starts empty; the history is an accumulating convenience,
// not a source of truth worth failing startup over.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating venue store directory: %w", err)
	}

	s := &Store{
		path: path,
		db:   map[string][]Venue{GlobalScope: {}},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read venue store, starting empty", logger.Fields{
				"path":  path,
				"error": err.Error(),
			})
		}
		return s, nil
	}

	var db map[string][]Venue
	if err := json.Unmarshal(data, &db); err != nil {
		logger.Warn("Failed to parse venue store, starting empty", logger.Fields{
			"path":  path,
			"error": err.Error(),
		})
		return s, nil
	}
	if db[GlobalScope] == nil {
		db[GlobalScope] = []Venue{}
	}
	s.db = db
	return s, nil
}

// GetVenues returns the persisted venues for a scope, or an empty list for
// an unknown scope. The returned slice is a copy.
func (s *Store) GetVenues(scope string) []Venue {
	s.mu.Lock()
	defer s.mu.Unlock()

	venues := s.db[Scope(scope)]
	out := make([]Venue, len(venues))
	copy(out, venues)
	return out
}

// DeriveFromEvents synthesizes venues from events whose location is not yet
// known to the scope, appends them, re-sorts the scope by name, and persists
// the document when at least one venue was added. Returns the number added.
// Re-running with the same events after a successful derive adds nothing.
func (s *Store) DeriveFromEvents(scope string, events []event.Record) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := Scope(scope)
	if s.db[key] == nil {
		s.db[key] = []Venue{}
	}

	existing := make(map[string]bool, len(s.db[key]))
	for _, v := range s.db[key] {
		existing[strings.ToLower(v.Name)] = true
	}

	added := 0
	for _, e := range events {
		if e.Location == "" {
			continue
		}
		nameKey := strings.ToLower(e.Location)
		if existing[nameKey] {
			continue
		}

		venueURL := e.LocationURL
		if venueURL == "" {
			venueURL = SearchURL(e.Location)
		}

		s.db[key] = append(s.db[key], Venue{
			Name:      e.Location,
			URL:       venueURL,
			IsDerived: true,
		})
		existing[nameKey] = true
		added++
	}

	if added > 0 {
		sortByName(s.db[key])
		s.save()
		metrics.VenuesDerived.WithLabelValues(key).Add(float64(added))
		logger.Info("Added venues to history", logger.Fields{
			"scope": key,
			"added": added,
		})
	}

	return added
}

// ScopeCount returns the number of scopes in the document.
func (s *Store) ScopeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.db)
}

// save overwrites the whole document. Persistence failures are logged and
// swallowed: the in-memory state stays authoritative for this process and
// the next successful derive retries the write.
func (s *Store) save() {
	data, err := json.MarshalIndent(s.db, "", "  ")
	if err != nil {
		logger.Error("Failed to encode venue store", logger.Fields{"path": s.path}, err)
		return
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		logger.Error("Failed to write venue store", logger.Fields{"path": s.path}, err)
	}
}
