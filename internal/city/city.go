// Package city loads the static city list and answers city searches.
package city

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mserban/scena/internal/logger"
)

// City is one entry of the configured city list. Slug is the identifier
// used in listing URLs and as the venue store scope.
type City struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// List holds the loaded city list.
type List struct {
	cities []City
}

// Load reads the city list from a JSON file. A missing file yields an empty
// list with a warning so the service can still serve scrape queries; a
// malformed file is a configuration error and fails.
func Load(path string) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("City list file not found, city search will be empty", logger.Fields{
				"path": path,
			})
			return &List{cities: []City{}}, nil
		}
		return nil, fmt.Errorf("reading city list: %w", err)
	}

	var cities []City
	if err := json.Unmarshal(data, &cities); err != nil {
		return nil, fmt.Errorf("parsing city list: %w", err)
	}

	return &List{cities: cities}, nil
}

// All returns every configured city.
func (l *List) All() []City {
	out := make([]City, len(l.cities))
	copy(out, l.cities)
	return out
}

// Search returns cities whose name contains the query, case-insensitively.
// An empty query or the reserved value "all" returns every city.
func (l *List) Search(query string) []City {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || query == "all" {
		return l.All()
	}

	matches := make([]City, 0)
	for _, c := range l.cities {
		if strings.Contains(strings.ToLower(c.Name), query) {
			matches = append(matches, c)
		}
	}
	return matches
}

// Len returns the number of configured cities.
func (l *List) Len() int {
	return len(l.cities)
}
