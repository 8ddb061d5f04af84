package venue

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// GlobalScope is the reserved partition for the "all cities" query mode,
// where an event's venue cannot be attributed to a single city.
const GlobalScope = "_global"

const searchURLBase = "https://www.iabilet.ro/cauta/?q="

// Venue represents one venue in a city scope. Name is the unique key within
// the scope, compared case-insensitively. IsDerived marks venues synthesized
// from event data rather than scraped from a listing page.
type Venue struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	IsDerived bool   `json:"is_derived,omitempty"`
}

// Scope maps a city slug to its venue store partition key.
func Scope(city string) string {
	if city == "" || city == "all" {
		return GlobalScope
	}
	return city
}

// SearchURL builds the fallback URL for a venue that has no link of its own.
func SearchURL(name string) string {
	return searchURLBase + url.QueryEscape(name)
}

// Merge combines persisted venues with freshly scraped ones, deduplicating
// by case-insensitive name. Persisted entries always win on collision; the
// history is trusted over a possibly noisier fresh scrape. The result is
// sorted by name ascending.
func Merge(persisted, scraped []Venue) []Venue {
	byName := make(map[string]Venue, len(persisted)+len(scraped))
	for _, v := range persisted {
		byName[strings.ToLower(v.Name)] = v
	}
	for _, v := range scraped {
		key := strings.ToLower(v.Name)
		if _, exists := byName[key]; !exists {
			byName[key] = v
		}
	}

	merged := make([]Venue, 0, len(byName))
	for _, v := range byName {
		merged = append(merged, v)
	}
	sortByName(merged)
	return merged
}

func sortByName(venues []Venue) {
	sort.Slice(venues, func(i, j int) bool {
		return venues[i].Name < venues[j].Name
	})
}

func (v Venue) String() string {
	return fmt.Sprintf("%s <%s>", v.Name, v.URL)
}
