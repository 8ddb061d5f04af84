package scraper

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mserban/scena/internal/logger"
	"github.com/mserban/scena/internal/metrics"
	"github.com/mserban/scena/internal/venue"
)

// ScrapeLocations scrapes the venues listed on a city's first listing page.
// Unlike the event scrape this is a single sequential fetch. "all" returns
// an empty list: the homepage's venue links cannot be attributed to cities
// and would only add noise. Any failure degrades to an empty list.
func (s *Scraper) ScrapeLocations(city string) []venue.Venue {
	if city == AllCities {
		return []venue.Venue{}
	}

	url := fmt.Sprintf("%s/bilete-in-%s/", s.baseURL, city)
	body, err := s.fetchPage(url)
	if err != nil {
		logger.Warn("Location page fetch failed", logger.Fields{
			"city":  city,
			"url":   url,
			"error": err.Error(),
		})
		return []venue.Venue{}
	}
	metrics.PagesFetched.WithLabelValues("ok").Inc()

	return parseLocations(body, s.baseURL)
}

// parseLocations selects venue anchors from the listing body, explicitly
// excluding the header venue menu and dropdowns, which repeat the same
// site-wide venue links on every page. The display name comes from the
// anchor's title attribute, falling back to the inner venue text node.
// Duplicate names within the page are skipped.
func parseLocations(body []byte, baseURL string) []venue.Venue {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return []venue.Venue{}
	}

	locations := make([]venue.Venue, 0)
	seen := make(map[string]bool)

	doc.Find(`div.card a[href*="venue"]`).Each(func(i int, a *goquery.Selection) {
		if a.ParentsFiltered("li.menu-header-venues").Length() > 0 ||
			a.ParentsFiltered("div.dropdown-menu").Length() > 0 {
			return
		}

		href, ok := a.Attr("href")
		if !ok || href == "" {
			return
		}

		name := strings.TrimSpace(a.AttrOr("title", ""))
		if name == "" {
			name = strings.TrimSpace(a.Find("div.venue").First().Text())
		}
		if name == "" || seen[name] {
			return
		}

		fullURL := href
		if strings.HasPrefix(href, "/") {
			fullURL = baseURL + href
		}

		locations = append(locations, venue.Venue{Name: name, URL: fullURL})
		seen[name] = true
	})

	return locations
}
