package scraper

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mserban/scena/internal/event"
	"github.com/mserban/scena/internal/logger"
	"github.com/mserban/scena/internal/metrics"
)

// ScrapeEvents fetches all event listing pages for a city concurrently and
// returns every normalized event found. The reserved city "all" scrapes the
// site-wide stand-up category instead.
//
// Every page is attempted exactly once; a page that fails, times out, or
// reports no results contributes nothing. There is no early stop and no
// cancellation of in-flight siblings, so the engine itself never fails; it
// can only return fewer records than expected. Results are collected into
// per-page slots, so the aggregate comes out page-ascending, but callers
// get no ordering promise.
func (s *Scraper) ScrapeEvents(city string) []event.Record {
	start := time.Now()
	defer func() {
		metrics.ScrapeDuration.Observe(time.Since(start).Seconds())
	}()

	global := city == AllCities

	pages := make([][]event.Record, EventPages)
	var wg sync.WaitGroup
	sem := make(chan struct{}, FetchWorkers)

	for i := 0; i < EventPages; i++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			pages[page-1] = s.scrapeEventPage(city, page, global)
		}(i + 1)
	}
	wg.Wait()

	all := make([]event.Record, 0)
	for _, records := range pages {
		all = append(all, records...)
	}

	logger.Info("Event scrape finished", logger.Fields{
		"city":    city,
		"pages":   EventPages,
		"events":  len(all),
		"elapsed": time.Since(start).String(),
	})

	return all
}

// scrapeEventPage fetches and parses one listing page. Any failure degrades
// to an empty contribution for that page.
func (s *Scraper) scrapeEventPage(city string, page int, global bool) []event.Record {
	url := s.eventPageURL(city, page, global)

	body, err := s.fetchPage(url)
	if err != nil {
		logger.Warn("Listing page fetch failed", logger.Fields{
			"city":  city,
			"page":  page,
			"url":   url,
			"error": err.Error(),
		})
		return nil
	}

	if strings.Contains(strings.ToLower(string(body)), noResultsSentinel) {
		metrics.PagesFetched.WithLabelValues("empty").Inc()
		return nil
	}

	records := parseEventPage(body, global)
	if len(records) == 0 {
		metrics.PagesFetched.WithLabelValues("empty").Inc()
	} else {
		metrics.PagesFetched.WithLabelValues("ok").Inc()
	}
	return records
}

// parseEventPage scans a page for embedded structured-data script blocks and
// normalizes each block's events. A block that fails to parse is skipped.
func parseEventPage(body []byte, global bool) []event.Record {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	records := make([]event.Record, 0)
	doc.Find(`script[type="application/ld+json"]`).Each(func(i int, sel *goquery.Selection) {
		records = append(records, event.ExtractRecords(sel.Text(), global)...)
	})
	return records
}

// eventPageURL builds the listing URL for one page. Page 1 of a city
// listing omits the page parameter; the stand-up category listing always
// carries it.
func (s *Scraper) eventPageURL(city string, page int, global bool) string {
	if global {
		return fmt.Sprintf("%s/bilete-stand-up-comedy/?page=%d", s.baseURL, page)
	}
	if page > 1 {
		return fmt.Sprintf("%s/bilete-in-%s/?page=%d", s.baseURL, city, page)
	}
	return fmt.Sprintf("%s/bilete-in-%s/", s.baseURL, city)
}
