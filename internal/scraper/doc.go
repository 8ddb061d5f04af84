// Package scraper provides HTTP fetching and HTML parsing for ticketing-site
// listings.
//
// The event scrape visits a fixed number of listing pages with a bounded
// number of in-flight fetches and extracts the structured-data blocks each
// page embeds. The location scrape is the simpler single-page variant that
// selects venue anchors from the listing body. Both degrade every failure
// to an empty contribution: partial data always beats a visible outage.
package scraper
