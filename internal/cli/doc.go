// Package cli implements the scena command-line interface: a one-shot
// scrape of one city's event or venue listings, printed as text or JSON.
package cli
