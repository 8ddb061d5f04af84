package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mserban/scena/internal/event"
	"github.com/mserban/scena/internal/venue"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// WriteEvents writes scraped events in the specified format
func WriteEvents(w io.Writer, events []event.Record, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, events)
	}

	if len(events) == 0 {
		fmt.Fprintln(w, "No events found.")
		return nil
	}

	for _, e := range events {
		line := e.Title
		if e.StartDate != "" {
			line += " - " + e.StartDate
		}
		if e.Location != "" {
			line += " @ " + e.Location
		}
		if e.Price != "" {
			line += fmt.Sprintf(" (%s %s)", e.Price, e.Currency)
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "\n%d events.\n", len(events))
	return nil
}

// WriteLocations writes scraped venues in the specified format
func WriteLocations(w io.Writer, locations []venue.Venue, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, locations)
	}

	if len(locations) == 0 {
		fmt.Fprintln(w, "No venues found.")
		return nil
	}

	for _, v := range locations {
		fmt.Fprintf(w, "%s\n  %s\n", v.Name, v.URL)
	}
	fmt.Fprintf(w, "\n%d venues.\n", len(locations))
	return nil
}

// writeJSON outputs results as indented JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
