package cli

import (
	"fmt"
	"os"

	"github.com/mserban/scena/internal/logger"
	"github.com/mserban/scena/internal/scraper"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagCity      string
	flagFormat    string
	flagLocations bool
	flagVerbose   bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scena",
		Short: "Scrape ticketing-site listings for a city",
		Long: `A CLI tool to scrape event and venue listings from iabilet.ro.
Fetches the listing pages for one city (or the site-wide stand-up category
with --city all) and prints the normalized results.`,
		RunE: runScrape,
	}

	cmd.Flags().StringVar(&flagCity, "city", "sibiu", "City slug, or 'all' for the site-wide stand-up listing")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagLocations, "locations", false, "Scrape venue listings instead of events")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runScrape is the main command logic
func runScrape(cmd *cobra.Command, args []string) error {
	format := OutputFormat(flagFormat)
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	} else {
		logger.SetDefault(logger.New(logger.LevelError, os.Stderr))
	}

	s := scraper.New()

	if flagLocations {
		locations := s.ScrapeLocations(flagCity)
		return WriteLocations(os.Stdout, locations, format)
	}

	events := s.ScrapeEvents(flagCity)
	return WriteEvents(os.Stdout, events, format)
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
