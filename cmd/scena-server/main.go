package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/mserban/scena/internal/api"
	"github.com/mserban/scena/internal/cache"
	"github.com/mserban/scena/internal/city"
	"github.com/mserban/scena/internal/logger"
	"github.com/mserban/scena/internal/scraper"
	"github.com/mserban/scena/internal/venue"
	"github.com/spf13/cobra"
)

var (
	flagListen     string
	flagDataDir    string
	flagCitiesFile string
	flagVerbose    bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scena-server",
		Short: "HTTP API for ticketing-site event and venue queries",
		Long: `Serves the scena query API: city search, event listings, and merged
location views, backed by a TTL file cache and a persistent venue history.`,
		RunE: runServer,
	}

	cmd.Flags().StringVar(&flagListen, "listen", ":5000", "Listen address")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", "~/.local/share/scena", "Data directory for cache and venue history")
	cmd.Flags().StringVar(&flagCitiesFile, "cities-file", "data/cities.json", "Path to the city list")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

func runServer(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stdout))
	}

	dataDir := flagDataDir
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	cities, err := city.Load(flagCitiesFile)
	if err != nil {
		return fmt.Errorf("loading cities: %w", err)
	}

	c, err := cache.New(filepath.Join(dataDir, "cache"))
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}

	venues, err := venue.NewStore(filepath.Join(dataDir, "venues.json"))
	if err != nil {
		return fmt.Errorf("initializing venue store: %w", err)
	}

	handler := api.NewHandler(cities, c, scraper.New(), venues)
	server := &http.Server{
		Addr:         flagListen,
		Handler:      api.NewServer(handler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", logger.Fields{
			"listen": flagListen,
			"cities": cities.Len(),
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("Shutting down", logger.Fields{"signal": sig.String()})
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
