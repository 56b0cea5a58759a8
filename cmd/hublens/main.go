// ABOUTME: Entry point for the hublens diagnostic proxy.
// ABOUTME: Wires config, store, client, and HTTP surfaces with CLI commands.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/2389/hublens/internal/api"
	"github.com/2389/hublens/internal/config"
	"github.com/2389/hublens/internal/hubspot"
	"github.com/2389/hublens/internal/logging"
	"github.com/2389/hublens/internal/mockhub"
	"github.com/2389/hublens/internal/store"
	"github.com/2389/hublens/internal/web"
)

var (
	port   string
	dbPath string
)

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "hublens",
		Short: "HubLens - diagnostic proxy for HubSpot form and HubDB integrations",
		Long: `HubLens inspects a HubSpot account through its REST APIs and renders
forms, form submissions, CRM contacts, and HubDB tables as uniform grids.

It exists to answer one question quickly: which parts of an integration
work with this token, and which come back empty, unsupported, or broken.

Quick Start:
  hublens serve     # Start the diagnostic UI on port 8000
  hublens check     # Run a terminal diagnostic against the account
  hublens mock      # Run a fake HubSpot upstream with seeded data`,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the diagnostic proxy server",
		Long: `Start the HubLens HTTP server.

The server provides:
  • Grid explorer UI at http://localhost:PORT/
  • JSON API under /api
  • Request log UI at http://localhost:PORT/logs
  • Health check at http://localhost:PORT/healthz

Environment Variables:
  HUBSPOT_TOKEN     Private app token (requests degrade gracefully without it)
  HUBSPOT_BASE_URL  Upstream base URL (default: https://api.hubapi.com)
  HUBLENS_PORT      Server port (default: 8000)
  HUBLENS_DB_PATH   Request log database path (default: ./hublens.db)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cfg)
		},
	}
	serveCmd.Flags().StringVarP(&port, "port", "p", cfg.Port, "Port to listen on")
	serveCmd.Flags().StringVarP(&dbPath, "db", "d", cfg.DBPath, "Database path")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Run a terminal diagnostic against the account",
		Long: `Probe the account from the terminal without starting the server.

Checks, in order:
  1. Token presence
  2. Forms catalog (v3 with v2 fallback)
  3. HubDB tables catalog
  4. First submissions page of the first form
  5. Walk to the last submissions page`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cfg)
		},
	}

	mockCmd := &cobra.Command{
		Use:   "mock",
		Short: "Start a fake HubSpot upstream with seeded data",
		Long: `Start a local stand-in for api.hubapi.com with seeded fixture data.

Point HubLens at it for offline demos:
  HUBSPOT_BASE_URL=http://localhost:9100 HUBSPOT_TOKEN=demo hublens serve

Set OPENAI_API_KEY to seed AI-generated submissions and contacts;
static fixtures are used otherwise. Any non-empty bearer token is
accepted; requests without one get a 401 like the real API.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMock(cfg)
		},
	}
	mockCmd.Flags().StringVarP(&port, "port", "p", cfg.MockPort, "Port to listen on")

	rootCmd.AddCommand(serveCmd, checkCmd, mockCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cfg *config.Config) error {
	srv, s, err := newServer(cfg, dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	addr := ":" + port
	log.Printf("HubLens listening on %s", addr)
	log.Printf("Upstream: %s (token configured: %v)", cfg.BaseURL, cfg.Token != "")
	log.Printf("Database: %s", dbPath)
	return http.ListenAndServe(addr, srv)
}

func newServer(cfg *config.Config, dbPath string) (http.Handler, *store.Store, error) {
	s, err := store.New(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}

	hub := hubspot.NewClient(cfg.BaseURL, cfg.Token)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(logging.Middleware(s))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})

	r.Get("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	api.NewHandlers(hub).RegisterRoutes(r)
	web.NewHandlers(s).RegisterRoutes(r)

	return r, s, nil
}

func runCheck(cfg *config.Config) error {
	ctx := context.Background()
	hub := hubspot.NewClient(cfg.BaseURL, cfg.Token)

	if hub.TokenConfigured() {
		fmt.Printf("Token: configured (%d chars)\n", hub.TokenLength())
	} else {
		fmt.Println("Token: NOT configured (set HUBSPOT_TOKEN in .env)")
	}
	fmt.Printf("Upstream: %s\n\n", cfg.BaseURL)

	forms, reason := hub.ListForms(ctx)
	fmt.Printf("Forms: %d", len(forms))
	if reason != "" {
		fmt.Printf(" (%s)", reason)
	}
	fmt.Println()
	for _, f := range forms {
		fmt.Printf("  %s  %s (%d fields)\n", f.ID, f.Name, len(f.Fields))
	}

	tables, reason := hub.ListTables(ctx)
	fmt.Printf("\nHubDB tables: %d", len(tables))
	if reason != "" {
		fmt.Printf(" (%s)", reason)
	}
	fmt.Println()
	for _, t := range tables {
		fmt.Printf("  %s  %s (%d rows, %d columns)\n", t.ID, t.Name, t.RowCount, len(t.Fields))
	}

	if len(forms) == 0 {
		fmt.Println("\nNo forms to probe submissions with.")
		return nil
	}

	formID := forms[0].ID
	fmt.Printf("\nSubmissions for %s:\n", formID)
	first := hub.Submissions(ctx, formID, 25, "", 1)
	if !first.Supported {
		fmt.Printf("  unsupported: %s\n", first.Message)
		return nil
	}
	fmt.Printf("  first page: %d rows", first.Paging.RecordCount)
	if first.Paging.Total != nil {
		fmt.Printf(" of %d total", *first.Paging.Total)
	}
	fmt.Println()

	last := hub.LastSubmissions(ctx, formID, 25)
	if !last.Supported {
		fmt.Printf("  last page walk failed: %s\n", last.Message)
		return nil
	}
	fmt.Printf("  last page: page %d, %d rows\n", last.Paging.CurrentPage, last.Paging.RecordCount)
	return nil
}

func runMock(cfg *config.Config) error {
	log.Println("Seeding mock HubSpot fixtures...")
	fixtures := mockhub.BuildFixtures(context.Background(), mockhub.NewGenerator())
	srv := mockhub.NewServer(fixtures)

	addr := ":" + port
	log.Printf("Mock HubSpot upstream listening on %s", addr)
	log.Printf("Point hublens at it: HUBSPOT_BASE_URL=http://localhost%s HUBSPOT_TOKEN=demo hublens serve", addr)
	return http.ListenAndServe(addr, srv.Router())
}
