package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vedanthq/SLMGen/internal/catalog"
	"github.com/vedanthq/SLMGen/internal/engine"
	"github.com/vedanthq/SLMGen/internal/projectconfig"
	"github.com/vedanthq/SLMGen/internal/session"
	"github.com/vedanthq/SLMGen/internal/webserver"
)

func newServeCommand() *cobra.Command {
	var (
		port        int
		corsOrigins []string
		maxSessions int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP analysis API",
		Long: `Start the HTTP analysis API.

The server binds to loopback only. Endpoints:
  POST /api/datasets                           upload a JSONL dataset
  GET  /api/sessions/{id}/analysis             quality + characteristics
  GET  /api/sessions/{id}/risk                 overfitting risk
  GET  /api/sessions/{id}/confidence           training confidence
  GET  /api/sessions/{id}/personality          behavioral profile
  POST /api/sessions/{id}/recommendation       model ranking
  GET  /api/catalog                            candidate models
  GET  /api/health                             health check

Settings resolve in order: flags, then SLMGEN_PORT/SLMGEN_CORS_ORIGIN
environment variables (a local .env file is read when present), then
.slmgen.yaml, then built-in defaults.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// .env is optional; flags and real env still win.
			_ = godotenv.Load()

			cfg, err := projectconfig.Load(".")
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("port") {
				port = cfg.Server.Port
				if v, err := strconv.Atoi(os.Getenv("SLMGEN_PORT")); err == nil {
					port = v
				}
			}
			if len(corsOrigins) == 0 {
				corsOrigins = cfg.Server.CORSOrigins
				if v := os.Getenv("SLMGEN_CORS_ORIGIN"); v != "" {
					corsOrigins = []string{v}
				}
			}
			if !cmd.Flags().Changed("max-sessions") {
				maxSessions = cfg.Sessions.Max
			}

			cat, err := loadCatalog(cfg.Catalog.Path)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ttl := time.Duration(cfg.Sessions.TTLMinutes) * time.Minute
			eng := engine.New(session.NewMemoryStore(maxSessions, ttl), cat)
			srv := webserver.New(webserver.Config{
				Port:           port,
				AllowedOrigins: corsOrigins,
			}, eng)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", projectconfig.DefaultServerPort, "Port to listen on")
	cmd.Flags().StringArrayVar(&corsOrigins, "cors-origin", nil, "Allowed CORS origin (repeatable)")
	cmd.Flags().IntVar(&maxSessions, "max-sessions", projectconfig.DefaultMaxSessions, "Maximum concurrent analysis sessions")
	return cmd
}

// loadCatalog returns the embedded catalog, or the one at path when the
// project config overrides it.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close() //nolint:errcheck
	return catalog.Load(f)
}
