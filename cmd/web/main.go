// cmd/web/main.go
//
// Partido – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (conf/.env handled again by the config loader).
//
//  2. Load layered configuration (yaml + PARTIDO_ env overlay).
//
//  3. Start the daily rotating logger (tees to console in a TTY).
//
//  4. Resolve the database password (literal or vault: reference) and open
//     the pool.
//
//  5. Construct components, register them, and apply their idempotent
//     migrations.
//
//  6. Build the chi root router: security headers, optional HTTPS
//     enforcement, request-info enrichment, /metrics, component mounts.
//
//  7. Serve until SIGINT/SIGTERM, then drain gracefully.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/votoclaro/partido-web/components/admin"
	"github.com/votoclaro/partido-web/components/content"
	"github.com/votoclaro/partido-web/components/forms"
	"github.com/votoclaro/partido-web/internal/component"
	"github.com/votoclaro/partido-web/internal/config"
	"github.com/votoclaro/partido-web/internal/database"
	"github.com/votoclaro/partido-web/internal/logger"
	"github.com/votoclaro/partido-web/internal/middleware"
	"github.com/votoclaro/partido-web/internal/requestinfo"
	"github.com/votoclaro/partido-web/internal/server"
	"github.com/votoclaro/partido-web/internal/vault"
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { _ = godotenv.Load() }

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Paths.Root, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	//
	// ── 1.  Database ────────────────────────────────────────────────────
	//
	password := cfg.Database.Password
	if strings.HasPrefix(password, vault.Prefix) {
		vc, err := vault.New()
		if err != nil {
			logOut.Fatalw("vault client", "err", err)
		}
		password, err = vc.Resolve(ctx, password, 5*time.Minute)
		if err != nil {
			logOut.Fatalw("resolve db password", "err", err)
		}
	}

	db, err := database.Open(fmt.Sprintf(cfg.Database.DSN, password))
	if err != nil {
		logOut.Fatalw("connect database", "err", err)
	}
	defer db.Close()
	logOut.Infow("database online")

	//
	// ── 2.  Components + migrations ─────────────────────────────────────
	//
	component.Register(forms.New(db))
	component.Register(content.New(db))
	component.Register(admin.New(db))

	for _, c := range component.All() {
		for _, stmt := range c.Migrations() {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				logOut.Fatalw("migration failed", "component", c.Name(), "err", err)
			}
		}
		logOut.Infow("component online", "name", c.Name())
	}

	//
	// ── 3.  Root router ─────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(middleware.Instrument)
	r.Use(requestinfo.Enrich)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	for _, c := range component.All() {
		r.Mount(c.Mount(), c.Routes())
	}

	handler := middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS, middleware.Security(r))

	//
	// ── 4.  Serve ───────────────────────────────────────────────────────
	//
	srv := server.New(cfg.HTTP.ListenAddr, handler)
	logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
	if err := server.Run(ctx, srv); err != nil {
		logOut.Fatalw("http server", "err", err)
	}
	logOut.Infow("shutdown complete")
}
