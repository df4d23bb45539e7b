// cmd/web/main.go
//
// Linkpage – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Bootstrap logger (console) so config problems are visible.
//
//  2. Load config: conf/.env → conf/global.yaml → LINKPAGE_* overrides.
//
//  3. Start the daily rotating file logger (tees to console in a TTY).
//
//  4. Resolve `vault:` references when the config carries any.
//
//  5. Open the optional GeoIP database.
//
//  6. Build the webhook sink, visitor store, theme, renderer, CSRF signer,
//     and rate limiter, then mount every registered component.
//
//  7. Serve until SIGINT/SIGTERM; the visitor sweeper runs alongside and
//     the server drains in-flight requests on shutdown.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yanizio/linkpage/internal/component"
	"github.com/yanizio/linkpage/internal/config"
	"github.com/yanizio/linkpage/internal/form"
	"github.com/yanizio/linkpage/internal/logger"
	"github.com/yanizio/linkpage/internal/middleware"
	"github.com/yanizio/linkpage/internal/profile"
	"github.com/yanizio/linkpage/internal/requestinfo"
	"github.com/yanizio/linkpage/internal/server"
	"github.com/yanizio/linkpage/internal/session"
	"github.com/yanizio/linkpage/internal/sink"
	"github.com/yanizio/linkpage/internal/theme"
	"github.com/yanizio/linkpage/internal/vault"
	"github.com/yanizio/linkpage/internal/view"

	_ "github.com/yanizio/linkpage/components/contact"
	_ "github.com/yanizio/linkpage/components/profile"
)

const shutdownGrace = 15 * time.Second

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	if err := run(); err != nil {
		zap.S().Errorw("linkpage exited", "error", err)
		_ = zap.S().Sync()
		os.Exit(1)
	}
}

func run() error {
	//
	// ── 1.  Bootstrap logger ────────────────────────────────────────────
	//
	boot, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("bootstrap logger: %v", err)
	}
	zap.ReplaceGlobals(boot)

	//
	// ── 2.  Config ──────────────────────────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	//
	// ── 3.  File logger ─────────────────────────────────────────────────
	//
	lg, err := logger.New(cfg.Log.Dir, cfg.Log.Level, runningInTTY())
	if err != nil {
		return err
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//
	// ── 4.  Secrets ─────────────────────────────────────────────────────
	//
	if cfg.NeedsSecrets() {
		vc, err := vault.New(ctx, lg.Infof)
		if err != nil {
			return err
		}
		if err := config.ResolveSecrets(ctx, cfg, vc); err != nil {
			return err
		}
		lg.Infow("secrets resolved from vault")
	}

	//
	// ── 5.  GeoIP (optional) ────────────────────────────────────────────
	//
	var geo requestinfo.GeoLookup
	if cfg.GeoIP.DB != "" {
		db, err := requestinfo.OpenGeo(cfg.GeoIP.DB)
		if err != nil {
			lg.Warnw("geoip disabled", "db", cfg.GeoIP.DB, "error", err)
		} else {
			defer func() { _ = db.Close() }()
			geo = db
		}
	}

	//
	// ── 6.  Services and router ─────────────────────────────────────────
	//
	wh := sink.NewWebhook(sink.Options{
		URL:     cfg.Sink.URL,
		Timeout: cfg.Sink.Timeout,
		Headers: cfg.Sink.Headers,
	})
	if !wh.Configured() {
		lg.Warnw("sink url not set; contact messages will fail to deliver")
	}

	store := session.NewStore(wh, session.Options{
		IdleTTL:    cfg.Session.IdleTTL,
		MaxEntries: cfg.Session.MaxEntries,
	})

	th, err := (&theme.Manager{Dir: cfg.Theme.Dir}).Load(cfg.Theme.Name)
	if err != nil {
		return err
	}

	renderer := view.NewRenderer(th, profile.FromConfig(cfg.Profile), view.Analytics{
		Domain: cfg.Analytics.Domain,
		Script: cfg.Analytics.Script,
	})

	h, err := server.NewRouter(server.Options{
		Deps: component.Deps{
			Sessions:       store,
			Renderer:       renderer,
			CSRF:           form.NewCSRF(cfg.Security.CSRFKey),
			Limiter:        middleware.NewRateLimiter(cfg.Security.RateLimit.RPS, cfg.Security.RateLimit.Burst),
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
		},
		Geo:        geo,
		ForceHTTPS: cfg.HTTP.ForceHTTPS,
		TrustProxy: cfg.HTTP.TrustProxy,
		ScriptSrc:  cfg.Analytics.Script,
		PublicDir:  filepath.Join(cfg.Paths.Root, "public"),
	})
	if err != nil {
		return err
	}

	srv := server.New(cfg.HTTP.ListenAddr, h, server.Timeouts{
		Read:  cfg.HTTP.ReadTimeout,
		Write: cfg.HTTP.WriteTimeout,
		Idle:  cfg.HTTP.IdleTimeout,
	})

	//
	// ── 7.  Serve ───────────────────────────────────────────────────────
	//
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		lg.Infow("listening", "addr", cfg.HTTP.ListenAddr, "theme", th.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error { return store.Run(gctx) })

	g.Go(func() error {
		<-gctx.Done()
		lg.Infow("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	lg.Infow("stopped")
	return nil
}
