package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"

	"github.com/darshan-rambhia/organizeit/internal/alerts"
	"github.com/darshan-rambhia/organizeit/internal/api"
	"github.com/darshan-rambhia/organizeit/internal/cache"
	"github.com/darshan-rambhia/organizeit/internal/chat"
	"github.com/darshan-rambhia/organizeit/internal/config"
	"github.com/darshan-rambhia/organizeit/internal/identity"
	"github.com/darshan-rambhia/organizeit/internal/inbox"
	"github.com/darshan-rambhia/organizeit/internal/notify"
	"github.com/darshan-rambhia/organizeit/internal/projects"
	"github.com/darshan-rambhia/organizeit/internal/reports"
	"github.com/darshan-rambhia/organizeit/internal/services"
	"github.com/darshan-rambhia/organizeit/internal/store"
	"github.com/darshan-rambhia/organizeit/internal/warmup"
	"golang.org/x/sync/errgroup"
)

// @title OrganizeIT API
// @version 1.0
// @description IT operations, FinOps and ESG dashboard backend
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

// buildInfo returns version, commit, build time, and VCS details from the
// embedded Go build info. ldflags-injected values take priority.
func buildInfo() (ver, sha, built, dirty string) {
	ver = version
	sha = commit
	built = buildTime
	dirty = "clean"

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if sha == "none" {
				sha = s.Value
			}
		case "vcs.time":
			if built == "unknown" {
				built = s.Value
			}
		case "vcs.modified":
			if s.Value == "true" {
				dirty = "dirty"
			}
		}
	}

	return
}

func setupLogging(cfg *config.Config) {
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: logLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func buildProviders(cfg *config.Config) []notify.Provider {
	var providers []notify.Provider
	for _, ncfg := range cfg.Notifications {
		switch ncfg.Type {
		case "ntfy":
			providers = append(providers, notify.NewNtfy(ncfg.URL, ncfg.Topic))
		case "webhook":
			method := ncfg.Method
			if method == "" {
				method = "POST"
			}
			providers = append(providers, notify.NewWebhook(ncfg.URL, method, ncfg.Headers))
		}
	}
	return providers
}

func main() {
	configPath := flag.String("config", "", "path to organizeit.yaml config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	ver, sha, built, dirty := buildInfo()

	if *showVersion {
		fmt.Printf("organizeit %s\n  commit:    %s (%s)\n  built:     %s\n  go:        %s\n  platform:  %s/%s\n",
			ver, sha, dirty, built, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, config.ErrConfigFileNotFound) {
			fmt.Fprintf(os.Stderr, "error: %s\n\n", err)
			fmt.Fprintf(os.Stderr, "Run without -config to use defaults and ORGANIZEIT_* environment variables.\n")
		} else {
			fmt.Fprintf(os.Stderr, "error: loading config (%s): %s\n", *configPath, err)
		}
		os.Exit(1)
	}

	setupLogging(cfg)

	slog.Info("starting organizeit",
		"version", ver,
		"commit", sha,
		"built", built,
		"dirty", dirty,
		"go", runtime.Version(),
		"listen", cfg.Listen,
		"store", cfg.Store.Driver,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	st, err := store.Open(ctx, store.Options{
		Driver:     cfg.Store.Driver,
		Path:       cfg.Store.Path,
		DSN:        cfg.Store.DSN,
		SyncWrites: cfg.Store.SyncWrites,
		Logger:     slog.Default(),
	})
	if err != nil {
		slog.Error("opening store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	providers := buildProviders(cfg)
	dispatcher := notify.NewDispatcher(providers...)

	dir := identity.NewDirectory(st, nil)
	auth, err := identity.NewDemoAuth(dir, cfg.Demo.Email, cfg.Demo.PasswordHash)
	if err != nil {
		slog.Error("configuring demo account", "error", err)
		os.Exit(1)
	}

	b := api.Backends{
		Metrics:  cache.New(st, cache.WithTTL(cfg.Metrics.DashboardTTL.Duration)),
		Alerts:   alerts.New(st, alerts.WithNotifier(dispatcher)),
		Inbox:    inbox.New(st, nil),
		Projects: projects.New(st, nil),
		Services: services.New(st, nil),
		Chat:     chat.NewRouter(st, nil),
		Reports:  reports.New(st),
		Identity: dir,
		Auth:     auth,
	}

	if cfg.Warmup.Enabled {
		warmup.Run(ctx, warmup.Config{
			Timeout:     cfg.Warmup.Timeout.Duration,
			Concurrency: cfg.Warmup.Concurrency,
		}, warmupTasks(b)...)
	}

	g, ctx := errgroup.WithContext(ctx)

	retention := store.DefaultRetention()
	retention.MaxAge = cfg.Retention.Archives.Duration
	pruner := store.NewPruner(st, retention, cfg.Retention.Interval.Duration)
	g.Go(func() error { return pruner.Run(ctx) })

	server := api.NewServer(cfg.Listen, st, b)
	g.Go(func() error { return server.Run(ctx) })

	slog.Info("all components started", "notifications", dispatcher.Len())

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("fatal error", "error", err)
	}

	slog.Info("organizeit stopped gracefully")
}

// warmupTasks reads each seeded collection and the dashboard snapshot once.
func warmupTasks(b api.Backends) []warmup.Task {
	return []warmup.Task{
		{Name: "dashboard", Load: func(ctx context.Context) error { _, err := b.Metrics.Dashboard(ctx); return err }},
		{Name: "alerts", Load: func(ctx context.Context) error { _, err := b.Alerts.List(ctx); return err }},
		{Name: "notifications", Load: func(ctx context.Context) error { _, err := b.Inbox.List(ctx); return err }},
		{Name: "projects", Load: func(ctx context.Context) error { _, err := b.Projects.List(ctx); return err }},
		{Name: "services", Load: func(ctx context.Context) error { _, err := b.Services.List(ctx); return err }},
		{Name: "users", Load: func(ctx context.Context) error { _, err := b.Identity.Users(ctx); return err }},
		{Name: "audit", Load: func(ctx context.Context) error { _, err := b.Identity.AuditEvents(ctx, 0); return err }},
	}
}
