package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/formstore"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/live"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/pg"
	"github.com/dmitrymomot/formkit/pkg/redis"
	"github.com/dmitrymomot/formkit/pkg/schema"
)

type appConfig struct {
	Env         string        `env:"APP_ENV" envDefault:"development"`
	LogLevel    string        `env:"LOG_LEVEL"`
	LogFormat   string        `env:"LOG_FORMAT"`
	StoreDriver string        `env:"STORE_DRIVER" envDefault:"memory"`
	SchemaDir   string        `env:"SCHEMA_DIR" envDefault:"./forms"`
	SnapshotTTL time.Duration `env:"SNAPSHOT_TTL" envDefault:"24h"`
	BasePath    string        `env:"FORMS_BASE_PATH" envDefault:"/forms"`
	Transport   string        `env:"FORMS_TRANSPORT" envDefault:"htmx"`
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`

	HTTP  httpserver.Config
	Redis redis.Config
	PG    pg.Config
}

func main() {
	cfg := config.MustLoad[appConfig]()

	// LOG_LEVEL and LOG_FORMAT override the environment defaults.
	logOpts := []logger.Option{
		logger.WithEnvironment(cfg.Env, "formkit"),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
	}
	if cfg.LogFormat != "" {
		logOpts = append(logOpts, logger.WithFormat(logger.Format(cfg.LogFormat)))
	}
	log := logger.New(logOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("formkit stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	defs, err := schema.LoadDir(cfg.SchemaDir)
	if err != nil {
		return err
	}
	registry, err := live.NewRegistry()
	if err != nil {
		return err
	}
	for _, name := range slices.Sorted(maps.Keys(defs)) {
		if err := registry.Register(defs[name]); err != nil {
			return err
		}
		log.Info("form registered", logger.Form(name))
	}

	transport, err := live.ParseTransport(cfg.Transport)
	if err != nil {
		return err
	}

	store, checks, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	forms := live.New(registry, store,
		live.WithLogger(log),
		live.WithBasePath(cfg.BasePath),
		live.WithTransport(transport),
		live.WithSessionIdleTimeout(cfg.IdleTimeout),
		live.WithSubmitHandler(func(ctx context.Context, formName, session string, data map[string]string) error {
			log.InfoContext(ctx, "form submitted",
				logger.Form(formName),
				logger.Session(session),
				slog.Any("data", data),
			)
			return nil
		}),
	)
	defer forms.Close()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, checks))
	r.Get("/", indexHandler(cfg.BasePath, registry.Names()))
	r.Mount(cfg.BasePath, forms.Routes())

	return httpserver.New(cfg.HTTP, r, log).Run(ctx)
}

// openStore picks the snapshot store. The returned checks feed the
// readiness endpoint.
func openStore(ctx context.Context, cfg appConfig, log *slog.Logger) (formstore.Store, map[string]httpserver.Check, func(), error) {
	switch cfg.StoreDriver {
	case "memory":
		store := formstore.NewMemoryStore(cfg.SnapshotTTL)
		return store, map[string]httpserver.Check{}, func() { _ = store.Close() }, nil

	case "redis":
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		checks := map[string]httpserver.Check{"redis": redis.Healthcheck(client)}
		return formstore.NewRedisStore(client, cfg.Redis.KeyPrefix, cfg.SnapshotTTL), checks, func() { _ = client.Close() }, nil

	case "postgres":
		pool, err := pg.Connect(ctx, cfg.PG)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := formstore.Migrate(ctx, pool, cfg.PG.MigrationsTable, log); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		store := formstore.NewPGStore(pool, cfg.SnapshotTTL)
		purgeCtx, cancel := context.WithCancel(ctx)
		go purgeLoop(purgeCtx, store, cfg.SnapshotTTL, log)
		checks := map[string]httpserver.Check{"postgres": pg.Healthcheck(pool)}
		return store, checks, func() { cancel(); pool.Close() }, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown store driver %q: must be memory, redis or postgres", cfg.StoreDriver)
}

func purgeLoop(ctx context.Context, store *formstore.PGStore, ttl time.Duration, log *slog.Logger) {
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(max(ttl/4, time.Minute))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.Purge(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				log.ErrorContext(ctx, "snapshot purge failed", logger.Error(err))
				continue
			}
			if n > 0 {
				log.DebugContext(ctx, "expired snapshots purged", slog.Int64("count", n))
			}
		}
	}
}

func indexHandler(basePath string, names []string) http.HandlerFunc {
	page := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!doctype html><title>formkit</title><ul>"); err != nil {
			return err
		}
		for _, name := range names {
			href := templ.EscapeString(basePath + "/" + name)
			if _, err := fmt.Fprintf(w, `<li><a href="%s">%s</a></li>`, href, templ.EscapeString(name)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ul>")
		return err
	})
	return templ.Handler(page).ServeHTTP
}
