package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/redis/go-redis/v9"

	"github.com/alexanderramin/wander/internal/auth"
	"github.com/alexanderramin/wander/internal/cli"
	"github.com/alexanderramin/wander/internal/composer"
	"github.com/alexanderramin/wander/internal/config"
	"github.com/alexanderramin/wander/internal/db"
	"github.com/alexanderramin/wander/internal/events"
	"github.com/alexanderramin/wander/internal/gather"
	"github.com/alexanderramin/wander/internal/llm"
	"github.com/alexanderramin/wander/internal/observability"
	"github.com/alexanderramin/wander/internal/repository"
	"github.com/alexanderramin/wander/internal/repository/postgres"
	"github.com/alexanderramin/wander/internal/selector"
	"github.com/alexanderramin/wander/internal/server"
	"github.com/alexanderramin/wander/internal/service"
	"github.com/alexanderramin/wander/internal/source"
	"github.com/alexanderramin/wander/internal/weather"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(os.Getenv("WANDER_LOG_LEVEL"))}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open database
	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	var locations repository.CustomLocationRepo = repository.NewSQLiteCustomLocationRepo(database)
	if cfg.Database.PostgresURL != "" {
		pool, err := postgres.Connect(ctx, cfg.Database.PostgresURL)
		if err != nil {
			return fmt.Errorf("connecting to postgres: %w", err)
		}
		defer pool.Close()
		locations = postgres.NewCustomLocationStore(pool)
	}
	profiles := repository.NewSQLiteUserProfileRepo(database)
	excursions := repository.NewSQLiteExcursionRepo(database)
	sessions := repository.NewSQLiteSessionRepo(database)
	checkIns := repository.NewSQLiteCheckInRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	metrics := observability.NewMetrics()

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.NATS.URL != "" {
		nc, err := events.Connect(events.ConnectConfig{
			URL:            cfg.NATS.URL,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectTimeout: cfg.NATS.ConnectTimeout,
		}, logger)
		if err != nil {
			return err
		}
		defer nc.Drain()
		publisher = events.LoggingPublisher{Next: events.NewNATSPublisher(nc, cfg.NATS.SubjectPrefix), Logger: logger}
	}

	sources, closeCache := buildSources(cfg, locations, logger)
	defer closeCache()

	fallback := gather.DefaultFallbackConfig()
	fallback.Enabled = cfg.Planner.SyntheticFallback
	fallback.MinCandidates = cfg.Planner.SyntheticMinimum
	gatherer := gather.New(sources, gather.Config{
		OSMPolicy:        gather.OSMPolicy(cfg.Sources.OSMPolicy),
		OSMMinCandidates: cfg.Sources.OSMMinCandidates,
		Fallback:         fallback,
	}, gather.WithLogger(logger), gather.WithRecorder(metrics))

	// Wire the composer: a language model when enabled, templates otherwise.
	var comp composer.Composer = composer.NewStatic()
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var observer llm.Observer = metrics
		if llmCfg.LogCalls {
			observer = llm.MultiObserver{metrics, llm.NewLogObserver(os.Stderr)}
		}
		comp = composer.NewLLMComposer(llm.NewChatClient(llmCfg, observer))
	}

	planOpts := []service.PlanServiceOption{
		service.WithProfiles(profiles),
		service.WithPublisher(publisher),
		service.WithPlanRecorder(metrics),
		service.WithPlanLogger(logger),
		service.WithDefaultTopN(cfg.Planner.TopN),
		service.WithDedupeOptions(selector.DedupeOptions{ThresholdMeters: cfg.Planner.DuplicateMeters}),
	}
	if cfg.Weather.APIKey != "" {
		planOpts = append(planOpts, service.WithWeather(weather.NewClient(weather.Config{
			BaseURL: cfg.Weather.BaseURL,
			APIKey:  cfg.Weather.APIKey,
			Timeout: cfg.Weather.Timeout,
		}, &http.Client{Timeout: cfg.Weather.Timeout})))
	}
	useCaseLog := service.NewSlogUseCaseObserver(logger)
	planOpts = append(planOpts, service.WithPlanObserver(useCaseLog))

	svcs := server.Services{
		Plan:      service.NewPlanService(gatherer, comp, planOpts...),
		Locations: service.NewLocationService(locations, publisher, useCaseLog),
		Profiles:  service.NewProfileService(profiles),
		Sessions: service.NewSessionService(service.SessionRepos{
			Sessions:   sessions,
			Excursions: excursions,
			CheckIns:   checkIns,
		}, uow, comp, publisher, useCaseLog),
		Excursions: service.NewExcursionService(excursions),
	}

	authCfg := auth.Config{Secret: cfg.Auth.TokenSecret, Issuer: cfg.Auth.Issuer}

	app := &cli.App{
		Plan:       svcs.Plan,
		Locations:  svcs.Locations,
		Profiles:   svcs.Profiles,
		Sessions:   svcs.Sessions,
		Excursions: svcs.Excursions,
	}

	// Detect interactive terminal for prompts and spinners.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	app.IssueToken = func(userID string) (string, error) {
		return auth.Issue(userID, cfg.Auth.TokenTTL, authCfg, time.Now())
	}
	app.Serve = func(ctx context.Context) error {
		handler := server.NewRouter(svcs, server.Options{
			Auth:           authCfg,
			CorsOrigins:    cfg.Server.CorsOrigins,
			RequestTimeout: cfg.Server.RequestTimeout,
			Metrics:        metrics.Handler(),
			Recorder:       metrics,
			Logger:         logger,
			WebSocket:      server.DefaultWebSocketConfig(),
		})
		return serve(ctx, cfg.Server, handler, logger)
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}

// logLevel parses WANDER_LOG_LEVEL. CLI runs stay quiet unless asked.
func logLevel(raw string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelWarn
	}
	return lvl
}

// buildSources assembles the candidate sources in trust order. Remote sources
// are wrapped in the Redis cache when one is configured.
func buildSources(cfg config.Config, locations repository.CustomLocationRepo, logger *slog.Logger) ([]source.Source, func()) {
	httpClient := &http.Client{}

	remote := []source.Source{
		source.NewOverpassSource(source.OverpassConfig{
			Endpoint:   cfg.Sources.OverpassEndpoint,
			Timeout:    cfg.Sources.OverpassTimeout,
			MaxResults: cfg.Sources.OverpassLimit,
		}, httpClient),
	}
	if cfg.Sources.PlacesAPIKey != "" {
		places := source.DefaultPlacesConfig()
		places.Endpoint = cfg.Sources.PlacesEndpoint
		places.APIKey = cfg.Sources.PlacesAPIKey
		places.Timeout = cfg.Sources.PlacesTimeout
		remote = append(remote, source.NewPlacesSource(places, httpClient))
	}

	closeFn := func() {}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cache := source.NewRedisCache(rdb, cfg.Redis.KeyPrefix)
		for i, s := range remote {
			remote[i] = source.NewCachedSource(s, cache, cfg.Sources.CacheTTL, logger)
		}
		closeFn = func() { _ = rdb.Close() }
	}

	return append([]source.Source{source.NewCustomSource(locations)}, remote...), closeFn
}

// serve runs the API until ctx is cancelled and then drains connections.
func serve(ctx context.Context, cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) error {
	srv := server.NewServer(cfg, handler)

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stderr, "Listening on %s\n", srv.Addr())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return <-errCh
}
