package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/souraizuni/ffxiv-best-craft/internal/adapters/httpapi"
	"github.com/souraizuni/ffxiv-best-craft/internal/adapters/jsonfile"
	"github.com/souraizuni/ffxiv-best-craft/internal/adapters/memorybus"
	"github.com/souraizuni/ffxiv-best-craft/internal/adapters/sqlite"
	"github.com/souraizuni/ffxiv-best-craft/internal/app"
	"github.com/souraizuni/ffxiv-best-craft/internal/buildinfo"
	"github.com/souraizuni/ffxiv-best-craft/internal/config"
	"github.com/souraizuni/ffxiv-best-craft/internal/datasource"
	"github.com/souraizuni/ffxiv-best-craft/internal/datasource/web"
	"github.com/souraizuni/ffxiv-best-craft/internal/datasource/xivapi"
	"github.com/souraizuni/ffxiv-best-craft/internal/domain"
	"github.com/souraizuni/ffxiv-best-craft/internal/locale"
	"github.com/souraizuni/ffxiv-best-craft/internal/platform"
	"github.com/souraizuni/ffxiv-best-craft/internal/ports"
)

func main() {
	def := config.Default()
	addr := flag.String("addr", def.Addr, "Adresse d'écoute (ex: 127.0.0.1:8080)")
	storage := flag.String("storage", def.Storage, "Stockage des réglages: sqlite ou file")
	dbPath := flag.String("db", def.DBPath, "Chemin SQLite (ex: bestcraft.db)")
	settingsFile := flag.String("settings-file", def.SettingsFile, "Fichier settings.json (stockage file)")
	localDB := flag.String("local-db", def.LocalDBPath, "Base de recettes hors ligne (build natif)")
	logLevel := flag.String("log-level", def.LogLevel, "Niveau de log (debug, info, warn, error)")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil || *logLevel == "" {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("app", "bestcraft-server").Logger()
	log.Logger = logger

	plat := platform.Current()
	logger.Info().
		Interface("build", buildinfo.Current()).
		Str("platform", string(plat)).
		Str("storage", *storage).
		Msg("starting")

	ctx := context.Background()
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		repo     ports.SettingsRepository
		fileRepo *jsonfile.SettingsRepository
	)
	switch *storage {
	case config.StorageFile:
		fileRepo = jsonfile.NewSettingsRepository(*settingsFile)
		repo = fileRepo
		logger.Info().Str("path", fileRepo.Path()).Msg("using settings file")
	case config.StorageSQLite:
		db, err := sqlite.Open(ctx, *dbPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to open db")
		}
		defer func() { _ = db.Close() }()
		repo = sqlite.NewSettingsRepository(db.SQL)
		logger.Info().Str("db", *dbPath).Msg("using sqlite settings")
	default:
		logger.Fatal().Str("storage", *storage).Msg("unknown storage")
	}

	// Registre des sources: la source locale n'est liée qu'au build natif.
	httpClient := datasource.NewHTTPClient(def.UpstreamRPS, 1)
	sources := datasource.NewRegistry()
	sources.Register(domain.DataSourceYYYYGames, web.Factory(def.YYYYGamesBase, httpClient))
	sources.Register(domain.DataSourceXivAPI, xivapi.Factory(def.XivapiBase, httpClient))
	closeLocal := registerLocalSource(sources, *localDB)
	defer closeLocal()
	logger.Info().Interface("sources", sources.IDs()).Msg("data sources registered")

	bus := memorybus.New()
	defer bus.Close()

	store := app.NewSettingsStore(plat, locale.Host(), sources)
	settingsSvc := app.NewSettingsService(logger.With().Str("component", "settings").Logger(), store, repo, bus)
	if err := settingsSvc.Boot(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to load settings")
	}

	// Desktop: un settings.json édité à la main est relu à chaud.
	if fileRepo != nil {
		watcherLogger := logger.With().Str("component", "watcher").Logger()
		go func() {
			if err := fileRepo.Watch(shutdownCtx, watcherLogger, settingsSvc.Reload); err != nil {
				watcherLogger.Error().Err(err).Msg("settings watcher stopped")
			}
		}()
	}

	srv := httpapi.NewServer(logger, settingsSvc, bus, def.CORSOrigins)
	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", *addr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server crashed")
			stop()
		}
	}()

	<-shutdownCtx.Done()
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)
	logger.Info().Msg("bye")
}
