package app

import (
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/wearly/shopagent-backend/internal/db"
	internalhttp "github.com/wearly/shopagent-backend/internal/http"
	"github.com/wearly/shopagent-backend/internal/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *internalhttp.Server
	Cfg      Config
	Repos    Repos
	Services Services
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	// The catalog store is optional at startup: without it every search
	// degrades straight to the web fallback.
	var theDB *gorm.DB
	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Warn("Catalog database unavailable, searches will fall back to web", "error", err)
	} else {
		theDB = pg.DB()
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(log, reposet)
	handlerset := wireHandlers(serviceset)

	server := internalhttp.NewServer(internalhttp.RouterConfig{
		Log:              log,
		AllowOrigins:     cfg.AllowOrigins,
		StatusHandler:    handlerset.Status,
		HealthHandler:    handlerset.Health,
		SearchHandler:    handlerset.Search,
		TrackHandler:     handlerset.Track,
		RecommendHandler: handlerset.Recommend,
	})

	return &App{
		Log:      log,
		DB:       theDB,
		Server:   server,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Server listening", "port", a.Cfg.Port)
	return a.Server.Run(":" + a.Cfg.Port)
}
