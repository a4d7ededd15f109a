package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/luminakids/storyreel-backend/internal/db"
	apihttp "github.com/luminakids/storyreel-backend/internal/http"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *apihttp.Server
	Cfg      Config
	Repos    Repos
	Services Services
	cancel   context.CancelFunc
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
	cfg := LoadConfig()

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	reposet := wireRepos(theDB, log)

	serviceset, err := wireServices(theDB, log, cfg, reposet)
	if err != nil {
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(log, serviceset)
	authMW := wireMiddleware(log, serviceset)
	server := wireRouter(log, handlerset, authMW)

	return &App{
		Log:      log,
		DB:       theDB,
		Server:   server,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
	}, nil
}

// Start launches the render worker and the publish ticker.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	if a.Services.RenderWorker != nil {
		go a.Services.RenderWorker.Run(ctx)
	}
	if a.Cfg.PublishTickEnabled() {
		go a.publishTicker(ctx)
	} else {
		a.Log.Warn("Publish ticker disabled, due assignments will not auto-release")
	}
}

func (a *App) publishTicker(ctx context.Context) {
	ticker := time.NewTicker(a.Cfg.PublishTickInterval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			released, err := a.Services.Publish.ReleaseDue(dbctx.Context{Ctx: ctx}, now, 200)
			if err != nil {
				a.Log.Error("Publish tick failed", "error", err)
			} else if released > 0 {
				a.Log.Info("Publish tick released assignments", "count", released)
			}
		}
	}
}

func (a *App) Run(addr string) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Server.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.Services.Bus != nil {
		_ = a.Services.Bus.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
