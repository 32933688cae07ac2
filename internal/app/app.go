package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"incidentserver/internal/config"
	"incidentserver/internal/logger"
	"incidentserver/internal/metrics"
	"incidentserver/internal/repository"
	"incidentserver/internal/repository/memory"
	"incidentserver/internal/repository/sqlite"
	"incidentserver/internal/route"
	"incidentserver/internal/service/incident"
	"incidentserver/internal/service/seed"
	"incidentserver/internal/service/websocket"
)

type App struct {
	config     *config.Config
	logger     *logger.Logger
	metrics    *metrics.Metrics
	store      repository.Store
	hubService *websocket.HubService
	service    *incident.Service
	router     http.Handler
}

// NewApp builds every component from cfg. The store is created here and
// injected downwards; nothing is held in package state.
func NewApp(cfg *config.Config) (*App, error) {
	log, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	store, err := OpenStore(cfg)
	if err != nil {
		log.Close()
		return nil, err
	}

	if cfg.SeedOnStart {
		seeded, err := seed.LoadIfEmpty(store, time.Now())
		if err != nil {
			store.Close()
			log.Close()
			return nil, fmt.Errorf("failed to seed store: %w", err)
		}
		if seeded {
			log.Info("store seeded", zap.Int("cameras", len(seed.Cameras())))
		}
	}

	m := metrics.New()
	hub := websocket.NewHubService(cfg, log, m)
	svc := incident.NewService(store, hub, m, log)

	return &App{
		config:     cfg,
		logger:     log,
		metrics:    m,
		store:      store,
		hubService: hub,
		service:    svc,
		router:     route.SetupRoutes(svc, hub, cfg, log, m),
	}, nil
}

// OpenStore opens the store selected by cfg.StoreDriver.
func OpenStore(cfg *config.Config) (repository.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		if cfg.DatabasePath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		db, err := sqlite.New(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return db, nil
	default:
		return memory.New(), nil
	}
}

// Handler returns the fully wrapped HTTP handler.
func (a *App) Handler() http.Handler {
	return a.router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully and
// releases the store and log files.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	hubCtx, stopHub := context.WithCancel(context.Background())
	hubDone := make(chan struct{})
	go func() {
		a.hubService.Run(hubCtx)
		close(hubDone)
	}()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.config.Port),
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", server.Addr)
	if err != nil {
		stopHub()
		<-hubDone
		return fmt.Errorf("failed to listen on %s: %w", server.Addr, err)
	}

	a.logger.Info("incident server started",
		zap.String("url", fmt.Sprintf("http://localhost:%d", a.config.Port)),
		zap.String("store", a.config.StoreDriver),
		zap.String("static", a.config.StaticDirectory))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		stopHub()
		<-hubDone
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down", zap.Duration("timeout", a.config.ShutdownTimeout))

	// Websocket connections are hijacked and ignored by Shutdown; stopping the
	// hub first closes them.
	stopHub()
	<-hubDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.logger.Info("server stopped")
	return nil
}

func (a *App) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Error("failed to close store", zap.Error(err))
	}
	a.logger.Close()
}
