package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agloo/themer/internal/api"
	"github.com/agloo/themer/internal/config"
	"github.com/agloo/themer/internal/logger"
	"github.com/agloo/themer/internal/service"
	"github.com/agloo/themer/internal/storage"
	"github.com/agloo/themer/internal/ws"
)

var log = logger.New("server")

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config: %v", err)
	}
	logger.SetGlobalLevelFromString(cfg.LogLevel)
	logger.SetColored(!cfg.NoColor)

	store, err := storage.NewStore(cfg.DataPath)
	if err != nil {
		log.Fatal("init store: %v", err)
	}

	hub := ws.NewHub()
	go hub.Run()
	defer hub.Stop()

	schemeSvc := service.NewSchemeService(cfg, store, hub)
	gradientSvc := service.NewGradientService(hub)

	router := api.NewRouter(cfg, hub, schemeSvc, gradientSvc)
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("shutdown error: %v", err)
	}
}
