package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/larokaa/projeto-acoes/api/yahoo"
	"github.com/larokaa/projeto-acoes/config"
	"github.com/larokaa/projeto-acoes/core"
	"github.com/larokaa/projeto-acoes/logger"
	"github.com/larokaa/projeto-acoes/repos"
)

func main() {
	// initialize context and signal handler, listen for interrupt and term signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		FileEnabled: cfg.Logging.FileEnabled,
		FilePath:    cfg.Logging.FilePath,
	}); err != nil {
		panic(err)
	}

	// get yahoo finance client
	yahooClient := yahoo.GetClient(cfg.Yahoo.Host)

	// open the sqlite store and run the schema once, up front
	if dir := filepath.Dir(cfg.Storage.SQLitePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatal().Err(err).Str("dir", dir).Msg("creating database directory")
		}
	}
	store, err := repos.Open(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Msg("opening database")
	}
	defer store.Close()

	if err := store.Init(ctx); err != nil {
		log.Fatal().Err(err).Msg("initializing database schema")
	}
	log.Info().Str("path", cfg.Storage.SQLitePath).Msg("database ready")

	sc := core.ServiceContext{
		Context: ctx,
		Store:   store,
		Fetcher: &yahooClient,
	}

	// get http server, makes all of the endpoints and routes
	s := core.GetHttpServer(sc, cfg.Addr(), cfg.Server.StaticDir)

	// start http server in goroutine
	go func() {
		log.Info().Str("addr", s.Addr).Msg("starting server")
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// wait here until the context is closed (ie, ctrl+C)
	<-ctx.Done()
	log.Info().Msg("received shutdown signal, shutting down gracefully")

	// this gives the server 10 seconds to shutdown gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server stopped")
}
