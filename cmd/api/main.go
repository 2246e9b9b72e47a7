package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pantrybase/recipebox/config"
	"github.com/pantrybase/recipebox/internal/database"
	"github.com/pantrybase/recipebox/internal/logging"
	"github.com/pantrybase/recipebox/internal/server"
)

func main() {
	log := logging.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	redisClient, err := redisFromConfig(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}

	srv, err := server.New(cfg, db, redisClient, log)
	if err != nil {
		log.WithError(err).Fatal("failed to build server")
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.WithError(err).Fatal("server error")
		}
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server shutdown error")
	}
	log.Info("server stopped")
}
