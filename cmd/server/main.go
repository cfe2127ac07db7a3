package main

// @title           Shelfshare Library API
// @version         1.0
// @description     API for managing authors and their books in Shelfshare.

// @contact.name   Sina Niyavarzi
// @contact.email  sinaniya@gmail.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/config"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/db"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/logger"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/server"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const appVersion = "0.2.0"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	startTime := time.Now()

	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}

	if cfg.TZ != "" {
		loc, err := time.LoadLocation(cfg.TZ)
		if err != nil {
			return err
		}
		time.Local = loc
	}

	gin.SetMode(cfg.GinMode)

	zlog, flush := logger.New(cfg.IsRelease(), cfg.LogLevel, appVersion)
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.ConnectWithRetry(ctx, cfg, zlog)
	if err != nil {
		zlog.Error("failed to connect to database", zap.Error(err))
		return err
	}
	defer func() {
		if err := db.Close(database); err != nil {
			zlog.Warn("failed to close database", zap.Error(err))
		}
	}()

	if err := db.Migrate(database); err != nil {
		zlog.Error("failed to migrate database", zap.Error(err))
		return err
	}

	router, err := server.NewRouter(database, server.Options{
		Logger:    zlog,
		Version:   appVersion,
		StartTime: startTime,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zlog.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		zlog.Info("shutting down http server", zap.Duration("timeout", cfg.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zlog.Error("server stopped with error", zap.Error(err))
		return err
	}

	zlog.Info("server stopped")
	return nil
}
