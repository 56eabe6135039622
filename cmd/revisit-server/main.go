package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/at-ishikawa/revisit/internal/config"
	"github.com/at-ishikawa/revisit/internal/database"
	"github.com/at-ishikawa/revisit/internal/digest"
	"github.com/at-ishikawa/revisit/internal/learning"
	"github.com/at-ishikawa/revisit/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("config.LoadDotEnv() > %w", err)
	}
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}
	logger := setupLogger(cfg.App.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.Port))
	if err != nil {
		return fmt.Errorf("net.Listen() > %w", err)
	}
	return serve(ctx, cfg, listener, logger)
}

func loadConfig() (*config.Config, error) {
	configFile := os.Getenv("REVISIT_CONFIG")
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

func setupLogger(debugMode bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
	}))
	slog.SetDefault(logger)
	return logger
}

// serve runs the API on listener, plus the digest job when one is scheduled, until
// ctx is canceled. It closes listener.
func serve(ctx context.Context, cfg *config.Config, listener net.Listener, logger *slog.Logger) error {
	loc, err := cfg.Schedule.Location()
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	defer func() {
		_ = db.Close()
	}()
	if err := database.WaitForConnection(ctx, db, cfg.Database.ConnectRetries); err != nil {
		return err
	}
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("database.Migrate() > %w", err)
		}
	}

	service := learning.NewService(db, loc)
	router, err := server.NewRouter(server.RouterConfig{
		Service:        service,
		AllowedOrigins: cfg.Server.CORS.AllowedOrigins,
		AppName:        cfg.App.Name,
		Version:        cfg.App.Version,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("server.NewRouter() > %w", err)
	}

	httpServer := &http.Server{
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("starting server",
			"addr", listener.Addr().String(),
			"database", cfg.Database.Driver,
			"timezone", loc.String())
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.Serve() > %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()

		logger.Info("shutting down server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("httpServer.Shutdown() > %w", err)
		}
		return nil
	})
	if cfg.Digest.Schedule != "" {
		group.Go(func() error {
			return digest.NewJob(service, logger).Start(groupCtx, cfg.Digest.Schedule, loc)
		})
	}
	return group.Wait()
}
