package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fleetdelivery/cmd"
	httpin "fleetdelivery/internal/adapters/in/http"
	"fleetdelivery/internal/pkg/logger"

	"github.com/labstack/gommon/log"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to a YAML config file")
	envFile := pflag.String("env-file", ".env", "dotenv file loaded before reading the environment")
	pflag.Parse()

	configs, err := cmd.LoadConfig(*configPath, *envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	l := logger.New(configs.Log.ToLoggerOptions())
	defer func() { _ = l.Sync() }()

	if err = run(configs, l); err != nil {
		l.Error("service stopped with error", zap.Error(err))
		_ = l.Sync()
		os.Exit(1)
	}
}

func run(configs cmd.Config, l *zap.Logger) error {
	db, err := cmd.OpenDatabase(configs.DB)
	if err != nil {
		return err
	}
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		defer func() { _ = sqlDB.Close() }()
	}

	deps, cleanup, err := cmd.BuildDependencies(configs, db, l)
	if err != nil {
		return err
	}
	defer cleanup()

	app := cmd.NewCompositionRoot(configs, deps)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(app, configs.HTTP, configs.Log.Mode, l)
}

func startWebServer(app cmd.CompositionRoot, cfg cmd.HTTPConfig, mode string, l *zap.Logger) error {
	e, err := httpin.NewRouter(httpin.NewServer(app.HTTPHandlers()), l)
	if err != nil {
		return err
	}
	if mode == "debug" {
		e.Logger.SetLevel(log.DEBUG)
	} else {
		e.Logger.SetLevel(log.WARN)
	}
	e.HidePort = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
		l.Info("http server listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	l.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
