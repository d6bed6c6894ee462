package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"shipping/cmd"
	httpin "shipping/internal/adapters/in/http"
	"shipping/internal/adapters/out/kafka"
	"shipping/internal/adapters/out/postgres"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/logger"

	"github.com/labstack/gommon/log"
	"github.com/rs/zerolog"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		bootLogger := logger.New(logger.Config{})
		bootLogger.Fatal().Err(err).Msg("invalid configuration")
	}

	zl := logger.New(logger.Config{Env: configs.AppEnv, Level: configs.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, configs, zl); err != nil {
		zl.Fatal().Err(err).Msg("service stopped with error")
	}
}

func run(ctx context.Context, configs cmd.Config, zl zerolog.Logger) error {
	gormDB, err := openDatabase(ctx, configs)
	if err != nil {
		return err
	}

	publisher, closePublisher := newPublisher(configs, zl)
	defer closePublisher()

	app, err := cmd.NewCompositionRoot(configs, gormDB, publisher, zl)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}

	doc, err := httpin.LoadOpenAPI(ctx)
	if err != nil {
		return err
	}
	e, err := httpin.NewRouter(app.CreateHTTPServer(), httpin.RouterConfig{
		OpenAPI:      doc,
		Logger:       logger.Component(zl, "http"),
		EchoLogLevel: echoLogLevel(configs.LogLevel),
	})
	if err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		zl.Info().Str("addr", configs.HTTPAddr()).Msg("http server listening")
		if startErr := e.Start(configs.HTTPAddr()); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			serverErr <- startErr
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.ShutdownTimeout)
	defer cancel()

	if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
		zl.Error().Err(shutdownErr).Msg("http shutdown")
	}
	jobManager.StopAll(shutdownCtx)

	if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
		_ = sqlDB.Close()
	}

	zl.Info().Msg("service stopped")
	return err
}

func openDatabase(ctx context.Context, configs cmd.Config) (*gorm.DB, error) {
	gormDB, err := gorm.Open(gorm_postgres.Open(configs.DSN()), &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// Local environments own their master data tables; elsewhere they belong to other services.
	withReference := configs.AppEnv == "development"
	if err = postgres.Migrate(ctx, gormDB, withReference); err != nil {
		return nil, err
	}
	return gormDB, nil
}

func newPublisher(configs cmd.Config, zl zerolog.Logger) (ports.EventPublisher, func()) {
	if configs.KafkaHost == "" {
		zl.Info().Msg("KAFKA_HOST is empty, status changes are not published")
		return kafka.NopPublisher{}, func() {}
	}

	p := kafka.NewPublisher(configs.KafkaHost, configs.KafkaShipmentEventsTopic, logger.Component(zl, "kafka"))
	return p, func() {
		if err := p.Close(); err != nil {
			zl.Warn().Err(err).Msg("close kafka writer")
		}
	}
}

func echoLogLevel(level string) log.Lvl {
	switch logger.ParseLevel(level) {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return log.DEBUG
	case zerolog.WarnLevel:
		return log.WARN
	case zerolog.ErrorLevel:
		return log.ERROR
	default:
		return log.INFO
	}
}
