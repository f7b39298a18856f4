package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"judicial_capture/internal/config"
	"judicial_capture/internal/ingest"
	"judicial_capture/internal/publisher"
	"judicial_capture/internal/reconcile"
	"judicial_capture/internal/service"
	"judicial_capture/internal/source/comunica"
	"judicial_capture/internal/storage/postgres"
)

// app holds the wired components shared by the subcommands.
type app struct {
	cfg        *config.Config
	logger     *slog.Logger
	db         *sqlx.DB
	publisher  *publisher.RabbitMQ
	runs       *postgres.CaptureRunStore
	comunica   *comunica.Client
	captures   *service.CaptureService
	comms      *service.CommunicationSyncService
	dispatcher *service.Dispatcher
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, setupLogger(cfg.LogLevel), nil
}

func openDB(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("connected to database", "host", cfg.Host, "dbname", cfg.DBName)
	return db, nil
}

func newApp(ctx context.Context) (*app, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}

	db, err := openDB(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, db: db}

	// a nil *RabbitMQ must not end up inside the interface
	var pub service.Publisher
	if cfg.RabbitMQ.Enabled {
		a.publisher, err = publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			db.Close()
			return nil, err
		}
		pub = a.publisher
	}

	caseStore := postgres.NewCaseRecordStore(db)
	hearingStore := postgres.NewHearingStore(db)
	commStore := postgres.NewCommunicationStore(db)
	txManager := postgres.NewTransactionManager(db)
	a.runs = postgres.NewCaptureRunStore(db)

	ingestor := ingest.New(caseStore, hearingStore, commStore, logger)
	linker := reconcile.NewLinker(postgres.NewLinkStore(db), txManager, logger)

	a.comunica = comunica.New(comunica.Config{
		BaseURL: cfg.Comunica.BaseURL,
		Timeout: cfg.Comunica.Timeout,
	}, comunica.NewLocalRateLimiter(cfg.Comunica.RateLimit, cfg.Comunica.RateWindow), logger)

	a.captures = service.NewCaptureService(
		a.runs,
		service.NewPJEPortalOpener(cfg.PJE, logger),
		ingestor,
		pub,
		logger,
		cfg.PJE,
	)

	a.comms = service.NewCommunicationSyncService(
		a.runs,
		a.comunica,
		ingestor,
		linker,
		commStore,
		postgres.NewSyncStateStore(db),
		pub,
		logger,
		cfg.Sync,
		cfg.Comunica.ItemsPerPage,
	)

	a.dispatcher = service.NewDispatcher(a.captures, a.comms)

	return a, nil
}

func (a *app) Close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("close publisher", "error", err)
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("close database", "error", err)
	}
}
