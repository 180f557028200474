package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	campaignservice "socialdesk/contexts/agency/campaign-service"
	campaignpostgres "socialdesk/contexts/agency/campaign-service/adapters/postgres"
	"socialdesk/contexts/agency/campaign-service/application/workers"
	clientservice "socialdesk/contexts/agency/client-service"
	clientpostgres "socialdesk/contexts/agency/client-service/adapters/postgres"
	clientports "socialdesk/contexts/agency/client-service/ports"
	"socialdesk/internal/platform/config"
	"socialdesk/internal/platform/crypto"
	"socialdesk/internal/platform/db"
	"socialdesk/internal/platform/httpserver"
	"socialdesk/internal/platform/messaging"
	"socialdesk/internal/platform/ratelimit"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	completer    workers.EndDateCompleter
	enabled      bool
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)

	campaignRepo := campaignpostgres.NewRepository(pg.DB, logger)
	campaignModule := campaignservice.NewModule(campaignservice.Dependencies{
		Campaigns:   campaignRepo,
		Events:      bus,
		Clock:       campaignpostgres.SystemClock{},
		IDGenerator: campaignpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	crypt, err := buildEncryptor(cfg.ContactKeyHex, logger)
	if err != nil {
		return nil, err
	}
	clientRepo := clientpostgres.NewRepository(pg.DB, logger)
	clientModule := clientservice.NewModule(clientservice.Dependencies{
		Clients:     clientRepo,
		Crypt:       crypt,
		Clock:       clientpostgres.SystemClock{},
		IDGenerator: clientpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	var limiter *ratelimit.Limiter
	if cfg.RateLimitEnabled {
		limiter = ratelimit.NewLimiter(httpserver.DefaultRateRules())
	}

	server := httpserver.New(httpserver.Options{
		Campaigns: campaignModule,
		Clients:   clientModule,
		Events:    bus,
		Limiter:   limiter,
		Logger:    logger,
		Addr:      normalizeAddr(cfg.HTTPPort),
	})
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	repo := campaignpostgres.NewRepository(pg.DB, logger)
	interval := time.Duration(cfg.WorkerIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &WorkerApp{
		postgres: pg,
		completer: workers.EndDateCompleter{
			Campaigns: repo,
			Clock:     campaignpostgres.SystemClock{},
			BatchSize: cfg.WorkerBatchSize,
			Logger:    logger,
		},
		enabled:      cfg.EnableEndDateCompletion,
		pollInterval: interval,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if !w.enabled {
		w.logger.Info("end date completion disabled, worker idle",
			"event", "bootstrap_worker_idle",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.completer.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func buildEncryptor(keyHex string, logger *slog.Logger) (clientports.Encryptor, error) {
	if strings.TrimSpace(keyHex) == "" {
		logger.Warn("contact key missing, storing client contacts in plaintext",
			"event", "bootstrap_contact_key_missing",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		return crypto.Plaintext{}, nil
	}
	return crypto.NewAESGCM(keyHex)
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
