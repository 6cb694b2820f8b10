package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/slapshotlabs/scoresync/external/nhlweb"
	"github.com/slapshotlabs/scoresync/internal/config"
	"github.com/slapshotlabs/scoresync/internal/domain/game"
	"github.com/slapshotlabs/scoresync/internal/domain/jobscheduler"
	"github.com/slapshotlabs/scoresync/internal/domain/team"
	"github.com/slapshotlabs/scoresync/internal/domain/venue"
	"github.com/slapshotlabs/scoresync/internal/infrastructure/jobqueue"
	cacherepo "github.com/slapshotlabs/scoresync/internal/infrastructure/repository/cache"
	"github.com/slapshotlabs/scoresync/internal/infrastructure/repository/postgres"
	"github.com/slapshotlabs/scoresync/internal/interfaces/httpapi"
	basecache "github.com/slapshotlabs/scoresync/internal/platform/cache"
	"github.com/slapshotlabs/scoresync/internal/platform/logging"
	"github.com/slapshotlabs/scoresync/internal/platform/resilience"
	"github.com/slapshotlabs/scoresync/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// NewHTTPServer wires the full service: postgres repositories (optionally
// cache-decorated), the NHL web client, the QStash publisher and every
// usecase service behind the HTTP router. The returned cleanup closes the
// database pool.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, nil, err
	}

	svc := buildServices(cfg, logger, db)

	handler := httpapi.NewHandler(
		svc.games,
		svc.catalog,
		svc.attempts,
		svc.dashboard,
		svc.scoreSync,
		svc.ingestJobs,
		svc.dispatchRepo,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = db.Close()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, db.Close, nil
}

// IngestRunner exposes the score pipeline for the one-shot CLI without the
// HTTP surface or the job queue chain.
type IngestRunner struct {
	ScoreSync *usecase.ScoreSyncService

	db *sqlx.DB
}

func NewIngestRunner(cfg config.Config, logger *logging.Logger) (*IngestRunner, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	svc := buildServices(cfg, logger, db)
	return &IngestRunner{ScoreSync: svc.scoreSync, db: db}, nil
}

func (r *IngestRunner) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

type services struct {
	scoreSync    *usecase.ScoreSyncService
	ingestJobs   *usecase.IngestJobService
	games        *usecase.GameService
	catalog      *usecase.CatalogService
	attempts     *usecase.AttemptService
	dashboard    *usecase.DashboardService
	dispatchRepo jobscheduler.Repository
}

func buildServices(cfg config.Config, logger *logging.Logger, db *sqlx.DB) services {
	var (
		teamRepo  team.Repository  = postgres.NewTeamRepository(db)
		venueRepo venue.Repository = postgres.NewVenueRepository(db)
		gameRepo  game.Repository  = postgres.NewGameRepository(db)
	)
	broadcastRepo := postgres.NewBroadcastRepository(db)
	attemptRepo := postgres.NewFetchAttemptRepository(db)
	dispatchRepo := postgres.NewJobDispatchRepository(db)

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		teamRepo = cacherepo.NewTeamRepository(teamRepo, store)
		venueRepo = cacherepo.NewVenueRepository(venueRepo, store)
		gameRepo = cacherepo.NewGameRepository(gameRepo, store)
	}

	provider := nhlweb.NewClient(nhlweb.ClientConfig{
		BaseURL: cfg.NHLWebBaseURL,
		Timeout: cfg.NHLWebTimeout,
		Logger:  logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NHLWebCircuitEnabled,
			FailureThreshold: cfg.NHLWebCircuitFailureCount,
			OpenTimeout:      cfg.NHLWebCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.NHLWebCircuitHalfOpenMaxReq,
		},
	})

	var queue usecase.JobQueue = usecase.NewNoopJobQueue()
	if cfg.QStashEnabled {
		queueLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: logging.SlogLevel(cfg.LogLevel),
		}))
		queue = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, queueLogger)
	}

	scoreSync := usecase.NewScoreSyncService(provider, teamRepo, venueRepo, gameRepo, broadcastRepo, attemptRepo, logger)
	ingestJobs := usecase.NewIngestJobService(scoreSync, gameRepo, queue, dispatchRepo, usecase.IngestJobConfig{
		ScheduleInterval: cfg.JobScheduleInterval,
		LiveInterval:     cfg.JobLiveInterval,
		PreGameLead:      cfg.JobPreGameLead,
	}, logger)

	return services{
		scoreSync:    scoreSync,
		ingestJobs:   ingestJobs,
		games:        usecase.NewGameService(gameRepo, teamRepo, venueRepo, broadcastRepo),
		catalog:      usecase.NewCatalogService(teamRepo, venueRepo),
		attempts:     usecase.NewAttemptService(attemptRepo),
		dashboard:    usecase.NewDashboardService(gameRepo, teamRepo, venueRepo, attemptRepo, dispatchRepo),
		dispatchRepo: dispatchRepo,
	}
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
