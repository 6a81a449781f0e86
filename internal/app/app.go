package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fulbito-app/fulbito/internal/config"
	"github.com/fulbito-app/fulbito/internal/domain/match"
	"github.com/fulbito-app/fulbito/internal/domain/player"
	"github.com/fulbito-app/fulbito/internal/domain/rating"
	"github.com/fulbito-app/fulbito/internal/domain/team"
	"github.com/fulbito-app/fulbito/internal/infrastructure/jobqueue"
	"github.com/fulbito-app/fulbito/internal/infrastructure/repository/memory"
	"github.com/fulbito-app/fulbito/internal/infrastructure/repository/postgres"
	"github.com/fulbito-app/fulbito/internal/interfaces/httpapi"
	"github.com/fulbito-app/fulbito/internal/platform/cache"
	idgen "github.com/fulbito-app/fulbito/internal/platform/id"
	"github.com/fulbito-app/fulbito/internal/platform/logging"
	"github.com/fulbito-app/fulbito/internal/platform/resilience"
	"github.com/fulbito-app/fulbito/internal/platform/rng"
	"github.com/fulbito-app/fulbito/internal/usecase"
)

// Application bundles the HTTP server with resources that need closing on
// shutdown.
type Application struct {
	Server *http.Server
	db     *sqlx.DB
}

func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func New(cfg config.Config, logger *logging.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	var (
		playerRepo player.Repository
		matchRepo  match.Repository
		db         *sqlx.DB
	)

	if cfg.DBURL != "" {
		conn, err := openDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		db = conn
		playerRepo = postgres.NewPlayerRepository(db)
		matchRepo = postgres.NewMatchRepository(db)
		logger.Info("storage configured", "backend", "postgres", "db_name", dbNameFromURL(cfg.DBURL))
	} else {
		playerRepo = memory.NewPlayerRepository(memory.SeedPlayers())
		matchRepo = memory.NewMatchRepository(nil)
		logger.Info("storage configured", "backend", "memory")
	}

	calc := rating.NewCalculator(nil)
	distributor := rating.NewDistributor(nil, rng.NewRandomSource(), rating.DefaultTuning())
	ids := idgen.NewRandomGenerator()

	var reminders usecase.ReminderScheduler
	if cfg.QueueEnabled {
		publisher := jobqueue.NewPublisher(jobqueue.PublisherConfig{
			BaseURL:       cfg.QueueBaseURL,
			Token:         cfg.QueueToken,
			TargetBaseURL: cfg.QueueTargetBaseURL,
			Retries:       cfg.QueueRetries,
			Timeout:       cfg.QueueTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QueueCircuitEnabled,
				FailureThreshold: cfg.QueueCircuitFailureCount,
				OpenTimeout:      cfg.QueueCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QueueCircuitHalfOpenMaxReq,
			},
		}, logger)
		reminders = jobqueue.NewEvaluationReminderScheduler(publisher, cfg.EvaluationReminderGrace)
		logger.Info("evaluation reminders enabled", "grace", cfg.EvaluationReminderGrace.String())
	} else {
		logger.Info("evaluation reminders disabled", "reason", "QUEUE_ENABLED=false")
	}

	rosterSvc := usecase.NewRosterService(playerRepo, calc, distributor, ids, cache.NewStore(cfg.CacheTTL), logger)
	balanceSvc := usecase.NewBalanceService(playerRepo, matchRepo, team.NewBalancer(), calc, ids, reminders, logger)
	evaluationSvc := usecase.NewEvaluationService(matchRepo, playerRepo, calc, distributor, rating.NewTagApplier(nil), logger)

	handler := httpapi.NewHandler(rosterSvc, balanceSvc, evaluationSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &Application{Server: server, db: db}, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
