package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"pact/internal/domain/audit"
	"pact/internal/domain/auth"
	"pact/internal/domain/contract"
	"pact/internal/domain/employee"
	"pact/internal/domain/evaluation"
	"pact/internal/domain/ledger"
	"pact/internal/domain/report"
	"pact/internal/domain/tracker"
	"pact/internal/platform/config"
	cryptoutil "pact/internal/platform/crypto"
	"pact/internal/platform/db"
	"pact/internal/platform/email"
	"pact/internal/platform/jobs"
	"pact/internal/platform/metrics"
	"pact/internal/transport/http/api"
	audithandler "pact/internal/transport/http/handlers/audit"
	authhandler "pact/internal/transport/http/handlers/auth"
	contractshandler "pact/internal/transport/http/handlers/contracts"
	employeeshandler "pact/internal/transport/http/handlers/employees"
	evaluationshandler "pact/internal/transport/http/handlers/evaluations"
	ledgerhandler "pact/internal/transport/http/handlers/ledger"
	reportshandler "pact/internal/transport/http/handlers/reports"
	"pact/internal/transport/http/middleware"
)

type App struct {
	Config    config.Config
	DB        *pgxpool.Pool
	Router    http.Handler
	Jobs      *jobs.Service
	Collector *metrics.Collector
}

// New wires the full application. Tests construct an App directly and
// drive App.Router; Run adds the listener on top.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		migrationsDir := cfg.MigrationsDir
		if migrationsDir == "" {
			migrationsDir = "migrations"
		}
		if err := db.Migrate(ctx, pool, migrationsDir); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	cryptoSvc, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		pool.Close()
		return nil, err
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	policy := evaluation.Policy{
		CriticalEscalationCount:      cfg.CriticalEscalationCount,
		ExitAfterConsecutiveCritical: cfg.ExitAfterConsecutiveCritical,
	}

	authStore := auth.NewStore(pool)
	contractStore := contract.NewStore(pool)
	contractSvc := contract.NewService(contractStore)
	employeeStore := employee.NewStore(pool)
	employeeSvc := employee.NewService(employeeStore, contractStore)
	ledgerStore := ledger.NewStore(pool)
	ledgerSvc := ledger.NewService(ledgerStore)
	reportStore := report.NewStore(pool)
	reportSvc := report.NewService(reportStore, cryptoSvc)
	auditSvc := audit.New(pool)

	trackerStore := tracker.NewStore(pool)
	trackerSvc := tracker.NewService(trackerStore, employeeStore, contractStore, ledgerStore, reportSvc, policy)
	trackerSvc.Mailer = email.New(cfg)
	trackerSvc.EmailFrom = cfg.EmailFrom
	trackerSvc.EmailTo = cfg.NoticeEmailTo

	jobsSvc := jobs.New(pool, cfg, trackerSvc)

	perms := auth.Permissions{}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(chimw.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if collector != nil {
		router.Get("/metricsz", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authStore, cfg.JWTSecret).RegisterRoutes(r)
		contractshandler.NewHandler(contractSvc, auditSvc, perms).RegisterRoutes(r)
		employeeshandler.NewHandler(employeeSvc, auditSvc, perms).RegisterRoutes(r)
		ledgerhandler.NewHandler(ledgerSvc, auditSvc, perms).RegisterRoutes(r)
		evaluationshandler.NewHandler(trackerSvc, jobsSvc, auditSvc, collector, cfg, perms).RegisterRoutes(r)
		reportshandler.NewHandler(reportSvc, auditSvc, perms).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc, perms).RegisterRoutes(r)
	})

	return &App{
		Config:    cfg,
		DB:        pool,
		Router:    router,
		Jobs:      jobsSvc,
		Collector: collector,
	}, nil
}

func (a *App) Close() {
	a.DB.Close()
}

func Run() {
	ctx := context.Background()
	cfg := config.Load()

	app, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.DB.Close()

	app.Jobs.Start(ctx)

	log.Printf("pact server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
