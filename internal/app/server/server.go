package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/core"
	"hrpay/internal/domain/leave"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/platform/config"
	"hrpay/internal/platform/db"
	"hrpay/internal/platform/metrics"
	attendancehandler "hrpay/internal/transport/http/handlers/attendance"
	authhandler "hrpay/internal/transport/http/handlers/auth"
	corehandler "hrpay/internal/transport/http/handlers/core"
	leavehandler "hrpay/internal/transport/http/handlers/leave"
	payrollhandler "hrpay/internal/transport/http/handlers/payroll"
	"hrpay/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Router http.Handler
}

// New connects, migrates, seeds, and assembles the router. Close the
// returned app when done.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
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

	app := &App{Config: cfg, DB: pool}
	app.Router = buildRouter(cfg, pool)
	return app, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

func buildRouter(cfg config.Config, pool *pgxpool.Pool) http.Handler {
	attendancePolicy := attendance.Policy{
		WorkdayStart: cfg.WorkdayStart,
		WorkdayHours: cfg.WorkdayHours,
	}
	payrollPolicy := payroll.Policy{
		Rates: payroll.PenaltyRates{
			LatePerDay:       cfg.LatePenaltyPerDay,
			AbsentPerDay:     cfg.AbsentPenaltyPerDay,
			IncompletePerDay: cfg.IncompletePenaltyPerDay,
		},
		LeavePenaltyThreshold: cfg.LeavePenaltyThreshold,
		OvertimeHourlyRate:    cfg.OvertimeHourlyRate,
	}

	coreStore := core.NewStore(pool)
	attendanceStore := attendance.NewStore(pool, attendancePolicy)
	leaveStore := leave.NewStore(pool)
	payrollService := payroll.NewService(payroll.NewDataStore(pool, attendancePolicy), payrollPolicy)
	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(collector))
	}

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

	if cfg.MetricsEnabled {
		router.With(middleware.RequireManager).Get("/metricsz", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(collector.Snapshot()); err != nil {
				log.Printf("metrics write failed: %v", err)
			}
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(pool, cfg.JWTSecret, cfg.TokenTTL)
		r.With(middleware.LoginRateLimit(cfg.RateLimitPerMinute, time.Minute)).
			Post("/auth/login", authHandler.HandleLogin)

		corehandler.NewHandler(coreStore).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceStore).RegisterRoutes(r)
		leavehandler.NewHandler(leaveStore, coreStore).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollService, collector).RegisterRoutes(r)
	})

	return router
}

// Run builds the app from the environment and serves until the listener
// fails.
func Run() {
	cfg := config.Load()
	ctx := context.Background()

	app, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("hrpay server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
