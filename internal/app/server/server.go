package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"leaveadmin/internal/domain/attendance"
	"leaveadmin/internal/domain/employee"
	"leaveadmin/internal/domain/leave"
	"leaveadmin/internal/domain/notifications"
	"leaveadmin/internal/domain/salary"
	"leaveadmin/internal/platform/config"
	cryptoutil "leaveadmin/internal/platform/crypto"
	"leaveadmin/internal/platform/db"
	"leaveadmin/internal/platform/email"
	"leaveadmin/internal/platform/jobs"
	"leaveadmin/internal/platform/metrics"
	"leaveadmin/internal/transport/http/api"
	attendancehandler "leaveadmin/internal/transport/http/handlers/attendance"
	authhandler "leaveadmin/internal/transport/http/handlers/auth"
	employeehandler "leaveadmin/internal/transport/http/handlers/employees"
	leavehandler "leaveadmin/internal/transport/http/handlers/leave"
	salaryhandler "leaveadmin/internal/transport/http/handlers/salary"
	"leaveadmin/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			slog.Error("migrations failed", "err", err)
			os.Exit(1)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			slog.Error("seed failed", "err", err)
			os.Exit(1)
		}
	}

	crypto, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		slog.Error("encryption setup failed", "err", err)
		os.Exit(1)
	}

	employeeSvc := employee.NewService(employee.NewStore(pool), crypto)
	leaveSvc := leave.NewService(leave.NewStore(pool))
	salarySvc := salary.NewService(salary.NewStore(pool), crypto, employeeSvc, leaveSvc, cfg.PayslipDir)
	attendanceSvc := attendance.NewService(attendance.NewStore(pool), cfg.AttendanceBreakMins)
	notifySvc := notifications.New(pool, email.New(cfg), leaveSvc, cfg.ManagerNotifyEmail)

	jobSvc := jobs.New(pool, cfg)
	jobSvc.RegisterDaily(jobs.JobDailyDigest, notifySvc.DailyDigest)
	jobSvc.RegisterDaily(jobs.JobMonthlyLeaves, notifySvc.MonthlyLeaveCheck)
	jobSvc.RegisterDaily(jobs.JobAnnualReset, employeeSvc.AnnualPoolReset)
	jobSvc.Start(ctx)

	collector := metrics.New()
	router := newRouter(cfg, pool, collector, employeeSvc, leaveSvc, salarySvc, attendanceSvc, notifySvc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", cfg.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGraceTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("graceful shutdown failed", "err", err)
	}
}

func newRouter(
	cfg config.Config,
	pool *pgxpool.Pool,
	collector *metrics.Collector,
	employeeSvc *employee.Service,
	leaveSvc *leave.Service,
	salarySvc *salary.Service,
	attendanceSvc *attendance.Service,
	notifySvc *notifications.Service,
) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.BodyLimit(1 << 20))
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
	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.With(middleware.LoginRateLimit(max(cfg.RateLimitPerMinute/4, 1), time.Minute)).
			Group(func(r chi.Router) {
				authhandler.NewHandler(employeeSvc, cfg.JWTSecret).RegisterRoutes(r)
			})
		employeehandler.NewHandler(employeeSvc).RegisterRoutes(r)
		leavehandler.NewHandler(leaveSvc, employeeSvc, salarySvc, notifySvc).RegisterRoutes(r)
		salaryhandler.NewHandler(salarySvc).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceSvc).RegisterRoutes(r)
	})

	return router
}
