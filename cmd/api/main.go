package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/config"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/postgresql"
	authService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/employee"
	payrollService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/report"
	shiftService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/shift"
	"github.com/go-chi/httplog/v3"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeclock"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	loc := cfg.Location()

	tx := postgresql.NewTransactor(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	overrideRepo := postgresql.NewOverrideRepository(db)

	if cfg.App.SeedTestEmployee {
		if _, err := fixtures.SeedTestEmployee(ctx, employeeRepo); err != nil {
			return err
		}
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()
	defer hub.Close()

	employeeSvc := employeeService.NewEmployeeService(tx, employeeRepo, shiftRepo)
	shiftSvc := shiftService.NewShiftService(tx, shiftRepo, employeeRepo, hub, loc)
	payrollSvc := payrollService.NewPayrollService(tx, employeeRepo, shiftRepo, overrideRepo, fileStorage, payrollService.Options{
		ExportIncrement: cfg.Payroll.ExportIncrement,
		RoundIncrement:  cfg.Payroll.RoundIncrement,
		Location:        loc,
	})
	reportSvc := reportService.NewReportService(shiftRepo, employeeRepo, loc)
	authSvc, err := authService.NewAuthService(employeeRepo, JWTService, authService.AdminCredentials{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
	})
	if err != nil {
		return fmt.Errorf("init auth: %w", err)
	}

	scheduler := cron.NewScheduler()
	cron.NewPayrollJobs(payrollSvc, loc).RegisterJobs(scheduler)
	cron.RegisterTokenPruning(scheduler, JWTService)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Auth:     appHTTP.NewAuthHandler(authSvc),
		Clock:    appHTTP.NewClockHandler(shiftSvc),
		Employee: appHTTP.NewEmployeeHandler(employeeSvc),
		Shift:    appHTTP.NewShiftHandler(shiftSvc),
		Report:   appHTTP.NewReportHandler(reportSvc),
		Payroll:  appHTTP.NewPayrollHandler(payrollSvc),
		Events:   appHTTP.NewEventHandler(hub, JWTService),
	}, appHTTP.RouterOptions{
		Logger:         logger,
		AllowedOrigins: cfg.App.AllowedOrigins,
		LoginLimiter: middleware.NewIPRateLimiter(
			rate.Limit(float64(cfg.RateLimit.LoginPerMinute)/60),
			cfg.RateLimit.LoginBurst,
		),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", srv.Addr, "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	// Event streams hold connections open until the hub closes them.
	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
