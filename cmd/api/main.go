package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emp-proj/employee-register-go/internal/config"
	appHTTP "github.com/emp-proj/employee-register-go/internal/handler/http"
	"github.com/emp-proj/employee-register-go/internal/pkg/cron"
	"github.com/emp-proj/employee-register-go/internal/pkg/database"
	"github.com/emp-proj/employee-register-go/internal/pkg/jwt"
	"github.com/emp-proj/employee-register-go/internal/repository/postgresql"
	attendanceService "github.com/emp-proj/employee-register-go/internal/service/attendance"
	dashboardService "github.com/emp-proj/employee-register-go/internal/service/dashboard"
	employeeService "github.com/emp-proj/employee-register-go/internal/service/employee"
	"github.com/go-chi/httplog/v3"
)

const version = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	level := parseLevel(cfg.App.LogLevel)
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
		Level:       level,
	})).With(slog.String("app", "employee-register")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	now := func() time.Time { return time.Now().In(cfg.App.Timezone) }

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	store := attendanceService.NewStore(now)
	if err := store.Refresh(ctx, attendanceRepo); err != nil {
		// The API still serves writes; the refresh job retries the load.
		slog.Error("Initial attendance load failed", "error", err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, store, attendanceService.Options{
		WeekStart:       cfg.Attendance.WeekStart,
		BulkConcurrency: cfg.Attendance.BulkConcurrency,
		Now:             now,
	})
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, attendanceRepo, store)
	dashboardSvc := dashboardService.NewDashboardService(store, employeeRepo, now)

	scheduler := cron.NewScheduler(ctx)
	cron.NewAttendanceJobs(attendanceSvc).RegisterJobs(scheduler, cfg.Attendance.RefreshInterval, cfg.Attendance.DuplicateInterval)
	scheduler.Start()

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			AllowedOrigins: cfg.App.AllowedOrigins,
			Env:            cfg.App.Env,
			Version:        version,
			LogLevel:       level,
		},
		JWTService,
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewEmployeeHandler(employeeSvc, attendanceSvc),
		appHTTP.NewDashboardHandler(dashboardSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	scheduler.Stop()
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
