package http

import (
	"log/slog"
	"os"

	"github.com/emp-proj/employee-register-go/internal/domain/user"
	"github.com/emp-proj/employee-register-go/internal/handler/http/middleware"
	"github.com/emp-proj/employee-register-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	AllowedOrigins []string
	Env            string
	Version        string
	LogLevel       slog.Level
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, attendanceHandler AttendanceHandler, employeeHandler EmployeeHandler, dashboardHandler DashboardHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
		Level:       opts.LogLevel,
	})).With(
		slog.String("app", "employee-register"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/attendance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceView))
					r.Get("/", attendanceHandler.List)
					r.Get("/summary", attendanceHandler.Summary)
					r.Get("/calendar", attendanceHandler.Calendar)
					r.Get("/conflicts", attendanceHandler.Conflicts)
					r.Get("/{id}", attendanceHandler.Get)
				})

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", attendanceHandler.Create)
					r.Post("/bulk", attendanceHandler.BulkMark)
					r.Post("/refresh", attendanceHandler.Refresh)
					r.Put("/{id}", attendanceHandler.Update)
					r.Put("/{id}/overtime", attendanceHandler.UpdateOvertime)
					r.Delete("/{id}", attendanceHandler.Delete)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeView))
					r.Get("/", employeeHandler.ListEmployees)
					r.Get("/active", employeeHandler.ActiveDirectory)
					r.Get("/{id}", employeeHandler.GetEmployee)
					r.Get("/{id}/summary", employeeHandler.AttendanceSummary)
				})

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", employeeHandler.CreateEmployee)
					r.Put("/{id}", employeeHandler.UpdateEmployee)
					r.Delete("/{id}", employeeHandler.DeleteEmployee)
				})
			})

			r.With(middleware.RequirePermission(user.PermissionDashboardView)).
				Get("/dashboard", dashboardHandler.GetDashboard)
		})
	})
	return r
}
