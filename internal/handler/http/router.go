package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth     AuthHandler
	Clock    ClockHandler
	Employee EmployeeHandler
	Shift    ShiftHandler
	Report   ReportHandler
	Payroll  PayrollHandler
	Events   EventHandler
}

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	LoginLimiter   *middleware.IPRateLimiter
}

func NewRouter(jwtService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)
	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if opts.LoginLimiter != nil {
					r.Use(middleware.RateLimitByIP(opts.LoginLimiter))
				}
				r.Post("/clock/login", h.Auth.LoginWithEmployeeCode)
				r.Post("/admin/login", h.Auth.LoginAdmin)
			})
		})

		// EventSource cannot send headers; the stream checks its own token.
		r.Get("/events", h.Events.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))

			r.Post("/auth/logout", h.Auth.Logout)

			r.Route("/clock", func(r chi.Router) {
				r.Use(middleware.EmployeeOnly)
				r.Get("/", h.Clock.Status)
				r.Post("/in", h.Clock.ClockIn)
				r.Post("/out", h.Clock.ClockOut)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Post("/events/token", h.Auth.SSEToken)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employee.ListEmployees)
					r.Post("/", h.Employee.CreateEmployee)
					r.Get("/{id}", h.Employee.GetEmployee)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Delete("/{id}", h.Employee.DeleteEmployee)
				})

				r.Route("/shifts", func(r chi.Router) {
					r.Get("/", h.Shift.ListShifts)
					r.Post("/", h.Shift.CreateShift)
					r.Put("/{id}", h.Shift.UpdateShift)
				})

				r.Route("/reports", func(r chi.Router) {
					r.Post("/hours", h.Report.HoursReport)
					r.Get("/hours.pdf", h.Report.HoursReportPDF)
				})

				r.Route("/payroll", func(r chi.Router) {
					r.Get("/", h.Payroll.GetPeriodSummary)
					r.Put("/adjustments", h.Payroll.SetAdjustment)
					r.Post("/adjustments/round", h.Payroll.RoundAdjustment)
					r.Post("/adjustments/round-all", h.Payroll.RoundAll)
					r.Get("/bonuses", h.Payroll.GetBonus)
					r.Put("/bonuses", h.Payroll.SetBonus)
					r.Get("/export", h.Payroll.Export)
					r.Get("/archive", h.Payroll.GetArchivedExport)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	return r
}
