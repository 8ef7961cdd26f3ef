package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/qadam-hq/checkin-backend-go/internal/handler/http/middleware"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/jwt"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth      AuthHandler
	Checkin   CheckinHandler
	Employee  EmployeeHandler
	Schedule  ScheduleHandler
	Leave     LeaveHandler
	Status    StatusHandler
	Dashboard DashboardHandler
	Report    ReportHandler
}

func NewRouter(JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "checkin-qadam"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Bot-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/token", h.Auth.IssueToken)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Post("/checkin", h.Checkin.Verified)
			r.Get("/status/my", h.Status.GetMyStatus)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Register)
					r.Get("/{telegramID}", h.Employee.Get)
					r.Delete("/{telegramID}", h.Employee.Deactivate)
					r.Get("/{telegramID}/schedule", h.Schedule.GetEmployeeSchedule)
					r.Get("/{telegramID}/status", h.Status.GetStatus)
				})

				r.Route("/schedules", func(r chi.Router) {
					r.Post("/", h.Schedule.SetVersion)
					r.Post("/week", h.Schedule.SetWeek)
					r.Post("/import", h.Schedule.ImportCSV)
				})

				r.Route("/leave", func(r chi.Router) {
					r.Post("/", h.Leave.Grant)
					r.Delete("/", h.Leave.Cancel)
				})

				r.Route("/holidays", func(r chi.Router) {
					r.Get("/", h.Leave.ListHolidays)
					r.Post("/", h.Leave.SetHoliday)
					r.Delete("/{date}", h.Leave.RemoveHoliday)
				})

				r.Get("/dashboard", h.Dashboard.Snapshot)

				r.Route("/reports", func(r chi.Router) {
					r.Get("/period", h.Report.Period)
					r.Get("/monthly", h.Report.MonthlyMatrix)
					r.Get("/monthly/export", h.Report.MonthlyMatrixCSV)
					r.Get("/events/export", h.Report.ExportLedger)
				})

				r.Post("/checkin/record", h.Checkin.Record)
			})
		})
	})
	return r
}
