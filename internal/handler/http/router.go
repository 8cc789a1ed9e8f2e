package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/checkin-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	AllowedOrigins []string
	Logger         *slog.Logger
	LogLevel       slog.Level
}

type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Employee   EmployeeHandler
	Analytics  AnalyticsHandler
	Report     ReportHandler
	QRCode     QRCodeHandler
	Stream     StreamHandler
}

// tokenFromQuery reads the access token from the "access_token" query
// parameter, since browser EventSource clients cannot set headers.
func tokenFromQuery(r *http.Request) string {
	return r.URL.Query().Get("access_token")
}

func NewRouter(JWTService jwt.Service, opts RouterOptions, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	adminOnly := func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService))
		r.Use(middleware.AdminOnly)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Get("/qrcode.png", h.QRCode.Poster)

		r.Route("/auth", func(r chi.Router) {
			r.Get("/token", h.Attendance.IssueToken)
			r.Post("/login", h.Auth.Login)

			r.Group(func(r chi.Router) {
				adminOnly(r)
				r.Post("/logout", h.Auth.Logout)
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/", h.Attendance.CheckIn)

			// Admin only
			r.Group(func(r chi.Router) {
				adminOnly(r)
				r.Get("/today", h.Attendance.Today)
			})

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader, tokenFromQuery))
				r.Use(middleware.AuthRequired(JWTService))
				r.Use(middleware.AdminOnly)
				r.Get("/stream", h.Stream.CheckIns)
			})
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/directory", h.Employee.Directory)

			// Admin only
			r.Group(func(r chi.Router) {
				adminOnly(r)
				r.Get("/", h.Employee.ListEmployees)
				r.Post("/", h.Employee.CreateEmployee)
				r.Get("/export", h.Report.ExportRoster)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Employee.GetEmployee)
					r.Put("/", h.Employee.UpdateEmployee)
					r.Delete("/", h.Employee.DeactivateEmployee)
				})
			})
		})

		// Admin only
		r.Group(func(r chi.Router) {
			adminOnly(r)

			r.Route("/reports/attendance", func(r chi.Router) {
				r.Get("/", h.Attendance.ListByPeriod)
				r.Get("/{format}", h.Report.ExportAttendance)
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/", h.Analytics.GetMonthly)
				r.Get("/{format}", h.Report.ExportAnalytics)
			})
		})
	})
	return r
}
