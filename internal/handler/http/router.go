package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/staffdesk/staffdesk-backend-go/internal/handler/http/middleware"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	Employee     EmployeeHandler
	Attendance   AttendanceHandler
	Payroll      PayrollHandler
	Leave        LeaveHandler
	Announcement AnnouncementHandler
}

func NewRouter(jwtService jwt.Service, handlers Handlers, uploadsDir, frontendURL, appEnv string) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "staffdesk"),
		slog.String("env", appEnv),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Stored photos are served directly from disk.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", handlers.Auth.Login)
			r.Post("/refresh", handlers.Auth.RefreshToken)
			r.Post("/logout", handlers.Auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

				r.Get("/me", handlers.Auth.Me)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/register", handlers.Auth.Register)
					r.Post("/link-employee", handlers.Auth.LinkEmployee)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/{id}", handlers.Employee.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", handlers.Employee.Create)
					r.Get("/", handlers.Employee.List)
					r.Get("/counts", handlers.Employee.Counts)
					r.Put("/{id}", handlers.Employee.Update)
					r.Post("/{id}/photo", handlers.Employee.UpdatePhoto)
					r.Delete("/{id}", handlers.Employee.Delete)
				})
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/clock-in", handlers.Attendance.ClockIn)
				r.Post("/clock-out", handlers.Attendance.ClockOut)
				r.Get("/employee/{employeeID}/day", handlers.Attendance.ListByEmployeeAndDate)
				r.Get("/employee/{employeeID}", handlers.Attendance.ListByEmployee)

				r.With(middleware.AdminOnly).Post("/reset", handlers.Attendance.Reset)
			})

			r.Route("/payrolls", func(r chi.Router) {
				r.Get("/my", handlers.Payroll.ListMine)
				r.Get("/{id}/payslip", handlers.Payroll.DownloadPayslip)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", handlers.Payroll.Create)
					r.Get("/uncompleted", handlers.Payroll.ListUncompleted)
					r.Get("/completed", handlers.Payroll.ListCompleted)
					r.Get("/pending-count", handlers.Payroll.PendingCount)
					r.Get("/check-incomplete/{employeeID}", handlers.Payroll.IncompleteCheck)
					r.Get("/days-worked/{employeeID}", handlers.Payroll.DaysWorked)
					r.Get("/{id}", handlers.Payroll.Get)
					r.Put("/{id}/complete", handlers.Payroll.MarkCompleted)
					r.Delete("/{id}", handlers.Payroll.Delete)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", handlers.Leave.Submit)
				r.Get("/my", handlers.Leave.ListMine)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", handlers.Leave.ListAll)
					r.Put("/{id}/approve", handlers.Leave.Approve)
					r.Put("/{id}/reject", handlers.Leave.Reject)
				})
			})

			r.Route("/announcements", func(r chi.Router) {
				r.Get("/", handlers.Announcement.List)
				r.Get("/unread-count", handlers.Announcement.UnreadCount)
				r.Post("/mark-read", handlers.Announcement.MarkAllRead)

				r.With(middleware.AdminOnly).Post("/", handlers.Announcement.Post)
			})
		})
	})

	return r
}
