package http

import (
	"log/slog"
	"os"

	"github.com/arcadia-hr/hrm-backend-go/internal/config"
	"github.com/arcadia-hr/hrm-backend-go/internal/handler/http/middleware"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authenticator middleware.Authenticator,
	authHandler AuthHandler,
	userHandler UserHandler,
	orgHandler OrgHandler,
	leaveHandler LeaveHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "arcadia-hrm"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(authenticator))

			r.Post("/auth/logout", authHandler.Logout)
			r.Patch("/auth/password", authHandler.ChangePassword)

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", userHandler.Me)
				r.Get("/subordinates", userHandler.Subordinates)

				r.Group(func(r chi.Router) {
					r.Use(middleware.StaffOnly)
					r.Post("/", userHandler.Onboard)
					r.Get("/", userHandler.List)
					r.Get("/{email}", userHandler.Get)
					r.Patch("/{id}", userHandler.Update)
					r.Delete("/{email}", userHandler.Delete)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.HROnly)
					r.Post("/manager", userHandler.SetManager)
					r.Post("/grade-change", userHandler.ChangeGrade)
				})
			})

			r.Route("/org", func(r chi.Router) {
				r.Get("/departments", orgHandler.ListDepartments)
				r.Get("/grade-categories", orgHandler.ListGradeCategories)
				r.Get("/grades", orgHandler.ListGrades)
				r.Get("/designations", orgHandler.ListDesignations)

				// Master data mutations are HR territory
				r.Group(func(r chi.Router) {
					r.Use(middleware.HROnly)
					r.Post("/departments", orgHandler.CreateDepartment)
					r.Patch("/departments/{id}", orgHandler.UpdateDepartment)
					r.Delete("/departments/{id}", orgHandler.DeleteDepartment)

					r.Post("/grades", orgHandler.CreateGrade)
					r.Patch("/grades/{id}", orgHandler.UpdateGrade)
					r.Delete("/grades/{id}", orgHandler.DeleteGrade)

					r.Post("/designations", orgHandler.CreateDesignation)
					r.Patch("/designations/{id}", orgHandler.RenameDesignation)
					r.Delete("/designations/{id}", orgHandler.DeleteDesignation)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/ledger", leaveHandler.MyLedger)
				r.Post("/", leaveHandler.Create)
				r.Get("/my", leaveHandler.MyRequests)
				r.Get("/managed", leaveHandler.ManagedRequests)
				r.Post("/{id}/approve", leaveHandler.Approve)
				r.Post("/{id}/reject", leaveHandler.Reject)
				r.Delete("/{id}", leaveHandler.Delete)
			})
		})
	})

	return r
}
