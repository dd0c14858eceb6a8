package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/attendance-management/internal/attendance"
	"github.com/frahmantamala/attendance-management/internal/auth"
	"github.com/frahmantamala/attendance-management/internal/transport/middleware"
	"github.com/frahmantamala/attendance-management/internal/transport/swagger"
	"github.com/frahmantamala/attendance-management/internal/user"
	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, userHandler *user.Handler, attendanceHandler *attendance.Handler, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	adminOnly := auth.RequireRoles(logger, userDatamodel.RoleAdmin)

	// Global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Health probes and API docs live outside the /api prefix
	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", authHandler.Register)
			sr.Post("/login", authHandler.Login)

			sr.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)
				pr.Get("/profile", authHandler.Profile)

				pr.Group(func(ar chi.Router) {
					ar.Use(adminOnly)
					ar.Get("/admin", authHandler.Admin)
				})
			})
		})

		r.Route("/users", func(sr chi.Router) {
			sr.Use(authHandler.AuthMiddleware)

			sr.Get("/me", userHandler.GetCurrentUser)

			sr.Group(func(ar chi.Router) {
				ar.Use(adminOnly)
				ar.Get("/", userHandler.GetAllUsers)
			})
		})

		r.Route("/attendance", func(sr chi.Router) {
			sr.Use(authHandler.AuthMiddleware)

			sr.Post("/mark", attendanceHandler.Mark)
			sr.Get("/", attendanceHandler.List)
			sr.Get("/report", attendanceHandler.Report)
			sr.Get("/report/export", attendanceHandler.ExportXLSX)
			sr.Get("/report/export/pdf", attendanceHandler.ExportPDF)
		})
	})
}
