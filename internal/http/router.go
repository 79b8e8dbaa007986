package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/eventdesk/internal/http/export"
	"github.com/MrJamesThe3rd/eventdesk/internal/http/reports"
	"github.com/MrJamesThe3rd/eventdesk/internal/http/session"
	"github.com/MrJamesThe3rd/eventdesk/internal/http/tables"
)

func New(
	allowedOrigins []string,
	sessionV1 *session.Handler,
	tablesV1 *tables.Handler,
	reportsV1 *reports.Handler,
	exportV1 *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Location", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			sessionV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(sessionV1.RequireAuth)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				tablesV1.Routes(r)
				reportsV1.Routes(r)
			})

			r.Route("/export", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				exportV1.Routes(r)
			})
		})
	})

	return router
}
