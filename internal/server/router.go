// Package server assembles the HTTP router.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	appMiddleware "github.com/radif/attachments/internal/middleware"
	"github.com/radif/attachments/internal/response"
	"github.com/radif/attachments/internal/upload"

	_ "github.com/radif/attachments/docs/swagger"
)

// Deps are the collaborators the router dispatches to.
type Deps struct {
	Upload         *upload.Handler
	JWTSecret      string
	AllowedOrigins []string
}

// NewRouter builds the chi router with middleware and all routes mounted.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger UI at /swagger/index.html
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.RequireAuth(d.JWTSecret))
		r.Post("/upload", d.Upload.Upload)
		r.Post("/api/v1/upload", d.Upload.Upload)
	})

	return r
}
