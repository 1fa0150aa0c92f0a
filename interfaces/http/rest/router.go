package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/CamilaNiebles/sls-assesment/infrastructure/di"
	"github.com/CamilaNiebles/sls-assesment/interfaces/http/rest/handlers"
	"github.com/CamilaNiebles/sls-assesment/interfaces/http/rest/middleware"
)

// Router creates and configures the HTTP router
type Router struct {
	container *di.Container
	logger    *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(container *di.Container) *Router {
	return &Router{
		container: container,
		logger:    container.Logger,
	}
}

// Setup configures all routes and middleware. The health endpoint stays
// outside the authenticated group so probes need no credentials.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.container.Config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	healthHandler := handlers.NewHealthHandler(rt.container.HealthService)
	router.Get("/health", healthHandler.Check)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(
			rt.container.Resolver,
			rt.container.RateLimiters.IP,
			rt.container.RateLimiters.User,
			rt.logger,
		))

		r.Route("/notes", func(r chi.Router) {
			noteHandler := handlers.NewNoteHandler(rt.container.NoteService, rt.logger)
			r.Post("/", noteHandler.CreateNote)
			r.Get("/", noteHandler.ListNotes)
			r.Put("/{noteID}", noteHandler.UpdateNote)
			r.Delete("/{noteID}", noteHandler.DeleteNote)
		})
	})

	return router
}
