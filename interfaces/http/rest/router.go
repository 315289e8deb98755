package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"graphcanvas/application/editor"
	"graphcanvas/infrastructure/config"
	"graphcanvas/interfaces/http/rest/handlers"
	"graphcanvas/interfaces/http/rest/middleware"
	"graphcanvas/interfaces/ws"
)

// Router creates and configures the HTTP router
type Router struct {
	host   *editor.Host
	hub    *ws.Hub
	cfg    *config.Config
	logger *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	host *editor.Host,
	hub *ws.Hub,
	cfg *config.Config,
	logger *zap.Logger,
) *Router {
	return &Router{
		host:   host,
		hub:    hub,
		cfg:    cfg,
		logger: logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// Event stream
	if rt.cfg.EnableWebSocket && rt.hub != nil {
		router.Get("/ws", rt.hub.HandleWS)
	}

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		// Node endpoints
		r.Route("/nodes", func(r chi.Router) {
			nodeHandler := handlers.NewNodeHandler(rt.host, rt.logger)
			r.Post("/", nodeHandler.CreateNode)
			r.Delete("/{nodeID}", nodeHandler.DeleteNode)
			r.Put("/{nodeID}/position", nodeHandler.MoveNode)
			r.Put("/{nodeID}/size", nodeHandler.ResizeNode)
			r.Put("/{nodeID}/fields/{field}", nodeHandler.SetField)
		})

		// Edge endpoints
		r.Route("/edges", func(r chi.Router) {
			edgeHandler := handlers.NewEdgeHandler(rt.host, rt.logger)
			r.Post("/", edgeHandler.CreateEdge)
			r.Delete("/{edgeID}", edgeHandler.DeleteEdge)
		})

		// Graph views
		graphHandler := handlers.NewGraphHandler(rt.host, rt.logger)
		r.Get("/graph", graphHandler.GetSnapshot)
		r.Get("/graph/warnings", graphHandler.GetWarnings)
		r.Get("/frame", graphHandler.GetFrame)

		// Normalized input events
		r.Post("/input", handlers.NewInputHandler(rt.host, rt.logger).HandleInput)

		// Schema registry
		r.Route("/schema", func(r chi.Router) {
			schemaHandler := handlers.NewSchemaHandler(rt.host, rt.logger)
			r.Get("/templates", schemaHandler.ListTemplates)
			r.Get("/groups", schemaHandler.ListGroups)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests. The editor is ready
// once the canvas schema has loaded, which happens before the server
// starts, so this only confirms the host is reachable.
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
