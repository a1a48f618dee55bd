package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	debatehandler "debate-arena/internal/handler/debate"
	wshandler "debate-arena/internal/handler/ws"
	"debate-arena/internal/hub"
	middlewarePkg "debate-arena/internal/middleware"
	"debate-arena/internal/observability"
	debateservice "debate-arena/internal/service/debate"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(store *debateservice.Service, coord *debateservice.Coordinator, h *hub.Hub, metrics *observability.Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	debatehandler.New(store, metrics).RegisterRoutes(r)
	wshandler.New(coord, h, metrics).RegisterRoutes(r)

	r.Handle("/metrics", observability.MetricsHandler())

	return r
}
