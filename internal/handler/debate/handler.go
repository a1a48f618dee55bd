package debate

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"debate-arena/internal/observability"
	debateservice "debate-arena/internal/service/debate"
	"debate-arena/pkg/utils"
)

// Handler exposes the listing/creation endpoints over the debate registry.
type Handler struct {
	svc     *debateservice.Service
	metrics *observability.Metrics
}

// New creates the debate CRUD handler.
func New(svc *debateservice.Service, metrics *observability.Metrics) *Handler {
	return &Handler{svc: svc, metrics: metrics}
}

// RegisterRoutes mounts the debate routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/sessions", h.handleListOpen)
	r.Post("/sessions", h.handleCreate)
}

// handleListOpen returns the ids of all open debates.
func (h *Handler) handleListOpen(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.svc.ListOpenIDs(r.Context()))
}

// handleCreate provisions a fresh open debate.
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Create(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.metrics.DebateOpened()
	utils.RespondJSON(w, http.StatusCreated, map[string]string{"id": d.ID})
}
