package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"graphcanvas/application/editor"
	"graphcanvas/pkg/common"
	"graphcanvas/pkg/utils"
)

// EdgeHandler handles edge-related HTTP requests
type EdgeHandler struct {
	host   *editor.Host
	logger *zap.Logger
}

// NewEdgeHandler creates a new edge handler
func NewEdgeHandler(host *editor.Host, logger *zap.Logger) *EdgeHandler {
	return &EdgeHandler{host: host, logger: logger}
}

// CreateEdgeRequest represents the request body for creating an edge.
// Endpoints may arrive in either order; the stored edge always runs
// from the outgoing slot to the incoming one.
type CreateEdgeRequest struct {
	NodeA string `json:"node_a" validate:"required"`
	SlotA string `json:"slot_a" validate:"required"`
	NodeB string `json:"node_b" validate:"required"`
	SlotB string `json:"slot_b" validate:"required"`
}

// CreateEdgeResponse represents the response for creating an edge
type CreateEdgeResponse struct {
	ID string `json:"id"`
}

// CreateEdge handles POST /edges
func (h *EdgeHandler) CreateEdge(w http.ResponseWriter, r *http.Request) {
	var req CreateEdgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	var edgeID string
	err := h.host.WithEditor(func(ed *editor.Editor) error {
		var err error
		edgeID, err = ed.AddEdge(req.NodeA, req.SlotA, req.NodeB, req.SlotB)
		return err
	})
	if err != nil {
		common.RespondDomainError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, CreateEdgeResponse{ID: edgeID})
}

// DeleteEdge handles DELETE /edges/{edgeID}
func (h *EdgeHandler) DeleteEdge(w http.ResponseWriter, r *http.Request) {
	edgeID := chi.URLParam(r, "edgeID")

	err := h.host.WithEditor(func(ed *editor.Editor) error {
		return ed.RemoveEdge(edgeID)
	})
	if err != nil {
		common.RespondDomainError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"id": edgeID})
}
