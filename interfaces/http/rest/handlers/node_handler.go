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

// NodeHandler handles node-related HTTP requests
type NodeHandler struct {
	host   *editor.Host
	logger *zap.Logger
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(host *editor.Host, logger *zap.Logger) *NodeHandler {
	return &NodeHandler{host: host, logger: logger}
}

// CreateNodeRequest represents the request body for creating a node
type CreateNodeRequest struct {
	Template string  `json:"template" validate:"required"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// CreateNodeResponse represents the response for creating a node
type CreateNodeResponse struct {
	ID string `json:"id"`
}

// CreateNode handles POST /nodes
func (h *NodeHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req CreateNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	var nodeID string
	err := h.host.WithEditor(func(ed *editor.Editor) error {
		var err error
		nodeID, err = ed.AddNode(req.Template, req.X, req.Y)
		return err
	})
	if err != nil {
		common.RespondDomainError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, CreateNodeResponse{ID: nodeID})
}

// DeleteNode handles DELETE /nodes/{nodeID}
func (h *NodeHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")

	err := h.host.WithEditor(func(ed *editor.Editor) error {
		return ed.RemoveNode(nodeID)
	})
	if err != nil {
		common.RespondDomainError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"id": nodeID})
}

// MoveNodeRequest represents the request body for moving a node
type MoveNodeRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MoveNode handles PUT /nodes/{nodeID}/position
func (h *NodeHandler) MoveNode(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")

	var req MoveNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	err := h.host.WithEditor(func(ed *editor.Editor) error {
		return ed.MoveNode(nodeID, req.X, req.Y)
	})
	if err != nil {
		common.RespondDomainError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"id": nodeID})
}

// ResizeNodeRequest represents the request body for resizing a node
type ResizeNodeRequest struct {
	Width  float64 `json:"width" validate:"required,gt=0"`
	Height float64 `json:"height" validate:"required,gt=0"`
}

// ResizeNode handles PUT /nodes/{nodeID}/size
func (h *NodeHandler) ResizeNode(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")

	var req ResizeNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	err := h.host.WithEditor(func(ed *editor.Editor) error {
		return ed.ResizeNode(nodeID, req.Width, req.Height)
	})
	if err != nil {
		common.RespondDomainError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"id": nodeID})
}

// SetFieldRequest represents the request body for assigning a field
type SetFieldRequest struct {
	Value string `json:"value"`
}

// SetField handles PUT /nodes/{nodeID}/fields/{field}
func (h *NodeHandler) SetField(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")
	field := chi.URLParam(r, "field")

	var req SetFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	err := h.host.WithEditor(func(ed *editor.Editor) error {
		return ed.SetField(nodeID, field, req.Value)
	})
	if err != nil {
		common.RespondDomainError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"id": nodeID, "field": field})
}
