package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"graphcanvas/application/editor"
	"graphcanvas/domain/core/aggregates"
	"graphcanvas/interfaces/render"
	"graphcanvas/pkg/common"
)

// GraphHandler serves read-only views of the editor state
type GraphHandler struct {
	host   *editor.Host
	frames *render.Builder
	logger *zap.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(host *editor.Host, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{host: host, frames: render.NewBuilder(), logger: logger}
}

// GetSnapshot handles GET /graph
func (h *GraphHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	var snap aggregates.GraphSnapshot
	_ = h.host.WithEditor(func(ed *editor.Editor) error {
		snap = ed.Snapshot()
		return nil
	})
	common.RespondJSON(w, http.StatusOK, snap)
}

// GetFrame handles GET /frame: the full draw-primitive rendering of the
// current graph and interaction state
func (h *GraphHandler) GetFrame(w http.ResponseWriter, r *http.Request) {
	var frame render.Frame
	_ = h.host.WithEditor(func(ed *editor.Editor) error {
		frame = h.frames.Build(ed.Graph(), ed.Machine())
		return nil
	})
	common.RespondJSON(w, http.StatusOK, frame)
}

// IncompleteSlotView is one under-connected slot in the warnings list
type IncompleteSlotView struct {
	NodeID   string `json:"node_id"`
	Slot     string `json:"slot"`
	Required int    `json:"required"`
	Actual   int    `json:"actual"`
}

// GetWarnings handles GET /graph/warnings
func (h *GraphHandler) GetWarnings(w http.ResponseWriter, r *http.Request) {
	views := []IncompleteSlotView{}
	_ = h.host.WithEditor(func(ed *editor.Editor) error {
		for _, slot := range ed.IncompleteSlots() {
			views = append(views, IncompleteSlotView{
				NodeID:   slot.NodeID.String(),
				Slot:     slot.SlotName,
				Required: slot.Required,
				Actual:   slot.Actual,
			})
		}
		return nil
	})
	common.RespondJSON(w, http.StatusOK, views)
}
