package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"graphcanvas/application/editor"
	"graphcanvas/application/interaction"
	"graphcanvas/domain/core/valueobjects"
	"graphcanvas/pkg/common"
	"graphcanvas/pkg/utils"
)

// InputHandler feeds normalized input events into the interaction machine
type InputHandler struct {
	host   *editor.Host
	logger *zap.Logger
}

// NewInputHandler creates a new input handler
func NewInputHandler(host *editor.Host, logger *zap.Logger) *InputHandler {
	return &InputHandler{host: host, logger: logger}
}

// InputRequest is the wire form of a normalized input event
type InputRequest struct {
	Kind   string  `json:"kind" validate:"required,oneof=pointer_down pointer_move pointer_up wheel key_escape context_menu_request menu_select menu_dismiss field_activate field_input field_commit surface_resize"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Button string  `json:"button,omitempty" validate:"omitempty,oneof=left right"`
	Delta  float64 `json:"delta,omitempty"`
	Index  int     `json:"index,omitempty"`
	NodeID string  `json:"node_id,omitempty"`
	Field  string  `json:"field,omitempty"`
	Text   string  `json:"text,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// InputResponse reports the machine state after the event
type InputResponse struct {
	Mode string `json:"mode"`
}

// HandleInput handles POST /input
func (h *InputHandler) HandleInput(w http.ResponseWriter, r *http.Request) {
	var req InputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	ev, err := req.toEvent()
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	var mode string
	err = h.host.WithEditor(func(ed *editor.Editor) error {
		handleErr := ed.HandleInput(ev)
		mode = string(ed.Mode().Kind)
		return handleErr
	})
	if err != nil {
		// The machine is in a well-defined state even on rejection; the
		// client gets the rejection code
		common.RespondDomainError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, InputResponse{Mode: mode})
}

// toEvent converts the wire form to a machine event
func (r InputRequest) toEvent() (interaction.InputEvent, error) {
	pos, err := valueobjects.NewPosition(r.X, r.Y)
	if err != nil {
		return interaction.InputEvent{}, err
	}

	ev := interaction.InputEvent{
		Kind:     interaction.EventKind(r.Kind),
		Position: pos,
		Button:   interaction.Button(r.Button),
		Delta:    r.Delta,
		Index:    r.Index,
		Field:    r.Field,
		Text:     r.Text,
		Width:    r.Width,
		Height:   r.Height,
	}
	if ev.Button == "" {
		ev.Button = interaction.ButtonLeft
	}
	if r.NodeID != "" {
		nodeID, err := valueobjects.NewNodeIDFromString(r.NodeID)
		if err != nil {
			return interaction.InputEvent{}, err
		}
		ev.NodeID = nodeID
	}
	return ev, nil
}
