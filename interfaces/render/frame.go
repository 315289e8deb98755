// Package render turns graph and interaction state into a flat list of
// draw primitives. The builder is stateless: every frame is derived
// fresh, in graph coordinates, with the viewport transform attached for
// the host to apply.
package render

import (
	"graphcanvas/application/interaction"
	"graphcanvas/application/layout"
	"graphcanvas/domain/core/aggregates"
	"graphcanvas/domain/core/entities"
)

// NodeBox is a node's rendered rectangle
type NodeBox struct {
	ID        string            `json:"id"`
	Template  string            `json:"template"`
	X         float64           `json:"x"`
	Y         float64           `json:"y"`
	Width     float64           `json:"width"`
	Height    float64           `json:"height"`
	Fields    map[string]string `json:"fields"`
	Resizable bool              `json:"resizable"`
	Dragging  bool              `json:"dragging,omitempty"`
}

// SlotDisk is a slot anchor's rendered disk
type SlotDisk struct {
	NodeID    string  `json:"node_id"`
	Slot      string  `json:"slot"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Radius    float64 `json:"radius"`
	Direction string  `json:"direction"`
}

// EdgePath is an edge's rendered bezier
type EdgePath struct {
	ID  string  `json:"id"`
	X0  float64 `json:"x0"`
	Y0  float64 `json:"y0"`
	C1X float64 `json:"c1x"`
	C1Y float64 `json:"c1y"`
	C2X float64 `json:"c2x"`
	C2Y float64 `json:"c2y"`
	X1  float64 `json:"x1"`
	Y1  float64 `json:"y1"`
}

// HandleBox is a resize handle's rendered square
type HandleBox struct {
	NodeID string  `json:"node_id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Size   float64 `json:"size"`
}

// PendingLine is the rubber-band line of an in-flight connection gesture
type PendingLine struct {
	FromNode string  `json:"from_node"`
	FromSlot string  `json:"from_slot"`
	X0       float64 `json:"x0"`
	Y0       float64 `json:"y0"`
	X1       float64 `json:"x1"`
	Y1       float64 `json:"y1"`
}

// MenuPanel is the open context menu
type MenuPanel struct {
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Entries []string `json:"entries"`
}

// ViewTransform is the viewport mapping the host applies before drawing
type ViewTransform struct {
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
	Scale   float64 `json:"scale"`
}

// Frame is one complete rendering of the editor. Nodes and edges are
// listed bottom-to-top in z-order.
type Frame struct {
	Transform ViewTransform `json:"transform"`
	Mode      string        `json:"mode"`
	Edges     []EdgePath    `json:"edges"`
	Nodes     []NodeBox     `json:"nodes"`
	Slots     []SlotDisk    `json:"slots"`
	Handles   []HandleBox   `json:"handles"`
	Pending   *PendingLine  `json:"pending,omitempty"`
	Menu      *MenuPanel    `json:"menu,omitempty"`
}

// Builder derives frames from live editor state
type Builder struct{}

// NewBuilder creates a frame builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Build renders the current graph and interaction state into a frame
func (b *Builder) Build(graph *aggregates.Graph, machine *interaction.Machine) Frame {
	mode := machine.Mode()
	offX, offY := machine.Viewport().Offset()

	frame := Frame{
		Transform: ViewTransform{OffsetX: offX, OffsetY: offY, Scale: machine.Viewport().Scale()},
		Mode:      string(mode.Kind),
	}

	for _, edge := range graph.Edges() {
		sourceNode, ok := graph.Node(edge.Source().NodeID())
		if !ok {
			continue
		}
		targetNode, ok := graph.Node(edge.Target().NodeID())
		if !ok {
			continue
		}
		curve, err := layout.CurveForEdge(edge, sourceNode, targetNode)
		if err != nil {
			continue
		}
		frame.Edges = append(frame.Edges, EdgePath{
			ID:  edge.ID().String(),
			X0:  curve.Start.X(),
			Y0:  curve.Start.Y(),
			C1X: curve.Control1.X(),
			C1Y: curve.Control1.Y(),
			C2X: curve.Control2.X(),
			C2Y: curve.Control2.Y(),
			X1:  curve.End.X(),
			Y1:  curve.End.Y(),
		})
	}

	for _, node := range graph.Nodes() {
		frame.Nodes = append(frame.Nodes, b.buildNode(node, mode))
		frame.Slots = append(frame.Slots, b.buildSlots(node)...)
		if node.Template().Resizable {
			frame.Handles = append(frame.Handles, b.buildHandle(node, mode))
		}
	}

	if mode.Kind == interaction.ModeDrawingConnection {
		frame.Pending = b.buildPending(graph, mode)
	}
	if mode.Kind == interaction.ModeContextMenuOpen && mode.Menu != nil {
		panel := MenuPanel{X: mode.Menu.Position.X(), Y: mode.Menu.Position.Y()}
		for _, entry := range mode.Menu.Entries {
			panel.Entries = append(panel.Entries, entry.Label)
		}
		frame.Menu = &panel
	}

	return frame
}

// buildNode renders one node box, substituting the drag preview
// position while the node is mid-gesture
func (b *Builder) buildNode(node *entities.Node, mode interaction.Mode) NodeBox {
	x := node.Position().X()
	y := node.Position().Y()
	dragging := false
	if mode.Kind == interaction.ModeDraggingNode && mode.NodeID.Equals(node.ID()) && mode.DragLive {
		x = mode.DragPos.X()
		y = mode.DragPos.Y()
		dragging = true
	}

	fields := make(map[string]string)
	for name, value := range node.Fields() {
		fields[name] = value.String()
	}

	return NodeBox{
		ID:        node.ID().String(),
		Template:  node.TemplateName(),
		X:         x,
		Y:         y,
		Width:     node.Size().Width(),
		Height:    node.Size().Height(),
		Fields:    fields,
		Resizable: node.Template().Resizable,
		Dragging:  dragging,
	}
}

// buildSlots renders a node's anchor disks
func (b *Builder) buildSlots(node *entities.Node) []SlotDisk {
	var disks []SlotDisk
	for _, slot := range node.Template().Slots {
		pos, err := layout.SlotAnchorPosition(node, slot.Name)
		if err != nil {
			continue
		}
		disks = append(disks, SlotDisk{
			NodeID:    node.ID().String(),
			Slot:      slot.Name,
			X:         pos.X(),
			Y:         pos.Y(),
			Radius:    layout.SlotRadius,
			Direction: string(slot.Direction),
		})
	}
	return disks
}

// buildHandle renders a node's resize handle, substituting the live
// preview size during a resize gesture
func (b *Builder) buildHandle(node *entities.Node, mode interaction.Mode) HandleBox {
	width := node.Size().Width()
	height := node.Size().Height()
	if mode.Kind == interaction.ModeResizingNode && mode.NodeID.Equals(node.ID()) {
		width = mode.PreviewWidth
		height = mode.PreviewHeight
	}
	return HandleBox{
		NodeID: node.ID().String(),
		X:      node.Position().X() + width - layout.HandleSize/2,
		Y:      node.Position().Y() + height - layout.HandleSize/2,
		Size:   layout.HandleSize,
	}
}

// buildPending renders the rubber-band from the gesture origin to the pointer
func (b *Builder) buildPending(graph *aggregates.Graph, mode interaction.Mode) *PendingLine {
	node, ok := graph.Node(mode.Origin.NodeID())
	if !ok {
		return nil
	}
	start, err := layout.SlotAnchorPosition(node, mode.Origin.SlotName())
	if err != nil {
		return nil
	}
	return &PendingLine{
		FromNode: mode.Origin.NodeID().String(),
		FromSlot: mode.Origin.SlotName(),
		X0:       start.X(),
		Y0:       start.Y(),
		X1:       mode.PointerPos.X(),
		Y1:       mode.PointerPos.Y(),
	}
}
