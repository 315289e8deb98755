package aggregates

import (
	"time"
)

// NodeSnapshot is the serializable view of a single node
type NodeSnapshot struct {
	ID        string            `json:"id"`
	Template  string            `json:"template"`
	X         float64           `json:"x"`
	Y         float64           `json:"y"`
	Width     float64           `json:"width"`
	Height    float64           `json:"height"`
	Fields    map[string]string `json:"fields"`
	CanDelete bool              `json:"can_delete"`
	CanMove   bool              `json:"can_move"`
}

// EdgeSnapshot is the serializable view of a single edge
type EdgeSnapshot struct {
	ID         string `json:"id"`
	SourceNode string `json:"source_node"`
	SourceSlot string `json:"source_slot"`
	TargetNode string `json:"target_node"`
	TargetSlot string `json:"target_slot"`
}

// IncompleteSlotSnapshot is the serializable form of a soft warning
type IncompleteSlotSnapshot struct {
	NodeID   string `json:"node_id"`
	Slot     string `json:"slot"`
	Required int    `json:"required"`
	Actual   int    `json:"actual"`
}

// GraphSnapshot is a full, point-in-time copy of the graph state.
// Nodes and edges are listed in insertion order, which is also the
// bottom-to-top z-order.
type GraphSnapshot struct {
	Nodes           []NodeSnapshot           `json:"nodes"`
	Edges           []EdgeSnapshot           `json:"edges"`
	IncompleteSlots []IncompleteSlotSnapshot `json:"incomplete_slots,omitempty"`
	TakenAt         time.Time                `json:"taken_at"`
}

// Snapshot captures the current graph state as a serializable copy.
// Mutating the snapshot never touches the live graph.
func (g *Graph) Snapshot() GraphSnapshot {
	snap := GraphSnapshot{
		Nodes:   make([]NodeSnapshot, 0, len(g.nodeOrder)),
		Edges:   make([]EdgeSnapshot, 0, len(g.edgeOrder)),
		TakenAt: time.Now(),
	}

	for _, id := range g.nodeOrder {
		node := g.nodes[id]
		fields := make(map[string]string)
		for name, value := range node.Fields() {
			fields[name] = value.String()
		}
		snap.Nodes = append(snap.Nodes, NodeSnapshot{
			ID:        node.ID().String(),
			Template:  node.TemplateName(),
			X:         node.Position().X(),
			Y:         node.Position().Y(),
			Width:     node.Size().Width(),
			Height:    node.Size().Height(),
			Fields:    fields,
			CanDelete: node.CanDelete(),
			CanMove:   node.CanMove(),
		})
	}

	for _, id := range g.edgeOrder {
		edge := g.edges[id]
		snap.Edges = append(snap.Edges, EdgeSnapshot{
			ID:         edge.ID().String(),
			SourceNode: edge.Source().NodeID().String(),
			SourceSlot: edge.Source().SlotName(),
			TargetNode: edge.Target().NodeID().String(),
			TargetSlot: edge.Target().SlotName(),
		})
	}

	for _, slot := range g.IncompleteSlots() {
		snap.IncompleteSlots = append(snap.IncompleteSlots, IncompleteSlotSnapshot{
			NodeID:   slot.NodeID.String(),
			Slot:     slot.SlotName,
			Required: slot.Required,
			Actual:   slot.Actual,
		})
	}

	return snap
}
