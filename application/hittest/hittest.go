// Package hittest resolves pointer positions to graph targets.
// Resolution is deterministic: identical graph state and pointer
// position always produce the same result.
package hittest

import (
	"graphcanvas/application/layout"
	"graphcanvas/domain/core/aggregates"
	"graphcanvas/domain/core/entities"
	"graphcanvas/domain/core/valueobjects"
)

// TargetKind tags the variant of a hit result
type TargetKind string

const (
	TargetNothing      TargetKind = "nothing"
	TargetResizeHandle TargetKind = "resize_handle"
	TargetSlot         TargetKind = "slot"
	TargetNode         TargetKind = "node"
	TargetEdge         TargetKind = "edge"
)

// Result is what the pointer landed on. Exactly the fields implied by
// Kind are meaningful.
type Result struct {
	Kind     TargetKind
	NodeID   valueobjects.NodeID
	Endpoint valueobjects.Endpoint
	EdgeID   valueobjects.EdgeID
}

// IsNothing reports whether the pointer hit empty canvas
func (r Result) IsNothing() bool {
	return r.Kind == TargetNothing
}

// Tester resolves pointer hits against a graph
type Tester struct {
	graph *aggregates.Graph
}

// NewTester creates a hit tester over the given graph
func NewTester(graph *aggregates.Graph) *Tester {
	return &Tester{graph: graph}
}

// HitTest resolves a pointer position in graph space. Priority runs
// resize handle, then slot anchor, then node body, then edge path; ties
// within a category go to the most recently added item.
func (t *Tester) HitTest(p valueobjects.Position) Result {
	nodes := t.graph.Nodes()

	// Resize handles, topmost node first
	for i := len(nodes) - 1; i >= 0; i-- {
		node := nodes[i]
		if !node.Template().Resizable {
			continue
		}
		if layout.ResizeHandleRect(node).Contains(p) {
			return Result{Kind: TargetResizeHandle, NodeID: node.ID()}
		}
	}

	// Slot anchor disks
	for i := len(nodes) - 1; i >= 0; i-- {
		node := nodes[i]
		if endpoint, ok := hitSlot(node, p); ok {
			return Result{Kind: TargetSlot, NodeID: node.ID(), Endpoint: endpoint}
		}
	}

	// Node bodies
	for i := len(nodes) - 1; i >= 0; i-- {
		if nodes[i].Bounds().Contains(p) {
			return Result{Kind: TargetNode, NodeID: nodes[i].ID()}
		}
	}

	// Edge paths
	edges := t.graph.Edges()
	for i := len(edges) - 1; i >= 0; i-- {
		edge := edges[i]
		sourceNode, ok := t.graph.Node(edge.Source().NodeID())
		if !ok {
			continue
		}
		targetNode, ok := t.graph.Node(edge.Target().NodeID())
		if !ok {
			continue
		}
		curve, err := layout.CurveForEdge(edge, sourceNode, targetNode)
		if err != nil {
			continue
		}
		if curve.DistanceTo(p) <= layout.EdgeHitThreshold {
			return Result{Kind: TargetEdge, EdgeID: edge.ID()}
		}
	}

	return Result{Kind: TargetNothing}
}

// hitSlot checks the node's anchor disks, in slot declaration order
func hitSlot(node *entities.Node, p valueobjects.Position) (valueobjects.Endpoint, bool) {
	for _, slot := range node.Template().Slots {
		anchor, err := layout.SlotAnchorPosition(node, slot.Name)
		if err != nil {
			continue
		}
		if anchor.DistanceTo(p) <= layout.SlotRadius {
			endpoint, err := valueobjects.NewEndpoint(node.ID(), slot.Name)
			if err != nil {
				continue
			}
			return endpoint, true
		}
	}
	return valueobjects.Endpoint{}, false
}
