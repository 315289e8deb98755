// Package layout derives screen geometry from graph state: slot anchor
// positions, resize handles, and edge curves. It holds no state of its
// own; everything is recomputed from the node boxes on demand.
package layout

import (
	"math"

	"graphcanvas/domain/core/entities"
	"graphcanvas/domain/core/valueobjects"
	"graphcanvas/domain/schema"
	pkgerrors "graphcanvas/pkg/errors"
)

const (
	// SlotRadius is the hit radius of a slot anchor disk
	SlotRadius = 12.0

	// HandleSize is the side length of the square resize handle at a
	// node's bottom-right corner
	HandleSize = 10.0

	// ControlPointDistance is how far an edge's bezier control points sit
	// from the endpoints, along the anchor's outward normal
	ControlPointDistance = 75.0

	// EdgeHitThreshold is the maximum distance from an edge path that
	// still counts as a hit
	EdgeHitThreshold = 5.0

	// bezierSamples is the number of segments used when approximating a
	// curve for distance queries
	bezierSamples = 32
)

// SlotAnchorPosition returns where a slot's anchor disk sits on the
// node's bounding box. Slots sharing an edge are spaced evenly along it
// in declaration order.
func SlotAnchorPosition(node *entities.Node, slotName string) (valueobjects.Position, error) {
	slot, ok := node.Template().Slot(slotName)
	if !ok {
		return valueobjects.Position{}, pkgerrors.ErrSlotNotFound.
			WithDetail("node_id", node.ID().String()).
			WithDetail("slot", slotName)
	}

	siblings := node.Template().SlotsOnAnchor(slot.Anchor)
	index := 0
	for i, s := range siblings {
		if s.Name == slotName {
			index = i
			break
		}
	}

	return anchorPoint(node.Bounds(), slot.Anchor, index, len(siblings)), nil
}

// AnchorPositions returns every slot anchor of a node keyed by slot name
func AnchorPositions(node *entities.Node) map[string]valueobjects.Position {
	out := make(map[string]valueobjects.Position, len(node.Template().Slots))
	for _, slot := range node.Template().Slots {
		if pos, err := SlotAnchorPosition(node, slot.Name); err == nil {
			out[slot.Name] = pos
		}
	}
	return out
}

// anchorPoint spaces anchor i of n evenly along the given box edge.
// With n slots the edge is divided into n+1 gaps.
func anchorPoint(bounds valueobjects.Rect, anchor schema.SlotAnchor, index, total int) valueobjects.Position {
	origin := bounds.Origin()
	size := bounds.Size()
	frac := float64(index+1) / float64(total+1)

	var x, y float64
	switch anchor {
	case schema.AnchorLeft:
		x = origin.X()
		y = origin.Y() + size.Height()*frac
	case schema.AnchorRight:
		x = origin.X() + size.Width()
		y = origin.Y() + size.Height()*frac
	case schema.AnchorTop:
		x = origin.X() + size.Width()*frac
		y = origin.Y()
	case schema.AnchorBottom:
		x = origin.X() + size.Width()*frac
		y = origin.Y() + size.Height()
	}

	pos, _ := valueobjects.NewPosition(x, y)
	return pos
}

// ResizeHandleRect returns the square handle at the node's bottom-right
// corner, centered on the corner
func ResizeHandleRect(node *entities.Node) valueobjects.Rect {
	bounds := node.Bounds()
	corner := bounds.Origin()
	cornerX := corner.X() + bounds.Size().Width()
	cornerY := corner.Y() + bounds.Size().Height()

	origin, _ := valueobjects.NewPosition(cornerX-HandleSize/2, cornerY-HandleSize/2)
	size, _ := valueobjects.NewSize(HandleSize, HandleSize)
	return valueobjects.NewRect(origin, size)
}

// EdgeCurve is a cubic bezier joining two slot anchors
type EdgeCurve struct {
	Start    valueobjects.Position
	Control1 valueobjects.Position
	Control2 valueobjects.Position
	End      valueobjects.Position
}

// CurveForEdge builds the bezier for an edge from the current node boxes
func CurveForEdge(edge *entities.Edge, sourceNode, targetNode *entities.Node) (EdgeCurve, error) {
	start, err := SlotAnchorPosition(sourceNode, edge.Source().SlotName())
	if err != nil {
		return EdgeCurve{}, err
	}
	end, err := SlotAnchorPosition(targetNode, edge.Target().SlotName())
	if err != nil {
		return EdgeCurve{}, err
	}

	sourceSlot, _ := sourceNode.Template().Slot(edge.Source().SlotName())
	targetSlot, _ := targetNode.Template().Slot(edge.Target().SlotName())

	return NewEdgeCurve(start, end, sourceSlot.Anchor, targetSlot.Anchor), nil
}

// NewEdgeCurve places the control points ControlPointDistance out from
// each endpoint along its anchor's outward normal
func NewEdgeCurve(start, end valueobjects.Position, startAnchor, endAnchor schema.SlotAnchor) EdgeCurve {
	c1x, c1y := offsetAlongNormal(start, startAnchor)
	c2x, c2y := offsetAlongNormal(end, endAnchor)

	control1, _ := valueobjects.NewPosition(c1x, c1y)
	control2, _ := valueobjects.NewPosition(c2x, c2y)
	return EdgeCurve{Start: start, Control1: control1, Control2: control2, End: end}
}

// offsetAlongNormal pushes a point outward from the node box edge it sits on
func offsetAlongNormal(p valueobjects.Position, anchor schema.SlotAnchor) (float64, float64) {
	switch anchor {
	case schema.AnchorLeft:
		return p.X() - ControlPointDistance, p.Y()
	case schema.AnchorRight:
		return p.X() + ControlPointDistance, p.Y()
	case schema.AnchorTop:
		return p.X(), p.Y() - ControlPointDistance
	default: // AnchorBottom
		return p.X(), p.Y() + ControlPointDistance
	}
}

// PointAt evaluates the curve at parameter t in [0, 1]
func (c EdgeCurve) PointAt(t float64) valueobjects.Position {
	u := 1 - t
	x := u*u*u*c.Start.X() + 3*u*u*t*c.Control1.X() + 3*u*t*t*c.Control2.X() + t*t*t*c.End.X()
	y := u*u*u*c.Start.Y() + 3*u*u*t*c.Control1.Y() + 3*u*t*t*c.Control2.Y() + t*t*t*c.End.Y()
	pos, _ := valueobjects.NewPosition(x, y)
	return pos
}

// DistanceTo returns the approximate distance from a point to the curve,
// sampled over a fixed polyline. Sampling is deterministic so repeated
// queries always agree.
func (c EdgeCurve) DistanceTo(p valueobjects.Position) float64 {
	best := math.Inf(1)
	prev := c.PointAt(0)
	for i := 1; i <= bezierSamples; i++ {
		next := c.PointAt(float64(i) / bezierSamples)
		if d := distanceToSegment(p, prev, next); d < best {
			best = d
		}
		prev = next
	}
	return best
}

// distanceToSegment returns the distance from p to the segment ab
func distanceToSegment(p, a, b valueobjects.Position) float64 {
	abx := b.X() - a.X()
	aby := b.Y() - a.Y()
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return p.DistanceTo(a)
	}
	t := ((p.X()-a.X())*abx + (p.Y()-a.Y())*aby) / lenSq
	t = math.Max(0, math.Min(1, t))
	closest, _ := valueobjects.NewPosition(a.X()+t*abx, a.Y()+t*aby)
	return p.DistanceTo(closest)
}
