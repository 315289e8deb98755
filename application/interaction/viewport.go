package interaction

import (
	"graphcanvas/domain/core/valueobjects"
)

const (
	// MinZoom and MaxZoom clamp the viewport scale
	MinZoom = 0.25
	MaxZoom = 4.0

	// zoomStep is the scale factor applied per wheel notch
	zoomStep = 1.1
)

// Viewport maps between surface (screen) coordinates and graph
// coordinates: screen = graph*scale + offset
type Viewport struct {
	offsetX float64
	offsetY float64
	scale   float64
}

// NewViewport creates an identity viewport
func NewViewport() *Viewport {
	return &Viewport{scale: 1.0}
}

// Scale returns the current zoom factor
func (v *Viewport) Scale() float64 {
	return v.scale
}

// Offset returns the current pan offset in screen units
func (v *Viewport) Offset() (float64, float64) {
	return v.offsetX, v.offsetY
}

// ToGraph converts a surface position to graph space
func (v *Viewport) ToGraph(screen valueobjects.Position) valueobjects.Position {
	pos, _ := valueobjects.NewPosition(
		(screen.X()-v.offsetX)/v.scale,
		(screen.Y()-v.offsetY)/v.scale,
	)
	return pos
}

// ToScreen converts a graph position to surface space
func (v *Viewport) ToScreen(graph valueobjects.Position) valueobjects.Position {
	pos, _ := valueobjects.NewPosition(
		graph.X()*v.scale+v.offsetX,
		graph.Y()*v.scale+v.offsetY,
	)
	return pos
}

// Pan shifts the viewport by a screen-space delta
func (v *Viewport) Pan(dx, dy float64) {
	v.offsetX += dx
	v.offsetY += dy
}

// SetOffset sets the pan offset directly
func (v *Viewport) SetOffset(x, y float64) {
	v.offsetX = x
	v.offsetY = y
}

// ZoomAt scales the viewport by delta wheel notches, clamped to
// [MinZoom, MaxZoom], keeping the given surface position fixed over the
// same graph point
func (v *Viewport) ZoomAt(screen valueobjects.Position, delta float64) {
	factor := zoomStep
	if delta < 0 {
		factor = 1 / zoomStep
	}

	newScale := v.scale * factor
	if newScale < MinZoom {
		newScale = MinZoom
	}
	if newScale > MaxZoom {
		newScale = MaxZoom
	}
	if newScale == v.scale {
		return
	}

	// Keep the graph point under the cursor stationary on screen
	ratio := newScale / v.scale
	v.offsetX = screen.X() - (screen.X()-v.offsetX)*ratio
	v.offsetY = screen.Y() - (screen.Y()-v.offsetY)*ratio
	v.scale = newScale
}
