package valueobjects

import (
	"math"

	pkgerrors "graphcanvas/pkg/errors"
)

// Position is a value object representing coordinates in 2D graph space
type Position struct {
	x float64
	y float64
}

// NewPosition creates a position with validation
func NewPosition(x, y float64) (Position, error) {
	if !isFinite(x) || !isFinite(y) {
		return Position{}, pkgerrors.ErrInvalidPosition.
			WithDetail("x", x).
			WithDetail("y", y)
	}
	return Position{x: x, y: y}, nil
}

// X returns the X coordinate
func (p Position) X() float64 {
	return p.x
}

// Y returns the Y coordinate
func (p Position) Y() float64 {
	return p.y
}

// DistanceTo calculates the Euclidean distance to another position
func (p Position) DistanceTo(other Position) float64 {
	dx := p.x - other.x
	dy := p.y - other.y
	return math.Sqrt(dx*dx + dy*dy)
}

// Equals checks if two positions are equal
func (p Position) Equals(other Position) bool {
	const epsilon = 1e-9
	return math.Abs(p.x-other.x) < epsilon &&
		math.Abs(p.y-other.y) < epsilon
}

// Translate moves the position by the given offsets
func (p Position) Translate(dx, dy float64) (Position, error) {
	return NewPosition(p.x+dx, p.y+dy)
}

// SnapToGrid rounds both coordinates to the nearest multiple of gridSize.
// A non-positive gridSize leaves the position unchanged.
func (p Position) SnapToGrid(gridSize float64) Position {
	if gridSize <= 0 {
		return p
	}
	return Position{
		x: math.Round(p.x/gridSize) * gridSize,
		y: math.Round(p.y/gridSize) * gridSize,
	}
}

// Size is a value object representing node dimensions
type Size struct {
	width  float64
	height float64
}

// NewSize creates a size with validation
func NewSize(width, height float64) (Size, error) {
	if !isFinite(width) || !isFinite(height) || width <= 0 || height <= 0 {
		return Size{}, pkgerrors.ErrInvalidSize.
			WithDetail("width", width).
			WithDetail("height", height)
	}
	return Size{width: width, height: height}, nil
}

// Width returns the width
func (s Size) Width() float64 {
	return s.width
}

// Height returns the height
func (s Size) Height() float64 {
	return s.height
}

// Equals checks if two sizes are equal
func (s Size) Equals(other Size) bool {
	const epsilon = 1e-9
	return math.Abs(s.width-other.width) < epsilon &&
		math.Abs(s.height-other.height) < epsilon
}

// Rect is an axis-aligned bounding box in graph space
type Rect struct {
	origin Position
	size   Size
}

// NewRect creates a rectangle from an origin and size
func NewRect(origin Position, size Size) Rect {
	return Rect{origin: origin, size: size}
}

// Origin returns the top-left corner
func (r Rect) Origin() Position {
	return r.origin
}

// Size returns the rectangle's dimensions
func (r Rect) Size() Size {
	return r.size
}

// Contains reports whether the point lies within the rectangle, edges included
func (r Rect) Contains(p Position) bool {
	return p.x >= r.origin.x && p.x <= r.origin.x+r.size.width &&
		p.y >= r.origin.y && p.y <= r.origin.y+r.size.height
}

// Center returns the rectangle's center point
func (r Rect) Center() Position {
	return Position{
		x: r.origin.x + r.size.width/2,
		y: r.origin.y + r.size.height/2,
	}
}

// isFinite checks if a coordinate is a valid finite number
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
