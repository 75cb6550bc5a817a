// Package geometry provides the screen-space value types used by the window
// search: integer points and closed axis-aligned regions.
package geometry

import "fmt"

// Point is an absolute or window-relative pixel position.
type Point struct {
	X int
	Y int
}

// NewPoint returns the point (x, y).
func NewPoint(x, y int) Point {
	return Point{X: x, Y: y}
}

// AboveLeftOf reports whether p lies north-west of o, inclusive on both axes.
// A point is always above-and-left-of itself.
func (p Point) AboveLeftOf(o Point) bool {
	return p.X <= o.X && p.Y <= o.Y
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
