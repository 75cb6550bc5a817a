package geometry

import "fmt"

// Region is a closed rectangle: both corners are inside it.
type Region struct {
	TopLeft     Point
	BottomRight Point
}

// NewRegion builds the region spanning topLeft to topLeft+(width, height).
// Negative sizes are accepted and yield an inverted region that contains no
// point; see Empty.
func NewRegion(topLeft Point, width, height int) Region {
	return Region{
		TopLeft:     topLeft,
		BottomRight: topLeft.Add(width, height),
	}
}

// PointRegion is the degenerate region holding only p.
func PointRegion(p Point) Region {
	return NewRegion(p, 0, 0)
}

// Contains reports whether p lies inside r, boundary included.
func (r Region) Contains(p Point) bool {
	return r.TopLeft.AboveLeftOf(p) && p.AboveLeftOf(r.BottomRight)
}

// Width returns the horizontal extent; negative for inverted regions.
func (r Region) Width() int { return r.BottomRight.X - r.TopLeft.X }

// Height returns the vertical extent; negative for inverted regions.
func (r Region) Height() int { return r.BottomRight.Y - r.TopLeft.Y }

// Empty reports whether r is inverted on either axis.
func (r Region) Empty() bool {
	return !r.TopLeft.AboveLeftOf(r.BottomRight)
}

func (r Region) String() string {
	return fmt.Sprintf("%sx%s", r.TopLeft, r.BottomRight)
}
