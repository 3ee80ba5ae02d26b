// Package geometry holds the cell-based value types shared by the layout
// engine, the container and the renderer.
package geometry

import "fmt"

type Point struct {
	X int
	Y int
}

func NewPoint(x, y int) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

type Size struct {
	Width  int
	Height int
}

func NewSize(width, height int) Size {
	return Size{Width: width, Height: height}
}

// IsPositive reports whether both dimensions are strictly positive. A
// viewport must satisfy this before it is accepted.
func (s Size) IsPositive() bool {
	return s.Width > 0 && s.Height > 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// A Rect is an origin plus a size. Rects with a zero height are valid and
// are how collapsed children are reported.
type Rect struct {
	Origin Point
	Size   Size
}

func NewRect(x, y, width, height int) Rect {
	return Rect{
		Origin: Point{X: x, Y: y},
		Size:   Size{Width: width, Height: height},
	}
}

func (r Rect) MinY() int { return r.Origin.Y }

// MaxY is exclusive.
func (r Rect) MaxY() int { return r.Origin.Y + r.Size.Height }

// ContainsY reports whether row y falls inside the rect's vertical span.
func (r Rect) ContainsY(y int) bool {
	return y >= r.MinY() && y < r.MaxY()
}

func (r Rect) String() string {
	return fmt.Sprintf("{%s %s}", r.Origin, r.Size)
}
