package picture

import (
	"math"

	"github.com/gogpu/gg"
)

// Rect is an axis-aligned rectangle in picture space.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewRect creates a rectangle from an origin and a size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + width, MaxY: y + height}
}

// NewRectFromPoints creates a normalized rectangle from two corners.
func NewRectFromPoints(x1, y1, x2, y2 float64) Rect {
	return Rect{
		MinX: math.Min(x1, x2),
		MinY: math.Min(y1, y2),
		MaxX: math.Max(x1, x2),
		MaxY: math.Max(y1, y2),
	}
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// IsZero reports whether r is the zero value.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// Path returns r as a closed four-point path.
func (r Rect) Path() *gg.Path {
	p := gg.NewPath()
	p.Rectangle(r.MinX, r.MinY, r.Width(), r.Height())
	return p
}

// Transform returns the bounding box of r under m.
func (r Rect) Transform(m gg.Matrix) Rect {
	corners := [4]gg.Point{
		m.TransformPoint(gg.Pt(r.MinX, r.MinY)),
		m.TransformPoint(gg.Pt(r.MaxX, r.MinY)),
		m.TransformPoint(gg.Pt(r.MaxX, r.MaxY)),
		m.TransformPoint(gg.Pt(r.MinX, r.MaxY)),
	}
	out := Rect{MinX: corners[0].X, MinY: corners[0].Y, MaxX: corners[0].X, MaxY: corners[0].Y}
	for _, c := range corners[1:] {
		out.MinX = math.Min(out.MinX, c.X)
		out.MinY = math.Min(out.MinY, c.Y)
		out.MaxX = math.Max(out.MaxX, c.X)
		out.MaxY = math.Max(out.MaxY, c.Y)
	}
	return out
}

// placeImage folds m into dst when m only scales by positive factors and
// translates. Otherwise dst stays local and m is returned for the target.
func placeImage(dst Rect, m gg.Matrix) (Rect, gg.Matrix) {
	if isAxisAligned(m) && m.A > 0 && m.E > 0 {
		return dst.Transform(m), gg.Identity()
	}
	return dst, m
}

// isAxisAligned reports whether m maps axis-aligned rectangles onto
// axis-aligned rectangles.
func isAxisAligned(m gg.Matrix) bool {
	const eps = 1e-12
	return math.Abs(m.B) < eps && math.Abs(m.D) < eps
}
