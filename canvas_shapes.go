package picture

import (
	"math"

	"github.com/gogpu/gg"
)

// Shape helpers build the outline in local coordinates with gg.Path and
// append it to the current path through the canvas transform.

// DrawPoint adds a small circle at (x, y).
func (c *RecordingCanvas) DrawPoint(x, y, radius float64) {
	c.DrawCircle(x, y, radius)
}

// DrawLine adds a line segment as a new subpath.
func (c *RecordingCanvas) DrawLine(x1, y1, x2, y2 float64) {
	c.MoveTo(x1, y1)
	c.LineTo(x2, y2)
}

// DrawRectangle adds a closed rectangle.
func (c *RecordingCanvas) DrawRectangle(x, y, w, h float64) {
	local := gg.NewPath()
	local.Rectangle(x, y, w, h)
	c.appendLocal("DrawRectangle", local, false)
}

// DrawRoundedRectangle adds a rectangle with rounded corners. The radius
// is clamped to half the shorter side.
func (c *RecordingCanvas) DrawRoundedRectangle(x, y, w, h, radius float64) {
	local := gg.NewPath()
	local.RoundedRectangle(x, y, w, h, radius)
	c.appendLocal("DrawRoundedRectangle", local, false)
}

// DrawCircle adds a closed circle.
func (c *RecordingCanvas) DrawCircle(x, y, radius float64) {
	local := gg.NewPath()
	local.Circle(x, y, radius)
	c.appendLocal("DrawCircle", local, false)
}

// DrawEllipse adds a closed ellipse.
func (c *RecordingCanvas) DrawEllipse(x, y, rx, ry float64) {
	local := gg.NewPath()
	local.Ellipse(x, y, rx, ry)
	c.appendLocal("DrawEllipse", local, false)
}

// DrawArc adds a circular arc from angle1 to angle2 in radians. If the
// current path has a current point, the arc is joined to it with a line.
func (c *RecordingCanvas) DrawArc(x, y, radius, angle1, angle2 float64) {
	local := gg.NewPath()
	local.Arc(x, y, radius, angle1, angle2)
	c.appendLocal("DrawArc", local, true)
}

// DrawEllipticalArc adds an arc of the ellipse centered at (x, y).
func (c *RecordingCanvas) DrawEllipticalArc(x, y, rx, ry, angle1, angle2 float64) {
	const segments = 16
	local := gg.NewPath()
	for i := 0; i <= segments; i++ {
		t := angle1 + (angle2-angle1)*float64(i)/segments
		px, py := x+rx*math.Cos(t), y+ry*math.Sin(t)
		if i == 0 {
			local.MoveTo(px, py)
		} else {
			local.LineTo(px, py)
		}
	}
	c.appendLocal("DrawEllipticalArc", local, true)
}

// appendLocal maps local through the canvas transform onto the current
// path. With connect set, a leading MoveTo becomes a LineTo when the
// current path already has a current point.
func (c *RecordingCanvas) appendLocal(op string, local *gg.Path, connect bool) {
	if !c.live(op) {
		return
	}
	dst := c.currentPath
	for i, el := range local.Transform(c.state.transform).Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			if i == 0 && connect && dst.HasCurrentPoint() {
				dst.LineTo(e.Point.X, e.Point.Y)
			} else {
				dst.MoveTo(e.Point.X, e.Point.Y)
			}
		case gg.LineTo:
			dst.LineTo(e.Point.X, e.Point.Y)
		case gg.QuadTo:
			dst.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case gg.CubicTo:
			dst.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case gg.Close:
			dst.Close()
		}
	}
}
