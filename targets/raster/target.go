// Package raster provides a picture.Target that rasterizes commands onto a
// gg.Context.
//
// Geometry in a recording is already in picture space, so the target keeps
// the context transform at identity and draws every operand as given.
// SetTransform calls are tracked but not applied. Images drawn under a
// rotation, skew or flip are resampled through the matrix that comes with
// them.
//
// # Supported Features
//
//   - Solid and gradient fills and strokes
//   - Path and rectangle clipping, scoped by Save/Restore
//   - Stroke styling (width, cap, join, miter limit, dash patterns)
//   - Images with source cropping, scaling, rotation, interpolation and alpha
//   - Text through a FontResolver (system fonts with a Go Regular fallback)
//   - PNG output
//
// # Example
//
//	// Import to register the target
//	import _ "github.com/gogpu/gg-picture/targets/raster"
//
//	// Create via registry
//	t, _ := picture.NewTarget("raster", pic.Width(), pic.Height())
//
//	// Or create directly
//	t := raster.NewTarget(pic.Width(), pic.Height(), raster.WithBackground(gg.White))
//
//	pic.Draw(t)
//	t.SaveToFile("output.png")
package raster

import (
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"
	picture "github.com/gogpu/gg-picture"
	"github.com/gogpu/gg/text"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

func init() {
	picture.RegisterTarget("raster", func(width, height int) (picture.Target, error) {
		return NewTarget(width, height), nil
	})
}

// Target renders replayed commands to a pixel image using gg.Context.
// It implements picture.Target, picture.ImageTarget, picture.WriterTarget
// and picture.FileTarget.
type Target struct {
	ctx      *gg.Context
	width    int
	height   int
	fonts    FontResolver
	fallback *text.FontSource

	// transform is the last matrix reported by SetTransform.
	transform gg.Matrix
	stack     []gg.Matrix
}

var (
	_ picture.Target       = (*Target)(nil)
	_ picture.ImageTarget  = (*Target)(nil)
	_ picture.WriterTarget = (*Target)(nil)
	_ picture.FileTarget   = (*Target)(nil)
)

// NewTarget creates a target with a width x height canvas. Negative sizes
// are clamped to zero.
func NewTarget(width, height int, opts ...Option) *Target {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	width, height = max(width, 0), max(height, 0)
	t := &Target{
		ctx:       gg.NewContext(width, height),
		width:     width,
		height:    height,
		fonts:     o.fonts,
		fallback:  loadDefaultFont(o.defaultFont),
		transform: gg.Identity(),
	}
	if o.background != nil {
		t.ctx.ClearWithColor(*o.background)
	}
	return t
}

// Width returns the canvas width.
func (t *Target) Width() int { return t.width }

// Height returns the canvas height.
func (t *Target) Height() int { return t.height }

// Transform returns the last matrix reported by SetTransform.
func (t *Target) Transform() gg.Matrix { return t.transform }

// Save pushes the clip and the tracked transform.
func (t *Target) Save() {
	t.ctx.Push()
	t.stack = append(t.stack, t.transform)
}

// Restore pops the clip and the tracked transform.
func (t *Target) Restore() {
	t.ctx.Pop()
	if n := len(t.stack); n > 0 {
		t.transform = t.stack[n-1]
		t.stack = t.stack[:n-1]
	}
}

// SetTransform records m. Operands are already in picture space.
func (t *Target) SetTransform(m gg.Matrix) {
	t.transform = m
}

// SetClip intersects the clip with path. The clip is undone by Restore or
// ClearClip.
func (t *Target) SetClip(path *gg.Path, rule picture.FillRule) {
	if path == nil {
		return
	}
	t.ctx.SetFillRule(convertFillRule(rule))
	t.setPath(path)
	t.ctx.Clip()
}

// ClearClip removes every clip.
func (t *Target) ClearClip() {
	t.ctx.ResetClip()
}

// FillPath fills path with brush.
func (t *Target) FillPath(path *gg.Path, brush picture.Brush, rule picture.FillRule) {
	if path == nil || brush == nil {
		return
	}
	t.applyBrush(brush, true)
	t.ctx.SetFillRule(convertFillRule(rule))
	t.setPath(path)
	_ = t.ctx.Fill()
}

// StrokePath strokes path with brush and stroke.
func (t *Target) StrokePath(path *gg.Path, brush picture.Brush, stroke picture.Stroke) {
	if path == nil || brush == nil {
		return
	}
	t.applyBrush(brush, false)
	t.applyStroke(stroke)
	t.setPath(path)
	_ = t.ctx.Stroke()
}

// FillRect fills rect with brush.
func (t *Target) FillRect(rect picture.Rect, brush picture.Brush) {
	if brush == nil || rect.IsEmpty() {
		return
	}
	t.applyBrush(brush, true)
	t.ctx.SetFillRule(gg.FillRuleNonZero)
	t.setPath(rect.Path())
	_ = t.ctx.Fill()
}

// StrokeRect strokes the outline of rect.
func (t *Target) StrokeRect(rect picture.Rect, brush picture.Brush, stroke picture.Stroke) {
	if brush == nil {
		return
	}
	t.applyBrush(brush, false)
	t.applyStroke(stroke)
	t.setPath(rect.Path())
	_ = t.ctx.Stroke()
}

// DrawImageRect draws the src region of img, relative to the image
// bounds, scaled into dst and mapped by m.
func (t *Target) DrawImageRect(img image.Image, src, dst picture.Rect, m gg.Matrix, opts picture.ImageOptions) {
	if img == nil || dst.IsEmpty() || opts.Alpha <= 0 {
		return
	}
	b := img.Bounds()
	srcRect := b
	if !src.IsZero() {
		srcRect = image.Rect(
			b.Min.X+int(src.MinX), b.Min.Y+int(src.MinY),
			b.Min.X+int(src.MaxX), b.Min.Y+int(src.MaxY),
		).Intersect(b)
	}
	if srcRect.Empty() {
		return
	}
	if !m.IsIdentity() {
		t.drawImageTransformed(img, srcRect, dst, m, opts)
		return
	}
	buf := gg.ImageBufFromImage(img)
	if buf == nil {
		return
	}
	// ImageBuf pixels start at the origin.
	srcRect = srcRect.Sub(b.Min)
	t.ctx.DrawImageEx(buf, gg.DrawImageOptions{
		X:             dst.MinX,
		Y:             dst.MinY,
		DstWidth:      dst.Width(),
		DstHeight:     dst.Height(),
		SrcRect:       &srcRect,
		Interpolation: convertInterpolation(opts.Interpolation),
		Opacity:       min(opts.Alpha, 1),
	})
}

// drawImageTransformed resamples the sr region of img, scaled into dst and
// mapped by m, onto a layer the size of the canvas and composites it.
// gg.Context places images by two corners, which cannot rotate or skew.
func (t *Target) drawImageTransformed(img image.Image, sr image.Rectangle, dst picture.Rect, m gg.Matrix, opts picture.ImageOptions) {
	if math.Abs(m.A*m.E-m.B*m.D) < 1e-12 || t.width == 0 || t.height == 0 {
		return
	}
	sx := dst.Width() / float64(sr.Dx())
	sy := dst.Height() / float64(sr.Dy())
	place := gg.Matrix{
		A: sx, C: dst.MinX - sx*float64(sr.Min.X),
		E: sy, F: dst.MinY - sy*float64(sr.Min.Y),
	}
	s2d := m.Multiply(place)

	var sampler xdraw.Transformer = xdraw.BiLinear
	if opts.Interpolation == picture.InterpolationNearest {
		sampler = xdraw.NearestNeighbor
	}
	layer := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	sampler.Transform(layer, f64.Aff3{s2d.A, s2d.B, s2d.C, s2d.D, s2d.E, s2d.F}, img, sr, xdraw.Over, nil)

	buf := gg.ImageBufFromImage(layer)
	if buf == nil {
		return
	}
	t.ctx.DrawImageEx(buf, gg.DrawImageOptions{
		Interpolation: gg.InterpNearest,
		Opacity:       min(opts.Alpha, 1),
	})
}

// DrawText draws s with its baseline origin at (x, y). Fonts the resolver
// cannot provide use the default font; text is skipped with a warning only
// when no font is available at all.
func (t *Target) DrawText(s string, x, y float64, font picture.Font, brush picture.Brush) {
	if s == "" || brush == nil {
		return
	}
	face := t.face(font)
	if face == nil {
		picture.Logger().Warn("raster: no font available, text skipped",
			"family", font.Family, "size", font.Size)
		return
	}
	t.ctx.SetFont(face)
	t.ctx.SetColor(textColor(brush).Color())
	t.ctx.DrawString(s, x, y)
}

func (t *Target) face(font picture.Font) text.Face {
	size := font.Size
	if size <= 0 {
		size = defaultFontSize
	}
	if t.fonts != nil {
		face, err := t.fonts.Face(picture.Font{Family: font.Family, Size: size})
		if err == nil && face != nil {
			return face
		}
		picture.Logger().Debug("raster: using default font", "family", font.Family, "err", err)
	}
	if t.fallback == nil {
		return nil
	}
	return t.fallback.Face(size)
}

// Style setters are informational: every drawing call carries its
// complete brush and stroke.

func (t *Target) SetFillStyle(picture.Brush)      {}
func (t *Target) SetStrokeStyle(picture.Brush)    {}
func (t *Target) SetLineWidth(float64)            {}
func (t *Target) SetLineCap(picture.LineCap)      {}
func (t *Target) SetLineJoin(picture.LineJoin)    {}
func (t *Target) SetMiterLimit(float64)           {}
func (t *Target) SetDashStyle([]float64, float64) {}
func (t *Target) SetFillRule(picture.FillRule)    {}

// Image returns the rendered image.
func (t *Target) Image() image.Image {
	return t.ctx.Image()
}

// WriteTo writes the rendered image as PNG to w.
func (t *Target) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := t.ctx.EncodePNG(cw)
	return cw.n, err
}

// SaveToFile saves the rendered image as PNG.
func (t *Target) SaveToFile(path string) error {
	return t.ctx.SavePNG(path)
}

// setPath replaces the context path with path under the identity matrix.
func (t *Target) setPath(path *gg.Path) {
	t.ctx.Identity()
	t.ctx.ClearPath()
	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case gg.MoveTo:
			t.ctx.MoveTo(e.Point.X, e.Point.Y)
		case gg.LineTo:
			t.ctx.LineTo(e.Point.X, e.Point.Y)
		case gg.QuadTo:
			t.ctx.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case gg.CubicTo:
			t.ctx.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case gg.Close:
			t.ctx.ClosePath()
		}
	}
}

func (t *Target) applyBrush(brush picture.Brush, fill bool) {
	b := convertBrush(brush)
	if fill {
		t.ctx.SetFillBrush(b)
	} else {
		t.ctx.SetStrokeBrush(b)
	}
}

func (t *Target) applyStroke(stroke picture.Stroke) {
	t.ctx.SetLineWidth(stroke.Width)
	t.ctx.SetLineCap(convertLineCap(stroke.Cap))
	t.ctx.SetLineJoin(convertLineJoin(stroke.Join))
	t.ctx.SetMiterLimit(stroke.MiterLimit)

	if len(stroke.DashPattern) > 0 {
		t.ctx.SetDash(stroke.DashPattern...)
		t.ctx.SetDashOffset(stroke.DashOffset)
	} else {
		t.ctx.ClearDash()
	}
}

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
