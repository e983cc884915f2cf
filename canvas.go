package picture

import (
	"fmt"
	"image"
	"sync/atomic"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// RecordingCanvas captures drawing calls as commands instead of drawing
// them. It mirrors the gg.Context API and also implements Target, so a
// Picture can be replayed into it.
//
// A canvas is created by Picture.BeginRecording and is shared by two
// holders: the Picture, which needs it until EndRecording harvests the
// command list, and the caller, which may keep it for longer. Each holder
// owns one reference and gives it back with Release; the canvas frees its
// buffers when the last reference goes away. After the Picture detaches it,
// drawing calls are ignored.
//
// Drawing on a canvas is not safe for concurrent use. Retain and Release
// may be called from any goroutine.
type RecordingCanvas struct {
	width, height int
	commands      []Command
	resources     *ResourcePool
	currentPath   *gg.Path

	state canvasState
	stack []canvasState

	// face, when set, measures text; it is not recorded.
	face text.Face

	refs     atomic.Int32
	attached atomic.Bool
	freed    atomic.Bool
	warned   atomic.Bool

	// onFree runs once when the last reference is released.
	onFree func()
}

// canvasState is the graphics state saved by Save and restored by Restore.
type canvasState struct {
	fillBrush   Brush
	strokeBrush Brush
	lineWidth   float64
	lineCap     LineCap
	lineJoin    LineJoin
	miterLimit  float64
	dashPattern []float64
	dashOffset  float64
	fillRule    FillRule
	transform   gg.Matrix
	fontFamily  string
	fontSize    float64
}

func defaultCanvasState() canvasState {
	black := NewSolidBrush(gg.Black)
	return canvasState{
		fillBrush:   black,
		strokeBrush: black,
		lineWidth:   1,
		lineCap:     LineCapButt,
		lineJoin:    LineJoinMiter,
		miterLimit:  4,
		fillRule:    FillRuleNonZero,
		transform:   gg.Identity(),
		fontSize:    12,
	}
}

var _ RecordingTarget = (*RecordingCanvas)(nil)

// newRecordingCanvas returns an attached canvas holding refs references.
func newRecordingCanvas(width, height int, refs int32) *RecordingCanvas {
	c := &RecordingCanvas{
		width:       width,
		height:      height,
		commands:    make([]Command, 0, 64),
		resources:   NewResourcePool(),
		currentPath: gg.NewPath(),
		state:       defaultCanvasState(),
		stack:       make([]canvasState, 0, 8),
	}
	c.refs.Store(refs)
	c.attached.Store(true)
	return c
}

// --------------------------------------------------------------------------
// Ownership
// --------------------------------------------------------------------------

// Retain adds a reference for an additional holder.
func (c *RecordingCanvas) Retain() {
	if c.freed.Load() {
		panic("picture: Retain on a freed RecordingCanvas")
	}
	c.refs.Add(1)
}

// Release drops one reference. The canvas is freed when the count reaches
// zero; releasing more references than were handed out panics.
func (c *RecordingCanvas) Release() {
	n := c.refs.Add(-1)
	switch {
	case n == 0:
		c.free()
	case n < 0:
		panic("picture: RecordingCanvas released more times than retained")
	}
}

// RefCount returns the number of live references.
func (c *RecordingCanvas) RefCount() int {
	return int(c.refs.Load())
}

// Attached reports whether the canvas still records into a Picture.
func (c *RecordingCanvas) Attached() bool {
	return c.attached.Load()
}

// Freed reports whether every reference has been released.
func (c *RecordingCanvas) Freed() bool {
	return c.freed.Load()
}

func (c *RecordingCanvas) free() {
	if !c.freed.CompareAndSwap(false, true) {
		return
	}
	c.attached.Store(false)
	c.commands = nil
	c.resources = nil
	c.currentPath = nil
	c.stack = nil
	Logger().Debug("picture: recording canvas freed", "width", c.width, "height", c.height)
	if c.onFree != nil {
		c.onFree()
	}
}

// detach stops recording and hands the command list over to the caller.
// The canvas keeps no alias of the returned slices.
func (c *RecordingCanvas) detach() *Recording {
	rec := &Recording{
		width:     c.width,
		height:    c.height,
		commands:  c.commands,
		resources: c.resources,
	}
	c.attached.Store(false)
	c.commands = nil
	c.resources = nil
	c.currentPath = gg.NewPath()
	return rec
}

// snapshot copies the commands recorded so far.
func (c *RecordingCanvas) snapshot() *Recording {
	return &Recording{
		width:     c.width,
		height:    c.height,
		commands:  append([]Command(nil), c.commands...),
		resources: c.resources.Clone(),
	}
}

// live reports whether op may record. Calls on a freed canvas are a
// programming error; calls on a detached canvas are dropped.
func (c *RecordingCanvas) live(op string) bool {
	if c.freed.Load() {
		panic(fmt.Sprintf("picture: %s on a freed RecordingCanvas", op))
	}
	if c.attached.Load() {
		return true
	}
	if c.warned.CompareAndSwap(false, true) {
		Logger().Warn("picture: drawing on a detached recording canvas is ignored", "op", op)
	}
	return false
}

func (c *RecordingCanvas) record(cmds ...Command) {
	c.commands = append(c.commands, cmds...)
}

// Width returns the recording width.
func (c *RecordingCanvas) Width() int { return c.width }

// Height returns the recording height.
func (c *RecordingCanvas) Height() int { return c.height }

// Len returns the number of commands recorded so far.
func (c *RecordingCanvas) Len() int { return len(c.commands) }

// --------------------------------------------------------------------------
// State Management
// --------------------------------------------------------------------------

// Save pushes the graphics state.
func (c *RecordingCanvas) Save() {
	if !c.live("Save") {
		return
	}
	saved := c.state
	if saved.dashPattern != nil {
		saved.dashPattern = append([]float64(nil), saved.dashPattern...)
	}
	c.stack = append(c.stack, saved)
	c.record(SaveCommand{})
}

// Restore pops the graphics state. Unbalanced calls are ignored.
func (c *RecordingCanvas) Restore() {
	if !c.live("Restore") || len(c.stack) == 0 {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.record(RestoreCommand{})
}

// Push is an alias for Save.
func (c *RecordingCanvas) Push() { c.Save() }

// Pop is an alias for Restore.
func (c *RecordingCanvas) Pop() { c.Restore() }

// --------------------------------------------------------------------------
// Transform
// --------------------------------------------------------------------------

func (c *RecordingCanvas) setTransform(op string, m gg.Matrix) {
	if !c.live(op) {
		return
	}
	c.state.transform = m
	c.record(SetTransformCommand{Matrix: m})
}

// Identity resets the transform.
func (c *RecordingCanvas) Identity() {
	c.setTransform("Identity", gg.Identity())
}

// Translate applies a translation.
func (c *RecordingCanvas) Translate(x, y float64) {
	c.setTransform("Translate", c.state.transform.Multiply(gg.Translate(x, y)))
}

// Scale applies a scale.
func (c *RecordingCanvas) Scale(sx, sy float64) {
	c.setTransform("Scale", c.state.transform.Multiply(gg.Scale(sx, sy)))
}

// Rotate applies a rotation in radians.
func (c *RecordingCanvas) Rotate(angle float64) {
	c.setTransform("Rotate", c.state.transform.Multiply(gg.Rotate(angle)))
}

// RotateAbout rotates around (x, y).
func (c *RecordingCanvas) RotateAbout(angle, x, y float64) {
	c.Translate(x, y)
	c.Rotate(angle)
	c.Translate(-x, -y)
}

// Shear applies a shear.
func (c *RecordingCanvas) Shear(x, y float64) {
	c.setTransform("Shear", c.state.transform.Multiply(gg.Shear(x, y)))
}

// Transform multiplies the current transform by m.
func (c *RecordingCanvas) Transform(m gg.Matrix) {
	c.setTransform("Transform", c.state.transform.Multiply(m))
}

// SetTransform replaces the current transform.
func (c *RecordingCanvas) SetTransform(m gg.Matrix) {
	c.setTransform("SetTransform", m)
}

// GetTransform returns the current transform.
func (c *RecordingCanvas) GetTransform() gg.Matrix {
	return c.state.transform
}

// TransformPoint maps (x, y) through the current transform.
func (c *RecordingCanvas) TransformPoint(x, y float64) (float64, float64) {
	p := c.state.transform.TransformPoint(gg.Pt(x, y))
	return p.X, p.Y
}

// --------------------------------------------------------------------------
// Color/Style
// --------------------------------------------------------------------------

// SetColor sets both the fill and the stroke color.
func (c *RecordingCanvas) SetColor(col gg.RGBA) {
	if !c.live("SetColor") {
		return
	}
	brush := NewSolidBrush(col)
	c.state.fillBrush = brush
	c.state.strokeBrush = brush
	ref := c.resources.AddBrush(brush)
	c.record(SetFillStyleCommand{Brush: ref}, SetStrokeStyleCommand{Brush: ref})
}

// SetRGB sets both colors from components in [0, 1].
func (c *RecordingCanvas) SetRGB(r, g, b float64) { c.SetColor(gg.RGB(r, g, b)) }

// SetRGBA sets both colors from components in [0, 1].
func (c *RecordingCanvas) SetRGBA(r, g, b, a float64) { c.SetColor(gg.RGBA2(r, g, b, a)) }

// SetHexColor sets both colors from a hex string such as "#ff8800".
func (c *RecordingCanvas) SetHexColor(hex string) { c.SetColor(gg.Hex(hex)) }

// SetFillStyle sets the fill brush.
func (c *RecordingCanvas) SetFillStyle(brush Brush) {
	if !c.live("SetFillStyle") {
		return
	}
	c.state.fillBrush = brush
	c.record(SetFillStyleCommand{Brush: c.resources.AddBrush(brush)})
}

// SetStrokeStyle sets the stroke brush.
func (c *RecordingCanvas) SetStrokeStyle(brush Brush) {
	if !c.live("SetStrokeStyle") {
		return
	}
	c.state.strokeBrush = brush
	c.record(SetStrokeStyleCommand{Brush: c.resources.AddBrush(brush)})
}

// SetFillBrush sets the fill brush from a gg brush.
func (c *RecordingCanvas) SetFillBrush(b gg.Brush) { c.SetFillStyle(BrushFromGG(b)) }

// SetStrokeBrush sets the stroke brush from a gg brush.
func (c *RecordingCanvas) SetStrokeBrush(b gg.Brush) { c.SetStrokeStyle(BrushFromGG(b)) }

func (c *RecordingCanvas) SetFillRGB(r, g, b float64) {
	c.SetFillStyle(NewSolidBrush(gg.RGB(r, g, b)))
}

func (c *RecordingCanvas) SetFillRGBA(r, g, b, a float64) {
	c.SetFillStyle(NewSolidBrush(gg.RGBA2(r, g, b, a)))
}

func (c *RecordingCanvas) SetStrokeRGB(r, g, b float64) {
	c.SetStrokeStyle(NewSolidBrush(gg.RGB(r, g, b)))
}

func (c *RecordingCanvas) SetStrokeRGBA(r, g, b, a float64) {
	c.SetStrokeStyle(NewSolidBrush(gg.RGBA2(r, g, b, a)))
}

// --------------------------------------------------------------------------
// Line Properties
// --------------------------------------------------------------------------

// SetLineWidth sets the stroke width.
func (c *RecordingCanvas) SetLineWidth(width float64) {
	if !c.live("SetLineWidth") {
		return
	}
	c.state.lineWidth = width
	c.record(SetLineWidthCommand{Width: width})
}

// SetLineCap sets the line cap.
func (c *RecordingCanvas) SetLineCap(lineCap LineCap) {
	if !c.live("SetLineCap") {
		return
	}
	c.state.lineCap = lineCap
	c.record(SetLineCapCommand{Cap: lineCap})
}

// SetLineJoin sets the line join.
func (c *RecordingCanvas) SetLineJoin(join LineJoin) {
	if !c.live("SetLineJoin") {
		return
	}
	c.state.lineJoin = join
	c.record(SetLineJoinCommand{Join: join})
}

// SetMiterLimit sets the miter limit.
func (c *RecordingCanvas) SetMiterLimit(limit float64) {
	if !c.live("SetMiterLimit") {
		return
	}
	c.state.miterLimit = limit
	c.record(SetMiterLimitCommand{Limit: limit})
}

// SetDash sets alternating dash and gap lengths. No arguments clears the
// pattern.
func (c *RecordingCanvas) SetDash(lengths ...float64) {
	if len(lengths) == 0 {
		c.ClearDash()
		return
	}
	c.SetDashStyle(lengths, c.state.dashOffset)
}

// SetDashOffset sets the offset into the dash pattern.
func (c *RecordingCanvas) SetDashOffset(offset float64) {
	if !c.live("SetDashOffset") {
		return
	}
	c.state.dashOffset = offset
	if c.state.dashPattern != nil {
		c.record(SetDashCommand{Pattern: c.state.dashPattern, Offset: offset})
	}
}

// ClearDash returns to solid lines.
func (c *RecordingCanvas) ClearDash() {
	c.SetDashStyle(nil, 0)
}

// SetDashStyle sets the dash pattern and offset in one call.
func (c *RecordingCanvas) SetDashStyle(pattern []float64, offset float64) {
	if !c.live("SetDashStyle") {
		return
	}
	if len(pattern) == 0 {
		pattern = nil
	} else {
		pattern = append([]float64(nil), pattern...)
	}
	c.state.dashPattern = pattern
	c.state.dashOffset = offset
	c.record(SetDashCommand{Pattern: pattern, Offset: offset})
}

// SetFillRule sets the fill rule for Fill and Clip.
func (c *RecordingCanvas) SetFillRule(rule FillRule) {
	if !c.live("SetFillRule") {
		return
	}
	c.state.fillRule = rule
	c.record(SetFillRuleCommand{Rule: rule})
}

func (c *RecordingCanvas) currentStroke() Stroke {
	return Stroke{
		Width:       c.state.lineWidth,
		Cap:         c.state.lineCap,
		Join:        c.state.lineJoin,
		MiterLimit:  c.state.miterLimit,
		DashPattern: c.state.dashPattern,
		DashOffset:  c.state.dashOffset,
	}
}

// --------------------------------------------------------------------------
// Path Building
// --------------------------------------------------------------------------

// MoveTo starts a new subpath.
func (c *RecordingCanvas) MoveTo(x, y float64) {
	if !c.live("MoveTo") {
		return
	}
	p := c.state.transform.TransformPoint(gg.Pt(x, y))
	c.currentPath.MoveTo(p.X, p.Y)
}

// LineTo adds a line segment.
func (c *RecordingCanvas) LineTo(x, y float64) {
	if !c.live("LineTo") {
		return
	}
	p := c.state.transform.TransformPoint(gg.Pt(x, y))
	c.currentPath.LineTo(p.X, p.Y)
}

// QuadraticTo adds a quadratic Bezier segment.
func (c *RecordingCanvas) QuadraticTo(cx, cy, x, y float64) {
	if !c.live("QuadraticTo") {
		return
	}
	m := c.state.transform
	cp := m.TransformPoint(gg.Pt(cx, cy))
	p := m.TransformPoint(gg.Pt(x, y))
	c.currentPath.QuadraticTo(cp.X, cp.Y, p.X, p.Y)
}

// CubicTo adds a cubic Bezier segment.
func (c *RecordingCanvas) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !c.live("CubicTo") {
		return
	}
	m := c.state.transform
	cp1 := m.TransformPoint(gg.Pt(c1x, c1y))
	cp2 := m.TransformPoint(gg.Pt(c2x, c2y))
	p := m.TransformPoint(gg.Pt(x, y))
	c.currentPath.CubicTo(cp1.X, cp1.Y, cp2.X, cp2.Y, p.X, p.Y)
}

// ClosePath closes the current subpath.
func (c *RecordingCanvas) ClosePath() {
	if !c.live("ClosePath") {
		return
	}
	c.currentPath.Close()
}

// ClearPath discards the current path.
func (c *RecordingCanvas) ClearPath() {
	if !c.live("ClearPath") {
		return
	}
	c.currentPath.Clear()
}

// paint adds b to the pool with its gradient geometry mapped into picture
// space.
func (c *RecordingCanvas) paint(b Brush) BrushRef {
	if !c.state.transform.IsIdentity() {
		b = transformBrush(b, c.state.transform)
	}
	return c.resources.AddBrush(b)
}

func (c *RecordingCanvas) hasPath() bool {
	return len(c.currentPath.Elements()) > 0
}

// --------------------------------------------------------------------------
// Drawing
// --------------------------------------------------------------------------

func (c *RecordingCanvas) fillCurrent(op string, keep bool) {
	if !c.live(op) || !c.hasPath() {
		return
	}
	c.record(FillPathCommand{
		Path:  c.resources.AddPath(c.currentPath),
		Brush: c.paint(c.state.fillBrush),
		Rule:  c.state.fillRule,
	})
	if !keep {
		c.currentPath = gg.NewPath()
	}
}

func (c *RecordingCanvas) strokeCurrent(op string, keep bool) {
	if !c.live(op) || !c.hasPath() {
		return
	}
	c.record(StrokePathCommand{
		Path:   c.resources.AddPath(c.currentPath),
		Brush:  c.paint(c.state.strokeBrush),
		Stroke: c.currentStroke(),
	})
	if !keep {
		c.currentPath = gg.NewPath()
	}
}

// Fill fills the current path and clears it.
func (c *RecordingCanvas) Fill() { c.fillCurrent("Fill", false) }

// FillPreserve fills the current path and keeps it.
func (c *RecordingCanvas) FillPreserve() { c.fillCurrent("FillPreserve", true) }

// Stroke strokes the current path and clears it.
func (c *RecordingCanvas) Stroke() { c.strokeCurrent("Stroke", false) }

// StrokePreserve strokes the current path and keeps it.
func (c *RecordingCanvas) StrokePreserve() { c.strokeCurrent("StrokePreserve", true) }

// FillStroke fills, then strokes, then clears the current path.
func (c *RecordingCanvas) FillStroke() {
	c.FillPreserve()
	c.Stroke()
}

// FillRectangle fills a rectangle without touching the current path. Under
// a rotating or shearing transform the rectangle is recorded as a path.
func (c *RecordingCanvas) FillRectangle(x, y, w, h float64) {
	if !c.live("FillRectangle") {
		return
	}
	m := c.state.transform
	local := NewRect(x, y, w, h)
	brush := c.paint(c.state.fillBrush)
	if !isAxisAligned(m) {
		c.record(FillPathCommand{Path: c.resources.AddPath(local.Path().Transform(m)), Brush: brush, Rule: FillRuleNonZero})
		return
	}
	c.record(FillRectCommand{Rect: local.Transform(m), Brush: brush})
}

// StrokeRectangle strokes a rectangle without touching the current path.
func (c *RecordingCanvas) StrokeRectangle(x, y, w, h float64) {
	if !c.live("StrokeRectangle") {
		return
	}
	m := c.state.transform
	local := NewRect(x, y, w, h)
	brush := c.paint(c.state.strokeBrush)
	if !isAxisAligned(m) {
		c.record(StrokePathCommand{Path: c.resources.AddPath(local.Path().Transform(m)), Brush: brush, Stroke: c.currentStroke()})
		return
	}
	c.record(StrokeRectCommand{Rect: local.Transform(m), Brush: brush, Stroke: c.currentStroke()})
}

// Clear fills the whole canvas with the fill brush.
func (c *RecordingCanvas) Clear() {
	if !c.live("Clear") {
		return
	}
	c.record(FillRectCommand{
		Rect:  NewRect(0, 0, float64(c.width), float64(c.height)),
		Brush: c.paint(c.state.fillBrush),
	})
}

// ClearWithColor fills the whole canvas with col.
func (c *RecordingCanvas) ClearWithColor(col gg.RGBA) {
	if !c.live("ClearWithColor") {
		return
	}
	c.record(FillRectCommand{
		Rect:  NewRect(0, 0, float64(c.width), float64(c.height)),
		Brush: c.resources.AddBrush(NewSolidBrush(col)),
	})
}

// --------------------------------------------------------------------------
// Clipping
// --------------------------------------------------------------------------

func (c *RecordingCanvas) clipCurrent(op string, keep bool) {
	if !c.live(op) || !c.hasPath() {
		return
	}
	c.record(SetClipCommand{Path: c.resources.AddPath(c.currentPath), Rule: c.state.fillRule})
	if !keep {
		c.currentPath = gg.NewPath()
	}
}

// Clip intersects the clip with the current path and clears the path.
func (c *RecordingCanvas) Clip() { c.clipCurrent("Clip", false) }

// ClipPreserve intersects the clip with the current path and keeps it.
func (c *RecordingCanvas) ClipPreserve() { c.clipCurrent("ClipPreserve", true) }

// ResetClip removes the clip.
func (c *RecordingCanvas) ResetClip() { c.ClearClip() }

// --------------------------------------------------------------------------
// Images
// --------------------------------------------------------------------------

// DrawImage draws img with its top-left corner at (x, y).
func (c *RecordingCanvas) DrawImage(img image.Image, x, y int) {
	if img == nil {
		return
	}
	b := img.Bounds()
	c.DrawImageScaled(img, float64(x), float64(y), float64(b.Dx()), float64(b.Dy()))
}

// DrawImageScaled draws img scaled into the w x h box at (x, y).
func (c *RecordingCanvas) DrawImageScaled(img image.Image, x, y, w, h float64) {
	if img == nil || !c.live("DrawImageScaled") {
		return
	}
	b := img.Bounds()
	dst, m := placeImage(NewRect(x, y, w, h), c.state.transform)
	c.record(DrawImageCommand{
		Image:   c.resources.AddImage(img),
		SrcRect: NewRect(0, 0, float64(b.Dx()), float64(b.Dy())),
		DstRect: dst,
		Matrix:  m,
		Options: DefaultImageOptions(),
	})
}

// --------------------------------------------------------------------------
// Text
// --------------------------------------------------------------------------

// SetFontFamily sets the family recorded with text.
func (c *RecordingCanvas) SetFontFamily(family string) {
	c.state.fontFamily = family
}

// SetFontSize sets the size in points recorded with text.
func (c *RecordingCanvas) SetFontSize(size float64) {
	c.state.fontSize = size
}

// Font returns the current font.
func (c *RecordingCanvas) Font() Font {
	return Font{Family: c.state.fontFamily, Size: c.state.fontSize}
}

// DrawString draws s with its baseline origin at (x, y).
func (c *RecordingCanvas) DrawString(s string, x, y float64) {
	if !c.live("DrawString") {
		return
	}
	p := c.state.transform.TransformPoint(gg.Pt(x, y))
	c.record(DrawTextCommand{
		Text:  s,
		X:     p.X,
		Y:     p.Y,
		Font:  c.Font(),
		Brush: c.paint(c.state.fillBrush),
	})
}

// DrawStringAnchored draws s positioned by an anchor in [0, 1] on each axis,
// using MeasureString to size the text.
func (c *RecordingCanvas) DrawStringAnchored(s string, x, y, ax, ay float64) {
	w, h := c.MeasureString(s)
	c.DrawString(s, x-ax*w, y+ay*h)
}

// --------------------------------------------------------------------------
// Nested Pictures
// --------------------------------------------------------------------------

// DrawPicture records p under the current transform. p must be playable;
// later re-recording of p does not change what was recorded here.
func (c *RecordingCanvas) DrawPicture(p *Picture) {
	p.checkOpen("DrawPicture")
	if p.state != StatePlayable {
		invalidState("DrawPicture", p.state)
	}
	c.DrawRecording(p.rec, c.state.transform)
}

// DrawPictureMatrix records p under m instead of the current transform.
func (c *RecordingCanvas) DrawPictureMatrix(p *Picture, m gg.Matrix) {
	p.checkOpen("DrawPictureMatrix")
	if p.state != StatePlayable {
		invalidState("DrawPictureMatrix", p.state)
	}
	c.DrawRecording(p.rec, m)
}

// DrawRecording records rec under m. It implements RecordingTarget so
// replaying a picture into a canvas keeps nested pictures nested.
func (c *RecordingCanvas) DrawRecording(rec *Recording, m gg.Matrix) {
	if rec == nil || !c.live("DrawRecording") {
		return
	}
	c.record(DrawPictureCommand{Picture: c.resources.AddRecording(rec), Matrix: m})
}

// --------------------------------------------------------------------------
// Target
// --------------------------------------------------------------------------

// SetClip records a clip with an explicit path in picture space.
func (c *RecordingCanvas) SetClip(path *gg.Path, rule FillRule) {
	if path == nil || !c.live("SetClip") {
		return
	}
	c.record(SetClipCommand{Path: c.resources.AddPath(path), Rule: rule})
}

// ClearClip records a clip reset.
func (c *RecordingCanvas) ClearClip() {
	if !c.live("ClearClip") {
		return
	}
	c.record(ClearClipCommand{})
}

// FillPath records a fill of a path in picture space.
func (c *RecordingCanvas) FillPath(path *gg.Path, brush Brush, rule FillRule) {
	if path == nil || !c.live("FillPath") {
		return
	}
	c.record(FillPathCommand{Path: c.resources.AddPath(path), Brush: c.resources.AddBrush(brush), Rule: rule})
}

// StrokePath records a stroke of a path in picture space.
func (c *RecordingCanvas) StrokePath(path *gg.Path, brush Brush, stroke Stroke) {
	if path == nil || !c.live("StrokePath") {
		return
	}
	c.record(StrokePathCommand{Path: c.resources.AddPath(path), Brush: c.resources.AddBrush(brush), Stroke: stroke.Clone()})
}

// FillRect records a rectangle fill in picture space.
func (c *RecordingCanvas) FillRect(rect Rect, brush Brush) {
	if !c.live("FillRect") {
		return
	}
	c.record(FillRectCommand{Rect: rect, Brush: c.resources.AddBrush(brush)})
}

// StrokeRect records a rectangle stroke in picture space.
func (c *RecordingCanvas) StrokeRect(rect Rect, brush Brush, stroke Stroke) {
	if !c.live("StrokeRect") {
		return
	}
	c.record(StrokeRectCommand{Rect: rect, Brush: c.resources.AddBrush(brush), Stroke: stroke.Clone()})
}

// DrawImageRect records an image draw whose dst is mapped into picture
// space by m.
func (c *RecordingCanvas) DrawImageRect(img image.Image, src, dst Rect, m gg.Matrix, opts ImageOptions) {
	if img == nil || !c.live("DrawImageRect") {
		return
	}
	c.record(DrawImageCommand{Image: c.resources.AddImage(img), SrcRect: src, DstRect: dst, Matrix: m, Options: opts})
}

// DrawText records text at a picture-space origin.
func (c *RecordingCanvas) DrawText(s string, x, y float64, font Font, brush Brush) {
	if !c.live("DrawText") {
		return
	}
	c.record(DrawTextCommand{Text: s, X: x, Y: y, Font: font, Brush: c.resources.AddBrush(brush)})
}
