package picture

import (
	"math"

	"github.com/gogpu/gg"
)

// Playback replays the commands onto t in order. Unlike Picture.Draw it
// does not wrap the replay in Save/Restore.
//
// A nested picture is handed to t as a single DrawRecording call when t
// implements RecordingTarget. Otherwise its commands are replayed inline,
// between Save and Restore, with every geometry operand mapped through the
// matrix the picture was drawn with.
//
// Operands reach t in picture space. Playback into a RecordingCanvas
// therefore ignores the canvas transform; use Picture.Draw or
// RecordingCanvas.DrawPicture to place a picture under it.
func (r *Recording) Playback(t Target) {
	player{t: t, base: gg.Identity(), identity: true}.play(r)
}

// player replays one recording. base maps the recording's picture space
// into the target's space.
type player struct {
	t        Target
	base     gg.Matrix
	identity bool
}

func (p player) play(r *Recording) {
	res := r.resources
	t := p.t
	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case SaveCommand:
			t.Save()
		case RestoreCommand:
			t.Restore()
		case SetTransformCommand:
			t.SetTransform(p.matrix(c.Matrix))
		case SetClipCommand:
			t.SetClip(p.path(res.Path(c.Path)), c.Rule)
		case ClearClipCommand:
			t.ClearClip()
		case FillPathCommand:
			t.FillPath(p.path(res.Path(c.Path)), p.brush(res.Brush(c.Brush)), c.Rule)
		case StrokePathCommand:
			t.StrokePath(p.path(res.Path(c.Path)), p.brush(res.Brush(c.Brush)), c.Stroke)
		case FillRectCommand:
			brush := p.brush(res.Brush(c.Brush))
			if p.identity || isAxisAligned(p.base) {
				t.FillRect(p.rect(c.Rect), brush)
			} else {
				t.FillPath(c.Rect.Path().Transform(p.base), brush, FillRuleNonZero)
			}
		case StrokeRectCommand:
			brush := p.brush(res.Brush(c.Brush))
			if p.identity || isAxisAligned(p.base) {
				t.StrokeRect(p.rect(c.Rect), brush, c.Stroke)
			} else {
				t.StrokePath(c.Rect.Path().Transform(p.base), brush, c.Stroke)
			}
		case DrawImageCommand:
			dst, m := placeImage(c.DstRect, p.matrix(c.Matrix))
			t.DrawImageRect(res.Image(c.Image), c.SrcRect, dst, m, c.Options)
		case DrawTextCommand:
			pt := p.point(c.X, c.Y)
			t.DrawText(c.Text, pt.X, pt.Y, c.Font, p.brush(res.Brush(c.Brush)))
		case DrawPictureCommand:
			p.playNested(res.Recording(c.Picture), c.Matrix)
		case SetFillStyleCommand:
			t.SetFillStyle(p.brush(res.Brush(c.Brush)))
		case SetStrokeStyleCommand:
			t.SetStrokeStyle(p.brush(res.Brush(c.Brush)))
		case SetLineWidthCommand:
			t.SetLineWidth(c.Width)
		case SetLineCapCommand:
			t.SetLineCap(c.Cap)
		case SetLineJoinCommand:
			t.SetLineJoin(c.Join)
		case SetMiterLimitCommand:
			t.SetMiterLimit(c.Limit)
		case SetDashCommand:
			t.SetDashStyle(c.Pattern, c.Offset)
		case SetFillRuleCommand:
			t.SetFillRule(c.Rule)
		}
	}
}

func (p player) playNested(rec *Recording, m gg.Matrix) {
	if rec == nil {
		return
	}
	m = p.matrix(m)
	if rt, ok := p.t.(RecordingTarget); ok {
		rt.DrawRecording(rec, m)
		return
	}
	p.t.Save()
	player{t: p.t, base: m, identity: m.IsIdentity()}.play(rec)
	p.t.Restore()
}

func (p player) matrix(m gg.Matrix) gg.Matrix {
	if p.identity {
		return m
	}
	return p.base.Multiply(m)
}

func (p player) path(path *gg.Path) *gg.Path {
	if p.identity || path == nil {
		return path
	}
	return path.Transform(p.base)
}

func (p player) rect(r Rect) Rect {
	if p.identity {
		return r
	}
	return r.Transform(p.base)
}

func (p player) point(x, y float64) gg.Point {
	if p.identity {
		return gg.Pt(x, y)
	}
	return p.base.TransformPoint(gg.Pt(x, y))
}

func (p player) brush(b Brush) Brush {
	if p.identity {
		return b
	}
	return transformBrush(b, p.base)
}

// transformBrush maps gradient geometry through m. Radii are scaled by the
// matrix's mean scale factor. Solid brushes are returned as is.
func transformBrush(b Brush, m gg.Matrix) Brush {
	switch br := b.(type) {
	case *LinearGradientBrush:
		c := *br
		c.Start = m.TransformPoint(br.Start)
		c.End = m.TransformPoint(br.End)
		return &c
	case *RadialGradientBrush:
		c := *br
		s := math.Sqrt(math.Abs(m.A*m.E - m.B*m.D))
		c.Center = m.TransformPoint(br.Center)
		c.Focus = m.TransformPoint(br.Focus)
		c.StartRadius = br.StartRadius * s
		c.EndRadius = br.EndRadius * s
		return &c
	case *SweepGradientBrush:
		c := *br
		c.Center = m.TransformPoint(br.Center)
		return &c
	default:
		return b
	}
}
