package picture

import (
	"fmt"

	"github.com/gogpu/gg"
)

// Command records are a CommandType tag followed by the operands in field
// order. Adding a command means extending command.go, this file and
// playback.go together.

func (e *encoder) command(cmd Command, res *ResourcePool) error {
	if cmd == nil {
		return fmt.Errorf("%w: nil command", ErrMalformed)
	}
	if err := checkRefs(cmd, res); err != nil {
		return err
	}
	e.byte(uint8(cmd.Type()))
	switch c := cmd.(type) {
	case SaveCommand, RestoreCommand, ClearClipCommand:
	case SetTransformCommand:
		e.matrix(c.Matrix)
	case SetClipCommand:
		e.ref(uint32(c.Path))
		e.byte(uint8(c.Rule))
	case FillPathCommand:
		e.ref(uint32(c.Path))
		e.ref(uint32(c.Brush))
		e.byte(uint8(c.Rule))
	case StrokePathCommand:
		e.ref(uint32(c.Path))
		e.ref(uint32(c.Brush))
		e.stroke(c.Stroke)
	case FillRectCommand:
		e.rect(c.Rect)
		e.ref(uint32(c.Brush))
	case StrokeRectCommand:
		e.rect(c.Rect)
		e.ref(uint32(c.Brush))
		e.stroke(c.Stroke)
	case DrawImageCommand:
		e.ref(uint32(c.Image))
		e.rect(c.SrcRect)
		e.rect(c.DstRect)
		e.matrix(c.Matrix)
		e.byte(uint8(c.Options.Interpolation))
		e.float(c.Options.Alpha)
	case DrawTextCommand:
		e.string(c.Text)
		e.float(c.X)
		e.float(c.Y)
		e.string(c.Font.Family)
		e.float(c.Font.Size)
		e.ref(uint32(c.Brush))
	case DrawPictureCommand:
		e.ref(uint32(c.Picture))
		e.matrix(c.Matrix)
	case SetFillStyleCommand:
		e.ref(uint32(c.Brush))
	case SetStrokeStyleCommand:
		e.ref(uint32(c.Brush))
	case SetLineWidthCommand:
		e.float(c.Width)
	case SetLineCapCommand:
		e.byte(uint8(c.Cap))
	case SetLineJoinCommand:
		e.byte(uint8(c.Join))
	case SetMiterLimitCommand:
		e.float(c.Limit)
	case SetDashCommand:
		e.floats(c.Pattern)
		e.float(c.Offset)
	case SetFillRuleCommand:
		e.byte(uint8(c.Rule))
	default:
		return fmt.Errorf("%w: unsupported command %T", ErrMalformed, cmd)
	}
	return nil
}

func (e *encoder) matrix(m gg.Matrix) {
	for _, f := range [6]float64{m.A, m.B, m.C, m.D, m.E, m.F} {
		e.float(f)
	}
}

func (e *encoder) rect(r Rect) {
	e.float(r.MinX)
	e.float(r.MinY)
	e.float(r.MaxX)
	e.float(r.MaxY)
}

func (e *encoder) stroke(s Stroke) {
	e.float(s.Width)
	e.byte(uint8(s.Cap))
	e.byte(uint8(s.Join))
	e.float(s.MiterLimit)
	e.floats(s.DashPattern)
	e.float(s.DashOffset)
}

// checkRefs reports a reference past the end of the pool.
func checkRefs(cmd Command, res *ResourcePool) error {
	var paths, brushes, images, recs []uint32
	switch c := cmd.(type) {
	case SetClipCommand:
		paths = append(paths, uint32(c.Path))
	case FillPathCommand:
		paths, brushes = append(paths, uint32(c.Path)), append(brushes, uint32(c.Brush))
	case StrokePathCommand:
		paths, brushes = append(paths, uint32(c.Path)), append(brushes, uint32(c.Brush))
	case FillRectCommand:
		brushes = append(brushes, uint32(c.Brush))
	case StrokeRectCommand:
		brushes = append(brushes, uint32(c.Brush))
	case DrawImageCommand:
		images = append(images, uint32(c.Image))
	case DrawTextCommand:
		brushes = append(brushes, uint32(c.Brush))
	case DrawPictureCommand:
		recs = append(recs, uint32(c.Picture))
	case SetFillStyleCommand:
		brushes = append(brushes, uint32(c.Brush))
	case SetStrokeStyleCommand:
		brushes = append(brushes, uint32(c.Brush))
	}
	for _, chk := range []struct {
		kind string
		refs []uint32
		n    int
	}{
		{"path", paths, len(res.paths)},
		{"brush", brushes, len(res.brushes)},
		{"image", images, len(res.images)},
		{"recording", recs, len(res.recordings)},
	} {
		for _, ref := range chk.refs {
			if uint64(ref) >= uint64(chk.n) {
				return fmt.Errorf("%w: %s: %s reference %d out of %d", ErrMalformed, cmd.Type(), chk.kind, ref, chk.n)
			}
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Decoding
// --------------------------------------------------------------------------

func (d *decoder) command(res *ResourcePool) Command {
	d.op = "command"
	typ := CommandType(d.byte())
	if d.err != nil {
		return nil
	}
	if !typ.Valid() {
		d.failf("unknown command tag %d", uint8(typ))
		return nil
	}
	d.op = typ.String()

	var cmd Command
	switch typ {
	case CmdSave:
		cmd = SaveCommand{}
	case CmdRestore:
		cmd = RestoreCommand{}
	case CmdSetTransform:
		cmd = SetTransformCommand{Matrix: d.matrix()}
	case CmdSetClip:
		cmd = SetClipCommand{Path: PathRef(d.ref()), Rule: d.fillRule()}
	case CmdClearClip:
		cmd = ClearClipCommand{}
	case CmdFillPath:
		cmd = FillPathCommand{Path: PathRef(d.ref()), Brush: BrushRef(d.ref()), Rule: d.fillRule()}
	case CmdStrokePath:
		cmd = StrokePathCommand{Path: PathRef(d.ref()), Brush: BrushRef(d.ref()), Stroke: d.stroke()}
	case CmdFillRect:
		cmd = FillRectCommand{Rect: d.rect(), Brush: BrushRef(d.ref())}
	case CmdStrokeRect:
		cmd = StrokeRectCommand{Rect: d.rect(), Brush: BrushRef(d.ref()), Stroke: d.stroke()}
	case CmdDrawImage:
		c := DrawImageCommand{Image: ImageRef(d.ref()), SrcRect: d.rect(), DstRect: d.rect(), Matrix: d.matrix()}
		c.Options.Interpolation = InterpolationMode(d.enum("interpolation", uint8(InterpolationBilinear)))
		c.Options.Alpha = d.float()
		cmd = c
	case CmdDrawText:
		c := DrawTextCommand{Text: d.string(), X: d.float(), Y: d.float()}
		c.Font = Font{Family: d.string(), Size: d.float()}
		c.Brush = BrushRef(d.ref())
		cmd = c
	case CmdDrawPicture:
		cmd = DrawPictureCommand{Picture: RecordingRef(d.ref()), Matrix: d.matrix()}
	case CmdSetFillStyle:
		cmd = SetFillStyleCommand{Brush: BrushRef(d.ref())}
	case CmdSetStrokeStyle:
		cmd = SetStrokeStyleCommand{Brush: BrushRef(d.ref())}
	case CmdSetLineWidth:
		cmd = SetLineWidthCommand{Width: d.float()}
	case CmdSetLineCap:
		cmd = SetLineCapCommand{Cap: d.lineCap()}
	case CmdSetLineJoin:
		cmd = SetLineJoinCommand{Join: d.lineJoin()}
	case CmdSetMiterLimit:
		cmd = SetMiterLimitCommand{Limit: d.float()}
	case CmdSetDash:
		cmd = SetDashCommand{Pattern: d.floats(), Offset: d.float()}
	case CmdSetFillRule:
		cmd = SetFillRuleCommand{Rule: d.fillRule()}
	}
	if d.err != nil {
		return nil
	}
	if err := checkRefs(cmd, res); err != nil {
		d.fail(d.op, err)
		return nil
	}
	return cmd
}

func (d *decoder) matrix() gg.Matrix {
	return gg.Matrix{A: d.float(), B: d.float(), C: d.float(), D: d.float(), E: d.float(), F: d.float()}
}

func (d *decoder) rect() Rect {
	return Rect{MinX: d.float(), MinY: d.float(), MaxX: d.float(), MaxY: d.float()}
}

func (d *decoder) fillRule() FillRule { return FillRule(d.enum("fill rule", uint8(FillRuleEvenOdd))) }
func (d *decoder) lineCap() LineCap   { return LineCap(d.enum("line cap", uint8(LineCapSquare))) }
func (d *decoder) lineJoin() LineJoin { return LineJoin(d.enum("line join", uint8(LineJoinBevel))) }

func (d *decoder) stroke() Stroke {
	return Stroke{
		Width:       d.float(),
		Cap:         d.lineCap(),
		Join:        d.lineJoin(),
		MiterLimit:  d.float(),
		DashPattern: d.floats(),
		DashOffset:  d.float(),
	}
}
