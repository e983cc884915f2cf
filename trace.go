package picture

import (
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
)

func init() {
	RegisterTarget("trace", func(_, _ int) (Target, error) {
		return NewTraceTarget(), nil
	})
}

// TraceEntry is one call received by a TraceTarget.
type TraceEntry struct {
	Op   string `yaml:"op"`
	Args string `yaml:"args,omitempty"`
}

// String formats the entry as "Op args".
func (e TraceEntry) String() string {
	if e.Args == "" {
		return e.Op
	}
	return e.Op + " " + e.Args
}

// TraceTarget records every call it receives as a line of text with all
// operands spelled out. Two replays that produce equal traces issued the
// same calls with the same operands.
type TraceTarget struct {
	Entries []TraceEntry
}

var _ Target = (*TraceTarget)(nil)

// NewTraceTarget returns an empty trace.
func NewTraceTarget() *TraceTarget {
	return &TraceTarget{}
}

// Lines returns the entries formatted with TraceEntry.String.
func (t *TraceTarget) Lines() []string {
	lines := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		lines[i] = e.String()
	}
	return lines
}

// Ops returns the operation names in call order.
func (t *TraceTarget) Ops() []string {
	ops := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		ops[i] = e.Op
	}
	return ops
}

// Reset clears the trace.
func (t *TraceTarget) Reset() {
	t.Entries = t.Entries[:0]
}

func (t *TraceTarget) add(op CommandType, args ...string) {
	t.Entries = append(t.Entries, TraceEntry{Op: op.String(), Args: strings.Join(args, " ")})
}

func (t *TraceTarget) Save()    { t.add(CmdSave) }
func (t *TraceTarget) Restore() { t.add(CmdRestore) }

func (t *TraceTarget) SetTransform(m gg.Matrix) {
	t.add(CmdSetTransform, formatMatrix(m))
}

func (t *TraceTarget) SetClip(path *gg.Path, rule FillRule) {
	t.add(CmdSetClip, formatPath(path), formatFillRule(rule))
}

func (t *TraceTarget) ClearClip() { t.add(CmdClearClip) }

func (t *TraceTarget) FillPath(path *gg.Path, brush Brush, rule FillRule) {
	t.add(CmdFillPath, formatPath(path), formatBrush(brush), formatFillRule(rule))
}

func (t *TraceTarget) StrokePath(path *gg.Path, brush Brush, stroke Stroke) {
	t.add(CmdStrokePath, formatPath(path), formatBrush(brush), formatStroke(stroke))
}

func (t *TraceTarget) FillRect(rect Rect, brush Brush) {
	t.add(CmdFillRect, formatRect(rect), formatBrush(brush))
}

func (t *TraceTarget) StrokeRect(rect Rect, brush Brush, stroke Stroke) {
	t.add(CmdStrokeRect, formatRect(rect), formatBrush(brush), formatStroke(stroke))
}

func (t *TraceTarget) DrawImageRect(img image.Image, src, dst Rect, m gg.Matrix, opts ImageOptions) {
	t.add(CmdDrawImage, formatImage(img), "src="+formatRect(src), "dst="+formatRect(dst), "m="+formatMatrix(m),
		fmt.Sprintf("interp=%d alpha=%s", opts.Interpolation, formatFloat(opts.Alpha)))
}

func (t *TraceTarget) DrawText(s string, x, y float64, font Font, brush Brush) {
	t.add(CmdDrawText, strconv.Quote(s), formatPoint(x, y),
		fmt.Sprintf("font=%q/%s", font.Family, formatFloat(font.Size)), formatBrush(brush))
}

func (t *TraceTarget) SetFillStyle(brush Brush)   { t.add(CmdSetFillStyle, formatBrush(brush)) }
func (t *TraceTarget) SetStrokeStyle(brush Brush) { t.add(CmdSetStrokeStyle, formatBrush(brush)) }
func (t *TraceTarget) SetLineWidth(width float64) { t.add(CmdSetLineWidth, formatFloat(width)) }
func (t *TraceTarget) SetLineCap(c LineCap)       { t.add(CmdSetLineCap, strconv.Itoa(int(c))) }
func (t *TraceTarget) SetLineJoin(j LineJoin)     { t.add(CmdSetLineJoin, strconv.Itoa(int(j))) }
func (t *TraceTarget) SetMiterLimit(l float64)    { t.add(CmdSetMiterLimit, formatFloat(l)) }

func (t *TraceTarget) SetDashStyle(pattern []float64, offset float64) {
	t.add(CmdSetDash, formatFloats(pattern), formatFloat(offset))
}

func (t *TraceTarget) SetFillRule(rule FillRule) { t.add(CmdSetFillRule, formatFillRule(rule)) }

// --------------------------------------------------------------------------
// Formatting
// --------------------------------------------------------------------------

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatFloats(fs []float64) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = formatFloat(f)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func formatPoint(x, y float64) string {
	return formatFloat(x) + "," + formatFloat(y)
}

func formatRect(r Rect) string {
	return formatPoint(r.MinX, r.MinY) + "-" + formatPoint(r.MaxX, r.MaxY)
}

func formatMatrix(m gg.Matrix) string {
	return formatFloats([]float64{m.A, m.B, m.C, m.D, m.E, m.F})
}

func formatFillRule(rule FillRule) string {
	if rule == FillRuleEvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

func formatColor(c gg.RGBA) string {
	return "rgba(" + formatFloats([]float64{c.R, c.G, c.B, c.A}) + ")"
}

func formatStops(stops []GradientStop) string {
	parts := make([]string, len(stops))
	for i, s := range stops {
		parts[i] = formatFloat(s.Offset) + ":" + formatColor(s.Color)
	}
	return "{" + strings.Join(parts, " ") + "}"
}

func formatBrush(b Brush) string {
	switch br := b.(type) {
	case SolidBrush:
		return formatColor(br.Color)
	case *LinearGradientBrush:
		return fmt.Sprintf("linear(%s %s %s ext=%d)",
			formatPoint(br.Start.X, br.Start.Y), formatPoint(br.End.X, br.End.Y), formatStops(br.Stops), br.Extend)
	case *RadialGradientBrush:
		return fmt.Sprintf("radial(%s %s %s %s %s ext=%d)",
			formatPoint(br.Center.X, br.Center.Y), formatPoint(br.Focus.X, br.Focus.Y),
			formatFloat(br.StartRadius), formatFloat(br.EndRadius), formatStops(br.Stops), br.Extend)
	case *SweepGradientBrush:
		return fmt.Sprintf("sweep(%s %s %s %s ext=%d)",
			formatPoint(br.Center.X, br.Center.Y), formatFloat(br.StartAngle), formatFloat(br.EndAngle),
			formatStops(br.Stops), br.Extend)
	case nil:
		return "none"
	default:
		return fmt.Sprintf("%T", b)
	}
}

func formatStroke(s Stroke) string {
	return fmt.Sprintf("w=%s cap=%d join=%d miter=%s dash=%s@%s",
		formatFloat(s.Width), s.Cap, s.Join, formatFloat(s.MiterLimit),
		formatFloats(s.DashPattern), formatFloat(s.DashOffset))
}

func formatPath(p *gg.Path) string {
	if p == nil {
		return "path()"
	}
	var sb strings.Builder
	sb.WriteString("path(")
	for i, el := range p.Elements() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch e := el.(type) {
		case gg.MoveTo:
			sb.WriteString("M" + formatPoint(e.Point.X, e.Point.Y))
		case gg.LineTo:
			sb.WriteString("L" + formatPoint(e.Point.X, e.Point.Y))
		case gg.QuadTo:
			sb.WriteString("Q" + formatPoint(e.Control.X, e.Control.Y) + " " + formatPoint(e.Point.X, e.Point.Y))
		case gg.CubicTo:
			sb.WriteString("C" + formatPoint(e.Control1.X, e.Control1.Y) + " " +
				formatPoint(e.Control2.X, e.Control2.Y) + " " + formatPoint(e.Point.X, e.Point.Y))
		case gg.Close:
			sb.WriteString("Z")
		}
	}
	sb.WriteString(")")
	return sb.String()
}

// formatImage identifies an image by size and a checksum of its
// non-premultiplied pixels, so equal pixels format equally regardless of
// the concrete image type.
func formatImage(img image.Image) string {
	if img == nil {
		return "image()"
	}
	b := img.Bounds()
	h := crc32.NewIEEE()
	px := make([]byte, 4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			px[0], px[1], px[2], px[3] = c.R, c.G, c.B, c.A
			_, _ = h.Write(px)
		}
	}
	return fmt.Sprintf("image(%dx%d crc=%08x)", b.Dx(), b.Dy(), h.Sum32())
}
