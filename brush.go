package picture

import (
	"math"

	"github.com/gogpu/gg"
)

// Brush is a fill or stroke style stored in a recording.
// The interface is sealed; the codec knows every implementation.
type Brush interface {
	brushMarker()
}

// SolidBrush paints a single color.
type SolidBrush struct {
	Color gg.RGBA
}

func (SolidBrush) brushMarker() {}

// NewSolidBrush creates a solid color brush.
func NewSolidBrush(c gg.RGBA) SolidBrush {
	return SolidBrush{Color: c}
}

// GradientStop is a color at a position in [0, 1].
type GradientStop struct {
	Offset float64
	Color  gg.RGBA
}

// ExtendMode selects how a gradient continues past its end points.
type ExtendMode uint8

const (
	ExtendPad ExtendMode = iota
	ExtendRepeat
	ExtendReflect
)

// LinearGradientBrush blends colors along the line Start-End.
type LinearGradientBrush struct {
	Start  gg.Point
	End    gg.Point
	Stops  []GradientStop
	Extend ExtendMode
}

func (*LinearGradientBrush) brushMarker() {}

// NewLinearGradientBrush creates a linear gradient from (x0, y0) to (x1, y1).
func NewLinearGradientBrush(x0, y0, x1, y1 float64) *LinearGradientBrush {
	return &LinearGradientBrush{Start: gg.Pt(x0, y0), End: gg.Pt(x1, y1)}
}

// AddColorStop appends a stop and returns g for chaining.
func (g *LinearGradientBrush) AddColorStop(offset float64, c gg.RGBA) *LinearGradientBrush {
	g.Stops = append(g.Stops, GradientStop{Offset: offset, Color: c})
	return g
}

// SetExtend sets the extend mode and returns g for chaining.
func (g *LinearGradientBrush) SetExtend(mode ExtendMode) *LinearGradientBrush {
	g.Extend = mode
	return g
}

// RadialGradientBrush blends colors between two circles around Center,
// with an optional Focus.
type RadialGradientBrush struct {
	Center      gg.Point
	Focus       gg.Point
	StartRadius float64
	EndRadius   float64
	Stops       []GradientStop
	Extend      ExtendMode
}

func (*RadialGradientBrush) brushMarker() {}

// NewRadialGradientBrush creates a radial gradient with the focus at the center.
func NewRadialGradientBrush(cx, cy, startRadius, endRadius float64) *RadialGradientBrush {
	return &RadialGradientBrush{
		Center:      gg.Pt(cx, cy),
		Focus:       gg.Pt(cx, cy),
		StartRadius: startRadius,
		EndRadius:   endRadius,
	}
}

// SetFocus moves the focal point and returns g for chaining.
func (g *RadialGradientBrush) SetFocus(fx, fy float64) *RadialGradientBrush {
	g.Focus = gg.Pt(fx, fy)
	return g
}

// AddColorStop appends a stop and returns g for chaining.
func (g *RadialGradientBrush) AddColorStop(offset float64, c gg.RGBA) *RadialGradientBrush {
	g.Stops = append(g.Stops, GradientStop{Offset: offset, Color: c})
	return g
}

// SetExtend sets the extend mode and returns g for chaining.
func (g *RadialGradientBrush) SetExtend(mode ExtendMode) *RadialGradientBrush {
	g.Extend = mode
	return g
}

// SweepGradientBrush blends colors by angle around Center.
type SweepGradientBrush struct {
	Center     gg.Point
	StartAngle float64
	EndAngle   float64
	Stops      []GradientStop
	Extend     ExtendMode
}

func (*SweepGradientBrush) brushMarker() {}

// NewSweepGradientBrush creates a full-turn sweep starting at startAngle.
func NewSweepGradientBrush(cx, cy, startAngle float64) *SweepGradientBrush {
	return &SweepGradientBrush{
		Center:     gg.Pt(cx, cy),
		StartAngle: startAngle,
		EndAngle:   startAngle + 2*math.Pi,
	}
}

// SetEndAngle sets the end angle and returns g for chaining.
func (g *SweepGradientBrush) SetEndAngle(endAngle float64) *SweepGradientBrush {
	g.EndAngle = endAngle
	return g
}

// AddColorStop appends a stop and returns g for chaining.
func (g *SweepGradientBrush) AddColorStop(offset float64, c gg.RGBA) *SweepGradientBrush {
	g.Stops = append(g.Stops, GradientStop{Offset: offset, Color: c})
	return g
}

// SetExtend sets the extend mode and returns g for chaining.
func (g *SweepGradientBrush) SetExtend(mode ExtendMode) *SweepGradientBrush {
	g.Extend = mode
	return g
}

// BrushFromGG converts a gg brush into a storable brush. Unknown brush
// types are sampled at the origin and stored as a solid color. A nil brush,
// including a nil gradient pointer, converts to nil and paints nothing.
func BrushFromGG(b gg.Brush) Brush {
	switch br := b.(type) {
	case nil:
		return nil
	case gg.SolidBrush:
		return SolidBrush{Color: br.Color}
	case *gg.LinearGradientBrush:
		if br == nil {
			return nil
		}
		return &LinearGradientBrush{
			Start:  br.Start,
			End:    br.End,
			Stops:  stopsFromGG(br.Stops),
			Extend: ExtendMode(br.Extend),
		}
	case *gg.RadialGradientBrush:
		if br == nil {
			return nil
		}
		return &RadialGradientBrush{
			Center:      br.Center,
			Focus:       br.Focus,
			StartRadius: br.StartRadius,
			EndRadius:   br.EndRadius,
			Stops:       stopsFromGG(br.Stops),
			Extend:      ExtendMode(br.Extend),
		}
	case *gg.SweepGradientBrush:
		if br == nil {
			return nil
		}
		return &SweepGradientBrush{
			Center:     br.Center,
			StartAngle: br.StartAngle,
			EndAngle:   br.EndAngle,
			Stops:      stopsFromGG(br.Stops),
			Extend:     ExtendMode(br.Extend),
		}
	default:
		return SolidBrush{Color: b.ColorAt(0, 0)}
	}
}

func stopsFromGG(stops []gg.ColorStop) []GradientStop {
	out := make([]GradientStop, len(stops))
	for i, s := range stops {
		out[i] = GradientStop{Offset: s.Offset, Color: s.Color}
	}
	return out
}

// cloneBrush copies gradient stop slices so a stored brush cannot be
// changed through the caller's pointer.
func cloneBrush(b Brush) Brush {
	switch br := b.(type) {
	case *LinearGradientBrush:
		c := *br
		c.Stops = append([]GradientStop(nil), br.Stops...)
		return &c
	case *RadialGradientBrush:
		c := *br
		c.Stops = append([]GradientStop(nil), br.Stops...)
		return &c
	case *SweepGradientBrush:
		c := *br
		c.Stops = append([]GradientStop(nil), br.Stops...)
		return &c
	default:
		return b
	}
}
