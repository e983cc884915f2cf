package raster

import (
	"github.com/gogpu/gg"
	picture "github.com/gogpu/gg-picture"
)

// convertBrush builds the gg brush for a recorded brush.
func convertBrush(brush picture.Brush) gg.Brush {
	switch br := brush.(type) {
	case picture.SolidBrush:
		return gg.Solid(br.Color)

	case *picture.LinearGradientBrush:
		grad := gg.NewLinearGradientBrush(br.Start.X, br.Start.Y, br.End.X, br.End.Y)
		for _, stop := range br.Stops {
			grad.AddColorStop(stop.Offset, stop.Color)
		}
		grad.SetExtend(gg.ExtendMode(br.Extend))
		return grad

	case *picture.RadialGradientBrush:
		grad := gg.NewRadialGradientBrush(br.Center.X, br.Center.Y, br.StartRadius, br.EndRadius)
		grad.SetFocus(br.Focus.X, br.Focus.Y)
		for _, stop := range br.Stops {
			grad.AddColorStop(stop.Offset, stop.Color)
		}
		grad.SetExtend(gg.ExtendMode(br.Extend))
		return grad

	case *picture.SweepGradientBrush:
		grad := gg.NewSweepGradientBrush(br.Center.X, br.Center.Y, br.StartAngle)
		grad.SetEndAngle(br.EndAngle)
		for _, stop := range br.Stops {
			grad.AddColorStop(stop.Offset, stop.Color)
		}
		grad.SetExtend(gg.ExtendMode(br.Extend))
		return grad

	default:
		return gg.Solid(gg.Black)
	}
}

// textColor picks a single color for text, which gg draws in one color.
// Gradients use their first stop.
func textColor(brush picture.Brush) gg.RGBA {
	var stops []picture.GradientStop
	switch br := brush.(type) {
	case picture.SolidBrush:
		return br.Color
	case *picture.LinearGradientBrush:
		stops = br.Stops
	case *picture.RadialGradientBrush:
		stops = br.Stops
	case *picture.SweepGradientBrush:
		stops = br.Stops
	}
	if len(stops) == 0 {
		return gg.Black
	}
	return stops[0].Color
}

func convertFillRule(rule picture.FillRule) gg.FillRule {
	if rule == picture.FillRuleEvenOdd {
		return gg.FillRuleEvenOdd
	}
	return gg.FillRuleNonZero
}

func convertLineCap(lineCap picture.LineCap) gg.LineCap {
	switch lineCap {
	case picture.LineCapRound:
		return gg.LineCapRound
	case picture.LineCapSquare:
		return gg.LineCapSquare
	default:
		return gg.LineCapButt
	}
}

func convertLineJoin(join picture.LineJoin) gg.LineJoin {
	switch join {
	case picture.LineJoinRound:
		return gg.LineJoinRound
	case picture.LineJoinBevel:
		return gg.LineJoinBevel
	default:
		return gg.LineJoinMiter
	}
}

func convertInterpolation(mode picture.InterpolationMode) gg.InterpolationMode {
	if mode == picture.InterpolationNearest {
		return gg.InterpNearest
	}
	return gg.InterpBilinear
}
