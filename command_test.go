package picture

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
)

func TestCommandTypeNames(t *testing.T) {
	cmds := []Command{
		SaveCommand{}, RestoreCommand{}, SetTransformCommand{}, SetClipCommand{}, ClearClipCommand{},
		FillPathCommand{}, StrokePathCommand{}, FillRectCommand{}, StrokeRectCommand{},
		DrawImageCommand{}, DrawTextCommand{}, DrawPictureCommand{},
		SetFillStyleCommand{}, SetStrokeStyleCommand{}, SetLineWidthCommand{}, SetLineCapCommand{},
		SetLineJoinCommand{}, SetMiterLimitCommand{}, SetDashCommand{}, SetFillRuleCommand{},
	}
	seen := make(map[CommandType]bool)
	for _, cmd := range cmds {
		typ := cmd.Type()
		assert.True(t, typ.Valid(), "%T", cmd)
		assert.NotEqual(t, "Unknown", typ.String(), "%T", cmd)
		assert.False(t, seen[typ], "duplicate tag %d", typ)
		seen[typ] = true
	}
	assert.Len(t, commandTypeNames, len(cmds))

	assert.False(t, CommandType(0).Valid())
	assert.Equal(t, "Unknown", CommandType(99).String())
}

func TestRefValidity(t *testing.T) {
	assert.True(t, PathRef(0).IsValid())
	assert.False(t, PathRef(InvalidRef).IsValid())
	assert.False(t, BrushRef(InvalidRef).IsValid())
	assert.False(t, ImageRef(InvalidRef).IsValid())
	assert.False(t, RecordingRef(InvalidRef).IsValid())
}

func TestStrokeClone(t *testing.T) {
	s := DefaultStroke()
	assert.Nil(t, s.Clone().DashPattern)

	s.DashPattern = []float64{1, 2}
	c := s.Clone()
	s.DashPattern[0] = 9
	assert.Equal(t, []float64{1, 2}, c.DashPattern)
}

func TestRect(t *testing.T) {
	r := NewRectFromPoints(10, 20, 0, 5)
	assert.Equal(t, Rect{MinX: 0, MinY: 5, MaxX: 10, MaxY: 20}, r)
	assert.Equal(t, 10.0, r.Width())
	assert.Equal(t, 15.0, r.Height())
	assert.False(t, r.IsEmpty())
	assert.True(t, NewRect(1, 1, 0, 5).IsEmpty())
	assert.True(t, Rect{}.IsZero())

	scaled := NewRect(1, 1, 2, 2).Transform(gg.Scale(-1, 2))
	assert.Equal(t, Rect{MinX: -3, MinY: 2, MaxX: -1, MaxY: 6}, scaled)

	rotated := NewRect(0, 0, 2, 2).Transform(gg.Rotate(math.Pi / 4))
	assert.InDelta(t, 2*math.Sqrt2, rotated.Height(), 1e-9)
	assert.Len(t, NewRect(0, 0, 1, 1).Path().Elements(), 5)
}

func TestIsAxisAligned(t *testing.T) {
	assert.True(t, isAxisAligned(gg.Identity()))
	assert.True(t, isAxisAligned(gg.Translate(5, 5).Multiply(gg.Scale(2, -3))))
	assert.False(t, isAxisAligned(gg.Rotate(0.1)))
	assert.False(t, isAxisAligned(gg.Shear(0.5, 0)))
}
