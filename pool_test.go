package picture

import (
	"image"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourcePoolPathsAreCopied(t *testing.T) {
	pool := NewResourcePool()
	path := gg.NewPath()
	path.MoveTo(0, 0)
	path.LineTo(10, 0)

	ref := pool.AddPath(path)
	path.LineTo(10, 10)

	stored := pool.Path(ref)
	require.NotNil(t, stored)
	assert.Len(t, stored.Elements(), 2)
	assert.NotSame(t, path, stored)
}

func TestResourcePoolNilPath(t *testing.T) {
	pool := NewResourcePool()
	ref := pool.AddPath(nil)
	assert.Nil(t, pool.Path(ref))
	assert.Equal(t, 1, pool.PathCount())
}

func TestResourcePoolBrushesAreCopied(t *testing.T) {
	pool := NewResourcePool()
	g := NewLinearGradientBrush(0, 0, 1, 0).AddColorStop(0, gg.Red)

	ref := pool.AddBrush(g)
	g.AddColorStop(1, gg.Blue)
	g.Stops[0].Color = gg.Green

	stored, ok := pool.Brush(ref).(*LinearGradientBrush)
	require.True(t, ok)
	assert.Equal(t, []GradientStop{{Offset: 0, Color: gg.Red}}, stored.Stops)
}

func TestResourcePoolOutOfRange(t *testing.T) {
	pool := NewResourcePool()
	pool.AddBrush(NewSolidBrush(gg.Black))

	assert.Nil(t, pool.Path(0))
	assert.Nil(t, pool.Brush(1))
	assert.Nil(t, pool.Image(0))
	assert.Nil(t, pool.Recording(0))
	assert.Nil(t, pool.Brush(BrushRef(InvalidRef)))
}

func TestResourcePoolRefsAreSequential(t *testing.T) {
	pool := NewResourcePool()
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	rec := NewRecording(1, 1, nil, NewResourcePool())

	assert.Equal(t, ImageRef(0), pool.AddImage(img))
	assert.Equal(t, ImageRef(1), pool.AddImage(img))
	assert.Equal(t, RecordingRef(0), pool.AddRecording(rec))
	assert.Same(t, rec, pool.Recording(0))
	assert.Equal(t, 2, pool.ImageCount())
	assert.Equal(t, 1, pool.RecordingCount())
}

func TestResourcePoolClone(t *testing.T) {
	pool := NewResourcePool()
	path := gg.NewPath()
	path.MoveTo(1, 1)
	pool.AddPath(path)
	pool.AddBrush(NewSolidBrush(gg.Red))

	clone := pool.Clone()
	clone.AddBrush(NewSolidBrush(gg.Blue))
	clone.Path(0).LineTo(5, 5)

	assert.Equal(t, 1, pool.BrushCount())
	assert.Equal(t, 2, clone.BrushCount())
	assert.Len(t, pool.Path(0).Elements(), 1)
	assert.Len(t, clone.Path(0).Elements(), 2)
}

func TestResourcePoolRecordingsAreShared(t *testing.T) {
	pool := NewResourcePool()
	a := NewRecording(1, 1, nil, nil)
	b := NewRecording(2, 2, nil, nil)

	assert.Equal(t, RecordingRef(0), pool.AddRecording(a))
	assert.Equal(t, RecordingRef(1), pool.AddRecording(b))
	assert.Equal(t, RecordingRef(0), pool.AddRecording(a))
	assert.Equal(t, 2, pool.RecordingCount())

	clone := pool.Clone()
	assert.Equal(t, RecordingRef(1), clone.AddRecording(b))
	assert.Equal(t, RecordingRef(2), clone.AddRecording(NewRecording(3, 3, nil, nil)))
	assert.Equal(t, 2, pool.RecordingCount())
	assert.Equal(t, 3, clone.RecordingCount())
}
