package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"path/filepath"
	"testing"

	"github.com/gogpu/gg"
	picture "github.com/gogpu/gg-picture"
	"github.com/gogpu/gg/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pixel(t *testing.T, tgt *Target, x, y int) color.RGBA {
	t.Helper()
	img := tgt.Image()
	require.NotNil(t, img)
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func isRed(c color.RGBA) bool   { return c.R > 200 && c.G < 50 && c.B < 50 && c.A > 200 }
func isBlue(c color.RGBA) bool  { return c.B > 200 && c.R < 50 && c.G < 50 && c.A > 200 }
func isEmpty(c color.RGBA) bool { return c.A == 0 }

func TestTargetRegistration(t *testing.T) {
	require.True(t, picture.IsRegistered("raster"))

	tgt, err := picture.NewTarget("raster", 40, 30)
	require.NoError(t, err)
	rt, ok := tgt.(*Target)
	require.True(t, ok)
	assert.Equal(t, 40, rt.Width())
	assert.Equal(t, 30, rt.Height())
}

func TestTargetNegativeSize(t *testing.T) {
	tgt := NewTarget(-5, 10)
	assert.Equal(t, 0, tgt.Width())
	assert.Equal(t, 10, tgt.Height())
}

func TestTargetBackground(t *testing.T) {
	tgt := NewTarget(10, 10, WithBackground(gg.Blue))
	assert.True(t, isBlue(pixel(t, tgt, 5, 5)))

	plain := NewTarget(10, 10)
	assert.True(t, isEmpty(pixel(t, plain, 5, 5)))
}

func TestTargetFillRect(t *testing.T) {
	tgt := NewTarget(100, 100)
	tgt.FillRect(picture.NewRect(10, 10, 50, 50), picture.NewSolidBrush(gg.Red))

	assert.True(t, isRed(pixel(t, tgt, 35, 35)))
	assert.True(t, isEmpty(pixel(t, tgt, 80, 80)))
}

func TestTargetFillPath(t *testing.T) {
	tgt := NewTarget(100, 100)
	path := gg.NewPath()
	path.MoveTo(50, 10)
	path.LineTo(90, 90)
	path.LineTo(10, 90)
	path.Close()
	tgt.FillPath(path, picture.NewSolidBrush(gg.Blue), picture.FillRuleNonZero)

	assert.True(t, isBlue(pixel(t, tgt, 50, 60)))
	assert.True(t, isEmpty(pixel(t, tgt, 5, 5)))
}

func TestTargetStrokePath(t *testing.T) {
	tgt := NewTarget(100, 100)
	path := gg.NewPath()
	path.MoveTo(10, 50)
	path.LineTo(90, 50)
	tgt.StrokePath(path, picture.NewSolidBrush(gg.Red), picture.Stroke{
		Width:      6,
		Cap:        picture.LineCapRound,
		Join:       picture.LineJoinRound,
		MiterLimit: 4,
	})

	assert.True(t, isRed(pixel(t, tgt, 50, 50)))
	assert.True(t, isEmpty(pixel(t, tgt, 50, 20)))
}

func TestTargetClipScopedBySaveRestore(t *testing.T) {
	tgt := NewTarget(100, 100)
	clip := picture.NewRect(0, 0, 50, 100).Path()

	tgt.Save()
	tgt.SetClip(clip, picture.FillRuleNonZero)
	tgt.FillRect(picture.NewRect(0, 0, 100, 50), picture.NewSolidBrush(gg.Red))
	tgt.Restore()
	tgt.FillRect(picture.NewRect(0, 50, 100, 50), picture.NewSolidBrush(gg.Blue))

	assert.True(t, isRed(pixel(t, tgt, 25, 25)))
	assert.True(t, isEmpty(pixel(t, tgt, 75, 25)))
	assert.True(t, isBlue(pixel(t, tgt, 75, 75)))
}

func TestTargetClearClip(t *testing.T) {
	tgt := NewTarget(100, 100)
	tgt.SetClip(picture.NewRect(0, 0, 10, 10).Path(), picture.FillRuleNonZero)
	tgt.ClearClip()
	tgt.FillRect(picture.NewRect(0, 0, 100, 100), picture.NewSolidBrush(gg.Red))

	assert.True(t, isRed(pixel(t, tgt, 75, 75)))
}

func TestTargetDrawImageRect(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 10, 14, 12))
	for x := 10; x < 12; x++ {
		for y := 10; y < 12; y++ {
			src.Set(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	for x := 12; x < 14; x++ {
		for y := 10; y < 12; y++ {
			src.Set(x, y, color.NRGBA{B: 255, A: 255})
		}
	}

	tgt := NewTarget(40, 40)
	// Right half of the image only, scaled up.
	tgt.DrawImageRect(src, picture.NewRect(2, 0, 2, 2), picture.NewRect(0, 0, 20, 20), gg.Identity(), picture.ImageOptions{
		Interpolation: picture.InterpolationNearest,
		Alpha:         1,
	})

	assert.True(t, isBlue(pixel(t, tgt, 10, 10)))
	assert.True(t, isEmpty(pixel(t, tgt, 30, 30)))

	// The same crop mirrored into the right half.
	flipped := NewTarget(40, 40)
	mirror := gg.Translate(40, 0).Multiply(gg.Scale(-1, 1))
	flipped.DrawImageRect(src, picture.NewRect(2, 0, 2, 2), picture.NewRect(0, 0, 20, 20), mirror, picture.ImageOptions{
		Interpolation: picture.InterpolationNearest,
		Alpha:         1,
	})
	assert.True(t, isBlue(pixel(t, flipped, 30, 10)))
	assert.True(t, isEmpty(pixel(t, flipped, 10, 10)))
}

// solidImage returns a w x h image filled with c.
func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

// assertDiamond checks a 20x20 square turned 45 degrees with its top
// corner at (50, 20): the center is inked, the corners of its bounding
// box are not.
func assertDiamond(t *testing.T, tgt *Target) {
	t.Helper()
	assert.True(t, isRed(pixel(t, tgt, 50, 34)))
	assert.True(t, isEmpty(pixel(t, tgt, 38, 22)))
	assert.True(t, isEmpty(pixel(t, tgt, 62, 46)))
	assert.True(t, isEmpty(pixel(t, tgt, 38, 46)))
}

func TestTargetDrawImageRotated(t *testing.T) {
	img := solidImage(10, 10, color.NRGBA{R: 255, A: 255})
	m := gg.Translate(50, 20).Multiply(gg.Rotate(math.Pi / 4))

	tgt := NewTarget(100, 100)
	tgt.DrawImageRect(img, picture.Rect{}, picture.NewRect(0, 0, 20, 20), m, picture.DefaultImageOptions())
	assertDiamond(t, tgt)
}

func TestTargetDrawRotatedImagePicture(t *testing.T) {
	img := solidImage(10, 10, color.NRGBA{R: 255, A: 255})

	pic := picture.New()
	c := pic.BeginRecording(100, 100)
	c.Translate(50, 20)
	c.Rotate(math.Pi / 4)
	c.DrawImageScaled(img, 0, 0, 20, 20)
	pic.EndRecording()
	c.Release()

	tgt := NewTarget(100, 100)
	pic.Draw(tgt)
	assertDiamond(t, tgt)

	var buf bytes.Buffer
	_, err := pic.WriteTo(&buf)
	require.NoError(t, err)
	decoded, err := picture.ReadPicture(&buf)
	require.NoError(t, err)
	again := NewTarget(100, 100)
	decoded.Draw(again)
	assertDiamond(t, again)
}

func TestTargetDrawImageSingularMatrix(t *testing.T) {
	img := solidImage(4, 4, color.NRGBA{R: 255, A: 255})
	tgt := NewTarget(10, 10)
	assert.NotPanics(t, func() {
		tgt.DrawImageRect(img, picture.Rect{}, picture.NewRect(0, 0, 5, 5), gg.Scale(0, 1), picture.DefaultImageOptions())
	})
	assert.Equal(t, 0, countInk(tgt.Image()))
}

func TestTargetDrawImageSkipsInvisible(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	tgt := NewTarget(10, 10)
	assert.NotPanics(t, func() {
		tgt.DrawImageRect(nil, picture.Rect{}, picture.NewRect(0, 0, 5, 5), gg.Identity(), picture.DefaultImageOptions())
		tgt.DrawImageRect(src, picture.Rect{}, picture.NewRect(0, 0, 0, 5), gg.Identity(), picture.DefaultImageOptions())
		tgt.DrawImageRect(src, picture.NewRect(5, 5, 2, 2), picture.NewRect(0, 0, 5, 5), gg.Identity(), picture.DefaultImageOptions())
		tgt.DrawImageRect(src, picture.Rect{}, picture.NewRect(0, 0, 5, 5), gg.Identity(), picture.ImageOptions{Alpha: 0})
	})
	assert.True(t, isEmpty(pixel(t, tgt, 2, 2)))
}

func countInk(img image.Image) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
				n++
			}
		}
	}
	return n
}

func TestTargetDrawTextFallsBackToGoRegular(t *testing.T) {
	tgt := NewTarget(120, 40)
	tgt.DrawText("Hello", 5, 30, picture.Font{Family: "No Such Family", Size: 24}, picture.NewSolidBrush(gg.Black))
	assert.Positive(t, countInk(tgt.Image()))
}

func TestTargetDrawTextUsesResolver(t *testing.T) {
	var asked []picture.Font
	resolver := FontResolverFunc(func(font picture.Font) (text.Face, error) {
		asked = append(asked, font)
		return nil, ErrFontNotFound
	})
	tgt := NewTarget(120, 40, WithFontResolver(resolver))
	tgt.DrawText("Hi", 5, 30, picture.Font{Family: "Serif"}, picture.NewSolidBrush(gg.Black))

	require.Len(t, asked, 1)
	assert.Equal(t, picture.Font{Family: "Serif", Size: defaultFontSize}, asked[0])
	assert.Positive(t, countInk(tgt.Image()), "default font used after resolver miss")
}

func TestTargetDrawTextSkipsEmpty(t *testing.T) {
	tgt := NewTarget(20, 20)
	tgt.DrawText("", 0, 10, picture.Font{}, picture.NewSolidBrush(gg.Black))
	tgt.DrawText("x", 0, 10, picture.Font{}, nil)
	assert.Zero(t, countInk(tgt.Image()))
}

func TestTargetDefaultFontUnreadable(t *testing.T) {
	tgt := NewTarget(60, 30, WithDefaultFont(filepath.Join(t.TempDir(), "missing.ttf")))
	require.NotNil(t, tgt.fallback)
	tgt.DrawText("ok", 2, 20, picture.Font{Size: 16}, picture.NewSolidBrush(gg.Black))
	assert.Positive(t, countInk(tgt.Image()))
}

func TestTargetSetTransformTracked(t *testing.T) {
	tgt := NewTarget(10, 10)
	m := gg.Translate(3, 4)

	tgt.Save()
	tgt.SetTransform(m)
	assert.Equal(t, m, tgt.Transform())
	tgt.Restore()
	assert.Equal(t, gg.Identity(), tgt.Transform())
}

func TestTargetWriteTo(t *testing.T) {
	tgt := NewTarget(16, 8, WithBackground(gg.Red))

	var buf bytes.Buffer
	n, err := tgt.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 8), img.Bounds())
}

func TestTargetSaveToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, NewTarget(4, 4).SaveToFile(path))
	assert.FileExists(t, path)
}

func TestPictureDrawsOntoTarget(t *testing.T) {
	pic := picture.New()
	c := pic.BeginRecording(50, 50)
	c.SetRGB(1, 0, 0)
	c.Translate(10, 10)
	c.FillRectangle(0, 0, 20, 20)
	pic.EndRecording()
	c.Release()

	tgt := NewTarget(pic.Width(), pic.Height())
	pic.Draw(tgt)

	assert.True(t, isRed(pixel(t, tgt, 20, 20)))
	assert.True(t, isEmpty(pixel(t, tgt, 5, 5)))
	assert.True(t, isEmpty(pixel(t, tgt, 40, 40)))
}

func TestSystemFontResolverEmptyFamily(t *testing.T) {
	r := NewSystemFontResolverWithCache(t.TempDir())
	_, err := r.Face(picture.Font{Size: 12})
	assert.ErrorIs(t, err, ErrFontNotFound)
}

func TestConvertBrush(t *testing.T) {
	assert.Equal(t, gg.Solid(gg.Red), convertBrush(picture.NewSolidBrush(gg.Red)))
	assert.Equal(t, gg.Solid(gg.Black), convertBrush(nil))

	lin := picture.NewLinearGradientBrush(0, 0, 10, 0).AddColorStop(0, gg.Red).SetExtend(picture.ExtendRepeat)
	got, ok := convertBrush(lin).(*gg.LinearGradientBrush)
	require.True(t, ok)
	assert.Equal(t, gg.Pt(10, 0), got.End)
	assert.Equal(t, gg.ExtendRepeat, got.Extend)
	assert.Len(t, got.Stops, 1)

	_, ok = convertBrush(picture.NewRadialGradientBrush(0, 0, 1, 2)).(*gg.RadialGradientBrush)
	assert.True(t, ok)
	_, ok = convertBrush(picture.NewSweepGradientBrush(0, 0, 0)).(*gg.SweepGradientBrush)
	assert.True(t, ok)
}

func TestTextColor(t *testing.T) {
	assert.Equal(t, gg.Red, textColor(picture.NewSolidBrush(gg.Red)))
	assert.Equal(t, gg.Blue, textColor(picture.NewLinearGradientBrush(0, 0, 1, 1).AddColorStop(0, gg.Blue)))
	assert.Equal(t, gg.Black, textColor(picture.NewSweepGradientBrush(0, 0, 0)))
}

func TestConvertEnums(t *testing.T) {
	assert.Equal(t, gg.FillRuleEvenOdd, convertFillRule(picture.FillRuleEvenOdd))
	assert.Equal(t, gg.FillRuleNonZero, convertFillRule(picture.FillRuleNonZero))
	assert.Equal(t, gg.LineCapSquare, convertLineCap(picture.LineCapSquare))
	assert.Equal(t, gg.LineCapButt, convertLineCap(picture.LineCapButt))
	assert.Equal(t, gg.LineJoinBevel, convertLineJoin(picture.LineJoinBevel))
	assert.Equal(t, gg.LineJoinMiter, convertLineJoin(picture.LineJoinMiter))
	assert.Equal(t, gg.InterpNearest, convertInterpolation(picture.InterpolationNearest))
	assert.Equal(t, gg.InterpBilinear, convertInterpolation(picture.InterpolationBilinear))
}

func TestFontResolverFunc(t *testing.T) {
	boom := errors.New("boom")
	f := FontResolverFunc(func(picture.Font) (text.Face, error) { return nil, boom })
	_, err := f.Face(picture.Font{})
	assert.ErrorIs(t, err, boom)
}
