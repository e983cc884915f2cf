package main

import (
	"math"

	"github.com/gogpu/gg"
	picture "github.com/gogpu/gg-picture"
)

// recordDemo records a picture exercising shapes, transforms, curves,
// gradients, text and a nested picture.
func recordDemo(width, height int) *picture.Picture {
	star := recordStar()
	defer star.Close()

	pic := picture.New()
	c := pic.BeginRecording(width, height)
	defer c.Release()

	drawGradientBackground(c, width, height)
	drawShapesDemo(c)
	drawTransformDemo(c)
	drawPathDemo(c, star)
	drawTextDemo(c, height)

	pic.EndRecording()
	return pic
}

// recordStar records a five-pointed star centered on the origin.
func recordStar() *picture.Picture {
	star := picture.New()
	c := star.BeginRecording(120, 120)
	defer c.Release()

	const (
		points = 5
		outerR = 60.0
		innerR = 30.0
	)
	c.SetRGB(1, 1, 0)
	for i := range points * 2 {
		angle := float64(i) * math.Pi / points
		r := outerR
		if i%2 == 1 {
			r = innerR
		}
		x := r * math.Cos(angle-math.Pi/2)
		y := r * math.Sin(angle-math.Pi/2)
		if i == 0 {
			c.MoveTo(x, y)
		} else {
			c.LineTo(x, y)
		}
	}
	c.ClosePath()
	c.Fill()

	star.EndRecording()
	return star
}

func drawGradientBackground(c *picture.RecordingCanvas, w, h int) {
	bg := picture.NewLinearGradientBrush(0, 0, 0, float64(h)).
		AddColorStop(0, gg.RGB(0.1, 0.2, 0.4)).
		AddColorStop(1, gg.RGB(0.5, 0.5, 0.6))
	c.SetFillStyle(bg)
	c.FillRectangle(0, 0, float64(w), float64(h))
}

func drawShapesDemo(c *picture.RecordingCanvas) {
	c.SetRGBA(1, 0.3, 0.3, 0.8)
	c.DrawCircle(150, 150, 60)
	c.Fill()

	c.SetRGBA(0.3, 1, 0.3, 0.8)
	c.DrawCircle(200, 150, 60)
	c.Fill()

	c.SetRGBA(0.3, 0.3, 1, 0.8)
	c.DrawCircle(175, 200, 60)
	c.Fill()

	c.SetRGB(1, 0.8, 0)
	c.DrawRoundedRectangle(350, 100, 120, 80, 15)
	c.Fill()

	c.SetRGB(1, 1, 1)
	c.SetLineWidth(4)
	c.StrokeRectangle(350, 100, 120, 80)
}

func drawTransformDemo(c *picture.RecordingCanvas) {
	const centerX, centerY = 600.0, 150.0
	for i := range 8 {
		c.Push()
		c.Translate(centerX, centerY)
		c.Rotate(float64(i) * math.Pi / 4)
		c.SetColor(gg.HSL(float64(i)*45, 0.8, 0.6))
		c.DrawRectangle(-30, -30, 60, 60)
		c.Fill()
		c.Pop()
	}
}

func drawPathDemo(c *picture.RecordingCanvas, star *picture.Picture) {
	c.Push()
	c.Translate(150, 400)

	c.SetRGB(1, 0.5, 0)
	c.SetLineWidth(6)
	c.SetLineCap(picture.LineCapRound)
	c.MoveTo(0, 0)
	c.CubicTo(50, -50, 100, 50, 150, 0)
	c.CubicTo(200, -30, 250, 30, 300, 0)
	c.Stroke()

	c.Translate(400, 0)
	c.DrawPicture(star)
	c.Pop()
}

func drawTextDemo(c *picture.RecordingCanvas, height int) {
	c.SetRGB(1, 1, 1)
	c.SetFontFamily("Go")
	c.SetFontSize(24)
	c.DrawString("gg-picture", 40, float64(height)-40)
}
