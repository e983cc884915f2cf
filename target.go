package picture

import (
	"image"
	"io"

	"github.com/gogpu/gg"
)

// Target is the drawing capability set a Picture replays into. It is the
// contract between recordings and rendering backends: the raster target,
// the trace target and RecordingCanvas itself all implement it.
//
// Geometry arrives in picture space. Paths, rectangles and text origins
// have already been through the recording transform, so a target that
// rasterizes should draw them under the identity matrix. An image
// destination is mapped by the matrix passed with it, which is the
// identity unless the image is rotated, skewed or flipped.
// SetTransform reports the matrix that was current at record time for
// targets that track it (vector exporters, tracers).
//
// Style setters mirror the state changes made while recording. Drawing
// calls still carry their complete brush and stroke, so targets may treat
// the setters as informational.
type Target interface {
	Save()
	Restore()
	SetTransform(m gg.Matrix)
	SetClip(path *gg.Path, rule FillRule)
	ClearClip()

	FillPath(path *gg.Path, brush Brush, rule FillRule)
	StrokePath(path *gg.Path, brush Brush, stroke Stroke)
	FillRect(rect Rect, brush Brush)
	StrokeRect(rect Rect, brush Brush, stroke Stroke)
	DrawImageRect(img image.Image, src, dst Rect, m gg.Matrix, opts ImageOptions)
	DrawText(s string, x, y float64, font Font, brush Brush)

	SetFillStyle(brush Brush)
	SetStrokeStyle(brush Brush)
	SetLineWidth(width float64)
	SetLineCap(lineCap LineCap)
	SetLineJoin(join LineJoin)
	SetMiterLimit(limit float64)
	SetDashStyle(pattern []float64, offset float64)
	SetFillRule(rule FillRule)
}

// RecordingTarget is implemented by targets that keep nested pictures as a
// unit instead of having the dispatcher expand them. Picture.Draw hands
// such a target the whole recording under GetTransform, so drawing a
// picture onto a RecordingCanvas matches RecordingCanvas.DrawPicture.
type RecordingTarget interface {
	Target

	// DrawRecording draws rec under m.
	DrawRecording(rec *Recording, m gg.Matrix)

	// GetTransform returns the matrix a picture drawn onto the target is
	// placed under.
	GetTransform() gg.Matrix
}

// ImageTarget exposes rendered pixels.
type ImageTarget interface {
	Target
	Image() image.Image
}

// WriterTarget writes its output (PNG for the raster target) to w.
type WriterTarget interface {
	Target
	WriteTo(w io.Writer) (int64, error)
}

// FileTarget saves its output to a file.
type FileTarget interface {
	Target
	SaveToFile(path string) error
}
