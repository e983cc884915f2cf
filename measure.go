package picture

import (
	"github.com/gogpu/gg/text"
	"golang.org/x/text/width"
)

// Advance widths used when no face is set, in ems.
const (
	narrowAdvance = 0.6
	wideAdvance   = 1.0
	lineHeight    = 1.2
)

// SetFontFace sets the face used by MeasureString. The face only affects
// measurement; recorded text carries the font family and size.
func (c *RecordingCanvas) SetFontFace(face text.Face) {
	c.face = face
}

// MeasureString returns the advance width and line height of s. Without a
// face the size is estimated from the font size, counting East Asian wide
// and fullwidth characters as one em and every other character as 0.6 em.
func (c *RecordingCanvas) MeasureString(s string) (w, h float64) {
	if c.face != nil {
		return text.Measure(s, c.face)
	}
	size := c.state.fontSize
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			w += wideAdvance * size
		default:
			w += narrowAdvance * size
		}
	}
	return w, lineHeight * size
}
