package picture

import "github.com/gogpu/gg"

// CommandType identifies a command. The numeric values are written to the
// stream as record tags and must never be renumbered.
type CommandType uint8

const (
	// State commands
	CmdSave         CommandType = 1
	CmdRestore      CommandType = 2
	CmdSetTransform CommandType = 3
	CmdSetClip      CommandType = 4
	CmdClearClip    CommandType = 5

	// Drawing commands
	CmdFillPath    CommandType = 16
	CmdStrokePath  CommandType = 17
	CmdFillRect    CommandType = 18
	CmdStrokeRect  CommandType = 19
	CmdDrawImage   CommandType = 20
	CmdDrawText    CommandType = 21
	CmdDrawPicture CommandType = 22

	// Style commands
	CmdSetFillStyle   CommandType = 32
	CmdSetStrokeStyle CommandType = 33
	CmdSetLineWidth   CommandType = 34
	CmdSetLineCap     CommandType = 35
	CmdSetLineJoin    CommandType = 36
	CmdSetMiterLimit  CommandType = 37
	CmdSetDash        CommandType = 38
	CmdSetFillRule    CommandType = 39
)

var commandTypeNames = map[CommandType]string{
	CmdSave:           "Save",
	CmdRestore:        "Restore",
	CmdSetTransform:   "SetTransform",
	CmdSetClip:        "SetClip",
	CmdClearClip:      "ClearClip",
	CmdFillPath:       "FillPath",
	CmdStrokePath:     "StrokePath",
	CmdFillRect:       "FillRect",
	CmdStrokeRect:     "StrokeRect",
	CmdDrawImage:      "DrawImage",
	CmdDrawText:       "DrawText",
	CmdDrawPicture:    "DrawPicture",
	CmdSetFillStyle:   "SetFillStyle",
	CmdSetStrokeStyle: "SetStrokeStyle",
	CmdSetLineWidth:   "SetLineWidth",
	CmdSetLineCap:     "SetLineCap",
	CmdSetLineJoin:    "SetLineJoin",
	CmdSetMiterLimit:  "SetMiterLimit",
	CmdSetDash:        "SetDash",
	CmdSetFillRule:    "SetFillRule",
}

// String returns the command name, or "Unknown".
func (c CommandType) String() string {
	if name, ok := commandTypeNames[c]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether c is part of the command vocabulary.
func (c CommandType) Valid() bool {
	_, ok := commandTypeNames[c]
	return ok
}

// Command is one captured drawing operation.
//
// The set of implementations is closed. The codec (codec_command.go) and the
// replay dispatcher (playback.go) both switch over it exhaustively, so a new
// command has to be added to all three files together.
type Command interface {
	Type() CommandType
}

// PathRef references a path in a ResourcePool.
type PathRef uint32

// BrushRef references a brush in a ResourcePool.
type BrushRef uint32

// ImageRef references an image in a ResourcePool.
type ImageRef uint32

// RecordingRef references a nested Recording in a ResourcePool.
type RecordingRef uint32

// InvalidRef marks a reference that points nowhere.
const InvalidRef = ^uint32(0)

func (r PathRef) IsValid() bool      { return uint32(r) != InvalidRef }
func (r BrushRef) IsValid() bool     { return uint32(r) != InvalidRef }
func (r ImageRef) IsValid() bool     { return uint32(r) != InvalidRef }
func (r RecordingRef) IsValid() bool { return uint32(r) != InvalidRef }

// --------------------------------------------------------------------------
// State Commands
// --------------------------------------------------------------------------

// SaveCommand pushes the graphics state.
type SaveCommand struct{}

func (SaveCommand) Type() CommandType { return CmdSave }

// RestoreCommand pops the graphics state.
type RestoreCommand struct{}

func (RestoreCommand) Type() CommandType { return CmdRestore }

// SetTransformCommand records the transform that was current on the canvas.
// Geometry in later commands is already expressed in picture space.
type SetTransformCommand struct {
	Matrix gg.Matrix
}

func (SetTransformCommand) Type() CommandType { return CmdSetTransform }

// SetClipCommand intersects the clip with a path.
type SetClipCommand struct {
	Path PathRef
	Rule FillRule
}

func (SetClipCommand) Type() CommandType { return CmdSetClip }

// ClearClipCommand resets the clip to the full surface.
type ClearClipCommand struct{}

func (ClearClipCommand) Type() CommandType { return CmdClearClip }

// --------------------------------------------------------------------------
// Drawing Commands
// --------------------------------------------------------------------------

// FillPathCommand fills a path with a brush.
type FillPathCommand struct {
	Path  PathRef
	Brush BrushRef
	Rule  FillRule
}

func (FillPathCommand) Type() CommandType { return CmdFillPath }

// StrokePathCommand strokes a path with a brush and stroke style.
type StrokePathCommand struct {
	Path   PathRef
	Brush  BrushRef
	Stroke Stroke
}

func (StrokePathCommand) Type() CommandType { return CmdStrokePath }

// FillRectCommand fills an axis-aligned rectangle.
type FillRectCommand struct {
	Rect  Rect
	Brush BrushRef
}

func (FillRectCommand) Type() CommandType { return CmdFillRect }

// StrokeRectCommand strokes an axis-aligned rectangle.
type StrokeRectCommand struct {
	Rect   Rect
	Brush  BrushRef
	Stroke Stroke
}

func (StrokeRectCommand) Type() CommandType { return CmdStrokeRect }

// DrawImageCommand draws the SrcRect region of an image into DstRect,
// mapped into picture space by Matrix. SrcRect is relative to the top-left
// of the image bounds; a zero SrcRect means the whole image.
//
// A transform that only scales by positive factors and translates is
// folded into DstRect and Matrix is the identity. Rotations, skews and
// flips leave DstRect in local space and are carried by Matrix.
type DrawImageCommand struct {
	Image   ImageRef
	SrcRect Rect
	DstRect Rect
	Matrix  gg.Matrix
	Options ImageOptions
}

func (DrawImageCommand) Type() CommandType { return CmdDrawImage }

// DrawTextCommand draws a string with its baseline origin at (X, Y).
type DrawTextCommand struct {
	Text  string
	X, Y  float64
	Font  Font
	Brush BrushRef
}

func (DrawTextCommand) Type() CommandType { return CmdDrawText }

// DrawPictureCommand replays a nested recording under Matrix.
type DrawPictureCommand struct {
	Picture RecordingRef
	Matrix  gg.Matrix
}

func (DrawPictureCommand) Type() CommandType { return CmdDrawPicture }

// --------------------------------------------------------------------------
// Style Commands
// --------------------------------------------------------------------------

type SetFillStyleCommand struct {
	Brush BrushRef
}

func (SetFillStyleCommand) Type() CommandType { return CmdSetFillStyle }

type SetStrokeStyleCommand struct {
	Brush BrushRef
}

func (SetStrokeStyleCommand) Type() CommandType { return CmdSetStrokeStyle }

type SetLineWidthCommand struct {
	Width float64
}

func (SetLineWidthCommand) Type() CommandType { return CmdSetLineWidth }

type SetLineCapCommand struct {
	Cap LineCap
}

func (SetLineCapCommand) Type() CommandType { return CmdSetLineCap }

type SetLineJoinCommand struct {
	Join LineJoin
}

func (SetLineJoinCommand) Type() CommandType { return CmdSetLineJoin }

type SetMiterLimitCommand struct {
	Limit float64
}

func (SetMiterLimitCommand) Type() CommandType { return CmdSetMiterLimit }

// SetDashCommand sets the dash pattern. A nil Pattern means solid lines.
type SetDashCommand struct {
	Pattern []float64
	Offset  float64
}

func (SetDashCommand) Type() CommandType { return CmdSetDash }

type SetFillRuleCommand struct {
	Rule FillRule
}

func (SetFillRuleCommand) Type() CommandType { return CmdSetFillRule }

// --------------------------------------------------------------------------
// Operand Types
// --------------------------------------------------------------------------

// FillRule selects how path interiors are computed.
type FillRule uint8

const (
	FillRuleNonZero FillRule = iota
	FillRuleEvenOdd
)

// LineCap is the shape of open line ends.
type LineCap uint8

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

// LineJoin is the shape of corners between stroked segments.
type LineJoin uint8

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

// Stroke is the complete stroke style captured with each stroke command.
type Stroke struct {
	Width       float64
	Cap         LineCap
	Join        LineJoin
	MiterLimit  float64
	DashPattern []float64
	DashOffset  float64
}

// DefaultStroke returns a 1px butt/miter stroke with miter limit 4.
func DefaultStroke() Stroke {
	return Stroke{
		Width:      1,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 4,
	}
}

// Clone returns a copy that does not share the dash slice.
func (s Stroke) Clone() Stroke {
	out := s
	if s.DashPattern != nil {
		out.DashPattern = append([]float64(nil), s.DashPattern...)
	}
	return out
}

// Font names a font by family and size. Resolving it to a face is the
// target's job, so recordings stay independent of loaded font data.
type Font struct {
	Family string
	Size   float64
}

// InterpolationMode selects image sampling.
type InterpolationMode uint8

const (
	InterpolationNearest InterpolationMode = iota
	InterpolationBilinear
)

// ImageOptions controls how an image is sampled and blended.
type ImageOptions struct {
	Interpolation InterpolationMode
	Alpha         float64
}

// DefaultImageOptions returns bilinear sampling at full opacity.
func DefaultImageOptions() ImageOptions {
	return ImageOptions{Interpolation: InterpolationBilinear, Alpha: 1}
}
