package picture

import (
	"fmt"
	"io"
)

// State is the lifecycle state of a Picture.
type State uint8

const (
	// StateEmpty is a new Picture with no commands.
	StateEmpty State = iota
	// StateRecording means a RecordingCanvas is attached and capturing calls.
	StateRecording
	// StatePlayable means the command list is frozen and can be drawn or
	// serialized.
	StatePlayable
	// StateClosed means Close was called; the picture keeps only its bounds.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StateRecording:
		return "Recording"
	case StatePlayable:
		return "Playable"
	case StateClosed:
		return "Closed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Picture records drawing calls and replays them later, any number of
// times, onto any Target. A Picture moves from Empty to Recording with
// BeginRecording and from Recording to Playable with EndRecording; a
// Playable picture may be recorded again, which discards its commands.
//
// Lifecycle misuse (drawing a picture that is not playable, beginning a
// recording twice, using a closed picture) is a programming error and
// panics with an error wrapping ErrInvalidState or ErrClosed.
//
// A Picture is not safe for concurrent use. Distinct pictures share nothing
// mutable, and the frozen Recording of a playable picture may be replayed
// from several goroutines at once.
type Picture struct {
	width, height int
	state         State
	rec           *Recording
	canvas        *RecordingCanvas
}

// New returns an empty 0x0 picture.
func New() *Picture {
	return &Picture{}
}

// fromRecording returns a playable picture around a frozen recording.
func fromRecording(rec *Recording) *Picture {
	return &Picture{
		width:  rec.width,
		height: rec.height,
		state:  StatePlayable,
		rec:    rec,
	}
}

// Clone returns a copy of p. A playable picture shares its frozen
// recording with the copy. A picture that is still recording yields a
// playable copy of the commands recorded so far; p keeps recording. The
// caller must not record on p from another goroutine while cloning.
func (p *Picture) Clone() *Picture {
	p.checkOpen("Clone")
	switch p.state {
	case StatePlayable:
		return fromRecording(p.rec)
	case StateRecording:
		return fromRecording(p.canvas.snapshot())
	default:
		return &Picture{width: p.width, height: p.height}
	}
}

// BeginRecording starts a new recording with the given bounds and returns
// the canvas to draw on. Negative sizes are clamped to zero. Any previous
// command list is discarded.
//
// The returned canvas is shared: the picture holds one reference until
// EndRecording or Close, and the caller holds the other and must call
// Release when done with it.
func (p *Picture) BeginRecording(width, height int) *RecordingCanvas {
	p.checkOpen("BeginRecording")
	if p.state == StateRecording {
		invalidState("BeginRecording", p.state)
	}
	p.width = max(width, 0)
	p.height = max(height, 0)
	p.rec = nil
	p.canvas = newRecordingCanvas(p.width, p.height, 2)
	p.state = StateRecording
	Logger().Debug("picture: recording started", "width", p.width, "height", p.height)
	return p.canvas
}

// EndRecording freezes the commands captured by the canvas, detaches the
// canvas and makes the picture playable. An unfinished current path on the
// canvas is dropped.
func (p *Picture) EndRecording() {
	p.checkOpen("EndRecording")
	if p.state != StateRecording {
		invalidState("EndRecording", p.state)
	}
	c := p.canvas
	p.rec = c.detach()
	p.canvas = nil
	p.state = StatePlayable
	c.Release()
	Logger().Debug("picture: recording finished",
		"width", p.width, "height", p.height, "commands", len(p.rec.commands))
}

// Draw replays every command onto t, in order, between t.Save and
// t.Restore. Draw does not modify p and may be called any number of times.
//
// A RecordingTarget, such as a RecordingCanvas, instead receives the
// picture as one DrawRecording call under its current transform.
func (p *Picture) Draw(t Target) {
	p.checkOpen("Draw")
	if p.state != StatePlayable {
		invalidState("Draw", p.state)
	}
	if rt, ok := t.(RecordingTarget); ok {
		rt.DrawRecording(p.rec, rt.GetTransform())
		return
	}
	t.Save()
	p.rec.Playback(t)
	t.Restore()
}

// Serialize encodes the picture into a stream opened from sink and closes
// it. A nil sink or one that cannot be opened is reported as an error
// wrapping ErrStreamUnavailable.
func (p *Picture) Serialize(sink Sink, opts ...EncodeOption) error {
	p.checkOpen("Serialize")
	if p.state != StatePlayable {
		invalidState("Serialize", p.state)
	}
	if sink == nil {
		return fmt.Errorf("picture: serialize: nil sink: %w", ErrStreamUnavailable)
	}
	w, err := sink.OpenWriter()
	if err != nil {
		return fmt.Errorf("picture: serialize: %w: %w", ErrStreamUnavailable, err)
	}
	if _, err := EncodeRecording(w, p.rec, opts...); err != nil {
		_ = w.Close()
		return fmt.Errorf("picture: serialize: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("picture: serialize: %w", err)
	}
	return nil
}

// WriteTo encodes the picture to w with default options.
// It implements io.WriterTo.
func (p *Picture) WriteTo(w io.Writer) (int64, error) {
	p.checkOpen("WriteTo")
	if p.state != StatePlayable {
		invalidState("WriteTo", p.state)
	}
	return EncodeRecording(w, p.rec)
}

// Deserialize decodes a playable picture from a stream opened from src.
// A nil source or one that cannot be opened yields an error wrapping
// ErrStreamUnavailable; bad stream content yields a *DecodeError. No
// picture is returned on error.
func Deserialize(src Source, opts ...DecodeOption) (*Picture, error) {
	if src == nil {
		return nil, fmt.Errorf("picture: deserialize: nil source: %w", ErrStreamUnavailable)
	}
	r, err := src.OpenReader()
	if err != nil {
		return nil, fmt.Errorf("picture: deserialize: %w: %w", ErrStreamUnavailable, err)
	}
	defer r.Close()
	return ReadPicture(r, opts...)
}

// ReadPicture decodes a playable picture from r.
func ReadPicture(r io.Reader, opts ...DecodeOption) (*Picture, error) {
	rec, err := DecodeRecording(r, opts...)
	if err != nil {
		return nil, err
	}
	return fromRecording(rec), nil
}

// Width returns the recorded width. It is valid in any state.
func (p *Picture) Width() int { return p.width }

// Height returns the recorded height. It is valid in any state.
func (p *Picture) Height() int { return p.height }

// State returns the lifecycle state.
func (p *Picture) State() State { return p.state }

// Recording returns the frozen command list, or nil unless the picture is
// playable.
func (p *Picture) Recording() *Recording {
	p.checkOpen("Recording")
	if p.state != StatePlayable {
		return nil
	}
	return p.rec
}

// Close releases the picture. If it is recording, the canvas is detached
// and the picture's reference dropped; a caller still holding the canvas
// keeps a valid but inert canvas. Close is idempotent.
func (p *Picture) Close() {
	if p.state == StateClosed {
		return
	}
	if p.state == StateRecording {
		c := p.canvas
		c.detach()
		p.canvas = nil
		c.Release()
	}
	p.rec = nil
	p.state = StateClosed
}

func (p *Picture) checkOpen(op string) {
	if p.state == StateClosed {
		panic(fmt.Errorf("%w: %s on a closed picture", ErrClosed, op))
	}
}
