// Package picture records drawing calls for later replay and persistence.
//
// # Overview
//
// A Picture is a deferred drawing command buffer. Drawing calls issued on
// the RecordingCanvas returned by BeginRecording are captured as commands
// instead of being rasterized. EndRecording freezes the command list; the
// picture can then be drawn onto any Target any number of times, or
// serialized to a byte stream and reconstructed later without the objects
// that produced it.
//
// # Quick Start
//
//	pic := picture.New()
//	c := pic.BeginRecording(100, 200)
//	c.SetRGB(1, 0, 0)
//	c.FillRectangle(10, 10, 80, 40)
//	c.DrawString("hello", 10, 100)
//	pic.EndRecording()
//	c.Release()
//
//	var buf bytes.Buffer
//	if err := pic.Serialize(picture.WriterSink(&buf)); err != nil {
//		return err
//	}
//	copy, err := picture.Deserialize(picture.BytesSource(buf.Bytes()))
//
// # State Machine
//
// A Picture starts Empty. BeginRecording moves it to Recording and
// EndRecording to Playable. Recording a Playable picture again discards its
// commands. Draw and Serialize require Playable; calling them in any other
// state panics with an error wrapping ErrInvalidState.
//
// # Canvas Ownership
//
// The canvas returned by BeginRecording has two owners: the picture and the
// caller. Each releases its reference independently (the picture at
// EndRecording or Close, the caller with Release) and the canvas frees its
// buffers only after both have done so. Once detached from the picture a
// canvas ignores drawing calls.
//
// # Targets
//
// Draw replays onto a Target. Targets are registered by name using the
// database/sql driver pattern:
//
//	import _ "github.com/gogpu/gg-picture/targets/raster"
//
//	t, _ := picture.NewTarget("raster", pic.Width(), pic.Height())
//	pic.Draw(t)
//	t.(picture.FileTarget).SaveToFile("out.png")
//
// The "trace" target is always available and records each call as text.
//
// # Stream Format
//
// EncodeRecording and DecodeRecording define the byte format: a 20-byte
// little-endian header (magic "GGPC", version, flags, width, height,
// command count), the body length, the body and a CRC-32 of the
// uncompressed body. The body may be zstd-compressed. Decoding is
// all-or-nothing: any malformed, truncated or corrupted stream yields a
// *DecodeError and no picture.
package picture
