package picture

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

// Path element tags.
const (
	elemMoveTo uint8 = 1 + iota
	elemLineTo
	elemQuadTo
	elemCubicTo
	elemClose
)

// Brush and image record kinds. Zero marks a nil entry.
const (
	kindNil uint8 = iota
	kindSolid
	kindLinear
	kindRadial
	kindSweep
)

const kindNRGBA uint8 = 1

// --------------------------------------------------------------------------
// Encoding
// --------------------------------------------------------------------------

// recording writes the resource table and the command records of rec.
// Nested recordings also carry their bounds and command count, which the
// stream header holds for the top level.
func (e *encoder) recording(rec *Recording, depth int, nested bool) error {
	if depth >= DefaultMaxDepth {
		return fmt.Errorf("%w: pictures nested deeper than %d", ErrMalformed, DefaultMaxDepth)
	}
	if !fitsUint32(rec.width) || !fitsUint32(rec.height) || !fitsUint32(len(rec.commands)) {
		return fmt.Errorf("%w: %dx%d picture with %d commands", ErrTooLarge,
			rec.width, rec.height, len(rec.commands))
	}
	if nested {
		e.int(rec.width)
		e.int(rec.height)
		e.int(len(rec.commands))
	}
	res := rec.resources
	if res == nil {
		res = NewResourcePool()
	}
	if err := e.resources(res, depth); err != nil {
		return err
	}
	for i, cmd := range rec.commands {
		if err := e.command(cmd, res); err != nil {
			return fmt.Errorf("command %d: %w", i, err)
		}
	}
	return nil
}

// fitsUint32 reports whether n survives the 32-bit fields of the header.
func fitsUint32(n int) bool {
	return n >= 0 && uint64(n) <= math.MaxUint32
}

func (e *encoder) resources(res *ResourcePool, depth int) error {
	e.int(len(res.paths))
	for _, p := range res.paths {
		e.path(p)
	}
	e.int(len(res.brushes))
	for _, b := range res.brushes {
		if err := e.brush(b); err != nil {
			return err
		}
	}
	e.int(len(res.images))
	for _, img := range res.images {
		e.image(img)
	}
	e.int(len(res.recordings))
	for _, rec := range res.recordings {
		if rec == nil {
			return fmt.Errorf("%w: nil nested recording", ErrMalformed)
		}
		if err := e.recording(rec, depth+1, true); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) path(p *gg.Path) {
	if p == nil {
		e.byte(kindNil)
		return
	}
	e.byte(1)
	elems := p.Elements()
	e.int(len(elems))
	for _, el := range elems {
		switch v := el.(type) {
		case gg.MoveTo:
			e.byte(elemMoveTo)
			e.float(v.Point.X)
			e.float(v.Point.Y)
		case gg.LineTo:
			e.byte(elemLineTo)
			e.float(v.Point.X)
			e.float(v.Point.Y)
		case gg.QuadTo:
			e.byte(elemQuadTo)
			e.float(v.Control.X)
			e.float(v.Control.Y)
			e.float(v.Point.X)
			e.float(v.Point.Y)
		case gg.CubicTo:
			e.byte(elemCubicTo)
			e.float(v.Control1.X)
			e.float(v.Control1.Y)
			e.float(v.Control2.X)
			e.float(v.Control2.Y)
			e.float(v.Point.X)
			e.float(v.Point.Y)
		case gg.Close:
			e.byte(elemClose)
		}
	}
}

func (e *encoder) color(c gg.RGBA) {
	e.float(c.R)
	e.float(c.G)
	e.float(c.B)
	e.float(c.A)
}

func (e *encoder) stops(stops []GradientStop, extend ExtendMode) {
	e.int(len(stops))
	for _, s := range stops {
		e.float(s.Offset)
		e.color(s.Color)
	}
	e.byte(uint8(extend))
}

func (e *encoder) brush(b Brush) error {
	switch br := b.(type) {
	case nil:
		e.byte(kindNil)
	case SolidBrush:
		e.byte(kindSolid)
		e.color(br.Color)
	case *LinearGradientBrush:
		e.byte(kindLinear)
		e.float(br.Start.X)
		e.float(br.Start.Y)
		e.float(br.End.X)
		e.float(br.End.Y)
		e.stops(br.Stops, br.Extend)
	case *RadialGradientBrush:
		e.byte(kindRadial)
		e.float(br.Center.X)
		e.float(br.Center.Y)
		e.float(br.Focus.X)
		e.float(br.Focus.Y)
		e.float(br.StartRadius)
		e.float(br.EndRadius)
		e.stops(br.Stops, br.Extend)
	case *SweepGradientBrush:
		e.byte(kindSweep)
		e.float(br.Center.X)
		e.float(br.Center.Y)
		e.float(br.StartAngle)
		e.float(br.EndAngle)
		e.stops(br.Stops, br.Extend)
	default:
		return fmt.Errorf("%w: unsupported brush %T", ErrMalformed, b)
	}
	return nil
}

// image stores img as non-premultiplied RGBA rows with a zero origin.
func (e *encoder) image(img image.Image) {
	if img == nil {
		e.byte(kindNil)
		return
	}
	e.byte(kindNRGBA)
	b := img.Bounds()
	e.int(b.Dx())
	e.int(b.Dy())
	e.buf = append(e.buf, toNRGBA(img).Pix...)
}

// toNRGBA returns img as a tightly packed NRGBA image with a zero origin.
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == 4*b.Dx() {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// --------------------------------------------------------------------------
// Decoding
// --------------------------------------------------------------------------

func (d *decoder) recording(width, height, count, depth int) *Recording {
	if depth >= d.maxDepth {
		d.failf("pictures nested deeper than %d", d.maxDepth)
		return nil
	}
	res := d.resources(depth)
	if d.err != nil {
		return nil
	}
	if count > len(d.buf)-d.off {
		d.fail("commands", ErrTruncated)
		return nil
	}
	cmds := make([]Command, 0, count)
	for range count {
		cmd := d.command(res)
		if d.err != nil {
			return nil
		}
		cmds = append(cmds, cmd)
	}
	return NewRecording(width, height, cmds, res)
}

func (d *decoder) resources(depth int) *ResourcePool {
	res := &ResourcePool{}

	d.op = "path"
	if n := d.count(1); n > 0 {
		res.paths = make([]*gg.Path, n)
		for i := range res.paths {
			res.paths[i] = d.path()
		}
	}

	d.op = "brush"
	if n := d.count(1); n > 0 {
		res.brushes = make([]Brush, n)
		for i := range res.brushes {
			res.brushes[i] = d.brush()
		}
	}

	d.op = "image"
	if n := d.count(1); n > 0 {
		res.images = make([]image.Image, n)
		for i := range res.images {
			res.images[i] = d.image()
		}
	}

	d.op = "recording"
	if n := d.count(3); n > 0 {
		res.recordings = make([]*Recording, n)
		for i := range res.recordings {
			d.op = "recording"
			w, h := d.dimension(), d.dimension()
			count := d.count(1)
			res.recordings[i] = d.recording(w, h, count, depth+1)
		}
	}
	return res
}

// dimension reads a width or height, which the header stores as uint32.
func (d *decoder) dimension() int {
	v := d.uvarint()
	if v > math.MaxUint32 {
		d.failf("dimension %d out of range", v)
		return 0
	}
	return int(v)
}

func (d *decoder) path() *gg.Path {
	if d.enum("path kind", 1) == kindNil {
		return nil
	}
	n := d.count(1)
	p := gg.NewPath()
	for range n {
		switch tag := d.byte(); tag {
		case elemMoveTo:
			p.MoveTo(d.float(), d.float())
		case elemLineTo:
			p.LineTo(d.float(), d.float())
		case elemQuadTo:
			p.QuadraticTo(d.float(), d.float(), d.float(), d.float())
		case elemCubicTo:
			p.CubicTo(d.float(), d.float(), d.float(), d.float(), d.float(), d.float())
		case elemClose:
			p.Close()
		default:
			d.failf("path element %d", tag)
		}
		if d.err != nil {
			return nil
		}
	}
	return p
}

func (d *decoder) color() gg.RGBA {
	return gg.RGBA{R: d.float(), G: d.float(), B: d.float(), A: d.float()}
}

func (d *decoder) point() gg.Point {
	return gg.Pt(d.float(), d.float())
}

func (d *decoder) stops() ([]GradientStop, ExtendMode) {
	var stops []GradientStop
	if n := d.count(40); n > 0 {
		stops = make([]GradientStop, n)
		for i := range stops {
			stops[i] = GradientStop{Offset: d.float(), Color: d.color()}
		}
	}
	return stops, ExtendMode(d.enum("extend mode", uint8(ExtendReflect)))
}

func (d *decoder) brush() Brush {
	switch kind := d.byte(); kind {
	case kindNil:
		return nil
	case kindSolid:
		return SolidBrush{Color: d.color()}
	case kindLinear:
		g := &LinearGradientBrush{Start: d.point(), End: d.point()}
		g.Stops, g.Extend = d.stops()
		return g
	case kindRadial:
		g := &RadialGradientBrush{Center: d.point(), Focus: d.point(), StartRadius: d.float(), EndRadius: d.float()}
		g.Stops, g.Extend = d.stops()
		return g
	case kindSweep:
		g := &SweepGradientBrush{Center: d.point(), StartAngle: d.float(), EndAngle: d.float()}
		g.Stops, g.Extend = d.stops()
		return g
	default:
		d.failf("brush kind %d", kind)
		return nil
	}
}

func (d *decoder) image() image.Image {
	if d.enum("image kind", kindNRGBA) == kindNil {
		return nil
	}
	w, h := d.dimension(), d.dimension()
	if d.err != nil {
		return nil
	}
	remaining := uint64(len(d.buf) - d.off)
	if w != 0 && uint64(h) > remaining/4/uint64(w) {
		d.fail(d.op, ErrTruncated)
		return nil
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, d.take(len(img.Pix)))
	if d.err != nil {
		return nil
	}
	return img
}
