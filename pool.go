package picture

import (
	"image"

	"github.com/gogpu/gg"
)

// ResourcePool stores the operands that commands reference by index.
// Paths and brushes are cloned on insertion so a recording cannot be
// changed through the caller's values; images and nested recordings are
// treated as immutable and stored as-is.
//
// A ResourcePool is not safe for concurrent mutation.
type ResourcePool struct {
	paths      []*gg.Path
	brushes    []Brush
	images     []image.Image
	recordings []*Recording

	// recordingRefs indexes recordings by identity. It is built on first
	// use, so pools filled by the decoder or Clone need no extra work.
	recordingRefs map[*Recording]RecordingRef
}

// NewResourcePool creates an empty pool.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{
		paths:   make([]*gg.Path, 0, 32),
		brushes: make([]Brush, 0, 16),
	}
}

// AddPath stores a clone of path. A nil path is stored as nil.
func (p *ResourcePool) AddPath(path *gg.Path) PathRef {
	if path != nil {
		path = path.Clone()
	}
	p.paths = append(p.paths, path)
	// #nosec G115 -- pool size is bounded by memory, far below uint32 max
	return PathRef(uint32(len(p.paths) - 1))
}

// Path returns the path for ref, or nil if ref is out of range.
func (p *ResourcePool) Path(ref PathRef) *gg.Path {
	if int(ref) >= len(p.paths) {
		return nil
	}
	return p.paths[ref]
}

// AddBrush stores a copy of brush.
func (p *ResourcePool) AddBrush(brush Brush) BrushRef {
	p.brushes = append(p.brushes, cloneBrush(brush))
	// #nosec G115 -- pool size is bounded by memory, far below uint32 max
	return BrushRef(uint32(len(p.brushes) - 1))
}

// Brush returns the brush for ref, or nil if ref is out of range.
func (p *ResourcePool) Brush(ref BrushRef) Brush {
	if int(ref) >= len(p.brushes) {
		return nil
	}
	return p.brushes[ref]
}

// AddImage stores img. Callers must not modify img afterwards.
func (p *ResourcePool) AddImage(img image.Image) ImageRef {
	p.images = append(p.images, img)
	// #nosec G115 -- pool size is bounded by memory, far below uint32 max
	return ImageRef(uint32(len(p.images) - 1))
}

// Image returns the image for ref, or nil if ref is out of range.
func (p *ResourcePool) Image(ref ImageRef) image.Image {
	if int(ref) >= len(p.images) {
		return nil
	}
	return p.images[ref]
}

// AddRecording stores a frozen recording for nested playback. Adding a
// recording the pool already holds returns its existing ref, so drawing
// the same picture many times stores and serializes it once.
func (p *ResourcePool) AddRecording(rec *Recording) RecordingRef {
	if p.recordingRefs == nil {
		p.recordingRefs = make(map[*Recording]RecordingRef, len(p.recordings)+1)
		for i, r := range p.recordings {
			if _, ok := p.recordingRefs[r]; !ok {
				// #nosec G115 -- pool size is bounded by memory, far below uint32 max
				p.recordingRefs[r] = RecordingRef(uint32(i))
			}
		}
	}
	if ref, ok := p.recordingRefs[rec]; ok {
		return ref
	}
	p.recordings = append(p.recordings, rec)
	// #nosec G115 -- pool size is bounded by memory, far below uint32 max
	ref := RecordingRef(uint32(len(p.recordings) - 1))
	p.recordingRefs[rec] = ref
	return ref
}

// Recording returns the nested recording for ref, or nil if out of range.
func (p *ResourcePool) Recording(ref RecordingRef) *Recording {
	if int(ref) >= len(p.recordings) {
		return nil
	}
	return p.recordings[ref]
}

func (p *ResourcePool) PathCount() int      { return len(p.paths) }
func (p *ResourcePool) BrushCount() int     { return len(p.brushes) }
func (p *ResourcePool) ImageCount() int     { return len(p.images) }
func (p *ResourcePool) RecordingCount() int { return len(p.recordings) }

// Clone returns a pool whose slices are independent of p. Paths are deep
// copied; brushes, images and recordings are immutable and shared.
func (p *ResourcePool) Clone() *ResourcePool {
	clone := &ResourcePool{
		paths:      make([]*gg.Path, len(p.paths)),
		brushes:    append([]Brush(nil), p.brushes...),
		images:     append([]image.Image(nil), p.images...),
		recordings: append([]*Recording(nil), p.recordings...),
	}
	for i, path := range p.paths {
		if path != nil {
			clone.paths[i] = path.Clone()
		}
	}
	return clone
}
