package picture

// Recording is a frozen command list together with the resources its
// commands reference. It is immutable once built and may be shared between
// pictures, clones and DrawPicture commands of other recordings, and
// replayed from several goroutines at once.
type Recording struct {
	width     int
	height    int
	commands  []Command
	resources *ResourcePool
}

// NewRecording builds a recording from commands and the pool they refer
// to. The recording takes ownership of both; callers must not modify them
// afterwards. A nil pool is replaced by an empty one.
func NewRecording(width, height int, commands []Command, resources *ResourcePool) *Recording {
	if resources == nil {
		resources = NewResourcePool()
	}
	return &Recording{
		width:     max(width, 0),
		height:    max(height, 0),
		commands:  commands,
		resources: resources,
	}
}

// Width returns the width of the recorded area.
func (r *Recording) Width() int { return r.width }

// Height returns the height of the recorded area.
func (r *Recording) Height() int { return r.height }

// Commands returns the recorded commands. The slice must not be modified.
func (r *Recording) Commands() []Command { return r.commands }

// Len returns the number of commands.
func (r *Recording) Len() int { return len(r.commands) }

// Resources returns the resource pool. It must not be modified.
func (r *Recording) Resources() *ResourcePool { return r.resources }
