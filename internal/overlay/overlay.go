// Package overlay implements the full-screen selection surface: it tracks a
// single pointer drag over a captured backdrop and renders the live
// selection rectangle. Pointer events arrive from an external source (GUI
// front-end, CLI synthesis, or test script); the overlay owns only the drag
// lifecycle and coordinate normalization.
package overlay

import (
	"image"

	"github.com/element-digitizer/element-digitizer/internal/model"
)

// EventKind identifies a pointer event delivered to the overlay.
type EventKind int

const (
	DragStart EventKind = iota
	DragUpdate
	DragEnd
	Cancel
)

func (k EventKind) String() string {
	switch k {
	case DragStart:
		return "drag-start"
	case DragUpdate:
		return "drag-update"
	case DragEnd:
		return "drag-end"
	case Cancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Event is one pointer event in absolute screen pixels. Pos is ignored for
// Cancel events.
type Event struct {
	Kind EventKind
	Pos  model.Point
}

// Phase is the overlay's drag lifecycle state.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseDragging
	PhaseDone
	PhaseCancelled
)

// Overlay tracks at most one drag per lifetime. Events after DragEnd or
// Cancel are ignored; a new capture cycle creates a new overlay.
type Overlay struct {
	backdrop   image.Image
	phase      Phase
	start, cur model.Point
}

// New creates an overlay over the given full-screen backdrop.
func New(backdrop image.Image) *Overlay {
	return &Overlay{backdrop: backdrop}
}

// Phase returns the current drag lifecycle state.
func (o *Overlay) Phase() Phase {
	return o.phase
}

// Backdrop returns the captured full-screen image behind the overlay.
func (o *Overlay) Backdrop() image.Image {
	return o.backdrop
}

// Handle applies one pointer event to the drag state machine.
func (o *Overlay) Handle(ev Event) {
	if o.phase == PhaseDone || o.phase == PhaseCancelled {
		return
	}
	switch ev.Kind {
	case DragStart:
		if o.phase != PhaseWaiting {
			return
		}
		o.start = ev.Pos
		o.cur = ev.Pos
		o.phase = PhaseDragging
	case DragUpdate:
		if o.phase != PhaseDragging {
			return
		}
		o.cur = ev.Pos
	case DragEnd:
		if o.phase != PhaseDragging {
			return
		}
		o.cur = ev.Pos
		o.phase = PhaseDone
	case Cancel:
		o.phase = PhaseCancelled
	}
}

// Selection returns the normalized drag rectangle. ok is false until a drag
// has finished.
func (o *Overlay) Selection() (r model.Rect, ok bool) {
	if o.phase != PhaseDone {
		return model.Rect{}, false
	}
	return model.RectFromPoints(o.start, o.cur), true
}

// current returns the in-progress rectangle for rendering.
func (o *Overlay) current() (model.Rect, bool) {
	if o.phase != PhaseDragging && o.phase != PhaseDone {
		return model.Rect{}, false
	}
	return model.RectFromPoints(o.start, o.cur), true
}

// Frame renders the overlay: the backdrop under a translucent scrim, plus
// the selection rectangle when a drag is in progress or finished.
func (o *Overlay) Frame() *image.RGBA {
	frame := renderScrim(o.backdrop)
	if r, ok := o.current(); ok && !r.Empty() {
		drawSelection(frame, r)
	}
	return frame
}

// RenderPreview draws a finalized selection rectangle over a backdrop.
// Used to produce a confirmation image after the overlay is torn down.
func RenderPreview(backdrop image.Image, r model.Rect) *image.RGBA {
	frame := renderScrim(backdrop)
	if !r.Empty() {
		drawSelection(frame, r)
	}
	return frame
}
