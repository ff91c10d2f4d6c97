package capture

import (
	"github.com/element-digitizer/element-digitizer/internal/model"
	"github.com/element-digitizer/element-digitizer/internal/overlay"
)

// EventSource delivers pointer events for one capture cycle. Next blocks
// until an event is available and reports ok=false when the source is
// exhausted, which the session treats as cancellation.
type EventSource interface {
	Next() (ev overlay.Event, ok bool)
}

// sliceSource replays a fixed event sequence.
type sliceSource struct {
	events []overlay.Event
	pos    int
}

func (s *sliceSource) Next() (overlay.Event, bool) {
	if s.pos >= len(s.events) {
		return overlay.Event{}, false
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, true
}

// Events returns a source that replays the given sequence.
func Events(evs ...overlay.Event) EventSource {
	return &sliceSource{events: evs}
}

// BBoxSource synthesizes the drag for a known rectangle: press at the
// top-left corner, release at the bottom-right. Non-interactive callers
// (CLI flags, MCP tool arguments) use this to drive the same session path
// as a live pointer.
func BBoxSource(r model.Rect) EventSource {
	return Events(
		overlay.Event{Kind: overlay.DragStart, Pos: model.Point{X: r.Left, Y: r.Top}},
		overlay.Event{Kind: overlay.DragUpdate, Pos: model.Point{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}},
		overlay.Event{Kind: overlay.DragEnd, Pos: model.Point{X: r.Left + r.Width, Y: r.Top + r.Height}},
	)
}

// ChannelSource adapts a channel of pointer events, for GUI front-ends that
// forward live input. Closing the channel cancels the cycle.
type ChannelSource <-chan overlay.Event

func (c ChannelSource) Next() (overlay.Event, bool) {
	ev, ok := <-c
	return ev, ok
}
