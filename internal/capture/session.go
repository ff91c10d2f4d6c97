// Package capture owns the interactive capture lifecycle: an explicit state
// machine from trigger to finalized crop or cancellation. The session is the
// single source of truth for whether a capture is in flight.
package capture

import (
	"context"
	"errors"
	"image"
	"image/draw"
	"sync"
	"time"

	"github.com/element-digitizer/element-digitizer/internal/model"
	"github.com/element-digitizer/element-digitizer/internal/overlay"
	"github.com/element-digitizer/element-digitizer/internal/platform"
)

// State is the capture session lifecycle state.
type State int

const (
	StateIdle State = iota
	StateArming
	StateSelecting
	StateFinalizing
	StateCompleted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArming:
		return "arming"
	case StateSelecting:
		return "selecting"
	case StateFinalizing:
		return "finalizing"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// MinSelectionSize is the smallest accepted selection edge in pixels.
// Smaller drags are treated as accidental and cancel the cycle.
const MinSelectionSize = 10

// ErrBusy reports a trigger received while a capture is already in flight.
// Callers drop it silently; at most one capture runs at a time.
var ErrBusy = errors.New("capture already in progress")

// ErrCancelled reports that the operator cancelled the selection or made a
// degenerate drag. No result is produced and no side effects remain.
var ErrCancelled = errors.New("capture cancelled")

// Session drives one capture cycle at a time over a screen grabber.
type Session struct {
	grabber platform.Grabber
	now     func() time.Time

	// OnTransition, if set, observes every state change. Used for logging
	// and tests; must not block.
	OnTransition func(State)

	mu    sync.Mutex
	state State
}

// NewSession creates an idle capture session.
func NewSession(g platform.Grabber) *Session {
	return &Session{grabber: g, now: time.Now}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	if s.OnTransition != nil {
		s.OnTransition(st)
	}
}

// TryRun executes one full capture cycle fed by src. It returns ErrBusy
// immediately when a cycle is already in flight, ErrCancelled when the
// operator cancels or the selection is degenerate, a *platform.CaptureError
// when the backdrop cannot be acquired, and the capture result otherwise.
// Whatever the outcome, the session is idle again when TryRun returns.
func (s *Session) TryRun(src EventSource) (*Result, error) {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.state = StateArming
	s.mu.Unlock()
	if s.OnTransition != nil {
		s.OnTransition(StateArming)
	}
	defer s.setState(StateIdle)

	// Arming: acquire the full-screen backdrop.
	backdrop, err := s.grabber.CaptureScreen()
	if err != nil {
		// Fail safe to idle; the deferred reset drops all in-flight state.
		return nil, err
	}

	// Selecting: feed pointer events into a fresh overlay until the drag
	// resolves or the source cancels.
	s.setState(StateSelecting)
	ov := overlay.New(backdrop)
	for ov.Phase() == overlay.PhaseWaiting || ov.Phase() == overlay.PhaseDragging {
		ev, ok := src.Next()
		if !ok {
			ov.Handle(overlay.Event{Kind: overlay.Cancel})
			break
		}
		ov.Handle(ev)
	}

	region, ok := ov.Selection()
	if !ok || region.Width < MinSelectionSize || region.Height < MinSelectionSize {
		s.setState(StateCancelled)
		return nil, ErrCancelled
	}

	// Finalizing: crop the backdrop to the selection. Not interruptible.
	s.setState(StateFinalizing)
	crop := cropImage(backdrop, region)

	res := &Result{
		Image:      crop,
		Region:     region,
		Backdrop:   backdrop,
		CapturedAt: s.now(),
	}
	s.setState(StateCompleted)
	return res, nil
}

// Outcome is the terminal report of one trigger cycle.
type Outcome struct {
	Result *Result
	Err    error
}

// Listen consumes trigger events until ctx is done, running one capture
// cycle per trigger. Triggers arriving while a cycle is in flight are
// dropped without an outcome; triggers are never queued.
func (s *Session) Listen(ctx context.Context, triggers <-chan EventSource) <-chan Outcome {
	outcomes := make(chan Outcome)
	go func() {
		defer close(outcomes)
		var wg sync.WaitGroup
		for {
			select {
			case <-ctx.Done():
				wg.Wait()
				return
			case src, ok := <-triggers:
				if !ok {
					wg.Wait()
					return
				}
				wg.Add(1)
				go func() {
					defer wg.Done()
					res, err := s.TryRun(src)
					if errors.Is(err, ErrBusy) {
						return
					}
					select {
					case outcomes <- Outcome{Result: res, Err: err}:
					case <-ctx.Done():
					}
				}()
			}
		}
	}()
	return outcomes
}

// cropImage copies the selected region out of the backdrop, clamped to the
// backdrop bounds.
func cropImage(src image.Image, r model.Rect) *image.RGBA {
	sel := image.Rect(r.Left, r.Top, r.Left+r.Width, r.Top+r.Height).Intersect(src.Bounds())
	dst := image.NewRGBA(image.Rect(0, 0, sel.Dx(), sel.Dy()))
	draw.Draw(dst, dst.Bounds(), src, sel.Min, draw.Src)
	return dst
}
