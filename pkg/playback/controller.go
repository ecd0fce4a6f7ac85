// Package playback drives step traces forward on a timer or one manual
// step at a time, publishing a frame tuple after every applied step.
package playback

import (
	"sync"
	"time"

	"github.com/Sumatoshi-tech/heapwalk/pkg/heap"
)

// State is the controller lifecycle state.
type State string

// Controller states.
const (
	// StateIdle means no trace is loaded or the loaded trace finished.
	StateIdle State = "idle"
	// StatePaused means a trace is loaded and the timer is inactive.
	StatePaused State = "paused"
	// StatePlaying means the periodic timer is advancing the trace.
	StatePlaying State = "playing"
)

// Controller owns one trace, one cursor, and at most one live timer.
// All methods are safe for concurrent use; steps are applied strictly in
// trace order and every publish happens synchronously inside the call or
// tick that applied the step.
type Controller struct {
	mu sync.Mutex

	trace  heap.Trace
	cursor int

	state    State
	interval time.Duration

	// tick timer lifecycle: ticker and stop are non-nil exactly while
	// playing, and generation invalidates the drain goroutine of any
	// timer that has since been cancelled.
	ticker     *time.Ticker
	stop       chan struct{}
	generation int

	frame     Frame
	listeners []Listener

	closed bool
}

// NewController creates an idle controller with the given tick interval,
// clamped to the supported range.
func NewController(interval time.Duration) *Controller {
	return &Controller{
		state:    StateIdle,
		interval: ClampInterval(interval),
		frame:    emptyFrame(),
	}
}

// OnFrame registers a listener for every published frame.
func (c *Controller) OnFrame(fn Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.listeners = append(c.listeners, fn)
}

// Snapshot returns the most recently published frame.
func (c *Controller) Snapshot() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.frame
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Cursor returns the index of the next step to apply.
func (c *Controller) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cursor
}

// Load replaces any previous trace, cancelling its timer. An empty trace
// leaves the published frame untouched and parks the controller idle.
// Otherwise step 0 is applied and published synchronously and the
// controller pauses with the cursor at 1.
func (c *Controller) Load(trace heap.Trace) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.stopTimerLocked()

	if trace.Empty() {
		c.trace = nil
		c.cursor = 0
		c.state = StateIdle

		return
	}

	c.trace = trace
	c.cursor = 0
	c.state = StatePaused
	c.applyLocked()
}

// Play starts the periodic timer. It is a no-op while already playing,
// when nothing is loaded, or when the cursor is at the trace end.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.state == StatePlaying || c.trace == nil || c.cursor >= len(c.trace) {
		return
	}

	c.state = StatePlaying
	c.startTimerLocked()
}

// Pause cancels the timer and preserves the cursor exactly.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.state != StatePlaying {
		return
	}

	c.stopTimerLocked()
	c.state = StatePaused
}

// Step advances by exactly one step. While playing it pauses first so
// the manual step is a single observable increment. Past the trace end
// it degrades to clearing the highlight and going idle.
func (c *Controller) Step() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	if c.state == StatePlaying {
		c.stopTimerLocked()
		c.state = StatePaused
	}

	c.advanceLocked()
}

// SetSpeed changes the tick interval, clamped to the supported range.
// While playing, the timer restarts atomically at the new interval; the
// next tick still applies exactly the step at the unchanged cursor.
func (c *Controller) SetSpeed(interval time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.interval = ClampInterval(interval)

	if c.ticker != nil {
		c.ticker.Reset(c.interval)
	}
}

// SetSpeedLevel changes the tick interval via the 1..10 speed scale.
func (c *Controller) SetSpeedLevel(level int) {
	c.SetSpeed(LevelInterval(level))
}

// Close cancels any live timer and rejects all further operations.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimerLocked()
	c.state = StateIdle
	c.closed = true
}

// startTimerLocked creates the single live ticker and its drain
// goroutine. The caller holds the mutex.
func (c *Controller) startTimerLocked() {
	c.ticker = time.NewTicker(c.interval)
	c.stop = make(chan struct{})
	c.generation++

	go c.drain(c.ticker, c.stop, c.generation)
}

// stopTimerLocked cancels the live ticker, if any. The caller holds the
// mutex. Bumping the generation fences out a tick already in flight.
func (c *Controller) stopTimerLocked() {
	if c.ticker == nil {
		return
	}

	c.ticker.Stop()
	close(c.stop)

	c.ticker = nil
	c.stop = nil
	c.generation++
}

// drain forwards ticker fires into locked advances until the timer is
// cancelled.
func (c *Controller) drain(ticker *time.Ticker, stop chan struct{}, generation int) {
	for {
		select {
		case <-ticker.C:
			c.tick(generation)
		case <-stop:
			return
		}
	}
}

// tick performs one timer-driven advance unless the timer was cancelled
// after this fire left the ticker channel.
func (c *Controller) tick(generation int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || generation != c.generation || c.state != StatePlaying {
		return
	}

	c.advanceLocked()
}

// advanceLocked applies the step at the cursor, or finishes the trace
// when the cursor is already at the end. The caller holds the mutex.
func (c *Controller) advanceLocked() {
	if c.trace == nil {
		return
	}

	if c.cursor >= len(c.trace) {
		c.finishLocked()

		return
	}

	c.applyLocked()
}

// applyLocked applies trace[cursor], advances the cursor, and publishes.
// The caller holds the mutex and has checked bounds.
func (c *Controller) applyLocked() {
	step := c.trace[c.cursor]
	c.cursor++

	c.frame = Frame{
		Heap:       step.Snapshot,
		Highlight:  heap.HighlightFor(step),
		PseudoText: heap.Describe(step),
		Playing:    c.state == StatePlaying,
	}

	c.publishLocked()
}

// finishLocked cancels the timer, clears the highlight, and parks the
// controller idle. Publishing is skipped when there is nothing to clear.
func (c *Controller) finishLocked() {
	alreadyCleared := c.state == StateIdle && c.frame.Highlight.Kind == heap.HighlightNone

	c.stopTimerLocked()
	c.state = StateIdle

	if alreadyCleared {
		return
	}

	c.frame.Highlight = heap.NoHighlight()
	c.frame.PseudoText = ""
	c.frame.Playing = false

	c.publishLocked()
}

func (c *Controller) publishLocked() {
	for _, fn := range c.listeners {
		fn(c.frame)
	}
}
