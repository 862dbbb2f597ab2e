// Package progress drives the eased fill animation of the signup progress
// indicator.
//
// The animator owns the displayed percentage for one page session. A run
// starts only once the progress section has revealed, a positive target is
// known, and no run has already played for that target; a genuinely new
// target re-arms the guard and supersedes any in-flight run.
package progress

import (
	"math"
	"sync"
	"time"
)

const (
	// growDuration is used when the target is above the displayed value:
	// small increments should feel snappy.
	growDuration = 1500 * time.Millisecond
	// jumpDuration is used otherwise: the initial fill (and any reset)
	// plays as a deliberate reveal.
	jumpDuration = 3500 * time.Millisecond

	// emitEvery batches display updates: intermediate frames reach the
	// listener every sixth tick. The final frame is always emitted and
	// always lands exactly on the target.
	emitEvery = 6
)

// Frame is one published display update.
type Frame struct {
	// Displayed is the percentage the presentation should render, 0-100.
	Displayed float64
	// Settled is true on the final frame of a run.
	Settled bool
}

// FrameScheduler schedules a callback for the next display frame. Cancel
// prevents a pending callback from running; cancelling an already-delivered
// callback is a no-op.
type FrameScheduler interface {
	Schedule(fn func(now time.Time)) (cancel func())
}

// Animator animates the displayed percentage toward externally supplied
// targets.
type Animator struct {
	mu sync.Mutex

	scheduler FrameScheduler
	onFrame   func(Frame)
	now       func() time.Time

	displayed  float64
	target     float64
	visible    bool
	hasStarted bool

	// in-flight run
	running   bool
	from, to  float64
	startedAt time.Time
	duration  time.Duration
	ticks     int
	cancel    func()
}

// NewAnimator creates an animator publishing frames through onFrame. Frames
// are delivered from scheduler callbacks; onFrame must not call back into
// the animator.
func NewAnimator(scheduler FrameScheduler, onFrame func(Frame)) *Animator {
	return &Animator{
		scheduler: scheduler,
		onFrame:   onFrame,
		now:       time.Now,
	}
}

// SetVisible records that the progress section has revealed and starts a
// run when the other conditions already hold.
func (a *Animator) SetVisible() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.visible = true
	a.maybeStartLocked()
}

// UpdateTarget supplies the authoritative target percentage. A value equal
// to the current target is a redundant re-fetch and changes nothing; a new
// value re-arms the one-shot guard so a fresh run can play.
func (a *Animator) UpdateTarget(pct float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	pct = clampPercentage(pct)
	if pct == a.target {
		return
	}
	a.target = pct
	a.hasStarted = false
	a.maybeStartLocked()
}

// Snapshot returns the current display state.
func (a *Animator) Snapshot() Frame {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Frame{Displayed: a.displayed, Settled: !a.running}
}

// Stop cancels any pending frame callback. The animator keeps its displayed
// value; it is safe to call Stop repeatedly.
func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
}

func (a *Animator) stopLocked() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.running = false
}

// maybeStartLocked starts a run when the section is visible, the target is
// positive, and no run has played for the current target yet. A new run
// supersedes any in-flight one: pending callbacks are cancelled before the
// new start time and value are computed.
func (a *Animator) maybeStartLocked() {
	if !a.visible || a.target <= 0 || a.hasStarted {
		return
	}
	a.stopLocked()

	a.hasStarted = true
	a.running = true
	a.from = a.displayed
	a.to = a.target
	a.duration = runDuration(a.from, a.to)
	a.startedAt = a.now()
	a.ticks = 0
	a.cancel = a.scheduler.Schedule(a.tick)
}

func (a *Animator) tick(now time.Time) {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return
	}

	t := clampUnit(now.Sub(a.startedAt).Seconds() / a.duration.Seconds())
	a.ticks++

	var frame Frame
	emit := false
	if t >= 1 {
		// The final frame lands exactly on the target.
		a.displayed = a.to
		a.running = false
		a.cancel = nil
		frame = Frame{Displayed: a.displayed, Settled: true}
		emit = true
	} else {
		a.displayed = a.from + (a.to-a.from)*easeOutQuint(t)
		if a.ticks%emitEvery == 0 {
			frame = Frame{Displayed: a.displayed}
			emit = true
		}
		a.cancel = a.scheduler.Schedule(a.tick)
	}
	onFrame := a.onFrame
	a.mu.Unlock()

	if emit && onFrame != nil {
		onFrame(frame)
	}
}

// runDuration selects the animation length: incremental growth is quick,
// anything else plays as the long deliberate fill.
func runDuration(from, to float64) time.Duration {
	if to > from {
		return growDuration
	}
	return jumpDuration
}

// easeOutQuint is the quintic ease-out curve 1-(1-t)^5.
func easeOutQuint(t float64) float64 {
	return 1 - math.Pow(1-t, 5)
}

func clampUnit(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

func clampPercentage(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}
