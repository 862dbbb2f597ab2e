package reveal

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrEngineDisposed is returned for operations on a disposed engine.
var ErrEngineDisposed = errors.New("reveal engine is disposed")

// userScrollEpsilon is the minimum downward offset increase that counts as a
// user-initiated scroll.
const userScrollEpsilon = 2.0

// Timers schedules cancellable deferred callbacks. The default wraps
// time.AfterFunc; tests substitute a manual implementation.
type Timers interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

type systemTimers struct{}

func (systemTimers) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// SystemTimers returns Timers backed by the runtime timer wheel.
func SystemTimers() Timers {
	return systemTimers{}
}

// Config describes one reveal session.
type Config struct {
	// Elements are the revealable sections in document order.
	Elements []Element
	// Class is the device class selected at session start.
	Class DeviceClass
	// FailSafe, when positive, force-reveals an element stuck in Queued
	// after this wait. Zero disables the fail-safe.
	FailSafe time.Duration
	// OnReveal is invoked from the engine goroutine each time an element
	// reaches Revealed.
	OnReveal func(Element)
	// Timers defaults to SystemTimers when nil.
	Timers Timers
}

// Engine runs the reveal orchestration for one page session. All state
// lives on a single goroutine; visibility batches, timer firings and
// disposal arrive as messages, so transitions never race.
type Engine struct {
	mailbox chan engineMsg
	done    chan struct{}

	disposeOnce sync.Once
}

type engineMsg struct {
	batch     *batchMsg
	unlocked  string
	failsafed string
	snapshot  chan map[string]State
	dispose   chan struct{}
}

type batchMsg struct {
	batch EventBatch
	reply chan map[string]State
}

// NewEngine validates the configuration and starts the session goroutine.
func NewEngine(cfg Config) (*Engine, error) {
	if len(cfg.Elements) == 0 {
		return nil, errors.New("at least one element is required")
	}
	seen := make(map[string]bool, len(cfg.Elements))
	for _, el := range cfg.Elements {
		if el.ID == "" {
			return nil, errors.New("element id is required")
		}
		if seen[el.ID] {
			return nil, fmt.Errorf("duplicate element id %q", el.ID)
		}
		seen[el.ID] = true
		if !el.Variant.Valid() {
			return nil, fmt.Errorf("element %q: unknown variant %q", el.ID, el.Variant)
		}
		if el.SequenceGroup < 0 {
			return nil, fmt.Errorf("element %q: negative sequence group", el.ID)
		}
	}
	if cfg.Timers == nil {
		cfg.Timers = SystemTimers()
	}

	e := &Engine{
		mailbox: make(chan engineMsg),
		done:    make(chan struct{}),
	}
	go e.run(cfg)
	return e, nil
}

// Observe delivers one visibility event batch and returns the element
// states after the batch was applied.
func (e *Engine) Observe(batch EventBatch) (map[string]State, error) {
	reply := make(chan map[string]State, 1)
	msg := engineMsg{batch: &batchMsg{batch: batch, reply: reply}}
	select {
	case e.mailbox <- msg:
	case <-e.done:
		return nil, ErrEngineDisposed
	}
	select {
	case snap := <-reply:
		return snap, nil
	case <-e.done:
		return nil, ErrEngineDisposed
	}
}

// Snapshot returns the current element states.
func (e *Engine) Snapshot() (map[string]State, error) {
	reply := make(chan map[string]State, 1)
	select {
	case e.mailbox <- engineMsg{snapshot: reply}:
	case <-e.done:
		return nil, ErrEngineDisposed
	}
	select {
	case snap := <-reply:
		return snap, nil
	case <-e.done:
		return nil, ErrEngineDisposed
	}
}

// Dispose stops the engine and cancels every pending reveal timer. It is
// idempotent and safe to call concurrently.
func (e *Engine) Dispose() {
	e.disposeOnce.Do(func() {
		ack := make(chan struct{})
		e.mailbox <- engineMsg{dispose: ack}
		<-ack
	})
}

// post delivers a timer firing without blocking a disposed engine's timer
// goroutine.
func (e *Engine) post(msg engineMsg) {
	select {
	case e.mailbox <- msg:
	case <-e.done:
	}
}

type engineState struct {
	cfg    Config
	policy Policy
	st     *OrchestratorState

	lastOffset    float64
	haveOffset    bool
	directionDown bool
	userScrolled  bool
	sinceLoad     time.Duration

	unlockCancels   map[string]func()
	failsafeCancels map[string]func()
}

func (e *Engine) run(cfg Config) {
	es := &engineState{
		cfg:             cfg,
		policy:          NewPolicy(cfg.Class),
		st:              NewState(cfg.Elements),
		unlockCancels:   make(map[string]func()),
		failsafeCancels: make(map[string]func()),
	}

	for msg := range e.mailbox {
		switch {
		case msg.batch != nil:
			e.handleBatch(es, msg.batch)
		case msg.unlocked != "":
			e.handleUnlocked(es, msg.unlocked)
		case msg.failsafed != "":
			e.handleFailsafe(es, msg.failsafed)
		case msg.snapshot != nil:
			msg.snapshot <- es.st.Snapshot()
		case msg.dispose != nil:
			for _, cancel := range es.unlockCancels {
				cancel()
			}
			for _, cancel := range es.failsafeCancels {
				cancel()
			}
			close(e.done)
			close(msg.dispose)
			return
		}
	}
}

func (e *Engine) handleBatch(es *engineState, msg *batchMsg) {
	es.track(msg.batch.Scroll)
	scroll := ScrollState{
		Offset:        es.lastOffset,
		SinceLoad:     es.sinceLoad,
		DirectionDown: es.directionDown,
		UserScrolled:  es.userScrolled,
	}
	qualifies := func(el Element, ev VisibilityEvent) bool {
		return es.policy.Qualifies(el.Variant, ev, scroll)
	}

	unlocks := es.st.ApplyBatch(msg.batch.Events, qualifies)
	for _, u := range unlocks {
		e.scheduleUnlock(es, u)
	}
	e.armFailsafes(es)

	msg.reply <- es.st.Snapshot()
}

func (e *Engine) handleUnlocked(es *engineState, id string) {
	delete(es.unlockCancels, id)
	revealed, promoted := es.st.CompleteUnlock(id)
	if !revealed {
		return
	}
	e.notify(es, id)
	for _, u := range promoted {
		e.scheduleUnlock(es, u)
	}
}

func (e *Engine) handleFailsafe(es *engineState, id string) {
	delete(es.failsafeCancels, id)
	forced, promoted := es.st.ForceReveal(id)
	if !forced {
		return
	}
	e.notify(es, id)
	for _, u := range promoted {
		e.scheduleUnlock(es, u)
	}
}

func (e *Engine) scheduleUnlock(es *engineState, u Unlock) {
	if cancel, ok := es.failsafeCancels[u.Element.ID]; ok {
		cancel()
		delete(es.failsafeCancels, u.Element.ID)
	}
	id := u.Element.ID
	es.unlockCancels[id] = es.cfg.Timers.AfterFunc(u.Delay, func() {
		e.post(engineMsg{unlocked: id})
	})
}

// armFailsafes starts the bounded-wait timer for queued elements that do not
// have one yet. No-op when the fail-safe is disabled.
func (e *Engine) armFailsafes(es *engineState) {
	if es.cfg.FailSafe <= 0 {
		return
	}
	for _, el := range es.st.Order() {
		state, _ := es.st.StateOf(el.ID)
		if state != StateQueued {
			continue
		}
		if _, armed := es.failsafeCancels[el.ID]; armed {
			continue
		}
		id := el.ID
		es.failsafeCancels[id] = es.cfg.Timers.AfterFunc(es.cfg.FailSafe, func() {
			e.post(engineMsg{failsafed: id})
		})
	}
}

func (e *Engine) notify(es *engineState, id string) {
	if es.cfg.OnReveal == nil {
		return
	}
	if el, ok := es.st.Lookup(id); ok {
		es.cfg.OnReveal(el)
	}
}

// track folds a scroll report into the derived scroll state. Direction
// flips on any offset change; the user-scrolled latch requires a downward
// move past the epsilon at least once.
func (es *engineState) track(report ScrollReport) {
	if report.SinceLoad > es.sinceLoad {
		es.sinceLoad = report.SinceLoad
	}
	if !es.haveOffset {
		es.haveOffset = true
		es.lastOffset = report.OffsetY
		return
	}
	switch {
	case report.OffsetY > es.lastOffset:
		es.directionDown = true
		if report.OffsetY-es.lastOffset >= userScrollEpsilon {
			es.userScrolled = true
		}
	case report.OffsetY < es.lastOffset:
		es.directionDown = false
	}
	es.lastOffset = report.OffsetY
}
