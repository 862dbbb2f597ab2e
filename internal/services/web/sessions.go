package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	platformerrors "github.com/daily-aivey/soundchain-landing-page-new/internal/platform/errors"
	"github.com/daily-aivey/soundchain-landing-page-new/internal/progress"
	"github.com/daily-aivey/soundchain-landing-page-new/internal/reveal"
)

// streamEventBuffer bounds the per-subscriber channel. A subscriber that
// cannot drain fast enough loses frames rather than stalling the session.
const streamEventBuffer = 32

type streamEvent struct {
	Kind string
	Data any
}

type revealPayload struct {
	Element string `json:"element"`
}

type progressPayload struct {
	Displayed float64 `json:"displayed"`
	Settled   bool    `json:"settled"`
}

// session ties one page view to its reveal engine and progress animator.
// The engine serializes visibility batches on its own goroutine; the
// session only adds subscriber fan-out and idle bookkeeping on top.
type session struct {
	id       string
	class    reveal.DeviceClass
	engine   *reveal.Engine
	animator *progress.Animator

	mu          sync.Mutex
	subscribers map[chan streamEvent]struct{}
	lastActive  time.Time
	disposed    bool
}

func (s *session) touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

func (s *session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *session) hasSubscribers() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers) > 0
}

// subscribe registers a stream listener and returns its channel with an
// unsubscribe func. The channel is closed when the session is disposed.
func (s *session) subscribe() (<-chan streamEvent, func()) {
	ch := make(chan streamEvent, streamEventBuffer)
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()
	return ch, func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
}

func (s *session) broadcast(ev streamEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subscribers {
		select {
		case ch <- ev:
		default:
			// Slow subscriber: drop rather than block the engine.
		}
	}
}

func (s *session) handleReveal(el reveal.Element) {
	s.broadcast(streamEvent{Kind: "reveal", Data: revealPayload{Element: el.ID}})
	if el.Progress {
		// The counter animates only once its section is on screen.
		s.animator.SetVisible()
	}
}

func (s *session) handleFrame(f progress.Frame) {
	s.broadcast(streamEvent{Kind: "progress", Data: progressPayload{
		Displayed: f.Displayed,
		Settled:   f.Settled,
	}})
}

func (s *session) dispose() {
	s.engine.Dispose()
	s.animator.Stop()
	s.mu.Lock()
	s.disposed = true
	for ch := range s.subscribers {
		close(ch)
		delete(s.subscribers, ch)
	}
	s.mu.Unlock()
}

// sessionRegistry owns the live sessions for the server. The zero value is
// not usable; build one with newSessionRegistry.
type sessionRegistry struct {
	elements     []reveal.Element
	failSafe     time.Duration
	timers       reveal.Timers
	newScheduler func() progress.FrameScheduler

	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionRegistry(elements []reveal.Element, failSafe time.Duration) *sessionRegistry {
	return &sessionRegistry{
		elements:     elements,
		failSafe:     failSafe,
		timers:       reveal.SystemTimers(),
		newScheduler: func() progress.FrameScheduler { return progress.NewTimerScheduler() },
		sessions:     make(map[string]*session),
	}
}

// create builds a session for the given viewport width and seeds the
// animator with the current signup percentage.
func (r *sessionRegistry) create(viewportWidth int, targetPercentage float64) (*session, error) {
	if viewportWidth <= 0 {
		return nil, platformerrors.New(platformerrors.CodeSessionInvalidViewport,
			"viewport width must be positive")
	}
	s := &session{
		id:          uuid.NewString(),
		class:       reveal.ClassForWidth(viewportWidth),
		subscribers: make(map[chan streamEvent]struct{}),
		lastActive:  time.Now(),
	}
	engine, err := reveal.NewEngine(reveal.Config{
		Elements: r.elements,
		Class:    s.class,
		FailSafe: r.failSafe,
		OnReveal: s.handleReveal,
		Timers:   r.timers,
	})
	if err != nil {
		return nil, err
	}
	s.engine = engine
	s.animator = progress.NewAnimator(r.newScheduler(), s.handleFrame)
	s.animator.UpdateTarget(targetPercentage)

	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()
	return s, nil
}

func (r *sessionRegistry) get(id string) (*session, error) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return nil, platformerrors.New(platformerrors.CodeSessionNotFound, "session not found")
	}
	return s, nil
}

func (r *sessionRegistry) dispose(id string) bool {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()
	if ok {
		s.dispose()
	}
	return ok
}

func (r *sessionRegistry) disposeAll() {
	r.mu.Lock()
	all := make([]*session, 0, len(r.sessions))
	for id, s := range r.sessions {
		all = append(all, s)
		delete(r.sessions, id)
	}
	r.mu.Unlock()
	for _, s := range all {
		s.dispose()
	}
}

// broadcastTarget pushes a new signup percentage to every live animator.
// Animators ignore targets equal to their current one, so duplicate
// submissions are harmless.
func (r *sessionRegistry) broadcastTarget(percentage float64) {
	r.mu.Lock()
	all := make([]*session, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, s)
	}
	r.mu.Unlock()
	for _, s := range all {
		s.animator.UpdateTarget(percentage)
	}
}

// sweep disposes sessions that have been idle longer than maxIdle and
// reports how many were removed. A session with an open event stream is
// never swept; the stream's lifetime tracks the page's.
func (r *sessionRegistry) sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	var stale []*session
	r.mu.Lock()
	for id, s := range r.sessions {
		if !s.hasSubscribers() && s.idleSince().Before(cutoff) {
			stale = append(stale, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()
	for _, s := range stale {
		s.dispose()
	}
	return len(stale)
}

func (r *sessionRegistry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
