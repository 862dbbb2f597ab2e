package web

import (
	"testing"
	"time"

	"github.com/daily-aivey/soundchain-landing-page-new/internal/reveal"
)

func testElements(t *testing.T) []reveal.Element {
	t.Helper()
	elements, err := PageElements()
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	return elements
}

func TestRegistryCreateAndGet(t *testing.T) {
	r := newSessionRegistry(testElements(t), time.Minute)
	t.Cleanup(r.disposeAll)

	s, err := r.create(1280, 12.5)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if s.class != reveal.ClassDesktop {
		t.Errorf("class = %s, want desktop", s.class)
	}
	got, err := r.get(s.id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != s {
		t.Error("get returned a different session")
	}
	if _, err := r.get("missing"); err == nil {
		t.Error("get of unknown id did not fail")
	}
}

func TestRegistryRejectsNonPositiveViewport(t *testing.T) {
	r := newSessionRegistry(testElements(t), time.Minute)
	t.Cleanup(r.disposeAll)

	for _, width := range []int{0, -400} {
		if _, err := r.create(width, 0); err == nil {
			t.Errorf("create(%d) did not fail", width)
		}
	}
}

func TestRegistryDispose(t *testing.T) {
	r := newSessionRegistry(testElements(t), time.Minute)
	t.Cleanup(r.disposeAll)

	s, err := r.create(390, 0)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	ch, _ := s.subscribe()
	if !r.dispose(s.id) {
		t.Fatal("dispose reported missing session")
	}
	if r.dispose(s.id) {
		t.Error("second dispose reported success")
	}
	select {
	case _, open := <-ch:
		if open {
			t.Error("subscriber channel delivered instead of closing")
		}
	case <-time.After(time.Second):
		t.Error("subscriber channel not closed on dispose")
	}
	if _, err := s.engine.Snapshot(); err != reveal.ErrEngineDisposed {
		t.Errorf("engine snapshot after dispose = %v, want ErrEngineDisposed", err)
	}
}

func TestRegistrySubscribeAfterDispose(t *testing.T) {
	r := newSessionRegistry(testElements(t), time.Minute)

	s, err := r.create(390, 0)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	r.dispose(s.id)

	ch, unsubscribe := s.subscribe()
	defer unsubscribe()
	if _, open := <-ch; open {
		t.Error("subscription on disposed session not closed immediately")
	}
}

func TestRegistrySweepRemovesIdleSessions(t *testing.T) {
	r := newSessionRegistry(testElements(t), time.Minute)
	t.Cleanup(r.disposeAll)

	stale, err := r.create(1280, 0)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	fresh, err := r.create(1280, 0)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	stale.mu.Lock()
	stale.lastActive = time.Now().Add(-time.Hour)
	stale.mu.Unlock()

	if n := r.sweep(30 * time.Minute); n != 1 {
		t.Fatalf("sweep removed %d sessions, want 1", n)
	}
	if _, err := r.get(stale.id); err == nil {
		t.Error("stale session still registered")
	}
	if _, err := r.get(fresh.id); err != nil {
		t.Errorf("fresh session swept: %v", err)
	}
}

func TestRegistrySweepSparesSessionsWithOpenStreams(t *testing.T) {
	r := newSessionRegistry(testElements(t), time.Minute)
	t.Cleanup(r.disposeAll)

	s, err := r.create(1280, 0)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	s.mu.Lock()
	s.lastActive = time.Now().Add(-time.Hour)
	s.mu.Unlock()

	// An attached stream keeps an otherwise idle session alive.
	_, unsubscribe := s.subscribe()
	if n := r.sweep(30 * time.Minute); n != 0 {
		t.Fatalf("sweep removed %d sessions with an open stream, want 0", n)
	}
	if _, err := r.get(s.id); err != nil {
		t.Fatalf("session swept while streaming: %v", err)
	}

	unsubscribe()
	if n := r.sweep(30 * time.Minute); n != 1 {
		t.Fatalf("sweep removed %d sessions after stream closed, want 1", n)
	}
}

func TestBroadcastDropsWhenSubscriberLags(t *testing.T) {
	r := newSessionRegistry(testElements(t), time.Minute)
	t.Cleanup(r.disposeAll)

	s, err := r.create(1280, 0)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	ch, unsubscribe := s.subscribe()
	defer unsubscribe()

	// Overfill the subscriber buffer; broadcast must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < streamEventBuffer*2; i++ {
			s.broadcast(streamEvent{Kind: "progress", Data: progressPayload{Displayed: float64(i)}})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a full subscriber channel")
	}
	if got := len(ch); got != streamEventBuffer {
		t.Errorf("buffered events = %d, want %d", got, streamEventBuffer)
	}
}
