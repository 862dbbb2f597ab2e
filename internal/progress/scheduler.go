package progress

import "time"

// frameInterval approximates a 60Hz display frame.
const frameInterval = 16 * time.Millisecond

// TimerScheduler is the production FrameScheduler: each callback runs on a
// runtime timer one frame interval later.
type TimerScheduler struct{}

// NewTimerScheduler returns a scheduler backed by time.AfterFunc.
func NewTimerScheduler() TimerScheduler {
	return TimerScheduler{}
}

// Schedule runs fn on the next frame and returns a cancel function.
func (TimerScheduler) Schedule(fn func(now time.Time)) (cancel func()) {
	t := time.AfterFunc(frameInterval, func() {
		fn(time.Now())
	})
	return func() { t.Stop() }
}
