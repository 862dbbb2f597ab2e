package reveal

import "time"

// VisibilityEvent is one intersection report for a registered element.
// The viewport observer delivers these asynchronously and possibly out of
// document order.
type VisibilityEvent struct {
	// Element is the ID of the element the report concerns.
	Element string
	// Visible reports whether the element intersects the trigger zone.
	Visible bool
	// Ratio is the reported intersection ratio in [0,1].
	Ratio float64
}

// ScrollReport carries the page scroll context accompanying an event batch.
type ScrollReport struct {
	// OffsetY is the vertical scroll offset in pixels at report time.
	OffsetY float64
	// SinceLoad is the time elapsed since the page loaded.
	SinceLoad time.Duration
}

// EventBatch groups the visibility events delivered in one observer
// callback round together with the scroll context they were observed under.
type EventBatch struct {
	Events []VisibilityEvent
	Scroll ScrollReport
}

// Unlock instructs the engine to schedule a reveal for an element after the
// given delay. It is the only side effect the transition function requests.
type Unlock struct {
	Element Element
	Delay   time.Duration
}
