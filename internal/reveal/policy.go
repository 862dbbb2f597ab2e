package reveal

import "time"

// DeviceClass partitions viewports into the two observer sensitivity classes.
type DeviceClass string

const (
	// ClassDesktop applies to viewports wider than MobileMaxWidth.
	ClassDesktop DeviceClass = "desktop"
	// ClassMobile applies to viewports at or below MobileMaxWidth.
	ClassMobile DeviceClass = "mobile"
)

// MobileMaxWidth is the widest viewport treated as mobile, in CSS pixels.
const MobileMaxWidth = 768

// ClassForWidth selects the device class for a viewport width.
func ClassForWidth(width int) DeviceClass {
	if width <= MobileMaxWidth {
		return ClassMobile
	}
	return ClassDesktop
}

// ObserverConfig is the visibility observer sensitivity for one element.
type ObserverConfig struct {
	// Threshold is the minimum intersection ratio for a qualifying event.
	Threshold float64
	// BottomMarginPercent shrinks the trigger zone from the bottom of the
	// viewport by this percentage.
	BottomMarginPercent int
}

const (
	headlineLoadSuppression = 1000 * time.Millisecond
	headlineMobileMinOffset = 50.0
)

// ScrollState is the scroll context a qualification decision runs against.
// Offset and SinceLoad come from the page; DirectionDown and UserScrolled
// are derived by the engine from successive offsets.
type ScrollState struct {
	// Offset is the current vertical scroll offset in pixels.
	Offset float64
	// SinceLoad is the time elapsed since the page loaded.
	SinceLoad time.Duration
	// DirectionDown reports whether the most recent scroll moved downward.
	DirectionDown bool
	// UserScrolled latches true once the offset has increased past a small
	// threshold, confirming a user-initiated downward scroll.
	UserScrolled bool
}

// Policy is the device-class observer table, selected once per session.
// Adding a variant means adding a table row here, not threading a new
// conditional through the orchestrator.
type Policy struct {
	class DeviceClass
}

// NewPolicy returns the policy for a device class.
func NewPolicy(class DeviceClass) Policy {
	return Policy{class: class}
}

// Class returns the device class the policy was built for.
func (p Policy) Class() DeviceClass {
	return p.class
}

// ObserverConfig returns the observer sensitivity for a variant.
func (p Policy) ObserverConfig(v Variant) ObserverConfig {
	switch v {
	case VariantHeadline:
		if p.class == ClassMobile {
			return ObserverConfig{Threshold: 0.2, BottomMarginPercent: 60}
		}
		return ObserverConfig{Threshold: 0.3, BottomMarginPercent: 30}
	case VariantFooter:
		return ObserverConfig{Threshold: 0.1, BottomMarginPercent: 0}
	default:
		if p.class == ClassMobile {
			return ObserverConfig{Threshold: 0.1, BottomMarginPercent: 10}
		}
		return ObserverConfig{Threshold: 0.3, BottomMarginPercent: 30}
	}
}

// Qualifies reports whether a visibility event satisfies the variant's
// threshold and gating conditions under the given scroll state.
func (p Policy) Qualifies(v Variant, ev VisibilityEvent, scroll ScrollState) bool {
	if !ev.Visible {
		return false
	}
	if ev.Ratio < p.ObserverConfig(v).Threshold {
		return false
	}
	if v != VariantHeadline {
		return true
	}
	if p.class == ClassMobile {
		// The headline must not reveal during a brief upward correction
		// scroll; a confirmed user-initiated downward movement is required.
		return scroll.Offset > headlineMobileMinOffset &&
			scroll.DirectionDown &&
			scroll.UserScrolled
	}
	// The headline sits in the always-visible first viewport on desktop:
	// suppress while the page is still laying out and whenever the user has
	// not scrolled at all.
	if scroll.SinceLoad < headlineLoadSuppression {
		return false
	}
	return scroll.Offset > 0
}
