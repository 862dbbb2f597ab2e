// Package reveal orders and times the staged appearance of landing page
// sections from asynchronous viewport visibility signals.
//
// The package separates the decision logic from its shell. Build establishes
// the reveal precedence order from the declared element set; OrchestratorState
// carries the per-element lifecycle (Pending, Queued, Unlocking, Revealed)
// and exposes pure transition functions (ApplyBatch, CompleteUnlock,
// ForceReveal) that return the side effects to perform. Engine is the shell:
// one goroutine per page session that feeds visibility batches and timer
// firings through the transition functions and runs the resulting unlock
// timers.
//
// # Ordering
//
// Unsequenced elements (group 0) reveal strictly in document order: each one
// waits for its predecessor. Declared sequence groups reveal as stages:
// group 1 is immediately available, higher groups follow in ascending order
// with a per-group stagger delay, and elements within one group are peers.
// Visibility events arriving out of document order are queued until their
// predecessor reveals, and batches resolve in precedence order so the
// outcome never depends on observer callback ordering.
//
// # Device classes
//
// Policy is the single table of observer sensitivity and gating rules per
// element variant (standard, headline, footer) for the desktop and mobile
// classes. The class is selected once per session from the viewport width.
package reveal
