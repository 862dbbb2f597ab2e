package reveal

import "fmt"

// State is the reveal lifecycle position of one element.
type State int

const (
	// StatePending means no qualifying visibility event has arrived yet.
	StatePending State = iota
	// StateQueued means the element's own visibility condition was satisfied
	// but its ordering predecessor has not revealed yet.
	StateQueued
	// StateUnlocking means the element is waiting out its reveal delay.
	StateUnlocking
	// StateRevealed is terminal; an element reaches it at most once.
	StateRevealed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateQueued:
		return "queued"
	case StateUnlocking:
		return "unlocking"
	case StateRevealed:
		return "revealed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// OrchestratorState owns the built element order and the per-element reveal
// states for one page session. It is a plain value with no internal locking:
// the engine confines it to a single goroutine, and tests drive it directly.
type OrchestratorState struct {
	order  []Element
	byID   map[string]int
	states []State

	// hiddenReports counts not-visible reports received while an element was
	// still Pending. Diagnostics only; no transition reads it.
	hiddenReports map[string]int
}

// NewState builds the orchestrator state for an element set. The input does
// not need to be pre-ordered; Build establishes the precedence order.
func NewState(elements []Element) *OrchestratorState {
	order := Build(elements)
	byID := make(map[string]int, len(order))
	for i, e := range order {
		byID[e.ID] = i
	}
	return &OrchestratorState{
		order:         order,
		byID:          byID,
		states:        make([]State, len(order)),
		hiddenReports: make(map[string]int),
	}
}

// HiddenReports returns how many not-visible reports arrived for an element
// while it was still Pending.
func (st *OrchestratorState) HiddenReports(id string) int {
	return st.hiddenReports[id]
}

// Order returns the built precedence order.
func (st *OrchestratorState) Order() []Element {
	return st.order
}

// Lookup returns the element with the given ID.
func (st *OrchestratorState) Lookup(id string) (Element, bool) {
	i, ok := st.byID[id]
	if !ok {
		return Element{}, false
	}
	return st.order[i], true
}

// StateOf returns the reveal state of an element.
func (st *OrchestratorState) StateOf(id string) (State, bool) {
	i, ok := st.byID[id]
	if !ok {
		return StatePending, false
	}
	return st.states[i], true
}

// Snapshot returns the current state of every element keyed by ID.
func (st *OrchestratorState) Snapshot() map[string]State {
	out := make(map[string]State, len(st.order))
	for i, e := range st.order {
		out[e.ID] = st.states[i]
	}
	return out
}

// Revealed reports whether every element has reached the terminal state.
func (st *OrchestratorState) Revealed() bool {
	for _, s := range st.states {
		if s != StateRevealed {
			return false
		}
	}
	return true
}

// predecessor returns the built-order position that must reveal before
// position i, or -1 when the element is unblocked.
//
// Group-1 elements are never blocked. Elements of a declared group (>= 2)
// skip their in-group peers and block on the nearest earlier element of a
// different group. Unsequenced elements (group 0) share no group with
// anything and block on their immediate predecessor in the built order.
func (st *OrchestratorState) predecessor(i int) int {
	e := st.order[i]
	if e.SequenceGroup == 1 {
		return -1
	}
	for j := i - 1; j >= 0; j-- {
		if e.SequenceGroup != 0 && st.order[j].SequenceGroup == e.SequenceGroup {
			continue
		}
		return j
	}
	return -1
}

// unblocked reports whether the element at built position i has no
// unrevealed predecessor.
func (st *OrchestratorState) unblocked(i int) bool {
	p := st.predecessor(i)
	return p < 0 || st.states[p] == StateRevealed
}
