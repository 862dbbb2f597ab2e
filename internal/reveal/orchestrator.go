package reveal

import (
	"sort"
	"time"
)

// groupStagger spreads out reveals of higher sequence groups so staged
// sections do not all appear at once.
const groupStagger = 300 * time.Millisecond

// QualifyFunc decides whether a visibility event is qualifying for an
// element. The engine supplies the device-class policy here; tests can
// substitute their own gate.
type QualifyFunc func(Element, VisibilityEvent) bool

// unlockDelay is the wait between unlocking and revealing: the element's
// base delay plus the group stagger. Groups 0 and 1 get no stagger.
func unlockDelay(e Element) time.Duration {
	d := e.BaseDelay
	if e.SequenceGroup > 1 {
		d += time.Duration(e.SequenceGroup) * groupStagger
	}
	return d
}

// ApplyBatch runs the reveal transition function over one batch of
// visibility events and returns the unlocks the engine must schedule.
//
// Events are resolved in built-order precedence, not arrival order, so the
// outcome is deterministic regardless of observer callback ordering. Events
// for elements past Pending are no-ops: Revealed is idempotent and Queued or
// Unlocking elements are already progressing. Not-visible events never
// change state.
func (st *OrchestratorState) ApplyBatch(events []VisibilityEvent, qualifies QualifyFunc) []Unlock {
	type candidate struct {
		idx int
		ev  VisibilityEvent
	}
	candidates := make([]candidate, 0, len(events))
	for _, ev := range events {
		idx, ok := st.byID[ev.Element]
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{idx: idx, ev: ev})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].idx < candidates[j].idx
	})

	var unlocks []Unlock
	for _, c := range candidates {
		if st.states[c.idx] != StatePending {
			continue
		}
		if !c.ev.Visible {
			st.hiddenReports[c.ev.Element]++
			continue
		}
		element := st.order[c.idx]
		if qualifies != nil && !qualifies(element, c.ev) {
			continue
		}
		if st.unblocked(c.idx) {
			st.states[c.idx] = StateUnlocking
			unlocks = append(unlocks, Unlock{Element: element, Delay: unlockDelay(element)})
		} else {
			st.states[c.idx] = StateQueued
		}
	}
	return unlocks
}

// CompleteUnlock marks an Unlocking element Revealed, then promotes any
// Queued element whose predecessor is now revealed. It returns whether the
// transition happened and the promotions the engine must schedule.
func (st *OrchestratorState) CompleteUnlock(id string) (bool, []Unlock) {
	idx, ok := st.byID[id]
	if !ok || st.states[idx] != StateUnlocking {
		return false, nil
	}
	st.states[idx] = StateRevealed
	return true, st.promote()
}

// ForceReveal advances a stuck Queued element straight to Revealed. It backs
// the optional fail-safe timer; elements in any other state are left alone.
func (st *OrchestratorState) ForceReveal(id string) (bool, []Unlock) {
	idx, ok := st.byID[id]
	if !ok || st.states[idx] != StateQueued {
		return false, nil
	}
	st.states[idx] = StateRevealed
	return true, st.promote()
}

// promote moves every unblocked Queued element to Unlocking, scanning in
// built order so cascaded reveals stay deterministic.
func (st *OrchestratorState) promote() []Unlock {
	var out []Unlock
	for i, e := range st.order {
		if st.states[i] == StateQueued && st.unblocked(i) {
			st.states[i] = StateUnlocking
			out = append(out, Unlock{Element: e, Delay: unlockDelay(e)})
		}
	}
	return out
}
