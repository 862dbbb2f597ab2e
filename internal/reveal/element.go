package reveal

import "time"

// Variant selects which device-class observer configuration applies to an
// element.
type Variant string

const (
	// VariantStandard is the default observer configuration.
	VariantStandard Variant = "standard"
	// VariantHeadline applies the headline gating rules (load suppression on
	// desktop, scroll-direction confirmation on mobile).
	VariantHeadline Variant = "headline"
	// VariantFooter applies the lenient bottom-of-page configuration.
	VariantFooter Variant = "footer"
)

// Valid reports whether v names a known variant.
func (v Variant) Valid() bool {
	switch v {
	case VariantStandard, VariantHeadline, VariantFooter:
		return true
	}
	return false
}

// Element describes one revealable page section.
type Element struct {
	// ID is the stable identity of the element, matching its DOM id.
	ID string
	// Index is the element's natural top-to-bottom document position.
	Index int
	// SequenceGroup tags the element with a reveal stage. Zero means
	// unsequenced: the element chains strictly behind its document
	// predecessor. Group 1 is immediately available and never blocked.
	// Higher groups are peers within the group and gain a stagger delay.
	SequenceGroup int
	// BaseDelay is applied between unlocking and revealing.
	BaseDelay time.Duration
	// Variant selects the observer configuration and gating rules.
	Variant Variant
	// Progress marks the element whose reveal drives the progress animator.
	Progress bool
}
