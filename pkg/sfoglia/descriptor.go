package sfoglia

import (
	"github.com/patsma/sfoglia/pkg/sfoglia/constants"
	"github.com/patsma/sfoglia/pkg/sfoglia/internal"
)

// Kind selects the reveal animation family for an element.
type Kind int

const (
	// KindFade fades the element in while translating it along Direction.
	KindFade Kind = iota
	// KindClip grows a clip region from zero to full extent.
	KindClip
	// KindSplit decomposes the element's text and staggers the units in.
	KindSplit
	// KindStagger animates the element's children with incremental delays.
	KindStagger
)

func (k Kind) String() string {
	switch k {
	case KindFade:
		return "fade"
	case KindClip:
		return "clip"
	case KindSplit:
		return "split"
	case KindStagger:
		return "stagger"
	default:
		return "unknown"
	}
}

// Direction orients a fade translation or a clip origin.
// Fade accepts Up/Down/Left/Right; clip accepts Top/Bottom/Left/Right.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
	DirectionTop
	DirectionBottom
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	case DirectionTop:
		return "top"
	case DirectionBottom:
		return "bottom"
	default:
		return ""
	}
}

func (d Direction) validForFade() bool {
	switch d {
	case DirectionUp, DirectionDown, DirectionLeft, DirectionRight:
		return true
	}
	return false
}

func (d Direction) validForClip() bool {
	switch d {
	case DirectionTop, DirectionBottom, DirectionLeft, DirectionRight:
		return true
	}
	return false
}

// SplitUnit selects the granularity of a split reveal.
type SplitUnit int

const (
	SplitChars SplitUnit = iota
	SplitWords
	SplitLines
)

func (u SplitUnit) String() string {
	switch u {
	case SplitChars:
		return "chars"
	case SplitWords:
		return "words"
	case SplitLines:
		return "lines"
	default:
		return "unknown"
	}
}

// staggerDelta is the per-unit delay for a split reveal. Finer units stagger
// faster.
func (u SplitUnit) staggerDelta() float64 {
	switch u {
	case SplitWords:
		return constants.WordStaggerDelta
	case SplitLines:
		return constants.LineStaggerDelta
	default:
		return constants.CharStaggerDelta
	}
}

// Descriptor declares how one element animates during a transition. It is
// pure metadata: attaching one has no effect until the sequencer builds a
// timeline from it.
type Descriptor struct {
	Kind      Kind
	Direction Direction // fade: travel direction; clip: growth origin
	SplitUnit SplitUnit // split only
	Duration  float64   // seconds; 0 uses the per-kind default
	Easing    string    // named curve; empty uses the per-kind default
	Magnitude float64   // fade/split: pixel offset; stagger: per-child delay in seconds

	// LeaveOnly elements animate out before the cover and are excluded from
	// the reveal. Used for content whose arrival is revealed by something
	// else (e.g. a scroll-driven reveal on a detail page).
	LeaveOnly bool

	// ChildSelector scopes which children a stagger animates: "" for direct
	// children, "tag" for a tag match, ".class" for a class match.
	ChildSelector string

	// MaskReveal makes split units slide in from outside the element's
	// clipping box instead of fading in.
	MaskReveal bool
}

// withDefaults fills zero-valued fields with the per-kind defaults and
// coerces directions that are invalid for the kind. A theme-level default
// easing, when set, takes the place of the per-kind easing defaults.
func (d Descriptor) withDefaults() Descriptor {
	if d.Easing == "" {
		d.Easing = internal.GetTheme().DefaultEasing
	}

	switch d.Kind {
	case KindClip:
		if d.Duration <= 0 {
			d.Duration = constants.DefaultClipDuration
		}
		if d.Easing == "" {
			d.Easing = "power3.inOut"
		}
		if !d.Direction.validForClip() {
			d.Direction = DirectionTop
		}
	case KindSplit:
		if d.Duration <= 0 {
			d.Duration = constants.DefaultSplitDuration
		}
		if d.Easing == "" {
			d.Easing = "power3.out"
		}
		if d.Magnitude <= 0 {
			d.Magnitude = constants.DefaultSplitMagnitude
		}
	case KindStagger:
		if d.Duration <= 0 {
			d.Duration = constants.DefaultStaggerDuration
		}
		if d.Easing == "" {
			d.Easing = "power2.out"
		}
		if d.Magnitude <= 0 {
			d.Magnitude = constants.DefaultStaggerDelay
		}
	default:
		if d.Duration <= 0 {
			d.Duration = constants.DefaultFadeDuration
		}
		if d.Easing == "" {
			d.Easing = "power2.out"
		}
		if d.Magnitude <= 0 {
			d.Magnitude = constants.DefaultFadeMagnitude
		}
		if !d.Direction.validForFade() {
			d.Direction = DirectionUp
		}
	}
	return d
}
