package sfoglia

import (
	"log/slog"
	"math"

	"github.com/patsma/sfoglia/pkg/sfoglia/internal"
)

// interElementDelay staggers elements within a phase, in attach order.
const interElementDelay = 0.06

// staggerRise is the vertical travel for stagger-kind children.
const staggerRise = 16.0

// leaveOutCap bounds the leave-only slide-out so it always finishes before
// the cover does.
const leaveOutCap = 0.35

// Sequencer builds transition timelines from the descriptors registered for
// a view. It never plays them; the orchestrator hands timelines to a player
// and awaits their resolution.
type Sequencer struct {
	registry *Registry
	log      *slog.Logger
}

// NewSequencer creates a sequencer reading from reg. A nil logger falls back
// to the framework's internal logger.
func NewSequencer(reg *Registry, log *slog.Logger) *Sequencer {
	if log == nil {
		log = internal.GetInternalLogger()
	}
	return &Sequencer{registry: reg, log: log}
}

// Cover builds the outgoing phase: leave-only descriptors slide out, the
// overlay wipes from a point to full coverage over duration seconds, and the
// scroll reset (when the region is scrolled) runs on the same clock,
// finishing at scrollFraction of the cover duration so the position is
// visually stable before the swap.
func (s *Sequencer) Cover(view *View, overlay *Overlay, scroll *ScrollRegion, duration, scrollFraction float64) *Timeline {
	tl := NewTimeline()

	for _, entry := range s.outgoing(view) {
		s.appendLeaveOut(tl, entry.el, entry.desc, duration)
	}

	if overlay != nil {
		tl.Call(0, func() error {
			overlay.Show()
			return nil
		})
		tl.Add(0, duration, easeOrDefault("power3.inout"), func(p float64) error {
			overlay.SetCoverage(p)
			return nil
		})
	}

	if scroll != nil && scroll.Offset() > 0 {
		if scrollFraction <= 0 || scrollFraction > 1 {
			scrollFraction = 1
		}
		tl.Add(0, duration*scrollFraction, easeOrDefault("power2.inout"), scroll.resetApply())
	}

	return tl
}

// Reveal builds the incoming phase for a freshly mounted view: the overlay
// contracts back to a point over unveil seconds while every non-leave-only
// descriptor becomes a per-kind tween, staggered in attach order.
func (s *Sequencer) Reveal(view *View, overlay *Overlay, unveil float64) *Timeline {
	tl := NewTimeline()

	if overlay != nil && unveil > 0 {
		tl.Add(0, unveil, easeOrDefault("expo.out"), func(p float64) error {
			overlay.SetCoverage(1 - p)
			return nil
		})
		tl.Call(unveil, func() error {
			overlay.Hide()
			return nil
		})
	}

	s.appendReveal(tl, view, 0, 1)
	return tl
}

// Entrance builds the first-load choreography: the overlay starts fully
// covering and contracts over duration seconds, then the view reveals with
// slightly stretched timing.
func (s *Sequencer) Entrance(view *View, overlay *Overlay, duration float64) *Timeline {
	tl := NewTimeline()

	if overlay != nil {
		tl.Call(0, func() error {
			overlay.Show()
			overlay.SetCoverage(1)
			return nil
		})
		tl.Add(0, duration, easeOrDefault("expo.inout"), func(p float64) error {
			overlay.SetCoverage(1 - p)
			return nil
		})
		tl.Call(duration, func() error {
			overlay.Hide()
			return nil
		})
	}

	s.appendReveal(tl, view, duration*0.5, 1.25)
	return tl
}

// outgoing returns the leave-only entries for view, in attach order. These
// are the only elements animating on departure; everything else is simply
// covered by the wipe.
func (s *Sequencer) outgoing(view *View) []registryEntry {
	var out []registryEntry
	for _, entry := range s.registry.forView(view) {
		if entry.desc.LeaveOnly {
			out = append(out, entry)
		}
	}
	return out
}

// incoming returns the reveal-phase entries for view: every descriptor not
// flagged leave-only, in attach order.
func (s *Sequencer) incoming(view *View) []registryEntry {
	var in []registryEntry
	for _, entry := range s.registry.forView(view) {
		if !entry.desc.LeaveOnly {
			in = append(in, entry)
		}
	}
	return in
}

func (s *Sequencer) appendLeaveOut(tl *Timeline, el *Element, d Descriptor, coverDuration float64) {
	dx, dy := enterOffset(d.Direction, d.Magnitude)
	duration := math.Min(leaveOutCap, coverDuration*0.5)

	tl.Add(0, duration, easeOrDefault("power2.in"), func(p float64) error {
		el.SetOpacity(1 - p)
		// Continue traveling in the enter direction, off and away.
		el.SetOffset(-dx*p, -dy*p)
		return nil
	})
}

func (s *Sequencer) appendReveal(tl *Timeline, view *View, baseDelay, scale float64) {
	for idx, entry := range s.incoming(view) {
		delay := baseDelay + float64(idx)*interElementDelay
		duration := entry.desc.Duration * scale
		ease := easeOrDefault(entry.desc.Easing)

		switch entry.desc.Kind {
		case KindClip:
			s.appendClip(tl, entry.el, entry.desc, delay, duration, ease)
		case KindSplit:
			s.appendSplit(tl, entry.el, entry.desc, delay, duration, ease)
		case KindStagger:
			s.appendStagger(tl, entry.el, entry.desc, delay, duration, ease)
		default:
			s.appendFade(tl, entry.el, entry.desc, delay, duration, ease)
		}
	}
}

func (s *Sequencer) appendFade(tl *Timeline, el *Element, d Descriptor, delay, duration float64, ease EaseFunc) {
	dx, dy := enterOffset(d.Direction, d.Magnitude)

	// Seed the pre-reveal state now so the element is hidden until its tween
	// starts.
	el.SetOpacity(0)
	el.SetOffset(dx, dy)

	tl.Add(delay, duration, ease, func(p float64) error {
		el.SetOpacity(p)
		el.SetOffset(dx*(1-p), dy*(1-p))
		return nil
	})
}

func (s *Sequencer) appendClip(tl *Timeline, el *Element, d Descriptor, delay, duration float64, ease EaseFunc) {
	el.SetOpacity(1)
	el.SetClip(d.Direction, 0)

	tl.Add(delay, duration, ease, func(p float64) error {
		el.SetClipFraction(p)
		return nil
	})
}

func (s *Sequencer) appendSplit(tl *Timeline, el *Element, d Descriptor, delay, duration float64, ease EaseFunc) {
	units := materializeUnits(el, d)
	delta := d.SplitUnit.staggerDelta()

	for i, unit := range units {
		unit := unit
		start := unit.Visual().OffsetY
		masked := d.MaskReveal

		tl.Add(delay+float64(i)*delta, duration, ease, func(p float64) error {
			unit.SetOffset(0, start*(1-p))
			if !masked {
				unit.SetOpacity(p)
			}
			return nil
		})
	}
}

func (s *Sequencer) appendStagger(tl *Timeline, el *Element, d Descriptor, delay, duration float64, ease EaseFunc) {
	children := el.Query(d.ChildSelector)
	if len(children) == 0 {
		s.log.Debug("Stagger descriptor matched no children", "element", el.ID(), "selector", d.ChildSelector)
		return
	}

	for i, child := range children {
		child := child
		child.SetOpacity(0)
		child.SetOffset(0, staggerRise)

		tl.Add(delay+float64(i)*d.Magnitude, duration, ease, func(p float64) error {
			child.SetOpacity(p)
			child.SetOffset(0, staggerRise*(1-p))
			return nil
		})
	}
}

// enterOffset returns the starting offset for a fade entering along dir:
// the element starts displaced opposite its travel direction and eases to
// rest. The leave phase negates it, so leave and enter feel directionally
// opposite.
func enterOffset(dir Direction, magnitude float64) (dx, dy float64) {
	switch dir {
	case DirectionDown:
		return 0, -magnitude
	case DirectionLeft:
		return magnitude, 0
	case DirectionRight:
		return -magnitude, 0
	default: // up
		return 0, magnitude
	}
}
