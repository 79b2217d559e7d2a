package sfoglia

import "sync"

// Overlay is the full-viewport cover element. Exactly one exists per window;
// the sequencer drives its coverage and the host's render loop draws it each
// frame (see RenderOverlay). Coverage 0 is invisible, 1 fully covers the
// viewport corners.
type Overlay struct {
	mu       sync.Mutex
	visible  bool
	coverage float64
}

// NewOverlay creates a hidden overlay.
func NewOverlay() *Overlay {
	return &Overlay{}
}

// Show makes the overlay renderable. Coverage is untouched so an entrance
// can show it already fully covering.
func (o *Overlay) Show() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.visible = true
}

// Hide makes the overlay invisible and resets coverage.
func (o *Overlay) Hide() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.visible = false
	o.coverage = 0
}

// Visible reports whether the overlay should be drawn.
func (o *Overlay) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible
}

// SetCoverage sets the wipe coverage, clamped to [0,1].
func (o *Overlay) SetCoverage(coverage float64) {
	if coverage < 0 {
		coverage = 0
	}
	if coverage > 1 {
		coverage = 1
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.coverage = coverage
}

// Coverage returns the current wipe coverage.
func (o *Overlay) Coverage() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.coverage
}
