package sfoglia

import (
	"math"
	"sync"
)

// defaultScrollSmoothing matches the feel of the framework's detail screens:
// the offset closes 15% of the distance to its target per frame.
const defaultScrollSmoothing = 0.15

// ScrollRegion is a virtualized scroll position: the offset eases toward a
// target rather than jumping, and the transition sequencer can animate a
// reset-to-top on the cover timeline's clock. The first SetBounds call fires
// the ready callback, feeding the loading coordinator's scroll-ready signal.
type ScrollRegion struct {
	mu        sync.Mutex
	offset    float64
	target    float64
	max       float64
	smoothing float64

	readyOnce sync.Once
	onReady   func()
}

// NewScrollRegion creates a scroll region. onReady may be nil; when set it
// fires once, on the first SetBounds call.
func NewScrollRegion(onReady func()) *ScrollRegion {
	return &ScrollRegion{
		smoothing: defaultScrollSmoothing,
		onReady:   onReady,
	}
}

// SetBounds records the content and viewport heights, clamping the current
// position into range. The first call marks the region ready.
func (s *ScrollRegion) SetBounds(contentHeight, viewportHeight float64) {
	s.mu.Lock()
	s.max = math.Max(0, contentHeight-viewportHeight)
	s.target = math.Min(s.target, s.max)
	s.offset = math.Min(s.offset, s.max)
	onReady := s.onReady
	s.mu.Unlock()

	s.readyOnce.Do(func() {
		if onReady != nil {
			onReady()
		}
	})
}

// ScrollBy moves the target by delta pixels, clamped to the content bounds.
func (s *ScrollRegion) ScrollBy(delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = math.Min(math.Max(0, s.target+delta), s.max)
}

// Step advances the offset toward the target by the smoothing factor.
// Call once per frame.
func (s *ScrollRegion) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offset += (s.target - s.offset) * s.smoothing
}

// Offset returns the current scroll offset in pixels.
func (s *ScrollRegion) Offset() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offset
}

// resetApply returns a tween apply function that animates the offset from
// its current position to the top. Both offset and target move so frame
// smoothing does not fight the timeline.
func (s *ScrollRegion) resetApply() func(progress float64) error {
	s.mu.Lock()
	start := s.offset
	s.mu.Unlock()

	return func(progress float64) error {
		pos := start * (1 - progress)
		s.mu.Lock()
		s.offset = pos
		s.target = pos
		s.mu.Unlock()
		return nil
	}
}
