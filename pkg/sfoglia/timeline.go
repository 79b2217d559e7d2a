package sfoglia

import (
	"fmt"
	"math"
	"sync"
)

// Timeline is a set of tweens sharing one clock. It is advanced in frame
// steps by an animator (or a test) and resolves exactly once: on completion,
// on the first tween error, or when killed. Done never closes twice and Err
// is stable after resolution.
type Timeline struct {
	mu       sync.Mutex
	tweens   []*tween
	elapsed  float64
	duration float64
	done     chan struct{}
	resolved bool
	err      error
}

type tween struct {
	delay    float64
	duration float64
	ease     EaseFunc
	apply    func(progress float64) error
	started  bool
	finished bool
}

// NewTimeline creates an empty timeline. An empty timeline resolves on the
// first Advance call.
func NewTimeline() *Timeline {
	return &Timeline{
		done: make(chan struct{}),
	}
}

// Add appends a tween starting at delay and running for duration seconds.
// apply receives eased progress in [0,1] and is guaranteed a final call with
// progress 1 when the tween completes.
func (t *Timeline) Add(delay, duration float64, ease EaseFunc, apply func(progress float64) error) {
	if ease == nil {
		ease = easings["linear"]
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tweens = append(t.tweens, &tween{
		delay:    delay,
		duration: duration,
		ease:     ease,
		apply:    apply,
	})
	t.duration = math.Max(t.duration, delay+duration)
}

// Call schedules fn to run once when the clock reaches at seconds.
func (t *Timeline) Call(at float64, fn func() error) {
	t.Add(at, 0, nil, func(float64) error {
		return fn()
	})
}

// Duration returns the total timeline length in seconds.
func (t *Timeline) Duration() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.duration
}

// Advance moves the clock forward by dt seconds, applying every due tween.
// It returns true once the timeline has resolved. A tween error (or panic)
// resolves the timeline immediately; remaining tweens do not run.
func (t *Timeline) Advance(dt float64) bool {
	t.mu.Lock()
	if t.resolved {
		t.mu.Unlock()
		return true
	}

	t.elapsed += dt
	elapsed := t.elapsed
	pending := make([]*tween, 0, len(t.tweens))
	for _, tw := range t.tweens {
		if !tw.finished && elapsed >= tw.delay {
			pending = append(pending, tw)
		}
	}
	t.mu.Unlock()

	for _, tw := range pending {
		if err := t.applyTween(tw, elapsed); err != nil {
			t.resolve(err)
			return true
		}
	}

	t.mu.Lock()
	complete := elapsed >= t.duration
	if complete {
		for _, tw := range t.tweens {
			if !tw.finished {
				complete = false
				break
			}
		}
	}
	t.mu.Unlock()

	if complete {
		t.resolve(nil)
		return true
	}
	return false
}

func (t *Timeline) applyTween(tw *tween, elapsed float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tween panic: %v", r)
		}
	}()

	progress := 1.0
	if tw.duration > 0 {
		progress = math.Min((elapsed-tw.delay)/tw.duration, 1)
	}

	tw.started = true
	if progress >= 1 {
		tw.finished = true
	}

	if tw.apply == nil {
		return nil
	}
	return tw.apply(tw.ease(progress))
}

// Done returns a channel closed when the timeline resolves.
func (t *Timeline) Done() <-chan struct{} {
	return t.done
}

// Err returns the resolution error: nil for normal completion,
// ErrTimelineKilled after Kill, or the first tween error.
func (t *Timeline) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Kill cancels the timeline. Elements keep whatever values the last applied
// frame left; killing an already-resolved timeline is a no-op.
func (t *Timeline) Kill() {
	t.resolve(ErrTimelineKilled)
}

func (t *Timeline) resolve(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.resolved {
		return
	}
	t.resolved = true
	t.err = err
	close(t.done)
}
