package sfoglia

import (
	"sync"
	"time"

	"github.com/patsma/sfoglia/pkg/sfoglia/constants"
)

// TimelinePlayer drives timelines to completion. The orchestrator only needs
// Play; tests can substitute a manual stepper.
type TimelinePlayer interface {
	Play(*Timeline)
}

// Animator pumps timelines on a ticker goroutine at roughly 60fps, measuring
// real elapsed time per tick so playback speed is independent of tick jitter.
type Animator struct {
	mu       sync.Mutex
	playing  map[*Timeline]struct{}
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  bool
}

// NewAnimator creates an animator with the default frame interval.
func NewAnimator() *Animator {
	return &Animator{
		playing:  make(map[*Timeline]struct{}),
		interval: constants.DefaultFrameInterval,
		stop:     make(chan struct{}),
	}
}

// Play enrolls a timeline; it is advanced every tick until it resolves.
// Playing an already-resolved timeline is harmless.
func (a *Animator) Play(tl *Timeline) {
	if tl == nil {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	select {
	case <-a.stop:
		// Closed animator: resolve immediately so waiters don't hang.
		tl.Kill()
		return
	default:
	}

	a.playing[tl] = struct{}{}
	if !a.running {
		a.running = true
		a.wg.Add(1)
		go a.pump()
	}
}

func (a *Animator) pump() {
	defer a.wg.Done()

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-a.stop:
			a.mu.Lock()
			for tl := range a.playing {
				delete(a.playing, tl)
				tl.Kill()
			}
			a.mu.Unlock()
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			a.mu.Lock()
			active := make([]*Timeline, 0, len(a.playing))
			for tl := range a.playing {
				active = append(active, tl)
			}
			a.mu.Unlock()

			for _, tl := range active {
				if tl.Advance(dt) {
					a.mu.Lock()
					delete(a.playing, tl)
					a.mu.Unlock()
				}
			}
		}
	}
}

// Close stops the pump goroutine and kills any timelines still playing, so
// their waiters unblock. Safe to call more than once.
func (a *Animator) Close() {
	a.stopOnce.Do(func() {
		close(a.stop)
	})
	a.wg.Wait()
}
