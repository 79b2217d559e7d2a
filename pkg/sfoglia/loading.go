package sfoglia

import (
	"log/slog"
	"sync"

	"github.com/patsma/sfoglia/pkg/sfoglia/internal"
	"go.uber.org/atomic"
)

// LoadingStore aggregates the first-load readiness signals: the virtualized
// scroll layer, the first mounted view, and the fonts. Each flag is monotonic
// within a session; the ready callback fires exactly once, when the last of
// the three first holds. FirstLoad distinguishes the entrance choreography
// from ordinary navigation reveals and flips to false permanently once the
// entrance has been dispatched.
type LoadingStore struct {
	scrollReady atomic.Bool
	viewReady   atomic.Bool
	fontsReady  atomic.Bool
	firstLoad   atomic.Bool

	mu        sync.Mutex
	readyOnce sync.Once
	onReady   []func()
	log       *slog.Logger
}

// NewLoadingStore creates a store with all flags unset and FirstLoad true.
func NewLoadingStore(log *slog.Logger) *LoadingStore {
	if log == nil {
		log = internal.GetInternalLogger()
	}
	s := &LoadingStore{log: log}
	s.firstLoad.Store(true)
	return s
}

// OnReady registers fn to run when all readiness flags first hold. If they
// already do, fn runs immediately.
func (s *LoadingStore) OnReady(fn func()) {
	s.mu.Lock()
	ready := s.Ready()
	if !ready {
		s.onReady = append(s.onReady, fn)
	}
	s.mu.Unlock()

	if ready {
		fn()
	}
}

// MarkScrollReady records the scroll-virtualization layer's readiness.
// Idempotent.
func (s *LoadingStore) MarkScrollReady() {
	s.mark(&s.scrollReady, "scroll")
}

// MarkViewReady records that the first view has mounted. Idempotent.
func (s *LoadingStore) MarkViewReady() {
	s.mark(&s.viewReady, "view")
}

// MarkFontsReady records that fonts have loaded. Idempotent.
func (s *LoadingStore) MarkFontsReady() {
	s.mark(&s.fontsReady, "fonts")
}

func (s *LoadingStore) mark(flag *atomic.Bool, name string) {
	if flag.Swap(true) {
		return
	}
	s.log.Debug("Readiness signal", "signal", name)

	if s.Ready() {
		s.fireReady()
	}
}

func (s *LoadingStore) fireReady() {
	s.readyOnce.Do(func() {
		s.mu.Lock()
		callbacks := s.onReady
		s.onReady = nil
		s.mu.Unlock()

		s.log.Debug("All readiness signals received")
		for _, fn := range callbacks {
			fn()
		}
	})
}

// Ready reports whether every readiness flag holds.
func (s *LoadingStore) Ready() bool {
	return s.scrollReady.Load() && s.viewReady.Load() && s.fontsReady.Load()
}

// FirstLoad reports whether the session is still before its entrance
// animation. Never true again after CompleteFirstLoad.
func (s *LoadingStore) FirstLoad() bool {
	return s.firstLoad.Load()
}

// CompleteFirstLoad permanently flips FirstLoad to false. The orchestrator
// calls it when dispatching the entrance choreography.
func (s *LoadingStore) CompleteFirstLoad() {
	s.firstLoad.Store(false)
}
