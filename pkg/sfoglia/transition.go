package sfoglia

import (
	"log/slog"
	"sync"
	"time"

	"github.com/patsma/sfoglia/pkg/sfoglia/constants"
	"github.com/patsma/sfoglia/pkg/sfoglia/internal"
	"github.com/patsma/sfoglia/pkg/sfoglia/router"
)

// Phase is the transition state machine's current stage.
type Phase int

const (
	// PhaseIdle means no transition is running; navigation is unlocked.
	PhaseIdle Phase = iota
	// PhaseLeaving covers the outgoing animation up to the route swap.
	PhaseLeaving
	// PhaseEntering covers the incoming reveal after the route swap.
	PhaseEntering
)

func (p Phase) String() string {
	switch p {
	case PhaseLeaving:
		return "leaving"
	case PhaseEntering:
		return "entering"
	default:
		return "idle"
	}
}

// TransitionStore is the process-wide transition state machine. It enforces
// at-most-one active transition: Lock fails while another transition runs,
// and Reset is the single escape hatch back to idle, reachable from every
// phase. A safety timeout armed at StartLeaving bounds the worst-case lock
// duration so a wedged animation can never leave navigation permanently
// unclickable.
type TransitionStore struct {
	mu          sync.Mutex
	phase       Phase
	locked      bool
	destination router.Route
	timer       *time.Timer
	cancel      func()
	generation  uint64
	buffer      time.Duration
	log         *slog.Logger
}

// NewTransitionStore creates an idle, unlocked store. A nil logger falls
// back to the framework's internal logger.
func NewTransitionStore(log *slog.Logger) *TransitionStore {
	if log == nil {
		log = internal.GetInternalLogger()
	}
	return &TransitionStore{
		buffer: constants.SafetyTimeoutBuffer,
		log:    log,
	}
}

// Lock claims the transition lock for a navigation toward destination.
// It fails if a transition is already running; callers must treat false as
// "abort your navigation", never as "retry".
func (s *TransitionStore) Lock(destination router.Route) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locked {
		s.log.Debug("Transition lock contended", "destination", destination, "holder", s.destination)
		return false
	}

	s.locked = true
	s.destination = destination
	return true
}

// StartLeaving moves a freshly locked store into the leaving phase.
// Calling it without holding the lock is a programming-contract violation:
// it returns false, leaves state unchanged, and logs.
func (s *TransitionStore) StartLeaving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.locked || s.phase != PhaseIdle {
		s.log.Warn("StartLeaving called out of contract", "locked", s.locked, "phase", s.phase.String())
		return false
	}

	s.phase = PhaseLeaving
	return true
}

// MarkEntering records that the route swap happened and the reveal phase is
// beginning. Valid only while leaving.
func (s *TransitionStore) MarkEntering() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseLeaving {
		s.log.Warn("MarkEntering called out of contract", "phase", s.phase.String())
		return false
	}

	s.phase = PhaseEntering
	return true
}

// ArmTimeout starts the safety timer: the animation duration plus a fixed
// buffer. If the transition has not reset by then, the store force-resets
// itself and kills the in-flight timeline. A later Reset disarms the timer;
// a stale fire from a previous transition is ignored.
func (s *TransitionStore) ArmTimeout(animation time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}

	generation := s.generation
	s.timer = time.AfterFunc(animation+s.buffer, func() {
		s.mu.Lock()
		stale := s.generation != generation || !s.locked
		destination := s.destination
		s.mu.Unlock()
		if stale {
			return
		}

		s.log.Warn("Transition safety timeout fired; force-resetting", "destination", destination)
		s.Reset()
	})
}

// SetCancel registers the hook Reset invokes to kill the in-flight timeline,
// so an orphaned animation cannot keep mutating elements after the lock has
// cleared.
func (s *TransitionStore) SetCancel(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancel = fn
}

// Reset unconditionally returns the store to idle, from any phase. It stops
// the safety timer, clears the destination, and runs the registered cancel
// hook. Reset is idempotent and safe to call from timeline completion paths.
func (s *TransitionStore) Reset() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.phase = PhaseIdle
	s.locked = false
	s.destination = ""
	s.generation++
	s.mu.Unlock()

	// Run outside the mutex: Kill resolves the timeline, whose waiters may
	// call Reset again.
	if cancel != nil {
		cancel()
	}
}

// Phase returns the current phase.
func (s *TransitionStore) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Locked reports whether a transition holds the lock.
func (s *TransitionStore) Locked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

// Destination returns the route the active transition is moving toward.
func (s *TransitionStore) Destination() (router.Route, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destination, s.locked
}
