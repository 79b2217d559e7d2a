package sfoglia

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patsma/sfoglia/pkg/sfoglia/router"
)

func TestLockSucceedsOnceUntilReset(t *testing.T) {
	s := NewTransitionStore(nil)

	require.True(t, s.Lock("/work"))
	assert.False(t, s.Lock("/work"), "same destination must still be rejected")
	assert.False(t, s.Lock("/about"), "different destination must be rejected")

	dest, locked := s.Destination()
	assert.True(t, locked)
	assert.Equal(t, router.Route("/work"), dest)

	s.Reset()
	assert.True(t, s.Lock("/about"))
	s.Reset()
}

func TestStartLeavingRequiresLock(t *testing.T) {
	s := NewTransitionStore(nil)

	assert.False(t, s.StartLeaving(), "unlocked store must reject StartLeaving")
	assert.Equal(t, PhaseIdle, s.Phase())

	require.True(t, s.Lock("/work"))
	require.True(t, s.StartLeaving())
	assert.Equal(t, PhaseLeaving, s.Phase())

	assert.False(t, s.StartLeaving(), "double StartLeaving must fail")
	s.Reset()
}

func TestMarkEnteringOnlyWhileLeaving(t *testing.T) {
	s := NewTransitionStore(nil)

	assert.False(t, s.MarkEntering())

	require.True(t, s.Lock("/work"))
	assert.False(t, s.MarkEntering(), "entering before leaving is a contract violation")

	require.True(t, s.StartLeaving())
	require.True(t, s.MarkEntering())
	assert.Equal(t, PhaseEntering, s.Phase())
	s.Reset()
}

func TestResetReachableFromEveryPhase(t *testing.T) {
	s := NewTransitionStore(nil)

	phases := []func(){
		func() {}, // locked, still idle
		func() { s.StartLeaving() },
		func() { s.StartLeaving(); s.MarkEntering() },
	}
	for _, advance := range phases {
		require.True(t, s.Lock("/work"))
		advance()

		s.Reset()
		assert.Equal(t, PhaseIdle, s.Phase())
		assert.False(t, s.Locked())
		_, locked := s.Destination()
		assert.False(t, locked)
	}
}

func TestResetIsIdempotent(t *testing.T) {
	s := NewTransitionStore(nil)
	require.True(t, s.Lock("/work"))
	s.Reset()
	s.Reset()
	assert.Equal(t, PhaseIdle, s.Phase())
}

func TestResetRunsCancelHookOnce(t *testing.T) {
	s := NewTransitionStore(nil)
	require.True(t, s.Lock("/work"))

	calls := 0
	s.SetCancel(func() { calls++ })

	s.Reset()
	s.Reset()
	assert.Equal(t, 1, calls, "cancel hook must not run on later resets")
}

func TestSafetyTimeoutForcesReset(t *testing.T) {
	s := NewTransitionStore(nil)
	s.buffer = 20 * time.Millisecond

	require.True(t, s.Lock("/work"))
	require.True(t, s.StartLeaving())

	killed := make(chan struct{})
	s.SetCancel(func() { close(killed) })
	s.ArmTimeout(10 * time.Millisecond)

	select {
	case <-killed:
	case <-time.After(time.Second):
		t.Fatal("safety timeout never fired")
	}

	assert.Eventually(t, func() bool {
		return s.Phase() == PhaseIdle && !s.Locked()
	}, time.Second, 5*time.Millisecond)

	// Navigation works normally after a timeout.
	assert.True(t, s.Lock("/about"))
	s.Reset()
}

func TestSafetyTimeoutDisarmedByReset(t *testing.T) {
	s := NewTransitionStore(nil)
	s.buffer = 10 * time.Millisecond

	require.True(t, s.Lock("/work"))
	require.True(t, s.StartLeaving())
	s.ArmTimeout(0)
	s.Reset()

	// A new transition must not be clobbered by the stale timer.
	require.True(t, s.Lock("/about"))
	require.True(t, s.StartLeaving())

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, PhaseLeaving, s.Phase(), "stale timer reset a newer transition")
	s.Reset()
}
