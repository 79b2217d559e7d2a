package sfoglia_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patsma/sfoglia/pkg/sfoglia"
	"github.com/patsma/sfoglia/pkg/sfoglia/router"
)

// manualPlayer hands played timelines to the test instead of running a frame
// loop, so tests control the clock.
type manualPlayer struct {
	played chan *sfoglia.Timeline
}

func newManualPlayer() *manualPlayer {
	return &manualPlayer{played: make(chan *sfoglia.Timeline, 4)}
}

func (p *manualPlayer) Play(tl *sfoglia.Timeline) {
	p.played <- tl
}

func (p *manualPlayer) await(t *testing.T) *sfoglia.Timeline {
	t.Helper()
	select {
	case tl := <-p.played:
		return tl
	case <-time.After(2 * time.Second):
		t.Fatal("no timeline played")
		return nil
	}
}

func finish(tl *sfoglia.Timeline) {
	for !tl.Advance(0.05) {
	}
}

type fixture struct {
	rt      *router.Router
	ic      *sfoglia.Interceptor
	player  *manualPlayer
	overlay *sfoglia.Overlay
}

func newFixture(t *testing.T, animated bool) *fixture {
	t.Helper()

	rt := router.New().Register("/a").Register("/b").Register("/c")

	f := &fixture{rt: rt}
	cfg := sfoglia.InterceptorConfig{
		Router: rt,
		Views: func(route router.Route, reg *sfoglia.Registry) *sfoglia.View {
			view := sfoglia.NewView(route, reg)
			heading := view.NewElement("h1")
			heading.Text = "ciao"
			view.Append(view.Root(), heading)
			reg.Attach(heading, sfoglia.Descriptor{
				Kind:      sfoglia.KindSplit,
				SplitUnit: sfoglia.SplitChars,
			})
			body := view.NewElement("p")
			view.Append(view.Root(), body)
			reg.Attach(body, sfoglia.Descriptor{
				Kind:      sfoglia.KindFade,
				Direction: sfoglia.DirectionUp,
			})
			return view
		},
		Duration:         func() float64 { return 0.5 },
		EntranceDuration: func() float64 { return 0.6 },
		ScrollFraction:   func() float64 { return 0.8 },
	}
	if animated {
		f.player = newManualPlayer()
		f.overlay = sfoglia.NewOverlay()
		cfg.Player = f.player
		cfg.Overlay = f.overlay
	}
	f.ic = sfoglia.NewInterceptor(cfg)

	require.NoError(t, rt.Navigate("/a"), "first load passes through unanimated")
	require.Equal(t, router.Route("/a"), rt.Current())
	return f
}

func TestInterceptorPlaysFullTransition(t *testing.T) {
	f := newFixture(t, true)

	err := f.rt.Navigate("/b")
	require.ErrorIs(t, err, router.ErrAborted, "intercepted navigation reports aborted")

	assert.Equal(t, router.Route("/a"), f.rt.Current(), "route must not change before the cover")
	assert.Equal(t, sfoglia.PhaseLeaving, f.ic.Store().Phase())

	cover := f.player.await(t)
	finish(cover)
	require.NoError(t, cover.Err())
	assert.True(t, f.overlay.Visible())
	assert.Equal(t, 1.0, f.overlay.Coverage())

	reveal := f.player.await(t)
	assert.Equal(t, router.Route("/b"), f.rt.Current(), "swap happens under full cover")
	assert.Equal(t, router.Route("/b"), f.ic.CurrentView().Route())
	assert.Equal(t, sfoglia.PhaseEntering, f.ic.Store().Phase())

	finish(reveal)
	require.NoError(t, reveal.Err())

	require.Eventually(t, func() bool {
		return f.ic.Store().Phase() == sfoglia.PhaseIdle && !f.ic.Store().Locked()
	}, 2*time.Second, 5*time.Millisecond)
	assert.False(t, f.overlay.Visible())

	// The new view's elements finished at rest.
	for _, el := range f.ic.CurrentView().Root().Query("p") {
		assert.Equal(t, 1.0, el.Visual().Opacity)
		assert.Zero(t, el.Visual().OffsetY)
	}
}

func TestInterceptorDropsNavigationDuringTransition(t *testing.T) {
	f := newFixture(t, true)

	require.ErrorIs(t, f.rt.Navigate("/b"), router.ErrAborted)

	// A second navigation while the lock is held is dropped outright.
	require.ErrorIs(t, f.rt.Navigate("/c"), router.ErrAborted)
	dest, locked := f.ic.Store().Destination()
	require.True(t, locked)
	assert.Equal(t, router.Route("/b"), dest, "the first navigation keeps the lock")

	finish(f.player.await(t))
	finish(f.player.await(t))

	require.Eventually(t, func() bool {
		return f.ic.Store().Phase() == sfoglia.PhaseIdle
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, router.Route("/b"), f.rt.Current(), "the dropped destination is never visited")

	// Navigation works again after the transition settles.
	require.ErrorIs(t, f.rt.Navigate("/c"), router.ErrAborted)
	finish(f.player.await(t))
	finish(f.player.await(t))
	require.Eventually(t, func() bool {
		return f.rt.Current() == "/c"
	}, 2*time.Second, 5*time.Millisecond)
}

func TestInterceptorRecoversFromCoverFailure(t *testing.T) {
	f := newFixture(t, true)

	require.ErrorIs(t, f.rt.Navigate("/b"), router.ErrAborted)

	cover := f.player.await(t)
	cover.Advance(0.1)
	cover.Kill()

	require.Eventually(t, func() bool {
		return f.ic.Store().Phase() == sfoglia.PhaseIdle && !f.ic.Store().Locked()
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, router.Route("/a"), f.rt.Current(), "a failed cover leaves the origin route active")
	assert.False(t, f.overlay.Visible())

	// The lock is free again.
	require.ErrorIs(t, f.rt.Navigate("/b"), router.ErrAborted)
	finish(f.player.await(t))
	finish(f.player.await(t))
	require.Eventually(t, func() bool {
		return f.rt.Current() == "/b"
	}, 2*time.Second, 5*time.Millisecond)
}

// lockStealingPlayer finishes each timeline synchronously; after the first
// one resolves it simulates the safety timeout firing mid-transition, with a
// competing navigation grabbing the freed lock before the stale goroutine
// gets to swap routes.
type lockStealingPlayer struct {
	store *sfoglia.TransitionStore
	stole chan struct{}
	once  sync.Once
}

func (p *lockStealingPlayer) Play(tl *sfoglia.Timeline) {
	finish(tl)
	p.once.Do(func() {
		p.store.Reset()
		p.store.Lock("/c")
		p.store.StartLeaving()
		close(p.stole)
	})
}

func TestInterceptorDropsSwapAfterLosingLock(t *testing.T) {
	rt := router.New().Register("/a").Register("/b").Register("/c")
	player := &lockStealingPlayer{stole: make(chan struct{})}

	ic := sfoglia.NewInterceptor(sfoglia.InterceptorConfig{
		Router:  rt,
		Overlay: sfoglia.NewOverlay(),
		Player:  player,
		Views: func(route router.Route, reg *sfoglia.Registry) *sfoglia.View {
			return sfoglia.NewView(route, reg)
		},
		Duration:         func() float64 { return 0.5 },
		EntranceDuration: func() float64 { return 0.6 },
		ScrollFraction:   func() float64 { return 0.8 },
	})
	player.store = ic.Store()
	t.Cleanup(ic.Store().Reset)

	require.NoError(t, rt.Navigate("/a"))
	require.ErrorIs(t, rt.Navigate("/b"), router.ErrAborted)

	select {
	case <-player.stole:
	case <-time.After(2 * time.Second):
		t.Fatal("cover never played")
	}

	// Give the stale transition goroutine time to misbehave, then verify it
	// did not.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, router.Route("/a"), rt.Current(), "a transition that lost its lock must not swap routes")

	dest, locked := ic.Store().Destination()
	require.True(t, locked, "the competing transition keeps its lock")
	assert.Equal(t, router.Route("/c"), dest)
	assert.Equal(t, sfoglia.PhaseLeaving, ic.Store().Phase())
}

func TestInterceptorUnanimatedWithoutHost(t *testing.T) {
	f := newFixture(t, false)

	require.NoError(t, f.rt.Navigate("/b"), "missing player degrades to plain navigation")
	assert.Equal(t, router.Route("/b"), f.rt.Current())
	assert.Equal(t, sfoglia.PhaseIdle, f.ic.Store().Phase())
	assert.False(t, f.ic.Store().Locked())
	assert.Equal(t, router.Route("/b"), f.ic.CurrentView().Route())
}

func TestInterceptorSameRoutePassesThrough(t *testing.T) {
	f := newFixture(t, true)

	require.NoError(t, f.rt.Navigate("/a"), "same-route navigation is never intercepted")
	assert.Equal(t, sfoglia.PhaseIdle, f.ic.Store().Phase())
}

func TestInterceptorEntrancePlaysOnce(t *testing.T) {
	f := newFixture(t, true)

	loading := f.ic.Loading()
	require.True(t, loading.FirstLoad())

	// The view signal fired during the first navigation; complete the rest.
	loading.MarkFontsReady()
	loading.MarkScrollReady()

	entrance := f.player.await(t)
	assert.False(t, loading.FirstLoad(), "entrance dispatch consumes first load")
	assert.True(t, f.ic.Store().Locked(), "entrance holds the transition lock")

	entrance.Advance(0.016)
	assert.True(t, f.overlay.Visible())
	assert.Greater(t, f.overlay.Coverage(), 0.9, "entrance starts fully covered")

	finish(entrance)
	require.NoError(t, entrance.Err())

	require.Eventually(t, func() bool {
		return f.ic.Store().Phase() == sfoglia.PhaseIdle && !f.ic.Store().Locked()
	}, 2*time.Second, 5*time.Millisecond)

	// Re-marking signals must not replay the entrance.
	loading.MarkFontsReady()
	select {
	case <-f.player.played:
		t.Fatal("entrance replayed")
	case <-time.After(50 * time.Millisecond):
	}
}
