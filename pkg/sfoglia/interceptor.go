package sfoglia

import (
	"log/slog"
	"sync"
	"time"

	"github.com/patsma/sfoglia/pkg/sfoglia/internal"
	"github.com/patsma/sfoglia/pkg/sfoglia/router"
)

// ViewFactory builds the view for a route. It is called on every completed
// navigation, after the previous view has been unmounted; implementations
// create the element tree and attach descriptors to reg.
type ViewFactory func(route router.Route, reg *Registry) *View

// InterceptorConfig wires an Interceptor into a router and its collaborators.
// Router is required. Nil Store, Loading, Registry, and Sequencer fields are
// created internally; nil Player or Overlay degrades every transition to
// unanimated navigation (transitions are a progressive enhancement, never a
// requirement for navigation to work).
type InterceptorConfig struct {
	Router    *router.Router
	Store     *TransitionStore
	Loading   *LoadingStore
	Registry  *Registry
	Sequencer *Sequencer
	Overlay   *Overlay
	Scroll    *ScrollRegion
	Player    TimelinePlayer
	Views     ViewFactory

	// Duration and EntranceDuration return the transition timings in
	// seconds; they are read once per transition attempt so theme changes
	// apply to the next navigation. Nil funcs read the active theme.
	Duration         func() float64
	EntranceDuration func() float64

	// ScrollFraction returns the fraction of the cover duration the scroll
	// reset occupies. Nil reads the active theme.
	ScrollFraction func() float64

	Log *slog.Logger
}

// Interceptor observes every navigation attempt on its router. Genuine user
// navigations are intercepted: the interceptor locks the transition store,
// plays the cover timeline, performs the real route change itself, plays the
// reveal, and unlocks. Rapid repeated navigations collapse to the single
// transition holding the lock. It also dispatches the first-load entrance
// choreography once the loading coordinator reports ready.
type Interceptor struct {
	rt       *router.Router
	store    *TransitionStore
	loading  *LoadingStore
	registry *Registry
	seq      *Sequencer
	overlay  *Overlay
	scroll   *ScrollRegion
	player   TimelinePlayer
	views    ViewFactory

	duration         func() float64
	entranceDuration func() float64
	scrollFraction   func() float64

	mu      sync.Mutex
	current *View

	log *slog.Logger
}

// NewInterceptor builds an interceptor and installs it on cfg.Router as a
// guard and change handler. Panics if cfg.Router is nil.
func NewInterceptor(cfg InterceptorConfig) *Interceptor {
	if cfg.Router == nil {
		panic("sfoglia: InterceptorConfig.Router is required")
	}

	if cfg.Log == nil {
		cfg.Log = internal.GetInternalLogger()
	}
	if cfg.Store == nil {
		cfg.Store = NewTransitionStore(cfg.Log)
	}
	if cfg.Loading == nil {
		cfg.Loading = NewLoadingStore(cfg.Log)
	}
	if cfg.Registry == nil {
		cfg.Registry = NewRegistry()
	}
	if cfg.Sequencer == nil {
		cfg.Sequencer = NewSequencer(cfg.Registry, cfg.Log)
	}
	if cfg.Duration == nil {
		cfg.Duration = func() float64 { return internal.GetTheme().TransitionDuration }
	}
	if cfg.EntranceDuration == nil {
		cfg.EntranceDuration = func() float64 { return internal.GetTheme().EntranceDuration }
	}
	if cfg.ScrollFraction == nil {
		cfg.ScrollFraction = func() float64 { return internal.GetTheme().ScrollFraction }
	}

	ic := &Interceptor{
		rt:               cfg.Router,
		store:            cfg.Store,
		loading:          cfg.Loading,
		registry:         cfg.Registry,
		seq:              cfg.Sequencer,
		overlay:          cfg.Overlay,
		scroll:           cfg.Scroll,
		player:           cfg.Player,
		views:            cfg.Views,
		duration:         cfg.Duration,
		entranceDuration: cfg.EntranceDuration,
		scrollFraction:   cfg.ScrollFraction,
		log:              cfg.Log,
	}

	ic.rt.AddGuard(ic.guard)
	ic.rt.OnChange(ic.handleChange)
	ic.loading.OnReady(ic.playEntrance)

	return ic
}

// Store returns the transition state store.
func (ic *Interceptor) Store() *TransitionStore {
	return ic.store
}

// Loading returns the loading coordinator.
func (ic *Interceptor) Loading() *LoadingStore {
	return ic.loading
}

// Registry returns the descriptor registry views attach into.
func (ic *Interceptor) Registry() *Registry {
	return ic.registry
}

// CurrentView returns the mounted view, or nil before first load.
func (ic *Interceptor) CurrentView() *View {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.current
}

// animated reports whether the animation collaborators are present. Without
// them the interceptor lets navigations through unanimated.
func (ic *Interceptor) animated() bool {
	return ic.player != nil && ic.overlay != nil
}

// guard runs before every navigation attempt on the router.
func (ic *Interceptor) guard(from, to router.Route, origin router.Origin) router.Decision {
	// Our own post-animation navigation: let it through without re-locking,
	// or it would intercept itself forever.
	if origin == router.OriginTransition {
		return router.Allow
	}

	// First load and same-route navigations pass unmodified.
	if from == "" || from == to {
		return router.Allow
	}

	if !ic.animated() {
		ic.log.Debug("Animation host missing; navigating unanimated", "to", to)
		return router.Allow
	}

	if !ic.store.Lock(to) {
		ic.log.Debug("Navigation dropped; transition in progress", "to", to)
		return router.Abort
	}

	if !ic.store.StartLeaving() {
		// Contract violation; reset defensively and drop the navigation.
		ic.store.Reset()
		return router.Abort
	}

	go ic.run(from, to)

	// The intercepted navigation is always aborted; the real one is the
	// self-issued navigation in run.
	return router.Abort
}

// run plays one full transition: cover, swap, reveal, unlock.
func (ic *Interceptor) run(from, to router.Route) {
	seconds := ic.duration()
	ic.store.ArmTimeout(secondsToDuration(seconds))

	cover := ic.seq.Cover(ic.CurrentView(), ic.overlay, ic.scroll, seconds, ic.scrollFraction())
	ic.store.SetCancel(cover.Kill)
	ic.player.Play(cover)
	<-cover.Done()

	if err := cover.Err(); err != nil {
		ic.log.Error("Cover animation failed; staying on origin route",
			"from", from, "to", to, "error", NewInfrastructureError("cover", err))
		ic.overlay.Hide()
		ic.store.Reset()
		return
	}

	// The safety timeout may have reset the store while the cover resolved,
	// and a newer navigation may already hold the lock. Swapping routes now
	// would hijack that transition, so confirm this one still owns the store.
	if dest, locked := ic.store.Destination(); !locked || dest != to {
		ic.log.Warn("Transition lost its lock before the swap; dropping navigation", "to", to)
		if !locked {
			ic.overlay.Hide()
		}
		return
	}

	if err := ic.rt.NavigateDirect(to); err != nil {
		ic.log.Error("Route swap failed", "to", to, "error", err)
		ic.overlay.Hide()
		ic.store.Reset()
		return
	}

	if !ic.store.MarkEntering() {
		// The safety timeout already reset the store; the swap happened, so
		// just clean up without a reveal.
		ic.overlay.Hide()
		return
	}

	reveal := ic.seq.Reveal(ic.CurrentView(), ic.overlay, seconds*0.6)
	ic.store.SetCancel(reveal.Kill)
	ic.player.Play(reveal)
	<-reveal.Done()

	if err := reveal.Err(); err != nil {
		ic.log.Error("Reveal animation failed", "to", to, "error", NewInfrastructureError("reveal", err))
	}

	ic.overlay.Hide()
	ic.store.Reset()
}

// handleChange performs the view swap on every completed route change.
func (ic *Interceptor) handleChange(from, to router.Route) {
	ic.mu.Lock()
	old := ic.current
	var next *View
	if ic.views != nil {
		next = ic.views(to, ic.registry)
	}
	ic.current = next
	ic.mu.Unlock()

	if old != nil {
		old.Unmount()
	}
	if next != nil {
		next.Mount()
	}

	ic.loading.MarkViewReady()
}

// playEntrance dispatches the first-load choreography once all readiness
// signals have fired.
func (ic *Interceptor) playEntrance() {
	if !ic.loading.FirstLoad() {
		return
	}
	ic.loading.CompleteFirstLoad()

	if !ic.animated() {
		return
	}

	if !ic.store.Lock(ic.rt.Current()) {
		ic.log.Warn("Entrance skipped; transition lock held")
		return
	}

	seconds := ic.entranceDuration()
	ic.store.ArmTimeout(secondsToDuration(seconds))

	tl := ic.seq.Entrance(ic.CurrentView(), ic.overlay, seconds)
	ic.store.SetCancel(tl.Kill)
	ic.player.Play(tl)

	go func() {
		<-tl.Done()
		if err := tl.Err(); err != nil {
			ic.log.Error("Entrance animation failed", "error", NewInfrastructureError("entrance", err))
			ic.overlay.Hide()
		}
		ic.store.Reset()
	}()
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
