package router

import (
	"errors"
	"fmt"
	"sync"
)

// Route is a path-style identifier for a navigable screen, e.g. "/work".
type Route string

// Origin tags who issued a navigation. The transition orchestrator issues its
// own navigation after the cover animation completes; tagging it explicitly
// keeps guards from intercepting it a second time.
type Origin int

const (
	// OriginUser marks a navigation triggered by the application or user input.
	OriginUser Origin = iota
	// OriginTransition marks a navigation self-issued by a guard after it
	// intercepted and animated the original attempt.
	OriginTransition
)

// Decision is a guard's verdict on a navigation attempt.
type Decision int

const (
	// Allow lets the navigation proceed unmodified.
	Allow Decision = iota
	// Abort drops the navigation. Guards that abort may later re-issue the
	// navigation themselves with OriginTransition.
	Abort
)

// Guard runs before every navigation. from is the empty Route on first load.
type Guard func(from, to Route, origin Origin) Decision

// ChangeFunc is called after the current route has changed.
type ChangeFunc func(from, to Route)

// Sentinel errors returned by navigation operations.
var (
	// ErrUnknownRoute indicates the destination was never registered.
	ErrUnknownRoute = errors.New("router: unknown route")

	// ErrAborted indicates a guard dropped the navigation. This is normal
	// flow control (e.g. a transition is already running), not a failure.
	ErrAborted = errors.New("router: navigation aborted")
)

// Router holds the route table, guard chain, and current location.
// All methods are safe for concurrent use; guards and change handlers run on
// the calling goroutine.
type Router struct {
	mu       sync.Mutex
	routes   map[Route]bool
	guards   []Guard
	onChange []ChangeFunc
	current  Route
	history  *Stack
}

// New creates an empty Router.
func New() *Router {
	return &Router{
		routes:  make(map[Route]bool),
		history: NewStack(),
	}
}

// Register adds a navigable route.
func (r *Router) Register(route Route) *Router {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[route] = true
	return r
}

// Routes returns the registered routes in no particular order.
func (r *Router) Routes() []Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	routes := make([]Route, 0, len(r.routes))
	for route := range r.routes {
		routes = append(routes, route)
	}
	return routes
}

// AddGuard appends a guard to the chain. Guards run in registration order;
// the first Abort wins.
func (r *Router) AddGuard(g Guard) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guards = append(r.guards, g)
}

// OnChange registers a handler invoked after every completed route change.
func (r *Router) OnChange(fn ChangeFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = append(r.onChange, fn)
}

// Current returns the active route, or the empty Route before first load.
func (r *Router) Current() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// History returns the navigation history stack for back navigation and
// scroll-resume state.
func (r *Router) History() *Stack {
	return r.history
}

// Navigate attempts a user-originated navigation to the given route.
func (r *Router) Navigate(to Route) error {
	return r.navigate(to, OriginUser)
}

// NavigateDirect performs a navigation tagged as self-issued by a transition
// guard. Guards still run but are expected to let it through.
func (r *Router) NavigateDirect(to Route) error {
	return r.navigate(to, OriginTransition)
}

// Back pops the most recent history entry and navigates to it. The entry's
// resume state is returned so the caller can restore scroll position.
// Returns nil and no error when the history is empty.
func (r *Router) Back() (*StackEntry, error) {
	entry := r.history.Pop()
	if entry == nil {
		return nil, nil
	}

	if err := r.navigate(entry.Route, OriginUser); err != nil {
		// The navigation was dropped; put the entry back so a later Back
		// still works.
		r.history.Push(entry.Route, entry.Resume)
		return nil, err
	}
	return entry, nil
}

func (r *Router) navigate(to Route, origin Origin) error {
	r.mu.Lock()
	if !r.routes[to] {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownRoute, to)
	}
	from := r.current
	guards := r.guards
	r.mu.Unlock()

	for _, guard := range guards {
		if guard(from, to, origin) == Abort {
			return ErrAborted
		}
	}

	r.mu.Lock()
	from = r.current
	r.current = to
	handlers := r.onChange
	r.mu.Unlock()

	for _, fn := range handlers {
		fn(from, to)
	}
	return nil
}
