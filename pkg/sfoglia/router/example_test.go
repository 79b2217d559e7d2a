package router_test

import (
	"fmt"

	"github.com/patsma/sfoglia/pkg/sfoglia/router"
)

// Example demonstrates basic registration, guarding, and navigation.
func Example() {
	r := router.New()
	r.Register("/").Register("/work")

	r.OnChange(func(from, to router.Route) {
		fmt.Printf("changed: %q -> %q\n", from, to)
	})

	// A guard that lets everything through but reports what it sees.
	r.AddGuard(func(from, to router.Route, origin router.Origin) router.Decision {
		fmt.Printf("guard: %q -> %q\n", from, to)
		return router.Allow
	})

	_ = r.Navigate("/")
	_ = r.Navigate("/work")

	// Output:
	// guard: "" -> "/"
	// changed: "" -> "/"
	// guard: "/" -> "/work"
	// changed: "/" -> "/work"
}

// Example_interceptingGuard demonstrates the intercept-and-reissue pattern
// used by the transition orchestrator: the guard aborts the user navigation,
// does its work, then issues a direct navigation that it lets through.
func Example_interceptingGuard() {
	r := router.New()
	r.Register("/").Register("/about")
	_ = r.Navigate("/")

	r.OnChange(func(from, to router.Route) {
		fmt.Printf("changed: %q -> %q\n", from, to)
	})

	r.AddGuard(func(from, to router.Route, origin router.Origin) router.Decision {
		if origin == router.OriginTransition {
			return router.Allow
		}
		fmt.Printf("intercepted: %q -> %q\n", from, to)
		return router.Abort
	})

	if err := r.Navigate("/about"); err != nil {
		fmt.Println("user navigation:", err)
	}

	// The guard's deferred work happens here; then it re-issues the move.
	_ = r.NavigateDirect("/about")
	fmt.Println("current:", r.Current())

	// Output:
	// intercepted: "/" -> "/about"
	// user navigation: router: navigation aborted
	// changed: "/" -> "/about"
	// current: /about
}

// Example_backNavigation demonstrates stack-based back navigation with
// resume state.
func Example_backNavigation() {
	r := router.New()
	r.Register("/").Register("/work")
	_ = r.Navigate("/")

	// Leaving "/": remember the scroll offset for the return trip.
	r.History().Push("/", 340)
	_ = r.Navigate("/work")

	entry, _ := r.Back()
	fmt.Printf("returned to %s with scroll %v\n", r.Current(), entry.Resume)

	// Output:
	// returned to / with scroll 340
}
