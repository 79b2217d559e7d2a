// Package router provides guarded route navigation for screen-based apps.
//
// Routes are path-style strings registered up front. Navigation attempts run
// through a guard chain before the route changes; guards can allow the
// navigation or abort it. The transition orchestrator installs a guard that
// intercepts user navigations, plays a cover animation, and then re-issues the
// navigation tagged with OriginTransition so it passes through untouched.
//
// # Basic Usage
//
//	r := router.New()
//	r.Register("/").Register("/work").Register("/about")
//
//	r.OnChange(func(from, to router.Route) {
//	    // swap the mounted view
//	})
//
//	r.AddGuard(func(from, to router.Route, origin router.Origin) router.Decision {
//	    if origin == router.OriginTransition {
//	        return router.Allow
//	    }
//	    // inspect, animate, re-issue...
//	    return router.Abort
//	})
//
//	if err := r.Navigate("/work"); err != nil {
//	    // router.ErrAborted is normal flow control: a guard dropped it
//	}
//
// # History
//
// Forward navigations may push the departed route onto the History stack
// together with resume state (scroll offset, selection). Back pops the top
// entry, navigates to it through the ordinary guard chain, and hands the
// resume state back to the caller for restoration.
package router
