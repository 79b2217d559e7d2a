package sfoglia

import (
	"strings"
	"sync"

	"github.com/patsma/sfoglia/pkg/sfoglia/router"
	"go.uber.org/atomic"
)

// ElementID is a stable handle for an element. Handles are unique for the
// lifetime of the process, so a registry entry can never be confused between
// an unmounted element and a later one reusing its memory.
type ElementID uint64

var nextElementID atomic.Uint64

// Element is a node in a view's content tree. There is no real DOM here;
// elements carry the visual state that timelines drive and the host
// application reads back when rendering. Timelines run on the animator
// goroutine while the host renders on its own loop, so the animated state
// lives behind a mutex: writes go through the setters, reads through Visual.
type Element struct {
	id       ElementID
	view     *View
	parent   *Element
	children []*Element

	// Tag, Class, and Text are set while building the view and constant
	// once it is mounted.
	Tag   string
	Class string
	Text  string

	mu     sync.Mutex
	visual Visual

	split bool // text already materialized into unit children
}

// Visual is one element's animated drawing state.
type Visual struct {
	Opacity      float64   // 0..1
	OffsetX      float64   // pixels
	OffsetY      float64   // pixels
	ClipFraction float64   // 0..1, 1 = fully revealed
	ClipOrigin   Direction // edge the clip region grows from
}

// Visual returns a consistent copy of the element's animated state. Render
// loops call this once per element per frame.
func (e *Element) Visual() Visual {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.visual
}

// SetOpacity sets the element's opacity.
func (e *Element) SetOpacity(opacity float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.visual.Opacity = opacity
}

// SetOffset sets the element's translation in pixels.
func (e *Element) SetOffset(x, y float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.visual.OffsetX = x
	e.visual.OffsetY = y
}

// SetClipFraction sets how much of the element is revealed.
func (e *Element) SetClipFraction(fraction float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.visual.ClipFraction = fraction
}

// SetClip sets the clip origin and revealed fraction together.
func (e *Element) SetClip(origin Direction, fraction float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.visual.ClipOrigin = origin
	e.visual.ClipFraction = fraction
}

// ID returns the element's stable handle.
func (e *Element) ID() ElementID {
	return e.id
}

// View returns the owning view.
func (e *Element) View() *View {
	return e.view
}

// Parent returns the parent element, or nil for a view root.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns the element's direct children in insertion order.
func (e *Element) Children() []*Element {
	return e.children
}

// Query returns the direct children matching a selector: "" matches all
// direct children, "tag" matches by tag, ".class" matches by class.
func (e *Element) Query(selector string) []*Element {
	if selector == "" {
		return e.children
	}

	var matched []*Element
	for _, child := range e.children {
		if class, ok := strings.CutPrefix(selector, "."); ok {
			if child.Class == class {
				matched = append(matched, child)
			}
		} else if child.Tag == selector {
			matched = append(matched, child)
		}
	}
	return matched
}

// walk visits the element and all descendants depth-first.
func (e *Element) walk(fn func(*Element)) {
	fn(e)
	for _, child := range e.children {
		child.walk(fn)
	}
}

// View is one screen's content tree. Views own their elements: mounting makes
// descriptors on them visible to the sequencer, unmounting detaches every
// descriptor so the registry never holds a dangling entry.
type View struct {
	route    router.Route
	root     *Element
	registry *Registry
	mounted  bool
}

// NewView creates an unmounted view for the given route. Descriptors attached
// to its elements are stored in reg.
func NewView(route router.Route, reg *Registry) *View {
	v := &View{
		route:    route,
		registry: reg,
	}
	v.root = v.NewElement("root")
	return v
}

// Route returns the route this view renders.
func (v *View) Route() router.Route {
	return v.route
}

// Root returns the view's root element.
func (v *View) Root() *Element {
	return v.root
}

// Mounted reports whether the view is currently mounted.
func (v *View) Mounted() bool {
	return v.mounted
}

// NewElement allocates an element owned by this view. The element starts
// fully visible; attach it to the tree with AppendTo or Element.children
// via Append.
func (v *View) NewElement(tag string) *Element {
	return &Element{
		id:     ElementID(nextElementID.Add(1)),
		view:   v,
		Tag:    tag,
		visual: Visual{Opacity: 1, ClipFraction: 1},
	}
}

// Append adds child under parent. Both must belong to this view.
func (v *View) Append(parent, child *Element) {
	if parent.view != v || child.view != v {
		return
	}
	child.parent = parent
	parent.children = append(parent.children, child)
}

// Contains reports whether el belongs to this view.
func (v *View) Contains(el *Element) bool {
	return el != nil && el.view == v
}

// Mount marks the view live. Descriptor attachment is the application's job
// (typically right after building the tree); Mount exists so the orchestrator
// can tell a live view from a torn-down one.
func (v *View) Mount() {
	v.mounted = true
}

// Unmount tears the view down, detaching every descriptor its elements hold.
// This is the lifecycle hook that upholds the registry's no-dangling-entries
// invariant.
func (v *View) Unmount() {
	v.mounted = false
	if v.registry == nil {
		return
	}
	v.root.walk(func(el *Element) {
		v.registry.Detach(el)
	})
}

// Remove unlinks el (and its subtree) from the view, detaching any
// descriptors in the subtree.
func (v *View) Remove(el *Element) {
	if !v.Contains(el) || el.parent == nil {
		return
	}

	siblings := el.parent.children
	for i, sibling := range siblings {
		if sibling == el {
			el.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	el.parent = nil

	if v.registry != nil {
		el.walk(func(node *Element) {
			v.registry.Detach(node)
		})
	}
}
