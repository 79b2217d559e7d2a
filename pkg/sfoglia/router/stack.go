package router

import "sync"

// StackEntry represents a single entry in the navigation history.
// It stores the route and any resume state captured when leaving it,
// typically a scroll offset.
type StackEntry struct {
	Route  Route
	Resume any
}

// Stack manages navigation history for back navigation.
// Entries allow returning to previous routes with their saved resume state.
type Stack struct {
	mu      sync.Mutex
	entries []StackEntry
}

// NewStack creates a new empty navigation stack.
func NewStack() *Stack {
	return &Stack{
		entries: make([]StackEntry, 0),
	}
}

// Push adds a new entry. Called when navigating forward off a route.
func (s *Stack) Push(route Route, resume any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, StackEntry{
		Route:  route,
		Resume: resume,
	})
}

// Pop removes and returns the top entry, or nil if the stack is empty.
func (s *Stack) Pop() *StackEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return nil
	}
	entry := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return &entry
}

// Peek returns the top entry without removing it, or nil if empty.
func (s *Stack) Peek() *StackEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return nil
	}
	entry := s.entries[len(s.entries)-1]
	return &entry
}

// IsEmpty returns true if the stack has no entries.
func (s *Stack) IsEmpty() bool {
	return s.Len() == 0
}

// Len returns the number of entries in the stack.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Clear removes all entries from the stack.
func (s *Stack) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = s.entries[:0]
}
