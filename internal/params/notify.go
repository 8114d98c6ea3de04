// Change notification and the programmatic-write suppress scope
package params

// OnChange registers a listener for validated edits. Listeners receive
// the full dotted path and the already-parsed typed value, exactly once
// per successful commit. Programmatic refresh and tree rebuilds never
// reach listeners.
func (s *Set) OnChange(fn func(path string, v Value)) {
	s.listeners = append(s.listeners, fn)
}

// suppress enters the suppress-notifications scope and returns the exit
// function. Callers defer the exit so the scope is released on every
// return path.
func (s *Set) suppress() func() {
	prev := s.refreshing
	s.refreshing = true
	return func() { s.refreshing = prev }
}

func (s *Set) emit(path string, v Value) {
	if s.refreshing {
		return
	}
	for _, fn := range s.listeners {
		fn(path, v)
	}
}
