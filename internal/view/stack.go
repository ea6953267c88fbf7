package view

// Stack holds the active top-level view and the history of views it
// replaced. The active view is never part of the history.
type Stack struct {
	active  View
	history []View
}

// NewStack returns a stack with root as the active view.
func NewStack(root View) *Stack {
	return &Stack{active: root}
}

// Active returns the active view.
func (s *Stack) Active() View {
	return s.active
}

// Push makes v active and moves the previous active view onto the history.
func (s *Stack) Push(v View) {
	if s.active != nil {
		s.history = append(s.history, s.active)
	}
	s.active = v
}

// Pop restores the most recent view from the history. It returns false and
// leaves the stack unchanged when the history is empty.
func (s *Stack) Pop() bool {
	if len(s.history) == 0 {
		return false
	}
	s.active = s.history[len(s.history)-1]
	s.history[len(s.history)-1] = nil
	s.history = s.history[:len(s.history)-1]
	return true
}

// Depth returns the number of views in the history.
func (s *Stack) Depth() int {
	return len(s.history)
}
