package celebrate

import "sync"

// Element is implemented by all stage node types
type Element interface {
	element() // sealed marker
}

// Stage is the element tree the effect engine parents its nodes to.
// The engine appends and removes nodes; the host renderer only reads.
type Stage struct {
	mu       sync.Mutex
	elements []Element
}

// NewStage creates an empty stage
func NewStage() *Stage {
	return &Stage{}
}

// Append adds an element to the top of the stacking order
func (s *Stage) Append(e Element) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elements = append(s.elements, e)
}

// Remove detaches an element; removing an absent element is a no-op
func (s *Stage) Remove(e Element) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, el := range s.elements {
		if el == e {
			s.elements = append(s.elements[:i], s.elements[i+1:]...)
			return
		}
	}
}

// Elements returns a snapshot of the current elements in stacking order
func (s *Stage) Elements() []Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Element, len(s.elements))
	copy(out, s.elements)
	return out
}

// Ghosts extracts all ghost nodes currently on the stage
func (s *Stage) Ghosts() []*GhostNode {
	var ghosts []*GhostNode
	for _, e := range s.Elements() {
		if g, ok := e.(*GhostNode); ok {
			ghosts = append(ghosts, g)
		}
	}
	return ghosts
}

// Overlay returns the flash overlay if one is attached
func (s *Stage) Overlay() *FlashOverlay {
	for _, e := range s.Elements() {
		if o, ok := e.(*FlashOverlay); ok {
			return o
		}
	}
	return nil
}
