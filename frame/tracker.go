package frame

import "fmt"

// Tracker follows the current frame while trace events are replayed.
// Each recorder owns its tracker, there is no process wide frame state.
type Tracker struct {
	current    ID
	childIndex map[string]int
}

// NewTracker creates a tracker positioned at the root frame
func NewTracker() *Tracker {
	return &Tracker{current: Root(), childIndex: map[string]int{}}
}

// Current returns the frame id of the current code location
func (t *Tracker) Current() ID {
	return append(ID{}, t.current...)
}

// Line returns the frame a line event belongs to
func (t *Tracker) Line() ID {
	return t.Current()
}

// Call descends into a new callee frame and returns the caller frame id,
// a call site lives in the caller frame.
func (t *Tracker) Call() ID {
	caller := t.Current()
	t.current = caller.Child(t.childIndex[caller.Key()])
	return caller
}

// Callee returns the frame id the next Call would descend into
func (t *Tracker) Callee() ID {
	return t.current.Child(t.childIndex[t.current.Key()])
}

// Return leaves the current frame and returns its id. After exiting,
// the parent's child index is advanced.
func (t *Tracker) Return() (ID, error) {
	callee := t.Current()
	parent := callee.Parent()
	if parent == nil {
		return nil, fmt.Errorf("return from root frame %v", callee)
	}
	t.current = parent
	t.childIndex[parent.Key()]++
	return callee, nil
}
