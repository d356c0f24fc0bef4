// Package flow assembles per frame execution records into a linked flow graph and
// holds the per node tracking state populated by backward slicing.
package flow

// Flow represents one program execution
type Flow struct {
	// Start is the first node of the root frame, its Prev is nil
	Start *Node
	// Target is the sentinel call node slicing starts from
	Target *Node
	// TargetID is the identifier passed to the sentinel call
	TargetID string
	nodes    []*Node
}

// Nodes returns linked nodes in execution order, a call node precedes its callee nodes
func (f *Flow) Nodes() []*Node {
	var ret []*Node
	var pending []*Node
	node := f.Start
	for {
		for node != nil {
			ret = append(ret, node)
			if node.Kind == Call && node.StepInto != nil {
				pending = append(pending, node.Next)
				node = node.StepInto
				continue
			}
			node = node.Next
		}
		if len(pending) == 0 {
			return ret
		}
		node = pending[len(pending)-1]
		pending = pending[:len(pending)-1]
	}
}

// Reset clears slicing state of every node and seeds the target tracking
func (f *Flow) Reset() {
	for _, node := range f.nodes {
		node.ResetMetadata()
	}
	if f.Target != nil {
		f.Target.AddTracking(f.TargetID)
	}
}
