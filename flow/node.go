package flow

import (
	"github.com/viant/varlinage/frame"
	"github.com/viant/varlinage/trace"
	"sort"
)

// Node represents an executed statement or a call boundary
type Node struct {
	Frame     frame.ID
	Kind      Kind
	Location  trace.Location
	Statement string
	// Vars is the state before the node executes, for call nodes the caller state at the call site
	Vars trace.Vars
	// VarsBeforeReturn is the frame state right before it returns, set on the last node of a returning frame
	VarsBeforeReturn trace.Vars
	ReturnValue      interface{}
	Returned         bool

	Prev         *Node
	Next         *Node
	StepInto     *Node
	ReturnedFrom *Node

	Callee     *trace.Callee
	CalleeKind CalleeKind
	ParamToArg map[string][]string
	ArgToParam map[string][]string

	// Seq is the node position in the builder creation order
	Seq int

	names  []string
	args   []string
	target bool
	meta   Metadata
}

// IsCallSite returns true for call nodes
func (n *Node) IsCallSite() bool {
	return n.Kind == Call
}

// IsTarget returns true for the slicing target node
func (n *Node) IsTarget() bool {
	return n.target
}

// Names returns identifiers referenced by the node statement
func (n *Node) Names() []string {
	return n.names
}

// Args returns caller side identifiers bound to any callee parameter
func (n *Node) Args() []string {
	return n.args
}

// HasArg returns true if id is bound to a callee parameter
func (n *Node) HasArg(id string) bool {
	for _, arg := range n.args {
		if arg == id {
			return true
		}
	}
	return false
}

// Assigned returns statement identifiers that are not call arguments, e.g. a, b in a, b = f(x)
func (n *Node) Assigned() []string {
	var ret []string
	for _, name := range n.names {
		if !n.HasArg(name) {
			ret = append(ret, name)
		}
	}
	return ret
}

func (n *Node) setBinding(paramToArg map[string][]string) {
	n.ParamToArg = paramToArg
	n.ArgToParam = map[string][]string{}
	set := map[string]bool{}
	params := make([]string, 0, len(paramToArg))
	for param := range paramToArg {
		params = append(params, param)
	}
	sort.Strings(params)
	for _, param := range params {
		for _, arg := range paramToArg[param] {
			set[arg] = true
			if !contains(n.ArgToParam[arg], param) {
				n.ArgToParam[arg] = append(n.ArgToParam[arg], param)
			}
		}
	}
	n.args = sortedKeys(set)
}

// RecordChanges diffs every identifier tracked by next against the node vars and
// records appearances and modifications, next has to be in the same frame.
// It returns records emitted by this call.
func (n *Node) RecordChanges(next *Node) []Change {
	return n.recordChanges(next.Tracking(), n.Vars, next.Vars)
}

// RecordReturnChanges diffs tracked identifiers between vars and vars before return
func (n *Node) RecordReturnChanges() []Change {
	if n.VarsBeforeReturn == nil {
		return nil
	}
	return n.recordChanges(n.Tracking(), n.Vars, n.VarsBeforeReturn)
}

func (n *Node) recordChanges(ids []string, before, after trace.Vars) []Change {
	var ret []Change
	for _, id := range ids {
		newValue, ok := after[id]
		if !ok {
			continue
		}
		oldValue, ok := before[id]
		if !ok {
			appearance := &VarAppearance{ID: id, Value: newValue}
			n.meta.appearances = append(n.meta.appearances, appearance)
			ret = append(ret, appearance)
			continue
		}
		if HasDiff(oldValue, newValue) {
			modification := &VarModification{ID: id, OldValue: oldValue, NewValue: newValue}
			n.meta.modifications = append(n.meta.modifications, modification)
			ret = append(ret, modification)
		}
	}
	return ret
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]bool) []string {
	ret := make([]string, 0, len(set))
	for k := range set {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
