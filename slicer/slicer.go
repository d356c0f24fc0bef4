// Package slicer walks a flow backward from its target, propagating tracked identifiers
// across statements and call boundaries and recording where their values changed.
package slicer

import (
	"fmt"
	"github.com/viant/varlinage/flow"
	"io"
	"log/slog"
)

const selfParam = "self"

// Slicer performs backward slicing
type Slicer struct {
	logger   *slog.Logger
	maxSteps int
}

// Result represents slicing outcome
type Result struct {
	Flow *flow.Flow
	// Steps is the number of visited nodes
	Steps int
	// Truncated is set when the walk stopped at the step limit before reaching the flow start
	Truncated bool
}

// Relevant returns nodes with recorded changes, in execution order
func (r *Result) Relevant() []*flow.Node {
	var ret []*flow.Node
	for _, node := range r.Flow.Nodes() {
		if node.HasChanges() || node.RelevantReturn() {
			ret = append(ret, node)
		}
	}
	return ret
}

// New creates a slicer
func New(options ...Option) *Slicer {
	ret := &Slicer{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Slice runs a backward pass from the flow target. Previous slicing state is discarded,
// so slicing the same flow again yields the same records.
func (s *Slicer) Slice(f *flow.Flow) (*Result, error) {
	if f == nil || f.Start == nil || f.Target == nil {
		return nil, fmt.Errorf("flow has no start or target")
	}
	f.Reset()
	ret := &Result{Flow: f}
	current, next := f.Target.Prev, f.Target
	for current != nil {
		if s.maxSteps > 0 && ret.Steps >= s.maxSteps {
			ret.Truncated = true
			s.logger.Warn("slice truncated", "steps", ret.Steps, "frame", current.Frame.String(), "location", current.Location.String())
			return ret, nil
		}
		ret.Steps++
		var err error
		switch current.Kind {
		case flow.Line:
			s.visitLine(current, next)
			next, current = current, current.Prev
		case flow.Call:
			if current.StepInto == next {
				s.enterCall(current, next)
				next, current = current, current.Prev
				continue
			}
			if next, err = s.returnFrom(current, next); err != nil {
				return nil, err
			}
			current = next.Prev
		default:
			return nil, flow.NewError(flow.BrokenChain, current, "unsupported node kind %v", current.Kind)
		}
	}
	if next != f.Start {
		return nil, flow.NewError(flow.BrokenChain, next, "node has no predecessor but is not the flow start")
	}
	s.logger.Info("slice completed", "target", f.TargetID, "steps", ret.Steps)
	return ret, nil
}

// visitLine propagates tracking over a plain statement, the statement inputs become
// tracked once a tracked identifier changed at it
func (s *Slicer) visitLine(current, next *flow.Node) {
	current.SyncTracking(next)
	changes := current.RecordChanges(next)
	if len(changes) > 0 {
		current.AddTracking(current.Names()...)
	}
	s.logger.Debug("line", "frame", current.Frame.String(), "statement", current.Statement, "changes", len(changes), "tracking", current.Tracking())
}

// enterCall maps tracked callee parameters to caller arguments, walking from the callee
// first statement back to its call site
func (s *Slicer) enterCall(current, next *flow.Node) {
	for _, param := range next.Tracking() {
		if param == selfParam && current.CalleeKind == flow.Constructor {
			continue
		}
		for _, arg := range current.ParamToArg[param] {
			current.AddTracking(arg)
			current.AddSwitch(&flow.VarSwitch{ArgID: arg, ParamID: param, Value: current.Vars[arg]})
		}
	}
	s.logger.Debug("enter call", "frame", current.Frame.String(), "statement", current.Statement, "switches", len(current.Switches()))
}

// returnFrom records caller side changes of a call and seeds the callee exit tracking,
// it returns the callee exit node the walk continues from
func (s *Slicer) returnFrom(current, next *flow.Node) (*flow.Node, error) {
	if current.Next != next {
		return nil, flow.NewError(flow.BrokenChain, current, "call node is neither followed by %q nor stepping into it", next.Statement)
	}
	exit := current.ReturnedFrom
	if exit == nil {
		return nil, flow.NewError(flow.MissingCalleeFrame, current, "call node has no callee exit")
	}
	if exit.Kind != flow.Line || !exit.Returned {
		return nil, flow.NewError(flow.MissingReturn, exit, "callee exit is not a returning line")
	}
	current.SyncTracking(next)
	changes := current.RecordChanges(next)
	constructor := current.CalleeKind == flow.Constructor
	if constructor {
		exit.AddTracking(selfParam)
	}
	assigned := map[string]bool{}
	for _, name := range current.Assigned() {
		assigned[name] = true
	}
	for _, change := range changes {
		id := change.Identifier()
		switch {
		case current.HasArg(id):
			exit.AddTracking(current.ArgToParam[id]...)
		case assigned[id] && !constructor:
			exit.AddTracking(exit.Names()...)
			exit.MarkRelevantReturn()
		}
	}
	exit.RecordReturnChanges()
	s.logger.Debug("return from call", "frame", current.Frame.String(), "statement", current.Statement, "changes", len(changes), "exit", exit.Statement, "exitTracking", exit.Tracking())
	return exit, nil
}
