package trace

import (
	"github.com/viant/varlinage/frame"
	"strings"
)

// DefaultSentinel is the function name marking the slicing target, e.g. register(x)
const DefaultSentinel = "register"

// Recorder groups raw line/call/return events into a Trace.
//
// Repeated line events of the same logical line (a multi physical line statement)
// are coalesced, and a call record is kept before the pending line record of the
// logical line it is made from, so that a frame group always ends with a line.
type Recorder struct {
	trace    *Trace
	tracker  *frame.Tracker
	sentinel string
	skipped  int
}

// NewRecorder creates a recorder, sentinel calls are not descended into
func NewRecorder(sentinel string) *Recorder {
	if sentinel == "" {
		sentinel = DefaultSentinel
	}
	return &Recorder{trace: New(), tracker: frame.NewTracker(), sentinel: sentinel}
}

// Trace returns recorded trace
func (r *Recorder) Trace() *Trace {
	return r.trace
}

// Line records a line event, returns false if the event was coalesced or ignored
func (r *Recorder) Line(location Location, statement string, vars Vars) (bool, error) {
	if r.skipped > 0 {
		return false, nil
	}
	frameID := r.tracker.Line()
	if last := r.trace.Last(frameID); last != nil && last.Location.SameLine(location) {
		return false, nil
	}
	err := r.trace.Add(&Record{
		Frame:     frameID,
		Kind:      Line,
		Location:  location,
		Statement: strings.TrimSpace(statement),
		Vars:      vars,
	})
	return err == nil, err
}

// CallOption represents a call record option
type CallOption func(record *Record)

// WithParamToArg sets a binding computed by an external call site analyzer
func WithParamToArg(paramToArg map[string][]string) CallOption {
	return func(record *Record) {
		if paramToArg != nil {
			record.ParamToArg = paramToArg
		}
	}
}

// WithCalleeFrame sets the callee frame reported by the tracer instead of the tracked one
func WithCalleeFrame(id frame.ID) CallOption {
	return func(record *Record) {
		if len(id) > 0 {
			record.CalleeFrame = id
		}
	}
}

// Call records a call site in the caller frame and descends into the callee frame
func (r *Recorder) Call(location Location, callExpr string, vars Vars, callee *Callee, argValues Vars, options ...CallOption) (bool, error) {
	if r.skipped > 0 || IsSentinelCall(callExpr, r.sentinel) {
		r.skipped++
		return false, nil
	}
	calleeFrame := r.tracker.Callee()
	caller := r.tracker.Call()
	record := &Record{
		Frame:       caller,
		Kind:        Call,
		Location:    location,
		Statement:   strings.TrimSpace(callExpr),
		Vars:        vars,
		Callee:      callee,
		CalleeFrame: calleeFrame,
		ArgValues:   argValues,
	}
	for _, option := range options {
		option(record)
	}
	if last := r.trace.Last(caller); last != nil && last.Kind == Line {
		return true, r.trace.Insert(record)
	}
	return true, r.trace.Add(record)
}

// Return records callee state right before it returns and ascends to the caller frame
func (r *Recorder) Return(varsBeforeReturn Vars, returnValue interface{}) (bool, error) {
	if r.skipped > 0 {
		r.skipped--
		return false, nil
	}
	callee, err := r.tracker.Return()
	if err != nil {
		return false, err
	}
	err = r.trace.Add(&Record{
		Frame:            callee,
		Kind:             Return,
		VarsBeforeReturn: varsBeforeReturn,
		ReturnValue:      returnValue,
	})
	return err == nil, err
}

// IsSentinelCall returns true if expression calls the sentinel function, either
// directly or as an attribute, e.g. register(x) or varlinage.register(x)
func IsSentinelCall(expr, sentinel string) bool {
	expr = strings.TrimSpace(expr)
	open := strings.Index(expr, "(")
	if open <= 0 || !strings.HasSuffix(expr, ")") {
		return false
	}
	function := strings.TrimSpace(expr[:open])
	if index := strings.LastIndex(function, "."); index != -1 {
		function = function[index+1:]
	}
	return function == sentinel
}
