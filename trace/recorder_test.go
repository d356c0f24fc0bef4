package trace

import (
	"github.com/stretchr/testify/assert"
	"github.com/viant/varlinage/frame"
	"testing"
)

func TestRecorder(t *testing.T) {
	// def f(x, y):
	//     return x + y
	// x = 1
	// y = f(x, f(1, 1))
	// register(y)
	recorder := NewRecorder("")
	loc := func(line int) Location { return Location{File: "main.py", StartLine: line, EndLine: line} }
	fCallee := &Callee{Name: "f", Qualname: "f", Params: []string{"x", "y"}}

	steps := []func() (bool, error){
		func() (bool, error) { return recorder.Line(loc(3), "x = 1", Vars{}) },
		func() (bool, error) { return recorder.Line(loc(4), "y = f(x, f(1, 1))", Vars{"x": 1}) },
		func() (bool, error) {
			return recorder.Call(loc(4), "f(1, 1)", Vars{"x": 1}, fCallee, Vars{"x": 1, "y": 1})
		},
		func() (bool, error) { return recorder.Line(loc(2), "return x + y", Vars{"x": 1, "y": 1}) },
		func() (bool, error) { return recorder.Return(Vars{"x": 1, "y": 1}, 2) },
		func() (bool, error) {
			return recorder.Call(loc(4), "f(x, f(1, 1))", Vars{"x": 1}, fCallee, Vars{"x": 1, "y": 2})
		},
		func() (bool, error) { return recorder.Line(loc(2), "return x + y", Vars{"x": 1, "y": 2}) },
		func() (bool, error) { return recorder.Return(Vars{"x": 1, "y": 2}, 3) },
		func() (bool, error) { return recorder.Line(loc(5), "register(y)", Vars{"x": 1, "y": 3}) },
		func() (bool, error) { return recorder.Call(loc(5), "register(y)", Vars{"x": 1, "y": 3}, nil, nil) },
		func() (bool, error) { return recorder.Line(loc(10), "pass", Vars{}) },
		func() (bool, error) { return recorder.Return(Vars{}, nil) },
	}
	var recorded []bool
	for _, step := range steps {
		ok, err := step()
		if !assert.NoError(t, err) {
			return
		}
		recorded = append(recorded, ok)
	}
	assert.Equal(t, []bool{true, true, true, true, true, true, true, true, true, false, false, false}, recorded)

	trace := recorder.Trace()
	root := trace.Frame(frame.Root())
	var statements []string
	var kinds []EventKind
	for _, record := range root {
		statements = append(statements, record.Statement)
		kinds = append(kinds, record.Kind)
	}
	assert.Equal(t, []string{"x = 1", "f(1, 1)", "f(x, f(1, 1))", "y = f(x, f(1, 1))", "register(y)"}, statements)
	assert.Equal(t, []EventKind{Line, Call, Call, Line, Line}, kinds)
	assert.Equal(t, frame.ID{0, 0}, root[1].CalleeFrame)
	assert.Equal(t, frame.ID{0, 1}, root[2].CalleeFrame)

	first := trace.Frame(frame.ID{0, 0})
	if assert.Len(t, first, 1) {
		assert.True(t, first[0].Returned)
		assert.Equal(t, 2, first[0].ReturnValue)
		assert.Equal(t, Vars{"x": 1, "y": 1}, first[0].VarsBeforeReturn)
	}
	assert.Len(t, trace.Frame(frame.ID{0, 1}), 1)
	assert.Equal(t, 7, trace.Len())
}

func TestRecorder_CoalescesLogicalLine(t *testing.T) {
	recorder := NewRecorder("")
	multi := Location{File: "main.py", StartLine: 3, EndLine: 6}
	ok, err := recorder.Line(multi, "y = {'a': 1, 'b': 2}", Vars{})
	assert.NoError(t, err)
	assert.True(t, ok)
	ok, err = recorder.Line(multi, "y = {'a': 1, 'b': 2}", Vars{})
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, recorder.Trace().Len())
}

func TestRecorder_ReturnWithoutLine(t *testing.T) {
	recorder := NewRecorder("")
	_, err := recorder.Call(Location{File: "main.py", StartLine: 1}, "f()", Vars{}, &Callee{Name: "f"}, nil)
	assert.NoError(t, err)
	_, err = recorder.Return(Vars{}, nil)
	assert.Error(t, err)
}

func TestRecorder_CallOptions(t *testing.T) {
	var testCases = []struct {
		description       string
		options           []CallOption
		expectParamToArg  map[string][]string
		expectCalleeFrame frame.ID
	}{
		{description: "tracked callee frame", expectCalleeFrame: frame.ID{0, 0}},
		{
			description:       "external binding",
			options:           []CallOption{WithParamToArg(map[string][]string{"n": {"b"}}), WithCalleeFrame(frame.ID{0, 3})},
			expectParamToArg:  map[string][]string{"n": {"b"}},
			expectCalleeFrame: frame.ID{0, 3},
		},
		{
			description:       "empty options are ignored",
			options:           []CallOption{WithParamToArg(nil), WithCalleeFrame(nil)},
			expectCalleeFrame: frame.ID{0, 0},
		},
	}
	for _, testCase := range testCases {
		recorder := NewRecorder("")
		_, err := recorder.Call(Location{File: "main.py", StartLine: 1}, "f(a + b)", Vars{"a": 1, "b": 2}, &Callee{Name: "f", Qualname: "f", Params: []string{"n"}}, nil, testCase.options...)
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		record := recorder.Trace().Last(frame.Root())
		if !assert.NotNil(t, record, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expectParamToArg, record.ParamToArg, testCase.description)
		assert.Equal(t, testCase.expectCalleeFrame, record.CalleeFrame, testCase.description)
	}
}

func TestIsSentinelCall(t *testing.T) {
	var testCases = []struct {
		description string
		expr        string
		expect      bool
	}{
		{description: "plain call", expr: "register(x)", expect: true},
		{description: "attribute call", expr: "varlinage.register(x)", expect: true},
		{description: "other call", expr: "f(x)", expect: false},
		{description: "not a call", expr: "register", expect: false},
		{description: "prefix only", expr: "registered(x)", expect: false},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, IsSentinelCall(testCase.expr, DefaultSentinel), testCase.description)
	}
}
