package trace

import (
	"context"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/viant/varlinage/frame"
	"os"
	"path/filepath"
	"testing"
)

const groupedDocument = `version: v1.0.0
frames:
  - id: [0]
    records:
      - kind: line
        location: {file: main.py, start: 1}
        statement: lst = [1]
      - kind: call
        location: {file: main.py, start: 2}
        statement: f(lst)
        vars: {lst: [1]}
        callee: {name: f, qualname: f, params: [x]}
        argValues: {x: [1]}
      - kind: line
        location: {file: main.py, start: 2}
        statement: f(lst)
        vars: {lst: [1]}
      - kind: line
        location: {file: main.py, start: 3}
        statement: register(lst)
        vars: {lst: [1, 2]}
  - id: [0, 0]
    records:
      - kind: line
        location: {file: main.py, start: 5}
        statement: x.append(2)
        vars: {x: [1]}
      - kind: return
        vars: {x: [1, 2]}
`

const eventDocument = `{
  "version": "v1",
  "events": [
    {"event": "line", "location": {"file": "main.py", "start": 1}, "statement": "a = 1", "vars": {}},
    {"event": "line", "location": {"file": "main.py", "start": 2}, "statement": "register(a)", "vars": {"a": 1}},
    {"event": "call", "location": {"file": "main.py", "start": 2}, "statement": "register(a)", "vars": {"a": 1}}
  ]
}`

func TestLoader_Load(t *testing.T) {
	var testCases = []struct {
		description string
		name        string
		content     []byte
		frames      []frame.ID
		records     int
		expectErr   bool
	}{
		{description: "grouped yaml document", name: "trace.yaml", content: []byte(groupedDocument), frames: []frame.ID{{0}, {0, 0}}, records: 5},
		{description: "json event log", name: "trace.json", content: []byte(eventDocument), frames: []frame.ID{{0}}, records: 2},
		{description: "zstd compressed document", name: "trace.yaml.zst", content: compress(t, []byte(groupedDocument)), frames: []frame.ID{{0}, {0, 0}}, records: 5},
		{description: "unsupported version", name: "v2.yaml", content: []byte("version: v2.1.0\n"), expectErr: true},
		{description: "invalid version", name: "bad.yaml", content: []byte("version: latest\n"), expectErr: true},
	}

	dir := t.TempDir()
	loader := NewLoader(nil)
	for _, testCase := range testCases {
		location := filepath.Join(dir, testCase.name)
		if !assert.NoError(t, os.WriteFile(location, testCase.content, 0644), testCase.description) {
			continue
		}
		trace, _, err := loader.LoadTrace(context.Background(), location)
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.frames, trace.Frames(), testCase.description)
		assert.Equal(t, testCase.records, trace.Len(), testCase.description)
	}
}

func TestDocument_TraceFoldsReturn(t *testing.T) {
	doc, err := Decode([]byte(groupedDocument))
	if !assert.NoError(t, err) {
		return
	}
	trace, err := doc.Trace()
	if !assert.NoError(t, err) {
		return
	}
	callee := trace.Frame(frame.ID{0, 0})
	if assert.Len(t, callee, 1) {
		assert.True(t, callee[0].Returned)
		assert.Equal(t, Vars{"x": []interface{}{1, 2}}, callee[0].VarsBeforeReturn)
	}
	call := trace.Frame(frame.Root())[1]
	assert.Equal(t, Call, call.Kind)
	assert.Equal(t, []string{"x"}, call.Callee.Params)
}

func compress(t *testing.T, data []byte) []byte {
	encoder, err := zstd.NewWriter(nil)
	if !assert.NoError(t, err) {
		return nil
	}
	defer encoder.Close()
	return encoder.EncodeAll(data, nil)
}

const bindingDocument = `version: v1.0.0
events:
  - {event: line, location: {file: main.py, start: 4}, statement: "y = f(a + b)", vars: {a: 1, b: 2}}
  - event: call
    location: {file: main.py, start: 4}
    statement: "f(a + b)"
    vars: {a: 1, b: 2}
    callee: {name: f, qualname: f, params: [n]}
    argValues: {n: 3}
    paramToArg: {n: [b]}
    calleeFrame: [0, 0]
  - {event: line, location: {file: main.py, start: 2}, statement: "return n", vars: {n: 3}}
  - {event: return, vars: {n: 3}, returnValue: 3}
`

func TestDocument_TraceEventBinding(t *testing.T) {
	doc, err := Decode([]byte(bindingDocument))
	if !assert.NoError(t, err) {
		return
	}
	trace, err := doc.Trace()
	if !assert.NoError(t, err) {
		return
	}
	root := trace.Frame(frame.Root())
	if !assert.Len(t, root, 2) {
		return
	}
	call := root[0]
	assert.Equal(t, Call, call.Kind)
	assert.Equal(t, map[string][]string{"n": {"b"}}, call.ParamToArg)
	assert.Equal(t, frame.ID{0, 0}, call.CalleeFrame)
	assert.Len(t, trace.Frame(frame.ID{0, 0}), 1)
}
