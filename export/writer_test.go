package export

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/viant/varlinage/flow"
	"github.com/viant/varlinage/slicer"
	"github.com/viant/varlinage/trace"
	"gopkg.in/yaml.v3"
	"strings"
	"testing"
)

const mutationDocument = `version: v1.0.0
frames:
  - id: [0]
    records:
      - {kind: line, location: {file: main.py, start: 4}, statement: "lst = [1]", vars: {}}
      - kind: call
        location: {file: main.py, start: 5}
        statement: "f(lst)"
        vars: {lst: [1]}
        callee: {name: f, qualname: f, params: [x]}
        argValues: {x: [1]}
      - {kind: line, location: {file: main.py, start: 5}, statement: "f(lst)", vars: {lst: [1]}}
      - {kind: line, location: {file: main.py, start: 6}, statement: "register(lst)", vars: {lst: [1, 2]}}
  - id: [0, 0]
    records:
      - {kind: line, location: {file: main.py, start: 2}, statement: "x.append(2)", vars: {x: [1]}}
      - {kind: return, vars: {x: [1, 2]}}
`

func slicedFlow(t *testing.T) *flow.Flow {
	document, err := trace.Decode([]byte(mutationDocument))
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	tr, err := document.Trace()
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	f, err := flow.New().Build(context.Background(), tr)
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	_, err = slicer.New().Slice(f)
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	return f
}

func TestRecords(t *testing.T) {
	records, err := Records(slicedFlow(t))
	if !assert.NoError(t, err) {
		return
	}
	if !assert.Len(t, records, 4) {
		return
	}
	var codes []string
	for _, record := range records {
		codes = append(codes, record.Code)
	}
	assert.Equal(t, []string{"lst = [1]", "f(lst)", "x.append(2)", "register(lst)"}, codes)

	call := records[1]
	assert.Equal(t, "call", call.Kind)
	assert.Equal(t, "function", call.CalleeKind)
	assert.Equal(t, map[string][]string{"x": {"lst"}}, call.ParamToArg)
	assert.Equal(t, records[2].ID, call.StepInto)
	assert.Equal(t, records[2].ID, call.ReturnedFrom)
	assert.Equal(t, records[3].ID, call.Next)
	assert.Equal(t, records[0].ID, call.Prev)
	assert.Equal(t, call.ID, records[2].Prev)
	assert.Len(t, call.Switches, 1)
	assert.Len(t, call.Modifications, 1)

	assert.Equal(t, "(0, 0)", records[2].Frame)
	assert.Equal(t, []string{"x"}, records[2].Tracking)
	assert.True(t, records[3].Target)

	again, err := Records(slicedFlow(t))
	assert.NoError(t, err)
	for i := range again {
		assert.Equal(t, records[i].ID, again[i].ID)
	}
}

func TestWrite(t *testing.T) {
	var testCases = []struct {
		description string
		format      Format
		verify      func(t *testing.T, output string)
	}{
		{
			description: "json lines",
			format:      JSONLines,
			verify: func(t *testing.T, output string) {
				scanner := bufio.NewScanner(strings.NewReader(output))
				count := 0
				for scanner.Scan() {
					record := &Record{}
					assert.NoError(t, json.Unmarshal(scanner.Bytes(), record))
					assert.NotEmpty(t, record.ID)
					count++
				}
				assert.Equal(t, 4, count)
			},
		},
		{
			description: "yaml",
			format:      YAML,
			verify: func(t *testing.T, output string) {
				var records []*Record
				assert.NoError(t, yaml.Unmarshal([]byte(output), &records))
				assert.Len(t, records, 4)
				assert.Equal(t, "x.append(2)", records[2].Code)
			},
		},
		{
			description: "ir graph",
			format:      IR,
			verify: func(t *testing.T, output string) {
				graph := &IRGraph{}
				assert.NoError(t, json.Unmarshal([]byte(output), graph))
				assert.Len(t, graph.Nodes, 4)
				types := map[string]int{}
				for _, edge := range graph.Edges {
					types[edge.Type]++
				}
				assert.Equal(t, map[string]int{EdgeNext: 2, EdgeStepInto: 1, EdgeReturnedFrom: 1}, types)
			},
		},
		{
			description: "dot",
			format:      Graphviz,
			verify: func(t *testing.T, output string) {
				assert.True(t, strings.HasPrefix(output, "digraph flow {"))
				assert.Contains(t, output, "subgraph cluster_0")
				assert.Contains(t, output, "subgraph cluster_1")
				assert.Contains(t, output, `label="(0, 0)"`)
				assert.Contains(t, output, `xlabel="~lst lst->x"`)
			},
		},
	}

	f := slicedFlow(t)
	for _, testCase := range testCases {
		buffer := &bytes.Buffer{}
		err := Write(buffer, f, testCase.format)
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		testCase.verify(t, buffer.String())
	}
}

func TestParseFormat(t *testing.T) {
	var testCases = []struct {
		name      string
		expect    Format
		expectErr bool
	}{
		{name: "", expect: JSONLines},
		{name: "YAML", expect: YAML},
		{name: " dot ", expect: Graphviz},
		{name: "graph", expect: IR},
		{name: "svg", expectErr: true},
	}
	for _, testCase := range testCases {
		actual, err := ParseFormat(testCase.name)
		if testCase.expectErr {
			assert.Error(t, err, testCase.name)
			continue
		}
		assert.NoError(t, err, testCase.name)
		assert.Equal(t, testCase.expect, actual, testCase.name)
	}
}
