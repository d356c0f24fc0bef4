package syntax

import (
	"context"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestStatement_Names(t *testing.T) {
	var testCases = []struct {
		description  string
		text         string
		expectOpaque bool
		expect       []string
	}{
		{description: "assignment", text: "c = b + 1", expect: []string{"b", "c"}},
		{description: "call with keyword", text: "y = f(x, key=z)", expect: []string{"f", "x", "y", "z"}},
		{description: "attribute object only", text: "inst.count = other.value", expect: []string{"inst", "other"}},
		{description: "method call", text: "lst.append(2)", expect: []string{"lst"}},
		{description: "return", text: "return n + 1", expect: []string{"n"}},
		{description: "dangling for", text: "for item in items:", expect: []string{"item", "items"}},
		{description: "dangling elif", text: "elif a > b:", expect: []string{"a", "b"}},
		{description: "dangling except", text: "except ValueError as err:", expect: []string{"ValueError", "err"}},
		{description: "function definition", text: "def f(x, y=default, *args: T):", expect: []string{"T", "default"}},
		{description: "lambda", text: "g = lambda a, b=k: a + c", expect: []string{"a", "c", "g", "k"}},
		{description: "import", text: "import os", expect: []string{}},
		{description: "comprehension", text: "out = [v * w for v in values]", expect: []string{"out", "v", "values", "w"}},
		{description: "unparseable", text: "x = = 1", expectOpaque: true},
	}

	parser := NewParser()
	for _, testCase := range testCases {
		stmt, err := parser.Parse(context.Background(), testCase.text)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.EqualValues(t, testCase.expectOpaque, stmt.Opaque, testCase.description)
		if testCase.expectOpaque {
			assert.Empty(t, stmt.Names(), testCase.description)
			continue
		}
		assert.EqualValues(t, testCase.expect, stmt.Names(), testCase.description)
	}
}

func TestStatement_Call(t *testing.T) {
	var testCases = []struct {
		description    string
		text           string
		expectName     string
		expectReceiver string
		expectArgs     []Argument
	}{
		{
			description: "plain call",
			text:        "f(x, y + 1)",
			expectName:  "f",
			expectArgs: []Argument{
				{Text: "x", Names: []string{"x"}},
				{Text: "y + 1", Names: []string{"y"}},
			},
		},
		{
			description:    "method call with keyword and splats",
			text:           "inst.update(a, key=b, *rest, **opts)",
			expectName:     "update",
			expectReceiver: "inst",
			expectArgs: []Argument{
				{Text: "a", Names: []string{"a"}},
				{Keyword: "key", Text: "b", Names: []string{"b"}},
				{Splat: ListSplat, Text: "rest", Names: []string{"rest"}},
				{Splat: DictSplat, Text: "opts", Names: []string{"opts"}},
			},
		},
		{
			description: "outermost call of assignment",
			text:        "y = f(g(x))",
			expectName:  "f",
			expectArgs: []Argument{
				{Text: "g(x)", Names: []string{"g", "x"}},
			},
		},
	}

	parser := NewParser()
	for _, testCase := range testCases {
		stmt, err := parser.Parse(context.Background(), testCase.text)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		site := stmt.Call()
		if !assert.NotNil(t, site, testCase.description) {
			continue
		}
		assert.EqualValues(t, testCase.expectName, site.Name, testCase.description)
		assert.EqualValues(t, testCase.expectReceiver, site.Receiver, testCase.description)
		var actual []Argument
		for _, arg := range site.Args {
			actual = append(actual, *arg)
		}
		assert.EqualValues(t, testCase.expectArgs, actual, testCase.description)
	}
}

func TestStatement_SentinelArgument(t *testing.T) {
	var testCases = []struct {
		description   string
		text          string
		expectID      string
		expectMatched bool
		expectErr     bool
	}{
		{description: "register identifier", text: "register(y)", expectID: "y", expectMatched: true},
		{description: "qualified register", text: "cyberbrain.register(total)", expectID: "total", expectMatched: true},
		{description: "other call", text: "print(y)"},
		{description: "assignment is not a sentinel", text: "x = register(y)"},
		{description: "expression argument", text: "register(a + b)", expectMatched: true, expectErr: true},
		{description: "two arguments", text: "register(a, b)", expectMatched: true, expectErr: true},
	}

	parser := NewParser()
	for _, testCase := range testCases {
		stmt, err := parser.Parse(context.Background(), testCase.text)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		id, matched, err := stmt.SentinelArgument("register")
		assert.EqualValues(t, testCase.expectMatched, matched, testCase.description)
		if testCase.expectErr {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		assert.Nil(t, err, testCase.description)
		assert.EqualValues(t, testCase.expectID, id, testCase.description)
	}
}
