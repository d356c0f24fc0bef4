package flow

import (
	"github.com/stretchr/testify/assert"
	"math"
	"testing"
)

func TestHasDiff(t *testing.T) {
	var testCases = []struct {
		description string
		a           interface{}
		b           interface{}
		expect      bool
	}{
		{description: "equal scalars", a: 1, b: 1},
		{description: "numeric types", a: 1, b: 1.0},
		{description: "int widths", a: int64(3), b: uint8(3)},
		{description: "different scalars", a: 1, b: 2, expect: true},
		{description: "lists", a: []interface{}{1, 2}, b: []int{1, 2}},
		{description: "list grows", a: []interface{}{1}, b: []interface{}{1, 2}, expect: true},
		{description: "maps", a: map[string]interface{}{"count": 1}, b: map[interface{}]interface{}{"count": 1.0}},
		{description: "nested map change", a: map[string]interface{}{"count": []interface{}{1}}, b: map[string]interface{}{"count": []interface{}{2}}, expect: true},
		{description: "nil and value", a: nil, b: 0, expect: true},
		{description: "string and number", a: "1", b: 1, expect: true},
		{description: "large ints stay exact", a: int64(1 << 53), b: int64(1<<53 + 1), expect: true},
		{description: "large int and float", a: int64(1<<53 + 1), b: float64(1 << 53), expect: true},
		{description: "uint and int", a: uint64(math.MaxInt64) + 1, b: int64(math.MinInt64), expect: true},
		{description: "unchanged nan", a: math.NaN(), b: math.NaN()},
		{description: "nan in list", a: []interface{}{math.NaN()}, b: []float64{math.NaN()}},
		{description: "nan and number", a: math.NaN(), b: 1.0, expect: true},
		{description: "float widths", a: float32(1.5), b: 1.5},
		{description: "numeric and string keys", a: map[interface{}]interface{}{1: "a"}, b: map[string]interface{}{"1": "a"}, expect: true},
		{description: "numeric keys of different types", a: map[int]interface{}{1: "a"}, b: map[interface{}]interface{}{uint8(1): "a"}},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, HasDiff(testCase.a, testCase.b), testCase.description)
	}
}
