// Package export serializes a sliced flow: node records as JSON lines or YAML, an
// intermediate representation graph, or graphviz DOT.
package export

import (
	"github.com/viant/varlinage/flow"
)

// Record represents a serialized flow node
type Record struct {
	ID             string                  `yaml:"id" json:"id"`
	Frame          string                  `yaml:"frame" json:"frame"`
	Kind           string                  `yaml:"kind" json:"kind"`
	Location       string                  `yaml:"location" json:"location"`
	Code           string                  `yaml:"code" json:"code"`
	Prev           string                  `yaml:"prev,omitempty" json:"prev,omitempty"`
	Next           string                  `yaml:"next,omitempty" json:"next,omitempty"`
	StepInto       string                  `yaml:"stepInto,omitempty" json:"stepInto,omitempty"`
	ReturnedFrom   string                  `yaml:"returnedFrom,omitempty" json:"returnedFrom,omitempty"`
	Target         bool                    `yaml:"target,omitempty" json:"target,omitempty"`
	CalleeKind     string                  `yaml:"calleeKind,omitempty" json:"calleeKind,omitempty"`
	ParamToArg     map[string][]string     `yaml:"paramToArg,omitempty" json:"paramToArg,omitempty"`
	Tracking       []string                `yaml:"tracking,omitempty" json:"tracking,omitempty"`
	Appearances    []*flow.VarAppearance   `yaml:"appearances,omitempty" json:"appearances,omitempty"`
	Modifications  []*flow.VarModification `yaml:"modifications,omitempty" json:"modifications,omitempty"`
	Switches       []*flow.VarSwitch       `yaml:"switches,omitempty" json:"switches,omitempty"`
	RelevantReturn bool                    `yaml:"relevantReturn,omitempty" json:"relevantReturn,omitempty"`
}

// Records returns node records in execution order, callee nodes follow their call node
func Records(f *flow.Flow) ([]*Record, error) {
	var ret []*Record
	for _, node := range f.Nodes() {
		record, err := newRecord(node)
		if err != nil {
			return nil, err
		}
		ret = append(ret, record)
	}
	return ret, nil
}

func newRecord(node *flow.Node) (*Record, error) {
	ret := &Record{
		Frame:          node.Frame.String(),
		Kind:           node.Kind.String(),
		Location:       node.Location.String(),
		Code:           node.Statement,
		Target:         node.IsTarget(),
		Tracking:       node.Tracking(),
		Appearances:    node.Appearances(),
		Modifications:  node.Modifications(),
		Switches:       node.Switches(),
		RelevantReturn: node.RelevantReturn(),
	}
	if len(ret.Tracking) == 0 {
		ret.Tracking = nil
	}
	if node.IsCallSite() {
		ret.CalleeKind = node.CalleeKind.String()
		ret.ParamToArg = node.ParamToArg
	}
	var err error
	for _, item := range []struct {
		node *flow.Node
		dest *string
	}{
		{node, &ret.ID},
		{node.Prev, &ret.Prev},
		{node.Next, &ret.Next},
		{node.StepInto, &ret.StepInto},
		{node.ReturnedFrom, &ret.ReturnedFrom},
	} {
		if *item.dest, err = NodeID(item.node); err != nil {
			return nil, err
		}
	}
	return ret, nil
}
