// Package trace defines the execution event records consumed by the flow builder.
package trace

import (
	"fmt"
	"github.com/viant/varlinage/frame"
	"strings"
)

// EventKind represents a kind of recorded execution event
type EventKind string

const (
	// Line is a logical source line about to execute
	Line EventKind = "line"
	// Call is a call site, recorded in the caller frame
	Call EventKind = "call"
	// Return carries the callee state right before it returns
	Return EventKind = "return"
)

// Vars maps identifiers to captured values. Values are snapshots, they can be
// scalars, lists or maps as decoded from the trace source.
type Vars map[string]interface{}

// Has returns true if identifier is present in the snapshot
func (v Vars) Has(id string) bool {
	_, ok := v[id]
	return ok
}

// Clone returns a shallow copy of vars
func (v Vars) Clone() Vars {
	ret := make(Vars, len(v)+1)
	for k, value := range v {
		ret[k] = value
	}
	return ret
}

// Location is a logical line range within a source file
type Location struct {
	File      string `yaml:"file" json:"file"`
	StartLine int    `yaml:"start" json:"start"`
	EndLine   int    `yaml:"end,omitempty" json:"end,omitempty"`
}

// End returns the last physical line of the logical line
func (l Location) End() int {
	if l.EndLine < l.StartLine {
		return l.StartLine
	}
	return l.EndLine
}

// SameLine returns true if both locations denote the same logical line
func (l Location) SameLine(other Location) bool {
	return l.File == other.File && l.StartLine == other.StartLine && l.End() == other.End()
}

func (l Location) String() string {
	if l.End() == l.StartLine {
		return fmt.Sprintf("%s:%d", l.File, l.StartLine)
	}
	return fmt.Sprintf("%s:%d-%d", l.File, l.StartLine, l.End())
}

// Callee describes the called function signature
type Callee struct {
	Name     string   `yaml:"name" json:"name"`
	Qualname string   `yaml:"qualname,omitempty" json:"qualname,omitempty"` // dotted definition path, e.g. MyClass.__init__ or main.<locals>.f
	Params   []string `yaml:"params,omitempty" json:"params,omitempty"`     // positional or keyword parameters, in declaration order
	VarArgs  string   `yaml:"varargs,omitempty" json:"varargs,omitempty"`   // name of *args parameter
	KwArgs   string   `yaml:"kwargs,omitempty" json:"kwargs,omitempty"`     // name of **kwargs parameter
}

// ClassName returns the enclosing class name if the callee is defined directly in a class body
func (c *Callee) ClassName() string {
	if c == nil || c.Qualname == "" {
		return ""
	}
	parts := strings.Split(c.Qualname, ".")
	if len(parts) < 2 {
		return ""
	}
	owner := parts[len(parts)-2]
	if owner == "<locals>" || strings.HasPrefix(owner, "<") {
		return ""
	}
	return owner
}

// Record represents one execution event
type Record struct {
	Frame     frame.ID  `yaml:"-" json:"-"`
	Kind      EventKind `yaml:"kind" json:"kind"`
	Location  Location  `yaml:"location" json:"location"`
	Statement string    `yaml:"statement,omitempty" json:"statement,omitempty"` // logical line text, or call expression for call records
	Vars      Vars      `yaml:"vars,omitempty" json:"vars,omitempty"`

	Callee      *Callee             `yaml:"callee,omitempty" json:"callee,omitempty"`
	CalleeFrame frame.ID            `yaml:"calleeFrame,omitempty" json:"calleeFrame,omitempty"`
	ArgValues   Vars                `yaml:"argValues,omitempty" json:"argValues,omitempty"`
	ParamToArg  map[string][]string `yaml:"paramToArg,omitempty" json:"paramToArg,omitempty"` // binding computed by an external call site analyzer

	VarsBeforeReturn Vars        `yaml:"varsBeforeReturn,omitempty" json:"varsBeforeReturn,omitempty"`
	ReturnValue      interface{} `yaml:"returnValue,omitempty" json:"returnValue,omitempty"`
	Returned         bool        `yaml:"returned,omitempty" json:"returned,omitempty"`
}

// Validate checks record level consistency
func (r *Record) Validate() error {
	switch r.Kind {
	case Line:
	case Call:
		if strings.TrimSpace(r.Statement) == "" {
			return fmt.Errorf("call record at %v in frame %v has no call expression", r.Location, r.Frame)
		}
	case Return:
	default:
		return fmt.Errorf("unsupported event kind %q at %v", r.Kind, r.Location)
	}
	return nil
}
