package flow

import "fmt"

// Kind represents a node kind
type Kind int

const (
	// Line is an executed logical line
	Line Kind = iota
	// Call is a call boundary within the caller frame
	Call
)

var kindNames = map[Kind]string{Line: "line", Call: "call"}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// CalleeKind represents how a callee binds its implicit self
type CalleeKind int

const (
	// Function binds no self
	Function CalleeKind = iota
	// Method binds self to the receiver expression
	Method
	// Constructor creates self, the caller passes nothing for it
	Constructor
)

const selfParam = "self"

var calleeKindNames = map[CalleeKind]string{Function: "function", Method: "method", Constructor: "constructor"}

func (k CalleeKind) String() string {
	if name, ok := calleeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("calleeKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler
func (k CalleeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
