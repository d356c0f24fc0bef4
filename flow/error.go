package flow

import (
	"errors"
	"fmt"
	"github.com/viant/varlinage/frame"
)

// ErrorCode represents stable codes of structural failures
type ErrorCode string

const (
	// EmptyTrace indicates the trace has no root frame records
	EmptyTrace ErrorCode = "EMPTY_TRACE"
	// MissingCalleeFrame indicates a call without records of the called frame
	MissingCalleeFrame ErrorCode = "MISSING_CALLEE_FRAME"
	// MissingReturn indicates a callee frame that does not end with a returning line
	MissingReturn ErrorCode = "MISSING_RETURN"
	// AncestryMismatch indicates a callee frame that is not a child of the caller frame
	AncestryMismatch ErrorCode = "ANCESTRY_MISMATCH"
	// TargetNotFound indicates no sentinel call in the trace
	TargetNotFound ErrorCode = "TARGET_NOT_FOUND"
	// InvalidTarget indicates a sentinel call without a single identifier argument
	InvalidTarget ErrorCode = "INVALID_TARGET"
	// MalformedInlining indicates a synthetic binding without its call node
	MalformedInlining ErrorCode = "MALFORMED_INLINING"
	// BrokenChain indicates a node chain ending outside the root frame start
	BrokenChain ErrorCode = "BROKEN_CHAIN"
)

// Error represents a structural inconsistency of a trace or flow
type Error struct {
	Code    ErrorCode
	Frame   frame.ID
	Node    *Node
	Message string
	cause   error
}

func newError(code ErrorCode, frameID frame.ID, node *Node, message string, args ...interface{}) *Error {
	return &Error{Code: code, Frame: frameID, Node: node, Message: fmt.Sprintf(message, args...)}
}

// Error implements the error interface
func (e *Error) Error() string {
	location := ""
	if e.Node != nil {
		location = fmt.Sprintf(" at %v %q", e.Node.Location, e.Node.Statement)
	}
	if e.cause != nil {
		return fmt.Sprintf("[%s] frame %v%s: %s: %v", e.Code, e.Frame, location, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] frame %v%s: %s", e.Code, e.Frame, location, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// NewError creates a structural error for a node
func NewError(code ErrorCode, node *Node, message string, args ...interface{}) *Error {
	var frameID frame.ID
	if node != nil {
		frameID = node.Frame
	}
	return newError(code, frameID, node, message, args...)
}

// CodeOf returns the structural error code of err, or an empty code
func CodeOf(err error) ErrorCode {
	var flowErr *Error
	if errors.As(err, &flowErr) {
		return flowErr.Code
	}
	return ""
}
