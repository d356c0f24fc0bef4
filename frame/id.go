// Package frame identifies activation records within one traced execution.
package frame

import (
	"fmt"
	"strconv"
	"strings"
)

// ID is a path of child indices from the root frame, e.g. (0,) is the root frame,
// (0, 1) is the second call made from the root frame.
//
// Consider:
//
//	def f(): g()
//	def g(): pass
//	f()
//	f()
//
// f is called twice from (0,) giving (0, 0) and (0, 1); g gets (0, 0, 0) and (0, 1, 0).
type ID []int

// Root returns the conventional id of the outermost frame.
func Root() ID {
	return ID{0}
}

// Depth returns path length, 1 for the root frame
func (i ID) Depth() int {
	return len(i)
}

// Parent returns the parent frame id, nil for the root frame
func (i ID) Parent() ID {
	if len(i) <= 1 {
		return nil
	}
	return append(ID{}, i[:len(i)-1]...)
}

// Child returns the id of the index-th call made from this frame
func (i ID) Child(index int) ID {
	child := make(ID, len(i)+1)
	copy(child, i)
	child[len(i)] = index
	return child
}

// Equal returns true if both ids denote the same frame
func (i ID) Equal(other ID) bool {
	if len(i) != len(other) {
		return false
	}
	for k := range i {
		if i[k] != other[k] {
			return false
		}
	}
	return true
}

// IsAncestorOf returns true if i is a strict path prefix of other
func (i ID) IsAncestorOf(other ID) bool {
	if i.Depth() >= other.Depth() {
		return false
	}
	return i.Equal(other[:i.Depth()])
}

// IsParentOf returns true if other is a direct child of i
func (i ID) IsParentOf(other ID) bool {
	return other.Depth() == i.Depth()+1 && i.IsAncestorOf(other)
}

// IsChildOf returns true if i is a direct child of other
func (i ID) IsChildOf(other ID) bool {
	return other.IsParentOf(i)
}

// Key returns a comparable representation usable as a map key
func (i ID) Key() string {
	parts := make([]string, len(i))
	for k, v := range i {
		parts[k] = strconv.Itoa(v)
	}
	return strings.Join(parts, ".")
}

// String returns tuple representation, e.g. (0, 1)
func (i ID) String() string {
	if len(i) == 1 {
		return fmt.Sprintf("(%d,)", i[0])
	}
	parts := make([]string, len(i))
	for k, v := range i {
		parts[k] = strconv.Itoa(v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
