package trace

import (
	"fmt"
	"github.com/viant/varlinage/frame"
)

// Trace holds records grouped by frame, each group in execution order
type Trace struct {
	groups map[string][]*Record
	order  []frame.ID
}

// New creates an empty trace
func New() *Trace {
	return &Trace{groups: map[string][]*Record{}}
}

// Add appends a record to its frame group. Return records are folded into
// the last line record of the frame.
func (t *Trace) Add(record *Record) error {
	if record.Frame == nil {
		return fmt.Errorf("record at %v has no frame id", record.Location)
	}
	if err := record.Validate(); err != nil {
		return err
	}
	key := record.Frame.Key()
	group, ok := t.groups[key]
	if !ok {
		t.order = append(t.order, record.Frame)
	}
	if record.Kind == Return {
		if len(group) == 0 || group[len(group)-1].Kind != Line {
			return fmt.Errorf("return event in frame %v without preceding line", record.Frame)
		}
		last := group[len(group)-1]
		last.VarsBeforeReturn = record.VarsBeforeReturn
		if last.VarsBeforeReturn == nil {
			last.VarsBeforeReturn = record.Vars
		}
		last.ReturnValue = record.ReturnValue
		last.Returned = true
		return nil
	}
	t.groups[key] = append(group, record)
	return nil
}

// Insert places a record right before the last record of its frame group
func (t *Trace) Insert(record *Record) error {
	key := record.Frame.Key()
	group := t.groups[key]
	if len(group) == 0 {
		return t.Add(record)
	}
	if err := record.Validate(); err != nil {
		return err
	}
	group = append(group, nil)
	copy(group[len(group)-1:], group[len(group)-2:len(group)-1])
	group[len(group)-2] = record
	t.groups[key] = group
	return nil
}

// Frame returns records of the frame
func (t *Trace) Frame(id frame.ID) []*Record {
	return t.groups[id.Key()]
}

// Last returns the last record of the frame or nil
func (t *Trace) Last(id frame.ID) *Record {
	group := t.groups[id.Key()]
	if len(group) == 0 {
		return nil
	}
	return group[len(group)-1]
}

// Frames returns frame ids in order of first appearance
func (t *Trace) Frames() []frame.ID {
	return t.order
}

// Len returns total number of records
func (t *Trace) Len() int {
	ret := 0
	for _, group := range t.groups {
		ret += len(group)
	}
	return ret
}
