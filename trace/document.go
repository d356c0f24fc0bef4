package trace

import (
	"fmt"
	"github.com/viant/varlinage/frame"
	"golang.org/x/mod/semver"
)

// FormatVersion is the current trace document format version
const FormatVersion = "v1.0.0"

// Document is a serialized trace. It carries either records already grouped
// per frame, or a raw event log to be replayed through a Recorder.
type Document struct {
	Version  string        `yaml:"version"`
	Sentinel string        `yaml:"sentinel,omitempty"`
	Frames   []*FrameGroup `yaml:"frames,omitempty"`
	Events   []*Event      `yaml:"events,omitempty"`
}

// FrameGroup represents records of one frame
type FrameGroup struct {
	ID      frame.ID  `yaml:"id"`
	Records []*Record `yaml:"records"`
}

// Event represents one raw event of an event log
type Event struct {
	Event       EventKind   `yaml:"event"`
	Location    Location    `yaml:"location"`
	Statement   string      `yaml:"statement,omitempty"`
	Vars        Vars        `yaml:"vars,omitempty"`
	Callee      *Callee     `yaml:"callee,omitempty"`
	ArgValues   Vars        `yaml:"argValues,omitempty"`
	ReturnValue interface{} `yaml:"returnValue,omitempty"`
	// ParamToArg is a binding computed by an external call site analyzer
	ParamToArg  map[string][]string `yaml:"paramToArg,omitempty"`
	CalleeFrame frame.ID            `yaml:"calleeFrame,omitempty"`
}

// Validate checks document version compatibility
func (d *Document) Validate() error {
	version := d.Version
	if version == "" {
		version = FormatVersion
	}
	if !semver.IsValid(version) {
		return fmt.Errorf("invalid trace format version: %q", d.Version)
	}
	if semver.Major(version) != semver.Major(FormatVersion) {
		return fmt.Errorf("unsupported trace format version: %v, expected %v.x", version, semver.Major(FormatVersion))
	}
	if len(d.Frames) > 0 && len(d.Events) > 0 {
		return fmt.Errorf("trace document defines both frames and events")
	}
	return nil
}

// Trace builds a trace from the document
func (d *Document) Trace() (*Trace, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if len(d.Events) > 0 {
		return d.replay()
	}
	ret := New()
	for _, group := range d.Frames {
		if len(group.ID) == 0 {
			return nil, fmt.Errorf("frame group without id")
		}
		for _, record := range group.Records {
			record.Frame = group.ID
			if err := ret.Add(record); err != nil {
				return nil, err
			}
		}
	}
	return ret, nil
}

func (d *Document) replay() (*Trace, error) {
	recorder := NewRecorder(d.Sentinel)
	for i, event := range d.Events {
		var err error
		switch event.Event {
		case Line:
			_, err = recorder.Line(event.Location, event.Statement, event.Vars)
		case Call:
			_, err = recorder.Call(event.Location, event.Statement, event.Vars, event.Callee, event.ArgValues,
				WithParamToArg(event.ParamToArg), WithCalleeFrame(event.CalleeFrame))
		case Return:
			_, err = recorder.Return(event.Vars, event.ReturnValue)
		default:
			err = fmt.Errorf("unsupported event kind %q", event.Event)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to replay event #%d: %w", i, err)
		}
	}
	return recorder.Trace(), nil
}
