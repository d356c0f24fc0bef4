package export

import (
	"encoding/json"
	"fmt"
	"github.com/viant/varlinage/flow"
	"gopkg.in/yaml.v3"
	"io"
	"strings"
)

// Format represents an output format
type Format string

const (
	// JSONLines writes one JSON node record per line
	JSONLines Format = "jsonl"
	// YAML writes a YAML list of node records
	YAML Format = "yaml"
	// IR writes the intermediate representation graph as JSON
	IR Format = "graph"
	// Graphviz writes a DOT digraph
	Graphviz Format = "dot"
)

// ParseFormat parses format name
func ParseFormat(name string) (Format, error) {
	switch format := Format(strings.ToLower(strings.TrimSpace(name))); format {
	case JSONLines, YAML, IR, Graphviz:
		return format, nil
	case "":
		return JSONLines, nil
	}
	return "", fmt.Errorf("unsupported output format: %q", name)
}

// Write serializes the flow in the given format
func Write(w io.Writer, f *flow.Flow, format Format) error {
	records, err := Records(f)
	if err != nil {
		return err
	}
	switch format {
	case JSONLines, "":
		encoder := json.NewEncoder(w)
		for _, record := range records {
			if err = encoder.Encode(record); err != nil {
				return fmt.Errorf("failed to encode node %v: %w", record.ID, err)
			}
		}
		return nil
	case YAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err = encoder.Encode(records); err != nil {
			return fmt.Errorf("failed to encode flow: %w", err)
		}
		return encoder.Close()
	case IR:
		return NewJSONExporter(w).Export(BuildGraph(records))
	case Graphviz:
		_, err = io.WriteString(w, DOT(records))
		return err
	}
	return fmt.Errorf("unsupported output format: %q", format)
}

// JSONExporter writes an IRGraph as indented JSON
type JSONExporter struct {
	w io.Writer
}

// Export implements GraphExporter
func (e *JSONExporter) Export(graph *IRGraph) error {
	encoder := json.NewEncoder(e.w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(graph); err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	return nil
}

// NewJSONExporter creates a graph exporter writing to w
func NewJSONExporter(w io.Writer) GraphExporter {
	return &JSONExporter{w: w}
}
