package export

// IRNode represents a node in the intermediate representation graph.
type IRNode struct {
	ID         string                 `json:"id" yaml:"id"`
	Type       string                 `json:"type" yaml:"type"`
	Properties map[string]interface{} `json:"properties" yaml:"properties"`
}

// IREdge represents an edge in the intermediate representation graph.
type IREdge struct {
	Source     string                 `json:"source" yaml:"source"`
	Target     string                 `json:"target" yaml:"target"`
	Type       string                 `json:"type" yaml:"type"`
	Properties map[string]interface{} `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// IRGraph holds the nodes and edges for the intermediate representation.
type IRGraph struct {
	Nodes []IRNode `json:"nodes" yaml:"nodes"`
	Edges []IREdge `json:"edges" yaml:"edges"`
}

// GraphExporter defines an interface to export an IRGraph to a storage backend.
type GraphExporter interface {
	Export(graph *IRGraph) error
}

// Edge types
const (
	EdgeNext         = "next"
	EdgeStepInto     = "stepInto"
	EdgeReturnedFrom = "returnedFrom"
	EdgeSwitch       = "switch"
)

// BuildGraph constructs an IRGraph from node records.
func BuildGraph(records []*Record) *IRGraph {
	graph := &IRGraph{}
	for _, record := range records {
		node := IRNode{
			ID:   record.ID,
			Type: record.Kind,
			Properties: map[string]interface{}{
				"frame":    record.Frame,
				"location": record.Location,
				"code":     record.Code,
			},
		}
		if record.Target {
			node.Properties["target"] = true
		}
		if len(record.Tracking) > 0 {
			node.Properties["tracking"] = record.Tracking
		}
		if len(record.Appearances) > 0 {
			node.Properties["appearances"] = record.Appearances
		}
		if len(record.Modifications) > 0 {
			node.Properties["modifications"] = record.Modifications
		}
		if record.RelevantReturn {
			node.Properties["relevantReturn"] = true
		}
		graph.Nodes = append(graph.Nodes, node)
		if record.Next != "" {
			graph.Edges = append(graph.Edges, IREdge{Source: record.ID, Target: record.Next, Type: EdgeNext})
		}
		if record.StepInto != "" {
			edge := IREdge{Source: record.ID, Target: record.StepInto, Type: EdgeStepInto}
			if len(record.Switches) > 0 {
				edge.Properties = map[string]interface{}{EdgeSwitch: record.Switches}
			}
			graph.Edges = append(graph.Edges, edge)
		}
		if record.ReturnedFrom != "" {
			graph.Edges = append(graph.Edges, IREdge{Source: record.ReturnedFrom, Target: record.ID, Type: EdgeReturnedFrom})
		}
	}
	return graph
}
