package export

import (
	"strconv"
	"strings"
)

// DOT renders node records as a graphviz digraph with one cluster per frame
func DOT(records []*Record) string {
	var frames []string
	byFrame := map[string][]*Record{}
	for _, record := range records {
		if _, ok := byFrame[record.Frame]; !ok {
			frames = append(frames, record.Frame)
		}
		byFrame[record.Frame] = append(byFrame[record.Frame], record)
	}
	builder := &strings.Builder{}
	builder.WriteString("digraph flow {\n\tforcelabels=true;\n")
	for i, frame := range frames {
		builder.WriteString("\tsubgraph cluster_" + strconv.Itoa(i) + " {\n")
		builder.WriteString("\t\tstyle=filled; color=lightgrey; label=" + strconv.Quote(frame) + ";\n")
		builder.WriteString("\t\tnode [style=filled, color=white];\n")
		for _, record := range byFrame[frame] {
			builder.WriteString("\t\t" + strconv.Quote(record.ID) + " [label=" + strconv.Quote(record.Code))
			if xlabel := changeLabel(record); xlabel != "" {
				builder.WriteString(", xlabel=" + strconv.Quote(xlabel))
			}
			if record.Target {
				builder.WriteString(", color=gold")
			}
			builder.WriteString("];\n")
		}
		builder.WriteString("\t}\n")
	}
	for _, record := range records {
		if record.Next != "" {
			builder.WriteString("\t" + strconv.Quote(record.ID) + " -> " + strconv.Quote(record.Next) + ";\n")
		}
		if record.StepInto != "" {
			builder.WriteString("\t" + strconv.Quote(record.ID) + " -> " + strconv.Quote(record.StepInto) + " [style=dashed];\n")
		}
		if record.ReturnedFrom != "" {
			builder.WriteString("\t" + strconv.Quote(record.ReturnedFrom) + " -> " + strconv.Quote(record.ID) + " [style=dotted];\n")
		}
	}
	builder.WriteString("}\n")
	return builder.String()
}

func changeLabel(record *Record) string {
	var parts []string
	for _, appearance := range record.Appearances {
		parts = append(parts, "+"+appearance.ID)
	}
	for _, modification := range record.Modifications {
		parts = append(parts, "~"+modification.ID)
	}
	for _, switched := range record.Switches {
		parts = append(parts, switched.ArgID+"->"+switched.ParamID)
	}
	return strings.Join(parts, " ")
}
