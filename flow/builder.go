package flow

import (
	"context"
	"github.com/viant/varlinage/frame"
	"github.com/viant/varlinage/syntax"
	"github.com/viant/varlinage/trace"
	"io"
	"log/slog"
)

// DefaultSentinel is the default name of the call marking the slicing target
const DefaultSentinel = trace.DefaultSentinel

// Builder builds a flow from a trace, it is not safe for concurrent use
type Builder struct {
	logger   *slog.Logger
	sentinel string
	parser   *syntax.Parser
}

// New creates a builder
func New(options ...Option) *Builder {
	ret := &Builder{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		sentinel: DefaultSentinel,
	}
	for _, option := range options {
		option(ret)
	}
	if ret.parser == nil {
		ret.parser = syntax.NewParser()
	}
	return ret
}

// pending holds build state of a node
type pending struct {
	node      *Node
	record    *trace.Record
	callExpr  string // rewritten call expression of a call node
	synthetic string // synthetic identifier bound to a call node result
}

// build holds state of a single Build call
type build struct {
	*Builder
	ctx    context.Context
	groups map[string][]*pending
	nodes  []*Node
}

// Build links records into a flow: one node per record, call nodes stepping into
// callee frames, nested calls rewritten to synthetic bindings.
func (b *Builder) Build(ctx context.Context, tr *trace.Trace) (*Flow, error) {
	state := &build{Builder: b, ctx: ctx, groups: map[string][]*pending{}}
	if err := state.createNodes(tr); err != nil {
		return nil, err
	}
	root := frame.Root()
	rootGroup := state.groups[root.Key()]
	if len(rootGroup) == 0 {
		return nil, newError(EmptyTrace, root, nil, "no records for root frame")
	}
	for _, id := range tr.Frames() {
		if err := state.inline(id); err != nil {
			return nil, err
		}
	}
	if err := state.resolveNames(); err != nil {
		return nil, err
	}
	ret := &Flow{Start: rootGroup[0].node, nodes: state.nodes}
	if err := state.resolveTarget(ret); err != nil {
		return nil, err
	}
	b.logger.Info("flow built", "frames", len(tr.Frames()), "records", tr.Len(), "nodes", len(state.nodes), "target", ret.TargetID)
	return ret, nil
}

func (b *build) createNodes(tr *trace.Trace) error {
	seq := 0
	for _, id := range tr.Frames() {
		var prev *Node
		for _, record := range tr.Frame(id) {
			node := &Node{
				Frame:            id,
				Location:         record.Location,
				Statement:        record.Statement,
				Vars:             record.Vars.Clone(),
				VarsBeforeReturn: record.VarsBeforeReturn,
				ReturnValue:      record.ReturnValue,
				Returned:         record.Returned,
				Callee:           record.Callee,
				Seq:              seq,
			}
			seq++
			switch record.Kind {
			case trace.Line:
				node.Kind = Line
			case trace.Call:
				node.Kind = Call
				node.CalleeKind = calleeKindOf(record.Callee)
			default:
				return newError(BrokenChain, id, node, "unexpected %v record in frame group", record.Kind)
			}
			if prev != nil {
				prev.Next = node
				node.Prev = prev
			}
			prev = node
			b.groups[id.Key()] = append(b.groups[id.Key()], &pending{node: node, record: record})
			b.nodes = append(b.nodes, node)
		}
	}
	return nil
}

// inline links call nodes of a frame with their callee frames and rewrites nested calls
// of each logical line into synthetic bindings
func (b *build) inline(id frame.ID) error {
	group := b.groups[id.Key()]
	callIndex := 0
	for start := 0; start < len(group); {
		end := start + 1
		for end < len(group) && group[end].record.Location.SameLine(group[start].record.Location) {
			end++
		}
		if err := b.inlineLine(id, group[start:end], &callIndex); err != nil {
			return err
		}
		start = end
	}
	return nil
}

type replacement struct {
	expr *syntax.Statement
	name string
}

func (b *build) inlineLine(id frame.ID, line []*pending, callIndex *int) error {
	var replacements []*replacement
	synthetic := trace.Vars{}
	for _, item := range line {
		node := item.node
		for name, value := range synthetic {
			node.Vars[name] = value
		}
		text, err := b.replace(node.Statement, replacements, node.Kind == Call)
		if err != nil {
			return err
		}
		if node.Kind == Line {
			node.Statement = text
			continue
		}
		item.callExpr = text
		item.synthetic = syntax.SyntheticName(*callIndex)
		node.Statement = item.synthetic + " = " + text
		if err = b.stepInto(id, item, *callIndex); err != nil {
			return err
		}
		synthetic[item.synthetic] = node.ReturnedFrom.ReturnValue
		expr, err := b.parser.Parse(b.ctx, text)
		if err != nil {
			return err
		}
		b.bind(item, expr)
		replacements = append(replacements, &replacement{expr: expr, name: item.synthetic})
		*callIndex++
	}
	return b.cleanup(line)
}

// replace rewrites results of earlier calls of the line to their synthetic names. A call
// expression is never replaced as a whole, a repeated call (e.g. f(a) + f(a)) is its own call.
func (b *build) replace(text string, replacements []*replacement, callExpr bool) (string, error) {
	for _, candidate := range replacements {
		stmt, err := b.parser.Parse(b.ctx, text)
		if err != nil {
			return "", err
		}
		if callExpr {
			text, _ = stmt.ReplaceSubExpression(candidate.expr, candidate.name)
			continue
		}
		text, _ = stmt.ReplaceExpression(candidate.expr, candidate.name)
	}
	return text, nil
}

func (b *build) stepInto(id frame.ID, item *pending, callIndex int) error {
	node := item.node
	calleeID := id.Child(callIndex)
	if explicit := item.record.CalleeFrame; explicit != nil {
		if !explicit.IsChildOf(id) {
			return NewError(AncestryMismatch, node, "callee frame %v is not a child of %v", explicit, id)
		}
		calleeID = explicit
	}
	callee := b.groups[calleeID.Key()]
	if len(callee) == 0 {
		return NewError(MissingCalleeFrame, node, "no records for callee frame %v", calleeID)
	}
	exit := callee[len(callee)-1].node
	if exit.Kind != Line || !exit.Returned {
		return NewError(MissingReturn, node, "callee frame %v has no return record", calleeID)
	}
	node.StepInto = callee[0].node
	node.StepInto.Prev = node
	node.ReturnedFrom = exit
	return nil
}

func (b *build) bind(item *pending, expr *syntax.Statement) {
	node := item.node
	site := expr.Call()
	if site == nil && item.record.ParamToArg == nil {
		b.logger.Warn("call expression not recognized", "frame", node.Frame.String(), "location", node.Location.String(), "expr", item.callExpr)
	}
	binder := newBinder(site, item.record.Callee, node.CalleeKind, item.record.ArgValues)
	node.setBinding(binder.paramToArg(item.record.ParamToArg))
}

// cleanup removes a trailing node of a logical line that only binds a synthetic identifier,
// e.g. "r0_" or "a = r0_", folding it into the call node. Frame tail nodes carry return
// state and are kept.
func (b *build) cleanup(line []*pending) error {
	last := line[len(line)-1].node
	if last.Kind != Line || last.Prev == nil || len(line) < 2 {
		return nil
	}
	if last.Returned || last.VarsBeforeReturn != nil || last.Next == nil && !last.Frame.Equal(frame.Root()) {
		return nil
	}
	stmt, err := b.parser.Parse(b.ctx, last.Statement)
	if err != nil {
		return err
	}
	targets, name, ok := stmt.AssignedSynthetic()
	if !ok {
		if name, ok = stmt.BareSynthetic(); !ok {
			return nil
		}
	}
	call := b.callNode(line, last.Prev, name)
	if call == nil {
		return NewError(MalformedInlining, last, "%v is not bound by the preceding call node", name)
	}
	if targets == "" {
		call.node.Statement = call.callExpr
	} else {
		call.node.Statement = targets + " = " + call.callExpr
	}
	call.node.Next = last.Next
	if last.Next != nil {
		last.Next.Prev = call.node
	}
	last.Prev, last.Next = nil, nil
	b.remove(last)
	return nil
}

func (b *build) callNode(line []*pending, prev *Node, name string) *pending {
	for _, item := range line {
		if item.node == prev && prev.Kind == Call && item.synthetic == name {
			return item
		}
	}
	return nil
}

func (b *build) remove(node *Node) {
	for i, candidate := range b.nodes {
		if candidate == node {
			b.nodes = append(b.nodes[:i], b.nodes[i+1:]...)
			return
		}
	}
}

// resolveNames caches referenced identifiers of every node statement
func (b *build) resolveNames() error {
	for _, node := range b.nodes {
		stmt, err := b.parser.Parse(b.ctx, node.Statement)
		if err != nil {
			return err
		}
		if stmt.Opaque {
			b.logger.Warn("statement not parsed, treated as opaque", "frame", node.Frame.String(), "location", node.Location.String(), "statement", node.Statement)
		}
		node.names = stmt.Names()
	}
	return nil
}

// resolveTarget locates the first sentinel call in execution order
func (b *build) resolveTarget(flow *Flow) error {
	for _, node := range flow.Nodes() {
		if node.Kind != Line {
			continue
		}
		stmt, err := b.parser.Parse(b.ctx, node.Statement)
		if err != nil {
			return err
		}
		id, matched, err := stmt.SentinelArgument(b.sentinel)
		if !matched {
			continue
		}
		if err != nil {
			ret := NewError(InvalidTarget, node, "invalid %v call", b.sentinel)
			ret.cause = err
			return ret
		}
		node.target = true
		flow.Target = node
		flow.TargetID = id
		node.AddTracking(id)
		return nil
	}
	return newError(TargetNotFound, frame.Root(), nil, "no %v call found", b.sentinel)
}
