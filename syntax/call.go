package syntax

import (
	"fmt"
	sitter "github.com/smacker/go-tree-sitter"
	"strings"
)

// Splat represents argument unpacking
type Splat int

const (
	// NoSplat is a plain argument
	NoSplat Splat = iota
	// ListSplat is *expr
	ListSplat
	// DictSplat is **expr
	DictSplat
)

// Argument represents an argument expression at a call site
type Argument struct {
	Keyword string   // keyword name for name=value arguments
	Splat   Splat    // unpacking kind
	Text    string   // argument expression text
	Names   []string // identifiers referenced by the argument expression
}

// CallSite represents a call expression
type CallSite struct {
	Text     string
	Function string // called expression text, e.g. inst.increment
	Name     string // last segment of the called expression, e.g. increment
	Receiver string // object expression for attribute calls, e.g. inst
	// ReceiverNames are identifiers referenced by the receiver expression
	ReceiverNames []string
	Args          []*Argument
}

// Positional returns arguments without keyword or unpacking
func (c *CallSite) Positional() []*Argument {
	var ret []*Argument
	for _, arg := range c.Args {
		if arg.Keyword == "" && arg.Splat == NoSplat {
			ret = append(ret, arg)
		}
	}
	return ret
}

// Call returns the outermost call expression of the statement, or nil
func (s *Statement) Call() *CallSite {
	if s.Opaque || s.root == nil {
		return nil
	}
	node := s.find(s.root, func(n *sitter.Node) bool { return n.Type() == "call" })
	if node == nil {
		return nil
	}
	return s.callSite(node)
}

// SentinelArgument returns the identifier passed to a sentinel call statement,
// e.g. x for register(x). Matched reports whether the statement is a sentinel call at all.
func (s *Statement) SentinelArgument(sentinel string) (id string, matched bool, err error) {
	expr := s.expression()
	if expr == nil || expr.Type() != "call" {
		return "", false, nil
	}
	site := s.callSite(expr)
	if site.Name != sentinel {
		return "", false, nil
	}
	if len(site.Args) != 1 || site.Args[0].Keyword != "" || site.Args[0].Splat != NoSplat {
		return "", true, fmt.Errorf("%v expects a single identifier argument: %v", sentinel, s.Text)
	}
	if !IsIdentifier(site.Args[0].Text) {
		return "", true, fmt.Errorf("%v argument is not an identifier: %v", sentinel, s.Text)
	}
	return site.Args[0].Text, true, nil
}

func (s *Statement) callSite(node *sitter.Node) *CallSite {
	ret := &CallSite{Text: s.content(node)}
	if function := node.ChildByFieldName("function"); function != nil {
		ret.Function = s.content(function)
		ret.Name = ret.Function
		if function.Type() == "attribute" {
			if attr := function.ChildByFieldName("attribute"); attr != nil {
				ret.Name = s.content(attr)
			}
			if object := function.ChildByFieldName("object"); object != nil {
				ret.Receiver = s.content(object)
				ret.ReceiverNames = sortedSet(s.names(object, nil))
			}
		}
	}
	args := node.ChildByFieldName("arguments")
	if args == nil {
		return ret
	}
	if args.Type() == "generator_expression" {
		ret.Args = append(ret.Args, s.argument(args))
		return ret
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		child := args.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		ret.Args = append(ret.Args, s.argument(child))
	}
	return ret
}

func (s *Statement) argument(node *sitter.Node) *Argument {
	ret := &Argument{Text: s.content(node), Names: sortedSet(s.names(node, nil))}
	switch node.Type() {
	case "keyword_argument":
		if name := node.ChildByFieldName("name"); name != nil {
			ret.Keyword = s.content(name)
		}
		if value := node.ChildByFieldName("value"); value != nil {
			ret.Text = s.content(value)
		}
	case "list_splat":
		ret.Splat = ListSplat
		ret.Text = strings.TrimSpace(strings.TrimPrefix(ret.Text, "*"))
	case "dictionary_splat":
		ret.Splat = DictSplat
		ret.Text = strings.TrimSpace(strings.TrimPrefix(ret.Text, "**"))
	}
	return ret
}

// find returns the first node in pre-order matching the predicate
func (s *Statement) find(n *sitter.Node, match func(n *sitter.Node) bool) *sitter.Node {
	if n == nil {
		return nil
	}
	if match(n) {
		return n
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if ret := s.find(n.NamedChild(i), match); ret != nil {
			return ret
		}
	}
	return nil
}

// IsIdentifier returns true if text is a plain identifier
func IsIdentifier(text string) bool {
	if text == "" {
		return false
	}
	for i, r := range text {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		case r > 127:
		default:
			return false
		}
	}
	return true
}
