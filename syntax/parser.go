// Package syntax parses logical source lines of the traced program (Python) with tree-sitter
// and answers the syntactic questions the flow builder asks: referenced names, call sites,
// argument expressions and synthetic binding rewrites.
package syntax

import (
	"context"
	"fmt"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
	"strings"
)

// Parser parses statements, it is not safe for concurrent use
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a statement parser
func NewParser() *Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	return &Parser{parser: parser}
}

// Statement represents a parsed logical line
type Statement struct {
	Text   string
	Opaque bool // statement could not be parsed, it references nothing
	src    []byte
	root   *sitter.Node
	prefix int // bytes preceding Text in src
	suffix int // bytes following Text in src
}

// Parse parses a logical line. A dangling block opening line (e.g. "for x in y:") is
// completed with a no-op body first; when the text still does not parse the statement
// is returned as opaque.
func (p *Parser) Parse(ctx context.Context, text string) (*Statement, error) {
	text = strings.TrimSpace(text)
	for _, candidate := range candidates(text) {
		src := []byte(candidate.prefix + text + candidate.suffix)
		tree, err := p.parser.ParseCtx(ctx, nil, src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %q: %w", text, err)
		}
		root := tree.RootNode()
		if root == nil || root.HasError() {
			continue
		}
		return &Statement{Text: text, src: src, root: root, prefix: len(candidate.prefix), suffix: len(candidate.suffix)}, nil
	}
	return &Statement{Text: text, Opaque: true}, nil
}

type candidate struct {
	prefix string
	suffix string
}

// candidates returns parseable variants of a logical line, in preference order
func candidates(text string) []candidate {
	ret := []candidate{{}}
	if !strings.HasSuffix(text, ":") {
		return ret
	}
	ret = append(ret, candidate{suffix: " pass"})
	keyword := text
	if index := strings.IndexAny(text, " :("); index != -1 {
		keyword = text[:index]
	}
	switch keyword {
	case "elif", "else":
		ret = append(ret, candidate{prefix: "if True: pass\n", suffix: " pass"})
	case "except", "finally":
		ret = append(ret, candidate{prefix: "try: pass\n", suffix: " pass"})
	}
	return ret
}

// content returns source text of a node
func (s *Statement) content(n *sitter.Node) string {
	return n.Content(s.src)
}

// topLevel returns the single top level statement node, or nil
func (s *Statement) topLevel() *sitter.Node {
	if s.Opaque || s.root == nil {
		return nil
	}
	var ret *sitter.Node
	for i := 0; i < int(s.root.NamedChildCount()); i++ {
		child := s.root.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		if ret != nil {
			return nil
		}
		ret = child
	}
	return ret
}

// expression returns the expression of a top level expression statement, or nil
func (s *Statement) expression() *sitter.Node {
	stmt := s.topLevel()
	if stmt == nil || stmt.Type() != "expression_statement" || stmt.NamedChildCount() != 1 {
		return nil
	}
	return stmt.NamedChild(0)
}
