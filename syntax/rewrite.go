package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
	"regexp"
	"strconv"
	"strings"
)

var syntheticPattern = regexp.MustCompile(`^r\d+_$`)

// SyntheticName returns the synthetic binding identifier for a call index within a frame
func SyntheticName(index int) string {
	return "r" + strconv.Itoa(index) + "_"
}

// IsSynthetic returns true if name is a synthetic binding identifier
func IsSynthetic(name string) bool {
	return syntheticPattern.MatchString(name)
}

// Tokens returns the whitespace insensitive token form of the statement
func (s *Statement) Tokens() string {
	if s.Opaque || s.root == nil {
		return strings.Join(strings.Fields(s.Text), " ")
	}
	return strings.Join(s.tokens(s.root, nil), " ")
}

func (s *Statement) tokens(n *sitter.Node, into []string) []string {
	if n == nil {
		return into
	}
	count := int(n.ChildCount())
	if count == 0 {
		if !s.within(n) {
			return into
		}
		if text := s.content(n); text != "" {
			into = append(into, text)
		}
		return into
	}
	for i := 0; i < count; i++ {
		into = append(into, s.tokens(n.Child(i), nil)...)
	}
	return into
}

// ReplaceExpression replaces the first occurrence (pre-order) of expr with replacement.
// Occurrences are matched by token sequence, so formatting differences between
// expr and the statement text do not matter.
func (s *Statement) ReplaceExpression(expr *Statement, replacement string) (string, bool) {
	return s.replaceExpression(expr, replacement, false)
}

// ReplaceSubExpression is ReplaceExpression skipping an occurrence spanning the whole
// statement expression, e.g. f(a) within f(g(a)) but not within f(a) itself.
func (s *Statement) ReplaceSubExpression(expr *Statement, replacement string) (string, bool) {
	return s.replaceExpression(expr, replacement, true)
}

func (s *Statement) replaceExpression(expr *Statement, replacement string, proper bool) (string, bool) {
	if s.Opaque || expr.Opaque {
		if !strings.Contains(s.Text, expr.Text) || proper && s.Text == expr.Text {
			return s.Text, false
		}
		return strings.Replace(s.Text, expr.Text, replacement, 1), true
	}
	target := expr.expression()
	if target == nil {
		return s.Text, false
	}
	whole := s.expression()
	wanted := expr.Tokens()
	node := s.find(s.root, func(n *sitter.Node) bool {
		if n.Type() != target.Type() || !s.within(n) {
			return false
		}
		if proper && whole != nil && n.StartByte() == whole.StartByte() && n.EndByte() == whole.EndByte() {
			return false
		}
		return strings.Join(s.tokens(n, nil), " ") == wanted
	})
	if node == nil {
		return s.Text, false
	}
	start, end := int(node.StartByte())-s.prefix, int(node.EndByte())-s.prefix
	return s.Text[:start] + replacement + s.Text[end:], true
}

// BareSynthetic returns the synthetic identifier if the statement consists of it alone, e.g. r0_
func (s *Statement) BareSynthetic() (string, bool) {
	expr := s.expression()
	if expr == nil || expr.Type() != "identifier" {
		return "", false
	}
	name := s.content(expr)
	return name, IsSynthetic(name)
}

// AssignedSynthetic matches a plain assignment of a synthetic identifier, e.g. a = r0_ or a = b = r0_.
// Targets holds the assignment text preceding the final value, e.g. "a = b".
func (s *Statement) AssignedSynthetic() (targets string, name string, ok bool) {
	expr := s.expression()
	if expr == nil || expr.Type() != "assignment" {
		return "", "", false
	}
	value := expr
	for value.Type() == "assignment" {
		right := value.ChildByFieldName("right")
		if right == nil {
			return "", "", false
		}
		value = right
	}
	if value.Type() != "identifier" {
		return "", "", false
	}
	name = s.content(value)
	if !IsSynthetic(name) {
		return "", "", false
	}
	head := strings.TrimSpace(s.Text[:int(value.StartByte())-s.prefix])
	head = strings.TrimSpace(strings.TrimSuffix(head, "="))
	if head == "" {
		return "", "", false
	}
	return head, name, true
}

// within returns true if node lies within Text rather than the parse wrapper
func (s *Statement) within(n *sitter.Node) bool {
	return int(n.StartByte()) >= s.prefix && int(n.EndByte()) <= len(s.src)-s.suffix
}
