package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
	"sort"
)

// Names returns sorted unique identifiers referenced by the statement. Attribute
// names, keyword argument names, parameter names, definition names and imported
// module names are not references.
func (s *Statement) Names() []string {
	if s.Opaque || s.root == nil {
		return nil
	}
	return sortedSet(s.names(s.root, nil))
}

func (s *Statement) names(n *sitter.Node, into map[string]bool) map[string]bool {
	if into == nil {
		into = map[string]bool{}
	}
	if n == nil {
		return into
	}
	switch n.Type() {
	case "identifier":
		into[s.content(n)] = true
		return into
	case "attribute":
		return s.names(n.ChildByFieldName("object"), into)
	case "keyword_argument":
		return s.names(n.ChildByFieldName("value"), into)
	case "function_definition":
		s.parameterNames(n.ChildByFieldName("parameters"), into)
		return s.names(n.ChildByFieldName("return_type"), into)
	case "class_definition":
		return s.names(n.ChildByFieldName("superclasses"), into)
	case "lambda":
		s.parameterNames(n.ChildByFieldName("parameters"), into)
		return s.names(n.ChildByFieldName("body"), into)
	case "parameters", "lambda_parameters":
		s.parameterNames(n, into)
		return into
	case "import_statement", "import_from_statement", "future_import_statement",
		"global_statement", "nonlocal_statement", "comment":
		return into
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		s.names(n.NamedChild(i), into)
	}
	return into
}

// parameterNames collects names used by default values and annotations only
func (s *Statement) parameterNames(params *sitter.Node, into map[string]bool) {
	if params == nil {
		return
	}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		param := params.NamedChild(i)
		switch param.Type() {
		case "default_parameter":
			s.names(param.ChildByFieldName("value"), into)
		case "typed_parameter":
			s.names(param.ChildByFieldName("type"), into)
		case "typed_default_parameter":
			s.names(param.ChildByFieldName("type"), into)
			s.names(param.ChildByFieldName("value"), into)
		}
	}
}

func sortedSet(set map[string]bool) []string {
	ret := make([]string, 0, len(set))
	for k := range set {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
