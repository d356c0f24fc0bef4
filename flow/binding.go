package flow

import (
	"github.com/viant/varlinage/syntax"
	"github.com/viant/varlinage/trace"
	"strings"
)

// calleeKindOf infers self binding from the callee definition path
func calleeKindOf(callee *trace.Callee) CalleeKind {
	if callee == nil || callee.ClassName() == "" {
		return Function
	}
	name := callee.Name
	if index := strings.LastIndex(callee.Qualname, "."); index != -1 {
		name = callee.Qualname[index+1:]
	}
	if name == "__init__" {
		return Constructor
	}
	if len(callee.Params) > 0 && callee.Params[0] == selfParam {
		return Method
	}
	return Function
}

// binder maps callee parameters to caller side identifiers of a call site
type binder struct {
	site      *syntax.CallSite
	callee    *trace.Callee
	kind      CalleeKind
	argValues trace.Vars
	binding   map[string]map[string]bool
}

func newBinder(site *syntax.CallSite, callee *trace.Callee, kind CalleeKind, argValues trace.Vars) *binder {
	return &binder{site: site, callee: callee, kind: kind, argValues: argValues, binding: map[string]map[string]bool{}}
}

// paramToArg returns the binding, a precomputed binding takes precedence over the call site
func (b *binder) paramToArg(precomputed map[string][]string) map[string][]string {
	if precomputed != nil {
		for param, args := range precomputed {
			b.bind(param, args...)
		}
	} else if b.callee != nil && b.site != nil {
		b.bindSite()
	}
	b.bindSelf()
	ret := make(map[string][]string, len(b.binding))
	for param, args := range b.binding {
		ret[param] = sortedKeys(args)
	}
	return ret
}

func (b *binder) bindSelf() {
	switch b.kind {
	case Method:
		if _, ok := b.binding[selfParam]; ok {
			return
		}
		var receiver []string
		if b.site != nil {
			receiver = b.site.ReceiverNames
		}
		b.bind(selfParam, receiver...)
	case Constructor:
		b.binding[selfParam] = map[string]bool{}
	}
}

func (b *binder) bindSite() {
	params := b.params()
	positional := b.positional(params)
	explicit := map[string]bool{}
	position := 0
	for _, arg := range b.site.Args {
		switch {
		case arg.Splat == syntax.ListSplat:
			for _, param := range positional[min(position, len(positional)):] {
				b.bind(param, arg.Names...)
			}
			if b.callee.VarArgs != "" {
				b.bind(b.callee.VarArgs, arg.Names...)
			}
		case arg.Splat == syntax.DictSplat:
			for _, param := range params {
				if !explicit[param] {
					b.bind(param, arg.Names...)
				}
			}
			if b.callee.KwArgs != "" {
				b.bind(b.callee.KwArgs, arg.Names...)
			}
		case arg.Keyword != "":
			if contains(params, arg.Keyword) {
				explicit[arg.Keyword] = true
				b.bind(arg.Keyword, arg.Names...)
			} else if b.callee.KwArgs != "" {
				b.bind(b.callee.KwArgs, arg.Names...)
			}
		default:
			if position < len(positional) {
				explicit[positional[position]] = true
				b.bind(positional[position], arg.Names...)
			}
			position++
		}
	}
}

// params returns declared parameters without the implicit self
func (b *binder) params() []string {
	params := b.callee.Params
	if b.kind != Function && len(params) > 0 && params[0] == selfParam {
		params = params[1:]
	}
	return params
}

// positional expands parameters with *args repeated by the number of captured values
func (b *binder) positional(params []string) []string {
	ret := append([]string{}, params...)
	if b.callee.VarArgs == "" {
		return ret
	}
	count := 0
	if values, ok := b.argValues[b.callee.VarArgs].([]interface{}); ok {
		count = len(values)
	} else {
		count = len(b.site.Positional()) - len(params)
	}
	for i := 0; i < count; i++ {
		ret = append(ret, b.callee.VarArgs)
	}
	return ret
}

func (b *binder) bind(param string, args ...string) {
	set, ok := b.binding[param]
	if !ok {
		set = map[string]bool{}
		b.binding[param] = set
	}
	for _, arg := range args {
		set[arg] = true
	}
}
