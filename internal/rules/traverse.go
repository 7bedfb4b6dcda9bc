package rules

import (
	"sort"

	"github.com/gnolang/tslin/internal/ast"
)

// Traverse runs rs over the tree rooted at root and returns their reports.
// Each rule gets a fresh Context and Visitor; nodes are visited once, in
// pre-order, and for every node the rules are called in the order given.
func Traverse(root ast.Node, source *SourceCode, rs []Rule) []Report {
	var reports []Report

	visitors := make([]Visitor, len(rs))
	for i, r := range rs {
		ctx := &Context{rule: r.Name(), source: source, reports: &reports}
		visitors[i] = r.Create(ctx)
	}

	ast.Inspect(root, func(n ast.Node) bool {
		kind := n.Kind()
		for _, v := range visitors {
			if fn, ok := v[kind]; ok {
				fn(n)
			}
		}
		return true
	})

	return reports
}

// merge combines visitors; callbacks registered for the same kind run in
// argument order.
func merge(vs ...Visitor) Visitor {
	out := make(Visitor)
	for _, v := range vs {
		for kind, fn := range v {
			prev, ok := out[kind]
			if !ok {
				out[kind] = fn
				continue
			}
			next := fn
			out[kind] = func(n ast.Node) {
				prev(n)
				next(n)
			}
		}
	}
	return out
}

var registry = map[string]func() Rule{
	TypeAssertionRuleName:  func() Rule { return &TypeAssertionRule{} },
	TypeConversionRuleName: func() Rule { return &TypeConversionRule{} },
	BooleanCompareRuleName: func() Rule { return &BooleanLiteralCompareRule{} },
}

// All returns one instance of every rule, ordered by name.
func All() []Rule {
	names := Names()
	out := make([]Rule, 0, len(names))
	for _, name := range names {
		out = append(out, registry[name]())
	}
	return out
}

// ByName returns a fresh instance of the named rule.
func ByName(name string) (Rule, bool) {
	ctor, ok := registry[name]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// Names lists every rule name in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
