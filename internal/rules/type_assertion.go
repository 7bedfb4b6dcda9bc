package rules

import (
	"fmt"

	"github.com/gnolang/tslin/internal/analysis/lattice"
	"github.com/gnolang/tslin/internal/analysis/shape"
	"github.com/gnolang/tslin/internal/ast"
)

const TypeAssertionRuleName = "no-unnecessary-type-assertion"

// TypeAssertionRule flags `as` / `<T>` assertions and `!` non-null
// assertions that do not change the type of their operand.
type TypeAssertionRule struct{}

func (*TypeAssertionRule) Name() string { return TypeAssertionRuleName }

func (*TypeAssertionRule) Create(ctx *Context) Visitor {
	c := &assertionChecker{ctx: ctx, facts: newFacts()}
	return merge(c.declarations(), Visitor{
		ast.KindTSAsExpression: func(n ast.Node) {
			as := n.(*ast.TSAsExpression)
			c.checkAssertion(as, as.Expression, as.TypeAnnotation)
		},
		ast.KindTSTypeAssertion: func(n ast.Node) {
			ta := n.(*ast.TSTypeAssertion)
			c.checkAssertion(ta, ta.Expression, ta.TypeAnnotation)
		},
		ast.KindTSNonNullExpression: func(n ast.Node) {
			c.checkNonNull(n.(*ast.TSNonNullExpression))
		},
	})
}

type assertionChecker struct {
	*facts
	ctx *Context
}

// checkAssertion decides whether `expr as typ` is redundant.
func (c *assertionChecker) checkAssertion(node, expr, typ ast.Node) {
	if expr == nil {
		return
	}
	target := shape.FromType(typ)
	if target == nil {
		return
	}

	if shape.IsAny(target) {
		c.checkAnyCast(node, expr)
		return
	}

	// primitive target already proven for the operand
	if p, ok := c.reg.ResolveType(target).(shape.Primitive); ok {
		switch kind := lattice.FromKeyword(p.Keyword); kind {
		case lattice.String, lattice.Number, lattice.Boolean:
			if c.inf.Is(expr, kind) {
				c.report(node, expr, "Unnecessary type assertion")
				return
			}
		}
	}

	// cast to the type the binding is already declared with
	name, ok := ast.IdentName(expr)
	if !ok {
		return
	}
	castName, ok := shape.TypeName(target)
	if !ok {
		return
	}
	actual, ok := c.reg.TypeNameOf(name)
	if ok && shape.Equivalent(castName, actual) {
		c.report(node, expr, fmt.Sprintf("Unnecessary type assertion - '%s' is already type '%s'", name, actual))
	}
	// Anything else is left alone: narrowing from unknown before a
	// property access is load-bearing, and an untracked object gives no
	// evidence either way.
}

// checkAnyCast handles `(x as any).p`: redundant only when p is a known
// member of x.
func (c *assertionChecker) checkAnyCast(node, expr ast.Node) {
	member, ok := node.Parent().(*ast.MemberExpression)
	if !ok || member.Object != node || member.Computed {
		return
	}
	obj, ok := ast.IdentName(expr)
	if !ok {
		return
	}
	prop, ok := ast.IdentName(member.Property)
	if !ok {
		return
	}
	if c.reg.HasProperty(obj, prop) {
		c.report(node, expr, fmt.Sprintf("Unnecessary type assertion to 'any' - property '%s' exists on '%s'", prop, obj))
	}
}

func (c *assertionChecker) checkNonNull(node *ast.TSNonNullExpression) {
	expr := node.Expression
	if expr == nil {
		return
	}
	if c.definitelyNonNull(expr) {
		c.report(node, expr, "Unnecessary non-null assertion")
		return
	}

	name, ok := ast.IdentName(expr)
	if !ok {
		return
	}
	b, ok := c.reg.Lookup(name)
	if !ok || b.Declared == nil || b.Optional || c.reg.Nullable(b.Declared) {
		return
	}
	c.report(node, expr, fmt.Sprintf("Unnecessary non-null assertion - '%s' is not nullable", name))
}

func (c *assertionChecker) definitelyNonNull(expr ast.Node) bool {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Type != ast.LiteralNull
	case *ast.ArrayExpression, *ast.ObjectExpression, *ast.NewExpression, *ast.TemplateLiteral:
		return true
	case *ast.BinaryExpression:
		return e.Operator != "??"
	}
	return c.inf.Is(expr, lattice.Number)
}

// report flags node and proposes replacing it with the text of inner.
func (c *assertionChecker) report(node, inner ast.Node, message string) {
	c.ctx.Report(Descriptor{
		Node:    node,
		Message: message,
		Fix:     replaceWith(node, replacement(c.ctx.SourceCode(), node, inner)),
	})
}
