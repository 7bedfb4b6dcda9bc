package rules

import (
	"github.com/gnolang/tslin/internal/analysis/lattice"
	"github.com/gnolang/tslin/internal/ast"
)

const TypeConversionRuleName = "no-unnecessary-type-conversion"

// TypeConversionRule flags primitive coercions applied to values that
// already have the target kind.
type TypeConversionRule struct{}

func (*TypeConversionRule) Name() string { return TypeConversionRuleName }

func (*TypeConversionRule) Create(ctx *Context) Visitor {
	c := &conversionChecker{ctx: ctx, facts: newFacts()}
	return merge(c.declarations(), Visitor{
		ast.KindCallExpression:       func(n ast.Node) { c.checkCall(n.(*ast.CallExpression)) },
		ast.KindUnaryExpression:      func(n ast.Node) { c.checkUnary(n.(*ast.UnaryExpression)) },
		ast.KindBinaryExpression:     func(n ast.Node) { c.checkConcat(n.(*ast.BinaryExpression)) },
		ast.KindAssignmentExpression: func(n ast.Node) { c.checkConcatAssign(n.(*ast.AssignmentExpression)) },
	})
}

type conversion struct {
	kind    lattice.ValueKind
	message string
}

var conversions = map[string]conversion{
	"String":  {lattice.String, "Unnecessary String() conversion of string value"},
	"Number":  {lattice.Number, "Unnecessary Number() conversion of numeric value"},
	"Boolean": {lattice.Boolean, "Unnecessary Boolean() conversion of boolean value"},
	"BigInt":  {lattice.BigInt, "Unnecessary BigInt() conversion of BigInt value"},
}

type conversionChecker struct {
	*facts
	ctx *Context
}

func (c *conversionChecker) checkCall(call *ast.CallExpression) {
	switch callee := call.Callee.(type) {
	case *ast.Identifier:
		conv, ok := conversions[callee.Name]
		if !ok || len(call.Arguments) != 1 {
			return
		}
		arg := call.Arguments[0]
		if c.inf.Is(arg, conv.kind) {
			c.replace(call, arg, conv.message)
		}
	case *ast.MemberExpression:
		if callee.Computed || callee.Optional || len(call.Arguments) != 0 {
			return
		}
		if name, ok := ast.IdentName(callee.Property); !ok || name != "toString" {
			return
		}
		if c.inf.Is(callee.Object, lattice.String) {
			c.replace(call, callee.Object, "Unnecessary .toString() call on string value")
		}
	}
}

func (c *conversionChecker) checkUnary(u *ast.UnaryExpression) {
	switch u.Operator {
	case "+":
		if c.inf.Is(u.Argument, lattice.Number) {
			c.replace(u, u.Argument, "Unnecessary unary + operator on numeric value")
		}
	case "~":
		if inner, ok := doubled(u); ok && c.inf.Is(inner, lattice.Number) {
			c.replace(u, inner, "Unnecessary ~~ operator on numeric value")
		}
	case "!":
		if inner, ok := doubled(u); ok && c.inf.Is(inner, lattice.Boolean) {
			c.replace(u, inner, "Unnecessary !! operator on boolean value")
		}
	}
}

// doubled returns x for `op op x`.
func doubled(u *ast.UnaryExpression) (ast.Node, bool) {
	inner, ok := u.Argument.(*ast.UnaryExpression)
	if !ok || inner.Operator != u.Operator || inner.Argument == nil {
		return nil, false
	}
	return inner.Argument, true
}

func (c *conversionChecker) checkConcat(b *ast.BinaryExpression) {
	if b.Operator != "+" {
		return
	}
	const msg = "Unnecessary empty string concatenation"
	switch {
	case ast.IsEmptyString(b.Left) && c.inf.Is(b.Right, lattice.String):
		c.replace(b, b.Right, msg)
	case ast.IsEmptyString(b.Right) && c.inf.Is(b.Left, lattice.String):
		c.replace(b, b.Left, msg)
	}
}

// checkConcatAssign flags `s += ''`. As a statement it is dead code: it is
// removed from a statement list and becomes the empty statement where it is
// the sole body of an if or loop. Elsewhere its value is just `s`.
func (c *conversionChecker) checkConcatAssign(a *ast.AssignmentExpression) {
	if a.Operator != "+=" || !ast.IsEmptyString(a.Right) {
		return
	}
	if _, ok := a.Left.(*ast.Identifier); !ok || !c.inf.Is(a.Left, lattice.String) {
		return
	}

	const msg = "Unnecessary empty string concatenation assignment"
	if stmt, ok := a.Parent().(*ast.ExpressionStatement); ok {
		c.ctx.Report(Descriptor{
			Node:    a,
			Message: msg,
			Fix: func(f Fixer) Edit {
				if inStatementList(stmt) {
					return f.Remove(stmt)
				}
				return f.ReplaceText(stmt, ";")
			},
		})
		return
	}
	c.replace(a, a.Left, msg)
}

// inStatementList reports whether stmt sits in a list of statements, where
// dropping it leaves its neighbours' meaning intact.
func inStatementList(stmt ast.Node) bool {
	switch p := stmt.Parent().(type) {
	case *ast.Program:
		return true
	case *ast.Other:
		switch p.Type {
		case "BlockStatement", "StaticBlock", "SwitchCase":
			return true
		}
	}
	return false
}

func (c *conversionChecker) replace(node, inner ast.Node, message string) {
	c.ctx.Report(Descriptor{
		Node:    node,
		Message: message,
		Fix:     replaceWith(node, replacement(c.ctx.SourceCode(), node, inner)),
	})
}
