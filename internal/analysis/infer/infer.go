// Package infer answers whether an expression is provably of a primitive
// kind, using literal shapes, operator rules and the kinds recorded for
// identifiers in a shape.Registry.
package infer

import (
	"github.com/gnolang/tslin/internal/analysis/lattice"
	"github.com/gnolang/tslin/internal/analysis/shape"
	"github.com/gnolang/tslin/internal/ast"
)

var arithmeticOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true, "**": true,
}

var comparisonOps = map[string]bool{
	"==": true, "===": true, "!=": true, "!==": true,
	"<": true, ">": true, "<=": true, ">=": true,
	"instanceof": true, "in": true,
}

// conversionCalls are the global conversion functions and the kind they
// always produce.
var conversionCalls = map[string]lattice.ValueKind{
	"String":  lattice.String,
	"Number":  lattice.Number,
	"Boolean": lattice.Boolean,
	"BigInt":  lattice.BigInt,
}

// Inferencer evaluates expression kinds against a registry.
type Inferencer struct {
	reg *shape.Registry
}

func New(reg *shape.Registry) *Inferencer {
	return &Inferencer{reg: reg}
}

// KindOf returns the proven primitive kind of expr, or lattice.Unknown.
func (in *Inferencer) KindOf(expr ast.Node) lattice.ValueKind {
	switch e := expr.(type) {
	case *ast.Literal:
		return lattice.FromLiteral(e)
	case *ast.Identifier:
		if in.reg == nil {
			return lattice.Unknown
		}
		return in.reg.KindOf(e.Name)
	case *ast.BinaryExpression:
		return in.binary(e)
	case *ast.UnaryExpression:
		return in.unary(e)
	case *ast.CallExpression:
		if name, ok := ast.IdentName(e.Callee); ok {
			if kind, ok := conversionCalls[name]; ok {
				return kind
			}
		}
	case *ast.TemplateLiteral:
		return lattice.String
	}
	return lattice.Unknown
}

// Is reports whether expr is provably of kind k.
func (in *Inferencer) Is(expr ast.Node, k lattice.ValueKind) bool {
	return k.Known() && in.KindOf(expr) == k
}

func (in *Inferencer) binary(e *ast.BinaryExpression) lattice.ValueKind {
	if comparisonOps[e.Operator] {
		return lattice.Boolean
	}
	if !arithmeticOps[e.Operator] {
		return lattice.Unknown
	}

	left, right := in.KindOf(e.Left), in.KindOf(e.Right)
	switch {
	case left == lattice.Number && right == lattice.Number:
		return lattice.Number
	case left == lattice.BigInt && right == lattice.BigInt:
		return lattice.BigInt
	case e.Operator == "+" && left == lattice.String && right == lattice.String:
		return lattice.String
	}
	return lattice.Unknown
}

func (in *Inferencer) unary(e *ast.UnaryExpression) lattice.ValueKind {
	switch e.Operator {
	case "!":
		return lattice.Boolean
	case "typeof":
		return lattice.String
	case "+":
		if in.KindOf(e.Argument) == lattice.Number {
			return lattice.Number
		}
	case "-":
		switch in.KindOf(e.Argument) {
		case lattice.Number:
			return lattice.Number
		case lattice.BigInt:
			return lattice.BigInt
		}
	}
	return lattice.Unknown
}
