package rules

import "github.com/gnolang/tslin/internal/ast"

// Operator precedence levels, loosest first.
const (
	precSequence = iota + 1
	precAssign   // assignment, arrow, conditional, yield
	precCoalesce
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational // also `as` and `satisfies`
	precShift
	precAdditive
	precMultiplicative
	precExponent
	precUnary // also await and `<T>x`
	precUpdate
	precMember // member access, calls, primaries
)

var binaryPrecedence = map[string]int{
	"|": precBitOr, "^": precBitXor, "&": precBitAnd,
	"==": precEquality, "!=": precEquality, "===": precEquality, "!==": precEquality,
	"<": precRelational, ">": precRelational, "<=": precRelational, ">=": precRelational,
	"instanceof": precRelational, "in": precRelational,
	"<<": precShift, ">>": precShift, ">>>": precShift,
	"+": precAdditive, "-": precAdditive,
	"*": precMultiplicative, "/": precMultiplicative, "%": precMultiplicative,
	"**": precExponent,
}

var logicalPrecedence = map[string]int{
	"??": precCoalesce,
	"||": precOr,
	"&&": precAnd,
}

var otherPrecedence = map[string]int{
	"SequenceExpression":    precSequence,
	"ConditionalExpression": precAssign,
	"YieldExpression":       precAssign,
	"TSSatisfiesExpression": precRelational,
	"AwaitExpression":       precUnary,
	"UpdateExpression":      precUpdate,
}

func precedence(n ast.Node) int {
	switch n := n.(type) {
	case *ast.BinaryExpression:
		if p, ok := binaryPrecedence[n.Operator]; ok {
			return p
		}
		return precRelational
	case *ast.LogicalExpression:
		return logicalPrecedence[n.Operator]
	case *ast.AssignmentExpression, *ast.ArrowFunctionExpression:
		return precAssign
	case *ast.TSAsExpression:
		return precRelational
	case *ast.UnaryExpression, *ast.TSTypeAssertion:
		return precUnary
	case *ast.Other:
		if p, ok := otherPrecedence[n.Type]; ok {
			return p
		}
	}
	return precMember
}

// needsParens reports whether inner, once its text replaces node, must be
// parenthesised to keep the surrounding expression's meaning. Ties count as
// needing parentheses; a redundant pair is harmless, a missing one is not.
func needsParens(node, inner ast.Node) bool {
	if parent, ok := node.Parent().(*ast.LogicalExpression); ok && mixesCoalesce(parent, inner) {
		return true
	}
	return needsParensAt(node, precedence(inner))
}

// needsParensAt is needsParens for replacement text of precedence p.
func needsParensAt(node ast.Node, p int) bool {
	if p == precSequence {
		return true
	}
	switch parent := node.Parent().(type) {
	case *ast.MemberExpression:
		return parent.Object == node && p < precMember
	case *ast.CallExpression:
		return parent.Callee == node && p < precMember
	case *ast.NewExpression:
		return parent.Callee == node && p < precMember
	case *ast.UnaryExpression, *ast.TSTypeAssertion:
		// `- -x` must not become `--x`
		return p <= precUnary
	case *ast.TSNonNullExpression:
		return p < precMember
	case *ast.TSAsExpression:
		return p <= precRelational
	case *ast.BinaryExpression:
		if parent.Operator == "**" && parent.Left == node {
			// `-x ** 2` is a syntax error
			return p <= precUnary
		}
		return p <= precedence(parent)
	case *ast.LogicalExpression:
		return p <= precedence(parent)
	case *ast.Other:
		switch parent.Type {
		case "ConditionalExpression":
			return p <= precAssign
		case "AwaitExpression", "TaggedTemplateExpression":
			return p < precMember
		}
	}
	return false
}

// mixesCoalesce reports a `??` next to `||` or `&&`, which the grammar
// rejects without parentheses.
func mixesCoalesce(parent *ast.LogicalExpression, inner ast.Node) bool {
	l, ok := inner.(*ast.LogicalExpression)
	if !ok {
		return false
	}
	return (parent.Operator == "??") != (l.Operator == "??")
}

// replacement renders the text that replaces node with inner.
func replacement(src *SourceCode, node, inner ast.Node) string {
	text := src.GetText(inner)
	if text == "" || !needsParens(node, inner) {
		return text
	}
	return "(" + text + ")"
}
