package rules

import (
	"github.com/gnolang/tslin/internal/analysis/shape"
	"github.com/gnolang/tslin/internal/ast"
)

const BooleanCompareRuleName = "no-unnecessary-boolean-literal-compare"

// BooleanLiteralCompareRule flags `x === true` and friends when x is
// declared exactly `boolean`. A union containing boolean is left alone,
// comparing it against a literal can be meaningful.
type BooleanLiteralCompareRule struct{}

func (*BooleanLiteralCompareRule) Name() string { return BooleanCompareRuleName }

func (*BooleanLiteralCompareRule) Create(ctx *Context) Visitor {
	c := &booleanCompareChecker{ctx: ctx, facts: newFacts()}
	return merge(c.declarations(), Visitor{
		ast.KindBinaryExpression: func(n ast.Node) { c.check(n.(*ast.BinaryExpression)) },
	})
}

type booleanCompareChecker struct {
	*facts
	ctx *Context
}

func (c *booleanCompareChecker) check(b *ast.BinaryExpression) {
	var equality bool
	switch b.Operator {
	case "===", "==":
		equality = true
	case "!==", "!=":
		equality = false
	default:
		return
	}

	literal, other := b.Right, b.Left
	value, ok := ast.BoolLiteral(literal)
	if !ok {
		literal, other = b.Left, b.Right
		if value, ok = ast.BoolLiteral(literal); !ok {
			return
		}
	}

	name, ok := ast.IdentName(other)
	if !ok || !c.strictlyBoolean(name) {
		return
	}
	text := c.ctx.SourceCode().GetText(other)

	// x === true -> x, x !== true -> !x, x === false -> !x, x !== false -> x
	negate := equality != value
	var fixed, message string
	switch {
	case value && !negate:
		message = "Unnecessary comparison of boolean with 'true'. Use the variable directly."
	case value && negate:
		message = "Unnecessary comparison of boolean with 'true'. Use negation instead."
	case !value && negate:
		message = "Unnecessary comparison of boolean with 'false'. Use negation instead."
	default:
		message = "Unnecessary comparison of boolean with 'false'. Use the variable directly."
	}

	var fix func(Fixer) Edit
	if text != "" {
		fixed = text
		if negate {
			fixed = "!" + text
			if needsParensAt(b, precUnary) {
				fixed = "(" + fixed + ")"
			}
		}
		fix = replaceWith(b, fixed)
	}
	c.ctx.Report(Descriptor{Node: b, Message: message, Fix: fix})
}

// strictlyBoolean reports whether name is declared exactly `boolean`.
// Optional parameters may be undefined and do not qualify.
func (c *booleanCompareChecker) strictlyBoolean(name string) bool {
	b, ok := c.reg.Lookup(name)
	if !ok || b.Optional {
		return false
	}
	return shape.IsKeyword(b.Declared, "boolean")
}
