package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gnolang/tslin/internal/analysis/lattice"
	"github.com/gnolang/tslin/internal/analysis/shape"
	"github.com/gnolang/tslin/internal/ast"
)

func num(v float64) *ast.Literal { return &ast.Literal{Type: ast.LiteralNumber, Number: v} }
func str(v string) *ast.Literal  { return &ast.Literal{Type: ast.LiteralString, String: v} }
func ident(n string) *ast.Identifier {
	return &ast.Identifier{Name: n}
}

func bin(op string, l, r ast.Node) *ast.BinaryExpression {
	return &ast.BinaryExpression{Operator: op, Left: l, Right: r}
}

func unary(op string, arg ast.Node) *ast.UnaryExpression {
	return &ast.UnaryExpression{Operator: op, Argument: arg}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	reg := shape.NewRegistry()
	reg.Define(shape.Binding{Name: "s", Kind: lattice.String})
	reg.Define(shape.Binding{Name: "n", Kind: lattice.Number})
	reg.Define(shape.Binding{Name: "big", Kind: lattice.BigInt})
	in := New(reg)

	tests := []struct {
		name string
		expr ast.Node
		want lattice.ValueKind
	}{
		{"string literal", str("a"), lattice.String},
		{"number literal", num(1), lattice.Number},
		{"boolean literal", &ast.Literal{Type: ast.LiteralBoolean}, lattice.Boolean},
		{"bigint literal", &ast.Literal{Type: ast.LiteralBigInt, BigInt: "1"}, lattice.BigInt},
		{"null literal", &ast.Literal{Type: ast.LiteralNull}, lattice.Unknown},
		{"tracked identifier", ident("s"), lattice.String},
		{"untracked identifier", ident("x"), lattice.Unknown},
		{"arithmetic", bin("*", num(2), ident("n")), lattice.Number},
		{"arithmetic with unknown", bin("-", num(2), ident("x")), lattice.Unknown},
		{"number plus string", bin("+", num(2), str("a")), lattice.Unknown},
		{"string concat", bin("+", ident("s"), str("a")), lattice.String},
		{"bigint arithmetic", bin("**", ident("big"), ident("big")), lattice.BigInt},
		{"comparison", bin("<", ident("x"), ident("y")), lattice.Boolean},
		{"strict equality", bin("===", ident("x"), num(1)), lattice.Boolean},
		{"bitwise is unknown", bin("|", num(1), num(2)), lattice.Unknown},
		{"negation", unary("!", ident("x")), lattice.Boolean},
		{"unary minus", unary("-", num(3)), lattice.Number},
		{"unary plus on string", unary("+", str("3")), lattice.Unknown},
		{"typeof", unary("typeof", ident("x")), lattice.String},
		{"BigInt call", &ast.CallExpression{Callee: ident("BigInt"), Arguments: []ast.Node{num(1)}}, lattice.BigInt},
		{"other call", &ast.CallExpression{Callee: ident("f")}, lattice.Unknown},
		{"template", &ast.TemplateLiteral{}, lattice.String},
		{"member", &ast.MemberExpression{Object: ident("s"), Property: ident("length")}, lattice.Unknown},
		{"nil", nil, lattice.Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, in.KindOf(tt.expr))
		})
	}
}

func TestIs(t *testing.T) {
	t.Parallel()

	in := New(shape.NewRegistry())
	assert.True(t, in.Is(num(1), lattice.Number))
	assert.False(t, in.Is(num(1), lattice.String))
	assert.False(t, in.Is(ident("x"), lattice.Unknown), "unknown is never proven")
}
