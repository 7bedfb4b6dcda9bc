package rules

import (
	"strconv"
	"testing"

	"github.com/gnolang/tslin/internal/ast"
)

// fixture builds trees whose spans point into text, so GetText and the
// produced fixes behave as they would on decoded input.
type fixture struct {
	t    *testing.T
	text string
}

func newFixture(t *testing.T, text string) *fixture {
	t.Helper()
	return &fixture{t: t, text: text}
}

func isWordByte(b byte) bool {
	return b == '_' || b == '$' ||
		'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z' || '0' <= b && b <= '9'
}

// at returns the span of the n-th (0-based) occurrence of sub that is not
// part of a longer identifier.
func (f *fixture) at(sub string, n int) ast.Span {
	f.t.Helper()
	for i := 0; i+len(sub) <= len(f.text); i++ {
		if f.text[i:i+len(sub)] != sub {
			continue
		}
		end := i + len(sub)
		if isWordByte(sub[0]) && i > 0 && isWordByte(f.text[i-1]) {
			continue
		}
		if isWordByte(sub[len(sub)-1]) && end < len(f.text) && isWordByte(f.text[end]) {
			continue
		}
		if n == 0 {
			return ast.Span{Start: i, End: end}
		}
		n--
	}
	f.t.Fatalf("%q not found in %q", sub, f.text)
	return ast.Span{}
}

func base(sp ast.Span) ast.Base { return ast.Base{Range: sp} }

func (f *fixture) ident(name string, n int) *ast.Identifier {
	return &ast.Identifier{Base: base(f.at(name, n)), Name: name}
}

// typedIdent is `name: T` where T is given as a type node.
func (f *fixture) typedIdent(decl string, name string, typ ast.Node) *ast.Identifier {
	sp := f.at(decl, 0)
	return &ast.Identifier{
		Base:           base(sp),
		Name:           name,
		TypeAnnotation: &ast.TSTypeAnnotation{Base: base(typ.Span()), TypeAnnotation: typ},
	}
}

func (f *fixture) keyword(kw string, n int) *ast.TSKeyword {
	return &ast.TSKeyword{Base: base(f.at(kw, n)), Keyword: kw}
}

func (f *fixture) typeRef(name string, n int) *ast.TSTypeReference {
	id := f.ident(name, n)
	return &ast.TSTypeReference{Base: base(id.Range), TypeName: id}
}

// str is the string literal written as raw, e.g. `"a"`.
func (f *fixture) str(raw string, n int) *ast.Literal {
	v, err := strconv.Unquote(raw)
	if err != nil {
		v = raw[1 : len(raw)-1]
	}
	return &ast.Literal{Base: base(f.at(raw, n)), Type: ast.LiteralString, String: v, Raw: raw}
}

func (f *fixture) num(raw string, n int) *ast.Literal {
	v, _ := strconv.ParseFloat(raw, 64)
	return &ast.Literal{Base: base(f.at(raw, n)), Type: ast.LiteralNumber, Number: v, Raw: raw}
}

func (f *fixture) boolean(raw string, n int) *ast.Literal {
	return &ast.Literal{Base: base(f.at(raw, n)), Type: ast.LiteralBoolean, Bool: raw == "true", Raw: raw}
}

// declare is `const <id> = <init>`; sub locates the declarator.
func (f *fixture) declare(sub string, id, init ast.Node) *ast.VariableDeclaration {
	sp := f.at(sub, 0)
	return &ast.VariableDeclaration{
		Base:         base(sp),
		DeclKind:     "const",
		Declarations: []ast.Node{&ast.VariableDeclarator{Base: base(sp), ID: id, Init: init}},
	}
}

func stmt(expr ast.Node) *ast.ExpressionStatement {
	return &ast.ExpressionStatement{Base: base(expr.Span()), Expression: expr}
}

// fn is `function name(params) { body }`.
func (f *fixture) fn(name string, params []ast.Node, body ...ast.Node) *ast.FunctionDeclaration {
	return &ast.FunctionDeclaration{
		Base:   base(ast.Span{Start: 0, End: len(f.text)}),
		ID:     f.ident(name, 0),
		Params: params,
		Body:   &ast.Other{Type: "BlockStatement", Nodes: body},
	}
}

func (f *fixture) run(r Rule, body ...ast.Node) []Report {
	f.t.Helper()
	prog := &ast.Program{Base: base(ast.Span{Start: 0, End: len(f.text)}), Body: body}
	ast.Link(prog)
	return Traverse(prog, NewSourceCode("test.ts", []byte(f.text)), []Rule{r})
}

func (f *fixture) textOf(sp ast.Span) string {
	return f.text[sp.Start:sp.End]
}

// apply applies a report's fix to the fixture text.
func (f *fixture) apply(r Report) string {
	f.t.Helper()
	if r.Fix == nil {
		f.t.Fatalf("report %q has no fix", r.Message)
	}
	return f.text[:r.Fix.Span.Start] + r.Fix.Text + f.text[r.Fix.Span.End:]
}

func messages(reports []Report) []string {
	out := make([]string, 0, len(reports))
	for _, r := range reports {
		out = append(out, r.Message)
	}
	return out
}
