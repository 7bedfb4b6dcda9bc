package rules

import (
	"github.com/gnolang/tslin/internal/analysis/infer"
	"github.com/gnolang/tslin/internal/analysis/shape"
	"github.com/gnolang/tslin/internal/ast"
)

// facts is the per-traversal state shared by a rule's callbacks.
type facts struct {
	reg *shape.Registry
	inf *infer.Inferencer
}

func newFacts() *facts {
	reg := shape.NewRegistry()
	return &facts{reg: reg, inf: infer.New(reg)}
}

// declarations returns the callbacks that populate the registry. They must
// see a declaration before the expressions that use it, which pre-order
// traversal guarantees for code that declares before use.
func (f *facts) declarations() Visitor {
	params := func(ps []ast.Node) { f.reg.DeclareParams(ps) }

	return Visitor{
		ast.KindTSTypeAliasDeclaration: func(n ast.Node) {
			f.reg.DeclareTypeAlias(n.(*ast.TSTypeAliasDeclaration))
		},
		ast.KindTSInterfaceDeclaration: func(n ast.Node) {
			f.reg.DeclareInterface(n.(*ast.TSInterfaceDeclaration))
		},
		ast.KindClassDeclaration: func(n ast.Node) {
			f.reg.DeclareClass(n.(*ast.ClassDeclaration))
		},
		ast.KindVariableDeclarator: func(n ast.Node) {
			decl := n.(*ast.VariableDeclarator)
			f.reg.DeclareVariable(decl, f.inf.KindOf(decl.Init))
		},
		ast.KindFunctionDeclaration: func(n ast.Node) {
			params(n.(*ast.FunctionDeclaration).Params)
		},
		ast.KindFunctionExpression: func(n ast.Node) {
			params(n.(*ast.FunctionExpression).Params)
		},
		ast.KindArrowFunctionExpression: func(n ast.Node) {
			params(n.(*ast.ArrowFunctionExpression).Params)
		},
	}
}
