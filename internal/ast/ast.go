// Package ast declares the subset of the ESTree / typescript-estree syntax
// tree consumed by the tslin rules.
//
// Every node embeds Base, which carries its byte span in the original source
// and a back-reference to its parent. Parents are populated by Link.
// Optional children are nil interfaces when absent.
package ast

// Span is a half-open byte range [Start, End) into the source text.
type Span struct {
	Start int
	End   int
}

// Node is implemented by every syntax tree node.
type Node interface {
	Kind() Kind
	Span() Span
	Parent() Node
	setParent(Node)
}

// Base holds the fields shared by all nodes.
type Base struct {
	Range  Span
	parent Node
}

func (b *Base) Span() Span       { return b.Range }
func (b *Base) Parent() Node     { return b.parent }
func (b *Base) setParent(p Node) { b.parent = p }

// Other stands in for any node type the rules do not consume. Its children
// are kept so traversal reaches nested nodes of interest.
type Other struct {
	Base
	Type  string
	Nodes []Node
}

/***** Statements and declarations *****/

type Program struct {
	Base
	Body []Node
}

type ExpressionStatement struct {
	Base
	Expression Node
}

type VariableDeclaration struct {
	Base
	DeclKind     string // var, let, const
	Declarations []Node
}

type VariableDeclarator struct {
	Base
	ID   Node
	Init Node
}

type FunctionDeclaration struct {
	Base
	ID     Node
	Params []Node
	Body   Node
}

type FunctionExpression struct {
	Base
	ID     Node
	Params []Node
	Body   Node
}

type ArrowFunctionExpression struct {
	Base
	Params []Node
	Body   Node
}

// ClassDeclaration flattens the ESTree ClassBody wrapper into Body.
type ClassDeclaration struct {
	Base
	ID   Node
	Body []Node
}

type PropertyDefinition struct {
	Base
	Key      Node
	Value    Node
	Computed bool
}

type MethodDefinition struct {
	Base
	Key      Node
	Value    Node
	Computed bool
}

type TSTypeAliasDeclaration struct {
	Base
	ID             Node
	TypeAnnotation Node
}

// TSInterfaceDeclaration flattens the TSInterfaceBody wrapper into Body.
type TSInterfaceDeclaration struct {
	Base
	ID   Node
	Body []Node
}

type TSPropertySignature struct {
	Base
	Key            Node
	Computed       bool
	Optional       bool
	TypeAnnotation Node
}

type TSMethodSignature struct {
	Base
	Key      Node
	Computed bool
}

/***** Expressions *****/

type Identifier struct {
	Base
	Name           string
	Optional       bool
	TypeAnnotation Node
}

type LiteralType int

const (
	LiteralString LiteralType = iota
	LiteralNumber
	LiteralBoolean
	LiteralNull
	LiteralBigInt
	LiteralRegExp
)

type Literal struct {
	Base
	Type   LiteralType
	String string
	Number float64
	Bool   bool
	BigInt string
	Raw    string
}

type TemplateLiteral struct {
	Base
	Quasis      []string
	Expressions []Node
}

type BinaryExpression struct {
	Base
	Operator string
	Left     Node
	Right    Node
}

type LogicalExpression struct {
	Base
	Operator string
	Left     Node
	Right    Node
}

type UnaryExpression struct {
	Base
	Operator string
	Argument Node
}

type AssignmentExpression struct {
	Base
	Operator string
	Left     Node
	Right    Node
}

type CallExpression struct {
	Base
	Callee    Node
	Arguments []Node
	Optional  bool
}

type NewExpression struct {
	Base
	Callee    Node
	Arguments []Node
}

type MemberExpression struct {
	Base
	Object   Node
	Property Node
	Computed bool
	Optional bool
}

type ArrayExpression struct {
	Base
	Elements []Node // nil entries are holes
}

type ObjectExpression struct {
	Base
	Properties []Node
}

type Property struct {
	Base
	Key       Node
	Value     Node
	Computed  bool
	Shorthand bool
}

type TSAsExpression struct {
	Base
	Expression     Node
	TypeAnnotation Node
}

// TSTypeAssertion is the angle-bracket form `<T>expr`.
type TSTypeAssertion struct {
	Base
	TypeAnnotation Node
	Expression     Node
}

type TSNonNullExpression struct {
	Base
	Expression Node
}

/***** Types *****/

// TSTypeAnnotation is the `: T` wrapper attached to identifiers.
type TSTypeAnnotation struct {
	Base
	TypeAnnotation Node
}

// TSKeyword covers every TS*Keyword type node; Keyword holds its spelling.
type TSKeyword struct {
	Base
	Keyword string
}

type TSTypeReference struct {
	Base
	TypeName      Node
	TypeArguments []Node
}

type TSArrayType struct {
	Base
	ElementType Node
}

type TSUnionType struct {
	Base
	Types []Node
}

type TSLiteralType struct {
	Base
	Literal Node
}

type TSTypeLiteral struct {
	Base
	Members []Node
}

type TSOptionalType struct {
	Base
	TypeAnnotation Node
}

func (*Other) Kind() Kind                   { return KindOther }
func (*Program) Kind() Kind                 { return KindProgram }
func (*ExpressionStatement) Kind() Kind     { return KindExpressionStatement }
func (*VariableDeclaration) Kind() Kind     { return KindVariableDeclaration }
func (*VariableDeclarator) Kind() Kind      { return KindVariableDeclarator }
func (*FunctionDeclaration) Kind() Kind     { return KindFunctionDeclaration }
func (*FunctionExpression) Kind() Kind      { return KindFunctionExpression }
func (*ArrowFunctionExpression) Kind() Kind { return KindArrowFunctionExpression }
func (*ClassDeclaration) Kind() Kind        { return KindClassDeclaration }
func (*PropertyDefinition) Kind() Kind      { return KindPropertyDefinition }
func (*MethodDefinition) Kind() Kind        { return KindMethodDefinition }
func (*TSTypeAliasDeclaration) Kind() Kind  { return KindTSTypeAliasDeclaration }
func (*TSInterfaceDeclaration) Kind() Kind  { return KindTSInterfaceDeclaration }
func (*TSPropertySignature) Kind() Kind     { return KindTSPropertySignature }
func (*TSMethodSignature) Kind() Kind       { return KindTSMethodSignature }
func (*Identifier) Kind() Kind              { return KindIdentifier }
func (*Literal) Kind() Kind                 { return KindLiteral }
func (*TemplateLiteral) Kind() Kind         { return KindTemplateLiteral }
func (*BinaryExpression) Kind() Kind        { return KindBinaryExpression }
func (*LogicalExpression) Kind() Kind       { return KindLogicalExpression }
func (*UnaryExpression) Kind() Kind         { return KindUnaryExpression }
func (*AssignmentExpression) Kind() Kind    { return KindAssignmentExpression }
func (*CallExpression) Kind() Kind          { return KindCallExpression }
func (*NewExpression) Kind() Kind           { return KindNewExpression }
func (*MemberExpression) Kind() Kind        { return KindMemberExpression }
func (*ArrayExpression) Kind() Kind         { return KindArrayExpression }
func (*ObjectExpression) Kind() Kind        { return KindObjectExpression }
func (*Property) Kind() Kind                { return KindProperty }
func (*TSAsExpression) Kind() Kind          { return KindTSAsExpression }
func (*TSTypeAssertion) Kind() Kind         { return KindTSTypeAssertion }
func (*TSNonNullExpression) Kind() Kind     { return KindTSNonNullExpression }
func (*TSTypeAnnotation) Kind() Kind        { return KindTSTypeAnnotation }
func (*TSKeyword) Kind() Kind               { return KindTSKeyword }
func (*TSTypeReference) Kind() Kind         { return KindTSTypeReference }
func (*TSArrayType) Kind() Kind             { return KindTSArrayType }
func (*TSUnionType) Kind() Kind             { return KindTSUnionType }
func (*TSLiteralType) Kind() Kind           { return KindTSLiteralType }
func (*TSTypeLiteral) Kind() Kind           { return KindTSTypeLiteral }
func (*TSOptionalType) Kind() Kind          { return KindTSOptionalType }
