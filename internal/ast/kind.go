package ast

// Kind identifies the syntactic variant of a Node. The set is closed: node
// types the analyzer does not consume decode to KindOther.
type Kind int

const (
	KindOther Kind = iota
	KindProgram
	KindExpressionStatement
	KindVariableDeclaration
	KindVariableDeclarator
	KindFunctionDeclaration
	KindFunctionExpression
	KindArrowFunctionExpression
	KindClassDeclaration
	KindPropertyDefinition
	KindMethodDefinition
	KindIdentifier
	KindLiteral
	KindTemplateLiteral
	KindBinaryExpression
	KindLogicalExpression
	KindUnaryExpression
	KindAssignmentExpression
	KindCallExpression
	KindNewExpression
	KindMemberExpression
	KindArrayExpression
	KindObjectExpression
	KindProperty
	KindTSAsExpression
	KindTSTypeAssertion
	KindTSNonNullExpression
	KindTSTypeAliasDeclaration
	KindTSInterfaceDeclaration
	KindTSPropertySignature
	KindTSMethodSignature
	KindTSTypeAnnotation
	KindTSKeyword
	KindTSTypeReference
	KindTSArrayType
	KindTSUnionType
	KindTSLiteralType
	KindTSTypeLiteral
	KindTSOptionalType

	numKinds
)

var kindNames = [numKinds]string{
	KindOther:                   "Other",
	KindProgram:                 "Program",
	KindExpressionStatement:     "ExpressionStatement",
	KindVariableDeclaration:     "VariableDeclaration",
	KindVariableDeclarator:      "VariableDeclarator",
	KindFunctionDeclaration:     "FunctionDeclaration",
	KindFunctionExpression:      "FunctionExpression",
	KindArrowFunctionExpression: "ArrowFunctionExpression",
	KindClassDeclaration:        "ClassDeclaration",
	KindPropertyDefinition:      "PropertyDefinition",
	KindMethodDefinition:        "MethodDefinition",
	KindIdentifier:              "Identifier",
	KindLiteral:                 "Literal",
	KindTemplateLiteral:         "TemplateLiteral",
	KindBinaryExpression:        "BinaryExpression",
	KindLogicalExpression:       "LogicalExpression",
	KindUnaryExpression:         "UnaryExpression",
	KindAssignmentExpression:    "AssignmentExpression",
	KindCallExpression:          "CallExpression",
	KindNewExpression:           "NewExpression",
	KindMemberExpression:        "MemberExpression",
	KindArrayExpression:         "ArrayExpression",
	KindObjectExpression:        "ObjectExpression",
	KindProperty:                "Property",
	KindTSAsExpression:          "TSAsExpression",
	KindTSTypeAssertion:         "TSTypeAssertion",
	KindTSNonNullExpression:     "TSNonNullExpression",
	KindTSTypeAliasDeclaration:  "TSTypeAliasDeclaration",
	KindTSInterfaceDeclaration:  "TSInterfaceDeclaration",
	KindTSPropertySignature:     "TSPropertySignature",
	KindTSMethodSignature:       "TSMethodSignature",
	KindTSTypeAnnotation:        "TSTypeAnnotation",
	KindTSKeyword:               "TSKeyword",
	KindTSTypeReference:         "TSTypeReference",
	KindTSArrayType:             "TSArrayType",
	KindTSUnionType:             "TSUnionType",
	KindTSLiteralType:           "TSLiteralType",
	KindTSTypeLiteral:           "TSTypeLiteral",
	KindTSOptionalType:          "TSOptionalType",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "Unknown"
	}
	return kindNames[k]
}

// Keywords recognised inside TS*Keyword type nodes.
const (
	KeywordString    = "string"
	KeywordNumber    = "number"
	KeywordBoolean   = "boolean"
	KeywordBigInt    = "bigint"
	KeywordAny       = "any"
	KeywordUnknown   = "unknown"
	KeywordVoid      = "void"
	KeywordNull      = "null"
	KeywordUndefined = "undefined"
	KeywordNever     = "never"
	KeywordObject    = "object"
	KeywordSymbol    = "symbol"
)

var keywordTypes = map[string]string{
	"TSStringKeyword":    KeywordString,
	"TSNumberKeyword":    KeywordNumber,
	"TSBooleanKeyword":   KeywordBoolean,
	"TSBigIntKeyword":    KeywordBigInt,
	"TSAnyKeyword":       KeywordAny,
	"TSUnknownKeyword":   KeywordUnknown,
	"TSVoidKeyword":      KeywordVoid,
	"TSNullKeyword":      KeywordNull,
	"TSUndefinedKeyword": KeywordUndefined,
	"TSNeverKeyword":     KeywordNever,
	"TSObjectKeyword":    KeywordObject,
	"TSSymbolKeyword":    KeywordSymbol,
}

// KeywordOf maps an ESTree keyword type name such as "TSStringKeyword" to
// its keyword spelling.
func KeywordOf(typeName string) (string, bool) {
	kw, ok := keywordTypes[typeName]
	return kw, ok
}
