package estree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/tslin/internal/ast"
)

func TestDecodeVariableWithAssertion(t *testing.T) {
	t.Parallel()

	src := `const x: A = a as A;`
	doc := `{
  "type": "Program",
  "range": [0, 20],
  "body": [{
    "type": "VariableDeclaration",
    "kind": "const",
    "range": [0, 20],
    "declarations": [{
      "type": "VariableDeclarator",
      "range": [6, 19],
      "id": {
        "type": "Identifier", "name": "x", "range": [6, 10],
        "typeAnnotation": {
          "type": "TSTypeAnnotation", "range": [7, 10],
          "typeAnnotation": {
            "type": "TSTypeReference", "range": [9, 10],
            "typeName": {"type": "Identifier", "name": "A", "range": [9, 10]}
          }
        }
      },
      "init": {
        "type": "TSAsExpression", "range": [13, 19],
        "expression": {"type": "Identifier", "name": "a", "range": [13, 14]},
        "typeAnnotation": {
          "type": "TSTypeReference", "range": [18, 19],
          "typeName": {"type": "Identifier", "name": "A", "range": [18, 19]}
        }
      }
    }]
  }]
}`

	root, err := Decode([]byte(doc), []byte(src))
	require.NoError(t, err)

	prog, ok := root.(*ast.Program)
	require.True(t, ok)
	require.Len(t, prog.Body, 1)

	decl := prog.Body[0].(*ast.VariableDeclaration).Declarations[0].(*ast.VariableDeclarator)
	id := decl.ID.(*ast.Identifier)
	assert.Equal(t, "x", id.Name)

	ref := ast.UnwrapAnnotation(id.TypeAnnotation).(*ast.TSTypeReference)
	name, _ := ast.IdentName(ref.TypeName)
	assert.Equal(t, "A", name)

	as := decl.Init.(*ast.TSAsExpression)
	assert.Same(t, decl, as.Parent())
	assert.Equal(t, ast.Span{Start: 13, End: 19}, as.Span())
	assert.Equal(t, "a as A", src[as.Span().Start:as.Span().End])
}

func TestDecodeLiterals(t *testing.T) {
	t.Parallel()

	doc := `{"type": "Program", "body": [
  {"type": "ExpressionStatement", "expression": {"type": "Literal", "value": "s", "raw": "'s'"}},
  {"type": "ExpressionStatement", "expression": {"type": "Literal", "value": 1.5, "raw": "1.5"}},
  {"type": "ExpressionStatement", "expression": {"type": "Literal", "value": true, "raw": "true"}},
  {"type": "ExpressionStatement", "expression": {"type": "Literal", "value": null, "raw": "null"}},
  {"type": "ExpressionStatement", "expression": {"type": "Literal", "value": null, "raw": "10n", "bigint": "10"}},
  {"type": "ExpressionStatement", "expression": {"type": "Literal", "value": {}, "raw": "/a/", "regex": {"pattern": "a", "flags": ""}}}
]}`

	root, err := Decode([]byte(doc), nil)
	require.NoError(t, err)

	var types []ast.LiteralType
	ast.Inspect(root, func(n ast.Node) bool {
		if lit, ok := n.(*ast.Literal); ok {
			types = append(types, lit.Type)
		}
		return true
	})

	assert.Equal(t, []ast.LiteralType{
		ast.LiteralString,
		ast.LiteralNumber,
		ast.LiteralBoolean,
		ast.LiteralNull,
		ast.LiteralBigInt,
		ast.LiteralRegExp,
	}, types)
}

func TestDecodeKeywordsAndUnknownNodes(t *testing.T) {
	t.Parallel()

	// if (flag) { y! }
	doc := `{"type": "Program", "start": 0, "end": 16, "body": [{
  "type": "IfStatement", "start": 0, "end": 16,
  "test": {"type": "Identifier", "name": "flag", "start": 4, "end": 8},
  "consequent": {"type": "BlockStatement", "start": 10, "end": 16, "body": [
    {"type": "ExpressionStatement", "start": 12, "end": 14,
     "expression": {"type": "TSNonNullExpression", "start": 12, "end": 14,
       "expression": {"type": "Identifier", "name": "y", "start": 12, "end": 13}}}
  ]}
}]}`

	root, err := Decode([]byte(doc), []byte("if (flag) { y! }"))
	require.NoError(t, err)

	var seen []string
	ast.Inspect(root, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Other:
			seen = append(seen, n.Type)
		case *ast.Identifier:
			seen = append(seen, n.Name)
		case *ast.TSNonNullExpression:
			seen = append(seen, "!")
		}
		return true
	})
	assert.Equal(t, []string{"IfStatement", "flag", "BlockStatement", "!", "y"}, seen)

	kw, ok := ast.KeywordOf("TSUnknownKeyword")
	assert.True(t, ok)
	assert.Equal(t, ast.KeywordUnknown, kw)
}

func TestDecodeConvertsUTF16Offsets(t *testing.T) {
	t.Parallel()

	src := `x = "é😀" as string;`
	// UTF-16: `"é😀"` spans units 4..9 (é is one unit, the emoji two)
	doc := `{"type": "Program", "range": [0, 20], "body": [{
  "type": "ExpressionStatement", "range": [0, 20],
  "expression": {"type": "AssignmentExpression", "operator": "=", "range": [0, 19],
    "left": {"type": "Identifier", "name": "x", "range": [0, 1]},
    "right": {"type": "TSAsExpression", "range": [4, 19],
      "expression": {"type": "Literal", "value": "é😀", "raw": "\"é😀\"", "range": [4, 9]},
      "typeAnnotation": {"type": "TSStringKeyword", "range": [13, 19]}}}
}]}`

	root, err := Decode([]byte(doc), []byte(src))
	require.NoError(t, err)

	var lit *ast.Literal
	ast.Inspect(root, func(n ast.Node) bool {
		if l, ok := n.(*ast.Literal); ok {
			lit = l
		}
		return true
	})
	require.NotNil(t, lit)
	sp := lit.Span()
	assert.Equal(t, `"é😀"`, src[sp.Start:sp.End])
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte(`{`), nil)
	assert.Error(t, err)

	_, err = Decode([]byte(`[1, 2]`), nil)
	assert.ErrorIs(t, err, ErrNotANode)

	_, err = Decode([]byte(`{"foo": 1}`), nil)
	assert.ErrorIs(t, err, ErrNotANode)

	root, err := Decode([]byte(`{"ast": {"type": "Program", "body": []}}`), nil)
	require.NoError(t, err)
	assert.Equal(t, ast.KindProgram, root.Kind())
}
