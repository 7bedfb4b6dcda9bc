// Package estree decodes ESTree JSON documents, as produced by
// typescript-estree or `deno lint` AST dumps, into the internal/ast model.
package estree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/gnolang/tslin/internal/ast"
)

var ErrNotANode = errors.New("estree: document root is not a node")

type object = map[string]any

// Decode parses data as an ESTree tree describing src and returns its root
// with parent links set. Spans reported by the producer are UTF-16 offsets
// (the JavaScript string convention); they are converted to byte offsets
// into src.
func Decode(data []byte, src []byte) (ast.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("estree: invalid json: %w", err)
	}

	obj, ok := raw.(object)
	if !ok {
		return nil, ErrNotANode
	}
	// some dumps wrap the program, e.g. {"ast": {...}}
	if _, hasType := obj["type"]; !hasType {
		if inner, ok := obj["ast"].(object); ok {
			obj = inner
		}
	}
	if _, hasType := obj["type"].(string); !hasType {
		return nil, ErrNotANode
	}

	d := &decoder{offsets: utf16Offsets(src), size: len(src)}
	root := d.node(obj)
	if root == nil {
		return nil, ErrNotANode
	}
	ast.Link(root)
	return root, nil
}

type decoder struct {
	offsets []int // UTF-16 unit -> byte offset; nil when src is ASCII
	size    int
}

// utf16Offsets builds the unit-to-byte table for non-ASCII sources.
func utf16Offsets(src []byte) []int {
	ascii := true
	for _, b := range src {
		if b >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return nil
	}

	offsets := make([]int, 0, len(src)+1)
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		offsets = append(offsets, i)
		if r >= 0x10000 {
			offsets = append(offsets, i)
		}
		i += size
	}
	return append(offsets, len(src))
}

func (d *decoder) byteOffset(unit int) int {
	if unit < 0 {
		return 0
	}
	if d.offsets == nil {
		if unit > d.size {
			return d.size
		}
		return unit
	}
	if unit >= len(d.offsets) {
		return d.size
	}
	return d.offsets[unit]
}

func (d *decoder) span(o object) ast.Span {
	var start, end float64
	if r, ok := o["range"].([]any); ok && len(r) == 2 {
		start, _ = r[0].(float64)
		end, _ = r[1].(float64)
	} else {
		start, _ = o["start"].(float64)
		end, _ = o["end"].(float64)
	}
	return ast.Span{Start: d.byteOffset(int(start)), End: d.byteOffset(int(end))}
}

func (d *decoder) nodes(v any) []ast.Node {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]ast.Node, 0, len(list))
	for _, item := range list {
		out = append(out, d.node(item))
	}
	return out
}

// nonNil drops holes from a node list.
func nonNil(nodes []ast.Node) []ast.Node {
	out := nodes[:0]
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func str(o object, key string) string {
	s, _ := o[key].(string)
	return s
}

func flag(o object, key string) bool {
	b, _ := o[key].(bool)
	return b
}

// body returns the member list of a ClassBody / TSInterfaceBody wrapper.
func (d *decoder) body(v any) []ast.Node {
	wrapper, ok := v.(object)
	if !ok {
		return nil
	}
	return nonNil(d.nodes(wrapper["body"]))
}

func (d *decoder) node(v any) ast.Node {
	o, ok := v.(object)
	if !ok {
		return nil
	}
	typ, ok := o["type"].(string)
	if !ok {
		return nil
	}
	base := ast.Base{Range: d.span(o)}

	switch typ {
	case "Program":
		return &ast.Program{Base: base, Body: nonNil(d.nodes(o["body"]))}
	case "ExpressionStatement":
		return &ast.ExpressionStatement{Base: base, Expression: d.node(o["expression"])}
	case "VariableDeclaration":
		return &ast.VariableDeclaration{
			Base:         base,
			DeclKind:     str(o, "kind"),
			Declarations: nonNil(d.nodes(o["declarations"])),
		}
	case "VariableDeclarator":
		return &ast.VariableDeclarator{Base: base, ID: d.node(o["id"]), Init: d.node(o["init"])}
	case "FunctionDeclaration":
		return &ast.FunctionDeclaration{
			Base:   base,
			ID:     d.node(o["id"]),
			Params: nonNil(d.nodes(o["params"])),
			Body:   d.node(o["body"]),
		}
	case "FunctionExpression":
		return &ast.FunctionExpression{
			Base:   base,
			ID:     d.node(o["id"]),
			Params: nonNil(d.nodes(o["params"])),
			Body:   d.node(o["body"]),
		}
	case "ArrowFunctionExpression":
		return &ast.ArrowFunctionExpression{
			Base:   base,
			Params: nonNil(d.nodes(o["params"])),
			Body:   d.node(o["body"]),
		}
	case "ClassDeclaration":
		return &ast.ClassDeclaration{Base: base, ID: d.node(o["id"]), Body: d.body(o["body"])}
	case "PropertyDefinition", "ClassProperty":
		return &ast.PropertyDefinition{
			Base:     base,
			Key:      d.node(o["key"]),
			Value:    d.node(o["value"]),
			Computed: flag(o, "computed"),
		}
	case "MethodDefinition":
		return &ast.MethodDefinition{
			Base:     base,
			Key:      d.node(o["key"]),
			Value:    d.node(o["value"]),
			Computed: flag(o, "computed"),
		}
	case "TSTypeAliasDeclaration":
		return &ast.TSTypeAliasDeclaration{
			Base:           base,
			ID:             d.node(o["id"]),
			TypeAnnotation: d.node(o["typeAnnotation"]),
		}
	case "TSInterfaceDeclaration":
		return &ast.TSInterfaceDeclaration{Base: base, ID: d.node(o["id"]), Body: d.body(o["body"])}
	case "TSPropertySignature":
		return &ast.TSPropertySignature{
			Base:           base,
			Key:            d.node(o["key"]),
			Computed:       flag(o, "computed"),
			Optional:       flag(o, "optional"),
			TypeAnnotation: d.node(o["typeAnnotation"]),
		}
	case "TSMethodSignature":
		return &ast.TSMethodSignature{Base: base, Key: d.node(o["key"]), Computed: flag(o, "computed")}
	case "Identifier":
		return &ast.Identifier{
			Base:           base,
			Name:           str(o, "name"),
			Optional:       flag(o, "optional"),
			TypeAnnotation: d.node(o["typeAnnotation"]),
		}
	case "Literal":
		return d.literal(base, o)
	case "TemplateLiteral":
		return d.template(base, o)
	case "BinaryExpression":
		return &ast.BinaryExpression{
			Base:     base,
			Operator: str(o, "operator"),
			Left:     d.node(o["left"]),
			Right:    d.node(o["right"]),
		}
	case "LogicalExpression":
		return &ast.LogicalExpression{
			Base:     base,
			Operator: str(o, "operator"),
			Left:     d.node(o["left"]),
			Right:    d.node(o["right"]),
		}
	case "UnaryExpression":
		return &ast.UnaryExpression{Base: base, Operator: str(o, "operator"), Argument: d.node(o["argument"])}
	case "AssignmentExpression":
		return &ast.AssignmentExpression{
			Base:     base,
			Operator: str(o, "operator"),
			Left:     d.node(o["left"]),
			Right:    d.node(o["right"]),
		}
	case "CallExpression":
		return &ast.CallExpression{
			Base:      base,
			Callee:    d.node(o["callee"]),
			Arguments: nonNil(d.nodes(o["arguments"])),
			Optional:  flag(o, "optional"),
		}
	case "NewExpression":
		return &ast.NewExpression{
			Base:      base,
			Callee:    d.node(o["callee"]),
			Arguments: nonNil(d.nodes(o["arguments"])),
		}
	case "MemberExpression":
		return &ast.MemberExpression{
			Base:     base,
			Object:   d.node(o["object"]),
			Property: d.node(o["property"]),
			Computed: flag(o, "computed"),
			Optional: flag(o, "optional"),
		}
	case "ArrayExpression":
		return &ast.ArrayExpression{Base: base, Elements: d.nodes(o["elements"])}
	case "ObjectExpression":
		return &ast.ObjectExpression{Base: base, Properties: nonNil(d.nodes(o["properties"]))}
	case "Property":
		return &ast.Property{
			Base:      base,
			Key:       d.node(o["key"]),
			Value:     d.node(o["value"]),
			Computed:  flag(o, "computed"),
			Shorthand: flag(o, "shorthand"),
		}
	case "TSAsExpression":
		return &ast.TSAsExpression{
			Base:           base,
			Expression:     d.node(o["expression"]),
			TypeAnnotation: d.node(o["typeAnnotation"]),
		}
	case "TSTypeAssertion":
		return &ast.TSTypeAssertion{
			Base:           base,
			TypeAnnotation: d.node(o["typeAnnotation"]),
			Expression:     d.node(o["expression"]),
		}
	case "TSNonNullExpression":
		return &ast.TSNonNullExpression{Base: base, Expression: d.node(o["expression"])}
	case "TSTypeAnnotation":
		return &ast.TSTypeAnnotation{Base: base, TypeAnnotation: d.node(o["typeAnnotation"])}
	case "TSTypeReference":
		return &ast.TSTypeReference{
			Base:          base,
			TypeName:      d.node(o["typeName"]),
			TypeArguments: d.typeArguments(o),
		}
	case "TSArrayType":
		return &ast.TSArrayType{Base: base, ElementType: d.node(o["elementType"])}
	case "TSUnionType":
		return &ast.TSUnionType{Base: base, Types: nonNil(d.nodes(o["types"]))}
	case "TSLiteralType":
		return &ast.TSLiteralType{Base: base, Literal: d.node(o["literal"])}
	case "TSTypeLiteral":
		return &ast.TSTypeLiteral{Base: base, Members: nonNil(d.nodes(o["members"]))}
	case "TSOptionalType":
		return &ast.TSOptionalType{Base: base, TypeAnnotation: d.node(o["typeAnnotation"])}
	}

	if kw, ok := ast.KeywordOf(typ); ok {
		return &ast.TSKeyword{Base: base, Keyword: kw}
	}
	return d.other(base, typ, o)
}

// typeArguments accepts both the current `typeArguments` field and the
// older `typeParameters` spelling.
func (d *decoder) typeArguments(o object) []ast.Node {
	for _, key := range []string{"typeArguments", "typeParameters"} {
		if inst, ok := o[key].(object); ok {
			return nonNil(d.nodes(inst["params"]))
		}
	}
	return nil
}

func (d *decoder) literal(base ast.Base, o object) ast.Node {
	lit := &ast.Literal{Base: base, Raw: str(o, "raw")}
	if b, ok := o["bigint"].(string); ok {
		lit.Type = ast.LiteralBigInt
		lit.BigInt = b
		return lit
	}
	if _, ok := o["regex"]; ok {
		lit.Type = ast.LiteralRegExp
		return lit
	}

	switch v := o["value"].(type) {
	case string:
		lit.Type = ast.LiteralString
		lit.String = v
	case float64:
		lit.Type = ast.LiteralNumber
		lit.Number = v
	case bool:
		lit.Type = ast.LiteralBoolean
		lit.Bool = v
	case nil:
		lit.Type = ast.LiteralNull
	default:
		return d.other(base, "Literal", o)
	}
	return lit
}

func (d *decoder) template(base ast.Base, o object) ast.Node {
	tpl := &ast.TemplateLiteral{Base: base, Expressions: nonNil(d.nodes(o["expressions"]))}
	quasis, _ := o["quasis"].([]any)
	for _, q := range quasis {
		elem, ok := q.(object)
		if !ok {
			continue
		}
		value, _ := elem["value"].(object)
		tpl.Quasis = append(tpl.Quasis, str(value, "cooked"))
	}
	return tpl
}

// other keeps every nested node of an unconsumed node type, ordered by
// source position so pre-order traversal stays deterministic.
func (d *decoder) other(base ast.Base, typ string, o object) ast.Node {
	out := &ast.Other{Base: base, Type: typ}
	for key, v := range o {
		if key == "parent" || key == "loc" || key == "range" {
			continue
		}
		switch v := v.(type) {
		case object:
			if n := d.node(v); n != nil {
				out.Nodes = append(out.Nodes, n)
			}
		case []any:
			out.Nodes = append(out.Nodes, nonNil(d.nodes(v))...)
		}
	}
	sort.SliceStable(out.Nodes, func(i, j int) bool {
		a, b := out.Nodes[i].Span(), out.Nodes[j].Span()
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End > b.End
		}
		return out.Nodes[i].Kind() < out.Nodes[j].Kind()
	})
	return out
}
