package shape

import (
	"strings"

	"github.com/gnolang/tslin/internal/analysis/lattice"
	"github.com/gnolang/tslin/internal/ast"
)

// Descriptor is the structural classification of a declared type.
type Descriptor interface {
	descriptor()
}

// Primitive is a keyword type: string, number, boolean, bigint, null,
// undefined, void, never, object or symbol.
type Primitive struct{ Keyword string }

// Reference names an alias, interface or class (or a builtin generic such
// as Array<T>).
type Reference struct {
	Name string
	Args []Descriptor
}

type Array struct{ Elem Descriptor }

type Union struct{ Members []Descriptor }

// Literal is a literal type such as `"a"` or `42`.
type Literal struct{ Kind lattice.ValueKind }

// Dynamic is one of the escape-hatch kinds. Any permits narrowing without
// further evidence; Unknown requires it.
type Dynamic struct{ Unknown bool }

// Object is an inline type literal `{ a: string; b(): void }`.
type Object struct{ Properties []string }

// Optional marks `T?` positions.
type Optional struct{ Elem Descriptor }

func (Primitive) descriptor() {}
func (Reference) descriptor() {}
func (Array) descriptor()     {}
func (Union) descriptor()     {}
func (Literal) descriptor()   {}
func (Dynamic) descriptor()   {}
func (Object) descriptor()    {}
func (Optional) descriptor()  {}

var (
	Any     Descriptor = Dynamic{}
	Unknown Descriptor = Dynamic{Unknown: true}
)

// FromType builds a descriptor from a type node. A TSTypeAnnotation
// wrapper is looked through. It returns nil for shapes it does not model.
func FromType(n ast.Node) Descriptor {
	switch n := ast.UnwrapAnnotation(n).(type) {
	case *ast.TSKeyword:
		switch n.Keyword {
		case ast.KeywordAny:
			return Any
		case ast.KeywordUnknown:
			return Unknown
		}
		return Primitive{Keyword: n.Keyword}
	case *ast.TSTypeReference:
		name, ok := ast.IdentName(n.TypeName)
		if !ok {
			return nil
		}
		ref := Reference{Name: name}
		for _, arg := range n.TypeArguments {
			ref.Args = append(ref.Args, FromType(arg))
		}
		return ref
	case *ast.TSArrayType:
		elem := FromType(n.ElementType)
		if elem == nil {
			return nil
		}
		return Array{Elem: elem}
	case *ast.TSUnionType:
		u := Union{}
		for _, member := range n.Types {
			// unmodelled members still count toward the union so that
			// it never looks narrower than it is
			d := FromType(member)
			if d == nil {
				d = Unknown
			}
			u.Members = append(u.Members, d)
		}
		return u
	case *ast.TSLiteralType:
		if lit, ok := n.Literal.(*ast.Literal); ok {
			return Literal{Kind: lattice.FromLiteral(lit)}
		}
		return nil
	case *ast.TSTypeLiteral:
		return Object{Properties: memberNames(n.Members)}
	case *ast.TSOptionalType:
		elem := FromType(n.TypeAnnotation)
		if elem == nil {
			return nil
		}
		return Optional{Elem: elem}
	}
	return nil
}

// IsKeyword reports whether d is the primitive keyword kw.
func IsKeyword(d Descriptor, kw string) bool {
	p, ok := d.(Primitive)
	return ok && p.Keyword == kw
}

// IsAny reports whether d is the dynamic-any kind.
func IsAny(d Descriptor) bool {
	dyn, ok := d.(Dynamic)
	return ok && !dyn.Unknown
}

// Nullable reports whether a value of type d may be null or undefined.
// Unions with a null/undefined member and optional types are nullable,
// as are the null/undefined/void keywords and the dynamic kinds, which
// admit every value.
func Nullable(d Descriptor) bool {
	switch d := d.(type) {
	case Union:
		for _, m := range d.Members {
			if Nullable(m) {
				return true
			}
		}
		return false
	case Optional:
		return true
	case Dynamic:
		return true
	case Primitive:
		switch d.Keyword {
		case ast.KeywordNull, ast.KeywordUndefined, ast.KeywordVoid:
			return true
		}
	}
	return false
}

// ValueKind returns the primitive kind a descriptor pins down, if any.
func ValueKind(d Descriptor) lattice.ValueKind {
	switch d := d.(type) {
	case Primitive:
		return lattice.FromKeyword(d.Keyword)
	case Literal:
		return d.Kind
	}
	return lattice.Unknown
}

// TypeName renders the name used for assertion equivalence checks:
// `A`, `string`, `T[]` or `Array<T>`.
func TypeName(d Descriptor) (string, bool) {
	switch d := d.(type) {
	case Reference:
		if d.Name == "Array" && len(d.Args) == 1 {
			elem, ok := TypeName(d.Args[0])
			if !ok {
				return "", false
			}
			return "Array<" + elem + ">", true
		}
		return d.Name, true
	case Primitive:
		return d.Keyword, true
	case Dynamic:
		if d.Unknown {
			return ast.KeywordUnknown, true
		}
		return ast.KeywordAny, true
	case Array:
		elem, ok := TypeName(d.Elem)
		if !ok {
			return "", false
		}
		return elem + "[]", true
	}
	return "", false
}

// Equivalent reports whether two rendered type names denote the same type:
// an exact match, or `Array<T>` against `T[]` in either direction.
func Equivalent(a, b string) bool {
	if a == b {
		return true
	}
	if elem, ok := genericArrayElem(a); ok {
		if other, ok := bracketArrayElem(b); ok {
			return elem == other
		}
	}
	if elem, ok := genericArrayElem(b); ok {
		if other, ok := bracketArrayElem(a); ok {
			return elem == other
		}
	}
	return false
}

func genericArrayElem(name string) (string, bool) {
	if !strings.HasPrefix(name, "Array<") || !strings.HasSuffix(name, ">") {
		return "", false
	}
	elem := name[len("Array<") : len(name)-1]
	return elem, elem != ""
}

func bracketArrayElem(name string) (string, bool) {
	elem, ok := strings.CutSuffix(name, "[]")
	return elem, ok && elem != ""
}

// memberNames collects the statically named keys of interface, class and
// type-literal members. Computed keys are skipped.
func memberNames(members []ast.Node) []string {
	var names []string
	for _, m := range members {
		var key ast.Node
		switch m := m.(type) {
		case *ast.TSPropertySignature:
			if !m.Computed {
				key = m.Key
			}
		case *ast.TSMethodSignature:
			if !m.Computed {
				key = m.Key
			}
		case *ast.PropertyDefinition:
			if !m.Computed {
				key = m.Key
			}
		case *ast.MethodDefinition:
			if !m.Computed {
				key = m.Key
			}
		}
		if name, ok := ast.IdentName(key); ok {
			names = append(names, name)
		}
	}
	return names
}
