package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/tslin/internal/analysis/lattice"
	"github.com/gnolang/tslin/internal/ast"
)

func ident(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func typed(name string, t ast.Node) *ast.Identifier {
	return &ast.Identifier{Name: name, TypeAnnotation: &ast.TSTypeAnnotation{TypeAnnotation: t}}
}

func ref(name string, args ...ast.Node) *ast.TSTypeReference {
	return &ast.TSTypeReference{TypeName: ident(name), TypeArguments: args}
}

func kw(k string) *ast.TSKeyword { return &ast.TSKeyword{Keyword: k} }

func TestDeclareInterfaceAndClass(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.DeclareInterface(&ast.TSInterfaceDeclaration{
		ID: ident("Shape"),
		Body: []ast.Node{
			&ast.TSPropertySignature{Key: ident("area")},
			&ast.TSMethodSignature{Key: ident("draw")},
			&ast.TSPropertySignature{Key: ident("skip"), Computed: true},
		},
	})
	reg.DeclareClass(&ast.ClassDeclaration{
		ID: ident("Box"),
		Body: []ast.Node{
			&ast.PropertyDefinition{Key: ident("width")},
			&ast.MethodDefinition{Key: ident("resize")},
		},
	})

	b, ok := reg.Lookup("Shape")
	require.True(t, ok)
	assert.Equal(t, OriginInterface, b.Origin)
	assert.Equal(t, []string{"area", "draw"}, reg.PropertiesOf("Shape"))

	assert.Equal(t, []string{"resize", "width"}, reg.PropertiesOf("Box"))
	_, ok = reg.TypeNameOf("Box")
	assert.False(t, ok, "a class name is not an instance")
}

func TestDeclareVariableShapes(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.DeclareClass(&ast.ClassDeclaration{
		ID:   ident("Box"),
		Body: []ast.Node{&ast.PropertyDefinition{Key: ident("width")}},
	})

	// const o = { a: 1, b: 2 }
	reg.DeclareVariable(&ast.VariableDeclarator{
		ID: ident("o"),
		Init: &ast.ObjectExpression{Properties: []ast.Node{
			&ast.Property{Key: ident("a"), Value: &ast.Literal{Type: ast.LiteralNumber}},
			&ast.Property{Key: ident("b"), Value: &ast.Literal{Type: ast.LiteralNumber}},
		}},
	}, lattice.Unknown)

	// const box = new Box()
	reg.DeclareVariable(&ast.VariableDeclarator{
		ID:   ident("box"),
		Init: &ast.NewExpression{Callee: ident("Box")},
	}, lattice.Unknown)

	// const p: { x: number } = ...
	reg.DeclareVariable(&ast.VariableDeclarator{
		ID: typed("p", &ast.TSTypeLiteral{Members: []ast.Node{&ast.TSPropertySignature{Key: ident("x")}}}),
	}, lattice.Unknown)

	o, ok := reg.Lookup("o")
	require.True(t, ok)
	assert.Equal(t, OriginObjectLiteral, o.Origin)
	assert.True(t, reg.HasProperty("o", "a"))
	assert.True(t, reg.HasProperty("o", "b"))
	assert.False(t, reg.HasProperty("o", "c"))

	class, ok := reg.ClassOf("box")
	assert.True(t, ok)
	assert.Equal(t, "Box", class)
	assert.True(t, reg.HasProperty("box", "width"))
	assert.False(t, reg.HasProperty("box", "height"))
	name, ok := reg.TypeNameOf("box")
	assert.True(t, ok)
	assert.Equal(t, "Box", name)

	assert.True(t, reg.HasProperty("p", "x"))
	assert.False(t, reg.HasProperty("missing", "x"))
}

func TestDeclaredInterfaceTypeExposesMembers(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.DeclareInterface(&ast.TSInterfaceDeclaration{
		ID:   ident("User"),
		Body: []ast.Node{&ast.TSPropertySignature{Key: ident("name")}},
	})
	reg.DeclareVariable(&ast.VariableDeclarator{ID: typed("u", ref("User"))}, lattice.Unknown)

	assert.True(t, reg.HasProperty("u", "name"))
	assert.Equal(t, []string{"name"}, reg.PropertiesOf("u"))
}

func TestResolveIsOneHop(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	// type Str = string; type Name = Str;
	reg.DeclareTypeAlias(&ast.TSTypeAliasDeclaration{ID: ident("Str"), TypeAnnotation: kw(ast.KeywordString)})
	reg.DeclareTypeAlias(&ast.TSTypeAliasDeclaration{ID: ident("Name"), TypeAnnotation: ref("Str")})

	d, ok := reg.Resolve("Str")
	require.True(t, ok)
	assert.Equal(t, Primitive{Keyword: ast.KeywordString}, d)

	d, ok = reg.Resolve("Name")
	require.True(t, ok)
	assert.Equal(t, Reference{Name: "Str"}, d, "alias chains are not chased")

	assert.Equal(t, Primitive{Keyword: ast.KeywordString}, reg.ResolveType(Reference{Name: "Str"}))
	assert.Equal(t, Reference{Name: "Other"}, reg.ResolveType(Reference{Name: "Other"}))

	_, ok = reg.Resolve("Missing")
	assert.False(t, ok)
}

func TestDefineLastWriteWinsAndKindRefinement(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.DeclareVariable(&ast.VariableDeclarator{ID: ident("s")}, lattice.String)
	assert.Equal(t, lattice.String, reg.KindOf("s"))

	// an unannotated redeclaration that proves nothing keeps the kind
	reg.DeclareVariable(&ast.VariableDeclarator{ID: ident("s")}, lattice.Unknown)
	assert.Equal(t, lattice.String, reg.KindOf("s"))

	// a declared type is authoritative
	reg.DeclareVariable(&ast.VariableDeclarator{
		ID: typed("s", &ast.TSUnionType{Types: []ast.Node{kw(ast.KeywordString), kw(ast.KeywordNumber)}}),
	}, lattice.String)
	assert.Equal(t, lattice.Unknown, reg.KindOf("s"))

	assert.Equal(t, lattice.Unknown, reg.KindOf("missing"))
}

func TestNullableResolvesGenericAliases(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	// type Maybe<T> = T | null; type Id<T> = T; type Name = string;
	reg.DeclareTypeAlias(&ast.TSTypeAliasDeclaration{
		ID:             ident("Maybe"),
		TypeAnnotation: &ast.TSUnionType{Types: []ast.Node{ref("T"), kw(ast.KeywordNull)}},
	})
	reg.DeclareTypeAlias(&ast.TSTypeAliasDeclaration{ID: ident("Id"), TypeAnnotation: ref("T")})
	reg.DeclareTypeAlias(&ast.TSTypeAliasDeclaration{ID: ident("Name"), TypeAnnotation: kw(ast.KeywordString)})

	str := Primitive{Keyword: ast.KeywordString}
	null := Primitive{Keyword: ast.KeywordNull}

	tests := []struct {
		name string
		d    Descriptor
		want bool
	}{
		{"generic alias with null member", Reference{Name: "Maybe", Args: []Descriptor{str}}, true},
		{"generic alias as union member", Union{Members: []Descriptor{str, Reference{Name: "Maybe", Args: []Descriptor{str}}}}, true},
		{"identity alias of non-null", Reference{Name: "Id", Args: []Descriptor{str}}, false},
		{"identity alias of nullable", Reference{Name: "Id", Args: []Descriptor{Union{Members: []Descriptor{str, null}}}}, true},
		{"identity alias of unmodelled argument", Reference{Name: "Id", Args: []Descriptor{nil}}, true},
		{"plain alias", Reference{Name: "Name"}, false},
		{"unresolved reference", Reference{Name: "User"}, false},
		{"optional", Optional{Elem: str}, true},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, reg.Nullable(tc.d), tc.name)
	}
}

func TestHasPropertyIgnoresTypeNames(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.DeclareClass(&ast.ClassDeclaration{
		ID:   ident("Box"),
		Body: []ast.Node{&ast.PropertyDefinition{Key: ident("size")}},
	})
	reg.DeclareInterface(&ast.TSInterfaceDeclaration{
		ID:   ident("Shape"),
		Body: []ast.Node{&ast.TSPropertySignature{Key: ident("area")}},
	})

	assert.False(t, reg.HasProperty("Box", "size"), "instance members are not static")
	assert.False(t, reg.HasProperty("Shape", "area"))
	assert.Equal(t, []string{"size"}, reg.PropertiesOf("Box"))
}

func TestDeclareParams(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.DeclareParams([]ast.Node{
		typed("flag", kw(ast.KeywordBoolean)),
		&ast.Identifier{Name: "opt", Optional: true, TypeAnnotation: &ast.TSTypeAnnotation{TypeAnnotation: kw(ast.KeywordString)}},
		ident("untyped"),
		&ast.Other{Type: "AssignmentPattern"},
	})

	b, ok := reg.Lookup("flag")
	require.True(t, ok)
	assert.True(t, IsKeyword(b.Declared, ast.KeywordBoolean))
	assert.Equal(t, lattice.Boolean, b.Kind)

	opt, ok := reg.Lookup("opt")
	require.True(t, ok)
	assert.True(t, opt.Optional)

	_, ok = reg.Lookup("untyped")
	assert.False(t, ok)
}
