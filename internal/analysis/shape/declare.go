package shape

import (
	"github.com/gnolang/tslin/internal/analysis/lattice"
	"github.com/gnolang/tslin/internal/ast"
)

// DeclareTypeAlias records `type Name = T`.
func (r *Registry) DeclareTypeAlias(n *ast.TSTypeAliasDeclaration) {
	name, ok := ast.IdentName(n.ID)
	if !ok {
		return
	}
	d := FromType(n.TypeAnnotation)
	b := Binding{Name: name, Declared: d, Origin: OriginAlias}
	if obj, ok := d.(Object); ok {
		b.Properties = toSet(obj.Properties)
	}
	r.Define(b)
}

// DeclareInterface records an interface and its property and method
// signatures.
func (r *Registry) DeclareInterface(n *ast.TSInterfaceDeclaration) {
	name, ok := ast.IdentName(n.ID)
	if !ok {
		return
	}
	r.Define(Binding{
		Name:       name,
		Declared:   Reference{Name: name},
		Properties: toSet(memberNames(n.Body)),
		Origin:     OriginInterface,
	})
}

// DeclareClass records a class declaration and its fields and methods.
func (r *Registry) DeclareClass(n *ast.ClassDeclaration) {
	name, ok := ast.IdentName(n.ID)
	if !ok {
		return
	}
	r.Define(Binding{
		Name:       name,
		Declared:   Reference{Name: name},
		Properties: toSet(memberNames(n.Body)),
		Origin:     OriginClass,
	})
}

// DeclareVariable records `name: T = init`. initKind is the kind inferred
// for the initialiser; an annotated primitive type takes precedence.
func (r *Registry) DeclareVariable(n *ast.VariableDeclarator, initKind lattice.ValueKind) {
	id, ok := n.ID.(*ast.Identifier)
	if !ok {
		return
	}

	b := Binding{
		Name:       id.Name,
		Optional:   id.Optional,
		Properties: make(map[string]struct{}),
		Origin:     OriginPlain,
		Kind:       initKind,
	}
	if id.TypeAnnotation != nil {
		b.Declared = FromType(id.TypeAnnotation)
		if obj, ok := b.Declared.(Object); ok {
			for _, p := range obj.Properties {
				b.Properties[p] = struct{}{}
			}
		}
		if kind := ValueKind(b.Declared); kind.Known() {
			b.Kind = kind
		} else if b.Declared != nil {
			// a declared non-primitive type overrides what the initialiser
			// suggests, e.g. `let x: string | number = 1`
			b.Kind = lattice.Unknown
		}
	}

	switch init := n.Init.(type) {
	case *ast.ObjectExpression:
		b.Origin = OriginObjectLiteral
		for _, p := range init.Properties {
			prop, ok := p.(*ast.Property)
			if !ok || prop.Computed {
				continue
			}
			if key, ok := ast.IdentName(prop.Key); ok {
				b.Properties[key] = struct{}{}
			}
		}
	case *ast.NewExpression:
		if class, ok := ast.IdentName(init.Callee); ok {
			b.ClassName = class
		}
	}

	r.Define(b)
}

// DeclareParams records the typed identifier parameters of a function.
// Destructured and defaulted parameters are ignored.
func (r *Registry) DeclareParams(params []ast.Node) {
	for _, p := range params {
		id, ok := p.(*ast.Identifier)
		if !ok || id.TypeAnnotation == nil {
			continue
		}
		d := FromType(id.TypeAnnotation)
		b := Binding{
			Name:     id.Name,
			Declared: d,
			Kind:     ValueKind(d),
			Optional: id.Optional,
			Origin:   OriginPlain,
		}
		if obj, ok := d.(Object); ok {
			b.Properties = toSet(obj.Properties)
		}
		r.Define(b)
	}
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
