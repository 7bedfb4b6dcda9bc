// Package shape keeps the structural facts discovered while a single syntax
// tree is traversed: declared types, inferred primitive kinds and the known
// property names of aliases, interfaces, classes and object-literal
// bindings.
//
// There is no scope stack. Names are tracked flat for the whole traversal,
// so a shadowing declaration in a nested scope overwrites the outer one.
package shape

import (
	"sort"

	"github.com/gnolang/tslin/internal/analysis/lattice"
)

// Origin records what kind of declaration introduced a binding.
type Origin int

const (
	OriginPlain Origin = iota
	OriginAlias
	OriginInterface
	OriginClass
	OriginObjectLiteral
)

func (o Origin) String() string {
	switch o {
	case OriginAlias:
		return "alias"
	case OriginInterface:
		return "interface"
	case OriginClass:
		return "class"
	case OriginObjectLiteral:
		return "object-literal"
	default:
		return "plain"
	}
}

// Binding is one tracked name.
type Binding struct {
	Name string
	// Declared is the annotated type, or the aliased type for OriginAlias.
	Declared Descriptor
	Kind     lattice.ValueKind
	// Optional is set for `x?: T` parameters.
	Optional   bool
	Properties map[string]struct{}
	Origin     Origin
	// ClassName is set when the binding was initialised by `new C(...)`.
	ClassName string
}

// HasProperty reports whether prop is among the binding's own properties.
func (b *Binding) HasProperty(prop string) bool {
	_, ok := b.Properties[prop]
	return ok
}

// Registry maps names to bindings for the duration of one traversal.
// It is not safe for concurrent use; each traversal owns its registry.
type Registry struct {
	bindings map[string]*Binding
}

func NewRegistry() *Registry {
	return &Registry{bindings: make(map[string]*Binding)}
}

// Define records b under b.Name. The declared type, property shape and
// origin follow last-write-wins. Without a declared type the value kind
// is refined, so an unannotated redeclaration that proves nothing does
// not retract a known kind.
func (r *Registry) Define(b Binding) {
	if b.Properties == nil {
		b.Properties = make(map[string]struct{})
	}
	if prev, ok := r.bindings[b.Name]; ok && b.Declared == nil {
		b.Kind = lattice.Refine(prev.Kind, b.Kind)
	}
	r.bindings[b.Name] = &b
}

// Lookup returns the binding for name.
func (r *Registry) Lookup(name string) (*Binding, bool) {
	b, ok := r.bindings[name]
	return b, ok
}

// KindOf returns the recorded value kind of name, Unknown when untracked.
func (r *Registry) KindOf(name string) lattice.ValueKind {
	if b, ok := r.bindings[name]; ok {
		return b.Kind
	}
	return lattice.Unknown
}

// Resolve returns the descriptor named by name, following exactly one
// alias hop. Alias chains are not chased.
func (r *Registry) Resolve(name string) (Descriptor, bool) {
	b, ok := r.bindings[name]
	if !ok || b.Origin != OriginAlias || b.Declared == nil {
		return nil, false
	}
	return b.Declared, true
}

// ResolveType replaces a reference to an alias by the aliased type (one
// hop). Any other descriptor is returned unchanged.
func (r *Registry) ResolveType(d Descriptor) Descriptor {
	ref, ok := d.(Reference)
	if !ok || len(ref.Args) > 0 {
		return d
	}
	if resolved, ok := r.Resolve(ref.Name); ok {
		return resolved
	}
	return d
}

// Nullable reports whether d may hold null or undefined. References, bare
// or as union members, are resolved one alias hop. Type arguments are
// ignored for the lookup, since `type Maybe<T> = T | null` is nullable
// whatever T is; a non-nullable body is only trusted when no argument is
// nullable either, as the body may be just `T`.
func (r *Registry) Nullable(d Descriptor) bool {
	switch d := d.(type) {
	case Reference:
		resolved, ok := r.Resolve(d.Name)
		if !ok {
			return false
		}
		if Nullable(resolved) {
			return true
		}
		for _, arg := range d.Args {
			if arg == nil || r.Nullable(arg) {
				return true
			}
		}
		return false
	case Union:
		for _, m := range d.Members {
			if r.Nullable(m) {
				return true
			}
		}
		return false
	}
	return Nullable(d)
}

// ClassOf returns the class a binding was constructed from.
func (r *Registry) ClassOf(name string) (string, bool) {
	b, ok := r.bindings[name]
	if !ok || b.ClassName == "" {
		return "", false
	}
	return b.ClassName, true
}

// HasProperty reports whether prop is statically known to exist on the
// value bound to name. Alias, interface and class names are types rather
// than values; their members are not properties of the name itself.
func (r *Registry) HasProperty(name, prop string) bool {
	b, ok := r.bindings[name]
	if !ok {
		return false
	}
	switch b.Origin {
	case OriginAlias, OriginInterface, OriginClass:
		return false
	}
	_, ok = r.properties(b)[prop]
	return ok
}

// PropertiesOf returns the sorted set of property names known for name.
func (r *Registry) PropertiesOf(name string) []string {
	b, ok := r.bindings[name]
	if !ok {
		return nil
	}
	set := r.properties(b)
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// properties unions the binding's own properties with those of the class
// it was constructed from and of the shape its declared type refers to,
// each one hop away.
func (r *Registry) properties(b *Binding) map[string]struct{} {
	set := make(map[string]struct{}, len(b.Properties))
	for p := range b.Properties {
		set[p] = struct{}{}
	}
	var related []string
	if class, ok := r.ClassOf(b.Name); ok {
		related = append(related, class)
	}
	if ref, ok := b.Declared.(Reference); ok && ref.Name != b.Name {
		related = append(related, ref.Name)
	}
	for _, other := range related {
		if ob, ok := r.bindings[other]; ok && ob.Origin != OriginPlain {
			for p := range ob.Properties {
				set[p] = struct{}{}
			}
		}
	}
	return set
}

// TypeNameOf renders the type a value binding is known to have, for
// assertion equivalence: its declared annotation, or the class it was
// constructed from. Alias, interface and class names are types rather
// than values and yield false.
func (r *Registry) TypeNameOf(name string) (string, bool) {
	b, ok := r.bindings[name]
	if !ok {
		return "", false
	}
	switch b.Origin {
	case OriginAlias, OriginInterface, OriginClass:
		return "", false
	}
	if b.Declared != nil {
		return TypeName(b.Declared)
	}
	if b.ClassName != "" {
		return b.ClassName, true
	}
	return "", false
}
