package lattice

import "github.com/gnolang/tslin/internal/ast"

// ValueKind models what is proven about the primitive kind of a value.
// Unknown is the top element: nothing is proven and no rule may flag.
type ValueKind int

const (
	Unknown ValueKind = iota
	String
	Number
	Boolean
	BigInt
)

func (v ValueKind) String() string {
	switch v {
	case String:
		return "string"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	case BigInt:
		return "bigint"
	default:
		return "unknown"
	}
}

// Known reports whether v carries a proven primitive kind.
func (v ValueKind) Known() bool {
	return v != Unknown
}

// Join returns the least upper bound: equal kinds stay, anything else is
// Unknown.
func Join(a, b ValueKind) ValueKind {
	if a == b {
		return a
	}
	return Unknown
}

// Refine merges a newly observed kind into a previously recorded one.
// Facts are never retracted: an Unknown observation keeps the recorded
// kind, a known observation replaces it.
func Refine(recorded, observed ValueKind) ValueKind {
	if observed.Known() {
		return observed
	}
	return recorded
}

// FromKeyword maps a primitive TS keyword to its value kind.
func FromKeyword(kw string) ValueKind {
	switch kw {
	case ast.KeywordString:
		return String
	case ast.KeywordNumber:
		return Number
	case ast.KeywordBoolean:
		return Boolean
	case ast.KeywordBigInt:
		return BigInt
	default:
		return Unknown
	}
}

// FromLiteral returns the kind of a literal node.
func FromLiteral(lit *ast.Literal) ValueKind {
	switch lit.Type {
	case ast.LiteralString:
		return String
	case ast.LiteralNumber:
		return Number
	case ast.LiteralBoolean:
		return Boolean
	case ast.LiteralBigInt:
		return BigInt
	default:
		return Unknown
	}
}
