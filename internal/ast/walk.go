package ast

// Children returns the direct, non-nil children of n in source order.
func Children(n Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, c := range nodes {
			if c != nil {
				out = append(out, c)
			}
		}
	}

	switch n := n.(type) {
	case *Other:
		add(n.Nodes...)
	case *Program:
		add(n.Body...)
	case *ExpressionStatement:
		add(n.Expression)
	case *VariableDeclaration:
		add(n.Declarations...)
	case *VariableDeclarator:
		add(n.ID, n.Init)
	case *FunctionDeclaration:
		add(n.ID)
		add(n.Params...)
		add(n.Body)
	case *FunctionExpression:
		add(n.ID)
		add(n.Params...)
		add(n.Body)
	case *ArrowFunctionExpression:
		add(n.Params...)
		add(n.Body)
	case *ClassDeclaration:
		add(n.ID)
		add(n.Body...)
	case *PropertyDefinition:
		add(n.Key, n.Value)
	case *MethodDefinition:
		add(n.Key, n.Value)
	case *TSTypeAliasDeclaration:
		add(n.ID, n.TypeAnnotation)
	case *TSInterfaceDeclaration:
		add(n.ID)
		add(n.Body...)
	case *TSPropertySignature:
		add(n.Key, n.TypeAnnotation)
	case *TSMethodSignature:
		add(n.Key)
	case *Identifier:
		add(n.TypeAnnotation)
	case *TemplateLiteral:
		add(n.Expressions...)
	case *BinaryExpression:
		add(n.Left, n.Right)
	case *LogicalExpression:
		add(n.Left, n.Right)
	case *UnaryExpression:
		add(n.Argument)
	case *AssignmentExpression:
		add(n.Left, n.Right)
	case *CallExpression:
		add(n.Callee)
		add(n.Arguments...)
	case *NewExpression:
		add(n.Callee)
		add(n.Arguments...)
	case *MemberExpression:
		add(n.Object, n.Property)
	case *ArrayExpression:
		add(n.Elements...)
	case *ObjectExpression:
		add(n.Properties...)
	case *Property:
		if n.Shorthand {
			add(n.Value)
		} else {
			add(n.Key, n.Value)
		}
	case *TSAsExpression:
		add(n.Expression, n.TypeAnnotation)
	case *TSTypeAssertion:
		add(n.TypeAnnotation, n.Expression)
	case *TSNonNullExpression:
		add(n.Expression)
	case *TSTypeAnnotation:
		add(n.TypeAnnotation)
	case *TSTypeReference:
		add(n.TypeName)
		add(n.TypeArguments...)
	case *TSArrayType:
		add(n.ElementType)
	case *TSUnionType:
		add(n.Types...)
	case *TSLiteralType:
		add(n.Literal)
	case *TSTypeLiteral:
		add(n.Members...)
	case *TSOptionalType:
		add(n.TypeAnnotation)
	}
	return out
}

// Inspect traverses the tree rooted at n in pre-order. If f returns false
// the children of the current node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

// Link sets the parent back-reference of every node below root.
func Link(root Node) {
	Inspect(root, func(n Node) bool {
		for _, c := range Children(n) {
			c.setParent(n)
		}
		return true
	})
}

// IdentName returns the name of n if it is an Identifier.
func IdentName(n Node) (string, bool) {
	id, ok := n.(*Identifier)
	if !ok {
		return "", false
	}
	return id.Name, true
}

// IsKeyword reports whether n is the TS keyword type kw.
func IsKeyword(n Node, kw string) bool {
	k, ok := n.(*TSKeyword)
	return ok && k.Keyword == kw
}

// UnwrapAnnotation strips a TSTypeAnnotation wrapper, if any.
func UnwrapAnnotation(n Node) Node {
	if ann, ok := n.(*TSTypeAnnotation); ok {
		return ann.TypeAnnotation
	}
	return n
}

// IsEmptyString reports whether n is the literal "".
func IsEmptyString(n Node) bool {
	lit, ok := n.(*Literal)
	return ok && lit.Type == LiteralString && lit.String == ""
}

// BoolLiteral returns the value of n if it is a boolean literal.
func BoolLiteral(n Node) (value bool, ok bool) {
	lit, isLit := n.(*Literal)
	if !isLit || lit.Type != LiteralBoolean {
		return false, false
	}
	return lit.Bool, true
}
