// Package syntax defines the syntax model: a closed set of node variants
// describing source code before it is rendered to text.
package syntax

// Kind is the variant tag of a Node.
type Kind int

const (
	KindUnknown Kind = iota
	KindUsing
	KindAttribute
	KindTypeRef
	KindParam
	KindExpression
	KindField
	KindProperty
	KindMethod
	KindConstructor
	KindClass
	KindInterface
	KindDocument
)

func (k Kind) String() string {
	switch k {
	case KindUsing:
		return "Using"
	case KindAttribute:
		return "Attribute"
	case KindTypeRef:
		return "TypeRef"
	case KindParam:
		return "Param"
	case KindExpression:
		return "Expression"
	case KindField:
		return "Field"
	case KindProperty:
		return "Property"
	case KindMethod:
		return "Method"
	case KindConstructor:
		return "Constructor"
	case KindClass:
		return "Class"
	case KindInterface:
		return "Interface"
	case KindDocument:
		return "Document"
	default:
		return "Unknown"
	}
}

// IsTypeDecl reports whether the kind is a type declaration.
func (k Kind) IsTypeDecl() bool {
	return k == KindClass || k == KindInterface
}

// Keyword returns the declaration keyword of a type-declaration kind.
func (k Kind) Keyword() string {
	switch k {
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	default:
		return ""
	}
}

// Access is the access level of a declaration.
type Access int

const (
	Public Access = iota
	Internal
	Protected
	Private
	// NoAccess renders no keyword at all.
	NoAccess
)

// Keyword returns the source keyword, empty for NoAccess.
func (a Access) Keyword() string {
	switch a {
	case Public:
		return "public"
	case Internal:
		return "internal"
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return ""
	}
}

// Accessors selects the accessor list of a property.
type Accessors int

const (
	GetSet Accessors = iota
	GetOnly
	GetInit
)
