package syntax

// Node is implemented by every syntax model variant. The set of variants is
// closed: only this package can implement the unexported method.
type Node interface {
	Kind() Kind
	// Parent is the enclosing node. It is a non-owning reference used for
	// contextual lookups only.
	Parent() Node
	// Usings are the imports this node itself declares, in insertion order.
	Usings() []*Using

	setParent(Node)
}

type base struct {
	parent Node
	usings []*Using
}

func (b *base) Parent() Node         { return b.parent }
func (b *base) Usings() []*Using     { return b.usings }
func (b *base) setParent(p Node)     { b.parent = p }
func (b *base) addUsings(u []*Using) { b.usings = append(b.usings, u...) }

// Using is an import declaration. A non-empty Alias makes it an alias import.
type Using struct {
	base
	Namespace string
	Alias     string
}

func (*Using) Kind() Kind { return KindUsing }

// Attribute is an annotation such as [Required] or [MaxLength(50)].
type Attribute struct {
	base
	Name      string
	Arguments []string
}

func (*Attribute) Kind() Kind { return KindAttribute }

// TypeRef references a type by name, optionally generic and nullable.
type TypeRef struct {
	base
	Name     string
	Generics []*TypeRef
	Nullable bool
}

func (*TypeRef) Kind() Kind { return KindTypeRef }

// Param is a method or constructor parameter.
type Param struct {
	base
	Name       string
	Type       *TypeRef
	Attributes []*Attribute
}

func (*Param) Kind() Kind { return KindParam }

// Expression is a body or initializer. Either Text is used verbatim, or
// Template is rendered with Tokens by the template collaborator.
type Expression struct {
	base
	Text     string
	Template string
	Tokens   map[string]any
}

func (*Expression) Kind() Kind { return KindExpression }

// IsTemplate reports whether the expression needs the template collaborator.
func (e *Expression) IsTemplate() bool {
	return e.Template != ""
}

// Field is a member variable.
type Field struct {
	base
	Name        string
	Type        *TypeRef
	Access      Access
	Static      bool
	ReadOnly    bool
	Initializer *Expression
}

func (*Field) Kind() Kind { return KindField }

// Property is an accessor-backed member.
type Property struct {
	base
	Name        string
	Type        *TypeRef
	Access      Access
	Accessors   Accessors
	Required    bool
	Attributes  []*Attribute
	Initializer *Expression
}

func (*Property) Kind() Kind { return KindProperty }

// Method is a member function. A nil ReturnType means void; a nil Body
// renders a declaration without a body.
type Method struct {
	base
	Name       string
	ReturnType *TypeRef
	Access     Access
	Static     bool
	Async      bool
	Override   bool
	Params     []*Param
	Attributes []*Attribute
	Body       *Expression
}

func (*Method) Kind() Kind { return KindMethod }

// Constructor is named after its enclosing type declaration. BaseArgs, when
// set, chains to the base constructor.
type Constructor struct {
	base
	Access   Access
	Params   []*Param
	BaseArgs []string
	Body     *Expression
}

func (*Constructor) Kind() Kind { return KindConstructor }

// TypeDecl is a class or interface declaration.
type TypeDecl struct {
	base
	kind         Kind
	Name         string
	Access       Access
	Static       bool
	Attributes   []*Attribute
	Implements   []*TypeRef
	Fields       []*Field
	Constructors []*Constructor
	Properties   []*Property
	Methods      []*Method
}

func (t *TypeDecl) Kind() Kind { return t.kind }

// MemberCount is the combined number of fields, constructors, properties and methods.
func (t *TypeDecl) MemberCount() int {
	return len(t.Fields) + len(t.Constructors) + len(t.Properties) + len(t.Methods)
}

// Document is the content of one code-bearing file.
type Document struct {
	base
	Namespace string
	Types     []*TypeDecl
}

func (*Document) Kind() Kind { return KindDocument }
