package syntax

// NewUsing creates a plain import of namespace.
func NewUsing(namespace string) *Using {
	return &Using{Namespace: namespace}
}

// NewAliasUsing creates an alias import: using alias = namespace;
func NewAliasUsing(alias, namespace string) *Using {
	return &Using{Namespace: namespace, Alias: alias}
}

// NewAttribute creates an attribute with optional arguments.
func NewAttribute(name string, args ...string) *Attribute {
	return &Attribute{Name: name, Arguments: args}
}

// NewTypeRef creates a reference to name with optional generic arguments.
func NewTypeRef(name string, generics ...*TypeRef) *TypeRef {
	t := &TypeRef{Name: name}
	for _, g := range generics {
		t.AddGeneric(g)
	}
	return t
}

// AddGeneric appends a generic argument.
func (t *TypeRef) AddGeneric(g *TypeRef) *TypeRef {
	g.setParent(t)
	t.Generics = append(t.Generics, g)
	return t
}

// NewParam creates a parameter.
func NewParam(name string, typ *TypeRef) *Param {
	p := &Param{Name: name}
	if typ != nil {
		typ.setParent(p)
		p.Type = typ
	}
	return p
}

// Raw creates an expression rendered verbatim.
func Raw(text string) *Expression {
	return &Expression{Text: text}
}

// FromTemplate creates an expression rendered by the template collaborator.
func FromTemplate(text string, tokens map[string]any) *Expression {
	return &Expression{Template: text, Tokens: tokens}
}

// NewField creates a private field.
func NewField(name string, typ *TypeRef) *Field {
	f := &Field{Name: name, Access: Private}
	if typ != nil {
		typ.setParent(f)
		f.Type = typ
	}
	return f
}

// WithInitializer sets the initializer expression.
func (f *Field) WithInitializer(e *Expression) *Field {
	e.setParent(f)
	f.Initializer = e
	return f
}

// NewProperty creates a public get/set property.
func NewProperty(name string, typ *TypeRef) *Property {
	p := &Property{Name: name}
	if typ != nil {
		typ.setParent(p)
		p.Type = typ
	}
	return p
}

// AddAttribute appends an attribute.
func (p *Property) AddAttribute(a *Attribute) *Property {
	a.setParent(p)
	p.Attributes = append(p.Attributes, a)
	return p
}

// AddUsing declares imports the property needs.
func (p *Property) AddUsing(u ...*Using) *Property {
	p.addUsings(u)
	return p
}

// WithInitializer sets the initializer expression.
func (p *Property) WithInitializer(e *Expression) *Property {
	e.setParent(p)
	p.Initializer = e
	return p
}

// NewMethod creates a public method. A nil returnType is void.
func NewMethod(name string, returnType *TypeRef) *Method {
	m := &Method{Name: name}
	if returnType != nil {
		returnType.setParent(m)
		m.ReturnType = returnType
	}
	return m
}

// AddParam appends parameters.
func (m *Method) AddParam(params ...*Param) *Method {
	for _, p := range params {
		p.setParent(m)
		m.Params = append(m.Params, p)
	}
	return m
}

// AddAttribute appends an attribute.
func (m *Method) AddAttribute(a *Attribute) *Method {
	a.setParent(m)
	m.Attributes = append(m.Attributes, a)
	return m
}

// AddUsing declares imports the method needs.
func (m *Method) AddUsing(u ...*Using) *Method {
	m.addUsings(u)
	return m
}

// WithBody sets the method body.
func (m *Method) WithBody(e *Expression) *Method {
	e.setParent(m)
	m.Body = e
	return m
}

// NewConstructor creates a public constructor with an empty body.
func NewConstructor() *Constructor {
	c := &Constructor{}
	return c.WithBody(Raw(""))
}

// AddParam appends parameters.
func (c *Constructor) AddParam(params ...*Param) *Constructor {
	for _, p := range params {
		p.setParent(c)
		c.Params = append(c.Params, p)
	}
	return c
}

// WithBody sets the constructor body.
func (c *Constructor) WithBody(e *Expression) *Constructor {
	e.setParent(c)
	c.Body = e
	return c
}

// NewClass creates a public class declaration.
func NewClass(name string) *TypeDecl {
	return &TypeDecl{kind: KindClass, Name: name}
}

// NewInterface creates a public interface declaration.
func NewInterface(name string) *TypeDecl {
	return &TypeDecl{kind: KindInterface, Name: name}
}

// AddUsing declares imports the type needs. Alias imports are rendered with
// the type declaration itself.
func (t *TypeDecl) AddUsing(u ...*Using) *TypeDecl {
	t.addUsings(u)
	return t
}

// AddAttribute appends an attribute.
func (t *TypeDecl) AddAttribute(a *Attribute) *TypeDecl {
	a.setParent(t)
	t.Attributes = append(t.Attributes, a)
	return t
}

// Implement appends implemented or inherited types.
func (t *TypeDecl) Implement(refs ...*TypeRef) *TypeDecl {
	for _, r := range refs {
		r.setParent(t)
		t.Implements = append(t.Implements, r)
	}
	return t
}

// AddField appends fields.
func (t *TypeDecl) AddField(fields ...*Field) *TypeDecl {
	for _, f := range fields {
		f.setParent(t)
		t.Fields = append(t.Fields, f)
	}
	return t
}

// AddConstructor appends constructors.
func (t *TypeDecl) AddConstructor(ctors ...*Constructor) *TypeDecl {
	for _, c := range ctors {
		c.setParent(t)
		t.Constructors = append(t.Constructors, c)
	}
	return t
}

// AddProperty appends properties.
func (t *TypeDecl) AddProperty(props ...*Property) *TypeDecl {
	for _, p := range props {
		p.setParent(t)
		t.Properties = append(t.Properties, p)
	}
	return t
}

// AddMethod appends methods.
func (t *TypeDecl) AddMethod(methods ...*Method) *TypeDecl {
	for _, m := range methods {
		m.setParent(t)
		t.Methods = append(t.Methods, m)
	}
	return t
}

// Property returns the property called name, if any.
func (t *TypeDecl) Property(name string) (*Property, bool) {
	for _, p := range t.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// NewDocument creates a document for namespace. An empty namespace renders
// no namespace declaration.
func NewDocument(namespace string) *Document {
	return &Document{Namespace: namespace}
}

// AddUsing declares document-level imports.
func (d *Document) AddUsing(u ...*Using) *Document {
	d.addUsings(u)
	return d
}

// AddType appends type declarations.
func (d *Document) AddType(types ...*TypeDecl) *Document {
	for _, t := range types {
		t.setParent(d)
		d.Types = append(d.Types, t)
	}
	return d
}
