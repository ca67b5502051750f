// Package factory builds populated syntax model trees from simple descriptors.
// Factories are pure: they perform no I/O and never touch a renderer.
package factory

import (
	"strings"

	"github.com/samber/lo"

	"github.com/origadmin/scaffold/internal/config"
	"github.com/origadmin/scaffold/internal/naming"
	"github.com/origadmin/scaffold/internal/syntax"
)

// DefaultPropertyType is used for descriptors without a type.
const DefaultPropertyType = "string"

// dtoMapping is the body of the generated FromEntity methods.
const dtoMapping = `return new {{ .Dto }}
{
{{- range .Properties }}
    {{ . }} = entity.{{ . }},
{{- end }}
};`

// typeNamespaces maps well-known type names to the namespace that declares them.
var typeNamespaces = map[string]string{
	"Guid":           "System",
	"DateTime":       "System",
	"DateTimeOffset": "System",
	"TimeSpan":       "System",
	"List":           "System.Collections.Generic",
	"Dictionary":     "System.Collections.Generic",
	"IEnumerable":    "System.Collections.Generic",
	"ICollection":    "System.Collections.Generic",
	"HashSet":        "System.Collections.Generic",
}

// PropertyDescriptor is one name:type pair.
type PropertyDescriptor struct {
	Name string
	Type string
}

// ParseProperties parses "Name:string, Age:int". Whitespace around names and
// types is ignored, empty items are skipped and a missing type means string.
func ParseProperties(list string) []PropertyDescriptor {
	items := lo.Compact(lo.Map(strings.Split(list, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))

	props := make([]PropertyDescriptor, 0, len(items))
	for _, item := range items {
		name, typ, _ := strings.Cut(item, ":")
		name, typ = strings.TrimSpace(name), strings.TrimSpace(typ)
		if name == "" {
			continue
		}
		if typ == "" {
			typ = DefaultPropertyType
		}
		props = append(props, PropertyDescriptor{Name: name, Type: typ})
	}
	return props
}

// Factory creates syntax models using the configured naming rules.
type Factory struct {
	conv           naming.Converter
	identifierType string
	dtoSuffix      string
	contextSuffix  string
}

// New creates a Factory. Empty settings fall back to the configuration defaults.
func New(conv naming.Converter, cfg config.NamingConfig) *Factory {
	def := config.Default().Naming
	return &Factory{
		conv:           conv,
		identifierType: lo.CoalesceOrEmpty(cfg.IdentifierType, def.IdentifierType),
		dtoSuffix:      lo.CoalesceOrEmpty(cfg.DtoSuffix, def.DtoSuffix),
		contextSuffix:  lo.CoalesceOrEmpty(cfg.ContextSuffix, def.ContextSuffix),
	}
}

// IdentifierName is the name of the identifier property of entity.
func (f *Factory) IdentifierName(entity string) string {
	// flect would turn "CustomerId" into "CustomerID".
	return f.typeName(entity) + "Id"
}

// CreateEntity builds an entity class with one property per descriptor,
// followed by a synthesized <Name>Id property unless one was given.
func (f *Factory) CreateEntity(name string, props []PropertyDescriptor) *syntax.TypeDecl {
	cls := syntax.NewClass(f.typeName(name))
	for _, p := range props {
		cls.AddProperty(f.property(p.Name, syntax.ParseTypeRef(p.Type)))
	}

	id := f.IdentifierName(name)
	if _, ok := cls.Property(id); !ok {
		cls.AddProperty(f.property(id, syntax.NewTypeRef(f.identifierType)))
	}
	return cls
}

// CreateEntityFromList is CreateEntity over a "Name:type,..." list.
func (f *Factory) CreateEntityFromList(name, list string) *syntax.TypeDecl {
	return f.CreateEntity(name, ParseProperties(list))
}

// DtoName is the data-transfer type name of entity.
func (f *Factory) DtoName(entity string) string {
	return f.typeName(entity) + f.dtoSuffix
}

// CreateDto builds the data-transfer class of entity: the same properties and
// a static FromEntity mapping method whose body is a template expression.
func (f *Factory) CreateDto(entity *syntax.TypeDecl) *syntax.TypeDecl {
	name := f.DtoName(entity.Name)
	dto := syntax.NewClass(name)
	for _, p := range entity.Properties {
		dto.AddProperty(f.property(p.Name, cloneTypeRef(p.Type)))
	}

	from := syntax.NewMethod("FromEntity", syntax.NewTypeRef(name)).
		AddParam(syntax.NewParam("entity", syntax.NewTypeRef(entity.Name))).
		WithBody(syntax.FromTemplate(dtoMapping, map[string]any{
			"Dto": name,
			"Properties": lo.Map(entity.Properties, func(p *syntax.Property, _ int) string {
				return p.Name
			}),
		}))
	from.Static = true
	return dto.AddMethod(from)
}

// ContextName is the persistence context class name of app.
func (f *Factory) ContextName(app string) string {
	return f.typeName(app) + f.contextSuffix
}

// ContextInterfaceName is the persistence context interface name of app.
func (f *Factory) ContextInterfaceName(app string) string {
	return "I" + f.ContextName(app)
}

// CreateDbContextInterface builds the persistence context interface exposing
// one set per entity and SaveChangesAsync.
func (f *Factory) CreateDbContextInterface(app string, entities []*syntax.TypeDecl) *syntax.TypeDecl {
	iface := syntax.NewInterface(f.ContextInterfaceName(app)).
		AddUsing(syntax.NewUsing("Microsoft.EntityFrameworkCore"))
	for _, e := range entities {
		set := f.entitySet(e)
		set.Accessors = syntax.GetOnly
		iface.AddProperty(set)
	}

	save := syntax.NewMethod("SaveChangesAsync", syntax.NewTypeRef("Task", syntax.NewTypeRef("int"))).
		AddParam(syntax.NewParam("cancellationToken", syntax.NewTypeRef("CancellationToken"))).
		AddUsing(syntax.NewUsing("System.Threading"), syntax.NewUsing("System.Threading.Tasks"))
	return iface.AddMethod(save)
}

// CreateDbContext builds the persistence context class implementing the
// interface from CreateDbContextInterface.
func (f *Factory) CreateDbContext(app string, entities []*syntax.TypeDecl) *syntax.TypeDecl {
	name := f.ContextName(app)
	cls := syntax.NewClass(name).
		AddUsing(syntax.NewUsing("Microsoft.EntityFrameworkCore")).
		Implement(syntax.NewTypeRef("DbContext"), syntax.NewTypeRef(f.ContextInterfaceName(app)))

	ctor := syntax.NewConstructor().
		AddParam(syntax.NewParam("options", syntax.NewTypeRef("DbContextOptions", syntax.NewTypeRef(name))))
	ctor.BaseArgs = []string{"options"}
	cls.AddConstructor(ctor)

	for _, e := range entities {
		cls.AddProperty(f.entitySet(e).WithInitializer(syntax.Raw("null!")))
	}
	return cls
}

// CreateDocument wraps decl in a document for namespace.
func (f *Factory) CreateDocument(namespace string, decl *syntax.TypeDecl, usings ...*syntax.Using) *syntax.Document {
	return syntax.NewDocument(namespace).AddUsing(usings...).AddType(decl)
}

func (f *Factory) entitySet(entity *syntax.TypeDecl) *syntax.Property {
	plural := f.conv.Convert(naming.Pascal, entity.Name, true)
	return syntax.NewProperty(plural, syntax.NewTypeRef("DbSet", syntax.NewTypeRef(entity.Name)))
}

// property creates a property and declares the imports its type needs.
func (f *Factory) property(name string, typ *syntax.TypeRef) *syntax.Property {
	p := syntax.NewProperty(name, typ)
	syntax.Walk(typ, func(n syntax.Node) bool {
		if ns, ok := typeNamespaces[n.(*syntax.TypeRef).Name]; ok {
			p.AddUsing(syntax.NewUsing(ns))
		}
		return true
	})
	return p
}

// typeName keeps names that already start upper-case as they are, so
// "OrderLine" is not reflowed by the converter.
func (f *Factory) typeName(name string) string {
	if name == "" || naming.Capitalize(name) == name {
		return name
	}
	return f.conv.Convert(naming.Pascal, name, false)
}

func cloneTypeRef(t *syntax.TypeRef) *syntax.TypeRef {
	if t == nil {
		return nil
	}
	c := syntax.NewTypeRef(t.Name)
	c.Nullable = t.Nullable
	for _, g := range t.Generics {
		c.AddGeneric(cloneTypeRef(g))
	}
	return c
}
