package manifest

import (
	"slices"

	"github.com/samber/lo"

	"github.com/origadmin/scaffold/internal/artifact"
	"github.com/origadmin/scaffold/internal/factory"
	"github.com/origadmin/scaffold/internal/syntax"
)

// LayerInput is what a layer needs to populate a project.
type LayerInput struct {
	Factory     *factory.Factory
	Application string
	Namespace   string
	Entities    []Entity
}

// Layer produces the folders of a project. Layers build fresh syntax trees on
// every call, so two projects never share nodes.
type Layer func(in LayerInput) []*artifact.Folder

// Mappings binds layer names to layers.
type Mappings map[string]Layer

// Names returns the non-empty layer names in sorted order.
func (m Mappings) Names() []string {
	names := lo.Compact(lo.Keys(map[string]Layer(m)))
	slices.Sort(names)
	return names
}

// DefaultMappings is the built-in layer table:
//
//	domain          Entities/<Entity>.cs
//	infrastructure  Data/I<App>DbContext.cs and Data/<App>DbContext.cs
//	api             Dtos/<Entity>Dto.cs
//	none            nothing
//
// An empty layer is the same as none.
func DefaultMappings() Mappings {
	return Mappings{
		"":               noLayer,
		"none":           noLayer,
		"domain":         domainLayer,
		"infrastructure": infrastructureLayer,
		"api":            apiLayer,
	}
}

func noLayer(LayerInput) []*artifact.Folder { return nil }

func (in LayerInput) entities() []*syntax.TypeDecl {
	return lo.Map(in.Entities, func(e Entity, _ int) *syntax.TypeDecl {
		return in.Factory.CreateEntityFromList(e.Name, e.Properties)
	})
}

func (in LayerInput) entityNamespace() string {
	return in.Namespace + ".Entities"
}

func codeFile(name string, doc *syntax.Document) *artifact.CodeFile {
	return &artifact.CodeFile{Name: name + ".cs", Model: doc}
}

func domainLayer(in LayerInput) []*artifact.Folder {
	folder := &artifact.Folder{Name: "Entities"}
	for _, e := range in.entities() {
		folder.CodeFiles = append(folder.CodeFiles, codeFile(e.Name, in.Factory.CreateDocument(in.entityNamespace(), e)))
	}
	return []*artifact.Folder{folder}
}

func infrastructureLayer(in LayerInput) []*artifact.Folder {
	ns := in.Namespace + ".Data"
	entities := syntax.NewUsing(in.entityNamespace())

	iface := in.Factory.CreateDbContextInterface(in.Application, in.entities())
	ctx := in.Factory.CreateDbContext(in.Application, in.entities())
	return []*artifact.Folder{{
		Name: "Data",
		CodeFiles: []*artifact.CodeFile{
			codeFile(iface.Name, in.Factory.CreateDocument(ns, iface, entities)),
			codeFile(ctx.Name, in.Factory.CreateDocument(ns, ctx, syntax.NewUsing(in.entityNamespace()))),
		},
	}}
}

func apiLayer(in LayerInput) []*artifact.Folder {
	ns := in.Namespace + ".Dtos"
	folder := &artifact.Folder{Name: "Dtos"}
	for _, e := range in.entities() {
		dto := in.Factory.CreateDto(e)
		folder.CodeFiles = append(folder.CodeFiles,
			codeFile(dto.Name, in.Factory.CreateDocument(ns, dto, syntax.NewUsing(in.entityNamespace()))))
	}
	return []*artifact.Folder{folder}
}
