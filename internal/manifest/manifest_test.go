package manifest

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/origadmin/scaffold/internal/artifact"
	"github.com/origadmin/scaffold/internal/config"
	"github.com/origadmin/scaffold/internal/errors"
	"github.com/origadmin/scaffold/internal/factory"
	"github.com/origadmin/scaffold/internal/fsys"
	"github.com/origadmin/scaffold/internal/generator"
	"github.com/origadmin/scaffold/internal/naming"
	"github.com/origadmin/scaffold/internal/syntaxgen"
	"github.com/origadmin/scaffold/internal/template"
)

func loadShop(t *testing.T) *Request {
	t.Helper()
	data, err := os.ReadFile("testdata/shop.yaml")
	require.NoError(t, err)
	req, err := Parse(data)
	require.NoError(t, err)
	return req
}

func newFactory() *factory.Factory {
	return factory.New(naming.NewConverter(), config.Default().Naming)
}

func TestParse(t *testing.T) {
	req := loadShop(t)

	assert.Equal(t, "Shop", req.Solution)
	assert.Equal(t, "Shop", req.RootNamespace())
	require.Len(t, req.Entities, 2)
	assert.Equal(t, "Title", req.Entities[1].Properties)
	require.Len(t, req.Projects, 4)
	assert.Equal(t, []string{"Shop.Data", "Shop.Domain"}, req.Projects[2].DependsOn)
	assert.Equal(t, []string{"npm install"}, req.Projects[3].PostCommands)
	assert.Equal(t, "# Shop\n", req.Files[0].Content)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", ""},
		{"no solution", "projects: []\n"},
		{"unknown key", "solution: Shop\nprojetcs: []\n"},
		{"unnamed project", "solution: Shop\nprojects:\n  - type: classlib\n"},
		{"unnamed entity", "solution: Shop\nentities:\n  - properties: Name\n"},
		{"not yaml", "solution: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidManifest), "got %v", err)
		})
	}
}

func TestBuild(t *testing.T) {
	s, err := Build(loadShop(t), newFactory(), DefaultMappings())
	require.NoError(t, err)

	assert.Equal(t, "Shop", s.Name)
	assert.Equal(t, []artifact.DependsOn{
		{From: "Shop.Data", To: "Shop.Domain"},
		{From: "Shop.Api", To: "Shop.Data"},
		{From: "Shop.Api", To: "Shop.Domain"},
	}, s.Edges)

	domain, ok := s.Project("Shop.Domain")
	require.True(t, ok)
	assert.Equal(t, artifact.ClassLib, domain.Type)
	require.Len(t, domain.Folders, 1)
	assert.Equal(t, "Entities", domain.Folders[0].Name)
	assert.Equal(t, "Customer.cs", domain.Folders[0].CodeFiles[0].Name)

	data, _ := s.Project("Shop.Data")
	assert.Equal(t, "IShopDbContext.cs", data.Folders[0].CodeFiles[0].Name)
	assert.Equal(t, "ShopDbContext.cs", data.Folders[0].CodeFiles[1].Name)

	api, _ := s.Project("Shop.Api")
	assert.Equal(t, artifact.WebAPI, api.Type)
	assert.Equal(t, "CustomerDto.cs", api.Folders[0].CodeFiles[0].Name)

	web, _ := s.Project("shop-web")
	assert.Empty(t, web.Folders)

	require.NoError(t, artifact.Validate(s))
}

func TestBuild_Errors(t *testing.T) {
	f := newFactory()

	_, err := Build(&Request{Solution: "S", Projects: []Project{{Name: "P", Layer: "presentation"}}}, f, DefaultMappings())
	assert.True(t, errors.Is(err, errors.ErrInvalidManifest))
	assert.Contains(t, errors.FlattenHints(err), "api, domain")

	_, err = Build(&Request{Solution: "S", Projects: []Project{{Name: "web", Type: "npm", Layer: "domain"}}}, f, DefaultMappings())
	assert.True(t, errors.Is(err, errors.ErrInvalidManifest))

	_, err = Build(&Request{Solution: "S", Projects: []Project{{Name: "P", Layer: "domain"}}}, f, Mappings{})
	assert.True(t, errors.Is(err, errors.ErrInvalidManifest), "the mapping table is the only source of layers")
}

type noopRunner struct{ commands []string }

func (r *noopRunner) Run(_ context.Context, command, _ string) (int, error) {
	r.commands = append(r.commands, command)
	return 0, nil
}

func TestManifestToSnapshot(t *testing.T) {
	s, err := Build(loadShop(t), newFactory(), DefaultMappings())
	require.NoError(t, err)

	tmpl, err := template.NewEngine(naming.NewConverter(), 16)
	require.NoError(t, err)
	g, err := syntaxgen.New(syntaxgen.WithTemplates(tmpl))
	require.NoError(t, err)
	mem := fsys.NewMemory()
	runner := &noopRunner{}
	engine, err := generator.New(mem, g, tmpl, generator.WithRunner(runner))
	require.NoError(t, err)

	require.NoError(t, engine.Generate(context.Background(), s, "out"))

	archive, err := fsys.Snapshot(mem.Fs(), "out")
	require.NoError(t, err)
	files := map[string]string{}
	var names []string
	for _, f := range archive.Files {
		names = append(names, f.Name)
		files[f.Name] = string(f.Data)
	}
	assert.Equal(t, []string{
		"Shop/README.md",
		"Shop/Shop.Api/Dtos/CategoryDto.cs",
		"Shop/Shop.Api/Dtos/CustomerDto.cs",
		"Shop/Shop.Api/Shop.Api.csproj",
		"Shop/Shop.Data/Data/IShopDbContext.cs",
		"Shop/Shop.Data/Data/ShopDbContext.cs",
		"Shop/Shop.Data/Shop.Data.csproj",
		"Shop/Shop.Domain/Entities/Category.cs",
		"Shop/Shop.Domain/Entities/Customer.cs",
		"Shop/Shop.Domain/Shop.Domain.csproj",
		"Shop/Shop.sln",
		"Shop/shop-web/package.json",
	}, names)
	assert.Equal(t, []string{"npm install"}, runner.commands)

	wantContext := `using Shop.Entities;
using Microsoft.EntityFrameworkCore;

namespace Shop.Data;

public class ShopDbContext : DbContext, IShopDbContext
{
    public ShopDbContext(DbContextOptions<ShopDbContext> options) : base(options) { }

    public DbSet<Customer> Customers { get; set; } = null!;

    public DbSet<Category> Categories { get; set; } = null!;
}
`
	assert.Equal(t, wantContext, files["Shop/Shop.Data/Data/ShopDbContext.cs"])

	wantInterface := `using Shop.Entities;
using Microsoft.EntityFrameworkCore;
using System.Threading;
using System.Threading.Tasks;

namespace Shop.Data;

public interface IShopDbContext
{
    DbSet<Customer> Customers { get; }

    DbSet<Category> Categories { get; }

    Task<int> SaveChangesAsync(CancellationToken cancellationToken);
}
`
	assert.Equal(t, wantInterface, files["Shop/Shop.Data/Data/IShopDbContext.cs"])

	wantEntity := `using System;

namespace Shop.Entities;

public class Category
{
    public string Title { get; set; }

    public Guid CategoryId { get; set; }
}
`
	assert.Equal(t, wantEntity, files["Shop/Shop.Domain/Entities/Category.cs"])
	assert.Contains(t, files["Shop/Shop.Api/Shop.Api.csproj"], `<ProjectReference Include="..\Shop.Data\Shop.Data.csproj" />`)
}
