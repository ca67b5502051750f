package generator

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/origadmin/scaffold/internal/artifact"
	"github.com/origadmin/scaffold/internal/errors"
	"github.com/origadmin/scaffold/internal/fsys"
	"github.com/origadmin/scaffold/internal/naming"
	"github.com/origadmin/scaffold/internal/syntax"
	"github.com/origadmin/scaffold/internal/syntaxgen"
	"github.com/origadmin/scaffold/internal/template"
)

type call struct {
	command string
	dir     string
}

type fakeRunner struct {
	calls []call
	codes map[string]int
}

func (r *fakeRunner) Run(_ context.Context, command, dir string) (int, error) {
	r.calls = append(r.calls, call{command, dir})
	return r.codes[command], nil
}

type fixture struct {
	engine *Engine
	fs     *fsys.Afero
	runner *fakeRunner
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	tmpl, err := template.NewEngine(naming.NewConverter(), 8)
	require.NoError(t, err)
	g, err := syntaxgen.New(syntaxgen.WithTemplates(tmpl))
	require.NoError(t, err)

	f := &fixture{fs: fsys.NewMemory(), runner: &fakeRunner{codes: map[string]int{}}}
	opts = append([]Option{WithRunner(f.runner), WithLogger(zaptest.NewLogger(t).Sugar())}, opts...)
	f.engine, err = New(f.fs, g, tmpl, opts...)
	require.NoError(t, err)
	return f
}

func (f *fixture) files(t *testing.T) map[string]string {
	t.Helper()
	archive, err := fsys.Snapshot(f.fs.Fs(), "out")
	require.NoError(t, err)
	out := make(map[string]string, len(archive.Files))
	for _, file := range archive.Files {
		out[file.Name] = string(file.Data)
	}
	return out
}

func shopSolution() *artifact.Solution {
	customer := syntax.NewDocument("Shop.Domain.Entities").
		AddType(syntax.NewClass("Customer").AddProperty(syntax.NewProperty("Name", syntax.NewTypeRef("string"))))

	s := &artifact.Solution{
		Name:  "Shop",
		Files: []*artifact.File{{Name: "README.md", Template: "# {{ .Name }}", Tokens: map[string]any{"Name": "Shop"}}},
		Projects: []*artifact.Project{
			{Name: "Shop.Api", Type: artifact.WebAPI, PostCommands: []string{"dotnet restore"}},
			{Name: "Shop.Domain", Type: artifact.ClassLib, Folders: []*artifact.Folder{{
				Name:      "Entities",
				CodeFiles: []*artifact.CodeFile{{Name: "Customer.cs", Model: customer}},
			}}},
			{Name: "shop-web", Type: artifact.NPM, Version: "1.0.0", PostCommands: []string{"npm install"}},
		},
	}
	return s.AddEdge("Shop.Api", "Shop.Domain")
}

func TestEngine_GenerateSolution(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.engine.Generate(context.Background(), shopSolution(), "out"))

	archive, err := fsys.Snapshot(f.fs.Fs(), "out")
	require.NoError(t, err)
	var names []string
	for _, file := range archive.Files {
		names = append(names, file.Name)
	}
	assert.Equal(t, []string{
		"Shop/README.md",
		"Shop/Shop.Api/Shop.Api.csproj",
		"Shop/Shop.Domain/Entities/Customer.cs",
		"Shop/Shop.Domain/Shop.Domain.csproj",
		"Shop/Shop.sln",
		"Shop/shop-web/package.json",
	}, names)

	files := f.files(t)
	assert.Equal(t, "# Shop", files["Shop/README.md"])
	assert.Equal(t, "namespace Shop.Domain.Entities;\n\npublic class Customer\n{\n    public string Name { get; set; }\n}\n",
		files["Shop/Shop.Domain/Entities/Customer.cs"])
	assert.Equal(t, "{\n  \"name\": \"shop-web\",\n  \"version\": \"1.0.0\",\n  \"private\": true\n}\n",
		files["Shop/shop-web/package.json"])

	api := files["Shop/Shop.Api/Shop.Api.csproj"]
	assert.Contains(t, api, `<Project Sdk="Microsoft.NET.Sdk.Web">`)
	assert.Contains(t, api, `<ProjectReference Include="..\Shop.Domain\Shop.Domain.csproj" />`)
	assert.NotContains(t, files["Shop/Shop.Domain/Shop.Domain.csproj"], "ProjectReference")

	sln := files["Shop/Shop.sln"]
	domain := strings.Index(sln, `"Shop.Domain", "Shop.Domain\Shop.Domain.csproj", "`+ProjectGUID("Shop", "Shop.Domain")+`"`)
	apiEntry := strings.Index(sln, `"Shop.Api", "Shop.Api\Shop.Api.csproj", "`+ProjectGUID("Shop", "Shop.Api")+`"`)
	assert.True(t, domain >= 0 && apiEntry > domain, "projects are listed in build order:\n%s", sln)
	assert.NotContains(t, sln, "shop-web")

	assert.Equal(t, []call{
		{"dotnet restore", "out/Shop/Shop.Api"},
		{"npm install", "out/Shop/shop-web"},
	}, f.runner.calls)
}

func TestEngine_GenerateIsDeterministic(t *testing.T) {
	first, second := newFixture(t), newFixture(t)
	require.NoError(t, first.engine.Generate(context.Background(), shopSolution(), "out"))
	require.NoError(t, second.engine.Generate(context.Background(), shopSolution(), "out"))

	assert.Equal(t, first.files(t), second.files(t))
}

func TestEngine_CycleHasNoSideEffects(t *testing.T) {
	f := newFixture(t)
	s := &artifact.Solution{
		Name:     "Shop",
		Files:    []*artifact.File{{Name: "README.md", Content: "x"}},
		Projects: []*artifact.Project{{Name: "A", Type: artifact.ClassLib}, {Name: "B", Type: artifact.ClassLib}},
	}
	s.AddEdge("A", "B").AddEdge("B", "A")

	err := f.engine.Generate(context.Background(), s, "out")
	assert.True(t, errors.Is(err, errors.ErrDependencyCycle))

	// The solution strategy checks on its own when dispatched directly.
	err = f.engine.Dispatch(context.Background(), s, "out")
	assert.True(t, errors.Is(err, errors.ErrDependencyCycle))

	exists, err := afero.Exists(f.fs.Fs(), "out")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, f.runner.calls)
}

func TestEngine_PostCommandFailureAborts(t *testing.T) {
	f := newFixture(t)
	f.runner.codes["dotnet restore"] = 1

	err := f.engine.Generate(context.Background(), shopSolution(), "out")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrProcessFailed))
	assert.Contains(t, err.Error(), "Shop.Api")

	files := f.files(t)
	assert.Contains(t, files, "Shop/Shop.Api/Shop.Api.csproj")
	assert.NotContains(t, files, "Shop/shop-web/package.json", "later projects are not generated")
	assert.Len(t, f.runner.calls, 1)
}

func TestEngine_Cancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.engine.Generate(ctx, &artifact.Folder{Name: "src", Files: []*artifact.File{{Name: "a.txt"}}}, "out")
	assert.ErrorIs(t, err, context.Canceled)

	exists, err := afero.Exists(f.fs.Fs(), "out")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEngine_FolderRoot(t *testing.T) {
	f := newFixture(t)
	root := &artifact.Folder{
		Name:    "src",
		Folders: []*artifact.Folder{{Name: "empty"}},
		Files:   []*artifact.File{{Name: "notes.txt", Content: "hello"}},
	}

	require.NoError(t, f.engine.Generate(context.Background(), root, "out"))

	isDir, err := afero.DirExists(f.fs.Fs(), "out/src/empty")
	require.NoError(t, err)
	assert.True(t, isDir)
	assert.Equal(t, map[string]string{"src/notes.txt": "hello"}, f.files(t))
}

func TestEngine_ValidationBeforeWriting(t *testing.T) {
	f := newFixture(t)
	root := &artifact.Folder{Name: "src", Files: []*artifact.File{{Name: "a", Content: "1"}, {Name: "a", Content: "2"}}}

	err := f.engine.Generate(context.Background(), root, "out")
	assert.True(t, errors.Is(err, errors.ErrPathConflict))

	exists, _ := afero.Exists(f.fs.Fs(), "out")
	assert.False(t, exists)
}

func TestEngine_StrategyPriority(t *testing.T) {
	upper := NewStrategy("upper-markdown", artifact.KindFile, 10,
		Typed(func(ctx context.Context, e *Engine, file *artifact.File, dir string) error {
			return e.WriteFile(ctx, artifact.Path(dir, file), strings.ToUpper(file.Content))
		})).
		When(func(a artifact.Artifact) bool { return strings.HasSuffix(a.ArtifactName(), ".md") })
	f := newFixture(t, WithStrategies(upper))

	root := &artifact.Folder{Name: "docs", Files: []*artifact.File{
		{Name: "a.md", Content: "shout"},
		{Name: "b.txt", Content: "quiet"},
	}}
	require.NoError(t, f.engine.Generate(context.Background(), root, "out"))
	assert.Equal(t, map[string]string{"docs/a.md": "SHOUT", "docs/b.txt": "quiet"}, f.files(t))

	_, err := New(f.fs, nil, nil, WithStrategies(NewStrategy("dup", artifact.KindFile, 0, nil)))
	assert.True(t, errors.Is(err, errors.ErrAmbiguousStrategy))
}

func TestEngine_NoStrategy(t *testing.T) {
	f := newFixture(t, WithoutBuiltins())

	err := f.engine.Generate(context.Background(), &artifact.Folder{Name: "src"}, "out")
	assert.True(t, errors.Is(err, errors.ErrNoStrategy))
	assert.Contains(t, err.Error(), "no strategy registered for artifact type Folder")
}

func TestEngine_CodeFileErrors(t *testing.T) {
	f := newFixture(t)

	err := f.engine.Generate(context.Background(), &artifact.CodeFile{Name: "Empty.cs"}, "out")
	assert.True(t, errors.Is(err, errors.ErrNilNode))

	require.True(t, f.engine.Syntax().Unregister("class"))
	err = f.engine.Generate(context.Background(), &artifact.CodeFile{Name: "A.cs", Model: syntax.NewClass("A")}, "out")
	assert.True(t, errors.Is(err, errors.ErrNoStrategy))

	exists, _ := afero.Exists(f.fs.Fs(), "out/A.cs")
	assert.False(t, exists, "nothing is written for a failed render")
}

func TestProjectGUID(t *testing.T) {
	a := ProjectGUID("Shop", "Shop.Api")
	assert.Equal(t, a, ProjectGUID("Shop", "Shop.Api"))
	assert.NotEqual(t, a, ProjectGUID("Shop", "Shop.Domain"))
	assert.Regexp(t, `^\{[0-9A-F]{8}-[0-9A-F]{4}-5[0-9A-F]{3}-[0-9A-F]{4}-[0-9A-F]{12}\}$`, a)
}

func TestEngine_NestedProjectsWithSameName(t *testing.T) {
	f := newFixture(t)
	root := &artifact.Solution{
		Name: "Suite",
		Folders: []*artifact.Folder{
			{Name: "billing", Projects: []*artifact.Project{{Name: "Api", Type: artifact.WebAPI}}},
			{Name: "orders", Projects: []*artifact.Project{{Name: "Api", Type: artifact.WebAPI}}},
		},
	}
	require.NoError(t, f.engine.Generate(context.Background(), root, "out"))

	sln := f.files(t)["Suite/Suite.sln"]
	billing, orders := ProjectGUID("Suite", "billing/Api"), ProjectGUID("Suite", "orders/Api")
	assert.NotEqual(t, billing, orders)
	assert.Contains(t, sln, `"Api", "billing\Api\Api.csproj", "`+billing+`"`)
	assert.Contains(t, sln, `"Api", "orders\Api\Api.csproj", "`+orders+`"`)
	assert.NotContains(t, sln, ProjectGUID("Suite", "Api"))
}

func TestReferences(t *testing.T) {
	csproj := &artifact.Project{Name: "Api", Type: artifact.WebAPI, References: []string{"Domain", `..\lib\Lib.csproj`, "Domain"}}
	assert.Equal(t, []Reference{
		{Name: "Domain", Path: `..\Domain\Domain.csproj`},
		{Name: "Lib", Path: `..\lib\Lib.csproj`},
	}, references(csproj))

	npm := &artifact.Project{Name: "web", Type: artifact.NPM, References: []string{"models"}}
	assert.Equal(t, []Reference{{Name: "models", Path: "../models"}}, references(npm))
}
