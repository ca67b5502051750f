package generator

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/origadmin/scaffold/internal/artifact"
	"github.com/origadmin/scaffold/internal/errors"
	"github.com/origadmin/scaffold/internal/syntaxgen"
	"github.com/origadmin/scaffold/internal/template"
)

// DefaultPackageVersion is written to package.json when a project has no version.
const DefaultPackageVersion = "0.1.0"

// csharpProjectType is the solution type GUID of SDK-style C# projects.
const csharpProjectType = "{9A19103F-16F7-4668-BE54-9A1E7A4F7556}"

// projectNamespace seeds the name-based project GUIDs so that the same
// solution always gets the same GUIDs.
var projectNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/origadmin/scaffold"))

// Builtins returns the default strategy for every artifact kind, all at priority 0.
func Builtins() []Strategy {
	return []Strategy{
		NewStrategy("folder", artifact.KindFolder, 0, Typed(generateFolder)),
		NewStrategy("file", artifact.KindFile, 0, Typed(generateFile)),
		NewStrategy("codefile", artifact.KindCodeFile, 0, Typed(generateCodeFile)),
		NewStrategy("project", artifact.KindProject, 0, Typed(generateProject)),
		NewStrategy("solution", artifact.KindSolution, 0, Typed(generateSolution)),
	}
}

func generateFolder(ctx context.Context, e *Engine, f *artifact.Folder, dir string) error {
	p := artifact.Path(dir, f)
	if err := e.MkdirAll(ctx, p); err != nil {
		return err
	}
	return e.dispatchChildren(ctx, f, p)
}

func (e *Engine) dispatchChildren(ctx context.Context, a artifact.Artifact, dir string) error {
	for c := range artifact.Children(a) {
		if err := e.Dispatch(ctx, c, dir); err != nil {
			return err
		}
	}
	return nil
}

func generateFile(ctx context.Context, e *Engine, f *artifact.File, dir string) error {
	text := f.Content
	if f.Template != "" {
		if e.templates == nil {
			return errors.Newf("file %s needs a template processor", f.Name)
		}
		var err error
		if text, err = e.templates.Process(ctx, f.Template, f.Tokens); err != nil {
			return errors.Wrapf(err, "render file %s", f.Name)
		}
	}
	return e.WriteFile(ctx, artifact.Path(dir, f), text)
}

func generateCodeFile(ctx context.Context, e *Engine, c *artifact.CodeFile, dir string) error {
	if c.Model == nil {
		return errors.Markf(errors.ErrNilNode, "code file %s has no model", c.Name)
	}
	if e.syntax == nil {
		return errors.Newf("code file %s needs a syntax generator", c.Name)
	}
	text, err := e.syntax.Render(ctx, c.Model, syntaxgen.Scope{})
	if err != nil {
		return errors.Wrapf(err, "render code file %s", c.Name)
	}
	return e.WriteFile(ctx, artifact.Path(dir, c), text)
}

// Reference is a project reference as written into a descriptor.
type Reference struct {
	Name string
	Path string
}

// references resolves the reference list of p. Entries that look like paths
// are kept; bare names are sibling projects.
func references(p *artifact.Project) []Reference {
	return lo.Map(lo.Uniq(p.References), func(ref string, _ int) Reference {
		if strings.ContainsAny(ref, `/\`) || strings.HasSuffix(ref, ".csproj") {
			name := strings.TrimSuffix(path.Base(strings.ReplaceAll(ref, `\`, "/")), ".csproj")
			return Reference{Name: name, Path: ref}
		}
		if p.Type == artifact.NPM {
			return Reference{Name: ref, Path: "../" + ref}
		}
		return Reference{Name: ref, Path: `..\` + ref + `\` + ref + ".csproj"}
	})
}

func generateProject(ctx context.Context, e *Engine, p *artifact.Project, dir string) error {
	if e.templates == nil {
		return errors.Newf("project %s needs a template renderer", p.Name)
	}
	descriptor, err := renderDescriptor(ctx, e.templates, p)
	if err != nil {
		return err
	}

	projectDir := artifact.Path(dir, p)
	if err := e.MkdirAll(ctx, projectDir); err != nil {
		return err
	}
	if err := e.WriteFile(ctx, filepath.Join(projectDir, p.Descriptor()), descriptor); err != nil {
		return err
	}
	if err := e.dispatchChildren(ctx, p, projectDir); err != nil {
		return err
	}
	for _, cmd := range p.PostCommands {
		if err := e.Run(ctx, cmd, projectDir); err != nil {
			return errors.Wrapf(err, "post command of project %s", p.Name)
		}
	}
	return nil
}

func renderDescriptor(ctx context.Context, t Templates, p *artifact.Project) (string, error) {
	refs := references(p)
	var (
		text string
		err  error
	)
	switch p.Type {
	case artifact.NPM:
		text, err = t.RenderNamed(ctx, template.PackageJSONTemplate, map[string]any{
			"Name":       p.Name,
			"Version":    lo.CoalesceOrEmpty(p.Version, DefaultPackageVersion),
			"References": refs,
		})
	case artifact.ClassLib, artifact.WebAPI, artifact.Console:
		text, err = t.RenderNamed(ctx, template.CsprojTemplate, map[string]any{
			"Sdk":        p.Type.Sdk(),
			"Framework":  lo.CoalesceOrEmpty(p.Framework, artifact.DefaultFramework),
			"Version":    p.Version,
			"OutputType": lo.Ternary(p.Type == artifact.Console, "Exe", ""),
			"References": refs,
		})
	default:
		return "", errors.Markf(errors.ErrInvalidProjectType, "project %s has unknown type %q", p.Name, p.Type)
	}
	if err != nil {
		return "", errors.Wrapf(err, "render descriptor of project %s", p.Name)
	}
	return text, nil
}

type solutionEntry struct {
	TypeGuid string
	Name     string
	Path     string
	Guid     string
}

// ProjectGUID is the solution GUID of a project. It depends only on the
// solution name and the slash-separated project directory relative to the
// solution, which is the project name for top-level projects.
func ProjectGUID(solution, projectDir string) string {
	id := uuid.NewSHA1(projectNamespace, []byte(solution+"/"+projectDir))
	return "{" + strings.ToUpper(id.String()) + "}"
}

func generateSolution(ctx context.Context, e *Engine, s *artifact.Solution, dir string) error {
	// Everything that can reject the solution happens before the first side effect.
	if err := artifact.Validate(s); err != nil {
		return err
	}
	order, err := artifact.BuildOrder(s)
	if err != nil {
		return err
	}
	if e.templates == nil {
		return errors.Newf("solution %s needs a template renderer", s.Name)
	}
	sln, err := e.templates.RenderNamed(ctx, template.SolutionTemplate, map[string]any{
		"Projects": solutionEntries(s, order),
	})
	if err != nil {
		return errors.Wrapf(err, "render solution %s", s.Name)
	}

	solutionDir := artifact.Path(dir, s)
	if err := e.MkdirAll(ctx, solutionDir); err != nil {
		return err
	}
	if err := e.WriteFile(ctx, filepath.Join(solutionDir, s.Name+".sln"), sln); err != nil {
		return err
	}
	for _, f := range s.Folders {
		if err := e.Dispatch(ctx, f, solutionDir); err != nil {
			return err
		}
	}
	for _, f := range s.Files {
		if err := e.Dispatch(ctx, f, solutionDir); err != nil {
			return err
		}
	}

	deps := lo.GroupBy(s.Edges, func(d artifact.DependsOn) string { return d.From })
	for _, p := range order {
		linked := *p
		linked.References = append(append([]string(nil), p.References...),
			lo.Map(deps[p.Name], func(d artifact.DependsOn, _ int) string { return d.To })...)
		if err := e.Dispatch(ctx, &linked, solutionDir); err != nil {
			return err
		}
	}
	return nil
}

// solutionEntries lists the .NET projects of s: top-level projects in build
// order, then projects nested in solution folders.
func solutionEntries(s *artifact.Solution, order []*artifact.Project) []solutionEntry {
	var entries []solutionEntry
	add := func(p *artifact.Project, dir string) {
		if p.Type == artifact.NPM {
			return
		}
		projectDir := path.Join(dir, p.Name)
		entries = append(entries, solutionEntry{
			TypeGuid: csharpProjectType,
			Name:     p.Name,
			Path:     strings.ReplaceAll(path.Join(projectDir, p.Descriptor()), "/", `\`),
			Guid:     ProjectGUID(s.Name, projectDir),
		})
	}
	for _, p := range order {
		add(p, "")
	}
	for _, f := range s.Folders {
		artifact.Walk(f, "", func(a artifact.Artifact, p string) bool {
			if proj, ok := a.(*artifact.Project); ok {
				add(proj, path.Dir(filepath.ToSlash(p)))
				return false
			}
			return true
		})
	}
	return entries
}
