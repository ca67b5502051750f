// Package artifact describes the file-system shaped output of a generation
// request: folders, plain files, code files, projects and solutions.
package artifact

import (
	"path/filepath"

	"github.com/origadmin/scaffold/internal/syntax"
)

// Kind is the variant tag of an Artifact.
type Kind int

const (
	KindUnknown Kind = iota
	KindFolder
	KindFile
	KindCodeFile
	KindProject
	KindSolution
)

func (k Kind) String() string {
	switch k {
	case KindFolder:
		return "Folder"
	case KindFile:
		return "File"
	case KindCodeFile:
		return "CodeFile"
	case KindProject:
		return "Project"
	case KindSolution:
		return "Solution"
	default:
		return "Unknown"
	}
}

// Artifact is implemented by every artifact variant. The set is closed.
type Artifact interface {
	Kind() Kind
	// ArtifactName is the file or directory name of the artifact.
	ArtifactName() string

	artifact()
}

// Folder is a directory with nested artifacts.
type Folder struct {
	Name      string
	Folders   []*Folder
	Files     []*File
	CodeFiles []*CodeFile
	Projects  []*Project
}

func (*Folder) Kind() Kind             { return KindFolder }
func (f *Folder) ArtifactName() string { return f.Name }
func (*Folder) artifact()              {}

// File is a plain text file. Template, when set, is rendered with Tokens
// instead of writing Content.
type File struct {
	Name     string
	Content  string
	Template string
	Tokens   map[string]any
}

func (*File) Kind() Kind             { return KindFile }
func (f *File) ArtifactName() string { return f.Name }
func (*File) artifact()              {}

// CodeFile is a file whose content is the rendering of Model.
type CodeFile struct {
	Name  string
	Model syntax.Node
}

func (*CodeFile) Kind() Kind             { return KindCodeFile }
func (c *CodeFile) ArtifactName() string { return c.Name }
func (*CodeFile) artifact()              {}

// ProjectType selects the descriptor written for a project.
type ProjectType string

const (
	ClassLib ProjectType = "classlib"
	WebAPI   ProjectType = "webapi"
	Console  ProjectType = "console"
	NPM      ProjectType = "npm"
)

// Valid reports whether t is a known project type.
func (t ProjectType) Valid() bool {
	switch t {
	case ClassLib, WebAPI, Console, NPM:
		return true
	}
	return false
}

// Sdk is the MSBuild SDK of .NET project types.
func (t ProjectType) Sdk() string {
	if t == WebAPI {
		return "Microsoft.NET.Sdk.Web"
	}
	return "Microsoft.NET.Sdk"
}

// DefaultFramework is used for .NET projects without a framework.
const DefaultFramework = "net8.0"

// Project is a buildable unit. PostCommands run in the project directory
// after its content has been written.
type Project struct {
	Name         string
	Type         ProjectType
	Framework    string
	Version      string
	References   []string
	Folders      []*Folder
	Files        []*File
	CodeFiles    []*CodeFile
	PostCommands []string
}

func (*Project) Kind() Kind             { return KindProject }
func (p *Project) ArtifactName() string { return p.Name }
func (*Project) artifact()              {}

// Descriptor is the name of the project descriptor file.
func (p *Project) Descriptor() string {
	if p.Type == NPM {
		return "package.json"
	}
	return p.Name + ".csproj"
}

// DependsOn states that project From must be built after project To.
type DependsOn struct {
	From string
	To   string
}

// Solution groups projects and the dependencies between them.
type Solution struct {
	Name     string
	Folders  []*Folder
	Files    []*File
	Projects []*Project
	Edges    []DependsOn
}

func (*Solution) Kind() Kind             { return KindSolution }
func (s *Solution) ArtifactName() string { return s.Name }
func (*Solution) artifact()              {}

// AddEdge records that from depends on to.
func (s *Solution) AddEdge(from, to string) *Solution {
	s.Edges = append(s.Edges, DependsOn{From: from, To: to})
	return s
}

// Project returns the top-level project called name.
func (s *Solution) Project(name string) (*Project, bool) {
	for _, p := range s.Projects {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Path is where a is created below parentDir.
func Path(parentDir string, a Artifact) string {
	return filepath.Join(parentDir, a.ArtifactName())
}
