// Package manifest reads YAML generation requests and maps them onto
// artifact trees through an explicit layer table.
package manifest

import (
	"bytes"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/origadmin/scaffold/internal/artifact"
	"github.com/origadmin/scaffold/internal/errors"
	"github.com/origadmin/scaffold/internal/factory"
)

// Request is a parsed generation manifest.
type Request struct {
	Solution  string    `yaml:"solution"`
	Namespace string    `yaml:"namespace,omitempty"`
	Entities  []Entity  `yaml:"entities,omitempty"`
	Projects  []Project `yaml:"projects"`
	Files     []File    `yaml:"files,omitempty"`
}

// Entity describes one entity as "Name:type,..." properties.
type Entity struct {
	Name       string `yaml:"name"`
	Properties string `yaml:"properties,omitempty"`
}

// Project describes one project of the solution.
type Project struct {
	Name         string   `yaml:"name"`
	Type         string   `yaml:"type,omitempty"`
	Layer        string   `yaml:"layer,omitempty"`
	Framework    string   `yaml:"framework,omitempty"`
	Version      string   `yaml:"version,omitempty"`
	DependsOn    []string `yaml:"depends_on,omitempty"`
	PostCommands []string `yaml:"post_commands,omitempty"`
}

// File is a plain file placed in the solution directory.
type File struct {
	Name    string `yaml:"name"`
	Content string `yaml:"content"`
}

// RootNamespace is the namespace generated code lives under.
func (r *Request) RootNamespace() string {
	if r.Namespace != "" {
		return r.Namespace
	}
	return r.Solution
}

// Parse decodes a manifest. Unknown keys are rejected.
func Parse(data []byte) (*Request, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var req Request
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.Markf(errors.ErrInvalidManifest, "manifest is empty")
		}
		return nil, errors.Mark(errors.Wrap(err, "decode manifest"), errors.ErrInvalidManifest)
	}
	if err := req.validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *Request) validate() error {
	if strings.TrimSpace(r.Solution) == "" {
		return errors.WithHint(errors.Markf(errors.ErrInvalidManifest, "manifest has no solution name"),
			"add a top-level \"solution:\" key")
	}
	for i, p := range r.Projects {
		if strings.TrimSpace(p.Name) == "" {
			return errors.Markf(errors.ErrInvalidManifest, "project #%d has no name", i+1)
		}
	}
	for i, e := range r.Entities {
		if strings.TrimSpace(e.Name) == "" {
			return errors.Markf(errors.ErrInvalidManifest, "entity #%d has no name", i+1)
		}
	}
	return nil
}

// Build maps req onto a solution. Each project's layer is looked up in
// mappings; the resulting tree has not been validated yet.
func Build(req *Request, f *factory.Factory, mappings Mappings) (*artifact.Solution, error) {
	s := &artifact.Solution{Name: req.Solution}
	for _, file := range req.Files {
		s.Files = append(s.Files, &artifact.File{Name: file.Name, Content: file.Content})
	}

	in := LayerInput{
		Factory:     f,
		Application: req.Solution,
		Namespace:   req.RootNamespace(),
		Entities:    req.Entities,
	}
	for _, p := range req.Projects {
		typ := artifact.ProjectType(strings.ToLower(p.Type))
		if typ == "" {
			typ = artifact.ClassLib
		}
		layer, ok := mappings[strings.ToLower(p.Layer)]
		if !ok {
			return nil, errors.WithHint(
				errors.Markf(errors.ErrInvalidManifest, "project %s has unknown layer %q", p.Name, p.Layer),
				"known layers are "+strings.Join(mappings.Names(), ", "))
		}
		folders := layer(in)
		if typ == artifact.NPM && len(folders) > 0 {
			return nil, errors.Markf(errors.ErrInvalidManifest, "npm project %s cannot use layer %q", p.Name, p.Layer)
		}

		s.Projects = append(s.Projects, &artifact.Project{
			Name:         p.Name,
			Type:         typ,
			Framework:    p.Framework,
			Version:      p.Version,
			Folders:      folders,
			PostCommands: p.PostCommands,
		})
		for _, dep := range p.DependsOn {
			s.AddEdge(p.Name, dep)
		}
	}
	return s, nil
}
