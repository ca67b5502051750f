// Package template provides the templating engine for scaffold: token
// substitution for template-backed syntax expressions and files, and the
// embedded project descriptor templates.
package template

import (
	"bytes"
	"context"
	"embed"
	"path/filepath"
	"text/template"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/afero"

	"github.com/origadmin/scaffold/internal/errors"
	"github.com/origadmin/scaffold/internal/naming"
)

//go:embed *.tpl
var templates embed.FS

// Names of the embedded templates.
const (
	CsprojTemplate      = "csproj.tpl"
	SolutionTemplate    = "sln.tpl"
	PackageJSONTemplate = "package.json.tpl"
)

// DefaultCacheSize is used when a non-positive cache size is configured.
const DefaultCacheSize = 64

// Processor substitutes named tokens into a template.
type Processor interface {
	Process(ctx context.Context, text string, tokens map[string]any) (string, error)
}

// Engine is the Processor backed by text/template. Parsed ad-hoc templates
// are kept in an LRU cache keyed by their text.
type Engine struct {
	named *template.Template
	cache *lru.Cache[string, *template.Template]
	funcs template.FuncMap
}

// NewEngine parses the embedded templates and prepares the cache.
func NewEngine(conv naming.Converter, cacheSize int) (*Engine, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, *template.Template](cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "template cache")
	}

	funcs := FuncMap(conv)
	named, err := template.New("scaffold").Funcs(funcs).Option("missingkey=error").ParseFS(templates, "*.tpl")
	if err != nil {
		return nil, errors.Wrap(err, "parse embedded templates")
	}
	return &Engine{named: named, cache: cache, funcs: funcs}, nil
}

// FuncMap exposes the naming conventions to templates.
func FuncMap(conv naming.Converter) template.FuncMap {
	with := func(c naming.Convention) func(string) string {
		return func(s string) string { return conv.Convert(c, s, false) }
	}
	return template.FuncMap{
		"pascal":  with(naming.Pascal),
		"camel":   with(naming.Camel),
		"snake":   with(naming.Snake),
		"kebab":   with(naming.Kebab),
		"title":   with(naming.Title),
		"allcaps": with(naming.AllCaps),
		"plural":  func(s string) string { return conv.Convert(naming.None, s, true) },
	}
}

// Process renders text with the given tokens. Unknown tokens are an error.
func (e *Engine) Process(ctx context.Context, text string, tokens map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	tmpl, ok := e.cache.Get(text)
	if !ok {
		var err error
		tmpl, err = template.New("inline").Funcs(e.funcs).Option("missingkey=error").Parse(text)
		if err != nil {
			return "", errors.Wrap(err, "parse template")
		}
		e.cache.Add(text, tmpl)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, tokens); err != nil {
		return "", errors.Wrap(err, "execute template")
	}
	return buf.String(), nil
}

// RenderNamed executes one of the named templates.
func (e *Engine) RenderNamed(ctx context.Context, name string, data any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := e.named.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.Wrapf(err, "render template %s", name)
	}
	return buf.String(), nil
}

// LoadOverrides parses additional .tpl files, or every .tpl file of a
// directory, from fs into the named set. A file named like an embedded
// template replaces it. Paths that do not exist are ignored.
func (e *Engine) LoadOverrides(fs afero.Fs, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	next, err := e.named.Clone()
	if err != nil {
		return errors.Wrap(err, "template clone failed")
	}

	for _, path := range paths {
		fi, err := fs.Stat(path)
		if err != nil {
			continue
		}

		files := []string{path}
		if fi.IsDir() {
			files, err = afero.Glob(fs, filepath.Join(path, "*.tpl"))
			if err != nil {
				return errors.Wrap(err, "glob pattern error")
			}
		}
		for _, f := range files {
			data, err := afero.ReadFile(fs, f)
			if err != nil {
				return errors.Wrapf(err, "read %s failed", f)
			}
			if _, err := next.New(filepath.Base(f)).Parse(string(data)); err != nil {
				return errors.Wrapf(err, "parse %s failed", f)
			}
		}
	}

	e.named = next
	return nil
}
