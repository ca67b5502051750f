// Package generator turns artifact trees into directories, files and
// processes. It dispatches artifacts the way syntaxgen dispatches syntax
// nodes and calls back into syntaxgen for the content of code files.
package generator

import (
	"context"

	"go.uber.org/zap"

	"github.com/origadmin/scaffold/internal/artifact"
	"github.com/origadmin/scaffold/internal/errors"
	"github.com/origadmin/scaffold/internal/fsys"
	"github.com/origadmin/scaffold/internal/process"
	"github.com/origadmin/scaffold/internal/registry"
	"github.com/origadmin/scaffold/internal/syntaxgen"
	"github.com/origadmin/scaffold/internal/template"
)

// Templates renders ad-hoc and named templates.
type Templates interface {
	template.Processor
	RenderNamed(ctx context.Context, name string, data any) (string, error)
}

// Engine is the artifact dispatcher.
type Engine struct {
	strategies *registry.Registry[artifact.Kind, Strategy]
	syntax     *syntaxgen.Generator
	templates  Templates
	fs         fsys.FileSystem
	runner     process.Runner
	log        *zap.SugaredLogger
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	strategies []Strategy
	runner     process.Runner
	log        *zap.SugaredLogger
	noBuiltins bool
}

// WithStrategies registers additional strategies after the built-in ones.
func WithStrategies(s ...Strategy) Option {
	return func(o *options) { o.strategies = append(o.strategies, s...) }
}

// WithRunner sets the process runner used for post-commands.
func WithRunner(r process.Runner) Option {
	return func(o *options) { o.runner = r }
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *options) { o.log = l }
}

// WithoutBuiltins starts from an empty registry.
func WithoutBuiltins() Option {
	return func(o *options) { o.noBuiltins = true }
}

// New creates an Engine writing through fs. Code files are rendered with
// syntax and templates are rendered with tmpl.
func New(fs fsys.FileSystem, syntax *syntaxgen.Generator, tmpl Templates, opts ...Option) (*Engine, error) {
	o := options{log: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.runner == nil {
		o.runner = process.NewExecRunner(o.log)
	}

	e := &Engine{
		strategies: registry.New[artifact.Kind, Strategy](),
		syntax:     syntax,
		templates:  tmpl,
		fs:         fs,
		runner:     o.runner,
		log:        o.log,
	}
	if !o.noBuiltins {
		e.strategies.MustRegister(Builtins()...)
	}
	for _, s := range o.strategies {
		if err := e.Register(s); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Register adds a strategy under the same rules as syntaxgen.Generator.Register.
func (e *Engine) Register(s Strategy) error {
	if err := e.strategies.Register(s); err != nil {
		return err
	}
	e.log.Debugw("artifact strategy registered", "strategy", s.Name(), "kind", s.Kind(), "priority", s.Priority())
	return nil
}

// Unregister removes the strategy called name.
func (e *Engine) Unregister(name string) bool {
	return e.strategies.Unregister(name)
}

// FileSystem is the file system the engine writes to.
func (e *Engine) FileSystem() fsys.FileSystem {
	return e.fs
}

// Syntax is the generator used for code files.
func (e *Engine) Syntax() *syntaxgen.Generator {
	return e.syntax
}

// Generate validates the tree rooted at root and then creates it below dir.
// Nothing is written when validation fails.
func (e *Engine) Generate(ctx context.Context, root artifact.Artifact, dir string) error {
	if root == nil {
		return errors.Markf(errors.ErrNilNode, "cannot generate a nil artifact into %s", dir)
	}
	if err := artifact.Validate(root); err != nil {
		return err
	}
	return e.Dispatch(ctx, root, dir)
}

// Dispatch generates a below dir with the highest-priority strategy that
// accepts it. Strategies call Dispatch for nested artifacts.
func (e *Engine) Dispatch(ctx context.Context, a artifact.Artifact, dir string) error {
	kind := a.Kind()
	for _, s := range e.strategies.Candidates(kind) {
		if !s.CanHandle(a) {
			continue
		}
		e.log.Debugw("dispatch artifact", "kind", kind, "name", a.ArtifactName(), "strategy", s.Name(), "priority", s.Priority())
		return s.Generate(ctx, e, a, dir)
	}
	return errors.WithHint(
		errors.Markf(errors.ErrNoStrategy, "no strategy registered for artifact type %s", kind),
		"register a strategy for this artifact kind with Engine.Register")
}

// MkdirAll creates path through the file system collaborator.
func (e *Engine) MkdirAll(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.fs.MkdirAll(path); err != nil {
		return errors.Wrapf(err, "create directory %s", path)
	}
	return nil
}

// WriteFile writes a fully assembled text through the file system collaborator.
func (e *Engine) WriteFile(ctx context.Context, path, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.fs.WriteFile(path, text); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	e.log.Infow("wrote file", "path", path, "bytes", len(text))
	return nil
}

// Run executes command in dir. A non-zero exit status is an error.
func (e *Engine) Run(ctx context.Context, command, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.log.Infow("running command", "command", command, "dir", dir)
	code, err := e.runner.Run(ctx, command, dir)
	if err != nil {
		return errors.Wrapf(err, "run %q", command)
	}
	if code != 0 {
		return errors.Markf(errors.ErrProcessFailed, "%q in %s exited with status %d", command, dir, code)
	}
	return nil
}
