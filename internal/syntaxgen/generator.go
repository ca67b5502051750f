// Package syntaxgen renders syntax model trees to source text by dispatching
// every node to the highest-priority strategy registered for its kind.
package syntaxgen

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/origadmin/scaffold/internal/errors"
	"github.com/origadmin/scaffold/internal/registry"
	"github.com/origadmin/scaffold/internal/syntax"
	"github.com/origadmin/scaffold/internal/template"
)

// Generator is the syntax dispatcher. A Generator is not safe for concurrent
// registration; rendering does not mutate it.
type Generator struct {
	strategies *registry.Registry[syntax.Kind, Strategy]
	templates  template.Processor
	log        *zap.SugaredLogger
}

// Option configures a Generator.
type Option func(*options)

type options struct {
	strategies []Strategy
	templates  template.Processor
	log        *zap.SugaredLogger
	noBuiltins bool
}

// WithStrategies registers additional strategies after the built-in ones.
func WithStrategies(s ...Strategy) Option {
	return func(o *options) { o.strategies = append(o.strategies, s...) }
}

// WithTemplates sets the processor used for template expressions.
func WithTemplates(p template.Processor) Option {
	return func(o *options) { o.templates = p }
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *options) { o.log = l }
}

// WithoutBuiltins starts from an empty registry.
func WithoutBuiltins() Option {
	return func(o *options) { o.noBuiltins = true }
}

// New creates a Generator with the built-in strategies registered at
// priority 0. Registration errors of additional strategies are returned.
func New(opts ...Option) (*Generator, error) {
	o := options{log: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(&o)
	}

	g := &Generator{
		strategies: registry.New[syntax.Kind, Strategy](),
		templates:  o.templates,
		log:        o.log,
	}
	if !o.noBuiltins {
		g.strategies.MustRegister(Builtins()...)
	}
	for _, s := range o.strategies {
		if err := g.Register(s); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Register adds a strategy. A strategy whose kind and priority equal those
// of a registered one is rejected, as is a name already in use.
func (g *Generator) Register(s Strategy) error {
	if err := g.strategies.Register(s); err != nil {
		return err
	}
	g.log.Debugw("strategy registered", "strategy", s.Name(), "kind", s.Kind(), "priority", s.Priority())
	return nil
}

// Unregister removes the strategy called name.
func (g *Generator) Unregister(name string) bool {
	return g.strategies.Unregister(name)
}

// Templates returns the template processor, which may be nil.
func (g *Generator) Templates() template.Processor {
	return g.templates
}

// Render dispatches n. Failing to find a strategy is an error, never empty text.
func (g *Generator) Render(ctx context.Context, n syntax.Node, scope Scope) (string, error) {
	if syntax.IsNil(n) {
		return "", errors.Markf(errors.ErrNilNode, "cannot render a nil node under %v", parentKind(scope))
	}

	kind := n.Kind()
	for _, s := range g.strategies.Candidates(kind) {
		if !s.CanHandle(n, scope) {
			continue
		}
		g.log.Debugw("dispatch", "kind", kind, "strategy", s.Name(), "priority", s.Priority(), "depth", scope.Depth)
		return s.Render(ctx, g, n, scope)
	}
	return "", errors.WithHint(
		errors.Markf(errors.ErrNoStrategy, "no strategy registered for type %s", kind),
		"register a strategy for this node kind with Generator.Register")
}

func parentKind(scope Scope) syntax.Kind {
	if scope.Parent == nil {
		return syntax.KindUnknown
	}
	return scope.Parent.Kind()
}

// RenderList renders nodes in order and separates them with a blank line.
func RenderList[N syntax.Node](ctx context.Context, g *Generator, nodes []N, scope Scope) (string, error) {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		text, err := g.Render(ctx, n, scope)
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n"), nil
}

// Indent prefixes every non-empty line with four spaces per level.
func Indent(text string, levels int) string {
	if levels <= 0 || text == "" {
		return text
	}
	prefix := strings.Repeat("    ", levels)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
