package syntaxgen

import (
	"context"

	"github.com/origadmin/scaffold/internal/errors"
	"github.com/origadmin/scaffold/internal/syntax"
)

// Strategy renders one kind of node. Among the strategies registered for a
// kind, the one with the highest priority whose CanHandle accepts the node
// is used.
type Strategy interface {
	Name() string
	Kind() syntax.Kind
	Priority() int
	CanHandle(n syntax.Node, scope Scope) bool
	// Render produces the text of n. It may call g.Render for children,
	// passing scope.Enter(n).
	Render(ctx context.Context, g *Generator, n syntax.Node, scope Scope) (string, error)
}

// RenderFunc is the render step of a FuncStrategy.
type RenderFunc func(ctx context.Context, g *Generator, n syntax.Node, scope Scope) (string, error)

// FuncStrategy is a Strategy assembled from functions.
type FuncStrategy struct {
	name     string
	kind     syntax.Kind
	priority int
	match    func(syntax.Node, Scope) bool
	render   RenderFunc
}

// NewStrategy creates a strategy that accepts every node of kind.
func NewStrategy(name string, kind syntax.Kind, priority int, render RenderFunc) *FuncStrategy {
	return &FuncStrategy{name: name, kind: kind, priority: priority, render: render}
}

// When restricts the strategy to nodes accepted by match.
func (s *FuncStrategy) When(match func(syntax.Node, Scope) bool) *FuncStrategy {
	s.match = match
	return s
}

func (s *FuncStrategy) Name() string      { return s.name }
func (s *FuncStrategy) Kind() syntax.Kind { return s.kind }
func (s *FuncStrategy) Priority() int     { return s.priority }

func (s *FuncStrategy) CanHandle(n syntax.Node, scope Scope) bool {
	return s.match == nil || s.match(n, scope)
}

func (s *FuncStrategy) Render(ctx context.Context, g *Generator, n syntax.Node, scope Scope) (string, error) {
	return s.render(ctx, g, n, scope)
}

// Typed adapts a function over one concrete variant into a RenderFunc.
func Typed[T syntax.Node](fn func(ctx context.Context, g *Generator, n T, scope Scope) (string, error)) RenderFunc {
	return func(ctx context.Context, g *Generator, n syntax.Node, scope Scope) (string, error) {
		v, ok := n.(T)
		if !ok {
			return "", errors.Newf("strategy expects %T, got %T", v, n)
		}
		return fn(ctx, g, v, scope)
	}
}
