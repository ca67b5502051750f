package generator

import (
	"context"

	"github.com/origadmin/scaffold/internal/artifact"
	"github.com/origadmin/scaffold/internal/errors"
)

// Strategy produces the side effects of one kind of artifact below dir.
type Strategy interface {
	Name() string
	Kind() artifact.Kind
	Priority() int
	CanHandle(a artifact.Artifact) bool
	Generate(ctx context.Context, e *Engine, a artifact.Artifact, dir string) error
}

// GenerateFunc is the generate step of a FuncStrategy.
type GenerateFunc func(ctx context.Context, e *Engine, a artifact.Artifact, dir string) error

// FuncStrategy is a Strategy assembled from functions.
type FuncStrategy struct {
	name     string
	kind     artifact.Kind
	priority int
	match    func(artifact.Artifact) bool
	generate GenerateFunc
}

// NewStrategy creates a strategy that accepts every artifact of kind.
func NewStrategy(name string, kind artifact.Kind, priority int, fn GenerateFunc) *FuncStrategy {
	return &FuncStrategy{name: name, kind: kind, priority: priority, generate: fn}
}

// When restricts the strategy to artifacts accepted by match.
func (s *FuncStrategy) When(match func(artifact.Artifact) bool) *FuncStrategy {
	s.match = match
	return s
}

func (s *FuncStrategy) Name() string        { return s.name }
func (s *FuncStrategy) Kind() artifact.Kind { return s.kind }
func (s *FuncStrategy) Priority() int       { return s.priority }

func (s *FuncStrategy) CanHandle(a artifact.Artifact) bool {
	return s.match == nil || s.match(a)
}

func (s *FuncStrategy) Generate(ctx context.Context, e *Engine, a artifact.Artifact, dir string) error {
	return s.generate(ctx, e, a, dir)
}

// Typed adapts a function over one concrete artifact type into a GenerateFunc.
func Typed[T artifact.Artifact](fn func(ctx context.Context, e *Engine, a T, dir string) error) GenerateFunc {
	return func(ctx context.Context, e *Engine, a artifact.Artifact, dir string) error {
		v, ok := a.(T)
		if !ok {
			return errors.Newf("strategy expects %T, got %T", v, a)
		}
		return fn(ctx, e, v, dir)
	}
}
