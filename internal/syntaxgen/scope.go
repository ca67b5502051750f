package syntaxgen

import (
	"github.com/origadmin/scaffold/internal/syntax"
)

// Scope is the rendering context handed down the tree. It is a value:
// strategies derive child scopes with Enter and never modify their own.
// The zero Scope is the root.
type Scope struct {
	// Parent is the node whose strategy requested this render.
	Parent syntax.Node
	// Enclosing is the kind of the nearest enclosing type declaration.
	Enclosing syntax.Kind
	// Depth is the number of nodes above the one being rendered.
	Depth int
}

// Enter returns the scope for the children of n.
func (s Scope) Enter(n syntax.Node) Scope {
	next := Scope{Parent: n, Enclosing: s.Enclosing, Depth: s.Depth + 1}
	if n != nil && n.Kind().IsTypeDecl() {
		next.Enclosing = n.Kind()
	}
	return next
}

// InInterface reports whether rendering happens inside an interface body.
func (s Scope) InInterface() bool {
	return s.Enclosing == syntax.KindInterface
}

// Type returns the type declaration that directly contains the node being
// rendered.
func (s Scope) Type() (*syntax.TypeDecl, bool) {
	if s.Parent == nil {
		return nil, false
	}
	if t, ok := s.Parent.(*syntax.TypeDecl); ok {
		return t, true
	}
	return syntax.Enclosing(s.Parent)
}
