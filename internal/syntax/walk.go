package syntax

import (
	"iter"
)

// Children yields the direct structural children of n in rendering order.
// For type declarations that is fields, constructors, properties, methods,
// implemented-type references and finally attributes.
func Children(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		switch v := n.(type) {
		case *TypeDecl:
			_ = yieldAll(yield, v.Fields) &&
				yieldAll(yield, v.Constructors) &&
				yieldAll(yield, v.Properties) &&
				yieldAll(yield, v.Methods) &&
				yieldAll(yield, v.Implements) &&
				yieldAll(yield, v.Attributes)
		case *Document:
			yieldAll(yield, v.Types)
		case *Field:
			_ = yieldOne(yield, v.Type) && yieldOne(yield, v.Initializer)
		case *Property:
			_ = yieldAll(yield, v.Attributes) &&
				yieldOne(yield, v.Type) &&
				yieldOne(yield, v.Initializer)
		case *Method:
			_ = yieldAll(yield, v.Attributes) &&
				yieldOne(yield, v.ReturnType) &&
				yieldAll(yield, v.Params) &&
				yieldOne(yield, v.Body)
		case *Constructor:
			_ = yieldAll(yield, v.Params) && yieldOne(yield, v.Body)
		case *Param:
			_ = yieldAll(yield, v.Attributes) && yieldOne(yield, v.Type)
		case *TypeRef:
			yieldAll(yield, v.Generics)
		}
	}
}

func yieldAll[T Node](yield func(Node) bool, nodes []T) bool {
	for _, n := range nodes {
		if !yieldOne(yield, n) {
			return false
		}
	}
	return true
}

// yieldOne skips nil pointers hidden behind the interface.
func yieldOne[T Node](yield func(Node) bool, n T) bool {
	if any(n) == nil || IsNil(n) {
		return true
	}
	return yield(n)
}

// IsNil reports whether n is nil or a nil pointer of one of the variants.
func IsNil(n Node) bool {
	switch v := n.(type) {
	case *TypeRef:
		return v == nil
	case *Expression:
		return v == nil
	case *Field:
		return v == nil
	case *Property:
		return v == nil
	case *Method:
		return v == nil
	case *Constructor:
		return v == nil
	case *Param:
		return v == nil
	case *Attribute:
		return v == nil
	case *TypeDecl:
		return v == nil
	case *Using:
		return v == nil
	case *Document:
		return v == nil
	}
	return n == nil
}

// Walk visits n and its descendants depth-first in pre-order. Returning
// false from fn skips the children of that node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || IsNil(n) {
		return
	}
	if !fn(n) {
		return
	}
	for c := range Children(n) {
		Walk(c, fn)
	}
}

// CollectUsings gathers the imports declared anywhere in the tree rooted at
// n. The first occurrence of each import wins and insertion order is kept.
func CollectUsings(n Node) []*Using {
	set := NewUsingSet()
	Walk(n, func(c Node) bool {
		set.Add(c.Usings()...)
		return true
	})
	return set.List()
}

// Enclosing returns the nearest type-declaration ancestor of n.
func Enclosing(n Node) (*TypeDecl, bool) {
	if n == nil {
		return nil, false
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if t, ok := p.(*TypeDecl); ok {
			return t, true
		}
	}
	return nil, false
}
