package syntaxgen

import (
	"context"
	"strings"

	"github.com/origadmin/scaffold/internal/syntax"
)

// renderTypeDecl renders a class or interface:
//
//	using Alias = Namespace;
//
//	[Attribute]
//	public static class Name : Base, IFace
//	{
//	    fields
//
//	    constructors
//
//	    properties
//
//	    methods
//	}
//
// Member blocks are omitted when empty. A declaration without members
// renders as "public class Name { }" on one line.
func renderTypeDecl(ctx context.Context, g *Generator, t *syntax.TypeDecl, scope Scope) (string, error) {
	child := scope.Enter(t)
	var sb strings.Builder

	// Inside a document, member aliases are hoisted by the document.
	own := syntax.NewUsingSet()
	own.Add(t.Usings()...)
	if _, ok := scope.Parent.(*syntax.Document); !ok {
		own.Add(memberAliases(t)...)
	}

	aliases := 0
	for _, u := range own.List() {
		if u.Alias == "" {
			continue
		}
		text, err := g.Render(ctx, u, child)
		if err != nil {
			return "", err
		}
		sb.WriteString(text + "\n")
		aliases++
	}
	if aliases > 0 {
		sb.WriteString("\n")
	}

	lines, err := attributeLines(ctx, g, t.Attributes, child)
	if err != nil {
		return "", err
	}
	for _, line := range lines {
		sb.WriteString(line + "\n")
	}

	words := modifiers(t.Access.Keyword(), flag(t.Static, "static"), t.Kind().Keyword(), t.Name)
	sb.WriteString(strings.Join(words, " "))

	if len(t.Implements) > 0 {
		refs, err := renderJoined(ctx, g, t.Implements, child, ", ")
		if err != nil {
			return "", err
		}
		sb.WriteString(" : " + refs)
	}

	if t.MemberCount() == 0 {
		sb.WriteString(" { }")
		return sb.String(), nil
	}

	blocks := make([]string, 0, 4)
	for _, render := range []func() (string, error){
		func() (string, error) { return RenderList(ctx, g, t.Fields, child) },
		func() (string, error) { return RenderList(ctx, g, t.Constructors, child) },
		func() (string, error) { return RenderList(ctx, g, t.Properties, child) },
		func() (string, error) { return RenderList(ctx, g, t.Methods, child) },
	} {
		block, err := render()
		if err != nil {
			return "", err
		}
		if block != "" {
			blocks = append(blocks, Indent(block, 1))
		}
	}

	sb.WriteString("\n{\n")
	sb.WriteString(strings.Join(blocks, "\n\n"))
	sb.WriteString("\n}")
	return sb.String(), nil
}

// memberAliases collects the alias imports declared below n by nodes other
// than documents and type declarations, which place their own.
func memberAliases(n syntax.Node) []*syntax.Using {
	var out []*syntax.Using
	syntax.Walk(n, func(c syntax.Node) bool {
		switch c.(type) {
		case *syntax.Document, *syntax.TypeDecl:
			return true
		}
		for _, u := range c.Usings() {
			if u.Alias != "" {
				out = append(out, u)
			}
		}
		return true
	})
	return out
}
