package syntaxgen

import (
	"context"
	"strings"

	"github.com/origadmin/scaffold/internal/errors"
	"github.com/origadmin/scaffold/internal/syntax"
)

// Builtins returns the default strategy for every node kind, all at priority 0.
func Builtins() []Strategy {
	return []Strategy{
		NewStrategy("using", syntax.KindUsing, 0, Typed(renderUsing)),
		NewStrategy("attribute", syntax.KindAttribute, 0, Typed(renderAttribute)),
		NewStrategy("typeref", syntax.KindTypeRef, 0, Typed(renderTypeRef)),
		NewStrategy("param", syntax.KindParam, 0, Typed(renderParam)),
		NewStrategy("expression", syntax.KindExpression, 0, Typed(renderExpression)),
		NewStrategy("field", syntax.KindField, 0, Typed(renderField)),
		NewStrategy("property", syntax.KindProperty, 0, Typed(renderProperty)),
		NewStrategy("method", syntax.KindMethod, 0, Typed(renderMethod)),
		NewStrategy("constructor", syntax.KindConstructor, 0, Typed(renderConstructor)),
		NewStrategy("class", syntax.KindClass, 0, Typed(renderTypeDecl)),
		NewStrategy("interface", syntax.KindInterface, 0, Typed(renderTypeDecl)),
		NewStrategy("document", syntax.KindDocument, 0, Typed(renderDocument)),
	}
}

func renderUsing(_ context.Context, _ *Generator, u *syntax.Using, _ Scope) (string, error) {
	if u.Alias != "" {
		return "using " + u.Alias + " = " + u.Namespace + ";", nil
	}
	return "using " + u.Namespace + ";", nil
}

func renderAttribute(_ context.Context, _ *Generator, a *syntax.Attribute, _ Scope) (string, error) {
	if len(a.Arguments) == 0 {
		return "[" + a.Name + "]", nil
	}
	return "[" + a.Name + "(" + strings.Join(a.Arguments, ", ") + ")]", nil
}

func renderTypeRef(ctx context.Context, g *Generator, t *syntax.TypeRef, scope Scope) (string, error) {
	var sb strings.Builder
	sb.WriteString(t.Name)
	if len(t.Generics) > 0 {
		args, err := renderJoined(ctx, g, t.Generics, scope.Enter(t), ", ")
		if err != nil {
			return "", err
		}
		sb.WriteString("<" + args + ">")
	}
	if t.Nullable {
		sb.WriteString("?")
	}
	return sb.String(), nil
}

func renderParam(ctx context.Context, g *Generator, p *syntax.Param, scope Scope) (string, error) {
	child := scope.Enter(p)
	var parts []string
	if len(p.Attributes) > 0 {
		attrs, err := renderJoined(ctx, g, p.Attributes, child, " ")
		if err != nil {
			return "", err
		}
		parts = append(parts, attrs)
	}
	typ, err := renderType(ctx, g, p.Type, child)
	if err != nil {
		return "", err
	}
	return strings.Join(append(parts, typ, p.Name), " "), nil
}

func renderExpression(ctx context.Context, g *Generator, e *syntax.Expression, _ Scope) (string, error) {
	if !e.IsTemplate() {
		return e.Text, nil
	}
	if g.templates == nil {
		return "", errors.New("template expression requires a template processor")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := g.templates.Process(ctx, e.Template, e.Tokens)
	if err != nil {
		return "", errors.Wrap(err, "render expression template")
	}
	return text, nil
}

func renderField(ctx context.Context, g *Generator, f *syntax.Field, scope Scope) (string, error) {
	child := scope.Enter(f)
	typ, err := renderType(ctx, g, f.Type, child)
	if err != nil {
		return "", err
	}
	words := modifiers(memberAccess(f.Access, scope), flag(f.Static, "static"), flag(f.ReadOnly, "readonly"))
	line := strings.Join(append(words, typ, f.Name), " ")
	if f.Initializer != nil {
		init, err := g.Render(ctx, f.Initializer, child)
		if err != nil {
			return "", err
		}
		line += " = " + init
	}
	return line + ";", nil
}

func renderProperty(ctx context.Context, g *Generator, p *syntax.Property, scope Scope) (string, error) {
	child := scope.Enter(p)
	lines, err := attributeLines(ctx, g, p.Attributes, child)
	if err != nil {
		return "", err
	}
	typ, err := renderType(ctx, g, p.Type, child)
	if err != nil {
		return "", err
	}

	iface := scope.InInterface()
	words := modifiers(memberAccess(p.Access, scope), flag(p.Required && !iface, "required"))
	line := strings.Join(append(words, typ, p.Name), " ") + " " + accessorList(p.Accessors)
	if p.Initializer != nil && !iface {
		init, err := g.Render(ctx, p.Initializer, child)
		if err != nil {
			return "", err
		}
		line += " = " + init + ";"
	}
	return strings.Join(append(lines, line), "\n"), nil
}

func accessorList(a syntax.Accessors) string {
	switch a {
	case syntax.GetOnly:
		return "{ get; }"
	case syntax.GetInit:
		return "{ get; init; }"
	default:
		return "{ get; set; }"
	}
}

func renderMethod(ctx context.Context, g *Generator, m *syntax.Method, scope Scope) (string, error) {
	child := scope.Enter(m)
	lines, err := attributeLines(ctx, g, m.Attributes, child)
	if err != nil {
		return "", err
	}

	ret := "void"
	if m.ReturnType != nil {
		if ret, err = g.Render(ctx, m.ReturnType, child); err != nil {
			return "", err
		}
	}
	params, err := renderJoined(ctx, g, m.Params, child, ", ")
	if err != nil {
		return "", err
	}

	words := modifiers(memberAccess(m.Access, scope),
		flag(m.Static, "static"), flag(m.Override, "override"), flag(m.Async && !scope.InInterface(), "async"))
	signature := strings.Join(append(words, ret, m.Name), " ") + "(" + params + ")"

	if scope.InInterface() || m.Body == nil {
		return strings.Join(append(lines, signature+";"), "\n"), nil
	}
	body, err := renderBody(ctx, g, m.Body, child)
	if err != nil {
		return "", err
	}
	return strings.Join(append(lines, signature+body), "\n"), nil
}

func renderConstructor(ctx context.Context, g *Generator, c *syntax.Constructor, scope Scope) (string, error) {
	owner, ok := scope.Type()
	if !ok {
		owner, ok = syntax.Enclosing(c)
	}
	if !ok {
		return "", errors.New("constructor rendered outside of a type declaration")
	}

	child := scope.Enter(c)
	params, err := renderJoined(ctx, g, c.Params, child, ", ")
	if err != nil {
		return "", err
	}
	words := modifiers(memberAccess(c.Access, scope))
	signature := strings.Join(append(words, owner.Name), " ") + "(" + params + ")"
	if c.BaseArgs != nil {
		signature += " : base(" + strings.Join(c.BaseArgs, ", ") + ")"
	}

	body := " { }"
	if c.Body != nil {
		if body, err = renderBody(ctx, g, c.Body, child); err != nil {
			return "", err
		}
	}
	return signature + body, nil
}

// renderBody renders a block body. Blank bodies collapse to " { }".
func renderBody(ctx context.Context, g *Generator, body *syntax.Expression, scope Scope) (string, error) {
	text, err := g.Render(ctx, body, scope)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return " { }", nil
	}
	return "\n{\n" + Indent(strings.Trim(text, "\n"), 1) + "\n}", nil
}

func renderDocument(ctx context.Context, g *Generator, d *syntax.Document, scope Scope) (string, error) {
	child := scope.Enter(d)

	// Alias imports of type declarations stay with the declaration; those of
	// members are hoisted to the top of the file.
	set := syntax.NewUsingSet()
	set.Add(d.Usings()...)
	for _, u := range syntax.CollectUsings(d) {
		if u.Alias == "" {
			set.Add(u)
		}
	}
	set.Add(memberAliases(d)...)

	var sections []string
	if set.Len() > 0 {
		usings, err := renderJoined(ctx, g, set.List(), child, "\n")
		if err != nil {
			return "", err
		}
		sections = append(sections, usings)
	}
	if d.Namespace != "" {
		sections = append(sections, "namespace "+d.Namespace+";")
	}
	if len(d.Types) > 0 {
		types, err := RenderList(ctx, g, d.Types, child)
		if err != nil {
			return "", err
		}
		sections = append(sections, types)
	}
	return strings.Join(sections, "\n\n") + "\n", nil
}

func renderType(ctx context.Context, g *Generator, t *syntax.TypeRef, scope Scope) (string, error) {
	if t == nil {
		return "object", nil
	}
	return g.Render(ctx, t, scope)
}

func renderJoined[N syntax.Node](ctx context.Context, g *Generator, nodes []N, scope Scope, sep string) (string, error) {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		text, err := g.Render(ctx, n, scope)
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, sep), nil
}

func attributeLines(ctx context.Context, g *Generator, attrs []*syntax.Attribute, scope Scope) ([]string, error) {
	lines := make([]string, 0, len(attrs))
	for _, a := range attrs {
		text, err := g.Render(ctx, a, scope)
		if err != nil {
			return nil, err
		}
		lines = append(lines, text)
	}
	return lines, nil
}

// memberAccess drops the access keyword of interface members.
func memberAccess(a syntax.Access, scope Scope) string {
	if scope.InInterface() {
		return ""
	}
	return a.Keyword()
}

func flag(set bool, word string) string {
	if set {
		return word
	}
	return ""
}

func modifiers(words ...string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
