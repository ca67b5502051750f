package artifact

import (
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/lo"

	"github.com/origadmin/scaffold/internal/errors"
)

// Validate checks the whole tree rooted at root before anything is generated:
// every artifact is named, no two siblings resolve to the same path, project
// types and versions are valid, and every solution has an acyclic graph over
// projects it contains.
func Validate(root Artifact) error {
	var err error
	Walk(root, "", func(a Artifact, path string) bool {
		if err != nil {
			return false
		}
		err = validateOne(a, path)
		return err == nil
	})
	return err
}

func validateOne(a Artifact, path string) error {
	if strings.TrimSpace(a.ArtifactName()) == "" {
		return errors.Markf(errors.ErrPathConflict, "%s below %q has no name", a.Kind(), parentOf(path))
	}

	if name := a.ArtifactName(); name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errors.WithHint(
			errors.Markf(errors.ErrPathConflict, "%s %q below %q does not name a single path element", a.Kind(), name, parentOf(path)),
			"nest folders instead of putting separators in names")
	}

	// Siblings are compared by the path they resolve to, not by their raw names.
	paths := lo.Map(slices.Collect(Children(a)), func(c Artifact, _ int) string {
		return Path(path, c)
	})
	if dup := lo.FindDuplicates(paths); len(dup) > 0 {
		return errors.Markf(errors.ErrPathConflict, "%s %q contains more than one artifact resolving to %s",
			a.Kind(), path, strings.Join(dup, ", "))
	}

	switch v := a.(type) {
	case *Project:
		return validateProject(v)
	case *Solution:
		_, err := BuildOrder(v)
		return err
	}
	return nil
}

func validateProject(p *Project) error {
	if !p.Type.Valid() {
		return errors.WithHint(
			errors.Markf(errors.ErrInvalidProjectType, "project %s has unknown type %q", p.Name, p.Type),
			"use one of classlib, webapi, console, npm")
	}
	if p.Version == "" {
		return nil
	}
	if _, err := semver.StrictNewVersion(p.Version); err != nil {
		return errors.Mark(errors.Wrapf(err, "project %s has version %q", p.Name, p.Version), errors.ErrInvalidVersion)
	}
	return nil
}

func parentOf(path string) string {
	i := strings.LastIndexAny(path, `/\`)
	if i < 0 {
		return "."
	}
	return path[:i]
}

// BuildOrder sorts the top-level projects of s so that every project comes
// after the projects it depends on. Ties are broken by declaration order.
// Edges naming projects outside s.Projects fail with ErrUnknownProject and
// cycles with ErrDependencyCycle.
func BuildOrder(s *Solution) ([]*Project, error) {
	index := make(map[string]int, len(s.Projects))
	for i, p := range s.Projects {
		index[p.Name] = i
	}

	indegree := make([]int, len(s.Projects))
	dependents := make([][]int, len(s.Projects))
	for _, e := range lo.Uniq(s.Edges) {
		from, ok := index[e.From]
		if !ok {
			return nil, errors.Markf(errors.ErrUnknownProject, "solution %s: edge %s -> %s names unknown project %s",
				s.Name, e.From, e.To, e.From)
		}
		to, ok := index[e.To]
		if !ok {
			return nil, errors.Markf(errors.ErrUnknownProject, "solution %s: edge %s -> %s names unknown project %s",
				s.Name, e.From, e.To, e.To)
		}
		indegree[from]++
		dependents[to] = append(dependents[to], from)
	}

	order := make([]*Project, 0, len(s.Projects))
	done := make([]bool, len(s.Projects))
	for len(order) < len(s.Projects) {
		next := -1
		for i := range s.Projects {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			break
		}
		done[next] = true
		order = append(order, s.Projects[next])
		for _, d := range dependents[next] {
			indegree[d]--
		}
	}

	if len(order) < len(s.Projects) {
		var cycle []string
		for i, p := range s.Projects {
			if !done[i] {
				cycle = append(cycle, p.Name)
			}
		}
		return nil, errors.WithHint(
			errors.Markf(errors.ErrDependencyCycle, "solution %s: dependency cycle among projects %s",
				s.Name, strings.Join(cycle, ", ")),
			"remove one of the depends_on edges between these projects")
	}
	return order, nil
}
