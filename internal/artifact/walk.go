package artifact

import (
	"iter"
)

// Children yields the direct children of a in generation order: folders,
// files, code files, then projects.
func Children(a Artifact) iter.Seq[Artifact] {
	return func(yield func(Artifact) bool) {
		switch v := a.(type) {
		case *Folder:
			_ = yieldAll(yield, v.Folders) &&
				yieldAll(yield, v.Files) &&
				yieldAll(yield, v.CodeFiles) &&
				yieldAll(yield, v.Projects)
		case *Project:
			_ = yieldAll(yield, v.Folders) &&
				yieldAll(yield, v.Files) &&
				yieldAll(yield, v.CodeFiles)
		case *Solution:
			_ = yieldAll(yield, v.Folders) &&
				yieldAll(yield, v.Files) &&
				yieldAll(yield, v.Projects)
		}
	}
}

func yieldAll[T Artifact](yield func(Artifact) bool, items []T) bool {
	for _, it := range items {
		if !yield(it) {
			return false
		}
	}
	return true
}

// Walk visits a and its descendants in pre-order together with their path
// below dir. Returning false from fn skips the children of that artifact.
func Walk(a Artifact, dir string, fn func(a Artifact, path string) bool) {
	path := Path(dir, a)
	if !fn(a, path) {
		return
	}
	for c := range Children(a) {
		Walk(c, path, fn)
	}
}
