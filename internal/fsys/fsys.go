// Package fsys implements the file-system collaborator on top of afero.
package fsys

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
	"golang.org/x/tools/txtar"

	"github.com/origadmin/scaffold/internal/errors"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// FileSystem is the contract the generation engine writes through.
type FileSystem interface {
	MkdirAll(path string) error
	WriteFile(path, text string) error
	ReadFile(path string) (string, error)
	Glob(pattern string) ([]string, error)
}

// Afero adapts an afero.Fs to FileSystem.
type Afero struct {
	fs afero.Fs
}

// New wraps an existing afero file system.
func New(fs afero.Fs) *Afero {
	return &Afero{fs: fs}
}

// NewOS returns a FileSystem rooted at root on the host file system.
func NewOS(root string) *Afero {
	return New(afero.NewBasePathFs(afero.NewOsFs(), root))
}

// NewMemory returns an empty in-memory FileSystem.
func NewMemory() *Afero {
	return New(afero.NewMemMapFs())
}

// Fs exposes the underlying afero file system.
func (a *Afero) Fs() afero.Fs {
	return a.fs
}

func (a *Afero) MkdirAll(path string) error {
	if err := a.fs.MkdirAll(path, dirPerm); err != nil {
		return errors.Wrapf(err, "create directory %s", path)
	}
	return nil
}

// WriteFile writes text, creating missing parent directories.
func (a *Afero) WriteFile(path, text string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := a.MkdirAll(dir); err != nil {
			return err
		}
	}
	if err := afero.WriteFile(a.fs, path, []byte(text), filePerm); err != nil {
		return errors.Wrapf(err, "write file %s", path)
	}
	return nil
}

func (a *Afero) ReadFile(path string) (string, error) {
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return "", errors.Wrapf(err, "read file %s", path)
	}
	return string(data), nil
}

func (a *Afero) Glob(pattern string) ([]string, error) {
	matches, err := afero.Glob(a.fs, pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "glob %s", pattern)
	}
	sort.Strings(matches)
	return matches, nil
}

// Snapshot collects every regular file below root into a txtar archive,
// sorted by path, with names relative to root and slash-separated.
func Snapshot(fs afero.Fs, root string) (*txtar.Archive, error) {
	var files []txtar.File
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, txtar.File{Name: filepath.ToSlash(rel), Data: data})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "snapshot %s", root)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return &txtar.Archive{Files: files}, nil
}

// Restore writes every file of an archive below root.
func Restore(fsys FileSystem, root string, a *txtar.Archive) error {
	for _, f := range a.Files {
		if err := fsys.WriteFile(filepath.Join(root, filepath.FromSlash(f.Name)), string(f.Data)); err != nil {
			return err
		}
	}
	return nil
}
