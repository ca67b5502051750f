package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/origadmin/scaffold/internal/errors"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd(BuildInfo{Version: "1.2.3", Commit: "abc123"})
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func archiveNames(t *testing.T, out string) []string {
	t.Helper()
	var names []string
	for _, f := range txtar.Parse([]byte(out)).Files {
		names = append(names, f.Name)
	}
	return names
}

func TestGenerate_DryRun(t *testing.T) {
	out, stderr, err := run(t, "generate", "-f", "testdata/mini.yaml", "--dry-run")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Mini/Mini.Domain/Entities/Note.cs",
		"Mini/Mini.Domain/Mini.Domain.csproj",
		"Mini/Mini.sln",
		"Mini/mini-web/package.json",
	}, archiveNames(t, out))
	assert.Contains(t, stderr, "npm install")
}

func TestGenerate_WritesFiles(t *testing.T) {
	dir := t.TempDir()
	_, _, err := run(t, "generate", "-f", "testdata/domain.yaml", "-o", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "Mini", "Mini.Domain", "Entities", "Note.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "public class Note")
	assert.FileExists(t, filepath.Join(dir, "Mini", "Mini.sln"))
}

func TestGenerate_CycleWritesNothing(t *testing.T) {
	dir := t.TempDir()
	_, _, err := run(t, "generate", "-f", "testdata/cycle.yaml", "-o", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDependencyCycle))

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestGenerate_MissingManifest(t *testing.T) {
	_, _, err := run(t, "generate", "-f", filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestEntity_Stdout(t *testing.T) {
	out, _, err := run(t, "entity", "Customer", "--props", "Name:string", "--namespace", "Shop", "--stdout")
	require.NoError(t, err)

	want := `using System;

namespace Shop;

public class Customer
{
    public string Name { get; set; }

    public Guid CustomerId { get; set; }
}
`
	assert.Equal(t, want, out)
}

func TestEntity_DryRunWithDto(t *testing.T) {
	out, _, err := run(t, "entity", "Order", "-p", "Total:decimal", "--dto", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, []string{"Entities/Order.cs", "Entities/OrderDto.cs"}, archiveNames(t, out))
}

func TestEntity_RequiresName(t *testing.T) {
	_, _, err := run(t, "entity")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "abc123")

	out, _, err = run(t, "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"1.2.3"`)
}
