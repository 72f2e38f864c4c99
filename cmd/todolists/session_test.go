package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/aretw0/todolists/internal/testutils"
	"github.com/aretw0/todolists/pkg/adapters/file"
	"github.com/aretw0/todolists/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func seedStore(t *testing.T, dir string, ids ...string) {
	t.Helper()
	store := file.New(dir)
	for _, id := range ids {
		testutils.SeedSession(t, store, id, "Groceries")
	}
}

func TestSessionCommands(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	dir := t.TempDir()
	seedStore(t, dir, "alpha", "beta")
	storeFlags := []string{"--store", "file", "--store-path", dir}

	out, err := runCLI(t, append([]string{"session", "ls"}, storeFlags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "- alpha (1 lists)")
	assert.Contains(t, out, "- beta (1 lists)")

	out, err = runCLI(t, append([]string{"session", "inspect", "alpha"}, storeFlags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Groceries"`)

	out, err = runCLI(t, append([]string{"session", "inspect", "alpha", "--yaml"}, storeFlags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "name: Groceries")
	assert.False(t, strings.Contains(out, "{"), "yaml output is block style")

	_, err = runCLI(t, append([]string{"session", "inspect", "missing", "--yaml=false"}, storeFlags...)...)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	out, err = runCLI(t, append([]string{"session", "rm", "alpha"}, storeFlags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed session 'alpha'")

	out, err = runCLI(t, append([]string{"session", "rm", "--all"}, storeFlags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed session 'beta'")

	out, err = runCLI(t, append([]string{"session", "ls"}, storeFlags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "No active sessions found.")
}

func TestFormatState_YAML(t *testing.T) {
	st := domain.NewState()
	l := st.AddList("Chores")
	list, err := st.FindList(l.ID)
	require.NoError(t, err)
	list.AddTodo("Dishes")

	data, err := formatState(st, true)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "lists:")
	assert.Contains(t, out, "name: Dishes")
	assert.Contains(t, out, "completed: false")
	assert.Less(t, strings.Index(out, "id:"), strings.Index(out, "name: Chores"), "keys keep their JSON order")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "todolists version")
}
