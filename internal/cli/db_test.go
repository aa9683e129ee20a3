package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBExportImportRoundTrip(t *testing.T) {
	cfg := testConfig(t)
	snapshot := filepath.Join(t.TempDir(), "backup.db")

	_, err := runVertix(t, cfg, "init")
	require.NoError(t, err)

	_, err = runVertix(t, cfg, "products", "add",
		"--name", "Export Marker", "--price", "1.00", "--stock", "1")
	require.NoError(t, err)

	out, err := runVertix(t, cfg, "db", "export", snapshot)
	require.NoError(t, err)
	assert.Contains(t, out, "exported")

	// Mutate, then restore.
	_, err = runVertix(t, cfg, "db", "reset", "--yes")
	require.NoError(t, err)
	out, err = runVertix(t, cfg, "products", "search", "Export Marker")
	require.NoError(t, err)
	assert.Contains(t, out, "0 products")

	_, err = runVertix(t, cfg, "db", "import", snapshot)
	require.NoError(t, err)
	out, err = runVertix(t, cfg, "products", "search", "Export Marker")
	require.NoError(t, err)
	assert.Contains(t, out, "1 products")
}

func TestDBImportRejectsGarbage(t *testing.T) {
	cfg := testConfig(t)
	bogus := filepath.Join(t.TempDir(), "bogus.db")
	require.NoError(t, os.WriteFile(bogus, []byte("not a snapshot"), 0o600))

	_, err := runVertix(t, cfg, "init")
	require.NoError(t, err)

	_, err = runVertix(t, cfg, "db", "import", bogus)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	// The store is untouched.
	out, err := runVertix(t, cfg, "products", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "cpu-ryzen7-7800x3d")
}

func TestDBResetPrompt(t *testing.T) {
	cfg := testConfig(t)

	_, err := runVertix(t, cfg, "init")
	require.NoError(t, err)
	_, err = runVertix(t, cfg, "products", "add",
		"--name", "Doomed", "--price", "1.00", "--stock", "1")
	require.NoError(t, err)

	// Declining the prompt leaves everything in place.
	cmd := NewRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader("n\n"))
	cmd.SetArgs([]string{"--config", cfg, "db", "reset"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "aborted")

	out, err := runVertix(t, cfg, "products", "search", "Doomed")
	require.NoError(t, err)
	assert.Contains(t, out, "1 products")

	// Confirming goes through.
	cmd = NewRootCommand()
	buf.Reset()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader("y\n"))
	cmd.SetArgs([]string{"--config", cfg, "db", "reset"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "store reset:")

	out, err = runVertix(t, cfg, "products", "search", "Doomed")
	require.NoError(t, err)
	assert.Contains(t, out, "0 products")
}
