package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/domain"
)

// testConfig writes a config pointing at a throwaway data directory with
// a near-instant checkout delay.
func testConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "vertix.yaml")
	contents := fmt.Sprintf("data_dir: %s\nlog_level: error\ncheckout_delay: 1ms\n",
		filepath.Join(dir, "data"))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func runVertix(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func TestInitAndListFlow(t *testing.T) {
	cfg := testConfig(t)

	out, err := runVertix(t, cfg, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "store ready:")

	// Repeat runs do not re-seed.
	again, err := runVertix(t, cfg, "init")
	require.NoError(t, err)
	assert.Equal(t, out, again)

	out, err = runVertix(t, cfg, "products", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "cpu-ryzen7-7800x3d")

	out, err = runVertix(t, cfg, "products", "list", "--category", "GPU")
	require.NoError(t, err)
	assert.Contains(t, out, "gpu-rtx-4070-super")
	assert.NotContains(t, out, "cpu-ryzen7-7800x3d")

	out, err = runVertix(t, cfg, "products", "get", "cpu-ryzen7-7800x3d")
	require.NoError(t, err)
	assert.Contains(t, out, "cpu-ryzen7-7800x3d")

	_, err = runVertix(t, cfg, "products", "get", "no-such-id")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestProductsAddValidation(t *testing.T) {
	cfg := testConfig(t)

	out, err := runVertix(t, cfg, "products", "add",
		"--name", "Test Fan", "--price", "19.99", "--category", "Cooling", "--stock", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "added Test Fan")

	_, err = runVertix(t, cfg, "products", "add",
		"--name", "Bad Fan", "--price", "-5")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid product")
}

func TestSessionFlow(t *testing.T) {
	cfg := testConfig(t)

	out, err := runVertix(t, cfg, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "not logged in")

	out, err = runVertix(t, cfg, "register", "ada", "ada@example.com", "hunter22",
		"--name", "Ada Lovelace")
	require.NoError(t, err)
	assert.Contains(t, out, "registered ada")

	_, err = runVertix(t, cfg, "login", "ada", "wrong")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	out, err = runVertix(t, cfg, "login", "ada", "hunter22")
	require.NoError(t, err)
	assert.Contains(t, out, "logged in as ada")

	// The session survives across invocations.
	out, err = runVertix(t, cfg, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "ada <ada@example.com>")

	out, err = runVertix(t, cfg, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "logged out")

	out, err = runVertix(t, cfg, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "not logged in")
}

func TestAdminLoginAndUserManagement(t *testing.T) {
	cfg := testConfig(t)

	_, err := runVertix(t, cfg, "users", "list")
	require.Error(t, err, "users list is admin-only")

	out, err := runVertix(t, cfg, "login", domain.AdminUsername, domain.AdminPassword)
	require.NoError(t, err)
	assert.Contains(t, out, "(admin)")

	_, err = runVertix(t, cfg, "register", "ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	out, err = runVertix(t, cfg, "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ada")

	out, err = runVertix(t, cfg, "users", "ban", "ada")
	require.NoError(t, err)
	assert.Contains(t, out, "banned")

	_, err = runVertix(t, cfg, "logout")
	require.NoError(t, err)
	_, err = runVertix(t, cfg, "login", "ada", "hunter22")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "banned")
}

func TestCartAndCheckoutFlow(t *testing.T) {
	cfg := testConfig(t)

	_, err := runVertix(t, cfg, "init")
	require.NoError(t, err)

	out, err := runVertix(t, cfg, "cart", "add", "gpu-rtx-4070-super", "-q", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "cart: 2 items")

	out, err = runVertix(t, cfg, "cart", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "gpu-rtx-4070-super")
	assert.Contains(t, out, "2 items")

	// Checkout requires a session.
	_, err = runVertix(t, cfg, "cart", "checkout")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	_, err = runVertix(t, cfg, "login", domain.AdminUsername, domain.AdminPassword)
	require.NoError(t, err)

	out, err = runVertix(t, cfg, "cart", "checkout")
	require.NoError(t, err)
	assert.Contains(t, out, "order ")
	assert.Contains(t, out, "placed")

	out, err = runVertix(t, cfg, "cart", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "0 items")

	out, err = runVertix(t, cfg, "orders")
	require.NoError(t, err)
	assert.Contains(t, out, "1 orders")

	// An empty cart cannot be checked out.
	_, err = runVertix(t, cfg, "cart", "checkout")
	require.Error(t, err)
}

func TestBuildFlow(t *testing.T) {
	cfg := testConfig(t)

	_, err := runVertix(t, cfg, "init")
	require.NoError(t, err)

	out, err := runVertix(t, cfg, "build", "set", "cpu", "cpu-ryzen7-7800x3d")
	require.NoError(t, err)
	assert.Contains(t, out, "16% complete")

	_, err = runVertix(t, cfg, "build", "set", "winglets", "cpu-ryzen7-7800x3d")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid slot")

	out, err = runVertix(t, cfg, "build", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "fill all required slots")

	out, err = runVertix(t, cfg, "build", "remove", "cpu")
	require.NoError(t, err)
	assert.Contains(t, out, "0% complete")

	_, err = runVertix(t, cfg, "build", "clear")
	require.NoError(t, err)
}

func TestInvalidFormatRejected(t *testing.T) {
	cfg := testConfig(t)

	_, err := runVertix(t, cfg, "--format", "xml", "whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestJSONOutput(t *testing.T) {
	cfg := testConfig(t)

	_, err := runVertix(t, cfg, "init")
	require.NoError(t, err)

	out, err := runVertix(t, cfg, "--format", "json", "products", "get", "cpu-ryzen7-7800x3d")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "cpu-ryzen7-7800x3d"`)
}
