package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sqliteEnv points every command at a fresh sqlite database.
func sqliteEnv(t *testing.T) {
	t.Helper()
	t.Setenv("NAVDIR_BACKEND", "sqlite")
	t.Setenv("NAVDIR_SQLITE_PATH", filepath.Join(t.TempDir(), "navdir.db"))
	t.Setenv("NAVDIR_LOG_LEVEL", "error")
	t.Setenv("NAVDIR_PRETTY_LOG", "false")
	t.Setenv("NAVDIR_SEED_FILE", "")
	t.Setenv("NAVDIR_ADMIN_SECRET", "")
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := RootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func exportDirectory(t *testing.T) map[string]json.RawMessage {
	t.Helper()
	out, _, err := run(t, "", "export")
	require.NoError(t, err)
	var dir map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &dir))
	return dir
}

func TestExportDefaults(t *testing.T) {
	sqliteEnv(t)

	dir := exportDirectory(t)
	var links []json.RawMessage
	require.NoError(t, json.Unmarshal(dir["links"], &links))
	assert.Len(t, links, 6)
	assert.Contains(t, dir, "categories")
}

func TestImportThenExport(t *testing.T) {
	sqliteEnv(t)
	file := filepath.Join(t.TempDir(), "links.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
links:
  - name: Go
    url: https://go.dev
    category: dev
categories:
  dev: Development
`), 0o644))

	_, stderr, err := run(t, "", "import", file)
	require.NoError(t, err)
	assert.Contains(t, stderr, "1 links, 1 categories")

	dir := exportDirectory(t)
	assert.JSONEq(t, `[{"name":"Go","url":"https://go.dev","category":"dev"}]`, string(dir["links"]))
	assert.JSONEq(t, `{"dev":"Development"}`, string(dir["categories"]))
}

func TestImportLegacyArrayKeepsCategories(t *testing.T) {
	sqliteEnv(t)
	before := exportDirectory(t)

	file := filepath.Join(t.TempDir(), "links.json")
	require.NoError(t, os.WriteFile(file, []byte(`[{"name":"a","url":"https://a"}]`), 0o644))

	_, _, err := run(t, "", "import", file)
	require.NoError(t, err)

	after := exportDirectory(t)
	assert.JSONEq(t, string(before["categories"]), string(after["categories"]))
	assert.JSONEq(t, `[{"name":"a","url":"https://a"}]`, string(after["links"]))
}

func TestImportDryRunDoesNotWrite(t *testing.T) {
	sqliteEnv(t)
	file := filepath.Join(t.TempDir(), "links.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"links":[]}`), 0o644))

	out, _, err := run(t, "", "import", "--dry-run", file)
	require.NoError(t, err)
	assert.Contains(t, out, `"links": []`)

	var links []json.RawMessage
	require.NoError(t, json.Unmarshal(exportDirectory(t)["links"], &links))
	assert.Len(t, links, 6, "store untouched")
}

func TestImportRejectsBadInput(t *testing.T) {
	sqliteEnv(t)
	file := filepath.Join(t.TempDir(), "links.json")
	require.NoError(t, os.WriteFile(file, []byte(`"x"`), 0o644))

	_, _, err := run(t, "", "import", file)
	assert.Error(t, err)

	_, _, err = run(t, "", "import", "--format", "toml", file)
	assert.ErrorContains(t, err, "unknown file format")
}

func TestExportToFile(t *testing.T) {
	sqliteEnv(t)
	out := filepath.Join(t.TempDir(), "backup.json")

	stdout, stderr, err := run(t, "", "export", "-o", out)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "exported 6 links")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestPassword(t *testing.T) {
	sqliteEnv(t)

	_, stderr, err := run(t, "", "password", "n3w")
	require.NoError(t, err)
	assert.Contains(t, stderr, "admin password updated")

	_, _, err = run(t, "from-stdin\n", "password")
	require.NoError(t, err)

	_, _, err = run(t, "   \n", "password")
	assert.Error(t, err, "blank passwords are rejected")
}

func TestInvalidConfig(t *testing.T) {
	sqliteEnv(t)
	t.Setenv("NAVDIR_BACKEND", "etcd")

	_, _, err := run(t, "", "export")
	assert.ErrorContains(t, err, "NAVDIR_BACKEND")
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "navdir "))
}
