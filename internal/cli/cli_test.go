package cli

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderText(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	p := writeFile(t, dir, "find.yaml", "select: ['*']\nfrom: [books]\nwhere: [{field: id, value: 1}]\n")

	out, err := run(t, "render", p)
	require.NoError(t, err)
	assert.Contains(t, out, "-- "+p)
	assert.Contains(t, out, "SELECT * FROM `books` WHERE `id` = :")
	assert.Contains(t, out, "TOKEN")
}

func TestRenderDialects(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	p := writeFile(t, dir, "find.yaml", "select: ['*']\nfrom: [books]\nwhere: [{field: title, value: \"o'neil\"}]\n")

	out, err := run(t, "render", "--dialect", "postgres", p)
	require.NoError(t, err)
	assert.Contains(t, out, `SELECT * FROM "books" WHERE "title" = $1;`)
	assert.Contains(t, out, "-- args: [o'neil]")

	out, err = run(t, "render", "--dialect", "mysql", "--inline", p)
	require.NoError(t, err)
	assert.Contains(t, out, "SELECT * FROM `books` WHERE `title` = 'o''neil';")

	_, err = run(t, "render", "--inline", p)
	assert.ErrorContains(t, err, "--inline requires --dialect")

	_, err = run(t, "render", "--dialect", "oracle", p)
	assert.Error(t, err)
}

func TestRenderJSONKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	a := writeFile(t, dir, "a.yaml", "name: first\nselect: [id]\nfrom: [a]\n")
	b := writeFile(t, dir, "b.yaml", "name: second\ndelete: b\nwhere: [{field: id, op: in, value: [1, 2]}]\n")

	out, err := run(t, "render", "-o", "json", a, b)
	require.NoError(t, err)

	var got []Rendered
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Name)
	assert.Equal(t, "SELECT id FROM `a`;", got[0].SQL)
	assert.Equal(t, "second", got[1].Name)
	assert.Equal(t, "DELETE FROM `b` WHERE `id` IN (1,2);", got[1].SQL)
}

func TestRenderFailures(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	bad := writeFile(t, dir, "bad.yaml", "update: books\n")

	_, err := run(t, "render", bad)
	assert.ErrorContains(t, err, "update has no set assignments")

	_, err = run(t, "render", "-o", "xml", bad)
	assert.ErrorContains(t, err, `unknown output format "xml"`)

	_, err = run(t, "render", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = run(t, "--mode", "loose", "render", bad)
	assert.ErrorContains(t, err, "unknown builder mode")
}

func TestExecAgainstSQLite(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	dbPath := filepath.Join(dir, "library.db")

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE books (id INTEGER PRIMARY KEY, title TEXT NOT NULL, year INTEGER)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	cfg := writeFile(t, dir, "bookworm.yaml", "driver: sqlite\nconnection:\n  path: "+dbPath+"\nlog:\n  level: error\n")
	insert := writeFile(t, dir, "insert.yaml", "insert: books\nfieldnames: [title, year]\nvalues:\n  - [Dune, 1965]\n  - [Emma, 1815]\n")
	find := writeFile(t, dir, "find.yaml", "select: [title, year]\nfrom: [books]\nbetween: [{field: year, begin: 1900, end: 2000}]\n")

	out, err := run(t, "--config", cfg, "exec", insert)
	require.NoError(t, err)
	assert.Equal(t, "2 rows affected\n", out)

	out, err = run(t, "--config", cfg, "exec", find)
	require.NoError(t, err)
	assert.Contains(t, out, "Dune")
	assert.NotContains(t, out, "Emma")
	assert.Contains(t, out, "(1 rows)")

	out, err = run(t, "--config", cfg, "exec", "-o", "json", find)
	require.NoError(t, err)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Dune", rows[0]["title"])
	assert.EqualValues(t, 1965, rows[0]["year"])
}

func TestExecUnknownDriver(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	p := writeFile(t, dir, "find.yaml", "select: [id]\nfrom: [a]\n")

	_, err := run(t, "--driver", "oracle", "exec", p)
	assert.ErrorContains(t, err, "provider oracle not registered")
}
