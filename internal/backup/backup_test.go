package backup

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveAndRestoreRoundtrip(t *testing.T) {
	src := t.TempDir()
	usersPath := filepath.Join(src, "users.json")
	ordersPath := filepath.Join(src, "orders.json")
	require.NoError(t, os.WriteFile(usersPath, []byte(`{"42":{"first_name":"علی"}}`), 0o644))
	require.NoError(t, os.WriteFile(ordersPath, []byte(`{}`), 0o644))

	// a listed file that does not exist is skipped, not an error
	buf, err := Archive([]string{usersPath, ordersPath, filepath.Join(src, "missing.json")})
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Len(t, zr.File, 2)

	dst := t.TempDir()
	require.NoError(t, Restore(dst, buf.Bytes(), []string{"users.json", "orders.json"}))

	restored, err := os.ReadFile(filepath.Join(dst, "users.json"))
	require.NoError(t, err)
	assert.Contains(t, string(restored), "علی")
}

func TestRestoreIgnoresUnknownEntries(t *testing.T) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	w, err := zw.Create("users.json")
	require.NoError(t, err)
	_, err = w.Write([]byte(`{}`))
	require.NoError(t, err)
	w, err = zw.Create("../evil.json")
	require.NoError(t, err)
	_, err = w.Write([]byte(`{}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	dir := t.TempDir()
	require.NoError(t, Restore(dir, buf.Bytes(), []string{"users.json"}))

	_, err = os.Stat(filepath.Join(dir, "users.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "evil.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestRestoreRejectsGarbage(t *testing.T) {
	err := Restore(t.TempDir(), []byte("not a zip"), []string{"users.json"})
	assert.Error(t, err)
}
