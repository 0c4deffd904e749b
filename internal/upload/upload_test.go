package upload

import (
	"bytes"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeaders builds real multipart file headers by writing and re-parsing a
// multipart body, the same way net/http produces them for a handler.
func fileHeaders(t *testing.T, files map[string]string) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["files"]
}

func dirEntries(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return entries
}

func TestAcceptStoresFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir, 0)
	require.NoError(t, err)

	stored, err := store.Accept(fileHeaders(t, map[string]string{
		"cat.JPG":  "jpeg-bytes",
		"logo.png": "png-bytes",
	}))
	require.NoError(t, err)
	require.Len(t, stored, 2)

	byOriginal := map[string]string{}
	for _, sf := range stored {
		assert.NotEqual(t, sf.OriginalName, sf.Name, "stored name must not reuse the client name")
		assert.Equal(t, strings.ToLower(filepath.Ext(sf.OriginalName)), filepath.Ext(sf.Name))
		byOriginal[sf.OriginalName] = sf.Name
	}

	data, err := os.ReadFile(filepath.Join(dir, byOriginal["logo.png"]))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestAcceptGeneratesUniqueNames(t *testing.T) {
	store, err := New(t.TempDir(), 0)
	require.NoError(t, err)

	first, err := store.Accept(fileHeaders(t, map[string]string{"same.png": "a"}))
	require.NoError(t, err)
	second, err := store.Accept(fileHeaders(t, map[string]string{"same.png": "b"}))
	require.NoError(t, err)

	assert.NotEqual(t, first[0].Name, second[0].Name)
}

func TestAcceptRejectsUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir, 0)
	require.NoError(t, err)

	_, err = store.Accept(fileHeaders(t, map[string]string{"payload.exe": "MZ"}))
	require.ErrorIs(t, err, ErrUnsupportedExtension)
	assert.Empty(t, dirEntries(t, dir))
}

func TestAcceptRejectsWholeBatch(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir, 0)
	require.NoError(t, err)

	_, err = store.Accept(fileHeaders(t, map[string]string{
		"ok.png":      "fine",
		"payload.exe": "MZ",
	}))
	require.ErrorIs(t, err, ErrUnsupportedExtension)
	assert.Empty(t, dirEntries(t, dir), "a rejected batch must leave nothing on disk")
}

func TestAcceptEnforcesSizeCap(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir, 4)
	require.NoError(t, err)

	_, err = store.Accept(fileHeaders(t, map[string]string{"big.png": "five!"}))
	require.ErrorIs(t, err, ErrFileTooLarge)
	assert.Empty(t, dirEntries(t, dir))

	stored, err := store.Accept(fileHeaders(t, map[string]string{"tiny.png": "ok"}))
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored[0].Size)
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	store, err := New(dir, 0)
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestAcceptEmptyFileStored(t *testing.T) {
	store, err := New(t.TempDir(), 0)
	require.NoError(t, err)

	stored, err := store.Accept(fileHeaders(t, map[string]string{"blank.gif": ""}))
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, int64(0), stored[0].Size)

	f, err := os.Open(filepath.Join(store.Dir(), stored[0].Name))
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Empty(t, data)
}
