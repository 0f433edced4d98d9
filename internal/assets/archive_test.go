package assets

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestArchive(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assets.zip")
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	for name, contents := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(contents))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestArchiveOpenIndexesByPathAndHash(t *testing.T) {
	path := writeTestArchive(t, map[string]string{
		"Server/Audio/AudioCategories/ambient.json": `{"id":"ambient"}`,
		"Server/Audio/AudioCategories/":             "",
	})

	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	require.Equal(t, 1, a.Len())

	info, ok := a.ByPath("Server/Audio/AudioCategories/ambient.json")
	require.True(t, ok)
	require.Equal(t, uint64(len(`{"id":"ambient"}`)), info.UncompressedSize)

	sum := sha256.Sum256([]byte("Server/Audio/AudioCategories/ambient.json"))
	hash := hex.EncodeToString(sum[:])
	require.Equal(t, hash, info.SHA256OfPath)

	byHash, ok := a.ByHash(hash)
	require.True(t, ok)
	require.Equal(t, info, byHash)
}

func TestArchivePathsFiltersByPrefix(t *testing.T) {
	path := writeTestArchive(t, map[string]string{
		"Server/Audio/AudioCategories/a.json": "{}",
		"Server/Audio/AudioCategories/b.json": "{}",
		"Server/Items/sword.json":             "{}",
	})

	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	require.Len(t, a.Paths("Server/Audio/AudioCategories/"), 2)
	require.Len(t, a.Paths("Server/Items/"), 1)
	require.Len(t, a.Paths("Server/Missing/"), 0)
}

func TestArchiveReadFullReturnsExactContents(t *testing.T) {
	contents := `{"id":"ambient","volumeDb":-6}`
	path := writeTestArchive(t, map[string]string{
		"Server/Audio/AudioCategories/ambient.json": contents,
	})

	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	data, err := a.ReadFull("Server/Audio/AudioCategories/ambient.json")
	require.NoError(t, err)
	require.Equal(t, contents, string(data))
}

func TestArchiveReadFullMissingEntry(t *testing.T) {
	path := writeTestArchive(t, map[string]string{"a.json": "{}"})
	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.ReadFull("missing.json")
	require.Error(t, err)
}
