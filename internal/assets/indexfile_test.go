package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadIndexFileParsesEntriesAndSkipsComments(t *testing.T) {
	hash := strings.Repeat("ab", 32)
	body := "# asset index\n" +
		"\n" +
		hash + " 1234 Server/Items/sword.json\n" +
		hash + " 9 Server/Items/long sword.json\n"
	path := filepath.Join(t.TempDir(), "index.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	entries, err := LoadIndexFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, IndexEntry{SHA256: hash, Size: 1234, Path: "Server/Items/sword.json"}, entries[0])
	require.Equal(t, "Server/Items/long sword.json", entries[1].Path)
}

func TestLoadIndexFileRejectsMalformedLines(t *testing.T) {
	cases := []string{
		"nothex 12 a.json",
		strings.Repeat("ab", 32) + " notanumber a.json",
		strings.Repeat("ab", 32) + " 12",
	}
	for _, line := range cases {
		path := filepath.Join(t.TempDir(), "index.txt")
		require.NoError(t, os.WriteFile(path, []byte(line+"\n"), 0o644))
		_, err := LoadIndexFile(path)
		require.Error(t, err, "line %q", line)
	}
}
