package assets

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// IndexEntry is one line of the optional asset index file: the sha256
// of an archive entry's contents, its size, and its archive path.
type IndexEntry struct {
	SHA256 string
	Size   uint64
	Path   string
}

// LoadIndexFile parses the line-oriented asset index format:
// `<sha256_hex> <size_decimal> <path>`, one entry per line. Lines
// starting with '#' and blank lines are ignored. Paths may contain
// spaces; only the first two fields are delimiter-split.
func LoadIndexFile(path string) ([]IndexEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: open index file %s: %w", path, err)
	}
	defer f.Close()

	var out []IndexEntry
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entry, err := parseIndexLine(line)
		if err != nil {
			return nil, fmt.Errorf("assets: index file %s line %d: %w", path, lineNo, err)
		}
		out = append(out, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("assets: read index file %s: %w", path, err)
	}
	return out, nil
}

func parseIndexLine(line string) (IndexEntry, error) {
	fields := strings.SplitN(line, " ", 3)
	if len(fields) != 3 {
		return IndexEntry{}, fmt.Errorf("want `<sha256> <size> <path>`, got %q", line)
	}
	if len(fields[0]) != 64 {
		return IndexEntry{}, fmt.Errorf("sha256 field must be 64 hex chars, got %d", len(fields[0]))
	}
	size, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return IndexEntry{}, fmt.Errorf("size field: %w", err)
	}
	return IndexEntry{SHA256: strings.ToLower(fields[0]), Size: size, Path: fields[2]}, nil
}
