package tilemap

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtension is the suffix every map file must carry.
const DefaultExtension = ".ber"

// HasExtension reports whether name ends with ext and has a non-empty stem.
func HasExtension(name, ext string) bool {
	base := filepath.Base(name)
	return len(base) > len(ext) && strings.HasSuffix(base, ext)
}

// ParseGrid splits map text into a Grid.
//
// A single trailing newline does not produce a row. Interior blank lines are
// kept as empty rows so that shape validation can reject them.
//
// Postcondition: Returns a non-nil Grid; it may have zero rows.
func ParseGrid(data []byte) *Grid {
	text := string(data)
	if text == "" {
		return NewGrid(nil)
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return NewGrid(lines)
}

// LoadGridFromFile reads and parses a single map file.
//
// Precondition: path must point to a readable file.
// Postcondition: Returns a Grid or a non-nil error. The grid is not validated.
func LoadGridFromFile(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map file %s: %w", path, err)
	}
	return ParseGrid(data), nil
}

// ListMapFiles returns the paths of all files in dir whose names carry ext,
// sorted by name. Subdirectories are not descended into.
//
// Precondition: dir must be a valid directory path.
// Postcondition: Returns at least one path or a non-nil error.
func ListMapFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading map directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !HasExtension(entry.Name(), ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no %s map files found in %s", ext, dir)
	}
	sort.Strings(paths)
	return paths, nil
}
