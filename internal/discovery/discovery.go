package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindWorkbooks lists the xlsx files in dir whose base name contains the
// prefix substring (case-sensitive). Excel lock files ("~$" prefix) are
// skipped. Results are sorted lexically so the aggregator's first-row
// rule is reproducible across runs.
func FindWorkbooks(dir, prefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "~$") {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), ".xlsx") {
			continue
		}
		if !strings.Contains(name, prefix) {
			continue
		}
		out = append(out, filepath.Join(dir, name))
	}

	sort.Strings(out)
	return out, nil
}
