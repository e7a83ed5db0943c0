package fetch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Jay5Bhatt/space-knowledge-engine/internal/model"
)

// fetchLocalSamples reads *.txt and *.md files from the samples dir in
// name order. A missing dir or unreadable file is a warning, not an
// error: the demo must run on whatever samples exist.
func (f *Fetcher) fetchLocalSamples() []model.Item {
	entries, err := os.ReadDir(f.cfg.SamplesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: samples directory not readable: %s\n", f.cfg.SamplesDir)
		return nil
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		lower := strings.ToLower(e.Name())
		if strings.HasSuffix(lower, ".txt") || strings.HasSuffix(lower, ".md") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var items []model.Item
	for _, name := range names {
		raw, err := os.ReadFile(filepath.Join(f.cfg.SamplesDir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to read sample %s: %v\n", name, err)
			continue
		}
		items = append(items, model.Item{
			ID:     name,
			Title:  strings.TrimSuffix(name, filepath.Ext(name)),
			Source: "local_file",
			Raw:    string(raw),
		})
	}
	return items
}
