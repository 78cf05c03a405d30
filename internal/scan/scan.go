// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan enumerates local documents and matches them to supported
// categories through an operator-supplied category map.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Category describes one supported document kind: its display name, the
// remote folder that stores it, and the filename prefixes that identify
// its documents locally.
type Category struct {
	// Name is the category display name, e.g. "Fee in Lieu".
	Name string `yaml:"name"`

	// Folder is the remote folder name on the Document Center. Empty
	// defaults to Name.
	Folder string `yaml:"folder,omitempty"`

	// Prefixes lists case-insensitive filename prefixes that map a local
	// file to this category, e.g. ["FeeInLieu_", "FILA_"].
	Prefixes []string `yaml:"prefixes"`
}

// RemoteFolder returns the remote folder for the category.
func (c Category) RemoteFolder() string {
	if c.Folder != "" {
		return c.Folder
	}
	return c.Name
}

// CategoryMap is the ordered list of supported categories. Order matters:
// the first category whose prefix matches wins.
type CategoryMap struct {
	Categories []Category `yaml:"categories"`
}

// LoadCategoryMap reads and validates a category map YAML file. Problems
// here are configuration errors and abort the run.
func LoadCategoryMap(path string) (*CategoryMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading category map %s: %w", path, err)
	}

	var m CategoryMap
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing category map %s: %w", path, err)
	}

	if len(m.Categories) == 0 {
		return nil, fmt.Errorf("category map %s defines no categories", path)
	}
	seen := make(map[string]bool)
	for _, c := range m.Categories {
		if c.Name == "" {
			return nil, fmt.Errorf("category map %s: category with empty name", path)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("category map %s: duplicate category %q", path, c.Name)
		}
		seen[c.Name] = true
		if len(c.Prefixes) == 0 {
			return nil, fmt.Errorf("category map %s: category %q has no prefixes", path, c.Name)
		}
	}
	return &m, nil
}

// Match categorizes the filename by prefix. The comparison is
// case-insensitive so "feeinlieu_12.pdf" and "FeeInLieu_12.PDF" land in
// the same category.
func (m *CategoryMap) Match(filename string) (Category, bool) {
	lower := strings.ToLower(filename)
	for _, c := range m.Categories {
		for _, p := range c.Prefixes {
			if strings.HasPrefix(lower, strings.ToLower(p)) {
				return c, true
			}
		}
	}
	return Category{}, false
}

// Find returns the category named name.
func (m *CategoryMap) Find(name string) (Category, bool) {
	for _, c := range m.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// Match is one local file paired with its category.
type Match struct {
	// Category is the matched category name.
	Category string

	// Folder is the remote folder for the category.
	Folder string

	// Path is the absolute or source-relative file path.
	Path string

	// Name is the file stem, which doubles as the document name on the
	// Document Center.
	Name string

	// Filename is the base name including extension.
	Filename string
}

// Result holds the outcome of one source folder scan.
type Result struct {
	// Matches are the categorized files, sorted by filename for
	// deterministic runs.
	Matches []Match

	// Unmatched lists files matching no category; the unmatched policy
	// decides whether these surface in the summary.
	Unmatched []string
}

// Source scans dir for regular files and categorizes them with the map.
// Subdirectories are not descended: the source layout is one flat folder
// per run, mirroring the remote folder it syncs to. A missing or
// unreadable dir is a configuration error.
func Source(dir string, categories *CategoryMap) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading source folder %s: %w", dir, err)
	}

	var res Result
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := entry.Name()
		category, ok := categories.Match(name)
		if !ok {
			res.Unmatched = append(res.Unmatched, name)
			continue
		}
		res.Matches = append(res.Matches, Match{
			Category: category.Name,
			Folder:   category.RemoteFolder(),
			Path:     filepath.Join(dir, name),
			Name:     strings.TrimSuffix(name, filepath.Ext(name)),
			Filename: name,
		})
	}

	sort.Slice(res.Matches, func(i, j int) bool {
		return res.Matches[i].Filename < res.Matches[j].Filename
	})
	sort.Strings(res.Unmatched)
	return &res, nil
}

// Stems returns the set of document names present in the scan, the unit
// of comparison against the remote folder listing.
func (r *Result) Stems() map[string]bool {
	stems := make(map[string]bool, len(r.Matches))
	for _, m := range r.Matches {
		stems[m.Name] = true
	}
	return stems
}
