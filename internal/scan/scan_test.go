// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleMap = `categories:
  - name: Fee in Lieu
    prefixes: [FeeInLieu_, FILA_]
  - name: Unrecorded Parcels
    folder: Unrecorded Parcels
    prefixes: [Unrecorded_]
  - name: Service and Annexation
    prefixes: [Service_, Annex_]
`

func writeMap(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCategoryMap(t *testing.T) {
	m, err := LoadCategoryMap(writeMap(t, sampleMap))
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Categories) != 3 {
		t.Fatalf("got %d categories, want 3", len(m.Categories))
	}
	if m.Categories[0].RemoteFolder() != "Fee in Lieu" {
		t.Errorf("RemoteFolder defaults to Name, got %q", m.Categories[0].RemoteFolder())
	}
}

func TestLoadCategoryMapErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"empty map", "categories: []\n", "no categories"},
		{"missing name", "categories:\n  - prefixes: [X_]\n", "empty name"},
		{"missing prefixes", "categories:\n  - name: Fee in Lieu\n", "no prefixes"},
		{"duplicate name", "categories:\n  - name: A\n    prefixes: [a]\n  - name: A\n    prefixes: [b]\n", "duplicate"},
		{"bad yaml", "categories: {{", "parsing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCategoryMap(writeMap(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadCategoryMapMissingFile(t *testing.T) {
	_, err := LoadCategoryMap(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("missing file should be a configuration error")
	}
}

func TestMatch(t *testing.T) {
	m, err := LoadCategoryMap(writeMap(t, sampleMap))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		filename string
		want     string
		wantOK   bool
	}{
		{"FeeInLieu_123.pdf", "Fee in Lieu", true},
		{"feeinlieu_99.PDF", "Fee in Lieu", true},
		{"FILA_7.pdf", "Fee in Lieu", true},
		{"Unrecorded_4.pdf", "Unrecorded Parcels", true},
		{"Annex_2020.pdf", "Service and Annexation", true},
		{"random.txt", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			c, ok := m.Match(tt.filename)
			if ok != tt.wantOK || c.Name != tt.want {
				t.Errorf("Match(%q) = (%q, %v), want (%q, %v)", tt.filename, c.Name, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSource(t *testing.T) {
	m, err := LoadCategoryMap(writeMap(t, sampleMap))
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	for _, name := range []string{"FeeInLieu_2.pdf", "FeeInLieu_1.pdf", "random.txt", ".DS_Store"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "archive"), 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := Source(dir, m)
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Matches) != 2 {
		t.Fatalf("got %d matches, want 2: %+v", len(res.Matches), res.Matches)
	}
	// Sorted by filename for deterministic runs.
	if res.Matches[0].Filename != "FeeInLieu_1.pdf" || res.Matches[1].Filename != "FeeInLieu_2.pdf" {
		t.Errorf("matches out of order: %+v", res.Matches)
	}
	if res.Matches[0].Name != "FeeInLieu_1" {
		t.Errorf("Name = %q, want stem", res.Matches[0].Name)
	}
	if res.Matches[0].Category != "Fee in Lieu" {
		t.Errorf("Category = %q", res.Matches[0].Category)
	}

	if len(res.Unmatched) != 1 || res.Unmatched[0] != "random.txt" {
		t.Errorf("Unmatched = %v, want [random.txt]", res.Unmatched)
	}

	stems := res.Stems()
	if !stems["FeeInLieu_1"] || !stems["FeeInLieu_2"] || len(stems) != 2 {
		t.Errorf("Stems() = %v", stems)
	}
}

func TestSourceMissingDir(t *testing.T) {
	m, err := LoadCategoryMap(writeMap(t, sampleMap))
	if err != nil {
		t.Fatal(err)
	}
	_, err = Source(filepath.Join(t.TempDir(), "missing"), m)
	if err == nil {
		t.Fatal("missing source folder should be a configuration error")
	}
}
