// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the configuration and record types shared across
// linksync stages.
package types

import "time"

// UnmatchedPolicy controls what happens to source files that match no
// category in the category map.
type UnmatchedPolicy string

const (
	// UnmatchedSkip drops unmatched files silently.
	UnmatchedSkip UnmatchedPolicy = "skip"

	// UnmatchedReport lists unmatched files in the run summary. This is
	// the default.
	UnmatchedReport UnmatchedPolicy = "report"
)

// Valid reports whether p is a recognized policy value.
func (p UnmatchedPolicy) Valid() bool {
	return p == UnmatchedSkip || p == UnmatchedReport
}

// HTTPConfig holds shared HTTP settings used by stages that call the
// Document Center API.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "linksync/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SyncConfig holds settings for the sync pipeline.
type SyncConfig struct {
	HTTPConfig `yaml:",inline"`

	// SourceDir is the local folder scanned for documents to upload.
	SourceDir string `json:"source_dir" yaml:"source_dir"`

	// OutputDir is the directory for link CSV output.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// CategoryMapPath locates the category map YAML file.
	CategoryMapPath string `json:"category_map" yaml:"category_map"`

	// LedgerPath locates the sqlite sync ledger. Empty disables the ledger.
	LedgerPath string `json:"ledger" yaml:"ledger"`

	// UploadDelay is the delay between consecutive uploads (default 1s).
	UploadDelay time.Duration `json:"upload_delay" yaml:"upload_delay"`

	// Publish uploads documents with status Published instead of Draft.
	Publish bool `json:"publish" yaml:"publish"`

	// Unmatched selects the policy for files matching no category.
	Unmatched UnmatchedPolicy `json:"unmatched" yaml:"unmatched"`
}

// ExportConfig holds settings for link CSV export from the remote store.
type ExportConfig struct {
	HTTPConfig `yaml:",inline"`

	// OutputDir is the directory for link CSV output.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// CategoryMapPath locates the category map YAML file.
	CategoryMapPath string `json:"category_map" yaml:"category_map"`
}

// ReportConfig holds settings for the storage usage report.
type ReportConfig struct {
	HTTPConfig `yaml:",inline"`

	// Folders lists the remote folder names included in the report.
	Folders []string `json:"folders" yaml:"folders"`

	// OutputPath is the report CSV destination.
	OutputPath string `json:"output_path" yaml:"output_path"`
}
