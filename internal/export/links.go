// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes link records to CSV for downstream use in the
// GIS layer link fields.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdiddy/linksync/pkg/types"
)

// linkHeader is the stable column order for link CSVs. Downstream field
// calculators key on these names; do not reorder.
var linkHeader = []string{"category", "filename", "remote_id", "remote_url"}

// WriteLinks writes one row per record in the given order. The csv
// package quotes fields as needed, so filenames containing commas or
// quotes stay well-formed.
func WriteLinks(w io.Writer, records []types.LinkRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(linkHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range records {
		row := []string{r.Category, r.Filename, r.RemoteID, r.RemoteURL}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row for %s: %w", r.Filename, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLinksFile writes the link CSV to path, creating parent
// directories as needed.
func WriteLinksFile(path string, records []types.LinkRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteLinks(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WebLink is one name→hyperlink row exported from a remote folder
// listing, used when recording links without uploading.
type WebLink struct {
	Field string
	URL   string
}

// WriteWebLinks writes field,web_link rows sorted by the caller.
func WriteWebLinks(w io.Writer, links []WebLink) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"field", "web_link"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, l := range links {
		if err := cw.Write([]string{l.Field, l.URL}); err != nil {
			return fmt.Errorf("writing row for %s: %w", l.Field, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteParcelLinks writes the GIS merge output: one row per parcel
// feature whose instrument number matched a remote document.
func WriteParcelLinks(w io.Writer, links []types.ParcelLink) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"object_id", "instrument", "global_id", "web_link"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, l := range links {
		row := []string{strconv.FormatInt(l.ObjectID, 10), l.Instrument, l.GlobalID, l.WebLink}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row for %s: %w", l.Instrument, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
