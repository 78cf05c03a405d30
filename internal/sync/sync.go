// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sync runs the document pipeline: diff the local scan against
// the remote folder, upload what is missing, and collect link records
// for CSV export. Individual upload failures do not stop the run.
package sync

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/linksync/internal/doccenter"
	"github.com/pdiddy/linksync/internal/ledger"
	"github.com/pdiddy/linksync/internal/scan"
	"github.com/pdiddy/linksync/pkg/types"
)

// Uploader is the slice of the Document Center client the pipeline
// needs: list what a folder holds and push one file into it.
type Uploader interface {
	ListDocuments(ctx context.Context, folderID int, q *doccenter.Query) (*doccenter.DocumentPage, error)
	Upload(ctx context.Context, path string, folderID int, publish bool) (*doccenter.Document, error)
}

// Options control one pipeline run against a single remote folder.
type Options struct {
	// Folder is the remote folder name, used for ledger run records.
	Folder string

	// FolderID is the resolved remote folder id.
	FolderID int

	// Publish uploads documents as Published instead of Draft.
	Publish bool

	// Delay is the pause between consecutive uploads.
	Delay time.Duration

	// Unmatched selects how files matching no category are surfaced.
	Unmatched types.UnmatchedPolicy
}

// Result summarizes one pipeline run. Records holds every document that
// is synced after the run — fresh uploads and already-present skips
// alike — so exporting it twice over an unchanged folder yields an
// identical CSV. Failures lists documents that could not be uploaded;
// those never appear in Records.
type Result struct {
	Uploaded  int
	Skipped   int
	Failed    int
	Records   []types.LinkRecord
	Failures  []types.Failure
	Unmatched []string
}

// Total returns the number of matched documents processed.
func (r Result) Total() int {
	return r.Uploaded + r.Skipped + r.Failed
}

// HasFailures reports whether any uploads failed.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// Run executes the pipeline for the matches belonging to one remote
// folder. led may be nil to run without a ledger. Per-item status lines
// and the closing summary go to w.
func Run(ctx context.Context, client Uploader, matches []scan.Match, unmatched []string, led *ledger.Store, opts Options, w io.Writer) (Result, error) {
	result := Result{Unmatched: unmatched}

	remote, err := client.ListDocuments(ctx, opts.FolderID, doccenter.NewQuery().AllPages())
	if err != nil {
		return result, fmt.Errorf("listing remote folder %q: %w", opts.Folder, err)
	}
	remoteDocs := make(map[string]doccenter.Document, len(remote.Source))
	for _, doc := range remote.Source {
		remoteDocs[doc.Name] = doc
	}

	ledgerRecs := map[string]types.LinkRecord{}
	if led != nil {
		recs, err := led.Links(ctx, "")
		if err != nil {
			return result, fmt.Errorf("reading ledger: %w", err)
		}
		for _, rec := range recs {
			stem := strings.TrimSuffix(rec.Filename, filepath.Ext(rec.Filename))
			ledgerRecs[stem] = rec
		}
	}

	uploads := 0
	for _, m := range matches {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		// Already on the Document Center: keep the existing link.
		if doc, ok := remoteDocs[m.Name]; ok {
			fmt.Fprintf(w, "skipped:  %s (already on Document Center)\n", m.Filename)
			result.Skipped++
			result.Records = append(result.Records, types.LinkRecord{
				Category:  m.Category,
				Filename:  m.Filename,
				RemoteID:  strconv.Itoa(doc.ID),
				RemoteURL: doc.Link(),
			})
			continue
		}

		// Recorded by a previous run but absent from the page listing.
		if rec, ok := ledgerRecs[m.Name]; ok {
			fmt.Fprintf(w, "skipped:  %s (in ledger)\n", m.Filename)
			result.Skipped++
			rec.Category = m.Category
			result.Records = append(result.Records, rec)
			continue
		}

		if uploads > 0 && opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(opts.Delay):
			}
		}
		uploads++

		fmt.Fprintf(w, "uploading: %s\n", m.Filename)
		doc, err := client.Upload(ctx, m.Path, opts.FolderID, opts.Publish)
		if err != nil {
			fmt.Fprintf(w, "failed:   %s (%v)\n", m.Filename, err)
			result.Failed++
			result.Failures = append(result.Failures, types.Failure{
				Filename: m.Filename,
				Category: m.Category,
				Reason:   err.Error(),
			})
			continue
		}

		rec := types.LinkRecord{
			Category:   m.Category,
			Filename:   m.Filename,
			RemoteID:   strconv.Itoa(doc.ID),
			RemoteURL:  doc.Link(),
			UploadedAt: time.Now().UTC(),
		}
		result.Uploaded++
		result.Records = append(result.Records, rec)

		if led != nil {
			if err := led.Record(ctx, opts.Folder, rec); err != nil {
				fmt.Fprintf(w, "warning: ledger write for %s failed: %v\n", m.Filename, err)
			}
		}
	}

	if led != nil {
		if err := led.RecordRun(ctx, opts.Folder, result.Uploaded, result.Skipped, result.Failed); err != nil {
			fmt.Fprintf(w, "warning: ledger run record failed: %v\n", err)
		}
	}

	fmt.Fprintf(w, "\nSync summary: %d uploaded, %d skipped, %d failed (total: %d)\n",
		result.Uploaded, result.Skipped, result.Failed, result.Total())
	if opts.Unmatched == types.UnmatchedReport && len(result.Unmatched) > 0 {
		fmt.Fprintf(w, "Unmatched files (no category): %d\n", len(result.Unmatched))
		for _, name := range result.Unmatched {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	for _, f := range result.Failures {
		fmt.Fprintf(w, "failure: %s: %s\n", f.Filename, f.Reason)
	}

	return result, nil
}
