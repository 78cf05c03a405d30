// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report summarizes Document Center storage usage per folder.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/dustin/go-humanize"
)

// FolderUsage is the measured size of one remote folder. The API reports
// file sizes in KB.
type FolderUsage struct {
	Folder string
	SizeKB float64
}

// Row is one line of the rendered report: folder name, humanized size,
// and size as a fraction of the largest folder.
type Row struct {
	Folder  string
	Size    string
	Percent float64
}

// Special row labels appended by Build.
const (
	labelSubtotal = "Subtotal"
	labelTotal    = "Total"
)

// Build renders usage rows plus Subtotal (sum of the listed folders) and
// Total (overall storage, totalKB) lines. Percentages are relative to
// the largest value in the report so the biggest consumer reads 1.0.
func Build(usages []FolderUsage, totalKB float64) []Row {
	var subtotal float64
	for _, u := range usages {
		subtotal += u.SizeKB
	}

	all := make([]FolderUsage, 0, len(usages)+2)
	all = append(all, usages...)
	all = append(all,
		FolderUsage{Folder: labelSubtotal, SizeKB: subtotal},
		FolderUsage{Folder: labelTotal, SizeKB: totalKB},
	)

	max := 0.0
	for _, u := range all {
		if u.SizeKB > max {
			max = u.SizeKB
		}
	}

	rows := make([]Row, len(all))
	for i, u := range all {
		pct := 0.0
		if max > 0 {
			pct = u.SizeKB / max
		}
		rows[i] = Row{
			Folder:  u.Folder,
			Size:    humanize.Bytes(uint64(u.SizeKB * 1000)),
			Percent: pct,
		}
	}
	return rows
}

// SortBySize orders usages largest first, keeping name order for ties.
func SortBySize(usages []FolderUsage) {
	sort.SliceStable(usages, func(i, j int) bool {
		return usages[i].SizeKB > usages[j].SizeKB
	})
}

// Write renders the report as CSV with header folder,size,percent.
func Write(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"folder", "size", "percent"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		record := []string{r.Folder, r.Size, strconv.FormatFloat(r.Percent, 'f', 4, 64)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row for %s: %w", r.Folder, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
