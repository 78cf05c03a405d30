// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/linksync/pkg/types"
)

// Parcel is one feature row from a GIS layer export. Only the columns
// needed for the link join are read; the export may carry many more.
type Parcel struct {
	// ObjectID is the feature object id (OID_ column).
	ObjectID int64

	// Instrument is the recorded instrument number (INSTRUMENT column),
	// matching the document name on the Document Center.
	Instrument string

	// GlobalID is the feature global id (GlobalID column).
	GlobalID string
}

// Column names expected in the GIS export header.
const (
	colObjectID   = "OID_"
	colInstrument = "INSTRUMENT"
	colGlobalID   = "GlobalID"
)

// ReadParcels parses a GIS layer CSV export. The header row locates the
// three required columns; a missing column is a configuration error.
func ReadParcels(r io.Reader) ([]Parcel, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading parcel header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colObjectID, colInstrument, colGlobalID} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("parcel export missing column %q", required)
		}
	}

	var parcels []Parcel
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("reading parcel row %d: %w", line, err)
		}

		oid, err := strconv.ParseInt(strings.TrimSpace(row[cols[colObjectID]]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parcel row %d: bad object id %q", line, row[cols[colObjectID]])
		}
		parcels = append(parcels, Parcel{
			ObjectID:   oid,
			Instrument: strings.TrimSpace(row[cols[colInstrument]]),
			GlobalID:   strings.TrimSpace(row[cols[colGlobalID]]),
		})
	}
	return parcels, nil
}

// ReadParcelsFile reads a GIS layer CSV export from disk.
func ReadParcelsFile(path string) ([]Parcel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening parcel export %s: %w", path, err)
	}
	defer f.Close()
	return ReadParcels(f)
}

// MergeResult pairs the joined links with the parcels that found no
// matching document, so misses are reported rather than dropped.
type MergeResult struct {
	Links     []types.ParcelLink
	Unmatched []Parcel
}

// MergeParcelLinks joins parcel instrument numbers against the remote
// name→hyperlink map. Output is sorted by object id for stable CSVs.
func MergeParcelLinks(parcels []Parcel, links map[string]string) MergeResult {
	var res MergeResult
	for _, p := range parcels {
		url, ok := links[p.Instrument]
		if !ok {
			res.Unmatched = append(res.Unmatched, p)
			continue
		}
		res.Links = append(res.Links, types.ParcelLink{
			ObjectID:   p.ObjectID,
			Instrument: p.Instrument,
			GlobalID:   p.GlobalID,
			WebLink:    url,
		})
	}
	sort.Slice(res.Links, func(i, j int) bool {
		return res.Links[i].ObjectID < res.Links[j].ObjectID
	})
	sort.Slice(res.Unmatched, func(i, j int) bool {
		return res.Unmatched[i].ObjectID < res.Unmatched[j].ObjectID
	})
	return res
}
