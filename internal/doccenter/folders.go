// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package doccenter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Folder is one folder record from the Document Center. Pointer fields
// distinguish absent values from zero values in the API's sparse
// responses.
type Folder struct {
	ID              *int    `json:"Id"`
	Description     *string `json:"Description"`
	Status          *int    `json:"Status"`
	Path            *string `json:"Path"`
	Name            string  `json:"Name"`
	ParentID        *int    `json:"ParentID"`
	CreatedDate     *string `json:"CreatedDate"`
	IsArchived      *bool   `json:"IsArchived"`
	ArchivedFolder  *int    `json:"ArchivedFolderID"`
	TotalFolderSize *int    `json:"TotalFolderSize"`
	ChildrenExist   *bool   `json:"ChildrenExist"`
	URL             *string `json:"URL"`
	ItemCount       *int    `json:"ItemCount"`
}

// FolderPage is the paginated folder listing envelope.
type FolderPage struct {
	CurrentPage     *int     `json:"CurrentPage"`
	PageSize        *int     `json:"PageSize"`
	TotalCount      *int     `json:"TotalCount"`
	TotalPages      *int     `json:"TotalPages"`
	Source          []Folder `json:"Source"`
	SortBy          *string  `json:"SortBy"`
	Filter          *string  `json:"Filter"`
	HasPreviousPage *bool    `json:"HasPreviousPage"`
	HasNextPage     *bool    `json:"HasNextPage"`
}

// ListFolders queries the folder endpoint with the given parameters.
func (c *Client) ListFolders(ctx context.Context, q *Query) (*FolderPage, error) {
	resp, err := c.do(ctx, http.MethodGet, q.URL(c.endpoints.Folders), nil)
	if err != nil {
		return nil, fmt.Errorf("folder query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("folder query", resp)
	}

	var page FolderPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("parsing folder response: %w", err)
	}
	return &page, nil
}

// ID returns the id of the active (non-archived) folder named name.
// Archived folders keep a separate id for their archived copy, so the
// archived flag must be checked, not just the name.
func (p *FolderPage) ID(name string) (int, bool) {
	for _, folder := range p.Source {
		if folder.Name != name || folder.ID == nil {
			continue
		}
		if folder.IsArchived != nil && *folder.IsArchived {
			continue
		}
		return *folder.ID, true
	}
	return 0, false
}

// Find returns every folder record named name, archived copies included.
func (p *FolderPage) Find(name string) []Folder {
	var out []Folder
	for _, folder := range p.Source {
		if folder.Name == name {
			out = append(out, folder)
		}
	}
	return out
}
