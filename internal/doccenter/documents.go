// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package doccenter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Document status codes used by the service.
const (
	StatusDraft     = 10
	StatusPublished = 30
)

// Document is one document record from the Document Center.
type Document struct {
	ID            int      `json:"Id"`
	Name          string   `json:"Name"`
	Description   *string  `json:"Description,omitempty"`
	Status        *int     `json:"Status,omitempty"`
	FileSize      *float64 `json:"FileSize,omitempty"`
	CreatedDate   *string  `json:"CreatedDate,omitempty"`
	FileType      *string  `json:"FileType,omitempty"`
	URL           *string  `json:"URL,omitempty"`
	FolderID      *int     `json:"FolderId,omitempty"`
	FileName      *string  `json:"FileName,omitempty"`
	IsArchived    *bool    `json:"IsArchived,omitempty"`
	IsVisible     *bool    `json:"IsVisible,omitempty"`
	ShowInRSSFeed *bool    `json:"ShowInRssFeed,omitempty"`
}

// Link returns the document URL, or "" when the service omitted it.
func (d Document) Link() string {
	if d.URL == nil {
		return ""
	}
	return *d.URL
}

// DocumentPage is the paginated document listing envelope.
type DocumentPage struct {
	CurrentPage     *int       `json:"CurrentPage"`
	PageSize        *int       `json:"PageSize"`
	TotalCount      *int       `json:"TotalCount"`
	TotalPages      *int       `json:"TotalPages"`
	Source          []Document `json:"Source"`
	SortBy          *string    `json:"SortBy"`
	Filter          *string    `json:"Filter"`
	HasPreviousPage *bool      `json:"HasPreviousPage"`
	HasNextPage     *bool      `json:"HasNextPage"`
}

// TotalSize sums the file sizes of all documents on the page, in KB.
func (p *DocumentPage) TotalSize() float64 {
	var size float64
	for _, doc := range p.Source {
		if doc.FileSize != nil {
			size += *doc.FileSize
		}
	}
	return size
}

// Links maps document name to hyperlink for every document on the page
// that carries a URL.
func (p *DocumentPage) Links() map[string]string {
	links := make(map[string]string)
	for _, doc := range p.Source {
		if url := doc.Link(); url != "" {
			links[doc.Name] = url
		}
	}
	return links
}

// ListDocuments queries the document endpoint restricted to folderID.
// Extra parameters from q (ordering, pagination) are preserved.
func (c *Client) ListDocuments(ctx context.Context, folderID int, q *Query) (*DocumentPage, error) {
	if q == nil {
		q = NewQuery().AllPages()
	}
	return c.listDocuments(ctx, q.FolderFilter(folderID))
}

// ListAllDocuments queries the document endpoint without a folder
// filter, covering the whole Document Center. The storage report uses
// this for the grand total.
func (c *Client) ListAllDocuments(ctx context.Context, q *Query) (*DocumentPage, error) {
	if q == nil {
		q = NewQuery().AllPages()
	}
	return c.listDocuments(ctx, q)
}

func (c *Client) listDocuments(ctx context.Context, q *Query) (*DocumentPage, error) {
	resp, err := c.do(ctx, http.MethodGet, q.URL(c.endpoints.Documents), nil)
	if err != nil {
		return nil, fmt.Errorf("document query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("document query", resp)
	}

	var page DocumentPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("parsing document response: %w", err)
	}
	return &page, nil
}

// uploadRequest is the document-creation body. The file travels inline,
// base64 encoded. ConvertToPdf and IsVisible are string-typed booleans
// on the wire.
type uploadRequest struct {
	Name         string `json:"Name"`
	FileName     string `json:"FileName"`
	File         string `json:"File"`
	FolderID     int    `json:"FolderId"`
	Status       string `json:"Status"`
	ConvertToPDF string `json:"ConvertToPdf"`
	IsVisible    string `json:"IsVisible"`
}

// Upload pushes the local file at path into folderID and returns the
// created document record, which carries the assigned id and hyperlink.
// The document name is the file stem; publish controls Draft vs
// Published status.
func (c *Client) Upload(ctx context.Context, path string, folderID int, publish bool) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	status := "Draft"
	if publish {
		status = "Published"
	}

	filename := filepath.Base(path)
	body, err := json.Marshal(uploadRequest{
		Name:         strings.TrimSuffix(filename, filepath.Ext(filename)),
		FileName:     filename,
		File:         base64.StdEncoding.EncodeToString(data),
		FolderID:     folderID,
		Status:       status,
		ConvertToPDF: "false",
		IsVisible:    "false",
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling upload request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, c.endpoints.Documents, body)
	if err != nil {
		return nil, fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, statusError("upload "+filename, resp)
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing upload response: %w", err)
	}
	return &doc, nil
}

// Update commands accepted by UpdateDocument.
const (
	CommandDraft   = "draft"
	CommandArchive = "archive"
)

// UpdateDocument sets the document to Draft status or marks it archived.
// Published documents cannot be deleted directly; they must be set to
// draft first.
func (c *Client) UpdateDocument(ctx context.Context, doc Document, command string) error {
	switch command {
	case CommandDraft:
		status := StatusDraft
		doc.Status = &status
	case CommandArchive:
		archived := true
		doc.IsArchived = &archived
	default:
		return fmt.Errorf("unknown update command %q", command)
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%d", c.endpoints.Documents, doc.ID)
	resp, err := c.do(ctx, http.MethodPut, endpoint, body)
	if err != nil {
		return fmt.Errorf("update request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(fmt.Sprintf("update %s", doc.Name), resp)
	}
	return nil
}

// DeleteDocument removes the document from the Document Center.
func (c *Client) DeleteDocument(ctx context.Context, doc Document) error {
	endpoint := fmt.Sprintf("%s/%d", c.endpoints.Documents, doc.ID)
	resp, err := c.do(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(fmt.Sprintf("delete %s", doc.Name), resp)
	}
	return nil
}
