// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package doccenter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/linksync/pkg/types"
)

func testCredentials() Credentials {
	return Credentials{
		APIKey:    "app-key",
		Partition: "42",
		Username:  "gisuser",
		Password:  "hunter2",
		Host:      "cityhall.example.gov",
	}
}

func testClient(t *testing.T, ts *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(testCredentials(), Endpoints{
		Authenticate: ts.URL + "/auth",
		Folders:      ts.URL + "/folders",
		Documents:    ts.URL + "/documents",
	}, types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "linksync/test"})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestCredentialsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Credentials)
		wantErr string
	}{
		{"complete", func(c *Credentials) {}, ""},
		{"missing api key", func(c *Credentials) { c.APIKey = "" }, "api-key"},
		{"missing password and host", func(c *Credentials) { c.Password = ""; c.Host = "" }, "password, host"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := testCredentials()
			tt.mutate(&creds)
			err := creds.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth" {
			t.Errorf("path = %s, want /auth", r.URL.Path)
		}
		if got := r.Header.Get("apikey"); got != "app-key" {
			t.Errorf("apikey header = %q", got)
		}
		if got := r.Header.Get("partition"); got != "42" {
			t.Errorf("partition header = %q", got)
		}
		var req authRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Username != "gisuser@cityhall.example.gov" {
			t.Errorf("Username = %q, want host-qualified name", req.Username)
		}
		json.NewEncoder(w).Encode(authResponse{
			Success: true,
			APIKey:  "session-key",
			UserID:  7,
		})
	}))
	defer ts.Close()

	c := testClient(t, ts)
	session, err := c.Authenticate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if session.UserKey != "session-key" || session.UserID != 7 {
		t.Errorf("session = %+v", session)
	}
}

func TestAuthenticateRejected(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name: "http error status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "bad key", http.StatusUnauthorized)
			},
			wantErr: "HTTP 401",
		},
		{
			name: "success false",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				json.NewEncoder(w).Encode(authResponse{Success: false, Message: "account locked"})
			},
			wantErr: "account locked",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			c := testClient(t, ts)
			_, err := c.Authenticate(context.Background())
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Authenticate() = %v, want error containing %q", err, tt.wantErr)
			}
			if c.Session() != nil {
				t.Error("session should stay nil after failed auth")
			}
		})
	}
}

func TestQueryEncode(t *testing.T) {
	tests := []struct {
		name  string
		query *Query
		want  string
	}{
		{"empty", NewQuery(), "?"},
		{"inlinecount only", NewQuery().AllPages(), "?%24inlinecount=allpages"},
		{
			"filter with inlinecount",
			NewQuery().AllPages().FolderFilter(12),
			"?%24filter=FolderId+eq+12&%24inlinecount=allpages",
		},
		{
			"top skip order",
			NewQuery().Top(5).Skip(10).OrderBy("Name"),
			"?%24top=5&%24skip=10&%24orderby=Name",
		},
		{
			"expand",
			NewQuery().Expand("Links"),
			"?%24expand=Links",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.Encode(); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func intPtr(v int) *int          { return &v }
func boolPtr(v bool) *bool       { return &v }
func strPtr(v string) *string    { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestFolderPageID(t *testing.T) {
	page := &FolderPage{Source: []Folder{
		{ID: intPtr(100), Name: "Fee in Lieu", IsArchived: boolPtr(true)},
		{ID: intPtr(101), Name: "Fee in Lieu", IsArchived: boolPtr(false)},
		{ID: intPtr(102), Name: "Unrecorded Parcels"},
		{Name: "No ID Folder"},
	}}

	tests := []struct {
		name   string
		folder string
		wantID int
		wantOK bool
	}{
		{"skips archived copy", "Fee in Lieu", 101, true},
		{"nil archived flag counts as active", "Unrecorded Parcels", 102, true},
		{"missing id is not a match", "No ID Folder", 0, false},
		{"unknown folder", "Images", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := page.ID(tt.folder)
			if id != tt.wantID || ok != tt.wantOK {
				t.Errorf("ID(%q) = (%d, %v), want (%d, %v)", tt.folder, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestListDocuments(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("$filter"); got != "FolderId eq 12" {
			t.Errorf("$filter = %q", got)
		}
		if got := r.Header.Get("userapikey"); got != "session-key" {
			t.Errorf("userapikey header = %q", got)
		}
		json.NewEncoder(w).Encode(DocumentPage{
			TotalCount: intPtr(2),
			Source: []Document{
				{ID: 1, Name: "FeeInLieu_123", FileSize: floatPtr(120.5), URL: strPtr("https://cms.example/docs/1")},
				{ID: 2, Name: "FeeInLieu_124", FileSize: floatPtr(80.0)},
			},
		})
	}))
	defer ts.Close()

	c := testClient(t, ts)
	c.session = &Session{UserKey: "session-key"}

	page, err := c.ListDocuments(context.Background(), 12, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := page.TotalSize(); got != 200.5 {
		t.Errorf("TotalSize() = %v, want 200.5", got)
	}

	links := page.Links()
	if len(links) != 1 {
		t.Fatalf("Links() = %v, want single entry", links)
	}
	if links["FeeInLieu_123"] != "https://cms.example/docs/1" {
		t.Errorf("link = %q", links["FeeInLieu_123"])
	}
}

func TestUpload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "FeeInLieu_123.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 test"), 0o644); err != nil {
		t.Fatal(err)
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req uploadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Name != "FeeInLieu_123" {
			t.Errorf("Name = %q, want stem without extension", req.Name)
		}
		if req.FileName != "FeeInLieu_123.pdf" {
			t.Errorf("FileName = %q", req.FileName)
		}
		if req.Status != "Draft" {
			t.Errorf("Status = %q, want Draft", req.Status)
		}
		decoded, err := base64.StdEncoding.DecodeString(req.File)
		if err != nil || string(decoded) != "%PDF-1.4 test" {
			t.Errorf("File payload mismatch: %q (%v)", decoded, err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Document{
			ID:   55,
			Name: req.Name,
			URL:  strPtr("https://cms.example/docs/55"),
		})
	}))
	defer ts.Close()

	c := testClient(t, ts)
	doc, err := c.Upload(context.Background(), path, 12, false)
	if err != nil {
		t.Fatal(err)
	}
	if doc.ID != 55 || doc.Link() != "https://cms.example/docs/55" {
		t.Errorf("uploaded doc = %+v", doc)
	}
}

func TestUploadFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer ts.Close()

	c := testClient(t, ts)
	_, err := c.Upload(context.Background(), path, 12, false)
	if err == nil || !strings.Contains(err.Error(), "HTTP 403") {
		t.Fatalf("Upload() error = %v, want HTTP 403", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("error should carry response body: %v", err)
	}
}

func TestUpdateDocument(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/documents/9" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var doc Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			t.Fatal(err)
		}
		if doc.Status == nil || *doc.Status != StatusDraft {
			t.Errorf("Status = %v, want %d", doc.Status, StatusDraft)
		}
		fmt.Fprint(w, `{}`)
	}))
	defer ts.Close()

	c := testClient(t, ts)
	if err := c.UpdateDocument(context.Background(), Document{ID: 9, Name: "doc"}, CommandDraft); err != nil {
		t.Fatal(err)
	}

	if err := c.UpdateDocument(context.Background(), Document{ID: 9}, "publish"); err == nil {
		t.Error("unknown command should error")
	}
}

func TestDeleteDocument(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/documents/9" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		fmt.Fprint(w, `{}`)
	}))
	defer ts.Close()

	c := testClient(t, ts)
	if err := c.DeleteDocument(context.Background(), Document{ID: 9, Name: "doc"}); err != nil {
		t.Fatal(err)
	}
}
