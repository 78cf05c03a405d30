// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package doccenter is the HTTP client for the CMS Document Center API:
// session authentication, folder and document queries, and document
// upload/update/delete.
package doccenter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/linksync/internal/httputil"
	"github.com/pdiddy/linksync/pkg/types"
)

// Credentials holds the account identity for the Document Center API.
// The service authenticates with an application API key and partition
// number plus a user name and password.
type Credentials struct {
	APIKey    string
	Partition string
	Username  string
	Password  string
	Host      string
}

// Validate reports every missing credential field at once so the
// operator can fix the secrets directory in one pass.
func (c Credentials) Validate() error {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, "api-key")
	}
	if c.Partition == "" {
		missing = append(missing, "partition")
	}
	if c.Username == "" {
		missing = append(missing, "username")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if c.Host == "" {
		missing = append(missing, "host")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing credentials: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Endpoints holds the API URLs for the three Document Center surfaces.
type Endpoints struct {
	// Authenticate is the session-creation endpoint.
	Authenticate string

	// Folders is the folder listing endpoint.
	Folders string

	// Documents is the document listing/upload endpoint. Update and
	// delete append /{id}.
	Documents string
}

// Validate reports missing endpoint URLs.
func (e Endpoints) Validate() error {
	var missing []string
	if e.Authenticate == "" {
		missing = append(missing, "authenticate")
	}
	if e.Folders == "" {
		missing = append(missing, "folders")
	}
	if e.Documents == "" {
		missing = append(missing, "documents")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing endpoint URLs: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Header names the Document Center expects on every request.
const (
	headerAPIKey     = "apikey"
	headerPartition  = "partition"
	headerUserAPIKey = "userapikey"
)

// Session holds the per-user key issued by a successful authentication.
type Session struct {
	// UserKey is sent as the userapikey header on document requests.
	UserKey string

	// UserID identifies the authenticated account.
	UserID int
}

// Client talks to the Document Center API. Authenticate must be called
// before any folder or document operation.
type Client struct {
	httpClient *http.Client
	creds      Credentials
	endpoints  Endpoints
	userAgent  string
	maxRetries int
	session    *Session
}

// NewClient validates the credentials and endpoints and returns a client
// using the supplied HTTP settings.
func NewClient(creds Credentials, endpoints Endpoints, cfg types.HTTPConfig) (*Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	if err := endpoints.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		creds:      creds,
		endpoints:  endpoints,
		userAgent:  cfg.UserAgent,
	}, nil
}

// Session returns the current session, or nil before Authenticate.
func (c *Client) Session() *Session {
	return c.session
}

// StatusError reports a non-success HTTP status from the API, carrying
// enough of the body to diagnose the rejection.
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Status, e.Body)
}

const maxErrBody = 512

// statusError drains up to maxErrBody bytes of resp for the error message.
func statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
	return &StatusError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

// do sends an API request through the retry helper. A non-nil body is
// rebuilt on every retry attempt. Headers carry the application key and
// partition, plus the user session key once authenticated.
func (c *Client) do(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	build := func(ctx context.Context) (*http.Request, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}
		req.Header.Set(headerAPIKey, c.creds.APIKey)
		req.Header.Set(headerPartition, c.creds.Partition)
		if c.session != nil {
			req.Header.Set(headerUserAPIKey, c.session.UserKey)
		}
		return req, nil
	}
	return httputil.DoWithRetry(ctx, c.httpClient, build, c.maxRetries)
}
