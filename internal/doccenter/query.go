// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package doccenter

import (
	"fmt"
	"net/url"
	"strings"
)

// Query holds the OData-style search parameters the Document Center
// accepts. Parameter names are sent with the dollar sign pre-encoded
// (%24top, %24filter, ...); values are query-escaped, so a filter like
// "FolderId eq 12" travels as "FolderId+eq+12".
type Query struct {
	top         int
	skip        int
	filter      string
	orderBy     string
	inlineCount string
	expand      string
}

// NewQuery returns an empty query. AllPages is the usual starting point.
func NewQuery() *Query {
	return &Query{}
}

// Top limits the result to the first n records.
func (q *Query) Top(n int) *Query {
	q.top = n
	return q
}

// Skip drops the first n records from the result.
func (q *Query) Skip(n int) *Query {
	q.skip = n
	return q
}

// Filter sets the predicate a record must satisfy, e.g. "FolderId eq 12".
func (q *Query) Filter(expr string) *Query {
	q.filter = expr
	return q
}

// FolderFilter restricts the result to documents in the given folder.
func (q *Query) FolderFilter(folderID int) *Query {
	return q.Filter(fmt.Sprintf("FolderId eq %d", folderID))
}

// OrderBy sets the sort expression.
func (q *Query) OrderBy(expr string) *Query {
	q.orderBy = expr
	return q
}

// InlineCount set to "allpages" makes the service include pagination
// totals in the response envelope.
func (q *Query) InlineCount(v string) *Query {
	q.inlineCount = v
	return q
}

// AllPages requests pagination totals for the full result set.
func (q *Query) AllPages() *Query {
	return q.InlineCount("allpages")
}

// Expand includes additional detail categories ("Permissions", "Images",
// "Links") in the response.
func (q *Query) Expand(v string) *Query {
	q.expand = v
	return q
}

// Encode renders the query string, beginning with "?". An empty query
// encodes to "?".
func (q *Query) Encode() string {
	var args []string
	if q.top > 0 {
		args = append(args, fmt.Sprintf("%%24top=%d", q.top))
	}
	if q.skip > 0 {
		args = append(args, fmt.Sprintf("%%24skip=%d", q.skip))
	}
	if q.filter != "" {
		args = append(args, "%24filter="+url.QueryEscape(q.filter))
	}
	if q.orderBy != "" {
		args = append(args, "%24orderby="+url.QueryEscape(q.orderBy))
	}
	if q.inlineCount != "" {
		args = append(args, "%24inlinecount="+url.QueryEscape(q.inlineCount))
	}
	if q.expand != "" {
		args = append(args, "%24expand="+url.QueryEscape(q.expand))
	}
	return "?" + strings.Join(args, "&")
}

// URL appends the encoded query to base.
func (q *Query) URL(base string) string {
	return base + q.Encode()
}
