// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/prevencar/vistoria/internal/api/common"
	"github.com/prevencar/vistoria/internal/audit"
)

// ListAuditLogs lists a page of audit entries, newest first. Zero values
// leave the server defaults in place.
func (c *Client) ListAuditLogs(
	ctx context.Context,
	limit int,
	offset int,
) (*common.ListResponse[audit.Entry], error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}

	var out common.ListResponse[audit.Entry]
	if err := c.do(ctx, http.MethodGet, "/audit", query, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// GetAuditLog retrieves one audit entry by id.
func (c *Client) GetAuditLog(
	ctx context.Context,
	id string,
) (*audit.Entry, error) {
	var out audit.Entry
	if err := c.do(ctx, http.MethodGet, "/audit/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ExportAuditLogs retrieves every audit entry.
func (c *Client) ExportAuditLogs(
	ctx context.Context,
) (*common.ListResponse[audit.Entry], error) {
	var out common.ListResponse[audit.Entry]
	if err := c.do(ctx, http.MethodGet, "/audit/export", nil, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
