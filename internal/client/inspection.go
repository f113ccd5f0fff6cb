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

	"github.com/prevencar/vistoria/internal/api/common"
	inspectionapi "github.com/prevencar/vistoria/internal/api/inspection"
	"github.com/prevencar/vistoria/internal/inspection"
)

// ListInspections lists inspections matching filter.
func (c *Client) ListInspections(
	ctx context.Context,
	filter InspectionFilter,
) (*common.ListResponse[inspection.Inspection], error) {
	query := url.Values{}
	for key, value := range map[string]string{
		"month":          filter.Month,
		"status":         filter.Status,
		"payment_status": filter.PaymentStatus,
		"inspector":      filter.Inspector,
		"plate":          filter.Plate,
	} {
		if value != "" {
			query.Set(key, value)
		}
	}

	var out common.ListResponse[inspection.Inspection]
	if err := c.do(ctx, http.MethodGet, "/inspections", query, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// GetInspection retrieves one inspection by id.
func (c *Client) GetInspection(
	ctx context.Context,
	id string,
) (*inspection.Inspection, error) {
	var out inspection.Inspection
	path := "/inspections/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// SaveInspection creates or replaces an inspection.
func (c *Client) SaveInspection(
	ctx context.Context,
	record inspection.Inspection,
) (*inspection.Inspection, error) {
	var out inspection.Inspection
	if err := c.do(ctx, http.MethodPut, "/inspections", nil, record, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// DeleteInspection removes an inspection.
func (c *Client) DeleteInspection(
	ctx context.Context,
	id string,
) error {
	return c.do(ctx, http.MethodDelete, "/inspections/"+url.PathEscape(id), nil, nil, nil)
}

// BulkUpdateInspections applies patch to every id atomically.
func (c *Client) BulkUpdateInspections(
	ctx context.Context,
	ids []string,
	patch inspection.Patch,
) (*inspectionapi.BulkResponse, error) {
	var out inspectionapi.BulkResponse
	req := inspectionapi.BulkRequest{IDs: ids, Patch: patch}
	if err := c.do(ctx, http.MethodPost, "/inspections/bulk", nil, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
