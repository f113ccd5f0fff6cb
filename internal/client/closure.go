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

	closureapi "github.com/prevencar/vistoria/internal/api/closure"
	"github.com/prevencar/vistoria/internal/api/common"
	"github.com/prevencar/vistoria/internal/closure"
)

// ListClosures lists every closed month.
func (c *Client) ListClosures(
	ctx context.Context,
) (*common.ListResponse[closure.Closure], error) {
	var out common.ListResponse[closure.Closure]
	if err := c.do(ctx, http.MethodGet, "/closures", nil, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// CloseMonth closes a billing month.
func (c *Client) CloseMonth(
	ctx context.Context,
	month string,
) (*closure.Closure, error) {
	var out closure.Closure
	req := closureapi.CloseRequest{Month: month}
	if err := c.do(ctx, http.MethodPost, "/closures", nil, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
