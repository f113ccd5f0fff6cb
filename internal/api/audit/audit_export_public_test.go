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

package audit_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/prevencar/vistoria/internal/api/common"
	auditstore "github.com/prevencar/vistoria/internal/audit"
)

type AuditExportPublicTestSuite struct {
	suite.Suite
}

func (s *AuditExportPublicTestSuite) TestGetAuditExport() {
	tests := []struct {
		name         string
		store        *fakeStore
		batchSize    int
		wantCode     int
		validateFunc func(store *fakeStore, body []byte)
	}{
		{
			name:      "pages through the whole log",
			store:     &fakeStore{listEntries: newEntries(5), listTotal: 5},
			batchSize: 2,
			wantCode:  http.StatusOK,
			validateFunc: func(store *fakeStore, body []byte) {
				s.Equal([]int{0, 2, 4}, store.offsets)

				var resp common.ListResponse[auditstore.Entry]
				s.Require().NoError(json.Unmarshal(body, &resp))
				s.Len(resp.Items, 5)
				s.Equal(5, resp.TotalItems)
				s.Equal("01J005", resp.Items[0].ID)
			},
		},
		{
			name:     "empty log exports an empty list",
			store:    &fakeStore{},
			wantCode: http.StatusOK,
			validateFunc: func(_ *fakeStore, body []byte) {
				s.JSONEq(`{"items":[],"total_items":0}`, string(body))
			},
		},
		{
			name:     "store failure is an internal error",
			store:    &fakeStore{listErr: errors.New("kv unavailable")},
			wantCode: http.StatusInternalServerError,
			validateFunc: func(_ *fakeStore, body []byte) {
				s.JSONEq(`{"error":"failed to export audit entries"}`, string(body))
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := serve(tt.store, tt.batchSize, "/audit/export")

			s.Equal(tt.wantCode, rec.Code)
			tt.validateFunc(tt.store, rec.Body.Bytes())
		})
	}
}

func TestAuditExportPublicTestSuite(t *testing.T) {
	suite.Run(t, new(AuditExportPublicTestSuite))
}
