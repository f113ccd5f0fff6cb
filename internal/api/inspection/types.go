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

package inspection

import (
	"context"
	"log/slog"

	inspectionstore "github.com/prevencar/vistoria/internal/inspection"
)

// Facade is the guarded write path and read access for inspections.
type Facade interface {
	Get(ctx context.Context, id string) (*inspectionstore.Inspection, error)
	List(ctx context.Context, filter inspectionstore.Filter) ([]inspectionstore.Inspection, error)
	Save(ctx context.Context, record inspectionstore.Inspection) (*inspectionstore.Inspection, error)
	Delete(ctx context.Context, id string) error
	BulkUpdate(
		ctx context.Context,
		ids []string,
		patch inspectionstore.Patch,
	) ([]inspectionstore.Inspection, error)
}

// Inspection implementation of the inspection API operations.
type Inspection struct {
	// Facade applies the guarded mutations.
	Facade Facade
	logger *slog.Logger
}

// ListParams filters GET /inspections.
type ListParams struct {
	Month         string                        `query:"month"          validate:"omitempty,month_key"`
	Status        inspectionstore.Status        `query:"status"         validate:"omitempty,enum"`
	PaymentStatus inspectionstore.PaymentStatus `query:"payment_status" validate:"omitempty,enum"`
	Inspector     string                        `query:"inspector"`
	Plate         string                        `query:"plate"`
}

// BulkRequest is the body of POST /inspections/bulk.
type BulkRequest struct {
	IDs   []string              `json:"ids"   validate:"required,min=1,dive,required"`
	Patch inspectionstore.Patch `json:"patch"`
}

// BulkResponse reports the records written by a bulk update.
type BulkResponse struct {
	Updated int                          `json:"updated"`
	Items   []inspectionstore.Inspection `json:"items"`
}
