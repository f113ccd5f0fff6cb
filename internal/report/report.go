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

// Package report builds the monthly financial summary of inspections.
package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/prevencar/vistoria/internal/closure"
	"github.com/prevencar/vistoria/internal/inspection"
)

// Bucket aggregates the records sharing one grouping value.
type Bucket struct {
	Name  string          `json:"name"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// Monthly is the summary of one billing month.
type Monthly struct {
	Month        string          `json:"month"`
	Closed       bool            `json:"closed"`
	Count        int             `json:"count"`
	Total        decimal.Decimal `json:"total"`
	Paid         decimal.Decimal `json:"paid"`
	Pending      decimal.Decimal `json:"pending"`
	Incomplete   int             `json:"incomplete"`
	ByMethod     []Bucket        `json:"byMethod"`
	ByInspector  []Bucket        `json:"byInspector"`
	ByIndication []Bucket        `json:"byIndication"`
}

// InspectionLister returns every stored inspection.
type InspectionLister interface {
	List(ctx context.Context) ([]inspection.Inspection, error)
}

// MonthRegistry reports closed months.
type MonthRegistry interface {
	IsClosed(ctx context.Context, month string) (bool, error)
}

// Reporter builds summaries.
type Reporter struct {
	inspections InspectionLister
	registry    MonthRegistry
}

// New creates a Reporter.
func New(
	inspections InspectionLister,
	registry MonthRegistry,
) *Reporter {
	return &Reporter{
		inspections: inspections,
		registry:    registry,
	}
}

// Monthly summarizes every inspection billed to month.
func (r *Reporter) Monthly(
	ctx context.Context,
	month string,
) (*Monthly, error) {
	records, err := r.inspections.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inspections: %w", err)
	}

	closed, err := r.registry.IsClosed(ctx, month)
	if err != nil {
		return nil, err
	}

	m := Summarize(month, inspection.InMonth(records, month))
	m.Closed = closed

	return m, nil
}

// Summarize aggregates records, which must all belong to month.
func Summarize(
	month string,
	records []inspection.Inspection,
) *Monthly {
	m := &Monthly{
		Month:   month,
		Total:   decimal.Zero,
		Paid:    decimal.Zero,
		Pending: decimal.Zero,
	}

	byMethod := map[string]*Bucket{}
	byInspector := map[string]*Bucket{}
	byIndication := map[string]*Bucket{}

	for _, rec := range records {
		m.Count++
		m.Total = m.Total.Add(rec.TotalValue)

		if rec.PaymentStatus == inspection.PaymentPaid {
			m.Paid = m.Paid.Add(rec.TotalValue)
		} else {
			m.Pending = m.Pending.Add(rec.TotalValue)
		}
		if rec.RecordStatus != inspection.RecordComplete {
			m.Incomplete++
		}

		method := string(rec.PaymentMethod)
		if method == "" {
			method = string(inspection.MethodToBePaid)
		}
		add(byMethod, method, rec.TotalValue)
		add(byInspector, rec.Inspector, rec.TotalValue)
		if rec.IndicationName != "" {
			add(byIndication, rec.IndicationName, rec.TotalValue)
		}
	}

	m.ByMethod = flatten(byMethod)
	m.ByInspector = flatten(byInspector)
	m.ByIndication = flatten(byIndication)

	return m
}

var _ InspectionLister = (inspection.Store)(nil)

var _ MonthRegistry = (*closure.Registry)(nil)

func add(
	buckets map[string]*Bucket,
	name string,
	value decimal.Decimal,
) {
	b, ok := buckets[name]
	if !ok {
		b = &Bucket{Name: name, Total: decimal.Zero}
		buckets[name] = b
	}

	b.Count++
	b.Total = b.Total.Add(value)
}

// flatten orders buckets by total descending, then name.
func flatten(
	buckets map[string]*Bucket,
) []Bucket {
	out := make([]Bucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}

	sort.Slice(out, func(a, b int) bool {
		if c := out[a].Total.Cmp(out[b].Total); c != 0 {
			return c > 0
		}
		return out[a].Name < out[b].Name
	})

	return out
}
