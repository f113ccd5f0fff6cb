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

package cli

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/prevencar/vistoria/internal/api/health"
	inspectionapi "github.com/prevencar/vistoria/internal/api/inspection"
	"github.com/prevencar/vistoria/internal/audit"
	"github.com/prevencar/vistoria/internal/closure"
	"github.com/prevencar/vistoria/internal/inspection"
	"github.com/prevencar/vistoria/internal/report"
)

var inspectionHeaders = []string{
	"ID", "DATE", "PLATE", "MODEL", "CLIENT", "INSPECTOR",
	"TOTAL", "METHOD", "RECORD", "PAYMENT", "STATUS", "MONTH",
}

func inspectionRow(
	i inspection.Inspection,
) []string {
	return []string{
		i.ID,
		i.Date,
		i.LicensePlate,
		i.VehicleModel,
		i.Client.Name,
		i.Inspector,
		FormatMoney(i.TotalValue),
		string(i.PaymentMethod),
		string(i.RecordStatus),
		string(i.PaymentStatus),
		string(i.Status),
		i.Month,
	}
}

// DisplayInspections prints a table of inspections with a total line.
func DisplayInspections(
	items []inspection.Inspection,
	total int,
) {
	fmt.Println()
	PrintKV("Inspections", strconv.Itoa(total))

	if len(items) == 0 {
		fmt.Println(DimStyle.Render("  No inspections found."))
		return
	}

	rows := make([][]string, 0, len(items))
	for _, i := range items {
		rows = append(rows, inspectionRow(i))
	}

	PrintCompactTable([]Section{{Headers: inspectionHeaders, Rows: rows}})
}

// DisplayInspection prints one inspection in key-value form. The client
// CPF is masked.
func DisplayInspection(
	i *inspection.Inspection,
) {
	fmt.Println()
	PrintKV("ID", i.ID, "Date", i.Date, "Month", i.Month)
	PrintKV("Plate", i.LicensePlate, "Model", i.VehicleModel)
	PrintKV("Client", i.Client.Name, "CPF", MaskCPF(i.Client.CPF), "Phone", i.Client.Phone)
	PrintKV("Inspector", i.Inspector, "Services", FormatList(i.SelectedServices))
	if i.IndicationName != "" {
		PrintKV("Indication", i.IndicationName)
	}
	PrintKV("Total", FormatMoney(i.TotalValue), "Method", string(i.PaymentMethod))
	PrintKV(
		"Record", string(i.RecordStatus),
		"Payment", string(i.PaymentStatus),
		"Status", string(i.Status),
	)
	if i.NFe != "" || i.PaymentDate != "" {
		PrintKV("NFe", i.NFe, "Paid On", i.PaymentDate)
	}
}

// DisplayBulkResult prints the outcome of a bulk update.
func DisplayBulkResult(
	resp *inspectionapi.BulkResponse,
) {
	fmt.Println()
	PrintKV("Updated", strconv.Itoa(resp.Updated))

	if len(resp.Items) == 0 {
		return
	}

	rows := make([][]string, 0, len(resp.Items))
	for _, i := range resp.Items {
		rows = append(rows, inspectionRow(i))
	}

	PrintCompactTable([]Section{{Headers: inspectionHeaders, Rows: rows}})
}

// DisplayClosures prints the monthly closure history.
func DisplayClosures(
	items []closure.Closure,
) {
	if len(items) == 0 {
		fmt.Println()
		fmt.Println(DimStyle.Render("  No closed months."))
		return
	}

	rows := make([][]string, 0, len(items))
	for _, c := range items {
		rows = append(rows, []string{
			c.Month,
			strconv.FormatBool(c.Closed),
			c.Date,
			c.ClosedBy,
			FormatMoney(c.Total),
		})
	}

	PrintStyledTable([]Section{{
		Title:   "Closures",
		Headers: []string{"MONTH", "CLOSED", "DATE", "CLOSED BY", "TOTAL"},
		Rows:    rows,
	}})
}

// DisplayClosure prints a single closure record.
func DisplayClosure(
	c *closure.Closure,
) {
	fmt.Println()
	PrintKV("Month", c.Month, "Closed", strconv.FormatBool(c.Closed))
	PrintKV("Date", c.Date, "By", c.ClosedBy, "Total", FormatMoney(c.Total))
}

// DisplayAuditEntries prints audit entries newest first, as returned.
func DisplayAuditEntries(
	entries []audit.Entry,
	total int,
) {
	fmt.Println()
	PrintKV("Entries", strconv.Itoa(total), "Shown", strconv.Itoa(len(entries)))

	if len(entries) == 0 {
		fmt.Println(DimStyle.Render("  No audit entries."))
		return
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.ID,
			e.Timestamp.Local().Format(time.DateTime),
			string(e.Kind),
			e.UserName,
			e.Description,
		})
	}

	PrintCompactTable([]Section{{
		Headers: []string{"ID", "TIME", "TYPE", "USER", "DESCRIPTION"},
		Rows:    rows,
	}})
}

// DisplayAuditEntry prints a single audit entry including its details.
func DisplayAuditEntry(
	e *audit.Entry,
) {
	fmt.Println()
	PrintKV("ID", e.ID, "Type", string(e.Kind))
	PrintKV("Time", e.Timestamp.Local().Format(time.RFC3339), "User", e.UserName+" ("+e.UserID+")")
	PrintKV("Description", e.Description)
	if e.Details != "" {
		PrintKV("Details", e.Details)
	}
}

func bucketRows(
	buckets []report.Bucket,
) [][]string {
	rows := make([][]string, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, []string{b.Name, strconv.Itoa(b.Count), FormatMoney(b.Total)})
	}
	return rows
}

// DisplayMonthlyReport prints the monthly summary followed by its breakdowns.
func DisplayMonthlyReport(
	m *report.Monthly,
) {
	fmt.Println()
	PrintKV("Month", m.Month, "Closed", strconv.FormatBool(m.Closed), "Records", strconv.Itoa(m.Count))
	PrintKV("Total", FormatMoney(m.Total), "Paid", FormatMoney(m.Paid), "Pending", FormatMoney(m.Pending))
	PrintKV("Incomplete", strconv.Itoa(m.Incomplete))

	headers := []string{"NAME", "COUNT", "TOTAL"}
	var sections []Section
	for _, group := range []struct {
		title   string
		buckets []report.Bucket
	}{
		{"By Payment Method", m.ByMethod},
		{"By Inspector", m.ByInspector},
		{"By Indication", m.ByIndication},
	} {
		if len(group.buckets) == 0 {
			continue
		}
		sections = append(sections, Section{
			Title:   group.title,
			Headers: headers,
			Rows:    bucketRows(group.buckets),
		})
	}

	if len(sections) > 0 {
		PrintCompactTable(sections)
	}
}

// DisplayHealthStatus prints the component status of a running server.
func DisplayHealthStatus(
	s *health.StatusResponse,
) {
	fmt.Println()
	PrintKV("Status", s.Status, "Version", s.Version, "Uptime", s.Uptime)

	names := slices.Sorted(maps.Keys(s.Components))
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		c := s.Components[name]
		rows = append(rows, []string{name, c.Status, c.Error})
	}

	sections := []Section{{
		Title:   "Components",
		Headers: []string{"COMPONENT", "STATUS", "ERROR"},
		Rows:    rows,
	}}

	if len(s.Collections) > 0 {
		collRows := make([][]string, 0, len(s.Collections))
		for _, c := range s.Collections {
			collRows = append(collRows, []string{c.Name, strconv.Itoa(c.Keys)})
		}
		sections = append(sections, Section{
			Title:   "Collections",
			Headers: []string{"NAME", "KEYS"},
			Rows:    collRows,
		})
	}

	PrintCompactTable(sections)

	if len(s.ClosedMonths) > 0 {
		fmt.Println()
		PrintKV("Closed Months", FormatList(s.ClosedMonths))
	}
}
