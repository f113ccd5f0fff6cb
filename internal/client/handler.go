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

	"github.com/prevencar/vistoria/internal/api/auth"
	"github.com/prevencar/vistoria/internal/api/common"
	"github.com/prevencar/vistoria/internal/api/health"
	inspectionapi "github.com/prevencar/vistoria/internal/api/inspection"
	"github.com/prevencar/vistoria/internal/audit"
	"github.com/prevencar/vistoria/internal/closure"
	"github.com/prevencar/vistoria/internal/inspection"
	"github.com/prevencar/vistoria/internal/report"
)

// CombinedHandler is a superset of all smaller handler interfaces.
type CombinedHandler interface {
	AuthHandler
	HealthHandler
	InspectionHandler
	ClosureHandler
	AuditHandler
	ReportHandler
}

// AuthHandler defines an interface for interacting with Auth client operations.
type AuthHandler interface {
	// Login exchanges credentials for a bearer token.
	Login(
		ctx context.Context,
		email string,
		password string,
	) (*auth.LoginResponse, error)
	// Logout records the logout of the token owner.
	Logout(
		ctx context.Context,
	) error
}

// HealthHandler defines an interface for interacting with Health client operations.
type HealthHandler interface {
	// GetHealth get the health liveness API endpoint.
	GetHealth(
		ctx context.Context,
	) (*health.Response, error)
	// GetHealthReady get the health readiness API endpoint. The body is
	// returned alongside the error when the service is not ready.
	GetHealthReady(
		ctx context.Context,
	) (*health.Response, error)
	// GetHealthStatus get the health status API endpoint. The body is
	// returned alongside the error when the service is degraded.
	GetHealthStatus(
		ctx context.Context,
	) (*health.StatusResponse, error)
}

// InspectionHandler defines an interface for interacting with Inspection client operations.
type InspectionHandler interface {
	// ListInspections lists inspections matching filter.
	ListInspections(
		ctx context.Context,
		filter InspectionFilter,
	) (*common.ListResponse[inspection.Inspection], error)
	// GetInspection retrieves one inspection by id.
	GetInspection(
		ctx context.Context,
		id string,
	) (*inspection.Inspection, error)
	// SaveInspection creates or replaces an inspection.
	SaveInspection(
		ctx context.Context,
		record inspection.Inspection,
	) (*inspection.Inspection, error)
	// DeleteInspection removes an inspection.
	DeleteInspection(
		ctx context.Context,
		id string,
	) error
	// BulkUpdateInspections applies patch to every id atomically.
	BulkUpdateInspections(
		ctx context.Context,
		ids []string,
		patch inspection.Patch,
	) (*inspectionapi.BulkResponse, error)
}

// ClosureHandler defines an interface for interacting with Closure client operations.
type ClosureHandler interface {
	// ListClosures lists every closed month.
	ListClosures(
		ctx context.Context,
	) (*common.ListResponse[closure.Closure], error)
	// CloseMonth closes a billing month.
	CloseMonth(
		ctx context.Context,
		month string,
	) (*closure.Closure, error)
}

// AuditHandler defines an interface for interacting with Audit client operations.
type AuditHandler interface {
	// ListAuditLogs lists a page of audit entries, newest first.
	ListAuditLogs(
		ctx context.Context,
		limit int,
		offset int,
	) (*common.ListResponse[audit.Entry], error)
	// GetAuditLog retrieves one audit entry by id.
	GetAuditLog(
		ctx context.Context,
		id string,
	) (*audit.Entry, error)
	// ExportAuditLogs retrieves every audit entry.
	ExportAuditLogs(
		ctx context.Context,
	) (*common.ListResponse[audit.Entry], error)
}

// ReportHandler defines an interface for interacting with Report client operations.
type ReportHandler interface {
	// GetMonthlyReport summarizes one billing month.
	GetMonthlyReport(
		ctx context.Context,
		month string,
	) (*report.Monthly, error)
}

var _ CombinedHandler = (*Client)(nil)
