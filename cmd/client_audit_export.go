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

package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/prevencar/vistoria/internal/audit"
	"github.com/prevencar/vistoria/internal/audit/export"
	"github.com/prevencar/vistoria/internal/cli"
	"github.com/prevencar/vistoria/internal/client"
)

var auditExportOutput string

// clientAuditExportCmd represents the clientAuditExport command.
var clientAuditExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export audit log entries to a file",
	Long: `Export all audit log entries to a file for long-term retention.

Fetches all entries via the export endpoint and writes each entry as a
JSON line (JSONL format).
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		auditHandler := handler.(client.AuditHandler)

		resp, err := auditHandler.ExportAuditLogs(ctx)
		if err != nil {
			cli.HandleClientError(logger, "failed to export audit logs", err)
			return
		}

		result, err := writeExport(ctx, resp.Items)
		if err != nil {
			cli.LogFatal(logger, "failed to write export", err, "output", auditExportOutput)
			return
		}

		if jsonOutput {
			printJSON(result)
			return
		}

		fmt.Println()
		cli.PrintKV(
			"Exported", strconv.Itoa(result.ExportedEntries),
			"Total", strconv.Itoa(resp.TotalItems),
		)
		cli.PrintKV("Output", auditExportOutput)
	},
}

// writeExport writes items to the output file through the same exporter
// the server side scheduler uses.
func writeExport(
	ctx context.Context,
	items []audit.Entry,
) (*export.Result, error) {
	fetcher := func(_ context.Context, limit int, offset int) ([]audit.Entry, int, error) {
		if offset >= len(items) {
			return nil, len(items), nil
		}
		end := min(offset+limit, len(items))
		return items[offset:end], len(items), nil
	}

	return export.Run(
		ctx,
		logger,
		fetcher,
		export.NewFileExporter(appFs, auditExportOutput),
		export.DefaultBatchSize,
		nil,
	)
}

func init() {
	clientAuditCmd.AddCommand(clientAuditExportCmd)
	clientAuditExportCmd.Flags().
		StringVarP(&auditExportOutput, "output", "o", "", "Output file path (required)")
	_ = clientAuditExportCmd.MarkFlagRequired("output")
}
