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
	"github.com/spf13/cobra"

	"github.com/prevencar/vistoria/internal/cli"
	"github.com/prevencar/vistoria/internal/client"
)

// clientReportCmd represents the clientReport command.
var clientReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Financial reports",
}

// clientReportMonthlyCmd represents the clientReportMonthly command.
var clientReportMonthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Monthly summary",
	Long: `Summarize one reference month: totals paid and pending, incomplete
records and breakdowns by payment method, inspector and indication.
Requires report:read permission.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		month, _ := cmd.Flags().GetString("month")

		reportHandler := handler.(client.ReportHandler)
		resp, err := reportHandler.GetMonthlyReport(cmd.Context(), month)
		if err != nil {
			cli.HandleClientError(logger, "failed to get monthly report", err)
			return
		}

		if jsonOutput {
			printJSON(resp)
			return
		}

		cli.DisplayMonthlyReport(resp)
	},
}

func init() {
	clientCmd.AddCommand(clientReportCmd)
	clientReportCmd.AddCommand(clientReportMonthlyCmd)

	clientReportMonthlyCmd.Flags().StringP("month", "m", "", "Reference month (YYYY-MM)")
	_ = clientReportMonthlyCmd.MarkFlagRequired("month")
}
