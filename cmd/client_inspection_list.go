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

var inspectionListFilter client.InspectionFilter

// clientInspectionListCmd represents the clientInspectionList command.
var clientInspectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List inspections",
	Long: `List inspections, optionally filtered by reference month, status,
payment status, inspector or plate. Requires inspection:read permission.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		inspectionHandler := handler.(client.InspectionHandler)
		resp, err := inspectionHandler.ListInspections(cmd.Context(), inspectionListFilter)
		if err != nil {
			cli.HandleClientError(logger, "failed to list inspections", err)
			return
		}

		if jsonOutput {
			printJSON(resp)
			return
		}

		cli.DisplayInspections(resp.Items, resp.TotalItems)
	},
}

func init() {
	clientInspectionCmd.AddCommand(clientInspectionListCmd)

	flags := clientInspectionListCmd.Flags()
	flags.StringVarP(&inspectionListFilter.Month, "month", "m", "", "Reference month (YYYY-MM)")
	flags.StringVar(&inspectionListFilter.Status, "status", "", "Workflow status")
	flags.StringVar(&inspectionListFilter.PaymentStatus, "payment-status", "", "Payment status")
	flags.StringVar(&inspectionListFilter.Inspector, "inspector", "", "Inspector name")
	flags.StringVar(&inspectionListFilter.Plate, "plate", "", "License plate")
}
