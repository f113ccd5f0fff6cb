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
	"errors"

	"github.com/spf13/cobra"

	"github.com/prevencar/vistoria/internal/cli"
	"github.com/prevencar/vistoria/internal/client"
	"github.com/prevencar/vistoria/internal/inspection"
)

// clientInspectionBulkCmd represents the clientInspectionBulk command.
var clientInspectionBulkCmd = &cobra.Command{
	Use:   "bulk",
	Short: "Apply one change to many inspections",
	Long: `Apply the same change to every listed inspection. Either every record is
updated or none is. Only the flags given are changed.
Requires inspection:bulk permission.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ids, _ := cmd.Flags().GetStringSlice("ids")

		patch := buildPatch(cmd)
		if patch.IsEmpty() {
			cli.LogFatal(logger, "nothing to update", errors.New("no change flags given"))
			return
		}

		inspectionHandler := handler.(client.InspectionHandler)
		resp, err := inspectionHandler.BulkUpdateInspections(cmd.Context(), ids, patch)
		if err != nil {
			cli.HandleClientError(logger, "failed to update inspections", err)
			return
		}

		if jsonOutput {
			printJSON(resp)
			return
		}

		cli.DisplayBulkResult(resp)
	},
}

// buildPatch sets a patch field for every flag the user changed.
func buildPatch(
	cmd *cobra.Command,
) inspection.Patch {
	var patch inspection.Patch
	flags := cmd.Flags()

	changed := func(name string) (string, bool) {
		if !flags.Changed(name) {
			return "", false
		}
		v, _ := flags.GetString(name)
		return v, true
	}

	if v, ok := changed("status"); ok {
		s := inspection.Status(v)
		patch.Status = &s
	}
	if v, ok := changed("payment-method"); ok {
		m := inspection.PaymentMethod(v)
		patch.PaymentMethod = &m
	}
	if v, ok := changed("record-status"); ok {
		r := inspection.RecordStatus(v)
		patch.RecordStatus = &r
	}
	if v, ok := changed("payment-status"); ok {
		p := inspection.PaymentStatus(v)
		patch.PaymentStatus = &p
	}
	if v, ok := changed("nfe"); ok {
		patch.NFe = &v
	}
	if v, ok := changed("inspector"); ok {
		patch.Inspector = &v
	}
	if v, ok := changed("payment-date"); ok {
		patch.PaymentDate = &v
	}

	return patch
}

func init() {
	clientInspectionCmd.AddCommand(clientInspectionBulkCmd)

	flags := clientInspectionBulkCmd.Flags()
	flags.StringSlice("ids", []string{}, "Inspection ids to update")
	flags.String("status", "", "Workflow status")
	flags.String("payment-method", "", "Payment method")
	flags.String("record-status", "", "Record status (Completa or Incompleta)")
	flags.String("payment-status", "", "Payment status (Pago or A pagar)")
	flags.String("nfe", "", "Invoice number")
	flags.String("inspector", "", "Inspector name")
	flags.String("payment-date", "", "Payment date (YYYY-MM-DD)")

	_ = clientInspectionBulkCmd.MarkFlagRequired("ids")
}
