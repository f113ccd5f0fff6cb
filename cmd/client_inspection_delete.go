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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prevencar/vistoria/internal/cli"
	"github.com/prevencar/vistoria/internal/client"
)

// clientInspectionDeleteCmd represents the clientInspectionDelete command.
var clientInspectionDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an inspection",
	Long: `Delete an inspection by id. Records in a closed month are kept and the
refusal is audited. Requires inspection:write permission.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		id, _ := cmd.Flags().GetString("id")

		inspectionHandler := handler.(client.InspectionHandler)
		if err := inspectionHandler.DeleteInspection(cmd.Context(), id); err != nil {
			cli.HandleClientError(logger, "failed to delete inspection", err)
			return
		}

		if jsonOutput {
			printJSON(map[string]string{"id": id, "status": "deleted"})
			return
		}

		fmt.Println()
		cli.PrintKV("Deleted", id)
	},
}

func init() {
	clientInspectionCmd.AddCommand(clientInspectionDeleteCmd)

	clientInspectionDeleteCmd.Flags().String("id", "", "Inspection id")
	_ = clientInspectionDeleteCmd.MarkFlagRequired("id")
}
