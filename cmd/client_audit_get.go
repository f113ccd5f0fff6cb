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

// clientAuditGetCmd represents the clientAuditGet command.
var clientAuditGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Get an audit log entry",
	Long: `Get a single audit log entry by id, including its details.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		id, _ := cmd.Flags().GetString("id")

		auditHandler := handler.(client.AuditHandler)
		resp, err := auditHandler.GetAuditLog(cmd.Context(), id)
		if err != nil {
			cli.HandleClientError(logger, "failed to get audit log entry", err)
			return
		}

		if jsonOutput {
			printJSON(resp)
			return
		}

		cli.DisplayAuditEntry(resp)
	},
}

func init() {
	clientAuditCmd.AddCommand(clientAuditGetCmd)

	clientAuditGetCmd.Flags().String("id", "", "Audit entry id")
	_ = clientAuditGetCmd.MarkFlagRequired("id")
}
