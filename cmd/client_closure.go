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

// clientClosureCmd represents the clientClosure command.
var clientClosureCmd = &cobra.Command{
	Use:   "closure",
	Short: "Monthly closures",
}

// clientClosureListCmd represents the clientClosureList command.
var clientClosureListCmd = &cobra.Command{
	Use:   "list",
	Short: "List closed months",
	Long: `List every monthly closure, newest month first.
Requires closure:read permission.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		closureHandler := handler.(client.ClosureHandler)
		resp, err := closureHandler.ListClosures(cmd.Context())
		if err != nil {
			cli.HandleClientError(logger, "failed to list closures", err)
			return
		}

		if jsonOutput {
			printJSON(resp)
			return
		}

		cli.DisplayClosures(resp.Items)
	},
}

// clientClosureCloseCmd represents the clientClosureClose command.
var clientClosureCloseCmd = &cobra.Command{
	Use:   "close",
	Short: "Close a billing month",
	Long: `Close a billing month. Afterwards no inspection of that month can be
saved, deleted or bulk updated. Only admin and financeiro users may close.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		month, _ := cmd.Flags().GetString("month")

		closureHandler := handler.(client.ClosureHandler)
		resp, err := closureHandler.CloseMonth(cmd.Context(), month)
		if err != nil {
			cli.HandleClientError(logger, "failed to close month", err)
			return
		}

		if jsonOutput {
			printJSON(resp)
			return
		}

		cli.DisplayClosure(resp)
	},
}

func init() {
	clientCmd.AddCommand(clientClosureCmd)
	clientClosureCmd.AddCommand(clientClosureListCmd)
	clientClosureCmd.AddCommand(clientClosureCloseCmd)

	clientClosureCloseCmd.Flags().StringP("month", "m", "", "Month to close (YYYY-MM)")
	_ = clientClosureCloseCmd.MarkFlagRequired("month")
}
