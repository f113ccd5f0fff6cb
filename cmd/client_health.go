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
	"net/http"

	"github.com/spf13/cobra"

	"github.com/prevencar/vistoria/internal/cli"
	"github.com/prevencar/vistoria/internal/client"
)

// clientHealthCmd represents the clientHealth command.
var clientHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Health check endpoints",
	Long: `Check the health of the API server.

Running without a subcommand performs a liveness probe.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		healthHandler := handler.(client.HealthHandler)
		resp, err := healthHandler.GetHealth(cmd.Context())
		if err != nil {
			cli.HandleClientError(logger, "failed to get health endpoint", err)
			return
		}

		if jsonOutput {
			printJSON(resp)
			return
		}

		fmt.Println()
		cli.PrintKV("Status", resp.Status)
	},
}

// clientHealthReadyCmd represents the clientHealthReady command.
var clientHealthReadyCmd = &cobra.Command{
	Use:   "ready",
	Short: "Readiness probe",
	Long: `Check whether the API server can reach its store.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		healthHandler := handler.(client.HealthHandler)
		resp, err := healthHandler.GetHealthReady(cmd.Context())
		if err != nil {
			cli.HandleClientError(logger, "failed to get health ready endpoint", err)
			return
		}

		if jsonOutput {
			printJSON(resp)
			return
		}

		fmt.Println()
		cli.PrintKV("Status", resp.Status)
	},
}

// clientHealthStatusCmd represents the clientHealthStatus command.
var clientHealthStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Component health and store statistics",
	Long: `Show per-component health, collection sizes and closed months.
Requires health:read permission.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		healthHandler := handler.(client.HealthHandler)
		resp, err := healthHandler.GetHealthStatus(cmd.Context())
		if err != nil && client.StatusCode(err) != http.StatusServiceUnavailable {
			cli.HandleClientError(logger, "failed to get health status endpoint", err)
			return
		}

		if jsonOutput {
			printJSON(resp)
		} else {
			cli.DisplayHealthStatus(resp)
		}

		if err != nil {
			cli.HandleClientError(logger, "server is degraded", err)
		}
	},
}

func init() {
	clientCmd.AddCommand(clientHealthCmd)
	clientHealthCmd.AddCommand(clientHealthReadyCmd)
	clientHealthCmd.AddCommand(clientHealthStatusCmd)
}
