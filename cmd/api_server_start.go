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

	"github.com/spf13/cobra"

	"github.com/prevencar/vistoria/internal/cli"
	"github.com/prevencar/vistoria/internal/telemetry"
)

// apiServerStartCmd represents the apiServerStart command.
var apiServerStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the server",
	Long: `Start the API server against the configured store. The embedded NATS
server is not started; use "vistoria start" for a single process setup.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		log := logger.With("component", "api")

		shutdownTracer, err := telemetry.InitTracer(ctx, appVersion(), appConfig.Telemetry.Tracing)
		if err != nil {
			cli.LogFatal(logger, "failed to initialize tracer", err)
		}

		metrics, err := telemetry.InitMeter(appConfig.Telemetry.Metrics)
		if err != nil {
			cli.LogFatal(logger, "failed to initialize meter", err)
		}

		sm, bundle := setupAPIServer(ctx, log, metrics)

		components := cli.Group{sm}
		if bundle.scheduler != nil {
			components = append(components, bundle.scheduler)
		}

		components.Start()
		cli.RunServer(ctx, components, func() {
			bundle.storage.Close()
			_ = metrics.Shutdown(context.Background())
			_ = shutdownTracer(context.Background())
		})
	},
}

func init() {
	apiServerCmd.AddCommand(apiServerStartCmd)
}
