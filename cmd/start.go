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

// startCmd represents the top-level start command.
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start all components (NATS, API server, audit export)",
	Long: `Start the embedded NATS server, the API server and the audit export
scheduler in a single process.

NATS only starts when store.backend is "nats" and nats.server.embedded is
set. Components start in order (NATS → API → export) and shut down in
reverse order on SIGINT/SIGTERM.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		shutdownTracer, err := telemetry.InitTracer(ctx, appVersion(), appConfig.Telemetry.Tracing)
		if err != nil {
			cli.LogFatal(logger, "failed to initialize tracer", err)
		}

		metrics, err := telemetry.InitMeter(appConfig.Telemetry.Metrics)
		if err != nil {
			cli.LogFatal(logger, "failed to initialize meter", err)
		}

		var components cli.Group

		// The store connects to NATS while the API is set up, so the
		// embedded server has to accept connections first.
		if appConfig.Store.Backend == "nats" && appConfig.NATS.Server.Embedded {
			ns, err := cli.NewEmbeddedNATS(logger, appConfig.NATS.Server)
			if err != nil {
				cli.LogFatal(logger, "failed to create nats server", err)
			}
			ns.Start()
			components = append(components, ns)
		}

		sm, bundle := setupAPIServer(ctx, logger.With("component", "api"), metrics)
		sm.Start()
		components = append(components, sm)

		if bundle.scheduler != nil {
			bundle.scheduler.Start()
			components = append(components, bundle.scheduler)
		}

		cli.RunServer(ctx, components, func() {
			bundle.storage.Close()
			_ = metrics.Shutdown(context.Background())
			_ = shutdownTracer(context.Background())
		})
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
