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
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	masker "github.com/ggwhite/go-masker/v2"
	"github.com/lmittmann/tint"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/prevencar/vistoria/internal/cli"
	"github.com/prevencar/vistoria/internal/config"
	"github.com/prevencar/vistoria/internal/telemetry"
)

var (
	appConfig  config.Config
	appFs      = afero.NewOsFs()
	logger     = slog.New(slog.NewTextHandler(os.Stdout, nil))
	jsonOutput bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "vistoria",
	Short: "Inspection records, monthly closures and audit for Prevencar.",
	Long: `Vistoria keeps the vehicle inspection records of Prevencar, guards
every write against closed billing months and inconsistent payment state,
closes months and keeps an audit log of what happened.

┬  ┬┬┌─┐┌┬┐┌─┐┬─┐┬┌─┐
└┐┌┘│└─┐ │ │ │├┬┘│├─┤
 └┘ ┴└─┘ ┴ └─┘┴└─┴┴ ┴
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogger, logConfig)

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable or disable debug mode")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Enable JSON output")

	rootCmd.PersistentFlags().
		StringP("vistoria-file", "f", "/etc/vistoria/vistoria.yaml", "Path to config file")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("vistoriaFile", rootCmd.PersistentFlags().Lookup("vistoria-file"))
}

func setDefaults() {
	viper.SetDefault("api.client.url", "http://0.0.0.0:8080")
	viper.SetDefault("api.server.port", 8080)
	viper.SetDefault("api.server.security.token_ttl", "12h")
	viper.SetDefault("store.backend", "memory")
	viper.SetDefault("nats.server.host", "localhost")
	viper.SetDefault("nats.server.port", 4222)
	viper.SetDefault("nats.server.store_dir", "/var/lib/vistoria/nats")
	viper.SetDefault("nats.client.host", "localhost")
	viper.SetDefault("nats.client.port", 4222)
	viper.SetDefault("nats.client.client_name", "vistoria")
	viper.SetDefault("nats.kv.storage", "file")
	viper.SetDefault("nats.kv.replicas", 1)
	viper.SetDefault("audit.retention", 1000)
	viper.SetDefault("audit.export.schedule", "@daily")
	viper.SetDefault("audit.export.batch_size", 100)
	viper.SetDefault("telemetry.metrics.path", telemetry.DefaultMetricsPath)
}

func initConfig() {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetConfigType("yaml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("vistoria")
	viper.SetConfigFile(viper.GetString("vistoriaFile"))
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		cli.LogFatal(logger, "failed to read config", err, "vistoriaFile", viper.ConfigFileUsed())
	}

	if err := viper.Unmarshal(&appConfig); err != nil {
		cli.LogFatal(
			logger,
			"failed to unmarshal config",
			err,
			"vistoriaFile",
			viper.ConfigFileUsed(),
		)
	}

	// Tracing in debug mode puts trace_id into log lines without exporting spans.
	if appConfig.Debug && !appConfig.Telemetry.Tracing.Enabled {
		appConfig.Telemetry.Tracing.Enabled = true
	}

	err := config.Validate(&appConfig)
	if err != nil {
		cli.LogFatal(logger, "validation failed", err, "vistoriaFile", viper.ConfigFileUsed())
	}
}

func initLogger() {
	logLevel := slog.LevelInfo
	if viper.GetBool("debug") {
		logLevel = slog.LevelDebug
	}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.Kitchen,
			NoColor:    !term.IsTerminal(int(os.Stdout.Fd())),
		})
	}

	handler = telemetry.NewTraceHandler(handler)
	logger = slog.New(handler)
}

// logConfig prints the effective configuration with secrets masked.
func logConfig() {
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	masked, err := maskConfig(appConfig)
	if err != nil {
		logger.Warn("failed to mask config", slog.String("error", err.Error()))
		return
	}

	logger.Debug(
		"effective configuration",
		slog.String("config_file", viper.ConfigFileUsed()),
		slog.String("config", masked),
	)
}

func maskConfig(
	cfg config.Config,
) (string, error) {
	out, err := masker.NewMaskerMarshaler().Struct(&cfg)
	if err != nil {
		return "", fmt.Errorf("masking config: %w", err)
	}

	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}

	return string(b), nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(
	v any,
) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		cli.LogFatal(logger, "failed to encode output", err)
	}

	fmt.Println(string(b))
}
