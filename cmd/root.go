package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"vizshell/bridge"
	"vizshell/config"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use: "vizshell",
	PreRun: func(cmd *cobra.Command, args []string) {
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		slog.SetDefault(logger)
		config.InitConfig()
		slog.SetDefault(newLogger(config.C))
	},
	Run: func(cmd *cobra.Command, args []string) {
		bridge.Serve(cmd.Context())
	},
}

func newLogger(c *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if strings.EqualFold(c.LogFormat, "text") {
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("failed to execute root command", "err", err)
	}
}
