package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configFile string
	debugMode  bool
)

func setupLogger(debugMode bool) {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

func newRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "studyloop",
		Short: "Deterministic study planning from the command line",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(debugMode)
		},
	}

	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: ./config.yml)")
	rootCommand.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCommand.AddCommand(newPlanCommand())
	rootCommand.AddCommand(newExtractCommand())
	rootCommand.AddCommand(newQuizCommand())
	rootCommand.AddCommand(newReportCommand())
	rootCommand.AddCommand(newMigrateCommand())

	return rootCommand
}

func main() {
	_ = godotenv.Load()

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
