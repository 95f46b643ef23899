package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"deepwork/internal/config"
	"deepwork/internal/logging"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const appName = "DeepWork"

var (
	version    = "dev"
	configPath string

	runtimeOptions = config.New()
	options        *config.Options
	logger         = zerolog.Nop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "deepwork",
	Short: "DeepWork - work/break interval timer",
	Long: `DeepWork alternates work and break countdowns, plays a cue when a phase
ends and keeps a log of every completed session.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadOptions,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to the desktop app when no subcommand is provided
		return runGUI(cmd, args)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to a runtime options file (yaml)")
	flags.String("data-dir", "", "Directory holding preferences and the session log")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "text", "Log format (text, json)")
	flags.String("backend", "csv", "Session log backend (csv, sqlite)")

	bindFlag("data_dir", "data-dir")
	bindFlag("log.level", "log-level")
	bindFlag("log.format", "log-format")
	bindFlag("session_log.backend", "backend")
}

func bindFlag(key, flag string) {
	if err := runtimeOptions.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag, err))
	}
}

func loadOptions(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(runtimeOptions, configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	options = loaded

	logger = logging.New(options.Log.Level, options.Log.Format, cmd.ErrOrStderr())
	log.Logger = logger

	logger.Debug().
		Str("version", version).
		Str("data_dir", options.DataDir).
		Str("backend", options.SessionLog.Backend).
		Msg("Options loaded")
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
