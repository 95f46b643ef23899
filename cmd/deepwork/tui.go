package main

import (
	"fmt"
	"os"
	"path/filepath"

	"deepwork/internal/logging"
	"deepwork/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const tuiLogFileName = "deepwork_tui.log"

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the timer in the terminal",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// The terminal belongs to the program; logs go to a file next to the session log.
	if err := os.MkdirAll(options.DataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	logPath := filepath.Join(options.DataDir, tuiLogFileName)
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger = logging.New(options.Log.Level, options.Log.Format, logFile)
	log.Logger = logger

	service, err := openServices(options, logger)
	if err != nil {
		return err
	}
	defer service.Close()

	app := tui.New(service.settings, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	keeper := service.newKeeper(service.soundPlayer(), app)
	defer keeper.Close()
	app.Attach(keeper)

	logger.Info().Str("version", version).Msg("Starting DeepWork TUI")
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
