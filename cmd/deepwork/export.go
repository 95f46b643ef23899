package main

import (
	"fmt"

	"deepwork/internal/storage"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export the session log",
	Long:  `Export the session log to a .csv file (verbatim copy) or a .json file (array of records).`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	service, err := openServices(options, logger)
	if err != nil {
		return err
	}
	defer service.Close()

	if err := storage.Export(cmd.Context(), service.log, args[0]); err != nil {
		return fmt.Errorf("failed to export session log: %w", err)
	}

	logger.Info().Str("path", args[0]).Msg("Session log exported")
	fmt.Fprintf(cmd.OutOrStdout(), "Exported session log to %s\n", args[0])
	return nil
}
