package main

import (
	"fmt"
	"path/filepath"

	"deepwork/internal/storage"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the preferences document",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective preferences as YAML",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the location of the preferences document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), preferencesPath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func preferencesPath() string {
	return filepath.Join(options.DataDir, storage.SettingsFileName)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	store := storage.NewSettingsStore(preferencesPath())
	settings, err := store.Load()
	if err != nil {
		logger.Warn().Err(err).Str("path", store.Path()).Msg("Using default preferences")
	}

	document, err := storage.MarshalSettings(settings)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(document)
	return err
}
