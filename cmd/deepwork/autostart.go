package main

import (
	"fmt"

	"deepwork/internal/platform"

	"github.com/spf13/cobra"
)

var autostartCmd = &cobra.Command{
	Use:   "autostart",
	Short: "Manage starting DeepWork at login",
}

var autostartEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Start the desktop timer at login",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := platform.NewAutostart(appName, "gui")
		if err != nil {
			return err
		}
		if err := entry.Enable(); err != nil {
			return err
		}
		logger.Info().Strs("command", entry.Command).Msg("Autostart enabled")
		fmt.Fprintln(cmd.OutOrStdout(), "Autostart enabled")
		return nil
	},
}

var autostartDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Stop starting DeepWork at login",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := platform.NewAutostart(appName)
		if err != nil {
			return err
		}
		if err := entry.Disable(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Autostart disabled")
		return nil
	},
}

var autostartStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether DeepWork starts at login",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := platform.NewAutostart(appName)
		if err != nil {
			return err
		}
		enabled, err := entry.Enabled()
		if err != nil {
			return err
		}
		if enabled {
			fmt.Fprintln(cmd.OutOrStdout(), "Autostart is enabled")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Autostart is disabled")
		}
		return nil
	},
}

func init() {
	autostartCmd.AddCommand(autostartEnableCmd, autostartDisableCmd, autostartStatusCmd)
	rootCmd.AddCommand(autostartCmd)
}
