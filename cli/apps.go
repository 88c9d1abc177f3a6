package cli

import (
	"github.com/mobile-next/flicker/commands"
	"github.com/spf13/cobra"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "Manage applications on devices",
	Long:  `Launch and terminate applications on connected devices.`,
}

var appsLaunchCmd = &cobra.Command{
	Use:   "launch [package]",
	Short: "Launch an app on a device",
	Long:  `Launches an app on the specified device using its package name (e.g., "com.android.server.wm.flicker.testapp").`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := commands.AppRequest{
			DeviceID:    deviceId,
			PackageName: args[0],
		}

		return printResponse(commands.LaunchAppCommand(cmd.Context(), req))
	},
}

var appsTerminateCmd = &cobra.Command{
	Use:   "terminate [package]",
	Short: "Terminate an app on a device",
	Long:  `Force-stops an app on the specified device using its package name.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := commands.AppRequest{
			DeviceID:    deviceId,
			PackageName: args[0],
		}

		return printResponse(commands.TerminateAppCommand(cmd.Context(), req))
	},
}

func init() {
	rootCmd.AddCommand(appsCmd)

	appsCmd.AddCommand(appsLaunchCmd)
	appsCmd.AddCommand(appsTerminateCmd)

	appsLaunchCmd.Flags().StringVar(&deviceId, "device", "", "ID of the device to launch the app on")
	appsTerminateCmd.Flags().StringVar(&deviceId, "device", "", "ID of the device to terminate the app on")
}
