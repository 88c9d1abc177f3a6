package cli

import (
	"github.com/mobile-next/flicker/commands"
	"github.com/spf13/cobra"
)

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Single device operations",
}

var deviceInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show information about a device",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(commands.InfoCommand(cmd.Context(), commands.DeviceRequest{DeviceID: deviceId}))
	},
}

var deviceRebootCmd = &cobra.Command{
	Use:   "reboot",
	Short: "Reboot a device",
	Long:  `Reboots the specified device with adb reboot. Useful when a test left it in split screen or another unknown state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(commands.RebootCommand(cmd.Context(), commands.DeviceRequest{DeviceID: deviceId}))
	},
}

func init() {
	rootCmd.AddCommand(deviceCmd)

	deviceCmd.AddCommand(deviceInfoCmd)
	deviceCmd.AddCommand(deviceRebootCmd)

	deviceCmd.PersistentFlags().StringVar(&deviceId, "device", "", "ID of the device")
}
