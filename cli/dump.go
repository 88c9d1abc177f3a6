package cli

import (
	"github.com/mobile-next/flicker/commands"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump operations with devices",
	Long:  `Perform dump operations like source tree extraction from devices.`,
}

var dumpSourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Dump UI elements and windows from a device",
	Long:  `Dumps the uiautomator hierarchy and the window manager's window list from the specified device.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := commands.DumpSourceRequest{
			DeviceID: deviceId,
		}

		return printResponse(commands.DumpSourceCommand(cmd.Context(), req))
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.AddCommand(dumpSourceCmd)

	dumpSourceCmd.Flags().StringVar(&deviceId, "device", "", "ID of the device to dump source tree from")
}
