package cli

import (
	"github.com/mobile-next/flicker/commands"
	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List connected devices",
	Long:  `List all Android devices and emulators known to adb. With --all, AVDs that are not running are listed as offline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(commands.DevicesCommand(cmd.Context(), showAllDevices))
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)

	devicesCmd.Flags().BoolVar(&showAllDevices, "all", false, "show all devices including offline ones")
}
