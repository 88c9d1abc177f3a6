package cli

import (
	"github.com/mobile-next/flicker/commands"
	"github.com/spf13/cobra"
)

var pipCmd = &cobra.Command{
	Use:   "pip",
	Short: "Picture-in-picture operations",
	Long:  `Enter, close, expand and inspect the picture-in-picture window of the PiP test app.`,
}

func pipRequest() commands.PipRequest {
	return commands.PipRequest{
		DeviceID: deviceId,
		Package:  pipPackage,
		Launch:   pipLaunch,
	}
}

var pipEnterCmd = &cobra.Command{
	Use:   "enter",
	Short: "Put the PiP app into picture-in-picture",
	Long:  `Clicks the app's enter_pip button and waits for a pinned window. Fails if the button is missing, which usually means the device was left in split screen.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(commands.PipEnterCommand(cmd.Context(), pipRequest()))
	},
}

var pipCloseCmd = &cobra.Command{
	Use:   "close",
	Short: "Dismiss the picture-in-picture window",
	Long:  `Opens the SystemUI PiP menu and clicks its dismiss button.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(commands.PipCloseCommand(cmd.Context(), pipRequest()))
	},
}

var pipExpandCmd = &cobra.Command{
	Use:   "expand",
	Short: "Return the picture-in-picture app to full screen",
	Long:  `Opens the SystemUI PiP menu and clicks its expand button.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(commands.PipExpandCommand(cmd.Context(), pipRequest()))
	},
}

var pipStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current picture-in-picture window",
	Long:  `Reports the pinned window, if any, without waiting. With --package only that package's pinned window counts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(commands.PipStatusCommand(cmd.Context(), pipRequest()))
	},
}

func init() {
	rootCmd.AddCommand(pipCmd)

	pipCmd.AddCommand(pipEnterCmd)
	pipCmd.AddCommand(pipCloseCmd)
	pipCmd.AddCommand(pipExpandCmd)
	pipCmd.AddCommand(pipStatusCmd)

	pipCmd.PersistentFlags().StringVar(&deviceId, "device", "", "ID of the device to drive")
	pipEnterCmd.Flags().StringVar(&pipPackage, "package", "", "package of the PiP app (default from config)")
	pipEnterCmd.Flags().BoolVar(&pipLaunch, "launch", false, "launch the app before entering picture-in-picture")

	pipStatusCmd.Flags().StringVar(&pipPackage, "package", "", "only report the pinned window of this package")
}
