package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mobile-next/flicker/commands"
	"github.com/spf13/cobra"
)

var ioCmd = &cobra.Command{
	Use:   "io",
	Short: "Input operations with devices",
	Long:  `Perform input operations like tapping and pressing buttons on devices.`,
}

// parseCoordinates parses "x,y".
func parseCoordinates(s string) (int, int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid coordinate format. Expected 'x,y', got '%s'", s)
	}

	x, errX := strconv.Atoi(strings.TrimSpace(parts[0]))
	y, errY := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errX != nil || errY != nil {
		return 0, 0, fmt.Errorf("invalid coordinate values. x and y must be integers. Got x='%s', y='%s'", parts[0], parts[1])
	}

	return x, y, nil
}

var ioTapCmd = &cobra.Command{
	Use:   "tap [x,y]",
	Short: "Tap on a device screen at the given coordinates",
	Long:  `Sends a tap event to the specified device at the given x,y coordinates. Coordinates should be provided as a single string "x,y".`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, y, err := parseCoordinates(args[0])
		if err != nil {
			return printResponse(commands.NewErrorResponse(err))
		}

		req := commands.TapRequest{
			DeviceID: deviceId,
			X:        x,
			Y:        y,
		}

		return printResponse(commands.TapCommand(cmd.Context(), req))
	},
}

var ioButtonCmd = &cobra.Command{
	Use:   "button [button_name]",
	Short: "Press a hardware button on a device",
	Long:  `Presses a hardware button (HOME, BACK, APP_SWITCH, WINDOW, POWER, VOLUME_UP, VOLUME_DOWN, ENTER, DPAD_*, BACKSPACE) on the specified device.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := commands.ButtonRequest{
			DeviceID: deviceId,
			Button:   args[0],
		}

		return printResponse(commands.ButtonCommand(cmd.Context(), req))
	},
}

func init() {
	rootCmd.AddCommand(ioCmd)

	ioCmd.AddCommand(ioTapCmd)
	ioCmd.AddCommand(ioButtonCmd)

	ioCmd.PersistentFlags().StringVar(&deviceId, "device", "", "ID of the device to send input to")
}
