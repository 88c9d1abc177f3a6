package cli

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/mobile-next/flicker/commands"
	"github.com/spf13/cobra"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Take a screenshot of a connected device",
	Long:  `Takes a screenshot of a specified device (using its ID) and saves it locally as a PNG file. Use --output - to write the image to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := commands.ScreenshotRequest{
			DeviceID:   deviceId,
			OutputPath: screenshotOutputPath,
		}

		response := commands.ScreenshotCommand(cmd.Context(), req)

		// binary output goes to stdout instead of the json response
		if screenshotOutputPath == "-" && response.Status == "ok" {
			if screenshotResp, ok := response.Data.(commands.ScreenshotResponse); ok && screenshotResp.Data != "" {
				imageBytes, err := base64.StdEncoding.DecodeString(screenshotResp.Data)
				if err != nil {
					return fmt.Errorf("failed to decode image data: %w", err)
				}
				if _, err := os.Stdout.Write(imageBytes); err != nil {
					return fmt.Errorf("failed to write to stdout: %w", err)
				}
				return nil
			}
		}

		return printResponse(response)
	},
}

func init() {
	rootCmd.AddCommand(screenshotCmd)

	screenshotCmd.Flags().StringVar(&deviceId, "device", "", "ID of the device to take screenshot from")
	screenshotCmd.Flags().StringVarP(&screenshotOutputPath, "output", "o", "", "output file path, or - for stdout")
}
