package commands

import (
	"context"
	"fmt"

	"github.com/mobile-next/flicker/types"
)

// DumpSourceRequest represents the parameters for dumping the UI tree
type DumpSourceRequest struct {
	DeviceID string `json:"deviceId"`
}

// DumpSourceResponse represents the response for a dump source command
type DumpSourceResponse struct {
	Elements []types.ScreenElement `json:"elements"`
	Windows  []types.WindowInfo    `json:"windows"`
}

// DumpSourceCommand dumps the UI elements and the window list of a device
func DumpSourceCommand(ctx context.Context, req DumpSourceRequest) *CommandResponse {
	targetDevice, err := FindDeviceOrAutoSelect(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %w", err))
	}

	elements, err := targetDevice.DumpSource(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to dump UI from device %s: %w", targetDevice.ID(), err))
	}

	windows, err := targetDevice.ListWindows(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to list windows on device %s: %w", targetDevice.ID(), err))
	}

	return NewSuccessResponse(DumpSourceResponse{
		Elements: elements,
		Windows:  windows,
	})
}
