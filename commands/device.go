package commands

import (
	"context"
	"fmt"

	"github.com/mobile-next/flicker/devices"
)

// DeviceRequest represents the parameters for commands that only need a device
type DeviceRequest struct {
	DeviceID string `json:"deviceId"`
}

// InfoCommand returns what is known about a single device
func InfoCommand(ctx context.Context, req DeviceRequest) *CommandResponse {
	targetDevice, err := FindDeviceOrAutoSelect(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %w", err))
	}

	return NewSuccessResponse(map[string]devices.DeviceInfo{
		"device": targetDevice.Info(),
	})
}

// RebootCommand reboots the specified device
func RebootCommand(ctx context.Context, req DeviceRequest) *CommandResponse {
	targetDevice, err := FindDeviceOrAutoSelect(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %w", err))
	}

	if err := targetDevice.Reboot(ctx); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to reboot device %s: %w", targetDevice.ID(), err))
	}

	// the adb session does not survive a reboot
	deviceCache.Remove(targetDevice.ID())

	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Reboot command processed for device %s", targetDevice.ID()),
	})
}
