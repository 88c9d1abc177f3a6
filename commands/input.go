package commands

import (
	"context"
	"fmt"
)

// TapRequest represents the parameters for a tap command
type TapRequest struct {
	DeviceID string `json:"deviceId"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

// ButtonRequest represents the parameters for a button press command
type ButtonRequest struct {
	DeviceID string `json:"deviceId"`
	Button   string `json:"button"`
}

// TapCommand performs a tap operation on the specified device
func TapCommand(ctx context.Context, req TapRequest) *CommandResponse {
	if req.X < 0 || req.Y < 0 {
		return NewErrorResponse(fmt.Errorf("x and y coordinates must be non-negative, got x=%d, y=%d", req.X, req.Y))
	}

	targetDevice, err := FindDeviceOrAutoSelect(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %w", err))
	}

	if err := targetDevice.Tap(ctx, req.X, req.Y); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to tap on device %s: %w", targetDevice.ID(), err))
	}

	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Tapped on device %s at (%d,%d)", targetDevice.ID(), req.X, req.Y),
	})
}

// ButtonCommand presses a hardware button on the specified device. WINDOW
// sends KEYCODE_WINDOW, which puts a PiP-capable foreground app into PiP.
func ButtonCommand(ctx context.Context, req ButtonRequest) *CommandResponse {
	if req.Button == "" {
		return NewErrorResponse(fmt.Errorf("button name is required"))
	}

	targetDevice, err := FindDeviceOrAutoSelect(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %w", err))
	}

	if err := targetDevice.PressButton(ctx, req.Button); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to press button on device %s: %w", targetDevice.ID(), err))
	}

	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Pressed button '%s' on device %s", req.Button, targetDevice.ID()),
	})
}
