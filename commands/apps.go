package commands

import (
	"context"
	"fmt"
)

// AppRequest represents the parameters for app-related commands
type AppRequest struct {
	DeviceID    string `json:"deviceId"`
	PackageName string `json:"packageName"`
}

// LaunchAppCommand launches an app on the specified device
func LaunchAppCommand(ctx context.Context, req AppRequest) *CommandResponse {
	if req.PackageName == "" {
		return NewErrorResponse(fmt.Errorf("package name is required"))
	}

	targetDevice, err := resolveDevice(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %w", err))
	}

	if err := targetDevice.LaunchApp(ctx, req.PackageName); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to launch app on device %s: %w", targetDevice.ID(), err))
	}

	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Launched app '%s' on device %s", req.PackageName, targetDevice.ID()),
	})
}

// TerminateAppCommand terminates an app on the specified device
func TerminateAppCommand(ctx context.Context, req AppRequest) *CommandResponse {
	if req.PackageName == "" {
		return NewErrorResponse(fmt.Errorf("package name is required"))
	}

	targetDevice, err := resolveDevice(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %w", err))
	}

	if err := targetDevice.TerminateApp(ctx, req.PackageName); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to terminate app on device %s: %w", targetDevice.ID(), err))
	}

	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Terminated app '%s' on device %s", req.PackageName, targetDevice.ID()),
	})
}
