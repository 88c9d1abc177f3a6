package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ScreenshotRequest represents the parameters for taking a screenshot
type ScreenshotRequest struct {
	DeviceID   string `json:"deviceId"`
	OutputPath string `json:"outputPath,omitempty"` // file path, "-" for stdout, or empty for default naming
}

// ScreenshotResponse represents the response for a screenshot command
type ScreenshotResponse struct {
	Format   string `json:"format"`
	Data     string `json:"data,omitempty"`     // base64 encoded image data
	FilePath string `json:"filePath,omitempty"` // path where file was saved
}

// ScreenshotCommand takes a PNG screenshot of the specified device
func ScreenshotCommand(ctx context.Context, req ScreenshotRequest) *CommandResponse {
	targetDevice, err := resolveDevice(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %w", err))
	}

	imageBytes, err := targetDevice.TakeScreenshot(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error taking screenshot: %w", err))
	}

	response := ScreenshotResponse{Format: "png"}

	if req.OutputPath == "-" {
		response.Data = base64.StdEncoding.EncodeToString(imageBytes)
		return NewSuccessResponse(response)
	}

	finalPath := req.OutputPath
	if finalPath == "" {
		timestamp := time.Now().Format("20060102150405")
		safeDeviceID := strings.ReplaceAll(targetDevice.ID(), ":", "_")
		finalPath = fmt.Sprintf("screenshot-%s-%s.png", safeDeviceID, timestamp)
	}

	finalPath, err = filepath.Abs(finalPath)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("invalid output path: %w", err))
	}

	if err := os.WriteFile(finalPath, imageBytes, 0o600); err != nil {
		return NewErrorResponse(fmt.Errorf("error writing file: %w", err))
	}

	response.FilePath = finalPath
	return NewSuccessResponse(response)
}
