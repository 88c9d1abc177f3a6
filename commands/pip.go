package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mobile-next/flicker/automation"
	"github.com/mobile-next/flicker/helpers"
	"github.com/mobile-next/flicker/types"
	"github.com/mobile-next/flicker/utils"
)

// PipRequest represents the parameters for the pip commands
type PipRequest struct {
	DeviceID string `json:"deviceId"`
	// Package overrides the configured PiP test app package for enter, and
	// restricts status to that package's window.
	Package string `json:"package,omitempty"`
	// Launch starts the app before entering PiP.
	Launch bool `json:"launch,omitempty"`
}

// PipResponse represents the response for a pip command
type PipResponse struct {
	DeviceID  string            `json:"deviceId"`
	Package   string            `json:"package,omitempty"`
	Message   string            `json:"message,omitempty"`
	PipWindow *types.WindowInfo `json:"pipWindow,omitempty"`
}

func newPipHelper(req PipRequest) (*helpers.PipAppHelper, *automation.Utils) {
	pkg := req.Package
	if pkg == "" {
		pkg = cfg.PipAppPackage
	}

	checker := automation.New(cfg)
	app := helpers.NewStandardAppHelper(pkg, cfg.PipAppLauncher)
	return helpers.NewPipAppHelper(app, checker), checker
}

// saveFailureScreenshot stores a screenshot in the configured directory and
// returns its path, or "" when screenshots are disabled or fail.
func saveFailureScreenshot(ctx context.Context, device TargetDevice) string {
	if cfg.ScreenshotDir == "" {
		return ""
	}

	data, err := device.TakeScreenshot(ctx)
	if err != nil {
		utils.Warn("Failed to take failure screenshot on %s: %v", device.ID(), err)
		return ""
	}

	if err := os.MkdirAll(cfg.ScreenshotDir, 0o750); err != nil {
		utils.Warn("Failed to create screenshot dir %s: %v", cfg.ScreenshotDir, err)
		return ""
	}

	path := filepath.Join(cfg.ScreenshotDir, fmt.Sprintf("pip-failure-%s.png", uuid.NewString()))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		utils.Warn("Failed to write screenshot %s: %v", path, err)
		return ""
	}

	return path
}

func pipFailure(ctx context.Context, device TargetDevice, err error) *CommandResponse {
	if path := saveFailureScreenshot(ctx, device); path != "" {
		err = fmt.Errorf("%w (screenshot: %s)", err, path)
	}
	return NewErrorResponse(err)
}

// PipEnterCommand clicks the PiP app's enter button and waits for the PiP window
func PipEnterCommand(ctx context.Context, req PipRequest) *CommandResponse {
	device, err := resolveDevice(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %w", err))
	}

	pip, checker := newPipHelper(req)

	if req.Launch {
		// a test interrupted half way must not leave the app behind
		unregister := registerCleanup("stop "+pip.Package(), func() error {
			return pip.Exit(context.Background(), device)
		})
		defer unregister()

		if err := pip.Launch(ctx, device); err != nil {
			return NewErrorResponse(err)
		}
		if _, err := checker.WaitForObject(ctx, device, pip.EnterPipSelector()); err != nil {
			return pipFailure(ctx, device, fmt.Errorf("%s did not come up: %w", pip.LauncherName(), err))
		}
	}

	if err := pip.EnterPipMode(ctx, device); err != nil {
		return pipFailure(ctx, device, err)
	}

	return NewSuccessResponse(PipResponse{
		DeviceID: device.ID(),
		Package:  pip.Package(),
		Message:  fmt.Sprintf("Entered picture-in-picture on device %s", device.ID()),
	})
}

// PipCloseCommand dismisses the PiP window
func PipCloseCommand(ctx context.Context, req PipRequest) *CommandResponse {
	device, err := resolveDevice(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %w", err))
	}

	pip, _ := newPipHelper(req)
	if err := pip.ClosePipWindow(ctx, device); err != nil {
		return pipFailure(ctx, device, err)
	}

	return NewSuccessResponse(PipResponse{
		DeviceID: device.ID(),
		Message:  fmt.Sprintf("Closed picture-in-picture window on device %s", device.ID()),
	})
}

// PipExpandCommand returns the PiP app to full screen
func PipExpandCommand(ctx context.Context, req PipRequest) *CommandResponse {
	device, err := resolveDevice(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %w", err))
	}

	_, checker := newPipHelper(req)
	if err := checker.ExpandPipWindow(ctx, device); err != nil {
		return pipFailure(ctx, device, err)
	}

	return NewSuccessResponse(PipResponse{
		DeviceID: device.ID(),
		Message:  fmt.Sprintf("Expanded picture-in-picture window on device %s", device.ID()),
	})
}

// ownedBy reports whether window belongs to pkg; window titles start with
// "<package>/<activity>".
func ownedBy(window types.WindowInfo, pkg string) bool {
	return pkg == "" || strings.HasPrefix(window.Title, pkg+"/")
}

// PipStatusCommand reports the current PiP window, if any, without waiting.
// With req.Package set only that package's pinned window is reported.
func PipStatusCommand(ctx context.Context, req PipRequest) *CommandResponse {
	device, err := resolveDevice(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %w", err))
	}

	windows, err := device.ListWindows(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to list windows on device %s: %w", device.ID(), err))
	}

	response := PipResponse{DeviceID: device.ID(), Package: req.Package}
	for i := range windows {
		if windows[i].IsPinned() && ownedBy(windows[i], req.Package) {
			response.PipWindow = &windows[i]
			break
		}
	}

	return NewSuccessResponse(response)
}
