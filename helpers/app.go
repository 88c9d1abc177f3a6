// Package helpers drives the test applications used by window manager flicker
// tests. Helpers hold only the identity of their app; the device session is
// passed in on every call and never retained.
package helpers

import (
	"context"
	"fmt"

	"github.com/mobile-next/flicker/automation"
	"github.com/mobile-next/flicker/types"
	"github.com/mobile-next/flicker/utils"
)

// AppController starts and stops applications on a device.
type AppController interface {
	LaunchApp(ctx context.Context, packageName string) error
	TerminateApp(ctx context.Context, packageName string) error
}

// StandardAppHelper knows an app by package and launcher name and provides
// the generic actions every test app supports.
type StandardAppHelper struct {
	pkg          string
	launcherName string
}

func NewStandardAppHelper(pkg, launcherName string) *StandardAppHelper {
	return &StandardAppHelper{pkg: pkg, launcherName: launcherName}
}

func (h *StandardAppHelper) Package() string {
	return h.pkg
}

func (h *StandardAppHelper) LauncherName() string {
	return h.launcherName
}

// Selector returns a selector for resName inside this app's package.
func (h *StandardAppHelper) Selector(resName string) types.Selector {
	return types.Res(h.pkg, resName)
}

// FindObject looks up the element resName of this app on screen.
func (h *StandardAppHelper) FindObject(ctx context.Context, dev automation.Device, resName string) (*types.ScreenElement, error) {
	return dev.FindObject(ctx, h.Selector(resName))
}

// Launch starts the app's launcher activity.
func (h *StandardAppHelper) Launch(ctx context.Context, dev AppController) error {
	utils.Verbose("Launching %s (%s)", h.launcherName, h.pkg)
	if err := dev.LaunchApp(ctx, h.pkg); err != nil {
		return fmt.Errorf("failed to launch %s: %w", h.launcherName, err)
	}
	return nil
}

// Exit force-stops the app.
func (h *StandardAppHelper) Exit(ctx context.Context, dev AppController) error {
	utils.Verbose("Stopping %s (%s)", h.launcherName, h.pkg)
	if err := dev.TerminateApp(ctx, h.pkg); err != nil {
		return fmt.Errorf("failed to stop %s: %w", h.launcherName, err)
	}
	return nil
}
