package helpers

import (
	"context"
	"errors"
	"fmt"

	"github.com/mobile-next/flicker/automation"
	"github.com/mobile-next/flicker/types"
)

const enterPipResName = "enter_pip"

var (
	// ErrPipButtonNotFound aborts a test whose PiP app does not show its
	// enter button.
	ErrPipButtonNotFound = errors.New("Pip button not found, this usually happens when the device was left in an unknown state (e.g. in split screen)")

	// ErrPipWindowNotShown is returned when no PiP window appears after the
	// enter button was clicked.
	ErrPipWindowNotShown = errors.New("no pip window after clicking the enter pip button")
)

// WindowStateChecker observes and changes picture-in-picture window state.
// automation.Utils is the device-backed implementation.
type WindowStateChecker interface {
	HasPipWindow(ctx context.Context, dev automation.Device) (bool, error)
	ClosePipWindow(ctx context.Context, dev automation.Device) error
}

var _ WindowStateChecker = (*automation.Utils)(nil)

// PipAppHelper drives the PiP test app into and out of picture-in-picture.
type PipAppHelper struct {
	*StandardAppHelper
	checker WindowStateChecker
}

func NewPipAppHelper(app *StandardAppHelper, checker WindowStateChecker) *PipAppHelper {
	return &PipAppHelper{StandardAppHelper: app, checker: checker}
}

// EnterPipSelector locates the app's enter PiP button.
func (h *PipAppHelper) EnterPipSelector() types.Selector {
	return h.Selector(enterPipResName)
}

// EnterPipMode clicks the app's enter_pip button and waits for the PiP window.
func (h *PipAppHelper) EnterPipMode(ctx context.Context, dev automation.Device) error {
	button, err := h.FindObject(ctx, dev, enterPipResName)
	if errors.Is(err, types.ErrElementNotFound) {
		return ErrPipButtonNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", h.EnterPipSelector(), err)
	}

	if err := dev.Click(ctx, button); err != nil {
		return fmt.Errorf("failed to click enter pip button: %w", err)
	}

	ok, err := h.checker.HasPipWindow(ctx, dev)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPipWindowNotShown
	}
	return nil
}

// ClosePipWindow dismisses the PiP window.
func (h *PipAppHelper) ClosePipWindow(ctx context.Context, dev automation.Device) error {
	return h.checker.ClosePipWindow(ctx, dev)
}
