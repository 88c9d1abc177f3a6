// Package automation holds the device-level building blocks shared by app
// helpers: polling waits on elements and windows, and the gestures that drive
// the SystemUI picture-in-picture menu.
package automation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mobile-next/flicker/config"
	"github.com/mobile-next/flicker/types"
	"github.com/mobile-next/flicker/utils"
)

// Resource names of the SystemUI PiP menu.
const (
	PipMenuDismiss = "dismiss"
	PipMenuExpand  = "expand_button"
)

var (
	ErrNoPipWindow      = errors.New("no picture-in-picture window")
	ErrPipWindowStillUp = errors.New("picture-in-picture window did not go away")
)

// Device is what the automation layer needs from a device session.
type Device interface {
	FindObject(ctx context.Context, selector types.Selector) (*types.ScreenElement, error)
	Click(ctx context.Context, element *types.ScreenElement) error
	Tap(ctx context.Context, x, y int) error
	ListWindows(ctx context.Context) ([]types.WindowInfo, error)
}

// Utils waits on and manipulates device UI state. The zero value is not
// usable; build it with New.
type Utils struct {
	findTimeout     time.Duration
	pollInterval    time.Duration
	systemUIPackage string
}

// New builds Utils from the timeouts and SystemUI package in cfg.
func New(cfg *config.Config) *Utils {
	return &Utils{
		findTimeout:     cfg.FindTimeout,
		pollInterval:    cfg.PollInterval,
		systemUIPackage: cfg.SystemUIPackage,
	}
}

// waitUntil probes cond right away and then every poll interval until it
// holds or the find timeout elapses. A timeout yields (false, nil); a probe
// error or the cancellation of ctx itself is returned as an error.
func (u *Utils) waitUntil(ctx context.Context, cond func(ctx context.Context) (bool, error)) (bool, error) {
	waitCtx, cancel := context.WithTimeout(ctx, u.findTimeout)
	defer cancel()

	ticker := time.NewTicker(u.pollInterval)
	defer ticker.Stop()

	for {
		ok, err := cond(waitCtx)
		if err != nil {
			if ctx.Err() == nil && waitCtx.Err() != nil {
				return false, nil
			}
			return false, err
		}
		if ok {
			return true, nil
		}

		select {
		case <-waitCtx.Done():
			if err := ctx.Err(); err != nil {
				return false, err
			}
			return false, nil
		case <-ticker.C:
		}
	}
}

// WaitForObject waits for an element matching selector to appear.
func (u *Utils) WaitForObject(ctx context.Context, dev Device, selector types.Selector) (*types.ScreenElement, error) {
	var found *types.ScreenElement
	ok, err := u.waitUntil(ctx, func(ctx context.Context) (bool, error) {
		element, err := dev.FindObject(ctx, selector)
		if errors.Is(err, types.ErrElementNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		found = element
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s did not appear within %s: %w", selector, u.findTimeout, types.ErrElementNotFound)
	}
	return found, nil
}

func pinnedWindow(windows []types.WindowInfo) (types.WindowInfo, bool) {
	for _, w := range windows {
		if w.IsPinned() {
			return w, true
		}
	}
	return types.WindowInfo{}, false
}

// HasPipWindow waits until the window manager reports a window in pinned
// mode. It returns false, without error, when none shows up in time.
func (u *Utils) HasPipWindow(ctx context.Context, dev Device) (bool, error) {
	ok, err := u.waitUntil(ctx, func(ctx context.Context) (bool, error) {
		windows, err := dev.ListWindows(ctx)
		if err != nil {
			return false, err
		}
		_, found := pinnedWindow(windows)
		return found, nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to check for pip window: %w", err)
	}

	utils.Verbose("Pip window present: %v", ok)
	return ok, nil
}

func (u *Utils) waitForNoPipWindow(ctx context.Context, dev Device) error {
	ok, err := u.waitUntil(ctx, func(ctx context.Context) (bool, error) {
		windows, err := dev.ListWindows(ctx)
		if err != nil {
			return false, err
		}
		_, found := pinnedWindow(windows)
		return !found, nil
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrPipWindowStillUp
	}
	return nil
}

// openPipMenu taps the pinned window so SystemUI shows its menu, then waits
// for the menu button named resName.
func (u *Utils) openPipMenu(ctx context.Context, dev Device, resName string) (*types.ScreenElement, error) {
	windows, err := dev.ListWindows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list windows: %w", err)
	}

	pip, found := pinnedWindow(windows)
	if !found {
		return nil, ErrNoPipWindow
	}
	if pip.Frame.IsEmpty() {
		return nil, fmt.Errorf("pip window %s has no frame", pip.Title)
	}

	x, y := pip.Frame.Center()
	utils.Verbose("Tapping pip window %s at (%d,%d)", pip.Title, x, y)
	if err := dev.Tap(ctx, x, y); err != nil {
		return nil, fmt.Errorf("failed to tap pip window: %w", err)
	}

	button, err := u.WaitForObject(ctx, dev, types.Res(u.systemUIPackage, resName))
	if err != nil {
		return nil, fmt.Errorf("pip menu did not show %s: %w", resName, err)
	}
	return button, nil
}

// ClosePipWindow dismisses the PiP window through the SystemUI PiP menu and
// waits for it to go away.
func (u *Utils) ClosePipWindow(ctx context.Context, dev Device) error {
	dismiss, err := u.openPipMenu(ctx, dev, PipMenuDismiss)
	if err != nil {
		return err
	}

	if err := dev.Click(ctx, dismiss); err != nil {
		return fmt.Errorf("failed to click pip dismiss button: %w", err)
	}

	return u.waitForNoPipWindow(ctx, dev)
}

// ExpandPipWindow brings the PiP activity back to full screen through the
// SystemUI PiP menu.
func (u *Utils) ExpandPipWindow(ctx context.Context, dev Device) error {
	expand, err := u.openPipMenu(ctx, dev, PipMenuExpand)
	if err != nil {
		return err
	}

	if err := dev.Click(ctx, expand); err != nil {
		return fmt.Errorf("failed to click pip expand button: %w", err)
	}

	return u.waitForNoPipWindow(ctx, dev)
}
