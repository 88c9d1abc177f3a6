package helpers

import (
	"context"
	"errors"
	"testing"

	"github.com/mobile-next/flicker/automation"
	"github.com/mobile-next/flicker/internal/testutil"
	"github.com/mobile-next/flicker/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChecker records calls instead of waiting on a device.
type fakeChecker struct {
	hasPip      bool
	hasPipErr   error
	closeErr    error
	hasPipCalls int
	closeCalls  int
	calls       *[]string
}

func (c *fakeChecker) HasPipWindow(_ context.Context, _ automation.Device) (bool, error) {
	c.hasPipCalls++
	if c.calls != nil {
		*c.calls = append(*c.calls, "hasPipWindow")
	}
	return c.hasPip, c.hasPipErr
}

func (c *fakeChecker) ClosePipWindow(_ context.Context, _ automation.Device) error {
	c.closeCalls++
	return c.closeErr
}

var buttonRect = types.ScreenElementRect{X: 100, Y: 200, Width: 400, Height: 100}

func newPipHelper(checker WindowStateChecker) *PipAppHelper {
	return NewPipAppHelper(NewStandardAppHelper("PipApp", "PipApp"), checker)
}

func TestEnterPipMode_ButtonPresent(t *testing.T) {
	dev := testutil.NewFakeDevice().Element("PipApp", "enter_pip", buttonRect)
	checker := &fakeChecker{hasPip: true}
	checker.calls = &dev.Calls

	err := newPipHelper(checker).EnterPipMode(context.Background(), dev)
	require.NoError(t, err)

	require.Len(t, dev.Clicks, 1)
	assert.Equal(t, "PipApp:id/enter_pip", dev.Clicks[0].ResourceID())
	assert.Equal(t, 1, checker.hasPipCalls)

	// click first, then the presence check
	assert.Equal(t, []string{"find PipApp:id/enter_pip", "click PipApp:id/enter_pip", "hasPipWindow"}, dev.Calls)
}

func TestEnterPipMode_ButtonAbsent(t *testing.T) {
	dev := testutil.NewFakeDevice().Element("com.other.app", "enter_pip", buttonRect)
	checker := &fakeChecker{hasPip: true}

	err := newPipHelper(checker).EnterPipMode(context.Background(), dev)
	require.ErrorIs(t, err, ErrPipButtonNotFound)
	assert.Contains(t, err.Error(), "Pip button not found")
	assert.Contains(t, err.Error(), "split screen")

	assert.Empty(t, dev.Clicks)
	assert.Equal(t, 0, checker.hasPipCalls)
}

func TestEnterPipMode_LookupFailure(t *testing.T) {
	dev := testutil.NewFakeDevice()
	dev.FindErr = errors.New("uiautomator dump failed")

	err := newPipHelper(&fakeChecker{}).EnterPipMode(context.Background(), dev)
	require.ErrorIs(t, err, dev.FindErr)
	assert.NotErrorIs(t, err, ErrPipButtonNotFound)
}

func TestEnterPipMode_NoPipWindow(t *testing.T) {
	dev := testutil.NewFakeDevice().Element("PipApp", "enter_pip", buttonRect)

	err := newPipHelper(&fakeChecker{hasPip: false}).EnterPipMode(context.Background(), dev)
	assert.ErrorIs(t, err, ErrPipWindowNotShown)
	assert.Len(t, dev.Clicks, 1)
}

func TestEnterPipMode_CheckerError(t *testing.T) {
	dev := testutil.NewFakeDevice().Element("PipApp", "enter_pip", buttonRect)
	checker := &fakeChecker{hasPipErr: errors.New("dumpsys failed")}

	err := newPipHelper(checker).EnterPipMode(context.Background(), dev)
	assert.ErrorIs(t, err, checker.hasPipErr)
}

func TestClosePipWindow_Delegates(t *testing.T) {
	for _, closeErr := range []error{nil, errors.New("menu did not show")} {
		dev := testutil.NewFakeDevice()
		checker := &fakeChecker{closeErr: closeErr}

		err := newPipHelper(checker).ClosePipWindow(context.Background(), dev)
		assert.Equal(t, closeErr, err)
		assert.Equal(t, 1, checker.closeCalls)
		assert.Empty(t, dev.Calls)
	}
}

func TestPipAppHelper_PackageIsFixed(t *testing.T) {
	h := newPipHelper(&fakeChecker{})

	assert.Equal(t, "PipApp", h.Package())
	assert.Equal(t, types.Selector{Package: "PipApp", ResourceName: "enter_pip"}, h.Selector("enter_pip"))
}
