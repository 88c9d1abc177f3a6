package devices

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/mobile-next/flicker/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dumpsysWindowsPinned = `WINDOW MANAGER WINDOWS (dumpsys window windows)
  Window #0 Window{5c0d2a0 u0 NavigationBar0}:
    mDisplayId=0 rootTaskId=1 mSession=Session{a2b1c4 1024:u0a10121} mClient=android.os.BinderProxy@1f2e3d
    mFullConfiguration={1.0 310mcc260mnc [en_US] ldltr sw411dp w411dp h914dp 420dpi nrml long port finger -keyb/v/h -nav/h winConfig={ mBounds=Rect(0, 0 - 1080, 2400) mAppBounds=Rect(0, 0 - 1080, 2400) mWindowingMode=fullscreen mDisplayWindowingMode=fullscreen mActivityType=undefined mAlwaysOnTop=undefined mRotation=ROTATION_0} s.6}
    Frames: parent=[0,0][1080,2400] display=[0,0][1080,2400] frame=[0,2274][1080,2400] last=[0,2274][1080,2400] insetsHint=[0,0][0,0]
  Window #1 Window{8f1e2d3 u0 com.example.pip/com.example.pip.PipActivity}:
    mDisplayId=0 rootTaskId=12 mSession=Session{4c3b2a1 5021:u0a10155} mClient=android.os.BinderProxy@9a8b7c
    mFullConfiguration={1.0 310mcc260mnc [en_US] ldltr sw411dp w411dp h914dp 420dpi nrml long port finger -keyb/v/h -nav/h winConfig={ mBounds=Rect(580, 1500 - 1040, 1758) mAppBounds=Rect(580, 1500 - 1040, 1758) mWindowingMode=pinned mDisplayWindowingMode=fullscreen mActivityType=standard mAlwaysOnTop=on mRotation=ROTATION_0} s.9}
    mLastReportedConfiguration={1.0 ... winConfig={ mBounds=Rect(0, 0 - 1080, 2400) mWindowingMode=fullscreen } s.8}
    Frames: parent=[580,1500][1040,1758] display=[0,0][1080,2400] frame=[580,1500][1040,1758] last=[580,1500][1040,1758] insetsHint=[0,0][0,0]
  Window #2 Window{1a2b3c4 u0 com.android.launcher3/com.android.launcher3.uioverrides.QuickstepLauncher}:
    mDisplayId=0 rootTaskId=1 mSession=Session{7d6e5f 2207:u0a10120}
    mFullConfiguration={... winConfig={ mBounds=Rect(0, 0 - 1080, 2400) mWindowingMode=fullscreen mDisplayWindowingMode=fullscreen} s.6}
    mFrame=[0,0][1080,2400] last=[0,0][1080,2400]
`

func TestParseDumpsysWindows(t *testing.T) {
	windows, err := parseDumpsysWindows(dumpsysWindowsPinned)
	require.NoError(t, err)
	require.Len(t, windows, 3)

	assert.Equal(t, types.WindowInfo{
		Token:         "5c0d2a0",
		Title:         "NavigationBar0",
		WindowingMode: "fullscreen",
		Frame:         types.ScreenElementRect{X: 0, Y: 2274, Width: 1080, Height: 126},
	}, windows[0])

	pip := windows[1]
	assert.Equal(t, "com.example.pip/com.example.pip.PipActivity", pip.Title)
	assert.True(t, pip.IsPinned())
	assert.Equal(t, types.ScreenElementRect{X: 580, Y: 1500, Width: 460, Height: 258}, pip.Frame)

	// older releases print mFrame instead of a Frames line
	assert.Equal(t, types.ScreenElementRect{X: 0, Y: 0, Width: 1080, Height: 2400}, windows[2].Frame)
	assert.False(t, windows[2].IsPinned())
}

func TestParseDumpsysWindows_Empty(t *testing.T) {
	for _, output := range []string{"", "WINDOW MANAGER WINDOWS (dumpsys window windows)\n"} {
		windows, err := parseDumpsysWindows(output)
		require.NoError(t, err)
		assert.Empty(t, windows)
	}
}

func TestAndroidDevice_ListWindows(t *testing.T) {
	adb := newFakeAdb()
	adb.responses["shell dumpsys window windows"] = dumpsysWindowsPinned
	d := newTestDevice(adb)

	windows, err := d.ListWindows(context.Background())
	require.NoError(t, err)
	assert.Len(t, windows, 3)
}

// oversizedWindowDump has a line past the scanner limit before the pinned window.
func oversizedWindowDump() string {
	return "WINDOW MANAGER WINDOWS (dumpsys window windows)\n" +
		"  Window #0 Window{aaa u0 big}:\n" +
		"    mAttrs=" + strings.Repeat("x", 2*1024*1024) + "\n" +
		"  Window #1 Window{bbb u0 com.example.pip/com.example.pip.PipActivity}:\n" +
		"    winConfig={ mWindowingMode=pinned }\n" +
		"    mFrame=[580,1500][1040,1758]\n"
}

func TestParseDumpsysWindows_LineTooLong(t *testing.T) {
	windows, err := parseDumpsysWindows(oversizedWindowDump())
	require.ErrorIs(t, err, bufio.ErrTooLong)
	assert.Nil(t, windows)
}

func TestAndroidDevice_ListWindows_ParseError(t *testing.T) {
	adb := newFakeAdb()
	adb.responses["shell dumpsys window windows"] = oversizedWindowDump()
	d := newTestDevice(adb)

	windows, err := d.ListWindows(context.Background())
	require.ErrorIs(t, err, bufio.ErrTooLong)
	assert.Contains(t, err.Error(), "failed to read window dump")
	assert.Nil(t, windows)
}
