package devices

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mobile-next/flicker/types"
	"github.com/mobile-next/flicker/utils"
)

const (
	StateOnline  = "online"
	StateOffline = "offline"
)

// commandRunner executes an external command and returns its combined output.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// runCommand is swapped out by tests that need to fake adb.
var runCommand commandRunner = execCommand

// AndroidDevice is a session on one Android device or emulator, driven
// through adb. It is safe to pass around by pointer; nothing is cached
// between calls.
type AndroidDevice struct {
	id      string
	name    string
	version string
	state   string
	adbPath string
	run     commandRunner
}

type Option func(*AndroidDevice)

// WithAdbPath selects the adb binary, "adb" by default.
func WithAdbPath(path string) Option {
	return func(d *AndroidDevice) {
		if path != "" {
			d.adbPath = path
		}
	}
}

func WithName(name string) Option {
	return func(d *AndroidDevice) {
		d.name = name
	}
}

func WithVersion(version string) Option {
	return func(d *AndroidDevice) {
		d.version = version
	}
}

func WithState(state string) Option {
	return func(d *AndroidDevice) {
		d.state = state
	}
}

func withCommandRunner(run commandRunner) Option {
	return func(d *AndroidDevice) {
		d.run = run
	}
}

// NewAndroidDevice returns a session for the device with the given adb serial.
func NewAndroidDevice(id string, opts ...Option) *AndroidDevice {
	d := &AndroidDevice{
		id:      id,
		name:    id,
		state:   StateOnline,
		adbPath: "adb",
		run:     runCommand,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *AndroidDevice) ID() string {
	return d.id
}

func (d *AndroidDevice) Name() string {
	return d.name
}

func (d *AndroidDevice) Version() string {
	return d.version
}

func (d *AndroidDevice) State() string {
	return d.state
}

func (d *AndroidDevice) Platform() string {
	return "android"
}

// DeviceType returns "emulator" for emulator serials and for offline AVDs,
// "real" otherwise.
func (d *AndroidDevice) DeviceType() string {
	if strings.HasPrefix(d.id, "emulator-") || d.state == StateOffline {
		return "emulator"
	}
	return "real"
}

func (d *AndroidDevice) Info() DeviceInfo {
	return DeviceInfo{
		ID:       d.id,
		Name:     d.name,
		Platform: d.Platform(),
		Type:     d.DeviceType(),
		Version:  d.version,
		State:    d.state,
	}
}

func (d *AndroidDevice) runAdbCommand(ctx context.Context, args ...string) ([]byte, error) {
	if d.state == StateOffline {
		return nil, fmt.Errorf("device %s is offline", d.id)
	}

	cmdArgs := append([]string{"-s", d.id}, args...)
	utils.Verbose("Running %s %s", d.adbPath, strings.Join(cmdArgs, " "))
	return d.run(ctx, d.adbPath, cmdArgs...)
}

func (d *AndroidDevice) TakeScreenshot(ctx context.Context) ([]byte, error) {
	byteData, err := d.runAdbCommand(ctx, "exec-out", "screencap", "-p")
	if err != nil {
		return nil, fmt.Errorf("failed to take screenshot: %w", err)
	}

	return byteData, nil
}

func (d *AndroidDevice) LaunchApp(ctx context.Context, packageName string) error {
	output, err := d.runAdbCommand(ctx, "shell", "monkey", "-p", packageName, "-c", "android.intent.category.LAUNCHER", "1")
	if err != nil {
		return fmt.Errorf("failed to launch app %s: %w\nOutput: %s", packageName, err, string(output))
	}

	return nil
}

func (d *AndroidDevice) TerminateApp(ctx context.Context, packageName string) error {
	output, err := d.runAdbCommand(ctx, "shell", "am", "force-stop", packageName)
	if err != nil {
		return fmt.Errorf("failed to terminate app %s: %w\nOutput: %s", packageName, err, string(output))
	}

	return nil
}

// Reboot reboots the Android device/emulator using `adb reboot`.
func (d *AndroidDevice) Reboot(ctx context.Context) error {
	output, err := d.runAdbCommand(ctx, "reboot")
	if err != nil {
		return fmt.Errorf("failed to reboot %s: %w\nOutput: %s", d.id, err, string(output))
	}

	return nil
}

// Tap simulates a tap at (x, y) on the Android device.
func (d *AndroidDevice) Tap(ctx context.Context, x, y int) error {
	output, err := d.runAdbCommand(ctx, "shell", "input", "tap", strconv.Itoa(x), strconv.Itoa(y))
	if err != nil {
		return fmt.Errorf("failed to tap at (%d,%d): %w\nOutput: %s", x, y, err, string(output))
	}

	return nil
}

var keyMap = map[string]string{
	"HOME":        "KEYCODE_HOME",
	"BACK":        "KEYCODE_BACK",
	"VOLUME_UP":   "KEYCODE_VOLUME_UP",
	"VOLUME_DOWN": "KEYCODE_VOLUME_DOWN",
	"ENTER":       "KEYCODE_ENTER",
	"DPAD_CENTER": "KEYCODE_DPAD_CENTER",
	"DPAD_UP":     "KEYCODE_DPAD_UP",
	"DPAD_DOWN":   "KEYCODE_DPAD_DOWN",
	"DPAD_LEFT":   "KEYCODE_DPAD_LEFT",
	"DPAD_RIGHT":  "KEYCODE_DPAD_RIGHT",
	"BACKSPACE":   "KEYCODE_DEL",
	"APP_SWITCH":  "KEYCODE_APP_SWITCH",
	"POWER":       "KEYCODE_POWER",
	"WINDOW":      "KEYCODE_WINDOW",
}

func (d *AndroidDevice) PressButton(ctx context.Context, key string) error {
	keycode, exists := keyMap[strings.ToUpper(key)]
	if !exists {
		return fmt.Errorf("unsupported button key: %s", key)
	}

	output, err := d.runAdbCommand(ctx, "shell", "input", "keyevent", keycode)
	if err != nil {
		return fmt.Errorf("failed to press %s button: %w\nOutput: %s", key, err, string(output))
	}

	return nil
}

// FindObject returns the first on-screen element carrying the selector's
// resource id, or types.ErrElementNotFound.
func (d *AndroidDevice) FindObject(ctx context.Context, selector types.Selector) (*types.ScreenElement, error) {
	elements, err := d.DumpSource(ctx)
	if err != nil {
		return nil, err
	}

	for i := range elements {
		if selector.Matches(elements[i]) {
			return &elements[i], nil
		}
	}

	return nil, fmt.Errorf("%s: %w", selector, types.ErrElementNotFound)
}

// Click taps the centre of element.
func (d *AndroidDevice) Click(ctx context.Context, element *types.ScreenElement) error {
	if element == nil {
		return fmt.Errorf("cannot click a nil element")
	}
	if element.Rect.IsEmpty() {
		return fmt.Errorf("cannot click %s: element has no visible area", element.Type)
	}

	x, y := element.Rect.Center()
	return d.Tap(ctx, x, y)
}

func (d *AndroidDevice) getProp(ctx context.Context, name string) string {
	output, err := d.runAdbCommand(ctx, "shell", "getprop", name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}

// avdName asks a running emulator for the AVD it was started from.
func (d *AndroidDevice) avdName(ctx context.Context) string {
	output, err := d.runAdbCommand(ctx, "emu", "avd", "name")
	if err != nil {
		return ""
	}

	// the console answers with the name followed by an "OK" line
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && line != "OK" {
			return line
		}
	}
	return ""
}

// parseAdbDevicesOutput returns the serials of devices in the "device" state.
func parseAdbDevicesOutput(output string) []string {
	var serials []string

	lines := strings.Split(output, "\n")
	for i := 1; i < len(lines); i++ {
		parts := strings.Fields(strings.TrimSpace(lines[i]))
		if len(parts) >= 2 && parts[1] == "device" {
			serials = append(serials, parts[0])
		}
	}

	return serials
}

// GetAndroidDevices lists devices attached to adb. With includeOffline, AVDs
// that are not running are appended as offline emulators.
func GetAndroidDevices(ctx context.Context, adbPath string, includeOffline bool) ([]*AndroidDevice, error) {
	if adbPath == "" {
		adbPath = "adb"
	}

	output, err := runCommand(ctx, adbPath, "devices")
	if err != nil {
		return nil, fmt.Errorf("failed to run 'adb devices': %w", err)
	}

	var result []*AndroidDevice
	runningAVDs := make(map[string]bool)

	for _, serial := range parseAdbDevicesOutput(string(output)) {
		d := NewAndroidDevice(serial, WithAdbPath(adbPath))
		if model := d.getProp(ctx, "ro.product.model"); model != "" {
			d.name = model
		}
		d.version = d.getProp(ctx, "ro.build.version.release")

		if strings.HasPrefix(serial, "emulator-") {
			if avd := d.avdName(ctx); avd != "" {
				runningAVDs[avd] = true
			}
		}

		result = append(result, d)
	}

	if includeOffline {
		offline, err := getOfflineAndroidEmulators(runningAVDs)
		if err != nil {
			utils.Verbose("Failed to list offline emulators: %v", err)
		}
		for _, d := range offline {
			d.adbPath = adbPath
			result = append(result, d)
		}
	}

	return result, nil
}
