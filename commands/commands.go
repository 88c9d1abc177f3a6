package commands

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mobile-next/flicker/automation"
	"github.com/mobile-next/flicker/config"
	"github.com/mobile-next/flicker/devices"
	"github.com/mobile-next/flicker/helpers"
)

// CommandResponse represents a standardized response format for all commands
type CommandResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) *CommandResponse {
	return &CommandResponse{
		Status: "ok",
		Data:   data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(err error) *CommandResponse {
	return &CommandResponse{
		Status: "error",
		Error:  err.Error(),
	}
}

const deviceCacheSize = 16

// deviceCache keeps device sessions between lookups so repeated commands do
// not re-run `adb devices`.
var deviceCache *lru.Cache[string, *devices.AndroidDevice]

func init() {
	cache, err := lru.New[string, *devices.AndroidDevice](deviceCacheSize)
	if err != nil {
		panic(err)
	}
	deviceCache = cache
}

var (
	cfg          = config.Default()
	shutdownHook *devices.ShutdownHook

	// listDevices is replaced in tests.
	listDevices = devices.GetAndroidDevices
)

// SetConfig sets the configuration used by every command. It should be
// called once at startup, after flags are parsed.
func SetConfig(c *config.Config) {
	cfg = c
	deviceCache.Purge()
}

func GetConfig() *config.Config {
	return cfg
}

// SetShutdownHook sets the hook commands register interrupt cleanup with.
func SetShutdownHook(hook *devices.ShutdownHook) {
	shutdownHook = hook
}

// GetShutdownHook returns the current hook, or nil before SetShutdownHook.
func GetShutdownHook() *devices.ShutdownHook {
	return shutdownHook
}

// registerCleanup registers fn with the shutdown hook if there is one.
func registerCleanup(name string, fn func() error) func() {
	if shutdownHook == nil {
		return func() {}
	}
	return shutdownHook.Register(name, fn)
}

// TargetDevice is the device surface the pip, app and screenshot commands
// drive.
type TargetDevice interface {
	automation.Device
	helpers.AppController
	ID() string
	TakeScreenshot(ctx context.Context) ([]byte, error)
}

// resolveDevice finds or auto-selects the device a command targets; tests
// swap it for a fake.
var resolveDevice = func(ctx context.Context, deviceID string) (TargetDevice, error) {
	device, err := FindDeviceOrAutoSelect(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return device, nil
}

// FindDevice finds a device by ID, using cache when possible
func FindDevice(ctx context.Context, deviceID string) (*devices.AndroidDevice, error) {
	if deviceID == "" {
		return nil, fmt.Errorf("device ID is required")
	}

	if device, ok := deviceCache.Get(deviceID); ok {
		return device, nil
	}

	allDevices, err := listDevices(ctx, cfg.AdbPath, true)
	if err != nil {
		return nil, fmt.Errorf("error getting devices: %w", err)
	}

	for _, d := range allDevices {
		if d.ID() == deviceID {
			deviceCache.Add(deviceID, d)
			return d, nil
		}
	}

	return nil, fmt.Errorf("device not found: %s", deviceID)
}

// FindDeviceOrAutoSelect finds a device by ID, or auto-selects if deviceID is empty
func FindDeviceOrAutoSelect(ctx context.Context, deviceID string) (*devices.AndroidDevice, error) {
	if deviceID != "" {
		return FindDevice(ctx, deviceID)
	}

	allDevices, err := listDevices(ctx, cfg.AdbPath, false)
	if err != nil {
		return nil, fmt.Errorf("error getting devices: %w", err)
	}

	var onlineDevices []*devices.AndroidDevice
	for _, d := range allDevices {
		if d.State() == devices.StateOnline {
			onlineDevices = append(onlineDevices, d)
		}
	}

	if len(onlineDevices) == 0 {
		return nil, fmt.Errorf("no online devices found")
	}

	if len(onlineDevices) > 1 {
		return nil, fmt.Errorf("multiple devices found (%d), please specify --device with one of: %s", len(onlineDevices), getDeviceIDList(onlineDevices))
	}

	device := onlineDevices[0]
	if cached, ok := deviceCache.Get(device.ID()); ok {
		return cached, nil
	}
	deviceCache.Add(device.ID(), device)
	return device, nil
}

// getDeviceIDList returns a comma-separated list of device IDs for error messages
func getDeviceIDList(list []*devices.AndroidDevice) string {
	var ids []string
	for _, d := range list {
		ids = append(ids, d.ID())
	}
	return fmt.Sprintf("[%s]", strings.Join(ids, ", "))
}
