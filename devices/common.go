package devices

import (
	"context"
	"fmt"
	"sort"
)

// DeviceInfo represents the JSON-friendly device information
type DeviceInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Platform string `json:"platform"`
	Type     string `json:"type"`
	Version  string `json:"version,omitempty"`
	State    string `json:"state"`
}

// GetDeviceInfoList returns a list of DeviceInfo for all connected devices,
// online devices first.
func GetDeviceInfoList(ctx context.Context, adbPath string, showAll bool) ([]DeviceInfo, error) {
	devices, err := GetAndroidDevices(ctx, adbPath, showAll)
	if err != nil {
		return nil, fmt.Errorf("error getting devices: %w", err)
	}

	deviceInfoList := make([]DeviceInfo, len(devices))
	for i, d := range devices {
		deviceInfoList[i] = d.Info()
	}

	sort.SliceStable(deviceInfoList, func(i, j int) bool {
		return deviceInfoList[i].State == StateOnline && deviceInfoList[j].State != StateOnline
	})

	return deviceInfoList, nil
}
