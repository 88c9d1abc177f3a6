package commands

import (
	"context"

	"github.com/mobile-next/flicker/devices"
)

// DevicesCommand lists all connected devices
func DevicesCommand(ctx context.Context, showAll bool) *CommandResponse {
	deviceInfoList, err := devices.GetDeviceInfoList(ctx, cfg.AdbPath, showAll)
	if err != nil {
		return NewErrorResponse(err)
	}

	return NewSuccessResponse(map[string]interface{}{
		"devices": deviceInfoList,
	})
}
