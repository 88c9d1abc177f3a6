package devices

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mobile-next/flicker/utils"
	"gopkg.in/ini.v1"
)

// avdInfo is what the emulator catalog under ~/.android/avd tells about one AVD.
type avdInfo struct {
	DisplayName string
	APILevel    string
	AvdID       string
}

// apiLevelToVersion maps Android API levels to version strings
var apiLevelToVersion = map[string]string{
	"36": "16.0",
	"35": "15.0",
	"34": "14.0",
	"33": "13.0",
	"32": "12.1", // Android 12L
	"31": "12.0",
	"30": "11.0",
	"29": "10.0",
	"28": "9.0",
	"27": "8.1",
	"26": "8.0",
}

func convertAPILevelToVersion(apiLevel string) string {
	if version, ok := apiLevelToVersion[apiLevel]; ok {
		return version
	}
	return apiLevel
}

// readAVDCatalog reads every <name>.ini under ~/.android/avd and the
// config.ini of the AVD directory it points to, keyed by AVD name.
func readAVDCatalog() (map[string]avdInfo, error) {
	catalog := make(map[string]avdInfo)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return catalog, err
	}

	matches, err := filepath.Glob(filepath.Join(homeDir, ".android", "avd", "*.ini"))
	if err != nil {
		return catalog, err
	}

	for _, pointerFile := range matches {
		avdName := strings.TrimSuffix(filepath.Base(pointerFile), ".ini")

		pointer, err := ini.Load(pointerFile)
		if err != nil {
			utils.Verbose("Failed to read %s: %v", pointerFile, err)
			continue
		}

		avdPath := pointer.Section("").Key("path").String()
		if avdPath == "" {
			continue
		}

		configPath := filepath.Join(avdPath, "config.ini")
		avdConfig, err := ini.Load(configPath)
		if err != nil {
			utils.Verbose("Failed to read %s: %v", configPath, err)
			continue
		}

		section := avdConfig.Section("")
		displayName := section.Key("avd.ini.displayname").String()
		if displayName == "" {
			continue
		}

		avdID := section.Key("AvdId").MustString(avdName)
		catalog[avdName] = avdInfo{
			DisplayName: displayName,
			APILevel:    strings.TrimPrefix(section.Key("target").String(), "android-"),
			AvdID:       avdID,
		}
	}

	return catalog, nil
}

// getOfflineAndroidEmulators returns the AVDs whose id is not in running.
func getOfflineAndroidEmulators(running map[string]bool) ([]*AndroidDevice, error) {
	catalog, err := readAVDCatalog()
	if err != nil {
		return nil, err
	}

	var offline []*AndroidDevice
	for avdName, info := range catalog {
		if running[info.AvdID] {
			continue
		}

		// display names look like "pixel_6 (Google)"
		name := info.DisplayName
		if idx := strings.Index(name, "("); idx > 0 {
			name = strings.TrimSpace(name[:idx])
		}
		name = strings.ReplaceAll(name, "_", " ")

		offline = append(offline, NewAndroidDevice(avdName,
			WithName(name),
			WithVersion(convertAPILevelToVersion(info.APILevel)),
			WithState(StateOffline),
		))
	}

	return offline, nil
}
