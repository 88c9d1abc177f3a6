package devices

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeAVD lays out ~/.android/avd/<name>.ini pointing to <name>.avd/config.ini.
func writeAVD(t *testing.T, home, name, config string) {
	t.Helper()

	avdDir := filepath.Join(home, ".android", "avd")
	dataDir := filepath.Join(avdDir, name+".avd")
	require.NoError(t, os.MkdirAll(dataDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(avdDir, name+".ini"), []byte("path="+dataDir+"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "config.ini"), []byte(config), 0o644))
}

func TestConvertAPILevelToVersion(t *testing.T) {
	tests := []struct {
		apiLevel string
		want     string
	}{
		{"36", "16.0"},
		{"32", "12.1"},
		{"30", "11.0"},
		// unknown API level returns as-is
		{"99", "99"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run("api_"+tt.apiLevel, func(t *testing.T) {
			assert.Equal(t, tt.want, convertAPILevelToVersion(tt.apiLevel))
		})
	}
}

func TestReadAVDCatalog(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	writeAVD(t, home, "Pixel_9_Pro", "avd.ini.displayname=Pixel 9 Pro\ntarget=android-36\nAvdId=Pixel_9_Pro\n")
	writeAVD(t, home, "broken", "target=android-31\n")

	catalog, err := readAVDCatalog()
	require.NoError(t, err)
	require.Len(t, catalog, 1)

	assert.Equal(t, avdInfo{DisplayName: "Pixel 9 Pro", APILevel: "36", AvdID: "Pixel_9_Pro"}, catalog["Pixel_9_Pro"])
}

func TestReadAVDCatalog_AvdIDDefaultsToName(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	writeAVD(t, home, "Tablet", "avd.ini.displayname=Tablet\ntarget=android-34\n")

	catalog, err := readAVDCatalog()
	require.NoError(t, err)
	assert.Equal(t, "Tablet", catalog["Tablet"].AvdID)
}

func TestGetOfflineAndroidEmulators(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	writeAVD(t, home, "TestEmu", "avd.ini.displayname=pixel_6 (Google)\ntarget=android-36\nAvdId=TestEmu\n")

	offline, err := getOfflineAndroidEmulators(map[string]bool{})
	require.NoError(t, err)
	require.Len(t, offline, 1)

	assert.Equal(t, "TestEmu", offline[0].ID())
	assert.Equal(t, "pixel 6", offline[0].Name())
	assert.Equal(t, StateOffline, offline[0].State())
	assert.Equal(t, "16.0", offline[0].Version())
	assert.Equal(t, "emulator", offline[0].DeviceType())

	// running emulators are not reported as offline
	offline, err = getOfflineAndroidEmulators(map[string]bool{"TestEmu": true})
	require.NoError(t, err)
	assert.Empty(t, offline)
}
