// Package config holds the settings shared by the device layer, the
// automation utilities and the CLI.
//
// Values start from the struct defaults, are then overlaid by an optional ini
// file and finally by command line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mcuadros/go-defaults"
	"gopkg.in/ini.v1"
)

// DefaultFileName is looked up under the user's home directory when no
// explicit config path is given.
const DefaultFileName = ".flicker.ini"

type Config struct {
	// AdbPath is the adb binary used for every device command.
	AdbPath string `ini:"adb_path" default:"adb"`

	// FindTimeout bounds every wait for an element or a window state.
	FindTimeout time.Duration `ini:"find_timeout" default:"10s"`

	// PollInterval is the delay between two probes while waiting.
	PollInterval time.Duration `ini:"poll_interval" default:"500ms"`

	SystemUIPackage string `ini:"systemui_package" default:"com.android.systemui"`

	// PipAppPackage and PipAppLauncher identify the flicker PiP test app.
	PipAppPackage  string `ini:"pip_app_package" default:"com.android.server.wm.flicker.testapp"`
	PipAppLauncher string `ini:"pip_app_launcher" default:"PipApp"`

	// ScreenshotDir receives a screenshot when a pip command fails. Empty
	// disables failure screenshots.
	ScreenshotDir string `ini:"screenshot_dir"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	defaults.SetDefaults(cfg)
	return cfg
}

// Load returns the defaults overlaid with the ini file at path. An empty path
// means ~/.flicker.ini, which is optional; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(homeDir, DefaultFileName)
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := file.Section("").MapTo(cfg); err != nil {
		return nil, fmt.Errorf("failed to map config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects settings the automation layer cannot work with.
func (c *Config) Validate() error {
	if c.AdbPath == "" {
		return fmt.Errorf("adb_path must not be empty")
	}
	if c.FindTimeout <= 0 {
		return fmt.Errorf("find_timeout must be positive, got %s", c.FindTimeout)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval)
	}
	if c.PollInterval > c.FindTimeout {
		return fmt.Errorf("poll_interval (%s) must not exceed find_timeout (%s)", c.PollInterval, c.FindTimeout)
	}
	if c.SystemUIPackage == "" {
		return fmt.Errorf("systemui_package must not be empty")
	}
	return nil
}
