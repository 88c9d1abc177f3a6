package cli

var (
	verbose    bool
	configPath string
	adbPath    string

	// all device commands
	deviceId string

	// for screenshot command
	screenshotOutputPath string

	// for devices command
	showAllDevices bool

	// for pip commands
	pipPackage string
	pipLaunch  bool
)
