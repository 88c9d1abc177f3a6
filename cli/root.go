package cli

import (
	"encoding/json"
	"fmt"

	"github.com/mobile-next/flicker/commands"
	"github.com/mobile-next/flicker/config"
	"github.com/mobile-next/flicker/utils"
	"github.com/spf13/cobra"
)

const version = "dev"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "flicker",
	Short: "Picture-in-picture helper for Android window manager tests",
	Long:  `Drives the PiP test app on Android devices and emulators: enter, close and expand picture-in-picture windows over adb.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// loadConfig applies the config file and then the flags on top of it.
func loadConfig(cmd *cobra.Command, args []string) error {
	utils.SetVerbose(verbose)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if flag := cmd.Flag("adb"); flag != nil && flag.Changed {
		cfg.AdbPath = adbPath
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	utils.Verbose("Using adb %s, find timeout %s", cfg.AdbPath, cfg.FindTimeout)
	commands.SetConfig(cfg)
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to an ini config file (default ~/"+config.DefaultFileName+")")
	rootCmd.PersistentFlags().StringVar(&adbPath, "adb", "", "path to the adb binary")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// printJson is a helper function to print JSON responses
func printJson(data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		utils.Logger().Fatal(err)
	}
	fmt.Println(string(jsonData))
}

// printResponse prints response and turns an error response into an error
func printResponse(response *commands.CommandResponse) error {
	printJson(response)
	if response.Status == "error" {
		return fmt.Errorf("%s", response.Error)
	}
	return nil
}
