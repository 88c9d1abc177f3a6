package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/mobile-next/flicker/cli"
	"github.com/mobile-next/flicker/commands"
	"github.com/mobile-next/flicker/devices"
	"github.com/mobile-next/flicker/utils"
)

// printError writes err to stderr, in red when stderr is a terminal.
func printError(err error) {
	_, _ = color.New(color.FgRed).Fprintln(os.Stderr, err)
}

func main() {
	// cleanup for apps a command launched, run if we get interrupted
	hook := devices.NewShutdownHook()
	commands.SetShutdownHook(hook)

	// setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// run command in goroutine
	done := make(chan error, 1)
	go func() {
		done <- cli.Execute()
	}()

	// wait for command completion or signal
	select {
	case sig := <-sigChan:
		utils.Info("Received %s, cleaning up", sig)
		if err := hook.Shutdown(); err != nil {
			printError(err)
			os.Exit(1)
		}
		os.Exit(0)
	case err := <-done:
		if err != nil {
			printError(err)
			os.Exit(1)
		}
	}
}
