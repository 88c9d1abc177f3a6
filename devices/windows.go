package devices

import (
	"bufio"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/mobile-next/flicker/types"
)

var (
	windowHeaderRegexp  = regexp.MustCompile(`^\s*Window #\d+ Window\{([0-9a-f]+) u\d+ (.*)\}:\s*$`)
	windowingModeRegexp = regexp.MustCompile(`(?:^|[\s{,])m?[wW]indowingMode=([\w-]+)`)
	windowFrameRegexp   = regexp.MustCompile(`(?:^|\s)(?:mFrame|frame)=(\[-?\d+,-?\d+\]\[-?\d+,-?\d+\])`)
)

// parseDumpsysWindows extracts one WindowInfo per "Window #N" block of
// `dumpsys window windows`. Within a block the first windowing mode and the
// first frame win; later lines repeat them for other configurations.
func parseDumpsysWindows(output string) ([]types.WindowInfo, error) {
	var windows []types.WindowInfo
	var current *types.WindowInfo
	var haveMode, haveFrame bool

	flush := func() {
		if current != nil {
			windows = append(windows, *current)
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		if m := windowHeaderRegexp.FindStringSubmatch(line); m != nil {
			flush()
			current = &types.WindowInfo{Token: m[1], Title: m[2]}
			haveMode, haveFrame = false, false
			continue
		}

		if current == nil {
			continue
		}

		if !haveMode {
			if m := windowingModeRegexp.FindStringSubmatch(line); m != nil {
				current.WindowingMode = m[1]
				haveMode = true
			}
		}

		if !haveFrame {
			if m := windowFrameRegexp.FindStringSubmatch(line); m != nil {
				current.Frame = getScreenElementRect(m[1])
				haveFrame = true
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read window dump: %w", err)
	}
	flush()

	return windows, nil
}

// ListWindows returns the windows known to the window manager, top-most first.
func (d *AndroidDevice) ListWindows(ctx context.Context) ([]types.WindowInfo, error) {
	output, err := d.runAdbCommand(ctx, "shell", "dumpsys", "window", "windows")
	if err != nil {
		return nil, fmt.Errorf("failed to dump windows: %w\nOutput: %s", err, string(output))
	}

	windows, err := parseDumpsysWindows(string(output))
	if err != nil {
		return nil, fmt.Errorf("failed to parse windows on %s: %w", d.id, err)
	}

	return windows, nil
}
