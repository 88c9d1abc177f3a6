package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mobile-next/flicker/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreenshotCommand_ToFile(t *testing.T) {
	dev := testutil.NewFakeDevice()
	dev.Screenshot = []byte("\x89PNG")
	useFakeDevice(t, dev)

	path := filepath.Join(t.TempDir(), "shot.png")
	response := ScreenshotCommand(context.Background(), ScreenshotRequest{OutputPath: path})
	require.Equal(t, "ok", response.Status, response.Error)
	assert.Equal(t, path, response.Data.(ScreenshotResponse).FilePath)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, dev.Screenshot, data)
}

func TestScreenshotCommand_Stdout(t *testing.T) {
	dev := testutil.NewFakeDevice()
	dev.Screenshot = []byte("png")
	useFakeDevice(t, dev)

	response := ScreenshotCommand(context.Background(), ScreenshotRequest{OutputPath: "-"})
	require.Equal(t, "ok", response.Status)
	assert.Equal(t, "cG5n", response.Data.(ScreenshotResponse).Data)
	assert.Empty(t, response.Data.(ScreenshotResponse).FilePath)
}
