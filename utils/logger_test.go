package utils

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetVerbose_And_IsVerbose(t *testing.T) {
	// save original state and restore after test
	original := IsVerbose()
	defer SetVerbose(original)

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestVerbose_OnlyWritesWhenEnabled(t *testing.T) {
	original := IsVerbose()
	defer SetVerbose(original)

	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	SetVerbose(false)
	Verbose("hidden %s", "message")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Verbose("shown %s %d", "message", 42)
	assert.Contains(t, buf.String(), "shown message 42")
	assert.Contains(t, buf.String(), "level=debug")
}

func TestInfo_WritesAtInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	Info("test info %s", "message")
	assert.Contains(t, buf.String(), "level=info")
	assert.Contains(t, buf.String(), "test info message")
}
