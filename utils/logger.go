package utils

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

var logger = newLogger(os.Stderr)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
	})
	return l
}

// Logger returns the process-wide logger, for callers that want fields.
func Logger() *logrus.Logger {
	return logger
}

// SetOutput redirects log output, mostly for tests.
func SetOutput(out io.Writer) {
	logger.SetOutput(out)
}

func SetVerbose(verbose bool) {
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

func IsVerbose() bool {
	return logger.IsLevelEnabled(logrus.DebugLevel)
}

func Verbose(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

func Info(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

func Warn(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}
