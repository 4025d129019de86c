package logging

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// debugLog backs Debugf and Debugln for code that has no injected logger.
var debugLog = &logrus.Logger{
	Out:       os.Stderr,
	Formatter: &logrus.TextFormatter{DisableTimestamp: true},
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.DebugLevel,
}

// DebugEnabled returns true if debug mode is enabled via KB_DEBUG
func DebugEnabled() bool {
	v := os.Getenv("KB_DEBUG")
	if v == "" {
		return false
	}
	on, err := strconv.ParseBool(v)
	return err != nil || on
}

// Debugf logs a formatted debug line only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		debugLog.Debugf(format, args...)
	}
}

// Debugln logs a debug line only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		debugLog.Debugln(args...)
	}
}
