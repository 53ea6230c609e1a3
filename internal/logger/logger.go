package logger

import (
	"github.com/fatih/color"
)

// Colorized printing functions for the different log levels, built on
// fatih/color. These are package-level variables holding functions that
// behave like fmt.Printf, but with text colored for the log level.

// Info logs informational messages in green color.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn logs warning messages in bright magenta color.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error logs error messages in red color.
var Error = color.New(color.FgRed).PrintfFunc()

// Debug logs debug messages in cyan color if enabled, otherwise is a no-op.
// It is assigned during Init based on the debug flag.
var Debug = func(format string, a ...any) {}

// Init enables or disables debug logging. When enabled, Debug prints
// cyan-colored messages; when disabled it stays a no-op.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		Debug = func(format string, a ...any) {}
	}
}
