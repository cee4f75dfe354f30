package logger

import (
	"strings"

	"github.com/fatih/color" // Colored console output for log levels and stage banners
)

// Colorized printing functions for the different log levels, built on fatih/color.
// These are package-level variables holding functions that behave like fmt.Printf,
// but with text colored appropriately for the log level.

// Info logs informational messages in green color.
// Green is used for success or normal progress output.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn logs warning messages in bright magenta color.
// Used for tolerated failures and reminders that need the user's attention.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error logs error messages in red color.
var Error = color.New(color.FgRed).PrintfFunc()

// Debug logs debug messages in cyan color if enabled, otherwise is a no-op.
// It is assigned during Init based on the debug flag so disabled debug logging
// costs nothing at the call sites.
var Debug func(format string, a ...any)

// banner renders the stage separators and titles in bold cyan.
var banner = color.New(color.FgCyan, color.Bold)

// bannerWidth is the width of the separator lines printed around stage titles.
const bannerWidth = 50

func init() {
	// Safe default so Debug is callable even if Init was never run.
	Debug = func(format string, a ...any) {}
}

// Init initializes the logger package, enabling or disabling debug logging.
// When enabled, Debug prints messages in cyan; when disabled it is a no-op.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		Debug = func(format string, a ...any) {}
	}
}

// Banner prints a fixed-width separator line, the message, and another
// separator to standard output. The orchestrator calls it before each
// provisioning stage so stage boundaries stay visually distinguishable.
func Banner(message string) {
	line := strings.Repeat("=", bannerWidth)
	banner.Println(line)
	banner.Println(message)
	banner.Println(line)
}
