package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Default creates a plain logger for interactive use. It picks up the
// global level, so call Setup first.
func Default(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// Setup points the package-level charm logger at stderr and sets its level.
// Debug also turns on caller reporting.
func Setup(debug bool) {
	log.SetOutput(os.Stderr)
	if debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportCaller(true)
		return
	}
	log.SetLevel(log.InfoLevel)
	log.SetReportCaller(false)
}
