//go:build debug

package mapoverlay

import (
	"log"
	"os"
)

// Debug logger instance
var logger = log.New(os.Stderr, "[mapoverlay DEBUG] ", log.LstdFlags)

// logDebugf writes a debug message to the debug logger.
func logDebugf(format string, v ...interface{}) {
	logger.Printf(format, v...)
}
