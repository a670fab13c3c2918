// Package logger provides leveled, printf-style logging for the SDK.
// Debug output is disabled unless DEX_DEBUG is set; Warn and Error always print.
package logger

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

var debugEnabled atomic.Bool

func init() {
	if os.Getenv("DEX_DEBUG") != "" {
		debugEnabled.Store(true)
	}
}

// SetDebug toggles debug output at runtime, overriding the DEX_DEBUG env var.
func SetDebug(enabled bool) {
	debugEnabled.Store(enabled)
}

// Debug prints a debug-level message when debug output is enabled.
func Debug(format string, args ...interface{}) {
	if !debugEnabled.Load() {
		return
	}
	log.Printf("[DEBUG] %s", fmt.Sprintf(format, args...))
}

// Warn prints a warning-level message.
func Warn(format string, args ...interface{}) {
	log.Printf("[WARN] %s", fmt.Sprintf(format, args...))
}

// Error prints an error-level message.
func Error(format string, args ...interface{}) {
	log.Printf("[ERROR] %s", fmt.Sprintf(format, args...))
}
