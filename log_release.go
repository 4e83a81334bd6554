//go:build !debug

package mapoverlay

// logDebugf is a no-op unless the debug build tag is set.
func logDebugf(string, ...interface{}) {}
