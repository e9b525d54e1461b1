//go:build !windows && !linux

package device

import (
	"fmt"
	"runtime"
)

// List is not supported on this platform.
func List() ([]Info, error) {
	return nil, fmt.Errorf("joystick input not supported on %s", runtime.GOOS)
}

// Open is not supported on this platform.
func Open(guid, name string) (Source, error) {
	return nil, fmt.Errorf("joystick input not supported on %s", runtime.GOOS)
}
