//go:build !windows

package osutils

// Focused always reports true; there is no portable foreground query.
func (f *Foreground) Focused() bool {
	return true
}

// IsAdmin is a stub for non-Windows platforms
func IsAdmin() bool {
	return false
}
