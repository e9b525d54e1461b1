// Package osutils holds small OS queries used by the bridge.
package osutils

import (
	"path/filepath"
	"strings"
)

// Foreground reports whether the window owning keyboard focus belongs to the
// target process. An empty TargetProcess means this process.
type Foreground struct {
	TargetProcess string
}

// NewForeground returns a focus check for the named executable.
func NewForeground(target string) *Foreground {
	return &Foreground{TargetProcess: strings.TrimSpace(target)}
}

// matchesImage compares an executable path against the target by base name,
// ignoring case and a missing ".exe" suffix.
func matchesImage(imagePath, target string) bool {
	if target == "" || imagePath == "" {
		return false
	}
	base := strings.ToLower(filepath.Base(strings.ReplaceAll(imagePath, `\`, "/")))
	want := strings.ToLower(filepath.Base(strings.ReplaceAll(target, `\`, "/")))
	return base == want || strings.TrimSuffix(base, ".exe") == strings.TrimSuffix(want, ".exe")
}
