// Package autostart registers the bridge to start when the user logs in.
package autostart

import (
	"fmt"
	"os"
	"strings"
)

const appID = "headmouse"

// command returns the executable path followed by args, each quoted if it contains spaces.
func command(args []string) (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	parts := append([]string{execPath}, args...)
	for i, p := range parts {
		if strings.ContainsAny(p, " \t") {
			parts[i] = `"` + p + `"`
		}
	}
	return strings.Join(parts, " "), nil
}
