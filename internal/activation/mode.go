// Package activation decides when simulated mouse output is enabled.
package activation

import "strings"

// Mode selects how mouse simulation is turned on.
type Mode int

const (
	AlwaysDisabled Mode = iota
	AlwaysEnabled
	HoldToEnable
	PressToToggle
)

var modeNames = [...]string{
	AlwaysDisabled: "AlwaysDisabled",
	AlwaysEnabled:  "AlwaysEnabled",
	HoldToEnable:   "HoldToEnable",
	PressToToggle:  "PressToToggle",
}

func (m Mode) String() string {
	if m < AlwaysDisabled || m > PressToToggle {
		return modeNames[AlwaysDisabled]
	}
	return modeNames[m]
}

// UsesBinding reports whether the mode reads the toggle binding.
func (m Mode) UsesBinding() bool {
	return m == HoldToEnable || m == PressToToggle
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode to AlwaysDisabled.
func (m *Mode) UnmarshalText(text []byte) error {
	name := strings.TrimSpace(string(text))
	*m = AlwaysDisabled
	for i, n := range modeNames {
		if strings.EqualFold(n, name) {
			*m = Mode(i)
			break
		}
	}
	return nil
}
