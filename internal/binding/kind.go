// Package binding maps configured physical controls to held/pressed state.
package binding

import "strings"

// Kind identifies the physical control a binding reads.
type Kind int

const (
	Unset Kind = iota
	Button
	POV0
	POV1
	POV2
	POV3
)

var kindNames = [...]string{
	Unset:  "",
	Button: "Button",
	POV0:   "POV0",
	POV1:   "POV1",
	POV2:   "POV2",
	POV3:   "POV3",
}

func (k Kind) String() string {
	if k < Unset || k > POV3 {
		return ""
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode to Unset.
func (k *Kind) UnmarshalText(text []byte) error {
	name := strings.TrimSpace(string(text))
	*k = Unset
	for i, n := range kindNames {
		if n != "" && strings.EqualFold(n, name) {
			*k = Kind(i)
			break
		}
	}
	return nil
}

// pov returns the hat index for POV kinds.
func (k Kind) pov() (int, bool) {
	if k >= POV0 && k <= POV3 {
		return int(k - POV0), true
	}
	return 0, false
}
