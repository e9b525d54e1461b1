// Package device reads raw button and hat state from a physical joystick.
package device

import (
	"errors"
	"strings"
)

const (
	// MaxButtons is the number of buttons a Sample carries.
	MaxButtons = 128

	// MaxPOVs is the number of hat switches a Sample carries.
	MaxPOVs = 4

	// POVCentered marks a hat switch with no direction pressed.
	POVCentered = -1

	// POVFullCircle is one full turn in centidegrees.
	POVFullCircle = 36000
)

// ErrNotFound is returned by Open when no attached device matches.
var ErrNotFound = errors.New("device: no matching input device attached")

// Sample is one snapshot of a device's buttons and hats.
// POV values are centidegrees clockwise from north, or POVCentered.
type Sample struct {
	Buttons [MaxButtons]bool
	POV     [MaxPOVs]int
}

// Released returns a sample with every button up and every hat centered.
func Released() Sample {
	var s Sample
	for i := range s.POV {
		s.POV[i] = POVCentered
	}
	return s
}

// Info describes an attached device.
type Info struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	// GUID is the product GUID in DirectInput form, e.g. {028E045E-0000-0000-0000-504944564944}.
	GUID string `json:"guid"`
	// InstanceGUID is the DirectInput instance GUID when the platform records one.
	InstanceGUID string `json:"instance_guid,omitempty"`

	// Buttons and POVs count the controls the backend can report.
	// Both zero means unknown.
	Buttons int `json:"buttons"`
	POVs    int `json:"povs"`
}

// CapabilitiesKnown reports whether Buttons and POVs were filled in.
func (i Info) CapabilitiesKnown() bool {
	return i.Buttons > 0 || i.POVs > 0
}

// Source produces samples from one opened device.
type Source interface {
	Read() (Sample, error)
	Info() Info
	Close() error
}

// HatAngle converts a hat reported as a pair of axes into centidegrees.
// y is negative for up, x is negative for left.
func HatAngle(x, y int32) int {
	switch {
	case x == 0 && y < 0:
		return 0
	case x > 0 && y < 0:
		return 4500
	case x > 0 && y == 0:
		return 9000
	case x > 0 && y > 0:
		return 13500
	case x == 0 && y > 0:
		return 18000
	case x < 0 && y > 0:
		return 22500
	case x < 0 && y == 0:
		return 27000
	case x < 0 && y < 0:
		return 31500
	}
	return POVCentered
}

// ProductGUID formats a vendor/product pair the way DirectInput reports guidProduct.
func ProductGUID(vendor, product uint16) string {
	return formatGUID(vendor, product)
}

// matchInfo picks the device to open: instance GUID, then product GUID, then name.
func matchInfo(devices []Info, guid, name string) (Info, bool) {
	if guid != "" {
		for _, d := range devices {
			if d.InstanceGUID != "" && equalFoldGUID(d.InstanceGUID, guid) {
				return d, true
			}
		}
		for _, d := range devices {
			if equalFoldGUID(d.GUID, guid) {
				return d, true
			}
		}
	}
	if name = strings.TrimSpace(name); name != "" {
		for _, d := range devices {
			if strings.EqualFold(strings.TrimSpace(d.Name), name) {
				return d, true
			}
		}
	}
	return Info{}, false
}
