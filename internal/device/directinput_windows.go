//go:build windows

package device

import (
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/sys/windows/registry"
)

// DirectInput keeps per-user joystick data under this key. The configurator
// stores the instance GUID found here, and winmm only knows the slot.
const privateProperties = `System\CurrentControlSet\Control\MediaProperties\PrivateProperties`

func vidPid(vendor, product uint16) string {
	return fmt.Sprintf("VID_%04X&PID_%04X", vendor, product)
}

// oemName returns the product name DirectInput shows for a vendor/product pair.
func oemName(vendor, product uint16) string {
	path := privateProperties + `\Joystick\OEM\` + vidPid(vendor, product)
	for _, root := range []registry.Key{registry.CURRENT_USER, registry.LOCAL_MACHINE} {
		k, err := registry.OpenKey(root, path, registry.QUERY_VALUE)
		if err != nil {
			continue
		}
		name, _, err := k.GetStringValue("OEMName")
		k.Close()
		if err == nil && name != "" {
			return name
		}
	}
	return ""
}

// instanceGUIDs returns the DirectInput instance GUIDs recorded for a
// vendor/product pair, ordered by calibration slot.
func instanceGUIDs(vendor, product uint16) []string {
	path := privateProperties + `\DirectInput\` + vidPid(vendor, product) + `\Calibration`
	k, err := registry.OpenKey(registry.CURRENT_USER, path, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return nil
	}
	defer k.Close()

	slots, err := k.ReadSubKeyNames(-1)
	if err != nil {
		return nil
	}
	sort.Slice(slots, func(i, j int) bool {
		a, _ := strconv.Atoi(slots[i])
		b, _ := strconv.Atoi(slots[j])
		return a < b
	})

	var guids []string
	for _, slot := range slots {
		sk, err := registry.OpenKey(k, slot, registry.QUERY_VALUE)
		if err != nil {
			continue
		}
		raw, _, err := sk.GetBinaryValue("GUID")
		sk.Close()
		if err != nil {
			continue
		}
		if g, ok := formatGUIDBytes(raw); ok {
			guids = append(guids, g)
		}
	}
	return guids
}
