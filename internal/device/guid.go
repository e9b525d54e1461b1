package device

import (
	"encoding/binary"
	"fmt"
	"strings"
)

func formatGUID(vendor, product uint16) string {
	return fmt.Sprintf("{%04X%04X-0000-0000-0000-504944564944}", product, vendor)
}

func equalFoldGUID(a, b string) bool {
	trim := func(s string) string {
		return strings.Trim(strings.TrimSpace(s), "{}")
	}
	return strings.EqualFold(trim(a), trim(b))
}

// formatGUIDBytes formats a 16-byte Win32 GUID as stored in the registry.
func formatGUIDBytes(b []byte) (string, bool) {
	if len(b) != 16 {
		return "", false
	}
	return fmt.Sprintf("{%08X-%04X-%04X-%02X%02X-%02X%02X%02X%02X%02X%02X}",
		binary.LittleEndian.Uint32(b[0:4]),
		binary.LittleEndian.Uint16(b[4:6]),
		binary.LittleEndian.Uint16(b[6:8]),
		b[8], b[9], b[10], b[11], b[12], b[13], b[14], b[15]), true
}
