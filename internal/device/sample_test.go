package device

import "testing"

func TestReleasedCentersEveryHat(t *testing.T) {
	s := Released()
	for i, pov := range s.POV {
		if pov != POVCentered {
			t.Errorf("POV[%d] = %d, want centered", i, pov)
		}
	}
	for i, b := range s.Buttons {
		if b {
			t.Errorf("button %d pressed in released sample", i)
		}
	}
}

func TestHatAngle(t *testing.T) {
	tests := []struct {
		x, y int32
		want int
	}{
		{0, 0, POVCentered},
		{0, -1, 0},
		{1, -1, 4500},
		{1, 0, 9000},
		{1, 1, 13500},
		{0, 1, 18000},
		{-1, 1, 22500},
		{-1, 0, 27000},
		{-1, -1, 31500},
	}

	for _, tt := range tests {
		if got := HatAngle(tt.x, tt.y); got != tt.want {
			t.Errorf("HatAngle(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestMatchInfoPrefersGUID(t *testing.T) {
	devices := []Info{
		{ID: 0, Name: "Wheel", GUID: ProductGUID(0x046D, 0xC24F)},
		{ID: 1, Name: "Button Box", GUID: ProductGUID(0x1234, 0x5678)},
	}

	got, ok := matchInfo(devices, "{56781234-0000-0000-0000-504944564944}", "Wheel")
	if !ok || got.ID != 1 {
		t.Errorf("matchInfo by GUID = %+v, %v; want device 1", got, ok)
	}

	got, ok = matchInfo(devices, "{00000000-0000-0000-0000-000000000000}", "Wheel")
	if !ok || got.ID != 0 {
		t.Errorf("matchInfo name fallback = %+v, %v; want device 0", got, ok)
	}

	if _, ok := matchInfo(devices, "", "Missing"); ok {
		t.Error("matchInfo should not find an unknown device")
	}
}

func TestProductGUIDCaseInsensitiveMatch(t *testing.T) {
	if !equalFoldGUID(ProductGUID(0xabcd, 0x00ef), "00efabcd-0000-0000-0000-504944564944") {
		t.Error("GUID comparison should ignore braces and case")
	}
}

func TestHatStateFoldsEvents(t *testing.T) {
	var h hatState
	h.apply(evKey, codeBtnJoystick+3, 1)
	h.apply(evKey, codeBtnTriggerHappy1, 1)
	h.apply(evAbs, codeAbsHat0X+2, 1)  // hat 1 x
	h.apply(evAbs, codeAbsHat0X+3, -1) // hat 1 y
	h.apply(evKey, 0x1e, 1)            // KEY_A is ignored

	s := h.sample()
	if !s.Buttons[3] {
		t.Error("button 3 should be down")
	}
	if !s.Buttons[32] {
		t.Error("first trigger-happy button should map to index 32")
	}
	if s.POV[0] != POVCentered {
		t.Errorf("POV[0] = %d, want centered", s.POV[0])
	}
	if s.POV[1] != 4500 {
		t.Errorf("POV[1] = %d, want 4500", s.POV[1])
	}

	h.apply(evKey, codeBtnJoystick+3, 0)
	if h.sample().Buttons[3] {
		t.Error("button 3 should be released")
	}
}

func TestMatchInfoInstanceGUID(t *testing.T) {
	// Two identical sticks share a product GUID; the configurator saved the second one's instance GUID.
	product := ProductGUID(0x044F, 0xB10A)
	devices := []Info{
		{ID: 0, Name: "T.16000M", GUID: product, InstanceGUID: "{B3D4E0A0-1C2D-11EC-8001-444553540000}"},
		{ID: 1, Name: "T.16000M", GUID: product, InstanceGUID: "{C17A5E40-1C2D-11EC-8002-444553540000}"},
	}

	got, ok := matchInfo(devices, "{c17a5e40-1c2d-11ec-8002-444553540000}", "T.16000M")
	if !ok || got.ID != 1 {
		t.Errorf("matchInfo by instance GUID = %+v, %v; want device 1", got, ok)
	}

	got, ok = matchInfo(devices, product, "")
	if !ok || got.ID != 0 {
		t.Errorf("matchInfo by product GUID = %+v, %v; want device 0", got, ok)
	}

	got, ok = matchInfo(devices, "{D0000000-0000-0000-0000-000000000000}", " t.16000m ")
	if !ok || got.ID != 0 {
		t.Errorf("matchInfo unknown instance should fall back to name, got %+v, %v", got, ok)
	}
}

func TestFormatGUIDBytes(t *testing.T) {
	raw := []byte{0x61, 0x2B, 0x1D, 0x6F, 0xA0, 0xD5, 0xCF, 0x11, 0xBF, 0xC7, 0x44, 0x45, 0x53, 0x54, 0x00, 0x00}
	got, ok := formatGUIDBytes(raw)
	if !ok || got != "{6F1D2B61-D5A0-11CF-BFC7-444553540000}" {
		t.Errorf("formatGUIDBytes = %q, %v", got, ok)
	}
	if _, ok := formatGUIDBytes(raw[:8]); ok {
		t.Error("short value should be rejected")
	}
}

func TestControlCounts(t *testing.T) {
	keys := []int{0x1e, codeBtnJoystick, codeBtnJoystick + 11, codeBtnTriggerHappy1 + 3}
	abs := []int{0x00, 0x01, codeAbsHat0X, codeAbsHat0X + 1, codeAbsHat0X + 2}

	buttons, povs := controlCounts(keys, abs)
	if buttons != 36 || povs != 2 {
		t.Errorf("controlCounts = %d buttons %d povs, want 36 and 2", buttons, povs)
	}

	if (Info{}).CapabilitiesKnown() {
		t.Error("zero Info should report unknown capabilities")
	}
	if !(Info{Buttons: 12}).CapabilitiesKnown() {
		t.Error("Info with buttons should report known capabilities")
	}
}
