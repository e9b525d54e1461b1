package device

// Linux input event codes used to map evdev joysticks onto a Sample.
const (
	codeBtnJoystick      = 0x120
	codeBtnDigi          = 0x140
	codeBtnTriggerHappy1 = 0x2c0
	codeAbsHat0X         = 0x10
	codeAbsHat3Y         = 0x17
)

// buttonIndex maps an EV_KEY code to a Sample button index.
// BTN_JOYSTICK..BTN_GAMEPAD range fills 0-31, BTN_TRIGGER_HAPPY* fills the rest.
func buttonIndex(code uint16) (int, bool) {
	switch {
	case code >= codeBtnJoystick && code < codeBtnDigi:
		return int(code - codeBtnJoystick), true
	case code >= codeBtnTriggerHappy1 && int(code-codeBtnTriggerHappy1)+32 < MaxButtons:
		return int(code-codeBtnTriggerHappy1) + 32, true
	}
	return 0, false
}

// hatAxis maps an EV_ABS code to a hat number and axis (0 = x, 1 = y).
func hatAxis(code uint16) (hat, axis int, ok bool) {
	if code < codeAbsHat0X || code > codeAbsHat3Y {
		return 0, 0, false
	}
	n := int(code - codeAbsHat0X)
	return n / 2, n % 2, true
}

// controlCounts returns how many Sample buttons and hats the given
// EV_KEY and EV_ABS capability codes can drive.
func controlCounts(keys, abs []int) (buttons, povs int) {
	for _, code := range keys {
		if i, ok := buttonIndex(uint16(code)); ok && i+1 > buttons {
			buttons = i + 1
		}
	}
	for _, code := range abs {
		if hat, _, ok := hatAxis(uint16(code)); ok && hat+1 > povs {
			povs = hat + 1
		}
	}
	return buttons, povs
}

// hatState folds evdev key and hat events into a Sample.
type hatState struct {
	buttons [MaxButtons]bool
	hats    [MaxPOVs][2]int32
}

func (h *hatState) apply(evType, code uint16, value int32) {
	switch evType {
	case evKey:
		if i, ok := buttonIndex(code); ok {
			h.buttons[i] = value != 0
		}
	case evAbs:
		if hat, axis, ok := hatAxis(code); ok {
			h.hats[hat][axis] = value
		}
	}
}

func (h *hatState) sample() Sample {
	s := Sample{Buttons: h.buttons}
	for i, hat := range h.hats {
		s.POV[i] = HatAngle(hat[0], hat[1])
	}
	return s
}

const (
	evKey = 0x01
	evAbs = 0x03
)
