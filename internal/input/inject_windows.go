//go:build windows

package input

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32             = windows.NewLazySystemDLL("user32.dll")
	procSendInput      = user32.NewProc("SendInput")
	procMapVirtualKeyW = user32.NewProc("MapVirtualKeyW")
)

const (
	inputMouse    = 0
	inputKeyboard = 1

	mouseeventfMove      = 0x0001
	mouseeventfLeftDown  = 0x0002
	mouseeventfLeftUp    = 0x0004
	mouseeventfRightDown = 0x0008
	mouseeventfRightUp   = 0x0010
	mouseeventfWheel     = 0x0800

	keyeventfKeyUp    = 0x0002
	keyeventfScanCode = 0x0008

	vkEscape     = 0x1B
	mapvkVkToVsc = 0
)

type mouseInput struct {
	Dx          int32
	Dy          int32
	MouseData   uint32
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

type keybdInput struct {
	WVk         uint16
	WScan       uint16
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

// rawInput has the size of the Win32 INPUT union, which MOUSEINPUT fills.
type rawInput struct {
	Type uint32
	Mi   mouseInput
}

type rawKeyInput struct {
	Type uint32
	Ki   keybdInput
	_    [8]byte // pad to sizeof(INPUT)
}

var virtualKeys = map[Key]uint32{
	KeyEscape: vkEscape,
}

// SystemInjector delivers events with user32 SendInput.
type SystemInjector struct{}

// NewSystemInjector creates the SendInput injector.
func NewSystemInjector() *SystemInjector {
	return &SystemInjector{}
}

// Inject sends the whole batch in one SendInput call.
func (i *SystemInjector) Inject(events []Event) error {
	if len(events) == 0 {
		return nil
	}

	inputs := make([]rawInput, 0, len(events))
	for _, ev := range events {
		switch {
		case ev.Mouse != nil:
			inputs = append(inputs, rawInput{
				Type: inputMouse,
				Mi: mouseInput{
					Dx:        int32(ev.Mouse.DX),
					Dy:        int32(ev.Mouse.DY),
					MouseData: uint32(int32(ev.Mouse.WheelDelta)),
					DwFlags:   win32MouseFlags(ev.Mouse.Flags),
				},
			})
		case ev.Key != nil:
			k := rawKeyInput{
				Type: inputKeyboard,
				Ki: keybdInput{
					WScan:   scanCode(ev.Key),
					DwFlags: keyeventfScanCode,
				},
			}
			if !ev.Key.Down {
				k.Ki.DwFlags |= keyeventfKeyUp
			}
			inputs = append(inputs, *(*rawInput)(unsafe.Pointer(&k)))
		}
	}

	sent, _, callErr := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if int(sent) != len(inputs) {
		return fmt.Errorf("SendInput sent %d of %d (%v): %w", sent, len(inputs), callErr, ErrPartialInjection)
	}
	return nil
}

func win32MouseFlags(f MouseFlags) uint32 {
	var out uint32
	if f.Has(MouseMove) {
		out |= mouseeventfMove
	}
	if f.Has(MouseLeftDown) {
		out |= mouseeventfLeftDown
	}
	if f.Has(MouseLeftUp) {
		out |= mouseeventfLeftUp
	}
	if f.Has(MouseRightDown) {
		out |= mouseeventfRightDown
	}
	if f.Has(MouseRightUp) {
		out |= mouseeventfRightUp
	}
	if f.Has(MouseWheel) {
		out |= mouseeventfWheel
	}
	return out
}

// scanCode asks the active layout for the key's scancode.
func scanCode(k *KeyEvent) uint16 {
	if vk, ok := virtualKeys[k.Key]; ok {
		if sc, _, _ := procMapVirtualKeyW.Call(uintptr(vk), mapvkVkToVsc); sc != 0 {
			return uint16(sc)
		}
	}
	return k.ScanCode
}
