// Package input describes synthetic mouse and keyboard events and injects them into the OS.
package input

import (
	"errors"
	"fmt"
	"strings"
)

// WheelUnit is one wheel detent, matching WHEEL_DELTA on Windows.
const WheelUnit = 120

// MouseFlags is the set of actions a mouse event carries.
type MouseFlags uint32

const (
	MouseMove MouseFlags = 1 << iota
	MouseLeftDown
	MouseLeftUp
	MouseRightDown
	MouseRightUp
	MouseWheel
)

var flagNames = []struct {
	flag MouseFlags
	name string
}{
	{MouseMove, "move"},
	{MouseLeftDown, "leftdown"},
	{MouseLeftUp, "leftup"},
	{MouseRightDown, "rightdown"},
	{MouseRightUp, "rightup"},
	{MouseWheel, "wheel"},
}

// Has reports whether every flag in f2 is set.
func (f MouseFlags) Has(f2 MouseFlags) bool { return f&f2 == f2 }

func (f MouseFlags) String() string {
	var parts []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// MarshalText implements encoding.TextMarshaler.
func (f MouseFlags) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names are ignored.
func (f *MouseFlags) UnmarshalText(text []byte) error {
	*f = 0
	for _, part := range strings.Split(string(text), "|") {
		for _, fn := range flagNames {
			if fn.name == part {
				*f |= fn.flag
			}
		}
	}
	return nil
}

// MouseEvent is one combined mouse action: relative move, button transitions and wheel.
type MouseEvent struct {
	Flags      MouseFlags `json:"flags"`
	DX         int        `json:"dx"`
	DY         int        `json:"dy"`
	WheelDelta int        `json:"wheel,omitempty"`
}

// Empty reports whether injecting the event would do nothing.
func (m MouseEvent) Empty() bool {
	return m.Flags == 0 && m.DX == 0 && m.DY == 0 && m.WheelDelta == 0
}

// Key names a keyboard key the bridge can synthesize.
type Key string

// KeyEscape is the only key the bridge emits.
const KeyEscape Key = "escape"

// ScanCodeEscape is the set 1 scancode for Escape.
const ScanCodeEscape = 0x01

// KeyEvent presses or releases a key by physical scancode.
type KeyEvent struct {
	Key      Key    `json:"key"`
	ScanCode uint16 `json:"scancode"`
	Down     bool   `json:"down"`
}

// Event is either a mouse or a keyboard event.
type Event struct {
	Mouse *MouseEvent `json:"mouse,omitempty"`
	Key   *KeyEvent   `json:"key,omitempty"`
}

// MouseInput wraps a mouse event.
func MouseInput(m MouseEvent) Event { return Event{Mouse: &m} }

// KeyInput wraps a keyboard event.
func KeyInput(k KeyEvent) Event { return Event{Key: &k} }

func (e Event) String() string {
	switch {
	case e.Mouse != nil:
		s := fmt.Sprintf("mouse[%s]", e.Mouse.Flags)
		if e.Mouse.Flags.Has(MouseMove) {
			s += fmt.Sprintf(" d=%d,%d", e.Mouse.DX, e.Mouse.DY)
		}
		if e.Mouse.WheelDelta != 0 {
			s += fmt.Sprintf(" wheel=%d", e.Mouse.WheelDelta)
		}
		return s
	case e.Key != nil:
		if e.Key.Down {
			return fmt.Sprintf("key[%s down]", e.Key.Key)
		}
		return fmt.Sprintf("key[%s up]", e.Key.Key)
	}
	return "none"
}

// ErrPartialInjection is returned when the OS accepted fewer events than were sent.
var ErrPartialInjection = errors.New("input: not all events were injected")

// Injector delivers a batch of events to the OS in order.
type Injector interface {
	Inject(events []Event) error
}
