//go:build !windows

package input

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

var robotKeys = map[Key]string{
	KeyEscape: "esc",
}

// SystemInjector delivers events through robotgo.
type SystemInjector struct{}

// NewSystemInjector creates the robotgo injector.
func NewSystemInjector() *SystemInjector {
	return &SystemInjector{}
}

// Inject replays each event in order. robotgo has no batch call, so a failure
// part way through leaves the earlier events delivered.
func (i *SystemInjector) Inject(events []Event) error {
	for n, ev := range events {
		var err error
		switch {
		case ev.Mouse != nil:
			err = injectMouse(ev.Mouse)
		case ev.Key != nil:
			err = injectKey(ev.Key)
		}
		if err != nil {
			return fmt.Errorf("event %d of %d (%s): %v: %w", n+1, len(events), ev, err, ErrPartialInjection)
		}
	}
	return nil
}

func injectMouse(m *MouseEvent) error {
	if m.Flags.Has(MouseMove) && (m.DX != 0 || m.DY != 0) {
		robotgo.MoveRelative(m.DX, m.DY)
	}
	if m.Flags.Has(MouseLeftDown) {
		if err := robotgo.Toggle("left", "down"); err != nil {
			return err
		}
	}
	if m.Flags.Has(MouseRightDown) {
		if err := robotgo.Toggle("right", "down"); err != nil {
			return err
		}
	}
	if m.Flags.Has(MouseWheel) && m.WheelDelta != 0 {
		robotgo.Scroll(0, m.WheelDelta/WheelUnit)
	}
	if m.Flags.Has(MouseLeftUp) {
		if err := robotgo.Toggle("left", "up"); err != nil {
			return err
		}
	}
	if m.Flags.Has(MouseRightUp) {
		if err := robotgo.Toggle("right", "up"); err != nil {
			return err
		}
	}
	return nil
}

func injectKey(k *KeyEvent) error {
	name, ok := robotKeys[k.Key]
	if !ok {
		return fmt.Errorf("no robotgo key for %q", k.Key)
	}
	state := "up"
	if k.Down {
		state = "down"
	}
	return robotgo.KeyToggle(name, state)
}
