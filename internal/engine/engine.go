// Package engine turns device samples and head poses into synthetic input events.
package engine

import (
	"math"

	"headmouse/internal/activation"
	"headmouse/internal/binding"
	"headmouse/internal/device"
	"headmouse/internal/input"
)

// DefaultSensitivity is the pointer distance per unit of head rotation.
const DefaultSensitivity = 50.0

// Config is the static configuration of an Engine.
type Config struct {
	Mode        activation.Mode
	Sensitivity float64
	Bindings    Bindings
}

// Engine owns all per-tick state. Tick calls must be serialized by the caller.
type Engine struct {
	cfg      Config
	bindings [roleCount]*binding.Binding
	policy   *activation.Policy

	last    Pose
	current Pose

	leftDown   bool
	rightDown  bool
	escapeDown bool
}

// New creates an engine. focus backs the AlwaysEnabled mode.
func New(cfg Config, focus activation.Focus) *Engine {
	e := &Engine{
		cfg:    cfg,
		policy: activation.NewPolicy(cfg.Mode, focus),
	}
	for _, r := range Roles() {
		e.bindings[r] = binding.New(cfg.Bindings[r])
	}
	return e
}

// Active reports whether mouse simulation was enabled on the last tick.
func (e *Engine) Active() bool { return e.policy.Active() }

// Mode returns the activation mode.
func (e *Engine) Mode() activation.Mode { return e.policy.Mode() }

// Binding returns the tracked binding for a role.
func (e *Engine) Binding(r Role) *binding.Binding { return e.bindings[r] }

// Tick advances all state by one frame and returns the events to inject:
// at most one mouse event followed by at most one key event.
func (e *Engine) Tick(sample device.Sample, pose Pose) []input.Event {
	e.last = e.current
	e.current = pose

	for _, b := range e.bindings {
		b.Update(sample)
	}
	active := e.policy.Update(e.bindings[ToggleMouse])

	var batch []input.Event
	if m := e.mouseEvent(active); !m.Empty() {
		batch = append(batch, input.MouseInput(m))
	}
	if k, ok := e.keyEvent(); ok {
		batch = append(batch, input.KeyInput(k))
	}
	return batch
}

func (e *Engine) mouseEvent(active bool) input.MouseEvent {
	var m input.MouseEvent
	left := e.bindings[MouseLeftClick]
	right := e.bindings[MouseRightClick]

	if active {
		if left.Pressed() {
			m.Flags |= input.MouseLeftDown
			e.leftDown = true
		}
		if right.Pressed() {
			m.Flags |= input.MouseRightDown
			e.rightDown = true
		}

		// Up is checked first, so it wins a same-tick tie.
		if e.bindings[MouseScrollUp].Pressed() {
			m.Flags |= input.MouseWheel
			m.WheelDelta = input.WheelUnit
		} else if e.bindings[MouseScrollDown].Pressed() {
			m.Flags |= input.MouseWheel
			m.WheelDelta = -input.WheelUnit
		}

		if e.last.Defined && e.current.Defined {
			s := e.cfg.Sensitivity
			m.DX = int(math.Round((e.last.Yaw - e.current.Yaw) * s))
			m.DY = int(math.Round((e.last.Pitch - e.current.Pitch) * s))
			m.Flags |= input.MouseMove
		}
	}

	// Buttons we pressed are released even if simulation was turned off meanwhile.
	if e.leftDown && !left.Held() {
		m.Flags |= input.MouseLeftUp
		e.leftDown = false
	}
	if e.rightDown && !right.Held() {
		m.Flags |= input.MouseRightUp
		e.rightDown = false
	}
	return m
}

func (e *Engine) keyEvent() (input.KeyEvent, bool) {
	esc := e.bindings[Escape]
	switch {
	case esc.Pressed():
		e.escapeDown = true
		return escapeEvent(true), true
	case e.escapeDown && !esc.Held():
		e.escapeDown = false
		return escapeEvent(false), true
	}
	return input.KeyEvent{}, false
}

// Release returns the events needed to let go of every button and key the
// engine currently holds down, and forgets them. Used before the engine is discarded.
func (e *Engine) Release() []input.Event {
	var batch []input.Event
	var m input.MouseEvent
	if e.leftDown {
		m.Flags |= input.MouseLeftUp
		e.leftDown = false
	}
	if e.rightDown {
		m.Flags |= input.MouseRightUp
		e.rightDown = false
	}
	if !m.Empty() {
		batch = append(batch, input.MouseInput(m))
	}
	if e.escapeDown {
		e.escapeDown = false
		batch = append(batch, input.KeyInput(escapeEvent(false)))
	}
	return batch
}

func escapeEvent(down bool) input.KeyEvent {
	return input.KeyEvent{Key: input.KeyEscape, ScanCode: input.ScanCodeEscape, Down: down}
}
