package activation

// Toggle is the binding that drives HoldToEnable and PressToToggle.
type Toggle interface {
	Held() bool
	Pressed() bool
}

// Focus reports whether the target application owns input focus.
type Focus interface {
	Focused() bool
}

// FocusFunc adapts a function to Focus.
type FocusFunc func() bool

// Focused calls f.
func (f FocusFunc) Focused() bool { return f() }

// Policy is the activation state machine. The mode is fixed for its lifetime.
type Policy struct {
	mode   Mode
	focus  Focus
	active bool
}

// NewPolicy returns an inactive policy. A nil focus counts as never focused.
func NewPolicy(mode Mode, focus Focus) *Policy {
	if focus == nil {
		focus = FocusFunc(func() bool { return false })
	}
	return &Policy{mode: mode, focus: focus}
}

// Mode returns the configured mode.
func (p *Policy) Mode() Mode { return p.mode }

// Active reports the state decided by the last Update.
func (p *Policy) Active() bool { return p.active }

// Update re-evaluates the state. toggle must already reflect the current tick.
func (p *Policy) Update(toggle Toggle) bool {
	switch p.mode {
	case AlwaysEnabled:
		p.active = p.focus.Focused()
	case HoldToEnable:
		p.active = toggle.Held()
	case PressToToggle:
		if toggle.Pressed() {
			p.active = !p.active
		}
	default:
		p.active = false
	}
	return p.active
}
