package activation

import (
	"encoding/json"
	"testing"
)

type fakeToggle struct {
	held, pressed bool
}

func (f fakeToggle) Held() bool    { return f.held }
func (f fakeToggle) Pressed() bool { return f.pressed }

var (
	idle    = fakeToggle{}
	press   = fakeToggle{held: true, pressed: true}
	holding = fakeToggle{held: true}
)

func TestAlwaysDisabled(t *testing.T) {
	p := NewPolicy(AlwaysDisabled, FocusFunc(func() bool { return true }))
	for _, in := range []fakeToggle{press, holding, idle} {
		if p.Update(in) {
			t.Errorf("AlwaysDisabled became active for %+v", in)
		}
	}
}

func TestAlwaysEnabledTracksFocus(t *testing.T) {
	focused := false
	p := NewPolicy(AlwaysEnabled, FocusFunc(func() bool { return focused }))

	steps := []struct {
		focused bool
		toggle  fakeToggle
	}{
		{false, press},
		{true, idle},
		{true, press},
		{false, holding},
		{true, holding},
	}
	for i, st := range steps {
		focused = st.focused
		if got := p.Update(st.toggle); got != st.focused {
			t.Errorf("step %d: active = %v, want %v", i, got, st.focused)
		}
	}
}

func TestNilFocusIsNeverFocused(t *testing.T) {
	p := NewPolicy(AlwaysEnabled, nil)
	if p.Update(press) {
		t.Error("nil focus should never activate")
	}
}

func TestHoldToEnableHasNoMemory(t *testing.T) {
	p := NewPolicy(HoldToEnable, nil)
	for i, in := range []fakeToggle{idle, press, holding, holding, idle, press, idle} {
		if got := p.Update(in); got != in.held {
			t.Errorf("step %d: active = %v, want %v", i, got, in.held)
		}
	}
}

func TestPressToToggleFlipsOncePerEdge(t *testing.T) {
	p := NewPolicy(PressToToggle, nil)

	steps := []struct {
		in   fakeToggle
		want bool
	}{
		{idle, false},
		{press, true},
		{holding, true},
		{holding, true},
		{idle, true},
		{press, false},
		{holding, false},
		{idle, false},
		{press, true},
	}
	for i, st := range steps {
		if got := p.Update(st.in); got != st.want {
			t.Errorf("step %d: active = %v, want %v", i, got, st.want)
		}
	}
}

func TestModeText(t *testing.T) {
	var m Mode
	if err := json.Unmarshal([]byte(`"PressToToggle"`), &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if m != PressToToggle {
		t.Errorf("mode = %v, want PressToToggle", m)
	}

	m = HoldToEnable
	if err := json.Unmarshal([]byte(`"Sometimes"`), &m); err != nil {
		t.Fatalf("Unmarshal unknown: %v", err)
	}
	if m != AlwaysDisabled {
		t.Errorf("unknown mode decoded to %v, want AlwaysDisabled", m)
	}

	if !HoldToEnable.UsesBinding() || AlwaysEnabled.UsesBinding() {
		t.Error("UsesBinding mismatch")
	}
}
