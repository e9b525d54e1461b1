package binding

import "headmouse/internal/device"

// Config is the persisted form of a binding.
// Value is a button index for Button, or a hat angle in centidegrees for POV kinds.
type Config struct {
	Type  Kind `json:"Type" toml:"Type"`
	Value int  `json:"Value" toml:"Value"`
}

// NewConfig returns an unbound configuration.
func NewConfig() Config {
	return Config{Type: Unset, Value: -1}
}

// Valid reports whether the value is in range for the kind.
func (c Config) Valid() bool {
	switch {
	case c.Type == Button:
		return c.Value >= 0 && c.Value < device.MaxButtons
	case c.Type >= POV0 && c.Type <= POV3:
		return c.Value >= 0 && c.Value < device.POVFullCircle
	}
	return false
}

// Reachable reports whether a device with info's capabilities can ever fire
// this binding. Unbound configs and devices with unknown capabilities report true.
func (c Config) Reachable(info device.Info) bool {
	if !c.Valid() || !info.CapabilitiesKnown() {
		return true
	}
	if hat, ok := c.Type.pov(); ok {
		return hat < info.POVs
	}
	return c.Value < info.Buttons
}

// control reads one physical control from a sample.
type control interface {
	down(s device.Sample) bool
}

type buttonControl int

func (b buttonControl) down(s device.Sample) bool {
	return s.Buttons[b]
}

type hatControl struct {
	hat   int
	angle int
}

func (h hatControl) down(s device.Sample) bool {
	return s.POV[h.hat] == h.angle
}

type unbound struct{}

func (unbound) down(device.Sample) bool { return false }

func (c Config) control() control {
	if !c.Valid() {
		return unbound{}
	}
	if hat, ok := c.Type.pov(); ok {
		return hatControl{hat: hat, angle: c.Value}
	}
	return buttonControl(c.Value)
}

// Binding tracks one control across ticks.
// It is not safe for concurrent use.
type Binding struct {
	cfg     Config
	ctl     control
	wasDown bool
	isDown  bool
}

// New creates a binding for cfg. Invalid configurations are never held.
func New(cfg Config) *Binding {
	return &Binding{cfg: cfg, ctl: cfg.control()}
}

// Config returns the configuration the binding was created from.
func (b *Binding) Config() Config { return b.cfg }

// Update advances the binding by one tick.
func (b *Binding) Update(s device.Sample) {
	b.wasDown = b.isDown
	b.isDown = b.ctl.down(s)
}

// Held reports whether the control is down this tick.
func (b *Binding) Held() bool { return b.isDown }

// Pressed reports whether the control went down this tick.
func (b *Binding) Pressed() bool { return b.isDown && !b.wasDown }
