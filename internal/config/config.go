// Package config provides settings management for the head-tracking mouse bridge.
package config

import (
	"time"

	"headmouse/internal/activation"
	"headmouse/internal/binding"
	"headmouse/internal/engine"
)

// Settings is the persisted configuration. Field names follow the settings file
// written by the desktop configurator, so existing files load unchanged.
type Settings struct {
	// MouseSimulationMode selects when head movement drives the pointer
	MouseSimulationMode activation.Mode `json:"MouseSimulationMode" toml:"MouseSimulationMode"`

	// MouseSimulationSensitivity is pixels per degree of head rotation
	MouseSimulationSensitivity float64 `json:"MouseSimulationSensitivity" toml:"MouseSimulationSensitivity"`

	// InputDeviceName is matched when no device has InputDeviceGuid
	InputDeviceName string `json:"InputDeviceName" toml:"InputDeviceName"`

	// InputDeviceGuid is the DirectInput instance GUID saved by the configurator, or a product GUID
	InputDeviceGuid string `json:"InputDeviceGuid" toml:"InputDeviceGuid"`

	InputBindings InputBindings `json:"InputBindings" toml:"InputBindings"`

	// TargetProcess is the executable whose focus enables AlwaysEnabled mode (e.g. "eurotrucks2.exe").
	// Empty means this process.
	TargetProcess string `json:"TargetProcess,omitempty" toml:"TargetProcess,omitempty"`

	// PollIntervalMs is the tick period
	PollIntervalMs int `json:"PollIntervalMs" toml:"PollIntervalMs"`

	Pose PoseConfig `json:"Pose" toml:"Pose"`
	API  APIConfig  `json:"API" toml:"API"`

	// Tray shows the system tray icon
	Tray bool `json:"Tray" toml:"Tray"`
}

// InputBindings maps each role to a physical control.
type InputBindings struct {
	SimulateMouse   binding.Config `json:"SimulateMouse" toml:"SimulateMouse"`
	MouseLeftClick  binding.Config `json:"MouseLeftClick" toml:"MouseLeftClick"`
	MouseRightClick binding.Config `json:"MouseRightClick" toml:"MouseRightClick"`
	MouseScrollUp   binding.Config `json:"MouseScrollUp" toml:"MouseScrollUp"`
	MouseScrollDown binding.Config `json:"MouseScrollDown" toml:"MouseScrollDown"`
	Escape          binding.Config `json:"Escape" toml:"Escape"`
}

// PoseConfig configures the OpenTrack UDP listener.
type PoseConfig struct {
	// ListenAddr is host:port for incoming OpenTrack frames
	ListenAddr string `json:"ListenAddr" toml:"ListenAddr"`

	// TimeoutMs drops the pose when no frame arrived for this long
	TimeoutMs int `json:"TimeoutMs" toml:"TimeoutMs"`
}

// APIConfig configures the local status server.
type APIConfig struct {
	Enabled bool   `json:"Enabled" toml:"Enabled"`
	Port    int    `json:"Port" toml:"Port"`
	Token   string `json:"Token,omitempty" toml:"Token,omitempty"`
}

const (
	DefaultPollIntervalMs = 11
	DefaultPoseAddr       = "127.0.0.1:4242"
	DefaultPoseTimeoutMs  = 250
	DefaultAPIPort        = 18090
)

// DefaultSettings returns settings with every binding unset.
func DefaultSettings() *Settings {
	return &Settings{
		MouseSimulationMode:        activation.HoldToEnable,
		MouseSimulationSensitivity: engine.DefaultSensitivity,
		InputBindings: InputBindings{
			SimulateMouse:   binding.NewConfig(),
			MouseLeftClick:  binding.NewConfig(),
			MouseRightClick: binding.NewConfig(),
			MouseScrollUp:   binding.NewConfig(),
			MouseScrollDown: binding.NewConfig(),
			Escape:          binding.NewConfig(),
		},
		PollIntervalMs: DefaultPollIntervalMs,
		Pose: PoseConfig{
			ListenAddr: DefaultPoseAddr,
			TimeoutMs:  DefaultPoseTimeoutMs,
		},
		API: APIConfig{
			Enabled: false,
			Port:    DefaultAPIPort,
		},
		Tray: true,
	}
}

// Normalize replaces out-of-range numeric values with defaults.
func (s *Settings) Normalize() {
	if s.MouseSimulationSensitivity <= 0 {
		s.MouseSimulationSensitivity = engine.DefaultSensitivity
	}
	if s.PollIntervalMs <= 0 {
		s.PollIntervalMs = DefaultPollIntervalMs
	}
	if s.Pose.ListenAddr == "" {
		s.Pose.ListenAddr = DefaultPoseAddr
	}
	if s.Pose.TimeoutMs <= 0 {
		s.Pose.TimeoutMs = DefaultPoseTimeoutMs
	}
	if s.API.Port <= 0 || s.API.Port > 65535 {
		s.API.Port = DefaultAPIPort
	}
}

// Engine returns the engine configuration.
func (s *Settings) Engine() engine.Config {
	var b engine.Bindings
	b[engine.ToggleMouse] = s.InputBindings.SimulateMouse
	b[engine.MouseLeftClick] = s.InputBindings.MouseLeftClick
	b[engine.MouseRightClick] = s.InputBindings.MouseRightClick
	b[engine.MouseScrollUp] = s.InputBindings.MouseScrollUp
	b[engine.MouseScrollDown] = s.InputBindings.MouseScrollDown
	b[engine.Escape] = s.InputBindings.Escape

	return engine.Config{
		Mode:        s.MouseSimulationMode,
		Sensitivity: s.MouseSimulationSensitivity,
		Bindings:    b,
	}
}

// PollInterval returns the tick period.
func (s *Settings) PollInterval() time.Duration {
	return time.Duration(s.PollIntervalMs) * time.Millisecond
}

// PoseTimeout returns how long a pose frame stays usable.
func (s *Settings) PoseTimeout() time.Duration {
	return time.Duration(s.Pose.TimeoutMs) * time.Millisecond
}
