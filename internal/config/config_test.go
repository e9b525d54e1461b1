package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"headmouse/internal/activation"
	"headmouse/internal/binding"
	"headmouse/internal/engine"
)

const configuratorFile = "\xef\xbb\xbf" + `{
  "MouseSimulationMode": "PressToToggle",
  "MouseSimulationSensitivity": 35.5,
  "InputDeviceName": "Button Box",
  "InputDeviceGuid": "{56781234-0000-0000-0000-504944564944}",
  "InputBindings": {
    "SimulateMouse": { "Type": "Button", "Value": 4 },
    "MouseLeftClick": { "Type": "POV0", "Value": 0 },
    "MouseRightClick": { "Type": "", "Value": -1 },
    "Escape": { "Type": "Button", "Value": 9 }
  },
  "GamePath": "C:\\Games\\ets2.exe",
  "GameArguments": ""
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadConfiguratorJSON(t *testing.T) {
	m, err := NewManager(writeFile(t, "settings.json", configuratorFile))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	s := m.Get()
	if s.MouseSimulationMode != activation.PressToToggle {
		t.Errorf("mode = %v, want PressToToggle", s.MouseSimulationMode)
	}
	if s.MouseSimulationSensitivity != 35.5 {
		t.Errorf("sensitivity = %v, want 35.5", s.MouseSimulationSensitivity)
	}
	if s.InputDeviceName != "Button Box" {
		t.Errorf("device name = %q", s.InputDeviceName)
	}

	ec := s.Engine()
	want := map[engine.Role]binding.Config{
		engine.ToggleMouse:     {Type: binding.Button, Value: 4},
		engine.MouseLeftClick:  {Type: binding.POV0, Value: 0},
		engine.MouseRightClick: binding.NewConfig(),
		engine.MouseScrollUp:   binding.NewConfig(),
		engine.MouseScrollDown: binding.NewConfig(),
		engine.Escape:          {Type: binding.Button, Value: 9},
	}
	for role, cfg := range want {
		if ec.Bindings[role] != cfg {
			t.Errorf("%v binding = %+v, want %+v", role, ec.Bindings[role], cfg)
		}
	}

	// Fields absent from the file keep their defaults.
	if s.PollIntervalMs != DefaultPollIntervalMs || s.Pose.ListenAddr != DefaultPoseAddr || !s.Tray {
		t.Errorf("defaults not preserved: %+v", s)
	}
}

func TestLoadTOML(t *testing.T) {
	content := `
MouseSimulationMode = "AlwaysEnabled"
MouseSimulationSensitivity = 20.0
TargetProcess = "eurotrucks2.exe"
PollIntervalMs = 16

[InputBindings.MouseScrollUp]
Type = "POV1"
Value = 9000

[Pose]
ListenAddr = "0.0.0.0:5555"
`
	m, _ := NewManager(writeFile(t, "settings.toml", content))
	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	s := m.Get()
	if s.MouseSimulationMode != activation.AlwaysEnabled {
		t.Errorf("mode = %v", s.MouseSimulationMode)
	}
	if s.TargetProcess != "eurotrucks2.exe" || s.PollIntervalMs != 16 {
		t.Errorf("unexpected settings %+v", s)
	}
	if got := s.InputBindings.MouseScrollUp; got != (binding.Config{Type: binding.POV1, Value: 9000}) {
		t.Errorf("scroll up = %+v", got)
	}
	if s.Pose.ListenAddr != "0.0.0.0:5555" || s.Pose.TimeoutMs != DefaultPoseTimeoutMs {
		t.Errorf("pose = %+v", s.Pose)
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	m, _ := NewManager(filepath.Join(t.TempDir(), "nope.json"))
	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Get().MouseSimulationMode != activation.HoldToEnable {
		t.Error("missing file should leave default mode")
	}
}

func TestLoadToleratesUnknownValues(t *testing.T) {
	content := `{"MouseSimulationMode":"Sometimes","MouseSimulationSensitivity":-3,
		"InputBindings":{"Escape":{"Type":"Axis","Value":2}},"PollIntervalMs":0}`
	m, _ := NewManager(writeFile(t, "settings.json", content))
	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	s := m.Get()
	if s.MouseSimulationMode != activation.AlwaysDisabled {
		t.Errorf("unknown mode = %v, want AlwaysDisabled", s.MouseSimulationMode)
	}
	if s.MouseSimulationSensitivity != engine.DefaultSensitivity {
		t.Errorf("sensitivity = %v, want default", s.MouseSimulationSensitivity)
	}
	if s.PollIntervalMs != DefaultPollIntervalMs {
		t.Errorf("poll interval = %d, want default", s.PollIntervalMs)
	}
	if s.InputBindings.Escape.Valid() {
		t.Error("unknown binding kind should be invalid")
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	m, _ := NewManager(writeFile(t, "settings.json", `{"MouseSimulationMode": `))
	if err := m.Load(); err == nil {
		t.Error("expected parse error")
	}
	if m.Get().MouseSimulationMode != activation.HoldToEnable {
		t.Error("failed load should keep previous settings")
	}
}

func TestSaveThenLoad(t *testing.T) {
	for _, name := range []string{"settings.json", "settings.toml"} {
		path := filepath.Join(t.TempDir(), "sub", name)
		m, _ := NewManager(path)

		s := DefaultSettings()
		s.MouseSimulationMode = activation.PressToToggle
		s.InputBindings.MouseRightClick = binding.Config{Type: binding.POV3, Value: 27000}
		m.Set(s)
		if err := m.Save(); err != nil {
			t.Fatalf("%s: Save: %v", name, err)
		}

		m2, _ := NewManager(path)
		if err := m2.Load(); err != nil {
			t.Fatalf("%s: Load: %v", name, err)
		}
		got := m2.Get()
		if got.MouseSimulationMode != activation.PressToToggle ||
			got.InputBindings.MouseRightClick != s.InputBindings.MouseRightClick ||
			got.InputBindings.Escape != binding.NewConfig() {
			t.Errorf("%s: reloaded %+v", name, got)
		}
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := writeFile(t, "settings.json", `{"MouseSimulationMode":"HoldToEnable"}`)
	m, _ := NewManager(path)
	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	changed := make(chan *Settings, 4)
	m.RegisterChangeCallback(func(s *Settings) { changed <- s })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := m.Watch(ctx); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := os.WriteFile(path, []byte(`{"MouseSimulationMode":"AlwaysEnabled"}`), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case s := <-changed:
		if s.MouseSimulationMode != activation.AlwaysEnabled {
			t.Errorf("reloaded mode = %v", s.MouseSimulationMode)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after writing the settings file")
	}
}

func TestReloadSkipsOwnSave(t *testing.T) {
	m, _ := NewManager(filepath.Join(t.TempDir(), "settings.json"))

	calls := 0
	m.RegisterChangeCallback(func(*Settings) { calls++ })

	s := m.Get()
	s.MouseSimulationMode = activation.PressToToggle
	s.MouseSimulationSensitivity = 12.5
	s.InputBindings.Escape = binding.Config{Type: binding.POV2, Value: 27000}
	m.Set(s)
	if err := m.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if calls != 1 {
		t.Fatalf("Set should notify once, got %d", calls)
	}

	changed, err := m.reloadIfChanged()
	if err != nil {
		t.Fatalf("reloadIfChanged: %v", err)
	}
	if changed || calls != 1 {
		t.Errorf("reload of an unchanged file: changed = %v, callbacks = %d", changed, calls)
	}

	if err := os.WriteFile(m.Path(), []byte(`{"MouseSimulationMode":"AlwaysEnabled"}`), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	changed, err = m.reloadIfChanged()
	if err != nil {
		t.Fatalf("reloadIfChanged: %v", err)
	}
	if !changed || calls != 2 || m.Get().MouseSimulationMode != activation.AlwaysEnabled {
		t.Errorf("reload of an edited file: changed = %v, callbacks = %d, mode = %v", changed, calls, m.Get().MouseSimulationMode)
	}
}
