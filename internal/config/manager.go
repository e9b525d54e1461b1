package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"github.com/google/go-cmp/cmp"
)

const appDirName = "headmouse"

// Manager handles loading, saving and watching the settings file
type Manager struct {
	mu        sync.Mutex
	path      string
	settings  *Settings
	onChanged func(*Settings)
}

// NewManager creates a manager for path, or for the default location when path is empty
func NewManager(path string) (*Manager, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	return &Manager{
		path:     path,
		settings: DefaultSettings(),
	}, nil
}

// DefaultPath returns the per-user settings file location
func DefaultPath() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", appDirName)
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, appDirName)
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config", appDirName)
	}

	return filepath.Join(configDir, "settings.json"), nil
}

// Path returns the settings file path
func (m *Manager) Path() string {
	return m.path
}

func (m *Manager) isTOML() bool {
	return strings.EqualFold(filepath.Ext(m.path), ".toml")
}

// Load reads the settings file. A missing file leaves the defaults in place.
func (m *Manager) Load() error {
	s, err := m.read()
	if err != nil || s == nil {
		return err
	}
	m.install(s)
	return nil
}

// reloadIfChanged loads the file only when it differs from the settings in
// memory, so a Save followed by its own file event does not reload twice.
func (m *Manager) reloadIfChanged() (bool, error) {
	s, err := m.read()
	if err != nil || s == nil {
		return false, err
	}

	m.mu.Lock()
	same := cmp.Equal(*m.settings, *s)
	m.mu.Unlock()
	if same {
		return false, nil
	}
	m.install(s)
	return true, nil
}

// read parses the settings file, returning nil if it does not exist.
func (m *Manager) read() (*Settings, error) {
	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s := DefaultSettings()
	if m.isTOML() {
		if _, err := toml.Decode(string(data), s); err != nil {
			return nil, fmt.Errorf("parse %s: %w", m.path, err)
		}
	} else {
		// The desktop configurator writes a UTF-8 BOM.
		data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
		if err := json.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parse %s: %w", m.path, err)
		}
	}
	s.Normalize()
	return s, nil
}

func (m *Manager) install(s *Settings) {
	m.mu.Lock()
	m.settings = s
	cb := m.onChanged
	m.mu.Unlock()

	if cb != nil {
		cb(s)
	}
}

// Save writes the current settings to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	s := *m.settings
	m.mu.Unlock()

	var buf bytes.Buffer
	if m.isTOML() {
		if err := toml.NewEncoder(&buf).Encode(s); err != nil {
			return err
		}
	} else {
		data, err := json.MarshalIndent(s, "", "    ")
		if err != nil {
			return err
		}
		buf.Write(data)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return err
	}
	log.Printf("Config: Saving settings to %s (%d bytes)", m.path, buf.Len())
	return os.WriteFile(m.path, buf.Bytes(), 0644)
}

// Get returns a copy of the current settings
func (m *Manager) Get() *Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := *m.settings
	return &s
}

// Set replaces the settings in memory
func (m *Manager) Set(s *Settings) {
	cp := *s
	cp.Normalize()
	m.mu.Lock()
	m.settings = &cp
	cb := m.onChanged
	m.mu.Unlock()
	if cb != nil {
		cb(&cp)
	}
}

// RegisterChangeCallback registers a function called after every successful load or Set
func (m *Manager) RegisterChangeCallback(fn func(*Settings)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChanged = fn
}

// watchDebounce collapses the burst of events an editor save produces.
const watchDebounce = 300 * time.Millisecond

// Watch reloads the settings whenever the file changes, until ctx is done.
// The directory is watched because editors often replace the file.
func (m *Manager) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		watcher.Close()
		return err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	log.Printf("Config: Watching %s for changes", m.path)

	go m.watchLoop(ctx, watcher)
	return nil
}

func (m *Manager) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	target := filepath.Clean(m.path)

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case <-timer.C:
			changed, err := m.reloadIfChanged()
			switch {
			case err != nil:
				log.Printf("Config: Reload failed, keeping previous settings: %v", err)
			case changed:
				log.Printf("Config: Reloaded %s", m.path)
			}

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(watchDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Config: Watch error: %v", err)
		}
	}
}
