//go:build linux

package device

import (
	"fmt"
	"log"
	"sync"

	evdev "github.com/gvalkov/golang-evdev"
)

// Linux implementation backed by /dev/input/event* nodes.

// List returns every evdev node that exposes joystick buttons or hats.
func List() ([]Info, error) {
	nodes, err := evdev.ListInputDevices()
	if err != nil {
		return nil, fmt.Errorf("list input devices: %w", err)
	}

	var devices []Info
	for i, dev := range nodes {
		if isJoystick(dev) {
			devices = append(devices, infoFor(i, dev))
		}
		dev.File.Close()
	}
	return devices, nil
}

func infoFor(id int, dev *evdev.InputDevice) Info {
	buttons, povs := controlCounts(dev.CapabilitiesFlat[evdev.EV_KEY], dev.CapabilitiesFlat[evdev.EV_ABS])
	return Info{
		ID:      id,
		Name:    dev.Name,
		GUID:    ProductGUID(dev.Vendor, dev.Product),
		Buttons: buttons,
		POVs:    povs,
	}
}

func isJoystick(dev *evdev.InputDevice) bool {
	for _, code := range dev.CapabilitiesFlat[evdev.EV_KEY] {
		if _, ok := buttonIndex(uint16(code)); ok {
			return true
		}
	}
	for _, code := range dev.CapabilitiesFlat[evdev.EV_ABS] {
		if _, _, ok := hatAxis(uint16(code)); ok {
			return true
		}
	}
	return false
}

// Open opens the device whose product GUID matches guid, falling back to a name match.
func Open(guid, name string) (Source, error) {
	nodes, err := evdev.ListInputDevices()
	if err != nil {
		return nil, fmt.Errorf("list input devices: %w", err)
	}

	var infos []Info
	var paths []string
	for i, dev := range nodes {
		if isJoystick(dev) {
			infos = append(infos, infoFor(i, dev))
			paths = append(paths, dev.Fn)
		}
		dev.File.Close()
	}

	info, ok := matchInfo(infos, guid, name)
	if !ok {
		return nil, fmt.Errorf("guid %q name %q: %w", guid, name, ErrNotFound)
	}
	var path string
	for i := range infos {
		if infos[i].ID == info.ID {
			path = paths[i]
		}
	}

	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	s := &evdevSource{info: info, dev: dev}
	go s.readLoop()
	return s, nil
}

type evdevSource struct {
	info Info
	dev  *evdev.InputDevice

	mu     sync.Mutex
	state  hatState
	err    error
	closed bool
}

func (s *evdevSource) Info() Info { return s.info }

func (s *evdevSource) Read() (Sample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return Released(), s.err
	}
	return s.state.sample(), nil
}

func (s *evdevSource) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return s.dev.File.Close()
}

func (s *evdevSource) readLoop() {
	for {
		events, err := s.dev.Read()
		if err != nil {
			s.mu.Lock()
			if !s.closed {
				log.Printf("Device: read loop for %s stopped: %v", s.info.Name, err)
				s.err = fmt.Errorf("read %s: %w", s.dev.Fn, err)
			}
			s.mu.Unlock()
			return
		}

		s.mu.Lock()
		for _, ev := range events {
			s.state.apply(ev.Type, ev.Code, ev.Value)
		}
		s.mu.Unlock()
	}
}
