// Package bridge drives the engine: it samples the device and the head pose on
// a fixed period, injects what the engine produces and reports progress.
package bridge

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"headmouse/internal/activation"
	"headmouse/internal/config"
	"headmouse/internal/device"
	"headmouse/internal/engine"
	"headmouse/internal/input"
	"headmouse/internal/protocol"
)

// PoseSource provides the newest head tracking frame.
type PoseSource interface {
	Latest(now time.Time) (protocol.OpenTrackFrame, bool)
}

// Observer is told about every injected batch and every status change.
// Calls happen on the tick goroutine with the bridge locked; observers must not block
// or call back into the bridge.
type Observer interface {
	OnBatch(tick uint64, events []input.Event)
	OnStatus(Status)
}

// Status is a snapshot of the bridge's counters.
type Status struct {
	Mode       activation.Mode
	Active     bool
	Device     string
	PoseActive bool
	Ticks      uint64
	Events     uint64
	LastError  string
}

// Payload converts the status to its wire form.
func (s Status) Payload() protocol.StatusPayload {
	return protocol.StatusPayload{
		Mode:       s.Mode.String(),
		Active:     s.Active,
		Device:     s.Device,
		PoseActive: s.PoseActive,
		Ticks:      s.Ticks,
		Events:     s.Events,
		LastError:  s.LastError,
	}
}

// Options wires the bridge to its collaborators.
type Options struct {
	Injector input.Injector
	Pose     PoseSource

	// OpenDevice opens the configured button device. Nil means no device.
	OpenDevice func(guid, name string) (device.Source, error)

	// Focus builds the foreground check for AlwaysEnabled. Nil means always focused.
	Focus func(s *config.Settings) activation.Focus
}

// Bridge owns the engine and serializes every tick and reload.
type Bridge struct {
	opts Options

	mu        sync.Mutex
	settings  *config.Settings
	engine    *engine.Engine
	source    device.Source
	observers []Observer
	status    Status
	closed    bool

	readFailing   bool
	injectFailing bool

	intervalCh chan time.Duration
}

// New creates a bridge for the given settings and opens the device.
func New(s *config.Settings, opts Options) *Bridge {
	b := &Bridge{
		opts:       opts,
		intervalCh: make(chan time.Duration, 1),
	}
	b.apply(s)
	return b
}

// AddObserver registers o for batches and status changes.
func (b *Bridge) AddObserver(o Observer) {
	b.mu.Lock()
	b.observers = append(b.observers, o)
	b.mu.Unlock()
}

// apply installs settings. Caller holds mu or is the constructor.
func (b *Bridge) apply(s *config.Settings) {
	prev := b.settings
	b.settings = s

	var focus activation.Focus = activation.FocusFunc(func() bool { return true })
	if b.opts.Focus != nil {
		focus = b.opts.Focus(s)
	}
	b.engine = engine.New(s.Engine(), focus)
	b.status.Mode = s.MouseSimulationMode
	b.status.Active = false

	if prev == nil || prev.InputDeviceGuid != s.InputDeviceGuid || prev.InputDeviceName != s.InputDeviceName {
		b.openDevice(s)
	}
	if b.source != nil {
		info := b.source.Info()
		bindings := s.Engine().Bindings
		for _, r := range unreachableRoles(info, bindings) {
			c := bindings[r]
			log.Printf("Device: %s is bound to %s %d, but %q reports only %d buttons and %d hats; it will never fire",
				r, c.Type, c.Value, info.Name, info.Buttons, info.POVs)
		}
	}
}

// unreachableRoles lists the roles bound to controls the device cannot report.
func unreachableRoles(info device.Info, bindings engine.Bindings) []engine.Role {
	var roles []engine.Role
	for _, r := range engine.Roles() {
		if !bindings[r].Reachable(info) {
			roles = append(roles, r)
		}
	}
	return roles
}

func (b *Bridge) openDevice(s *config.Settings) {
	if b.source != nil {
		b.source.Close()
		b.source = nil
	}
	b.status.Device = ""
	if b.opts.OpenDevice == nil {
		return
	}

	src, err := b.opts.OpenDevice(s.InputDeviceGuid, s.InputDeviceName)
	if err != nil {
		if errors.Is(err, device.ErrNotFound) {
			log.Printf("Device: No device matches guid %q or name %q; buttons read as released", s.InputDeviceGuid, s.InputDeviceName)
		} else {
			log.Printf("Device: Failed to open input device: %v", err)
		}
		b.status.LastError = err.Error()
		return
	}
	b.source = src
	b.status.Device = src.Info().Name
	log.Printf("Device: Using %q %s", src.Info().Name, src.Info().GUID)
}

// Interval returns the current tick period.
func (b *Bridge) Interval() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.settings.PollInterval()
}

// Status returns a snapshot of the counters.
func (b *Bridge) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

// Step runs one tick at time now and returns the injected batch.
func (b *Bridge) Step(now time.Time) []input.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}

	sample := b.readSample()
	pose := engine.UndefinedPose
	poseOK := false
	if b.opts.Pose != nil {
		var frame protocol.OpenTrackFrame
		if frame, poseOK = b.opts.Pose.Latest(now); poseOK {
			pose = engine.NewPose(frame.Pitch, frame.Yaw)
		}
	}

	wasActive := b.status.Active
	events := b.engine.Tick(sample, pose)

	b.status.Ticks++
	b.status.PoseActive = poseOK
	b.status.Active = b.engine.Active()

	b.publish(events)

	if b.status.Active != wasActive {
		log.Printf("Bridge: Mouse simulation %s", onOff(b.status.Active))
		b.notifyStatus()
	}
	return events
}

func (b *Bridge) readSample() device.Sample {
	if b.source == nil {
		return device.Released()
	}
	s, err := b.source.Read()
	if err != nil {
		if !b.readFailing {
			log.Printf("Device: Read failed, treating all controls as released: %v", err)
			b.readFailing = true
		}
		b.status.LastError = err.Error()
		return device.Released()
	}
	if b.readFailing {
		log.Printf("Device: Reads recovered")
		b.readFailing = false
		b.status.LastError = ""
	}
	return s
}

// publish injects a batch and hands it to observers. Caller holds mu.
func (b *Bridge) publish(events []input.Event) {
	if len(events) == 0 {
		return
	}

	if b.opts.Injector != nil {
		if err := b.opts.Injector.Inject(events); err != nil {
			if !b.injectFailing {
				log.Printf("Bridge: Injection failed: %v", err)
				b.injectFailing = true
			}
			b.status.LastError = err.Error()
		} else if b.injectFailing {
			log.Printf("Bridge: Injection recovered")
			b.injectFailing = false
			b.status.LastError = ""
		}
	}

	b.status.Events += uint64(len(events))
	for _, o := range b.observers {
		o.OnBatch(b.status.Ticks, events)
	}
}

func (b *Bridge) notifyStatus() {
	for _, o := range b.observers {
		o.OnStatus(b.status)
	}
}

// Reload releases everything the current engine holds and starts over with s.
func (b *Bridge) Reload(s *config.Settings) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	b.publish(b.engine.Release())
	oldInterval := b.settings.PollInterval()
	b.apply(s)
	log.Printf("Bridge: Settings reloaded (mode %s, sensitivity %.1f)", s.MouseSimulationMode, s.MouseSimulationSensitivity)

	if d := s.PollInterval(); d != oldInterval {
		select {
		case <-b.intervalCh:
		default:
		}
		b.intervalCh <- d
	}
	b.notifyStatus()
}

// Run ticks until ctx is done, then releases held input.
func (b *Bridge) Run(ctx context.Context) error {
	interval := b.Interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("Bridge: Running every %v", interval)
	for {
		select {
		case <-ctx.Done():
			return b.Close()
		case d := <-b.intervalCh:
			ticker.Reset(d)
			log.Printf("Bridge: Tick interval changed to %v", d)
		case now := <-ticker.C:
			b.Step(now)
		}
	}
}

// Close injects the release batch and closes the device. Safe to call twice.
func (b *Bridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}

	b.publish(b.engine.Release())
	b.closed = true
	b.status.Active = false

	if b.source != nil {
		err := b.source.Close()
		b.source = nil
		return err
	}
	return nil
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
