package input

import (
	"log"
	"sync"
)

// Recorder is an Injector that keeps every batch instead of touching the OS.
type Recorder struct {
	mu      sync.Mutex
	batches [][]Event
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Inject records a copy of events.
func (r *Recorder) Inject(events []Event) error {
	batch := make([]Event, len(events))
	copy(batch, events)

	r.mu.Lock()
	r.batches = append(r.batches, batch)
	r.mu.Unlock()
	return nil
}

// Batches returns the recorded batches in injection order.
func (r *Recorder) Batches() [][]Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]Event, len(r.batches))
	copy(out, r.batches)
	return out
}

// Events returns every recorded event flattened in order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, b := range r.batches {
		out = append(out, b...)
	}
	return out
}

// Logger is an Injector that only logs each event.
type Logger struct{}

// NewLogger creates a logging injector for dry runs.
func NewLogger() *Logger {
	return &Logger{}
}

// Inject logs events in order.
func (l *Logger) Inject(events []Event) error {
	for _, ev := range events {
		log.Printf("DryRun: %s", ev)
	}
	return nil
}
