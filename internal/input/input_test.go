package input

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestMouseFlagsString(t *testing.T) {
	tests := []struct {
		flags MouseFlags
		want  string
	}{
		{0, ""},
		{MouseMove, "move"},
		{MouseLeftDown | MouseMove, "move|leftdown"},
		{MouseRightUp | MouseWheel | MouseLeftUp, "leftup|rightup|wheel"},
	}

	for _, tt := range tests {
		if got := tt.flags.String(); got != tt.want {
			t.Errorf("MouseFlags(%d).String() = %q, want %q", tt.flags, got, tt.want)
		}
	}
}

func TestMouseEventEmpty(t *testing.T) {
	if !(MouseEvent{}).Empty() {
		t.Error("zero event should be empty")
	}
	for _, m := range []MouseEvent{
		{Flags: MouseLeftUp},
		{DX: 1},
		{DY: -1},
		{WheelDelta: WheelUnit},
	} {
		if m.Empty() {
			t.Errorf("%+v should not be empty", m)
		}
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{MouseInput(MouseEvent{Flags: MouseMove | MouseLeftDown, DX: -4}), "mouse[move|leftdown] d=-4,0"},
		{MouseInput(MouseEvent{Flags: MouseWheel, WheelDelta: -WheelUnit}), "mouse[wheel] wheel=-120"},
		{KeyInput(KeyEvent{Key: KeyEscape, ScanCode: ScanCodeEscape, Down: true}), "key[escape down]"},
		{KeyInput(KeyEvent{Key: KeyEscape, ScanCode: ScanCodeEscape}), "key[escape up]"},
		{Event{}, "none"},
	}

	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestEventJSON(t *testing.T) {
	ev := MouseInput(MouseEvent{Flags: MouseMove | MouseRightDown, DX: 3, DY: -2})
	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"mouse":{"flags":"move|rightdown","dx":3,"dy":-2}}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestRecorderCopiesBatches(t *testing.T) {
	r := NewRecorder()
	batch := []Event{KeyInput(KeyEvent{Key: KeyEscape, Down: true})}
	if err := r.Inject(batch); err != nil {
		t.Fatalf("Inject: %v", err)
	}
	batch[0] = Event{}
	if err := r.Inject(nil); err != nil {
		t.Fatalf("Inject: %v", err)
	}

	got := r.Batches()
	if len(got) != 2 {
		t.Fatalf("recorded %d batches, want 2", len(got))
	}
	if got[0][0].Key == nil || !got[0][0].Key.Down {
		t.Error("recorder should keep its own copy of the batch")
	}
	if n := len(r.Events()); n != 1 {
		t.Errorf("Events() has %d entries, want 1", n)
	}
}

func TestErrPartialInjectionWraps(t *testing.T) {
	err := fmt.Errorf("SendInput sent 1 of 2: %w", ErrPartialInjection)
	if !errors.Is(err, ErrPartialInjection) {
		t.Error("wrapped error should match ErrPartialInjection")
	}
}

func TestEventJSONDecode(t *testing.T) {
	var ev Event
	if err := json.Unmarshal([]byte(`{"mouse":{"flags":"leftup|wheel","wheel":-120}}`), &ev); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if ev.Mouse == nil || ev.Mouse.Flags != MouseLeftUp|MouseWheel || ev.Mouse.WheelDelta != -WheelUnit {
		t.Errorf("decoded %+v", ev.Mouse)
	}
}
