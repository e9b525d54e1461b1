package tray

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestIconHeader(t *testing.T) {
	ico := Icon(false)
	if len(ico) != iconHeader+iconImgSize {
		t.Fatalf("len = %d", len(ico))
	}
	if got := binary.LittleEndian.Uint16(ico[2:]); got != 1 {
		t.Errorf("type = %d, want 1 (icon)", got)
	}
	if got := binary.LittleEndian.Uint32(ico[18:]); got != iconHeader {
		t.Errorf("image offset = %d", got)
	}
	if got := binary.LittleEndian.Uint32(ico[iconHeader+8:]); got != iconSize*2 {
		t.Errorf("dib height = %d", got)
	}
}

func TestIconStates(t *testing.T) {
	idle, active := Icon(false), Icon(true)
	if bytes.Equal(idle, active) {
		t.Fatal("active and idle icons should differ")
	}

	px := active[iconHeader+dibHeader:]
	center := (8*iconSize + 8) * 4
	if px[center+3] != 0xff {
		t.Error("center pixel should be opaque")
	}
	if px[3] != 0 {
		t.Error("corner pixel should be transparent")
	}
}
