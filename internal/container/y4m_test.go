package container

import (
	"strings"
	"testing"
)

func TestNewY4MReader_ParsesHeader(t *testing.T) {
	stream := "YUV4MPEG2 W16 H16 F25:1 Ip A1:1 C420\nFRAME\n" + strings.Repeat("\x00", 16*16+2*8*8)
	r, err := NewY4MReader(strings.NewReader(stream))
	if err != nil {
		t.Fatalf("NewY4MReader: %v", err)
	}
	if r.Width != 16 || r.Height != 16 {
		t.Fatalf("dimensions = %dx%d, want 16x16", r.Width, r.Height)
	}

	y, u, v, err := r.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if len(y) != 16*16 || len(u) != 8*8 || len(v) != 8*8 {
		t.Fatalf("plane sizes = %d/%d/%d, want 256/64/64", len(y), len(u), len(v))
	}
}

func TestNewY4MReader_RejectsUnsupportedColorspace(t *testing.T) {
	stream := "YUV4MPEG2 W16 H16 C444\n"
	_, err := NewY4MReader(strings.NewReader(stream))
	if err == nil {
		t.Fatal("expected error for C444 colorspace")
	}
	if !strings.Contains(err.Error(), "444") {
		t.Errorf("error %q does not name the rejected colorspace", err.Error())
	}
}
