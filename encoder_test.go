package av1enc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func blackFrame(w, h int) (y, u, v []byte) {
	y = make([]byte, w*h)
	u = make([]byte, (w/2)*(h/2))
	v = make([]byte, (w/2)*(h/2))
	return y, u, v
}

func TestEncodeFrame_Deterministic(t *testing.T) {
	run := func() EncodedFrame {
		enc := NewEncoder(Config{Width: 64, Height: 64, Quantizer: 100, Speed: 3})
		y, u, v := blackFrame(64, 64)
		ef, err := enc.EncodeFrame(y, u, v)
		if err != nil {
			t.Fatalf("EncodeFrame: %v", err)
		}
		return ef
	}

	a := run()
	b := run()
	if diff := cmp.Diff(a.Payload, b.Payload); diff != "" {
		t.Errorf("EncodeFrame produced non-deterministic payload (-first +second):\n%s", diff)
	}
}

func TestEncodeExistingFrame_HeaderOnly(t *testing.T) {
	enc := NewEncoder(Config{Width: 64, Height: 64, Quantizer: 100, Speed: 3})
	ef := enc.EncodeExistingFrame(0)
	// Frame marker + profile + flag + slot index, byte-aligned: one byte.
	if len(ef.Payload) != 1 {
		t.Fatalf("show_existing_frame payload length = %d, want 1", len(ef.Payload))
	}
}

func TestEncodeFrame_NonMultipleOf8Dimensions(t *testing.T) {
	enc := NewEncoder(Config{Width: 130, Height: 70, Quantizer: 100, Speed: 1})
	y, u, v := blackFrame(130, 70)
	ef, err := enc.EncodeFrame(y, u, v)
	if err != nil {
		t.Fatalf("EncodeFrame: %v", err)
	}
	if len(ef.Payload) == 0 {
		t.Fatal("expected non-empty payload for non-multiple-of-8 dimensions")
	}
}
