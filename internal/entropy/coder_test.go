package entropy

import (
	"math/rand"
	"testing"
)

func TestWriter_Checkpoint_Rollback_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	w := NewWriter(256)
	for i := 0; i < 50; i++ {
		cdf := NewCdf4()
		w.WriteSymbol(cdf[:], rng.Intn(4))
	}

	before := append([]byte(nil), w.Bytes()...)
	cp := w.Snapshot()

	for i := 0; i < 200; i++ {
		cdf := NewCdf4()
		w.WriteSymbol(cdf[:], rng.Intn(4))
		w.WriteBit(rng.Intn(2))
	}

	w.Restore(cp)
	after := w.Bytes()

	if len(before) != len(after) {
		t.Fatalf("byte length diverged after rollback: before=%d after=%d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("byte %d diverged after rollback: before=%02x after=%02x", i, before[i], after[i])
		}
	}
}

func TestWriter_Done_Deterministic(t *testing.T) {
	write := func() []byte {
		w := NewWriter(64)
		cdf := NewCdf2()
		for i, v := range []int{0, 1, 1, 0, 1} {
			_ = i
			w.WriteSymbol(cdf[:], v)
		}
		return w.Done()
	}

	a := write()
	b := write()
	if len(a) != len(b) {
		t.Fatalf("non-deterministic output length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic output at byte %d: %02x vs %02x", i, a[i], b[i])
		}
	}
}

func TestWriter_WriteLiteral_Bounds(t *testing.T) {
	w := NewWriter(16)
	w.WriteLiteral(0xFF, 8)
	w.WriteLiteral(0, 1)
	if len(w.Done()) == 0 {
		t.Fatal("expected non-empty output")
	}
}
