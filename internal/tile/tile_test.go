package tile

import (
	"testing"

	"github.com/go-av1/av1enc/internal/context"
	"github.com/go-av1/av1enc/internal/frame"
)

func newAllBlackState(fi frame.FrameInvariants) *frame.State {
	fs := frame.NewState(fi)
	for _, pl := range fs.Input.Planes {
		for i := range pl.Data {
			pl.Data[i] = 0
		}
	}
	return fs
}

func TestEncodeTile_AllBlack64x64_ReconstructsWithinTolerance(t *testing.T) {
	fi := frame.NewFrameInvariants(64, 64, 100, 3)
	fs := newAllBlackState(fi)
	cw := context.NewWriter(fi.QIndex, fi.WInB, fi.HInB, 1024)

	payload := EncodeTile(fi, fs, cw)
	if len(payload) == 0 {
		t.Fatal("expected non-empty tile payload")
	}

	// An all-black block should reconstruct within rounding of input.
	rec := fs.Rec.Planes[0]
	input := fs.Input.Planes[0]
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			ri := rec.Index(x, y)
			ii := input.Index(x, y)
			d := int(rec.Data[ri]) - int(input.Data[ii])
			if d < -2 || d > 2 {
				t.Fatalf("reconstruction at (%d,%d): rec=%d input=%d, diff %d exceeds tolerance", x, y, rec.Data[ri], input.Data[ii], d)
			}
		}
	}
}

func TestEncodeTile_HighQIndex_NonEmptyPayload(t *testing.T) {
	fi := frame.NewFrameInvariants(32, 32, 255, 5)
	fs := frame.NewState(fi)
	for _, pl := range fs.Input.Planes {
		for i := range pl.Data {
			pl.Data[i] = uint8(i % 256)
		}
	}
	cw := context.NewWriter(fi.QIndex, fi.WInB, fi.HInB, 512)

	payload := EncodeTile(fi, fs, cw)
	if len(payload) == 0 {
		t.Fatal("expected non-empty tile payload")
	}
}

func TestEncodeTile_Deterministic(t *testing.T) {
	run := func() []byte {
		fi := frame.NewFrameInvariants(32, 32, 100, 3)
		fs := newAllBlackState(fi)
		cw := context.NewWriter(fi.QIndex, fi.WInB, fi.HInB, 512)
		return EncodeTile(fi, fs, cw)
	}

	a := run()
	b := run()
	if len(a) != len(b) {
		t.Fatalf("non-deterministic payload length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic payload at byte %d", i)
		}
	}
}
