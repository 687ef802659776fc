package transform

import (
	"testing"

	"github.com/go-av1/av1enc/internal/block"
)

func TestForwardInverse2D_RoundTrip_DctDct(t *testing.T) {
	for _, size := range []int{4, 8, 16, 32} {
		residual := make([]int32, size*size)
		for i := range residual {
			residual[i] = int32((i%17)-8) * 4
		}

		coeffs := Forward2D(residual, size, block.DctDct)
		recon := Inverse2D(coeffs, size, block.DctDct)

		var maxErr int32
		for i := range residual {
			d := residual[i] - recon[i]
			if d < 0 {
				d = -d
			}
			if d > maxErr {
				maxErr = d
			}
		}
		// Fixed-point basis rounding, not bit-exact reconstruction.
		if maxErr > 8 {
			t.Errorf("size %d: round-trip max error %d exceeds tolerance", size, maxErr)
		}
	}
}

func TestQuantizeDequantize_ZeroResidual(t *testing.T) {
	coeffs := make([]int32, 64)
	levels, lastNonZero := Quantize(coeffs, 100)
	if lastNonZero != 0 {
		t.Fatalf("expected no nonzero coefficients, got lastNonZero=%d", lastNonZero)
	}
	dq := Dequantize(levels, 100)
	for i, v := range dq {
		if v != 0 {
			t.Fatalf("coefficient %d: expected 0, got %d", i, v)
		}
	}
}

func TestQuantize_LosslessCorner(t *testing.T) {
	// At qindex=0 the quantizer step should be small enough that a
	// moderate residual survives quantize/dequantize near losslessly.
	coeffs := []int32{64, -32, 16, 8}
	levels, _ := Quantize(coeffs, 0)
	dq := Dequantize(levels, 0)
	for i := range coeffs {
		d := coeffs[i] - dq[i]
		if d < -2 || d > 2 {
			t.Errorf("coefficient %d: %d -> %d, error %d exceeds lossless-corner tolerance", i, coeffs[i], dq[i], d)
		}
	}
}
