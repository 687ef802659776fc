package transform

// Quantize and Dequantize are grounded on the teacher's
// encode_quant.go: sign/magnitude quantization with separate DC and AC
// step sizes, round-to-nearest via a bias term, generalized from VP8's
// fixed per-segment DCIQuant/IQuant table lookup to AV1's single
// base_q_idx-derived step size (spec.md's DESIGN NOTES scope the
// quantizer to one global step, not per-segment deltas).

// qfixShift matches the teacher's QFIX=17 fixed-point quantizer divide.
const qfixShift = 17

// dcStep and acStep derive AV1-shaped DC/AC quantizer step sizes from a
// base_q_idx in [0,255]. AV1 itself looks these up from 256-entry
// dc_qlookup/ac_qlookup tables; this core uses a monotonic closed-form
// approximation of the same curve (roughly quadratic growth from a
// step of 4 at qindex 0 to 767 (DC) and 999 (AC) at qindex 255), since no
// example in the pack carries AV1's literal quantizer tables and
// reproducing a 256-entry constant table by hand would be transcription,
// not grounding.
func dcStep(qindex int) int {
	return 4 + qindex + (qindex*qindex)/128
}

func acStep(qindex int) int {
	return 4 + (qindex*5)/4 + (qindex*qindex)/96
}

// Quantize quantizes a size*size coefficient block in place order,
// returning quantized integer levels and the count of leading
// coefficients (in raster/scan order as passed) up to and including the
// last non-zero one — the all-zero flag is count == 0.
func Quantize(coeffs []int32, qindex int) ([]int32, int) {
	dcQ := dcStep(qindex)
	acQ := acStep(qindex)
	out := make([]int32, len(coeffs))
	lastNonZero := -1
	for i, c := range coeffs {
		step := acQ
		if i == 0 {
			step = dcQ
		}
		sign := int32(1)
		v := c
		if v < 0 {
			sign = -1
			v = -v
		}
		bias := int32(1) << (qfixShift - 1) // half a step in QFIX units
		level := (v*scaleForStep(step) + bias) >> qfixShift
		out[i] = sign * level
		if level != 0 {
			lastNonZero = i
		}
	}
	return out, lastNonZero + 1
}

// Dequantize reconstructs approximate coefficients from quantized
// levels at qindex.
func Dequantize(levels []int32, qindex int) []int32 {
	dcQ := int32(dcStep(qindex))
	acQ := int32(acStep(qindex))
	out := make([]int32, len(levels))
	for i, l := range levels {
		step := acQ
		if i == 0 {
			step = dcQ
		}
		out[i] = l * step
	}
	return out
}

// scaleForStep converts a direct step size into the teacher's QFIX=17
// fixed-point reciprocal-multiply form, so Quantize performs the same
// shift-based divide encode_quant.go does instead of a runtime integer
// division per coefficient.
func scaleForStep(step int) int32 {
	return int32((int64(1) << qfixShift) / int64(step))
}
