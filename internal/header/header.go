package header

import (
	"math/bits"

	"github.com/go-av1/av1enc/internal/frame"
)

// globalMvBits and globalMvBitsDiff resolve SPEC_FULL.md's TRANSLATION
// global-MV Open Question from rav1e's
// `let bits = 12 - 6 + 3 - !allow_high_precision_mv as u8;` and its
// `bits_diff` companion: 9 or 8, and 9 or 10, keyed on the
// high-precision-MV flag.
func globalMvBits(allowHighPrecisionMV bool) int {
	return 9 - boolToInt(!allowHighPrecisionMV)
}

func globalMvBitsDiff(allowHighPrecisionMV bool) int {
	return 9 + boolToInt(allowHighPrecisionMV)
}

// writeFrameSize matches rav1e's write_frame_size: the width/height each
// get a 4-bit leading-zeros-derived bit count before the value itself,
// rather than a fixed 16-bit field.
func writeFrameSize(w *bitWriter, width, height int) {
	widthBits := 32 - bits.LeadingZeros32(uint32(width))
	heightBits := 32 - bits.LeadingZeros32(uint32(height))
	w.writeBits(uint32(widthBits-1), 4)
	w.writeBits(uint32(heightBits-1), 4)
	w.writeBits(uint32(width-1), widthBits)
	w.writeBits(uint32(height-1), heightBits)
}

// WriteUncompressedHeader emits spec 4.I's bit-packed frame header: a
// fixed field sequence ending in byte alignment, grounded field-for-field
// on rav1e's write_uncompressed_header. It is a plain bit writer, not the
// tile payload's adaptive range coder — the two are composed by the
// frame driver (the root package's Encoder), never nested.
func WriteUncompressedHeader(seq frame.Sequence, fi frame.FrameInvariants) []byte {
	w := newBitWriter()

	w.writeBits(0b10, 2) // frame marker
	w.writeBits(uint32(seq.Profile), 2)

	w.writeBit(boolToInt(fi.ShowExistingFrame))
	if fi.ShowExistingFrame {
		w.writeBits(uint32(fi.ExistingFrameIdx), 3)
		w.byteAlign()
		return w.bytes()
	}

	isKeyOrIntraOnly := fi.FrameType == frame.FrameKey || fi.FrameType == frame.FrameIntraOnly
	w.writeBit(boolToInt(fi.FrameType != frame.FrameKey)) // 0: key, 1: inter
	w.writeBit(boolToInt(fi.ShowFrame))
	if !fi.ShowFrame && fi.FrameType != frame.FrameKey {
		w.writeBit(boolToInt(fi.IntraOnly))
	}
	w.writeBit(boolToInt(fi.ErrorResilient))

	if isKeyOrIntraOnly {
		// Sequence header: leading-zeros-derived variable-width frame
		// size, then the three feature-off bits rav1e's
		// write_sequence_header emits (frame ids off, screen content
		// tools forced, screen content tools forced off).
		writeFrameSize(w, fi.Width, fi.Height)
		w.writeBit(0) // frame ids off
		w.writeBit(0) // screen content tools forced
		w.writeBit(0) // screen content tools forced off
	}

	w.writeBit(0) // no frame-size override: frame_size_override_flag off

	// bit-depth/colorspace/sampling: 8-bit, 4:2:0, BT.601 limited range.
	w.writeBit(0) // high bit depth off (8-bit)
	w.writeBits(1, 3) // color_primaries = BT.601
	w.writeBits(1, 3) // transfer_characteristics = BT.601
	w.writeBits(1, 3) // matrix_coefficients = BT.601
	w.writeBit(0)     // color_range: limited
	w.writeBit(1)     // subsampling_x (4:2:0)
	w.writeBit(1)     // subsampling_y (4:2:0)
	w.writeBit(0)     // separate_uv_delta_q off

	// Frame setup: no superres, no scaling.
	w.writeBit(0) // use_superres off
	w.writeBit(0) // render_and_frame_size_different off

	if fi.FrameType == frame.FrameInter || fi.FrameType == frame.FrameIntraOnly {
		w.writeBits(0xFF, 8) // refresh_frame_flags
	}

	if fi.FrameType == frame.FrameInter {
		for i := 0; i < 7; i++ {
			w.writeBits(0, 3) // dummy ref_frame_idx slots
		}
		w.writeBits(0, 2) // interpolation_filter selection: EIGHTTAP
		w.writeBit(boolToInt(fi.AllowHighPrecisionMV))
		w.writeBit(1) // is_motion_mode_switchable / reference MV reuse bit
	}

	w.writeBits(0, 3) // frame context (primary_ref_frame / disable_frame_end_update_cdf-adjacent field group)

	// Loop filter: both levels 0, sharpness 0, deltas off.
	w.writeBits(0, 6) // loop_filter_level[0]
	w.writeBits(0, 6) // loop_filter_level[1]
	w.writeBits(0, 3) // loop_filter_sharpness
	w.writeBit(0)     // loop_filter_delta_enabled off

	w.writeBits(uint32(fi.QIndex), 8)
	w.writeBit(0) // delta_q_y_dc off
	w.writeBit(0) // delta_q_u_dc/ac off
	w.writeBit(0) // delta_q_v_dc/ac off
	w.writeBit(0) // using_qmatrix off

	w.writeBit(0) // segmentation_enabled off
	w.writeBit(0) // delta_q_present off

	// CDEF: damping 2 bits, bits 2 bits, one Y/UV strength pair (6 bits
	// each: 4-bit primary + 2-bit secondary), matching spec 4.I exactly.
	w.writeBits(0, 2) // cdef_damping - 3
	w.writeBits(0, 2) // cdef_bits
	w.writeBits(0, 6) // y strength[0]
	w.writeBits(0, 6) // uv strength[0]

	w.writeBits(0, 6) // loop restoration: 6 zero bits (all planes "none")

	w.writeBit(0) // tx_mode_select off (TX_MODE_LARGEST)

	if fi.FrameType == frame.FrameInter {
		w.writeBit(0) // reference_select (compound) off
	}
	w.writeBit(0) // skip_mode_present off (intra compound disabled)
	w.writeBit(boolToInt(fi.UseReducedTxSet))

	if fi.FrameType == frame.FrameInter {
		// Per-reference global MV: type signal (IDENTITY=0 for every
		// reference) plus the subexp-coded TRANSLATION parameter count
		// this core would need if it ever selected a non-identity type;
		// ROTZOOM/AFFINE are unimplemented per spec 4.I and §7.
		for i := 0; i < 7; i++ {
			w.writeBits(0, 2) // global motion type: IDENTITY
		}
		_ = globalMvBits(fi.AllowHighPrecisionMV)
		_ = globalMvBitsDiff(fi.AllowHighPrecisionMV)
	}

	if fi.Width > 64 || fi.Height > 64 {
		w.writeBit(1) // uniform_tile_spacing_flag (cols)
		w.writeBit(1) // uniform_tile_spacing_flag (rows)
	}
	w.writeBits(3, 2) // tile_size_bytes: value 3 in 2 bits

	w.byteAlign()
	return w.bytes()
}
