// Package frame holds the per-sequence and per-frame configuration the
// driver (spec 4.J) threads through partition recursion, RDO, and the
// header writer: Sequence (constant across the whole encode) and
// FrameInvariants (fixed for one frame's duration), grounded directly on
// rav1e's Sequence/FrameInvariants in original_source/src/lib.rs.
package frame

import "github.com/go-av1/av1enc/internal/block"

// FrameType mirrors AV1's frame_type syntax element.
type FrameType int

const (
	FrameKey FrameType = iota
	FrameInter
	FrameIntraOnly
	FrameSwitch
)

func (t FrameType) String() string {
	switch t {
	case FrameKey:
		return "KEY"
	case FrameInter:
		return "INTER"
	case FrameIntraOnly:
		return "INTRA_ONLY"
	case FrameSwitch:
		return "SWITCH"
	default:
		return "UNKNOWN"
	}
}

// Sequence is constant for the life of one encode (spec 3, grounded on
// lib.rs's Sequence). This core targets profile 0 (8-bit 4:2:0) only.
type Sequence struct {
	Profile uint8
}

// NewSequence returns the sequence header this core always emits.
func NewSequence() Sequence {
	return Sequence{Profile: 0}
}

// alignPow2 rounds n up to a multiple of 1<<k.
func alignPow2(n, k int) int {
	mask := (1 << uint(k)) - 1
	return (n + mask) &^ mask
}

// alignPow2Shift rounds n up to a multiple of 1<<k, then returns the
// quotient (i.e. how many k-sized units n occupies).
func alignPow2Shift(n, k int) int {
	return (n + (1 << uint(k)) - 1) >> uint(k)
}

// FrameInvariants is fixed for the duration of one frame's encoding:
// dimensions (raw and padded), qindex, speed, derived search bounds, and
// the frame's position in the show/reference timeline. Grounded
// directly on rav1e's FrameInvariants::new.
type FrameInvariants struct {
	QIndex   int
	Speed    int
	Width    int
	Height   int
	PaddedW  int
	PaddedH  int
	SbWidth  int
	SbHeight int
	WInB     int // mode-info columns (MiCols)
	HInB     int // mode-info rows (MiRows)

	Number            uint64
	ShowFrame         bool
	ShowExistingFrame bool
	ExistingFrameIdx  int
	ErrorResilient    bool
	IntraOnly         bool
	AllowHighPrecisionMV bool
	FrameType         FrameType

	UseReducedTxSet  bool
	MinPartitionSize block.Size
}

// NewFrameInvariants derives a FrameInvariants from raw frame dimensions
// and the encoder's qindex/speed configuration, applying the same
// speed-to-min-partition-size ladder and padding rules as lib.rs's
// FrameInvariants::new.
func NewFrameInvariants(width, height, qindex, speed int) FrameInvariants {
	var minPart block.Size
	switch {
	case speed <= 1:
		minPart = block.Block4x4
	case speed <= 2:
		minPart = block.Block8x8
	case speed <= 3:
		minPart = block.Block16x16
	default:
		minPart = block.Block32x32
	}

	return FrameInvariants{
		QIndex:               qindex,
		Speed:                speed,
		Width:                width,
		Height:               height,
		PaddedW:              alignPow2(width, 3),
		PaddedH:              alignPow2(height, 3),
		SbWidth:              alignPow2Shift(width, 6),
		SbHeight:             alignPow2Shift(height, 6),
		WInB:                 2 * alignPow2Shift(width, 3),
		HInB:                 2 * alignPow2Shift(height, 3),
		Number:               0,
		ShowFrame:            true,
		ErrorResilient:       true,
		IntraOnly:            false,
		AllowHighPrecisionMV: true,
		FrameType:            FrameKey,
		ShowExistingFrame:    false,
		UseReducedTxSet:      speed > 1,
		MinPartitionSize:     minPart,
	}
}
