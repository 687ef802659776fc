// Package block defines the finite enumerations the partition/mode search
// and transform pipeline operate over: block sizes, transform sizes and
// types, and prediction modes.
package block

// Size is one of the square and rectangular coding-block sizes AV1's
// partition tree can produce. Only the sizes this core's NONE/SPLIT
// partition restriction can reach are exercised (4x4 through 64x64,
// square only), but the full rectangular set is modeled so the type is
// future-proof against a richer partition search.
type Size int

const (
	Block4x4 Size = iota
	Block4x8
	Block8x4
	Block8x8
	Block8x16
	Block16x8
	Block16x16
	Block16x32
	Block32x16
	Block32x32
	Block32x64
	Block64x32
	Block64x64
	BlockInvalid
)

var sizeWidthLog2 = [BlockInvalid]int{
	Block4x4: 2, Block4x8: 2, Block8x4: 3, Block8x8: 3,
	Block8x16: 3, Block16x8: 4, Block16x16: 4, Block16x32: 4,
	Block32x16: 5, Block32x32: 5, Block32x64: 5, Block64x32: 6, Block64x64: 6,
}

var sizeHeightLog2 = [BlockInvalid]int{
	Block4x4: 2, Block4x8: 3, Block8x4: 2, Block8x8: 3,
	Block8x16: 4, Block16x8: 3, Block16x16: 4, Block16x32: 5,
	Block32x16: 4, Block32x32: 5, Block32x64: 6, Block64x32: 5, Block64x64: 6,
}

// Width returns the block's width in pixels.
func (s Size) Width() int { return 1 << uint(sizeWidthLog2[s]) }

// Height returns the block's height in pixels.
func (s Size) Height() int { return 1 << uint(sizeHeightLog2[s]) }

// WidthMi returns the block's width in 4x4 mode-info units.
func (s Size) WidthMi() int { return s.Width() >> 2 }

// HeightMi returns the block's height in 4x4 mode-info units.
func (s Size) HeightMi() int { return s.Height() >> 2 }

// String names the block size as AV1 spec text (e.g. "BLOCK_16X16").
func (s Size) String() string {
	if s < 0 || s >= BlockInvalid {
		return "BLOCK_INVALID"
	}
	return blockSizeNames[s]
}

var blockSizeNames = [BlockInvalid]string{
	"BLOCK_4X4", "BLOCK_4X8", "BLOCK_8X4", "BLOCK_8X8",
	"BLOCK_8X16", "BLOCK_16X8", "BLOCK_16X16", "BLOCK_16X32",
	"BLOCK_32X16", "BLOCK_32X32", "BLOCK_32X64", "BLOCK_64X32", "BLOCK_64X64",
}

// Partition is the decomposition applied to a block; this core only ever
// chooses between coding a block whole or quartering it.
type Partition int

const (
	PartitionNone Partition = iota
	PartitionSplit
	PartitionInvalid
)

// Subsize returns the block size produced by applying p to bsize. Only
// square sizes and the NONE/SPLIT partitions are supported, matching this
// core's restricted partition set.
func Subsize(bsize Size, p Partition) Size {
	if p == PartitionNone {
		return bsize
	}
	switch bsize {
	case Block8x8:
		return Block4x4
	case Block16x16:
		return Block8x8
	case Block32x32:
		return Block16x16
	case Block64x64:
		return Block32x32
	default:
		return BlockInvalid
	}
}

// PlaneSize maps a luma block size to the corresponding chroma block size
// under the given subsampling shifts. Under 4:2:0 (xdec=ydec=1) this
// simply halves both dimensions, clamped at Block4x4.
func PlaneSize(bsize Size, xdec, ydec int) Size {
	if xdec == 0 && ydec == 0 {
		return bsize
	}
	w := sizeWidthLog2[bsize] - xdec
	h := sizeHeightLog2[bsize] - ydec
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	for sz := Size(0); sz < BlockInvalid; sz++ {
		if sizeWidthLog2[sz] == w && sizeHeightLog2[sz] == h {
			return sz
		}
	}
	return Block4x4
}

// HasChroma reports whether a chroma block is present at mode-info
// position (miX, miY) for the given luma block size under the plane's
// subsampling shifts. Under subsampling, narrow/short blocks at odd
// mode-info positions share their chroma with a sibling, so only one of
// the pair emits chroma syntax.
func HasChroma(miX, miY int, bsize Size, xdec, ydec int) bool {
	if bsize.WidthMi() == 1 && xdec != 0 && miX&1 == 0 {
		return false
	}
	if bsize.HeightMi() == 1 && ydec != 0 && miY&1 == 0 {
		return false
	}
	return true
}
