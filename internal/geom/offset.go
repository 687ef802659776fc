package geom

// MiSizeLog2 is log2 of the mode-info unit size in pixels (4x4 -> 2).
const MiSizeLog2 = 2

// SbSizeLog2Mi is log2 of the superblock size in mode-info units (64/4 -> 4).
const SbSizeLog2Mi = 4

// BlockOffset is a block position in 4x4 mode-info units, measured from
// the top-left of the frame.
type BlockOffset struct {
	X, Y int
}

// PlaneOffset is a pixel position within a single plane's own (possibly
// subsampled) coordinate space.
type PlaneOffset struct {
	X, Y int
}

// SuperBlockOffset is a superblock position in 64x64 units.
type SuperBlockOffset struct {
	X, Y int
}

// PlaneOffset converts a mode-info block offset to a pixel offset within
// the given plane, applying its subsampling shifts.
func (bo BlockOffset) PlaneOffset(cfg PlaneConfig) PlaneOffset {
	return PlaneOffset{
		X: (bo.X >> cfg.Xdec) << MiSizeLog2,
		Y: (bo.Y >> cfg.Ydec) << MiSizeLog2,
	}
}

// LocalBlockMask isolates the mode-info position of a block relative to
// the start of its containing superblock.
const LocalBlockMask = (1 << SbSizeLog2Mi) - 1

// SbOffset returns the superblock offset, in mode-info units, that
// contains bo.
func (bo BlockOffset) SbOffset() BlockOffset {
	mask := ^LocalBlockMask
	return BlockOffset{X: bo.X & mask, Y: bo.Y & mask}
}

// BlockOffset converts a superblock offset plus a mode-info-unit
// sub-offset within it into an absolute BlockOffset.
func (sbo SuperBlockOffset) BlockOffset(subX, subY int) BlockOffset {
	return BlockOffset{
		X: sbo.X<<SbSizeLog2Mi + subX,
		Y: sbo.Y<<SbSizeLog2Mi + subY,
	}
}
