// Package context holds the per-tile coding state a tile's
// ContextWriter reads and mutates: the mode-info grid (BlockContext) and
// the adaptive CDF tables (entropy.CDFContext), bundled so that syntax
// emission, neighbor-context derivation, and checkpoint/rollback all live
// behind one API (spec 4.D/4.E/4.F).
package context

import (
	"github.com/go-av1/av1enc/internal/block"
	"github.com/go-av1/av1enc/internal/geom"
)

// cell is one 4x4 mode-info unit's recorded decision, read back by
// neighboring blocks to derive context indices (spec 4.F).
type cell struct {
	skip    bool
	mode    block.Mode
	bsize   block.Size
	present bool
}

// BlockContext is the mode-info grid for one tile: every 4x4 unit's
// decoded size/mode/skip, plus the running above/left arrays partition
// context derivation reads. It is grounded on the rav1e BlockContext
// this core's frame driver calls into (lib.rs's `cw.bc.*` call sites),
// reshaped into an explicit Go grid type.
type BlockContext struct {
	cols     []cell // row-major dense grid, wIn*hIn cells
	wIn, hIn int

	// abovePartitionCtx and leftPartitionCtx hold one 0/1 split flag per
	// mode-info column (whole tile) and per mode-info row (within the
	// current superblock row), reset at tile and superblock-row boundaries.
	abovePartitionCtx []uint8
	leftPartitionCtx  []uint8
}

// NewBlockContext allocates a BlockContext sized for a wIn x hIn
// mode-info grid (the frame's width/height rounded up to 4x4 units).
func NewBlockContext(wIn, hIn int) *BlockContext {
	return &BlockContext{
		wIn:               wIn,
		hIn:               hIn,
		cols:              make([]cell, wIn*hIn),
		abovePartitionCtx: make([]uint8, wIn),
		leftPartitionCtx:  make([]uint8, 1<<geom.SbSizeLog2Mi),
	}
}

func (bc *BlockContext) idx(bo geom.BlockOffset) int {
	return bo.Y*bc.wIn + bo.X
}

func (bc *BlockContext) inBounds(bo geom.BlockOffset) bool {
	return bo.X >= 0 && bo.Y >= 0 && bo.X < bc.wIn && bo.Y < bc.hIn
}

// InBounds reports whether bo falls within the tile's mode-info grid,
// used by the partition walkers to decide when a block at the frame's
// right/bottom edge must split to stay in bounds.
func (bc *BlockContext) InBounds(bo geom.BlockOffset) bool {
	return bc.inBounds(bo)
}

// SetSkip records bo's skip decision across the bsize footprint it
// covers, so later blocks reading a neighbor's skip flag see it.
func (bc *BlockContext) SetSkip(bo geom.BlockOffset, bsize block.Size, skip bool) {
	bc.forEachMi(bo, bsize, func(i int) { bc.cols[i].skip = skip; bc.cols[i].present = true })
}

// SetMode records bo's chosen prediction mode across its footprint.
func (bc *BlockContext) SetMode(bo geom.BlockOffset, bsize block.Size, mode block.Mode) {
	bc.forEachMi(bo, bsize, func(i int) { bc.cols[i].mode = mode; bc.cols[i].bsize = bsize })
}

func (bc *BlockContext) forEachMi(bo geom.BlockOffset, bsize block.Size, f func(i int)) {
	for dy := 0; dy < bsize.HeightMi(); dy++ {
		y := bo.Y + dy
		if y >= bc.hIn {
			continue
		}
		for dx := 0; dx < bsize.WidthMi(); dx++ {
			x := bo.X + dx
			if x >= bc.wIn {
				continue
			}
			f(y*bc.wIn + x)
		}
	}
}

// SkipContext derives the 3-way context index write_skip's CDF is keyed
// on, from the above and left neighbors' recorded skip flags (0, 1 or 2
// of them skipped).
func (bc *BlockContext) SkipContext(bo geom.BlockOffset) int {
	ctx := 0
	if above := (geom.BlockOffset{X: bo.X, Y: bo.Y - 1}); bc.inBounds(above) {
		c := bc.cols[bc.idx(above)]
		if c.present && c.skip {
			ctx++
		}
	}
	if left := (geom.BlockOffset{X: bo.X - 1, Y: bo.Y}); bc.inBounds(left) {
		c := bc.cols[bc.idx(left)]
		if c.present && c.skip {
			ctx++
		}
	}
	return ctx
}

// ResetSkipContext clears the recorded skip flags across bo's bsize
// footprint in luma mode-info units (xdec and ydec are not used), so
// SkipContext treats those units as unrecorded. The tile encoder calls it
// after coding a block signaled as skip, where rav1e calls
// `reset_skip_context`.
func (bc *BlockContext) ResetSkipContext(bo geom.BlockOffset, bsize block.Size, xdec, ydec int) {
	bc.forEachMi(bo, bsize, func(i int) { bc.cols[i].present = false })
}

// ResetLeftContexts clears the left-edge running context at the start of
// each superblock row, mirroring rav1e's per-row `reset_left_contexts`.
func (bc *BlockContext) ResetLeftContexts() {
	for i := range bc.leftPartitionCtx {
		bc.leftPartitionCtx[i] = 0
	}
}

// PartitionContext derives the 4-way context index write_partition's CDF
// is keyed on from the above/left split flags at bo.
func (bc *BlockContext) PartitionContext(bo geom.BlockOffset, bsize block.Size) int {
	above := bc.abovePartitionCtx[bo.X] != 0
	row := bo.Y & geom.LocalBlockMask
	left := bc.leftPartitionCtx[row] != 0
	ctx := 0
	if above {
		ctx++
	}
	if left {
		ctx += 2
	}
	return ctx
}

// UpdatePartitionContext records that bo was coded at subsize within a
// bsize-sized parent, updating the above/left running arrays that later
// siblings' PartitionContext reads.
func (bc *BlockContext) UpdatePartitionContext(bo geom.BlockOffset, subsize, bsize block.Size) {
	split := uint8(0)
	if subsize < bsize {
		split = 1
	}
	for dx := 0; dx < bsize.WidthMi(); dx++ {
		x := bo.X + dx
		if x < len(bc.abovePartitionCtx) {
			bc.abovePartitionCtx[x] = split
		}
	}
	for dy := 0; dy < bsize.HeightMi(); dy++ {
		row := (bo.Y + dy) & geom.LocalBlockMask
		if row < len(bc.leftPartitionCtx) {
			bc.leftPartitionCtx[row] = split
		}
	}
}

// GridCheckpoint is an opaque snapshot of BlockContext's mutable state.
type GridCheckpoint struct {
	cols              []cell
	abovePartitionCtx []uint8
	leftPartitionCtx  []uint8
}

// Snapshot captures bc's current grid and running contexts. Unlike
// entropy.Writer's O(1) checkpoint, this allocates: the mode-info grid
// is not a small fixed-size value, so a trial's rollback point is a copy
// of the slices touched so far. Speed levels that skip RDO trials never
// pay this cost.
func (bc *BlockContext) Snapshot() GridCheckpoint {
	cp := GridCheckpoint{
		cols:              make([]cell, len(bc.cols)),
		abovePartitionCtx: make([]uint8, len(bc.abovePartitionCtx)),
		leftPartitionCtx:  make([]uint8, len(bc.leftPartitionCtx)),
	}
	copy(cp.cols, bc.cols)
	copy(cp.abovePartitionCtx, bc.abovePartitionCtx)
	copy(cp.leftPartitionCtx, bc.leftPartitionCtx)
	return cp
}

// Restore rewinds bc to a previously captured GridCheckpoint.
func (bc *BlockContext) Restore(cp GridCheckpoint) {
	copy(bc.cols, cp.cols)
	copy(bc.abovePartitionCtx, cp.abovePartitionCtx)
	copy(bc.leftPartitionCtx, cp.leftPartitionCtx)
}
