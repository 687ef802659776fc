package tile

import (
	"math"

	"github.com/go-av1/av1enc/internal/block"
	"github.com/go-av1/av1enc/internal/context"
	"github.com/go-av1/av1enc/internal/frame"
	"github.com/go-av1/av1enc/internal/geom"
	"github.com/go-av1/av1enc/internal/rdo"
)

// decideBlock runs the luma and chroma mode searches for one leaf block
// and reports the combined result plus the rd cost a parent partition
// decision compares against. Chroma mode decision reuses DecideMode
// against the U plane only (a scope reduction against AV1's joint U+V
// distortion search — DESIGN.md's internal/tile entry documents it).
func decideBlock(fi frame.FrameInvariants, fs *frame.State, cw *context.Writer, bo geom.BlockOffset, bsize block.Size) (lumaMode, chromaMode block.Mode, skip bool, cost float64) {
	luma := rdo.DecideMode(cw, fs.Rec.Planes[0], fs.Input.Planes[0], bo, bsize, fi.QIndex)
	cost = luma.RDCost
	lumaMode = luma.Mode
	skip = luma.Skip
	chromaMode = block.DCPred

	if block.HasChroma(bo.X, bo.Y, bsize, chromaSubX, chromaSubY) {
		chromaBsize := block.PlaneSize(bsize, chromaSubX, chromaSubY)
		cbo := bo
		if bsize.WidthMi() == 1 {
			cbo.X = bo.X &^ 1
		}
		if bsize.HeightMi() == 1 {
			cbo.Y = bo.Y &^ 1
		}
		chroma := rdo.DecideMode(cw, fs.Rec.Planes[1], fs.Input.Planes[1], cbo, chromaBsize, fi.QIndex)
		chromaMode = chroma.Mode
		cost += chroma.RDCost
		skip = skip && chroma.Skip
	}

	return lumaMode, chromaMode, skip, cost
}

// updatePartitionContext applies rav1e's update_partition_context gate:
// only blocks at or above 8x8 update the neighbor partition context, and
// a SPLIT above 8x8 leaves it for the (already-visited) children to set
// instead (lib.rs:791-793).
func updatePartitionContext(cw *context.Writer, bo geom.BlockOffset, subsize, bsize block.Size, partition block.Partition) {
	if bsize >= block.Block8x8 && (bsize == block.Block8x8 || partition != block.PartitionSplit) {
		cw.Bc.UpdatePartitionContext(bo, subsize, bsize)
	}
}

// writePartitionSymbol applies rav1e's `if bsize >= BLOCK_8X8` gate on
// write_partition: sub-8x8 blocks (reachable at speed 0/1's 4x4 minimum,
// or forced by a border split) never carry a partition symbol of their
// own.
func writePartitionSymbol(cw *context.Writer, bo geom.BlockOffset, bsize block.Size, p block.Partition) {
	if bsize >= block.Block8x8 {
		cw.WritePartition(bo, bsize, p)
	}
}

// splitChildren returns the four quadrant offsets bsize splits into.
func splitChildren(bo geom.BlockOffset, bsize block.Size) [4]geom.BlockOffset {
	half := bsize.WidthMi() / 2
	return [4]geom.BlockOffset{
		{X: bo.X, Y: bo.Y},
		{X: bo.X + half, Y: bo.Y},
		{X: bo.X, Y: bo.Y + half},
		{X: bo.X + half, Y: bo.Y + half},
	}
}

// mustSplitBlock reports whether bo/bsize either overruns the frame's
// mode-info grid at the right/bottom edge or is a 64x64 superblock,
// both of which rav1e always forces to SPLIT regardless of
// min_partition_size (lib.rs:715-717,809-811).
func mustSplitBlock(fi frame.FrameInvariants, bo geom.BlockOffset, bsize block.Size) bool {
	bs := bsize.WidthMi()
	return bo.X+bs > fi.WInB || bo.Y+bs > fi.HInB || bsize >= block.Block64x64
}

// EncodePartitionBottomUp is spec 4.H's speed==0 path, grounded on
// rav1e's encode_partition_bottomup: code the block whole, checkpoint,
// then compare against splitting into four and recursing, committing
// whichever shape was cheaper and returning its cost so a parent call
// can fold it into its own none-vs-split comparison. A block that
// overruns the grid edge or reaches 64x64 is always split, matching
// rav1e's must_split.
func EncodePartitionBottomUp(fi frame.FrameInvariants, fs *frame.State, cw *context.Writer, bo geom.BlockOffset, bsize block.Size) float64 {
	if bsize == block.BlockInvalid || !cw.Bc.InBounds(bo) {
		return 0
	}

	mustSplit := mustSplitBlock(fi, bo, bsize)
	canSplit := bsize > fi.MinPartitionSize || mustSplit

	preCp := cw.Snapshot()

	var noneLuma, noneChroma block.Mode
	var noneSkip bool
	noneCost := math.MaxFloat64
	partition := block.PartitionNone

	if !mustSplit {
		writePartitionSymbol(cw, bo, bsize, block.PartitionNone)
		noneLuma, noneChroma, noneSkip, noneCost = decideBlock(fi, fs, cw, bo, bsize)
		EncodeBlock(fi, fs, cw, noneLuma, noneChroma, bsize, bo, noneSkip)
	}

	cost := noneCost

	if canSplit {
		cw.Restore(preCp)
		subsize := block.Subsize(bsize, block.PartitionSplit)
		children := splitChildren(bo, bsize)

		writePartitionSymbol(cw, bo, bsize, block.PartitionSplit)
		partition = block.PartitionSplit

		splitCost := 0.0
		for _, c := range children {
			splitCost += EncodePartitionBottomUp(fi, fs, cw, c, subsize)
		}

		if !mustSplit && noneCost < splitCost {
			cw.Restore(preCp)
			partition = block.PartitionNone
			writePartitionSymbol(cw, bo, bsize, block.PartitionNone)
			EncodeBlock(fi, fs, cw, noneLuma, noneChroma, bsize, bo, noneSkip)
			cost = noneCost
		} else {
			cost = splitCost
		}
	}

	subsize := block.Subsize(bsize, partition)
	updatePartitionContext(cw, bo, subsize, bsize, partition)
	return cost
}

// EncodePartitionTopDown is spec 4.H's speed>0 path, grounded on rav1e's
// encode_partition_topdown: decide NONE vs SPLIT by comparing the
// whole-block mode-search cost against the sum of the four quartered
// children's costs, then commit only the winning shape's syntax. A
// block that overruns the grid edge or reaches 64x64 is always split,
// matching rav1e's must_split; at or below min_partition_size a block is
// coded NONE directly with no RDO comparison.
func EncodePartitionTopDown(fi frame.FrameInvariants, fs *frame.State, cw *context.Writer, bo geom.BlockOffset, bsize block.Size) {
	if bsize == block.BlockInvalid || !cw.Bc.InBounds(bo) {
		return
	}

	mustSplit := mustSplitBlock(fi, bo, bsize)

	var partition block.Partition
	var luma, chroma block.Mode
	var skip bool

	switch {
	case mustSplit:
		partition = block.PartitionSplit

	case bsize > fi.MinPartitionSize:
		noneCp := cw.Snapshot()
		noneLuma, noneChroma, noneSkip, noneCost := decideBlock(fi, fs, cw, bo, bsize)
		cw.Restore(noneCp)
		luma, chroma, skip = noneLuma, noneChroma, noneSkip

		subsize := block.Subsize(bsize, block.PartitionSplit)
		children := splitChildren(bo, bsize)
		splitCost := 0.0
		for _, c := range children {
			if !cw.Bc.InBounds(c) {
				continue
			}
			cp := cw.Snapshot()
			_, _, _, cost := decideBlock(fi, fs, cw, c, subsize)
			cw.Restore(cp)
			splitCost += cost
		}
		partition = rdo.Decide(noneCost, splitCost).Partition

	default:
		luma, chroma, skip, _ = decideBlock(fi, fs, cw, bo, bsize)
		partition = block.PartitionNone
	}

	subsize := block.Subsize(bsize, partition)
	writePartitionSymbol(cw, bo, bsize, partition)

	switch partition {
	case block.PartitionNone:
		EncodeBlock(fi, fs, cw, luma, chroma, bsize, bo, skip)
	case block.PartitionSplit:
		for _, c := range splitChildren(bo, bsize) {
			EncodePartitionTopDown(fi, fs, cw, c, subsize)
		}
	}

	updatePartitionContext(cw, bo, subsize, bsize, partition)
}

// EncodeTile is spec 4.H's per-superblock-row driver, grounded on
// rav1e's encode_tile: reset the left-edge partition context at the
// start of every superblock row, dispatch to the bottom-up walker at
// speed 0 and the top-down walker otherwise, then flush the range coder.
func EncodeTile(fi frame.FrameInvariants, fs *frame.State, cw *context.Writer) []byte {
	for sbY := 0; sbY < fi.SbHeight; sbY++ {
		cw.Bc.ResetLeftContexts()
		for sbX := 0; sbX < fi.SbWidth; sbX++ {
			sbo := geom.SuperBlockOffset{X: sbX, Y: sbY}
			bo := sbo.BlockOffset(0, 0)
			if fi.Speed == 0 {
				EncodePartitionBottomUp(fi, fs, cw, bo, block.Block64x64)
			} else {
				EncodePartitionTopDown(fi, fs, cw, bo, block.Block64x64)
			}
		}
	}
	return cw.W.Done()
}
