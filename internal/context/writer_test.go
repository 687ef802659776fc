package context

import (
	"testing"

	"github.com/go-av1/av1enc/internal/block"
	"github.com/go-av1/av1enc/internal/geom"
)

func TestWriter_Checkpoint_Rollback_RoundTrip(t *testing.T) {
	cw := NewWriter(100, 32, 32, 256)

	bo := geom.BlockOffset{X: 4, Y: 4}
	cw.WriteSkip(bo, false)
	cw.WriteIntraModeKf(bo, block.DCPred)
	cw.Bc.SetMode(bo, block.Block8x8, block.DCPred)
	cw.Bc.SetSkip(bo, block.Block8x8, false)

	bytesBefore := len(cw.W.Bytes())
	fcBefore := *cw.Fc
	cp := cw.Snapshot()

	// Mutate everything a trial could touch.
	cw.WriteSkip(geom.BlockOffset{X: 8, Y: 8}, true)
	cw.WriteIntraModeKf(geom.BlockOffset{X: 8, Y: 8}, block.VPred)
	cw.Bc.SetMode(geom.BlockOffset{X: 8, Y: 8}, block.Block16x16, block.VPred)
	cw.Bc.SetSkip(geom.BlockOffset{X: 8, Y: 8}, block.Block16x16, true)
	cw.WritePartition(geom.BlockOffset{X: 0, Y: 0}, block.Block64x64, block.PartitionSplit)
	cw.Bc.UpdatePartitionContext(geom.BlockOffset{X: 0, Y: 0}, block.Block32x32, block.Block64x64)

	cw.Restore(cp)

	if len(cw.W.Bytes()) != bytesBefore {
		t.Fatalf("coder bytes diverged: got %d want %d", len(cw.W.Bytes()), bytesBefore)
	}
	if *cw.Fc != fcBefore {
		t.Fatal("CDF context diverged after rollback")
	}

	// The mutated neighbor cell must not have survived the rollback.
	ctx := cw.Bc.SkipContext(geom.BlockOffset{X: 8, Y: 9})
	if ctx != 0 {
		t.Fatalf("block context leaked mutation past rollback: skip context = %d", ctx)
	}
}

func TestWriter_SkipContext_NeighborDerived(t *testing.T) {
	cw := NewWriter(100, 16, 16, 64)
	bo := geom.BlockOffset{X: 2, Y: 2}

	if ctx := cw.Bc.SkipContext(bo); ctx != 0 {
		t.Fatalf("expected 0 context with no recorded neighbors, got %d", ctx)
	}

	cw.Bc.SetSkip(geom.BlockOffset{X: 2, Y: 1}, block.Block4x4, true)
	cw.Bc.SetSkip(geom.BlockOffset{X: 1, Y: 2}, block.Block4x4, true)

	if ctx := cw.Bc.SkipContext(bo); ctx != 2 {
		t.Fatalf("expected context 2 with both neighbors skipped, got %d", ctx)
	}
}
