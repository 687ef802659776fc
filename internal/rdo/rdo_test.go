package rdo

import (
	"testing"

	"github.com/go-av1/av1enc/internal/block"
	"github.com/go-av1/av1enc/internal/context"
	"github.com/go-av1/av1enc/internal/geom"
)

func TestDecide_PicksLowerCost(t *testing.T) {
	if c := Decide(10, 20); c.Partition != block.PartitionNone {
		t.Errorf("Decide(10, 20) = %v, want NONE", c.Partition)
	}
	if c := Decide(20, 10); c.Partition != block.PartitionSplit {
		t.Errorf("Decide(20, 10) = %v, want SPLIT", c.Partition)
	}
}

func TestLambda_MonotonicInQIndex(t *testing.T) {
	if Lambda(50) >= Lambda(200) {
		t.Errorf("Lambda should increase with qindex: Lambda(50)=%f Lambda(200)=%f", Lambda(50), Lambda(200))
	}
}

func newTestPlanes(size int, input, rec uint8) (*geom.Plane, *geom.Plane) {
	in := geom.NewPlane(size, size, 0, 0)
	r := geom.NewPlane(size, size, 0, 0)
	for i := range in.Data {
		in.Data[i] = input
	}
	for i := range r.Data {
		r.Data[i] = rec
	}
	return r, in
}

func TestDecideMode_FlatBlock_PicksDC(t *testing.T) {
	cw := context.NewWriter(100, 4, 4, 256)
	rec, input := newTestPlanes(16, 128, 0)

	result := DecideMode(cw, rec, input, geom.BlockOffset{}, block.Block8x8, 100)
	if result.Mode != block.DCPred {
		t.Errorf("expected DC_PRED for a perfectly flat block, got %v", result.Mode)
	}
}

func TestDecideTxType_DCTOnlySet_AlwaysDctDct(t *testing.T) {
	cw := context.NewWriter(100, 4, 4, 64)
	residual := make([]int32, 64)
	for i := range residual {
		residual[i] = int32(i - 32)
	}
	txType := DecideTxType(cw, residual, 8, 100, 1, block.ExtTxSetDCTOnly, 3)
	if txType != block.DctDct {
		t.Errorf("DCTONLY set: got %v, want DCT_DCT", txType)
	}
}
