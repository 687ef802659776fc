package rdo

import (
	"github.com/go-av1/av1enc/internal/block"
	"github.com/go-av1/av1enc/internal/context"
	"github.com/go-av1/av1enc/internal/geom"
	"github.com/go-av1/av1enc/internal/predict"
	"github.com/go-av1/av1enc/internal/transform"
)

// ModeResult is the winning candidate from DecideMode: the luma mode,
// whether the block can be coded with no residual at all, and the RD
// cost it was chosen at (for a parent partition decision to compare
// against the cost of splitting).
type ModeResult struct {
	Mode    block.Mode
	Skip    bool
	RDCost  float64
	TxType  block.TxType
	NonZero bool
}

// DecideMode implements spec 4.F's mode decision: for every candidate in
// the fixed intra mode search order, predict into rec, transform the
// residual against input with DCT_DCT, quantize, and trial-code the
// syntax through cw's checkpoint/rollback to measure bits. The
// first-candidate-wins tie-break is implicit in iterating
// block.IntraModes in order and only replacing the incumbent on a
// strictly lower cost.
func DecideMode(cw *context.Writer, rec, input *geom.Plane, bo geom.BlockOffset, bsize block.Size, qindex int) ModeResult {
	size := bsize.Width()
	lambda := Lambda(qindex)
	txSize := block.LargestTxSize(bsize)
	txSizeClass := txSize.Log2() - 2

	po := bo.PlaneOffset(rec.Cfg)
	off := rec.Index(po.X, po.Y)
	stride := rec.Cfg.Stride

	var best ModeResult
	best.RDCost = -1

	residual := make([]int32, size*size)

	for _, mode := range block.IntraModes {
		cp := cw.Snapshot()
		bitsBefore := len(cw.W.Bytes()) * 8

		predict.Predict(rec.Data, off, stride, size, mode, 0)

		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				p := int32(rec.Data[off+y*stride+x])
				in := int32(input.Data[input.Index(po.X+x, po.Y+y)])
				residual[y*size+x] = in - p
			}
		}

		coeffs := transform.Forward2D(residual, size, block.DctDct)
		levels, lastNonZero := transform.Quantize(coeffs, qindex)
		distortion := estimateDistortion(residual, levels, size, qindex, block.DctDct)

		cw.WriteSkip(bo, false)
		cw.WriteIntraModeKf(bo, mode)
		allZero := cw.WriteCoeffs(txSizeClass, levels, block.DctDct, false)

		bitsAfter := len(cw.W.Bytes()) * 8
		bits := bitsAfter - bitsBefore
		rdCost := Cost(lambda, distortion, bits)

		cw.Restore(cp)

		if best.RDCost < 0 || rdCost < best.RDCost {
			best = ModeResult{
				Mode:    mode,
				Skip:    lastNonZero == 0,
				RDCost:  rdCost,
				TxType:  block.DctDct,
				NonZero: !allZero,
			}
		}
	}

	predict.Predict(rec.Data, off, stride, size, best.Mode, 0)
	return best
}
