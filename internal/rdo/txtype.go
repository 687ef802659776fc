package rdo

import (
	"github.com/go-av1/av1enc/internal/block"
	"github.com/go-av1/av1enc/internal/context"
	"github.com/go-av1/av1enc/internal/transform"
)

// DecideTxType implements spec 4.F's transform-type decision: when
// setType allows more than DCT_DCT and speed is low enough to afford the
// search (speed <= 3), every legal TxType is trial-coded and the
// minimum-RD one wins; otherwise DCT_DCT is returned unconditionally
// without running any trial.
func DecideTxType(cw *context.Writer, residual []int32, size, qindex, txSizeClass int, setType block.TxSetType, speed int) block.TxType {
	if setType == block.ExtTxSetDCTOnly || speed > 3 {
		return block.DctDct
	}

	lambda := Lambda(qindex)
	legal := block.LegalTxTypes(setType)

	bestType := legal[0]
	bestCost := -1.0

	for _, t := range legal {
		cp := cw.Snapshot()
		bitsBefore := len(cw.W.Bytes()) * 8

		coeffs := transform.Forward2D(residual, size, t)
		levels, _ := transform.Quantize(coeffs, qindex)

		distortion := estimateDistortion(residual, levels, size, qindex, t)
		cw.WriteCoeffs(txSizeClass, levels, t, true)

		bitsAfter := len(cw.W.Bytes()) * 8
		rdCost := Cost(lambda, distortion, bitsAfter-bitsBefore)

		cw.Restore(cp)

		if bestCost < 0 || rdCost < bestCost {
			bestCost = rdCost
			bestType = t
		}
	}
	return bestType
}

// estimateDistortion reconstructs the residual through the trial tx
// type's inverse transform and measures squared error against the exact
// (unquantized) residual, the same D measurement mode decision uses.
func estimateDistortion(residual []int32, levels []int32, size, qindex int, t block.TxType) int64 {
	dequant := transform.Dequantize(levels, qindex)
	recon := transform.Inverse2D(dequant, size, t)
	var d int64
	for i, r := range residual {
		diff := int64(r) - int64(recon[i])
		d += diff * diff
	}
	return d
}
