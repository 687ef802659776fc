// Package tile implements the partition recursion, block emission, and
// transform-block coding that together produce one tile's entropy-coded
// payload (spec 4.G/4.G′/4.G″/4.H), grounded directly on rav1e's
// encode_tx_block/encode_block/write_tx_blocks/encode_partition_*/
// encode_tile in original_source/src/lib.rs.
package tile

import (
	"github.com/go-av1/av1enc/internal/block"
	"github.com/go-av1/av1enc/internal/context"
	"github.com/go-av1/av1enc/internal/frame"
	"github.com/go-av1/av1enc/internal/geom"
	"github.com/go-av1/av1enc/internal/predict"
	"github.com/go-av1/av1enc/internal/transform"
)

// clip8b saturates v to a sample byte.
func clip8b(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// EncodeTxBlock is spec 4.G's encode_tx_block: predict, and unless
// skip, residual/transform/quantize/entropy-code/dequantize/inverse-
// transform/reconstruct, in that fixed order. signalTxType marks the
// luma tx blocks whose tx_type was chosen by a real search rather than
// defaulted to DCT_DCT, so WriteCoeffs knows to signal it (spec 4.G
// step 5 lists tx_type as a coefficient-coding input); chroma tx blocks
// always pass false since their type is derived from the chroma mode,
// never signaled.
func EncodeTxBlock(fi frame.FrameInvariants, fs *frame.State, cw *context.Writer, p int, bo geom.BlockOffset, mode block.Mode, txSize block.TxSize, txType block.TxType, planeBsize block.Size, po geom.PlaneOffset, skip bool, signalTxType bool) {
	rec := fs.Rec.Planes[p]
	input := fs.Input.Planes[p]
	stride := rec.Cfg.Stride
	size := txSize.Width()
	off := rec.Index(po.X, po.Y)

	predict.Predict(rec.Data, off, stride, size, mode, 0)

	if skip {
		return
	}

	residual := make([]int32, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			in := int32(input.Data[input.Index(po.X+x, po.Y+y)])
			pred := int32(rec.Data[off+y*stride+x])
			residual[y*size+x] = in - pred
		}
	}

	coeffs := transform.Forward2D(residual, size, txType)
	levels, _ := transform.Quantize(coeffs, fi.QIndex)

	txSizeClass := txSize.Log2() - 2
	cw.WriteCoeffs(txSizeClass, levels, txType, signalTxType)

	dequant := transform.Dequantize(levels, fi.QIndex)
	recon := transform.Inverse2D(dequant, size, txType)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			pred := int32(rec.Data[off+y*stride+x])
			rec.Data[off+y*stride+x] = clip8b(pred + recon[y*size+x])
		}
	}
}
