package tile

import (
	"github.com/go-av1/av1enc/internal/block"
	"github.com/go-av1/av1enc/internal/context"
	"github.com/go-av1/av1enc/internal/frame"
	"github.com/go-av1/av1enc/internal/geom"
	"github.com/go-av1/av1enc/internal/predict"
	"github.com/go-av1/av1enc/internal/rdo"
)

// chromaSubX, chromaSubY are this core's fixed 4:2:0 subsampling shifts
// (spec Non-goal: non-4:2:0 chroma is out of scope).
const chromaSubX, chromaSubY = 1, 1

// EncodeBlock is spec 4.G′: emits every syntax element for one chosen
// partition leaf, then hands off to WriteTxBlocks for the residual path.
func EncodeBlock(fi frame.FrameInvariants, fs *frame.State, cw *context.Writer, lumaMode, chromaMode block.Mode, bsize block.Size, bo geom.BlockOffset, skip bool) {
	isInter := lumaMode.IsInter()

	cw.Bc.SetSkip(bo, bsize, skip)
	cw.WriteSkip(bo, skip)

	if fi.FrameType == frame.FrameInter {
		cw.WriteIsInter(bo, isInter)
		if !isInter {
			cw.WriteIntraMode(bo, lumaMode)
		}
	} else {
		cw.WriteIntraModeKf(bo, lumaMode)
	}

	cw.Bc.SetMode(bo, bsize, lumaMode)

	if lumaMode.IsDirectional() && bsize >= block.Block8x8 {
		cw.WriteAngleDelta(lumaMode, 0)
	}

	hasChroma := block.HasChroma(bo.X, bo.Y, bsize, chromaSubX, chromaSubY)
	if hasChroma {
		cw.WriteIntraUVMode(chromaMode)
		if chromaMode.IsDirectional() && bsize >= block.Block8x8 {
			cw.WriteAngleDelta(chromaMode, 0)
		}
	}

	if skip {
		cw.Bc.ResetSkipContext(bo, bsize, chromaSubX, chromaSubY)
	}

	txSize := block.LargestTxSize(bsize)
	txSetType := block.GetExtTxSetType(txSize, isInter, fi.UseReducedTxSet)

	signalTxType := txSetType > block.ExtTxSetDCTOnly && fi.Speed <= 3

	var txType block.TxType
	if signalTxType {
		// One redundant transform-type decision per encoded block: the
		// trial below recomputes prediction/residual that WriteTxBlocks'
		// first luma tx block will recompute again — the same tradeoff
		// rav1e's own encode_block notes (lib.rs's "FIXME: redundant
		// transform type decision" comment at the equivalent call site).
		txType = decideLumaTxType(fi, fs, cw, lumaMode, bsize, bo, txSize, txSetType)
	} else {
		txType = block.DctDct
	}

	WriteTxBlocks(fi, fs, cw, lumaMode, chromaMode, bo, bsize, txSize, txType, skip, signalTxType)
}

func decideLumaTxType(fi frame.FrameInvariants, fs *frame.State, cw *context.Writer, mode block.Mode, bsize block.Size, bo geom.BlockOffset, txSize block.TxSize, setType block.TxSetType) block.TxType {
	rec := fs.Rec.Planes[0]
	input := fs.Input.Planes[0]
	size := txSize.Width()
	po := bo.PlaneOffset(rec.Cfg)
	off := rec.Index(po.X, po.Y)

	predict.Predict(rec.Data, off, rec.Cfg.Stride, size, mode, 0)

	residual := make([]int32, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			in := int32(input.Data[input.Index(po.X+x, po.Y+y)])
			pred := int32(rec.Data[off+y*rec.Cfg.Stride+x])
			residual[y*size+x] = in - pred
		}
	}

	txSizeClass := txSize.Log2() - 2
	return rdo.DecideTxType(cw, residual, size, fi.QIndex, txSizeClass, setType, fi.Speed)
}
