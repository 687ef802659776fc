package tile

import (
	"github.com/go-av1/av1enc/internal/block"
	"github.com/go-av1/av1enc/internal/context"
	"github.com/go-av1/av1enc/internal/frame"
	"github.com/go-av1/av1enc/internal/geom"
)

// WriteTxBlocks is spec 4.G″, grounded on rav1e's write_tx_blocks: it
// tiles a coded block's luma plane with LargestTxSize-sized transform
// blocks, then emits the single chroma transform block that covers the
// whole chroma-subsampled area, when present. signalTxType is true when
// EncodeBlock ran a real tx_type search for this block (its tx set
// offers more than DCT_DCT), and is threaded to the luma tx blocks only.
func WriteTxBlocks(fi frame.FrameInvariants, fs *frame.State, cw *context.Writer, lumaMode, chromaMode block.Mode, bo geom.BlockOffset, bsize block.Size, txSize block.TxSize, txType block.TxType, skip bool, signalTxType bool) {
	bw := bsize.WidthMi() / txSize.WidthMi()
	bh := bsize.HeightMi() / txSize.HeightMi()

	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			tbo := geom.BlockOffset{
				X: bo.X + bx*txSize.WidthMi(),
				Y: bo.Y + by*txSize.HeightMi(),
			}
			po := tbo.PlaneOffset(fs.Rec.Planes[0].Cfg)
			EncodeTxBlock(fi, fs, cw, 0, tbo, lumaMode, txSize, txType, bsize, po, skip, signalTxType)
		}
	}

	if !block.HasChroma(bo.X, bo.Y, bsize, chromaSubX, chromaSubY) {
		return
	}

	// Under 4:2:0, a luma block narrower or shorter than 8px (WidthMi or
	// HeightMi == 1) shares its chroma with the sibling mode-info column
	// or row at the same 8x8-aligned position; back the chroma block
	// offset up to that shared position rather than the current one's.
	cbo := bo
	if bsize.WidthMi() == 1 {
		cbo.X = bo.X &^ 1
	}
	if bsize.HeightMi() == 1 {
		cbo.Y = bo.Y &^ 1
	}

	uvTxSize := block.UVTxSize(bsize)
	uvTxType := block.UVIntraModeToTxType(chromaMode)
	chromaBsize := block.PlaneSize(bsize, chromaSubX, chromaSubY)

	for p := 1; p <= 2; p++ {
		po := cbo.PlaneOffset(fs.Rec.Planes[p].Cfg)
		EncodeTxBlock(fi, fs, cw, p, cbo, chromaMode, uvTxSize, uvTxType, chromaBsize, po, skip, false)
	}
}
