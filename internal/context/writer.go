package context

import (
	"github.com/go-av1/av1enc/internal/block"
	"github.com/go-av1/av1enc/internal/entropy"
	"github.com/go-av1/av1enc/internal/geom"
)

// Writer is the syntax-element emitter a tile codes through: every
// write_* method here corresponds to one syntax element in the AV1 tile
// group OBU, grounded on rav1e's ContextWriter call sites in
// encode_block/write_tx_blocks (lib.rs). It owns the range coder, the
// adaptive CDF tables, and the mode-info grid together so a caller never
// has to thread three objects through the partition/mode search.
type Writer struct {
	W  *entropy.Writer
	Fc *entropy.CDFContext
	Bc *BlockContext
}

// NewWriter builds a Writer over a fresh range coder, a CDFContext
// seeded from qindex, and a BlockContext sized for the frame's mode-info
// grid — one per tile, mirroring rav1e's per-tile
// `ContextWriter::new(CDFContext::new(qindex), BlockContext::new(...))`.
func NewWriter(qindex, wIn, hIn, expectedSize int) *Writer {
	return &Writer{
		W:  entropy.NewWriter(expectedSize),
		Fc: entropy.NewCDFContext(qindex),
		Bc: NewBlockContext(wIn, hIn),
	}
}

// Checkpoint snapshots everything a speculative RDO trial can mutate:
// coder state (O(1)), CDF tables (O(1), a value-type struct copy) and
// the mode-info grid (allocating, since it's unbounded in size).
type Checkpoint struct {
	coder entropy.Checkpoint
	fc    entropy.CDFContext
	bc    GridCheckpoint
}

// Snapshot captures cw's full state for later Restore.
func (cw *Writer) Snapshot() Checkpoint {
	return Checkpoint{
		coder: cw.W.Snapshot(),
		fc:    *cw.Fc,
		bc:    cw.Bc.Snapshot(),
	}
}

// Restore rewinds cw to a previously captured Snapshot, discarding
// everything coded since.
func (cw *Writer) Restore(cp Checkpoint) {
	cw.W.Restore(cp.coder)
	*cw.Fc = cp.fc
	cw.Bc.Restore(cp.bc)
}

// WriteSkip codes the skip flag for the block at bo, keyed on the
// 3-way neighbor-derived skip context.
func (cw *Writer) WriteSkip(bo geom.BlockOffset, skip bool) {
	ctx := cw.Bc.SkipContext(bo)
	cw.W.WriteSymbol(cw.Fc.Skip[ctx][:], b2i(skip))
}

// WritePartition codes the NONE/SPLIT decision for a block of size bsize
// at bo, keyed on the 4-way above/left partition context.
func (cw *Writer) WritePartition(bo geom.BlockOffset, bsize block.Size, p block.Partition) {
	ctx := cw.Bc.PartitionContext(bo, bsize)
	cw.W.WriteSymbol(cw.Fc.Partition[ctx][:], int(p))
}

// WriteIsInter codes the is_inter flag. This core never selects an inter
// mode, so callers always pass false, but the syntax element is still
// present in the bitstream (spec 4.G′ step 2).
func (cw *Writer) WriteIsInter(bo geom.BlockOffset, isInter bool) {
	ctx := 0
	cw.W.WriteSymbol(cw.Fc.IsInter[ctx][:], b2i(isInter))
}

// WriteIntraModeKf codes the luma intra mode using the keyframe-only
// syntax element (no above/left mode context mixing — this core's
// single-context table stands in for the per-neighbor table AV1 itself
// keys keyframe y_mode on).
func (cw *Writer) WriteIntraModeKf(bo geom.BlockOffset, mode block.Mode) {
	idx := intraModeIndex(mode)
	cw.W.WriteSymbol(cw.Fc.YMode[:], idx)
}

// WriteIntraMode codes the luma intra mode on a non-keyframe. This core
// never produces inter frames (spec Non-goal: motion estimation), so
// this path is unreachable in practice; it shares YMode's CDF with
// WriteIntraModeKf rather than AV1's separate non-keyframe mode table.
func (cw *Writer) WriteIntraMode(bo geom.BlockOffset, mode block.Mode) {
	cw.WriteIntraModeKf(bo, mode)
}

// WriteIntraUVMode codes the chroma intra mode.
func (cw *Writer) WriteIntraUVMode(mode block.Mode) {
	idx := intraModeIndex(mode)
	cw.W.WriteSymbol(cw.Fc.UVMode[:], idx)
}

// WriteAngleDelta codes a directional mode's angle_delta in
// [-MAX_ANGLE_DELTA, MAX_ANGLE_DELTA], biased to a non-negative symbol
// index for CDF coding.
func (cw *Writer) WriteAngleDelta(mode block.Mode, delta int) {
	const maxAngleDelta = 3
	idx := delta + maxAngleDelta
	cw.W.WriteSymbol(cw.Fc.AngleDelta[angleDeltaIndex(mode)][:], idx)
}

// WriteTxType codes the transform type for a coded, non-skip tx block
// out of the legal set for its tx-size class.
func (cw *Writer) WriteTxType(isUV bool, txSizeClass int, t block.TxType) {
	p := 0
	if isUV {
		p = 1
	}
	cw.W.WriteSymbol(cw.Fc.TxType[p][txSizeClass][:], int(t))
}

// WriteTxbSkip codes the all-zero flag for one transform block.
func (cw *Writer) WriteTxbSkip(txSizeClass int, allZero bool) {
	cw.W.WriteSymbol(cw.Fc.TxbSkip[txSizeClass][:], b2i(allZero))
}

// WriteCoeffBase codes a coefficient's base magnitude level (0..3,
// saturating at 3 for anything larger — larger magnitudes are coded as
// a bypass extension by the caller) at scan-position context ctx.
func (cw *Writer) WriteCoeffBase(txSizeClass, ctx, level int) {
	if level > 3 {
		level = 3
	}
	cw.W.WriteSymbol(cw.Fc.CoeffBase[txSizeClass][ctx][:], level)
}

// WriteCoeffBr codes one base-range increment step (0..3) for
// coefficients whose base level saturated.
func (cw *Writer) WriteCoeffBr(txSizeClass, ctx, step int) {
	if step > 3 {
		step = 3
	}
	cw.W.WriteSymbol(cw.Fc.CoeffBr[txSizeClass][ctx][:], step)
}

// WriteDcSign codes a DC coefficient's sign, keyed on the 3-way
// neighbor-derived DC-sign context.
func (cw *Writer) WriteDcSign(ctx int, negative bool) {
	cw.W.WriteSymbol(cw.Fc.DcSign[ctx][:], b2i(negative))
}

// WriteGolombBypass codes v with raw (non-adaptive) bits, used for
// coefficient-level and EOB extensions past their CDF-coded range.
func (cw *Writer) WriteGolombBypass(v uint32) {
	length := 0
	for x := v + 1; x > 1; x >>= 1 {
		length++
	}
	for i := 0; i < length; i++ {
		cw.W.WriteBit(0)
	}
	cw.W.WriteBit(1)
	cw.W.WriteLiteral(v+1, length)
}

// WriteCoeffs codes one transform block's quantized coefficients
// (row-major, DC first) at txSizeClass, following spec 4.G step 5's
// level-map shape: an all-zero flag, then (for a luma block whose tx
// set offers more than DCT_DCT) the tx_type symbol, then per
// coefficient a CDF-coded base level (saturating at 3) with a
// scan-position context, a golomb-bypass extension for levels at or
// past the saturation point, and a sign bit (adaptively coded for the
// DC coefficient, bypass-coded for AC). It reports whether every
// coefficient was zero, so the caller can decide the block's skip flag.
func (cw *Writer) WriteCoeffs(txSizeClass int, coeffs []int32, txType block.TxType, signalTxType bool) bool {
	allZero := true
	for _, c := range coeffs {
		if c != 0 {
			allZero = false
			break
		}
	}
	cw.WriteTxbSkip(txSizeClass, allZero)
	if allZero {
		return true
	}
	if signalTxType {
		cw.WriteTxType(false, txSizeClass, txType)
	}
	for i, c := range coeffs {
		ctx := i
		if ctx > 3 {
			ctx = 3
		}
		mag := c
		sign := false
		if mag < 0 {
			sign = true
			mag = -mag
		}
		level := int(mag)
		if level >= 3 {
			cw.WriteCoeffBase(txSizeClass, ctx, 3)
			cw.WriteGolombBypass(uint32(level - 3))
		} else {
			cw.WriteCoeffBase(txSizeClass, ctx, level)
		}
		if level == 0 {
			continue
		}
		if i == 0 {
			cw.WriteDcSign(0, sign)
		} else {
			cw.W.WriteBit(b2i(sign))
		}
	}
	return false
}

func intraModeIndex(m block.Mode) int {
	for i, im := range block.IntraModes {
		if im == m {
			return i
		}
	}
	return 0
}

func angleDeltaIndex(m block.Mode) int {
	switch m {
	case block.VPred:
		return 0
	case block.HPred:
		return 1
	case block.D45Pred:
		return 2
	case block.D135Pred:
		return 3
	case block.D113Pred:
		return 4
	case block.D157Pred:
		return 5
	case block.D203Pred:
		return 6
	case block.D67Pred:
		return 7
	default:
		return 0
	}
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
