package block

// TxSize is a transform block dimension, from 4x4 up to the largest size
// this core's TX_MODE_LARGEST rule ever selects, 32x32.
type TxSize int

const (
	Tx4x4 TxSize = iota
	Tx8x8
	Tx16x16
	Tx32x32
)

var txSizeLog2 = [...]int{Tx4x4: 2, Tx8x8: 3, Tx16x16: 4, Tx32x32: 5}

// Log2 returns log2 of the transform's width in pixels.
func (t TxSize) Log2() int { return txSizeLog2[t] }

// Width returns the transform's width in pixels.
func (t TxSize) Width() int { return 1 << uint(txSizeLog2[t]) }

// Height returns the transform's height in pixels (square-only in this core).
func (t TxSize) Height() int { return t.Width() }

// WidthMi returns the transform's width in 4x4 mode-info units.
func (t TxSize) WidthMi() int { return t.Width() >> 2 }

// HeightMi returns the transform's height in 4x4 mode-info units.
func (t TxSize) HeightMi() int { return t.WidthMi() }

// Area returns width*height in samples.
func (t TxSize) Area() int { return t.Width() * t.Height() }

// LargestTxSize implements the TX_MODE_LARGEST derivation from a coding
// block size: the biggest square transform no larger than the block.
func LargestTxSize(bsize Size) TxSize {
	switch bsize {
	case Block4x4:
		return Tx4x4
	case Block8x8:
		return Tx8x8
	case Block16x16:
		return Tx16x16
	default:
		return Tx32x32
	}
}

// UVTxSize derives the chroma transform size from the luma coding block
// size, valid for 4:2:0 subsampling only.
func UVTxSize(bsize Size) TxSize {
	switch bsize {
	case Block4x4, Block8x8:
		return Tx4x4
	case Block16x16:
		return Tx8x8
	case Block32x32:
		return Tx16x16
	default:
		return Tx32x32
	}
}

// Type identifies a 2D transform kernel: a pair of 1D transforms applied
// to rows and columns.
type TxType int

const (
	DctDct TxType = iota
	AdstDct
	DctAdst
	AdstAdst
)

func (t TxType) String() string {
	switch t {
	case DctDct:
		return "DCT_DCT"
	case AdstDct:
		return "ADST_DCT"
	case DctAdst:
		return "DCT_ADST"
	case AdstAdst:
		return "ADST_ADST"
	default:
		return "TX_TYPE_INVALID"
	}
}

// TxSetType gates which TxTypes are legal for a given (tx_size, inter,
// reduced_tx_set) combination.
type TxSetType int

const (
	ExtTxSetDCTOnly TxSetType = iota
	ExtTxSetDTT4Identity
	ExtTxSetDTT4IdentityHV
	ExtTxSetDTT9IdentityHV
	ExtTxSetAll16
)

// GetExtTxSetType mirrors AV1's tx-set selection: 32x32 transforms, and
// 16x16 transforms under the reduced set or on intra blocks, collapse to
// DCT-only; every other size gets a set whose legal types are the 4-way
// DCT/ADST combinations (the core never selects inter paths, so the
// is_inter branch is modeled but always false in practice).
func GetExtTxSetType(txSize TxSize, isInter, useReducedTxSet bool) TxSetType {
	if txSize == Tx32x32 {
		return ExtTxSetDCTOnly
	}
	if useReducedTxSet {
		if txSize == Tx16x16 {
			return ExtTxSetDCTOnly
		}
		return ExtTxSetDTT4Identity
	}
	if isInter {
		if txSize == Tx16x16 {
			return ExtTxSetDTT4IdentityHV
		}
		return ExtTxSetAll16
	}
	if txSize == Tx16x16 {
		return ExtTxSetDCTOnly
	}
	return ExtTxSetDTT4IdentityHV
}

// LegalTxTypes returns the TxTypes allowed under setType, in a fixed
// deterministic order (mode-decision ties break on first candidate).
func LegalTxTypes(setType TxSetType) []TxType {
	switch setType {
	case ExtTxSetDCTOnly:
		return []TxType{DctDct}
	default:
		return []TxType{DctDct, AdstDct, DctAdst, AdstAdst}
	}
}

// UVIntraModeToTxType maps a chroma intra prediction mode to the
// transform type conventionally paired with it (directional modes favor
// an ADST along the prediction's dominant axis; DC/SMOOTH/PAETH use
// plain DCT).
func UVIntraModeToTxType(mode Mode) TxType {
	switch mode {
	case VPred, D113Pred, D157Pred:
		return AdstDct
	case HPred, D203Pred, D67Pred:
		return DctAdst
	case D45Pred, D135Pred:
		return AdstAdst
	default:
		return DctDct
	}
}
