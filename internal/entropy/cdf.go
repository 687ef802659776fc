package entropy

// Cdf2, Cdf4, Cdf7 and Cdf13 are fixed-size adaptive distributions for
// 2-, 4-, 7- and 13-way symbols respectively. They are arrays, not
// slices: every CDFContext field is a value type, so snapshotting the
// whole context for a speculative RDO trial is a single struct copy,
// not a walk of per-field allocations (spec 4.D, DESIGN NOTES on
// checkpoint cost).
type Cdf2 = [3]uint16
type Cdf4 = [5]uint16
type Cdf7 = [8]uint16
type Cdf13 = [14]uint16

func uniformBoundaries(nsyms int) []uint16 {
	b := make([]uint16, nsyms+1)
	for i := 0; i < nsyms-1; i++ {
		b[i] = uint16(probTop * (i + 1) / nsyms)
	}
	return b
}

// NewCdf2 returns a freshly-initialized uniform 2-way CDF.
func NewCdf2() Cdf2 {
	var c Cdf2
	copy(c[:], uniformBoundaries(2))
	return c
}

// NewCdf4 returns a freshly-initialized uniform 4-way CDF.
func NewCdf4() Cdf4 {
	var c Cdf4
	copy(c[:], uniformBoundaries(4))
	return c
}

// NewCdf7 returns a freshly-initialized uniform 7-way CDF.
func NewCdf7() Cdf7 {
	var c Cdf7
	copy(c[:], uniformBoundaries(7))
	return c
}

// NewCdf13 returns a freshly-initialized uniform 13-way CDF.
func NewCdf13() Cdf13 {
	var c Cdf13
	copy(c[:], uniformBoundaries(13))
	return c
}

// biasedCdf2 returns a 2-way CDF whose single boundary sits at the given
// fraction of probTop rather than at the midpoint, used to seed skip-ish
// flags away from uniform when qindex suggests a prior.
func biasedCdf2(num, den int) Cdf2 {
	return Cdf2{uint16(probTop * num / den), probTop, 0}
}

// TxSizeClasses is the number of distinct transform-size buckets the
// coefficient and tx-type CDFs are contexted on (4x4, 8x8, 16x16, 32x32,
// plus one spare bucket reserved for future rectangular transforms).
const TxSizeClasses = 5

// CDFContext bundles every adaptive probability table the tile's
// ContextWriter reads and updates while coding one tile's syntax. It is
// seeded once per tile from the frame's base qindex (coarser qindices
// bias skip-ish flags toward "skipped", matching the intuition that a
// coarser quantizer makes all-zero coefficient blocks more likely) and
// then adapts as Writer.WriteSymbol observes real symbols.
//
// Checkpointing a CDFContext is `saved := *ctx`; restoring is
// `*ctx = saved`. Every field is a fixed-size array, so both are plain
// value copies with no aliasing risk.
type CDFContext struct {
	Skip       [3]Cdf2
	Partition  [4]Cdf2
	YMode      Cdf13
	UVMode     Cdf13
	AngleDelta [8]Cdf7
	IsInter    [3]Cdf2
	TxType     [2][TxSizeClasses]Cdf4
	TxbSkip    [TxSizeClasses]Cdf2
	CoeffBase  [TxSizeClasses][4]Cdf4
	CoeffBr    [TxSizeClasses][4]Cdf4
	DcSign     [3]Cdf2
}

// NewCDFContext builds a fresh CDFContext seeded from qindex (0-255,
// AV1's base quantizer index). Most tables start uniform; the
// skip-shaped ones (Skip, TxbSkip) get a qindex-dependent prior since a
// coarser quantizer should make the coder expect more skipped blocks and
// all-zero transform blocks from the very first superblock, rather than
// learning it from scratch over the course of the tile.
func NewCDFContext(qindex int) *CDFContext {
	c := &CDFContext{}

	skipNum := 128 + qindex/2 // ranges 128..240 of 256 after the clamp below
	if skipNum > 240 {
		skipNum = 240
	}
	// Symbol 1 ("skipped"/"all zero") gets skipNum/256 of the mass.
	for i := range c.Skip {
		c.Skip[i] = biasedCdf2(256-skipNum, 256)
	}
	for i := range c.TxbSkip {
		c.TxbSkip[i] = biasedCdf2(256-skipNum, 256)
	}

	for i := range c.Partition {
		c.Partition[i] = NewCdf2()
	}
	c.YMode = NewCdf13()
	c.UVMode = NewCdf13()
	for i := range c.AngleDelta {
		c.AngleDelta[i] = NewCdf7()
	}
	for i := range c.IsInter {
		c.IsInter[i] = NewCdf2()
	}
	for p := range c.TxType {
		for t := range c.TxType[p] {
			c.TxType[p][t] = NewCdf4()
		}
	}
	for t := range c.CoeffBase {
		for ctx := range c.CoeffBase[t] {
			c.CoeffBase[t][ctx] = NewCdf4()
			c.CoeffBr[t][ctx] = NewCdf4()
		}
	}
	for i := range c.DcSign {
		c.DcSign[i] = NewCdf2()
	}
	return c
}

// TxSizeClass maps a transform size's log2 dimension (2 for 4x4 up to 5
// for 32x32) to its coefficient/tx-type context bucket.
func TxSizeClass(log2Dim int) int {
	class := log2Dim - 2
	if class < 0 {
		class = 0
	}
	if class >= TxSizeClasses {
		class = TxSizeClasses - 1
	}
	return class
}
