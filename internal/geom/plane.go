// Package geom implements plane/geometry primitives: padded pixel planes,
// block/superblock offset arithmetic, and the alignment helpers the rest
// of the encoder builds on.
package geom

// AlignPowerOfTwo rounds n up to the nearest multiple of 2^k.
func AlignPowerOfTwo(n, k int) int {
	mask := (1 << uint(k)) - 1
	return (n + mask) &^ mask
}

// AlignPowerOfTwoAndShift returns ceil(n / 2^k).
func AlignPowerOfTwoAndShift(n, k int) int {
	return (n + (1 << uint(k)) - 1) >> uint(k)
}

// PlaneConfig describes the addressable geometry of one color plane.
type PlaneConfig struct {
	Stride int // row stride in samples, including padding
	// Xdec/Ydec are the subsampling shifts relative to luma: 0 for Y,
	// 1 for U/V under 4:2:0.
	Xdec, Ydec int
	// Width/Height are the padded logical extents of the plane, aligned
	// to 8 pixels in the plane's own (subsampled) coordinate space.
	Width, Height int
}

// Plane is a rectangular 8-bit pixel buffer for one color component, with
// row padding on all sides so that edge blocks can safely read a fixed
// border past the logical extent.
type Plane struct {
	Cfg    PlaneConfig
	Data   []uint8
	Border int // padding pixels on every side
}

// NewPlane allocates a plane sized for width x height logical samples
// (already in this plane's subsampled coordinate space), padded to a
// multiple of 8 in both dimensions plus a fixed border for out-of-range
// reads during prediction.
func NewPlane(width, height, xdec, ydec int) *Plane {
	const border = 32
	paddedW := AlignPowerOfTwo(width, 3) + 2*border
	paddedH := AlignPowerOfTwo(height, 3) + 2*border
	p := &Plane{
		Cfg: PlaneConfig{
			Stride: paddedW,
			Xdec:   xdec,
			Ydec:   ydec,
			Width:  AlignPowerOfTwo(width, 3),
			Height: AlignPowerOfTwo(height, 3),
		},
		Data:   make([]uint8, paddedW*paddedH),
		Border: border,
	}
	return p
}

// Index returns the linear offset of pixel (x, y) in plane-local
// coordinates, where (0, 0) is the top-left logical sample (i.e. border
// offset already applied).
func (p *Plane) Index(x, y int) int {
	return (y+p.Border)*p.Cfg.Stride + (x + p.Border)
}

// At returns the sample at (x, y), clamping to the plane's logical extent
// so that callers reading one border's worth past an edge block get the
// edge-replicated sample rather than an out-of-bounds read.
func (p *Plane) At(x, y int) uint8 {
	if x < 0 {
		x = 0
	} else if x >= p.Cfg.Width {
		x = p.Cfg.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= p.Cfg.Height {
		y = p.Cfg.Height - 1
	}
	return p.Data[p.Index(x, y)]
}

// Set writes a sample at (x, y). The caller must stay within stride
// bounds; Set performs no bounds check of its own.
func (p *Plane) Set(x, y int, v uint8) {
	p.Data[p.Index(x, y)] = v
}

// Row returns a mutable slice over one row, from logical x = 0 through the
// end of the right border (the left border is excluded), useful for tight
// prediction/reconstruction loops that want direct indexing instead of
// repeated At/Set calls.
func (p *Plane) Row(y int) []uint8 {
	off := p.Index(0, y)
	return p.Data[off : off+p.Cfg.Stride-p.Border]
}

// PadEdges replicates the rightmost/bottom-most logical samples into the
// border so that subsequent unclamped reads (e.g. vectorized prediction
// kernels) stay in range.
func (p *Plane) PadEdges() {
	w, h := p.Cfg.Width, p.Cfg.Height
	stride := p.Cfg.Stride

	// Left/right borders, one logical row at a time.
	for y := 0; y < h; y++ {
		rowOff := p.Index(0, y)
		first := p.Data[rowOff]
		last := p.Data[rowOff+w-1]
		for x := 1; x <= p.Border; x++ {
			p.Data[rowOff-x] = first
		}
		for x := w; x < w+p.Border; x++ {
			p.Data[rowOff+x] = last
		}
	}

	// Top/bottom borders, copying whole (already left/right-padded) rows.
	firstRow := p.Index(-p.Border, 0)
	lastRow := p.Index(-p.Border, h-1)
	for dy := 1; dy <= p.Border; dy++ {
		dst := firstRow - dy*stride
		copy(p.Data[dst:dst+stride], p.Data[firstRow:firstRow+stride])
	}
	for dy := 1; dy <= p.Border; dy++ {
		dst := lastRow + dy*stride
		copy(p.Data[dst:dst+stride], p.Data[lastRow:lastRow+stride])
	}
}
