// Package predict implements the intra prediction kernels the transform
// pipeline calls between partition/mode decision and residual
// computation (spec 4.G step "predict intra samples").
//
// Every kernel shares one calling convention, grounded on the teacher's
// dsp/predict_lossy.go: each function receives the destination plane and
// a pixel offset such that buf[off] is the block's top-left sample, with
// reference pixels read from buf[off-1+j*stride] (left column) and
// buf[off+i-stride] (top row) — already-reconstructed causal neighbors,
// since blocks are coded in raster order. Unlike the teacher, which
// special-cases every fixed size (dc16/dc8uv/...), these kernels take an
// explicit size so one implementation serves every tx size 4..32 this
// core's TX_MODE_LARGEST rule can select.
package predict

import "github.com/go-av1/av1enc/internal/block"

// clip8b saturates v to the [0,255] range a sample byte can hold.
func clip8b(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Predict fills a size x size block at (buf, off, stride) per mode,
// using angleDelta for directional modes (ignored otherwise).
func Predict(buf []uint8, off, stride, size int, mode block.Mode, angleDelta int) {
	switch mode {
	case block.DCPred:
		dc(buf, off, stride, size)
	case block.VPred:
		vertical(buf, off, stride, size)
	case block.HPred:
		horizontal(buf, off, stride, size)
	case block.PaethPred:
		paeth(buf, off, stride, size)
	case block.SmoothPred:
		smooth(buf, off, stride, size)
	case block.SmoothVPred:
		smoothV(buf, off, stride, size)
	case block.SmoothHPred:
		smoothH(buf, off, stride, size)
	default:
		directional(buf, off, stride, size, mode, angleDelta)
	}
}

func dc(buf []uint8, off, stride, size int) {
	sum := 0
	for i := 0; i < size; i++ {
		sum += int(buf[off+i-stride])
		sum += int(buf[off-1+i*stride])
	}
	v := uint8((sum + size) / (2 * size))
	fill(buf, off, stride, size, v)
}

func vertical(buf []uint8, off, stride, size int) {
	for j := 0; j < size; j++ {
		row := off + j*stride
		copy(buf[row:row+size], buf[off-stride:off-stride+size])
	}
}

func horizontal(buf []uint8, off, stride, size int) {
	for j := 0; j < size; j++ {
		v := buf[off-1+j*stride]
		row := off + j*stride
		for i := 0; i < size; i++ {
			buf[row+i] = v
		}
	}
}

// paeth picks, per sample, whichever of top/left/top-left best predicts
// the gradient between them — AV1's PAETH_PRED, same rule as the
// teacher's tm16/tm8uv "true motion" predictor generalized from a
// constant top-left bias to a per-sample closest-gradient choice.
func paeth(buf []uint8, off, stride, size int) {
	tl := int(buf[off-stride-1])
	for j := 0; j < size; j++ {
		left := int(buf[off-1+j*stride])
		row := off + j*stride
		for i := 0; i < size; i++ {
			top := int(buf[off+i-stride])
			base := left + top - tl
			pLeft := abs(base - left)
			pTop := abs(base - top)
			pTL := abs(base - tl)
			var v uint8
			switch {
			case pLeft <= pTop && pLeft <= pTL:
				v = uint8(left)
			case pTop <= pTL:
				v = uint8(top)
			default:
				v = uint8(tl)
			}
			buf[row+i] = v
		}
	}
}

// smooth blends the vertical and horizontal smooth predictors,
// approximating AV1's SMOOTH_PRED without its exact 8-bit weight tables.
func smooth(buf []uint8, off, stride, size int) {
	br := int(buf[off+size-stride])
	tr := int(buf[off-1+size*stride])
	for j := 0; j < size; j++ {
		left := int(buf[off-1+j*stride])
		row := off + j*stride
		wv := size - j
		for i := 0; i < size; i++ {
			t := int(buf[off+i-stride])
			wh := size - i
			vVert := (t*wv + br*(size-wv)) / size
			vHoriz := (left*wh + tr*(size-wh)) / size
			buf[row+i] = clip8b((vVert + vHoriz) / 2)
		}
	}
}

func smoothV(buf []uint8, off, stride, size int) {
	br := int(buf[off+size-stride])
	for j := 0; j < size; j++ {
		row := off + j*stride
		w := size - j
		for i := 0; i < size; i++ {
			t := int(buf[off+i-stride])
			v := (t*w + br*(size-w)) / size
			buf[row+i] = clip8b(v)
		}
	}
}

func smoothH(buf []uint8, off, stride, size int) {
	tr := int(buf[off-1+size*stride])
	for j := 0; j < size; j++ {
		left := int(buf[off-1+j*stride])
		row := off + j*stride
		for i := 0; i < size; i++ {
			w := size - i
			v := (left*w + tr*(size-w)) / size
			buf[row+i] = clip8b(v)
		}
	}
}

// directional approximates AV1's angular predictors (D45/D135/D113/
// D157/D203/D67): each mode's nominal angle, refined by angleDelta steps
// of 3 degrees, is used to project every destination sample back onto
// the single row of top+left reference samples and pick the
// integer-position reference at the projected offset truncated toward
// zero (no sub-pixel interpolation).
func directional(buf []uint8, off, stride, size int, mode block.Mode, angleDelta int) {
	angle := nominalAngle(mode) + angleDelta*3
	dx, dy := angleToSlope(angle)
	ref := make([]int, 2*size+2)
	refOff := size + 1
	ref[refOff-1] = int(buf[off-stride-1])
	for i := 0; i < size; i++ {
		ref[refOff+i] = int(buf[off+i-stride])
	}
	for i := 1; i <= size; i++ {
		ref[refOff-1-i] = int(buf[off-1+(i-1)*stride])
	}

	for j := 0; j < size; j++ {
		row := off + j*stride
		for i := 0; i < size; i++ {
			pos := (i+1)*dx + (j+1)*dy
			idx := refOff + pos/256
			if idx < 0 {
				idx = 0
			}
			if idx >= len(ref) {
				idx = len(ref) - 1
			}
			buf[row+i] = clip8b(ref[idx])
		}
	}
}

func nominalAngle(mode block.Mode) int {
	switch mode {
	case block.D45Pred:
		return 45
	case block.D135Pred:
		return 135
	case block.D113Pred:
		return 113
	case block.D157Pred:
		return 157
	case block.D203Pred:
		return 203
	case block.D67Pred:
		return 67
	default:
		return 90
	}
}

// angleToSlope converts a degree angle to a fixed-point (8.8) dx/dy
// pair used to walk the reference line, separating the four
// octant-like bands AV1's angular intra prediction spans.
func angleToSlope(angle int) (dx, dy int) {
	switch {
	case angle < 90:
		return -256 * (90 - angle) / 90, -256
	case angle == 90:
		return 0, -256
	case angle < 180:
		return -256, -256 * (180 - angle) / 90
	case angle == 180:
		return -256, 0
	default:
		return -256 * (270 - angle) / 90, 256
	}
}

func fill(buf []uint8, off, stride, size int, v uint8) {
	for j := 0; j < size; j++ {
		row := off + j*stride
		for i := 0; i < size; i++ {
			buf[row+i] = v
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
