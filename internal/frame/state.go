package frame

import "github.com/go-av1/av1enc/internal/geom"

// Frame is three sample planes (Y, U, V), grounded on lib.rs's
// `Frame { planes: [Plane; 3] }`. Chroma planes are subsampled 4:2:0.
type Frame struct {
	Planes [3]*geom.Plane
}

// NewFrame allocates a Frame sized for a paddedW x paddedH luma plane,
// with 4:2:0 chroma planes at half resolution in both dimensions.
func NewFrame(paddedW, paddedH int) *Frame {
	return &Frame{
		Planes: [3]*geom.Plane{
			geom.NewPlane(paddedW, paddedH, 0, 0),
			geom.NewPlane(paddedW/2, paddedH/2, 1, 1),
			geom.NewPlane(paddedW/2, paddedH/2, 1, 1),
		},
	}
}

// State is the mutable per-frame buffers the partition walk reads from
// and writes into: the original input samples and the reconstruction
// under construction. Grounded on lib.rs's `FrameState { input, rec }`.
type State struct {
	Input *Frame
	Rec   *Frame
}

// NewState allocates a State sized for fi's padded dimensions.
func NewState(fi FrameInvariants) *State {
	return &State{
		Input: NewFrame(fi.PaddedW, fi.PaddedH),
		Rec:   NewFrame(fi.PaddedW, fi.PaddedH),
	}
}
