// Package av1enc is a pure-Go intra-path AV1 encoder core: partition
// and mode search, the transform-block pipeline, an adaptive range
// coder, and the uncompressed header writer, wired into a per-frame
// driver. Motion estimation and every other inter-prediction path are
// out of scope (the core never selects an inter mode).
package av1enc

import (
	"github.com/go-av1/av1enc/internal/context"
	"github.com/go-av1/av1enc/internal/frame"
	"github.com/go-av1/av1enc/internal/geom"
	"github.com/go-av1/av1enc/internal/header"
	"github.com/go-av1/av1enc/internal/tile"
)

// Config is the set of knobs spec.md §6's CLI surface exposes.
type Config struct {
	Width, Height int
	Quantizer     int // 0-255
	Speed         int // 0-10
}

// Encoder drives spec 4.J's per-frame loop: copy input samples, emit the
// uncompressed header plus tile payload (or, for a repeated frame, the
// header alone), and track the last reconstruction for show_existing_frame.
type Encoder struct {
	seq      frame.Sequence
	cfg      Config
	lastRec  *frame.Frame
	frameNum uint64
}

// NewEncoder builds an Encoder for cfg. Width/Height must already be the
// raw (unpadded) frame dimensions; FrameInvariants derives the padded
// geometry per frame.
func NewEncoder(cfg Config) *Encoder {
	return &Encoder{seq: frame.NewSequence(), cfg: cfg}
}

// EncodedFrame is one frame's emitted payload plus the invariants it was
// produced under, for a caller to log or mux into a container.
type EncodedFrame struct {
	Payload   []byte
	FrameType frame.FrameType
	QIndex    int
	Number    uint64
}

// EncodeFrame is spec 4.J's main operation: ingest one input frame's
// Y/U/V planes (already at this encoder's configured dimensions,
// 8 bits/sample), run the full partition/mode/transform/entropy pipeline
// over it, and return the header+tile payload. Every frame produced by
// this core is a key frame (intra-only core); show_existing_frame is
// exposed via EncodeExistingFrame instead.
func (e *Encoder) EncodeFrame(y, u, v []byte) (EncodedFrame, error) {
	fi := frame.NewFrameInvariants(e.cfg.Width, e.cfg.Height, e.cfg.Quantizer, e.cfg.Speed)
	fi.Number = e.frameNum

	fs := frame.NewState(fi)
	copyPlane(fs.Input.Planes[0], y, e.cfg.Width, e.cfg.Height)
	copyPlane(fs.Input.Planes[1], u, (e.cfg.Width+1)/2, (e.cfg.Height+1)/2)
	copyPlane(fs.Input.Planes[2], v, (e.cfg.Width+1)/2, (e.cfg.Height+1)/2)

	cw := context.NewWriter(fi.QIndex, fi.WInB, fi.HInB, e.cfg.Width*e.cfg.Height/4)
	hdr := header.WriteUncompressedHeader(e.seq, fi)
	tileBytes := tile.EncodeTile(fi, fs, cw)
	tileBytes = append(tileBytes, 0) // superframe anti-emulation trailer

	e.lastRec = fs.Rec
	e.frameNum++

	return EncodedFrame{
		Payload:   append(hdr, tileBytes...),
		FrameType: fi.FrameType,
		QIndex:    fi.QIndex,
		Number:    fi.Number,
	}, nil
}

// EncodeExistingFrame emits spec §8 scenario 1's show_existing_frame
// path: header only, referencing the most recently coded reconstruction.
func (e *Encoder) EncodeExistingFrame(slot int) EncodedFrame {
	fi := frame.NewFrameInvariants(e.cfg.Width, e.cfg.Height, e.cfg.Quantizer, e.cfg.Speed)
	fi.Number = e.frameNum
	fi.ShowExistingFrame = true
	fi.ExistingFrameIdx = slot

	hdr := header.WriteUncompressedHeader(e.seq, fi)
	e.frameNum++
	return EncodedFrame{Payload: hdr, FrameType: fi.FrameType, QIndex: fi.QIndex, Number: fi.Number}
}

// LastReconstruction returns the most recently produced reconstruction
// frame, or nil before the first EncodeFrame call.
func (e *Encoder) LastReconstruction() *frame.Frame {
	return e.lastRec
}

// copyPlane copies a raw row-major w x h byte plane into p's padded
// buffer at its logical (0, 0) origin.
func copyPlane(p *geom.Plane, src []byte, w, h int) {
	for y := 0; y < h; y++ {
		off := p.Index(0, y)
		copy(p.Data[off:off+w], src[y*w:(y+1)*w])
	}
}
