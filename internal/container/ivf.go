// Package container implements the Y4M frame source, the IVF output
// muxer, and the optional Y4M reconstruction sink spec 4.K names,
// grounded on the teacher's container (chunk header parsing/writing) and
// mux (muxer assembling a container from frames) packages — the same
// tagged-header-plus-length-prefixed-chunks shape, applied to Y4M/IVF's
// text-header-then-binary-chunks format instead of WebP's RIFF.
package container

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// IVFWriter emits the IVF container spec 4.K/§6 describes: a 32-byte
// file header once, then a 12-byte frame header (length + PTS) ahead of
// every payload.
type IVFWriter struct {
	w             io.Writer
	width, height int
	frameCount    uint32
}

// NewIVFWriter writes the 32-byte IVF file header immediately and
// returns a writer ready for per-frame payloads.
func NewIVFWriter(w io.Writer, width, height int) (*IVFWriter, error) {
	iw := &IVFWriter{w: w, width: width, height: height}
	hdr := make([]byte, 32)
	copy(hdr[0:4], "DKIF")
	binary.LittleEndian.PutUint16(hdr[4:6], 0)  // version
	binary.LittleEndian.PutUint16(hdr[6:8], 32) // header length
	copy(hdr[8:12], "AV01")
	binary.LittleEndian.PutUint16(hdr[12:14], uint16(width))
	binary.LittleEndian.PutUint16(hdr[14:16], uint16(height))
	binary.LittleEndian.PutUint32(hdr[16:20], 1) // timebase num
	binary.LittleEndian.PutUint32(hdr[20:24], 1) // timebase den
	binary.LittleEndian.PutUint32(hdr[24:28], 0) // frame count, unused
	binary.LittleEndian.PutUint32(hdr[28:32], 0)
	if _, err := iw.w.Write(hdr); err != nil {
		return nil, errors.Wrap(err, "container: write IVF file header")
	}
	return iw, nil
}

// WriteFrame appends one frame's 12-byte header (payload length, PTS)
// followed by the payload bytes.
func (iw *IVFWriter) WriteFrame(payload []byte, pts uint64) error {
	hdr := make([]byte, 12)
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(len(payload)))
	binary.LittleEndian.PutUint64(hdr[4:12], pts)
	if _, err := iw.w.Write(hdr); err != nil {
		return errors.Wrapf(err, "container: write IVF frame header for frame %d", iw.frameCount)
	}
	if _, err := iw.w.Write(payload); err != nil {
		return errors.Wrapf(err, "container: write IVF payload for frame %d", iw.frameCount)
	}
	iw.frameCount++
	return nil
}
