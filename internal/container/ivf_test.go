package container

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestIVFWriter_FileHeader(t *testing.T) {
	var buf bytes.Buffer
	if _, err := NewIVFWriter(&buf, 320, 240); err != nil {
		t.Fatalf("NewIVFWriter: %v", err)
	}

	hdr := buf.Bytes()
	if len(hdr) != 32 {
		t.Fatalf("file header length = %d, want 32", len(hdr))
	}
	if string(hdr[0:4]) != "DKIF" {
		t.Fatalf("magic = %q, want DKIF", hdr[0:4])
	}
	if string(hdr[8:12]) != "AV01" {
		t.Fatalf("fourcc = %q, want AV01", hdr[8:12])
	}
	if w := binary.LittleEndian.Uint16(hdr[12:14]); w != 320 {
		t.Errorf("width = %d, want 320", w)
	}
	if h := binary.LittleEndian.Uint16(hdr[14:16]); h != 240 {
		t.Errorf("height = %d, want 240", h)
	}
}

func TestIVFWriter_FrameHeader(t *testing.T) {
	var buf bytes.Buffer
	iw, err := NewIVFWriter(&buf, 64, 64)
	if err != nil {
		t.Fatalf("NewIVFWriter: %v", err)
	}
	buf.Reset()

	payload := []byte{1, 2, 3, 4, 5}
	if err := iw.WriteFrame(payload, 42); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	out := buf.Bytes()
	if len(out) != 12+len(payload) {
		t.Fatalf("frame output length = %d, want %d", len(out), 12+len(payload))
	}
	if l := binary.LittleEndian.Uint32(out[0:4]); int(l) != len(payload) {
		t.Errorf("payload length field = %d, want %d", l, len(payload))
	}
	if pts := binary.LittleEndian.Uint64(out[4:12]); pts != 42 {
		t.Errorf("pts field = %d, want 42", pts)
	}
	if !bytes.Equal(out[12:], payload) {
		t.Errorf("payload bytes mismatch")
	}
}
