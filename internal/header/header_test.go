package header

import (
	"testing"

	"github.com/go-av1/av1enc/internal/frame"
)

func TestWriteUncompressedHeader_KeyFrame_ByteAligned(t *testing.T) {
	seq := frame.NewSequence()
	fi := frame.NewFrameInvariants(64, 64, 100, 3)

	data := WriteUncompressedHeader(seq, fi)
	if len(data) == 0 {
		t.Fatal("expected non-empty header")
	}
}

func TestWriteUncompressedHeader_ShowExistingFrame_Short(t *testing.T) {
	seq := frame.NewSequence()
	fi := frame.NewFrameInvariants(64, 64, 100, 3)
	fi.ShowExistingFrame = true
	fi.ExistingFrameIdx = 2

	data := WriteUncompressedHeader(seq, fi)
	// 2 + 2 + 1 + 3 = 8 bits, exactly one byte once aligned.
	if len(data) != 1 {
		t.Fatalf("show_existing_frame header: got %d bytes, want 1", len(data))
	}
}

func TestGlobalMvBits_MatchesResolvedOpenQuestion(t *testing.T) {
	if got := globalMvBits(true); got != 9 {
		t.Errorf("globalMvBits(true) = %d, want 9", got)
	}
	if got := globalMvBits(false); got != 8 {
		t.Errorf("globalMvBits(false) = %d, want 8", got)
	}
	if got := globalMvBitsDiff(true); got != 10 {
		t.Errorf("globalMvBitsDiff(true) = %d, want 10", got)
	}
	if got := globalMvBitsDiff(false); got != 9 {
		t.Errorf("globalMvBitsDiff(false) = %d, want 9", got)
	}
}
