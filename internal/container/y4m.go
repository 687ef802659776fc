package container

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// acceptedColorspaces is the C420 family spec 4.K accepts; anything else
// is a fatal error carrying the rejected name (spec.md §8 scenario 6).
var acceptedColorspaces = map[string]bool{
	"420": true, "420jpeg": true, "420paldv": true, "420mpeg2": true,
}

// Y4MReader parses a YUV4MPEG2 stream header and yields raw Y/U/V frame
// planes, grounded on the teacher's tagged-header parsing shape applied
// to Y4M's space-separated `FIELDvalue` tags instead of RIFF chunk IDs.
// Only the 8-bit C420 family is accepted (spec §1's non-goal on
// high-bit-depth pipelines rules out the p10/p12 variants).
type Y4MReader struct {
	r             *bufio.Reader
	Width, Height int
	Colorspace    string
}

// NewY4MReader reads and validates the `YUV4MPEG2 ...` header line.
func NewY4MReader(r io.Reader) (*Y4MReader, error) {
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil {
		return nil, errors.Wrap(err, "container: read Y4M header")
	}
	fields := strings.Fields(strings.TrimRight(line, "\n"))
	if len(fields) == 0 || fields[0] != "YUV4MPEG2" {
		return nil, errors.New("container: not a YUV4MPEG2 stream")
	}

	yr := &Y4MReader{r: br, Colorspace: "420"}
	for _, f := range fields[1:] {
		if len(f) < 2 {
			continue
		}
		tag, val := f[0], f[1:]
		switch tag {
		case 'W':
			yr.Width, err = strconv.Atoi(val)
		case 'H':
			yr.Height, err = strconv.Atoi(val)
		case 'C':
			yr.Colorspace = val
		}
		if err != nil {
			return nil, errors.Wrapf(err, "container: parse Y4M header field %q", f)
		}
	}

	if !acceptedColorspaces[yr.Colorspace] {
		return nil, errors.Errorf("container: unsupported Y4M colorspace %q, only C420 family is accepted", yr.Colorspace)
	}
	return yr, nil
}

// ReadFrame reads one `FRAME` chunk and returns its Y, U, V planes.
// Returns io.EOF when the stream is exhausted.
func (yr *Y4MReader) ReadFrame() (y, u, v []byte, err error) {
	line, err := yr.r.ReadString('\n')
	if err != nil {
		return nil, nil, nil, err
	}
	if !strings.HasPrefix(line, "FRAME") {
		return nil, nil, nil, errors.Errorf("container: expected FRAME marker, got %q", strings.TrimSpace(line))
	}

	cw, ch := yr.Width/2, yr.Height/2
	rawY := make([]byte, yr.Width*yr.Height)
	rawU := make([]byte, cw*ch)
	rawV := make([]byte, cw*ch)
	if _, err := io.ReadFull(yr.r, rawY); err != nil {
		return nil, nil, nil, errors.Wrap(err, "container: read Y4M Y plane")
	}
	if _, err := io.ReadFull(yr.r, rawU); err != nil {
		return nil, nil, nil, errors.Wrap(err, "container: read Y4M U plane")
	}
	if _, err := io.ReadFull(yr.r, rawV); err != nil {
		return nil, nil, nil, errors.Wrap(err, "container: read Y4M V plane")
	}

	return rawY, rawU, rawV, nil
}

// Y4MWriter is the optional reconstruction sink spec 4.K names: it
// mirrors the reader's header format and writes 8-bit planes only.
type Y4MWriter struct {
	w             io.Writer
	width, height int
	headerWritten bool
}

// NewY4MWriter returns a writer that will emit the YUV4MPEG2 header on
// its first WriteFrame call.
func NewY4MWriter(w io.Writer, width, height int) *Y4MWriter {
	return &Y4MWriter{w: w, width: width, height: height}
}

// WriteFrame appends one reconstructed frame's Y/U/V planes, writing the
// stream header first if this is the first call.
func (yw *Y4MWriter) WriteFrame(y, u, v []byte) error {
	if !yw.headerWritten {
		hdr := fmt.Sprintf("YUV4MPEG2 W%d H%d F25:1 Ip A1:1 C420\n", yw.width, yw.height)
		if _, err := io.WriteString(yw.w, hdr); err != nil {
			return errors.Wrap(err, "container: write Y4M stream header")
		}
		yw.headerWritten = true
	}
	if _, err := io.WriteString(yw.w, "FRAME\n"); err != nil {
		return errors.Wrap(err, "container: write Y4M frame marker")
	}
	for _, plane := range [][]byte{y, u, v} {
		if _, err := yw.w.Write(plane); err != nil {
			return errors.Wrap(err, "container: write Y4M plane")
		}
	}
	return nil
}
