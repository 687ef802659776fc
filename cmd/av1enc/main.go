// Command av1enc encodes a Y4M video stream into a raw AV1 IVF file
// using the intra-only encoder core in github.com/go-av1/av1enc.
package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	av1enc "github.com/go-av1/av1enc"
	"github.com/go-av1/av1enc/internal/container"
)

var log zerolog.Logger

func main() {
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	var (
		output    string
		reconPath string
		limit     int
		quantizer int
		speed     int
	)

	cmd := &cobra.Command{
		Use:   "av1enc INPUT",
		Short: "Encode a Y4M stream to an AV1 IVF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], output, reconPath, limit, quantizer, speed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output IVF path (required, \"-\" for stdout)")
	cmd.Flags().StringVarP(&reconPath, "recon", "r", "", "optional Y4M reconstruction output path")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "frame count limit (0 = unbounded)")
	cmd.Flags().IntVar(&quantizer, "quantizer", 100, "base quantizer index, 0-255")
	cmd.Flags().IntVarP(&speed, "speed", "s", 3, "encoder speed, 0-10")
	cmd.MarkFlagRequired("output")

	if err := cmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("av1enc: fatal")
	}
}

func run(inputPath, outputPath, reconPath string, limit, quantizer, speed int) error {
	if quantizer < 0 || quantizer > 255 {
		return errors.Errorf("av1enc: quantizer %d out of range 0-255", quantizer)
	}
	if speed < 0 || speed > 10 {
		return errors.Errorf("av1enc: speed %d out of range 0-10", speed)
	}

	in, err := openInput(inputPath)
	if err != nil {
		return errors.Wrap(err, "av1enc: open input")
	}
	defer in.Close()

	y4m, err := container.NewY4MReader(in)
	if err != nil {
		return errors.Wrap(err, "av1enc: parse Y4M stream")
	}

	out, err := openOutput(outputPath)
	if err != nil {
		return errors.Wrap(err, "av1enc: open output")
	}
	defer out.Close()

	ivf, err := container.NewIVFWriter(out, y4m.Width, y4m.Height)
	if err != nil {
		return errors.Wrap(err, "av1enc: write IVF header")
	}

	var reconWriter *container.Y4MWriter
	if reconPath != "" {
		reconFile, err := os.Create(reconPath)
		if err != nil {
			return errors.Wrap(err, "av1enc: open reconstruction output")
		}
		defer reconFile.Close()
		reconWriter = container.NewY4MWriter(reconFile, y4m.Width, y4m.Height)
	}

	enc := av1enc.NewEncoder(av1enc.Config{
		Width:     y4m.Width,
		Height:    y4m.Height,
		Quantizer: quantizer,
		Speed:     speed,
	})

	var bar *progressbar.ProgressBar
	if limit > 0 {
		bar = progressbar.Default(int64(limit))
	}

	frameCount := 0
	for limit == 0 || frameCount < limit {
		yp, up, vp, err := y4m.ReadFrame()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "av1enc: read frame")
		}

		ef, err := enc.EncodeFrame(yp, up, vp)
		if err != nil {
			return errors.Wrapf(err, "av1enc: encode frame %d", frameCount)
		}
		if err := ivf.WriteFrame(ef.Payload, uint64(frameCount)); err != nil {
			return errors.Wrapf(err, "av1enc: write frame %d", frameCount)
		}

		log.Info().
			Uint64("frame", ef.Number).
			Str("type", ef.FrameType.String()).
			Int("qindex", ef.QIndex).
			Int("bytes", len(ef.Payload)).
			Msg("encoded frame")

		if reconWriter != nil {
			rec := enc.LastReconstruction()
			var planes [3][]byte
			for i, pl := range rec.Planes {
				w, h := y4m.Width, y4m.Height
				if i > 0 {
					w, h = w/2, h/2
				}
				for row := 0; row < h; row++ {
					off := pl.Index(0, row)
					planes[i] = append(planes[i], pl.Data[off:off+w]...)
				}
			}
			if err := reconWriter.WriteFrame(planes[0], planes[1], planes[2]); err != nil {
				return errors.Wrap(err, "av1enc: write reconstruction frame")
			}
		}

		frameCount++
		if bar != nil {
			bar.Add(1)
		}
	}

	color.Green("av1enc: encoded %d frames to %s", frameCount, outputPath)
	return nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
