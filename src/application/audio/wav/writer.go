package wav

import (
	"io"
	"math"
	"os"
	"stem-separator-workers/src/application/separation/separator"
	"stem-separator-workers/src/lib/cerr"

	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

var _ separator.Sink = &Writer{}

// Writer appends mono samples as 16-bit PCM, clipping to [-1, 1].
// The header's sizes are only correct after Close.
type Writer struct {
	encoder *gowav.Encoder
	closer  io.Closer
	format  *audio.Format
}

func Create(path string, sampleRate int) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, cerr.Field("path", path).Wrap(err).Error("Failed to create WAV file")
	}

	writer, err := NewWriter(file, sampleRate)
	if err != nil {
		_ = file.Close()
		return nil, cerr.Field("path", path).Wrap(err).Error("Failed to initialize WAV file")
	}

	writer.closer = file
	return writer, nil
}

// NewWriter writes the header straight away so that a writer closed without
// any samples still leaves a valid empty file behind.
func NewWriter(target io.WriteSeeker, sampleRate int) (*Writer, error) {
	writer := &Writer{
		encoder: gowav.NewEncoder(target, sampleRate, bitsPerSample, 1, pcmFormat),
		format:  &audio.Format{NumChannels: 1, SampleRate: sampleRate},
	}

	if err := writer.write([]int{}); err != nil {
		return nil, cerr.Field("sample_rate", sampleRate).Wrap(err).Error("Failed to write WAV header")
	}

	return writer, nil
}

func (w *Writer) Append(samples []float32) error {
	pcm := make([]int, len(samples))
	for i, sample := range samples {
		pcm[i] = int(toPCM(sample))
	}

	if err := w.write(pcm); err != nil {
		return cerr.Field("samples", len(samples)).Wrap(err).Error("Failed to write samples")
	}

	return nil
}

func (w *Writer) write(pcm []int) error {
	return w.encoder.Write(&audio.IntBuffer{
		Format:         w.format,
		Data:           pcm,
		SourceBitDepth: bitsPerSample,
	})
}

// Close rewrites the header with the final sizes.
func (w *Writer) Close() error {
	if err := w.encoder.Close(); err != nil {
		return cerr.Wrap(err).Error("Failed to finalize WAV header")
	}

	if w.closer == nil {
		return nil
	}

	if err := w.closer.Close(); err != nil {
		return cerr.Wrap(err).Error("Failed to close WAV file")
	}

	return nil
}

// CloseAll closes every writer, carrying on past failures, and returns the
// first error.
func CloseAll(writers ...*Writer) error {
	var firstErr error
	for i, writer := range writers {
		if err := writer.Close(); err != nil && firstErr == nil {
			firstErr = cerr.Field("writer_index", i).Wrap(err).Error("Failed to close WAV writer")
		}
	}

	return firstErr
}

func toPCM(sample float32) int16 {
	if math.IsNaN(float64(sample)) {
		return 0
	}

	clipped := math.Max(-1, math.Min(1, float64(sample)))
	return int16(math.Round(clipped * 32767))
}
