package wav

import (
	"context"
	"io"
	"os"
	"stem-separator-workers/src/application/separation/separator"
	"stem-separator-workers/src/lib/cerr"

	"github.com/go-audio/audio"
)

var _ separator.Source = Reader{}

// Reader serves arbitrary sample ranges of a WAV file without loading it whole.
// Mono files are served as identical left and right channels.
type Reader struct {
	source io.ReaderAt
	size   int64
	closer io.Closer
	header header
}

func Open(path string) (Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return Reader{}, cerr.Field("path", path).Wrap(err).Error("Failed to open WAV file")
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return Reader{}, cerr.Field("path", path).Wrap(err).Error("Failed to stat WAV file")
	}

	reader, err := NewReader(file, info.Size())
	if err != nil {
		_ = file.Close()
		return Reader{}, cerr.Field("path", path).Wrap(err).Error("Failed to read WAV file")
	}

	reader.closer = file
	return reader, nil
}

func NewReader(source io.ReaderAt, size int64) (Reader, error) {
	h, err := readHeader(source, size)
	if err != nil {
		return Reader{}, err
	}

	return Reader{
		source: source,
		size:   size,
		header: h,
	}, nil
}

func (r Reader) Close() error {
	if r.closer == nil {
		return nil
	}

	return r.closer.Close()
}

func (r Reader) Channels() int {
	return r.header.channels
}

func (r Reader) Length() int {
	return int(r.header.dataSize / r.header.frameSize())
}

func (r Reader) SampleRate() float64 {
	return float64(r.header.sampleRate)
}

func (r Reader) ReadStereo(ctx context.Context, start int, end int) ([]float32, []float32, error) {
	errctx := cerr.Field("start", start).Field("end", end).Field("length", r.Length())

	if err := ctx.Err(); err != nil {
		return nil, nil, errctx.Wrap(err).Error("Read cancelled")
	}

	if start < 0 || end < start || end > r.Length() {
		return nil, nil, errctx.Error("Requested range is outside of the WAV data")
	}

	count := end - start
	if count == 0 {
		return []float32{}, []float32{}, nil
	}

	decoder, section, _, err := seekPCM(r.source, r.size)
	if err != nil {
		return nil, nil, errctx.Wrap(err).Error("Failed to reopen the data chunk")
	}

	offset := r.header.dataOffset + int64(start)*r.header.frameSize()
	if _, err := section.Seek(offset, io.SeekStart); err != nil {
		return nil, nil, errctx.Wrap(err).Error("Failed to seek to samples")
	}

	buf := &audio.IntBuffer{
		Format:         r.header.format(),
		Data:           make([]int, count*r.header.channels),
		SourceBitDepth: bitsPerSample,
	}
	n, err := decoder.PCMBuffer(buf)
	if err != nil {
		return nil, nil, errctx.Wrap(err).Error("Failed to read samples")
	}

	if n < len(buf.Data) {
		return nil, nil, errctx.Field("samples_read", n).Error("Data chunk ended early")
	}

	raw := buf.Data
	left := make([]float32, count)
	right := make([]float32, count)
	for i := 0; i < count; i++ {
		if r.header.channels == 1 {
			left[i] = toFloat(raw[i])
			right[i] = left[i]
			continue
		}

		left[i] = toFloat(raw[2*i])
		right[i] = toFloat(raw[2*i+1])
	}

	return left, right, nil
}

func toFloat(sample int) float32 {
	return float32(sample) / 32768
}
