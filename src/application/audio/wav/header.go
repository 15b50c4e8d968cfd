// Package wav reads and writes 16-bit PCM WAV files as separator sources and sinks.
package wav

import (
	"io"
	"stem-separator-workers/src/lib/cerr"

	"github.com/cockroachdb/errors"
	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

var ErrUnsupportedFormat = errors.New("unsupported WAV format")

const (
	pcmFormat     = 1
	bitsPerSample = 16
	bytesPerValue = bitsPerSample / 8
)

type header struct {
	channels   int
	sampleRate int
	dataOffset int64
	dataSize   int64
}

func (h header) frameSize() int64 {
	return int64(h.channels * bytesPerValue)
}

func (h header) format() *audio.Format {
	return &audio.Format{NumChannels: h.channels, SampleRate: h.sampleRate}
}

// seekPCM parses the file's chunks and returns a decoder whose reader sits at
// the first byte of the data chunk.
func seekPCM(r io.ReaderAt, size int64) (*gowav.Decoder, *io.SectionReader, header, error) {
	section := io.NewSectionReader(r, 0, size)
	decoder := gowav.NewDecoder(section)

	if err := decoder.FwdToPCM(); err != nil {
		return nil, nil, header{}, cerr.Wrap(errors.Mark(err, ErrUnsupportedFormat)).Error("No data chunk found")
	}

	if err := decoder.Err(); err != nil {
		return nil, nil, header{}, cerr.Wrap(errors.Mark(err, ErrUnsupportedFormat)).Error("File is not a RIFF WAVE file")
	}

	if decoder.PCMChunk == nil {
		return nil, nil, header{}, cerr.Wrap(ErrUnsupportedFormat).Error("No data chunk found")
	}

	errctx := cerr.Fields(cerr.F{
		"audio_format":    decoder.WavAudioFormat,
		"channels":        decoder.NumChans,
		"bits_per_sample": decoder.BitDepth,
	})

	if decoder.WavAudioFormat != pcmFormat || decoder.BitDepth != bitsPerSample {
		return nil, nil, header{}, errctx.Wrap(ErrUnsupportedFormat).Error("Only 16-bit PCM is supported")
	}

	if decoder.NumChans != 1 && decoder.NumChans != 2 {
		return nil, nil, header{}, errctx.Wrap(ErrUnsupportedFormat).Error("Only mono or stereo is supported")
	}

	offset, err := section.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, nil, header{}, cerr.Wrap(err).Error("Failed to locate the data chunk")
	}

	return decoder, section, header{
		channels:   int(decoder.NumChans),
		sampleRate: int(decoder.SampleRate),
		dataOffset: offset,
		dataSize:   int64(decoder.PCMSize),
	}, nil
}

func readHeader(r io.ReaderAt, size int64) (header, error) {
	_, _, h, err := seekPCM(r, size)
	if err != nil {
		return header{}, err
	}

	if h.dataOffset+h.dataSize > size {
		h.dataSize = size - h.dataOffset
	}
	h.dataSize -= h.dataSize % h.frameSize()

	return h, nil
}
