// Package stft implements the forward and inverse short-time Fourier transform
// used around the separation model: Hann-windowed frames with weighted
// overlap-add reconstruction.
package stft

import (
	"math"
	"stem-separator-workers/src/application/separation/spectrogram"
	"stem-separator-workers/src/lib/cerr"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// ErrInvalidConfig marks construction failures caused by an unusable
// fftSize/hopLength/frequencyLimit combination.
var ErrInvalidConfig = errors.New("invalid STFT configuration")

// samples whose accumulated window energy is at or below this are left unnormalized
const windowEnergyEpsilon = 1e-10

type Engine struct {
	fftSize        int
	hopLength      int
	frequencyLimit int

	window        []float64
	windowSquared []float64
}

func New(fftSize int, hopLength int, frequencyLimit int) (Engine, error) {
	errctx := cerr.Fields(cerr.F{
		"fft_size":        fftSize,
		"hop_length":      hopLength,
		"frequency_limit": frequencyLimit,
	})

	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return Engine{}, errctx.Wrap(ErrInvalidConfig).Error("FFT size must be a power of two")
	}

	if hopLength <= 0 || hopLength > fftSize {
		return Engine{}, errctx.Wrap(ErrInvalidConfig).Error("Hop length must be within (0, fftSize]")
	}

	if frequencyLimit <= 0 || frequencyLimit > fftSize/2+1 {
		return Engine{}, errctx.Wrap(ErrInvalidConfig).Error("Frequency limit exceeds the Nyquist bin count")
	}

	window := hannWindow(fftSize)
	windowSquared := make([]float64, fftSize)
	floats.MulTo(windowSquared, window, window)

	return Engine{
		fftSize:        fftSize,
		hopLength:      hopLength,
		frequencyLimit: frequencyLimit,
		window:         window,
		windowSquared:  windowSquared,
	}, nil
}

func (e Engine) FFTSize() int {
	return e.fftSize
}

func (e Engine) HopLength() int {
	return e.hopLength
}

func (e Engine) FrequencyLimit() int {
	return e.frequencyLimit
}

// FrameCount is the number of frames Forward produces for a waveform of the given length.
func (e Engine) FrameCount(length int) int {
	paddedLength := length + e.fftSize
	return (paddedLength-e.fftSize)/e.hopLength + 1
}

func (e Engine) Forward(waveform []float32) (spectrogram.Spectrogram, error) {
	half := e.fftSize / 2

	padded := make([]float64, len(waveform)+e.fftSize)
	for i, sample := range waveform {
		padded[half+i] = float64(sample)
	}

	frameCount := e.FrameCount(len(waveform))
	result := spectrogram.New(frameCount, e.frequencyLimit)

	fft := fourier.NewFFT(e.fftSize)
	frame := make([]float64, e.fftSize)
	coeffs := make([]complex128, e.fftSize/2+1)

	for t := 0; t < frameCount; t++ {
		start := t * e.hopLength
		copy(frame, padded[start:start+e.fftSize])
		floats.Mul(frame, e.window)

		coeffs = fft.Coefficients(coeffs, frame)

		out := result.Frames[t]
		for f := 0; f < e.frequencyLimit; f++ {
			out.Real[f] = float32(real(coeffs[f]))
			out.Imag[f] = float32(imag(coeffs[f]))
		}
	}

	return result, nil
}

func (e Engine) Inverse(s spectrogram.Spectrogram) ([]float32, error) {
	if s.FrameCount() == 0 {
		return nil, cerr.Error("Cannot invert an empty spectrogram")
	}

	if err := s.Validate(); err != nil {
		return nil, cerr.Wrap(err).Error("Cannot invert an invalid spectrogram")
	}

	bins := s.Bins()
	if bins > e.fftSize/2+1 {
		return nil, cerr.Field("bins", bins).Field("fft_size", e.fftSize).
			Error("Spectrogram has more bins than the FFT size allows")
	}

	frameCount := s.FrameCount()
	outputLength := e.hopLength*(frameCount-1) + e.fftSize
	output := make([]float64, outputLength)
	energy := make([]float64, outputLength)

	fft := fourier.NewFFT(e.fftSize)
	coeffs := make([]complex128, e.fftSize/2+1)
	frame := make([]float64, e.fftSize)
	scale := 1 / float64(e.fftSize)

	for t, in := range s.Frames {
		for f := 0; f < bins; f++ {
			coeffs[f] = complex(float64(in.Real[f]), float64(in.Imag[f]))
		}

		frame = fft.Sequence(frame, coeffs)

		start := t * e.hopLength
		for i, v := range frame {
			output[start+i] += v * scale * e.window[i]
			energy[start+i] += e.windowSquared[i]
		}
	}

	for i := range output {
		if energy[i] > windowEnergyEpsilon {
			output[i] /= energy[i]
		}
	}

	half := e.fftSize / 2
	trimmed := output[half : outputLength-half]

	result := make([]float32, len(trimmed))
	for i, v := range trimmed {
		result[i] = float32(v)
	}

	return result, nil
}

// hannWindow is a periodic Hann window scaled to unit mean square.
func hannWindow(size int) []float64 {
	window := make([]float64, size)
	for n := range window {
		window[n] = 0.5 * (1 - math.Cos(2*math.Pi*float64(n)/float64(size)))
	}

	floats.Scale(math.Sqrt(8.0/3.0), window)
	return window
}
