package stft_test

import (
	"math"
	"stem-separator-workers/src/application/separation/spectrogram"
	"stem-separator-workers/src/application/separation/stft"

	"github.com/cockroachdb/errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

func testSignal(length int) []float32 {
	signal := make([]float32, length)
	for i := range signal {
		x := float64(i)
		signal[i] = float32(0.4*math.Sin(2*math.Pi*x/37) + 0.3*math.Cos(2*math.Pi*x/11) + 0.1*math.Sin(x*x/500))
	}
	return signal
}

func peakBin(frame spectrogram.Frame) int {
	peak, peakMagnitude := 0, 0.0
	for f := range frame.Real {
		magnitude := math.Hypot(float64(frame.Real[f]), float64(frame.Imag[f]))
		if magnitude > peakMagnitude {
			peak, peakMagnitude = f, magnitude
		}
	}
	return peak
}

var _ = Describe("Engine", func() {
	Describe("Construction", func() {
		It("accepts the default model configuration", func() {
			engine, err := stft.New(4096, 1024, 1024)
			Expect(err).NotTo(HaveOccurred())
			Expect(engine.FFTSize()).To(Equal(4096))
			Expect(engine.HopLength()).To(Equal(1024))
			Expect(engine.FrequencyLimit()).To(Equal(1024))
		})

		DescribeTable("rejects unusable configurations",
			func(fftSize int, hopLength int, frequencyLimit int) {
				_, err := stft.New(fftSize, hopLength, frequencyLimit)
				Expect(errors.Is(err, stft.ErrInvalidConfig)).To(BeTrue())
			},
			Entry("FFT size not a power of two", 1000, 250, 100),
			Entry("zero hop length", 1024, 0, 100),
			Entry("hop longer than the FFT", 1024, 2048, 100),
			Entry("frequency limit above Nyquist", 1024, 256, 514),
			Entry("zero frequency limit", 1024, 256, 0),
		)
	})

	Describe("Forward", func() {
		var engine stft.Engine

		BeforeEach(func() {
			var err error
			engine, err = stft.New(256, 64, 100)
			Expect(err).NotTo(HaveOccurred())
		})

		It("produces one frame per hop plus one, truncated to the frequency limit", func() {
			s, err := engine.Forward(testSignal(1000))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.FrameCount()).To(Equal(1000/64 + 1))
			Expect(s.FrameCount()).To(Equal(engine.FrameCount(1000)))
			Expect(s.Bins()).To(Equal(100))
		})

		It("fills a full model chunk with exactly the clamping frame count", func() {
			engine, err := stft.New(4096, 1024, 1024)
			Expect(err).NotTo(HaveOccurred())
			Expect(engine.FrameCount(1024 * 215)).To(Equal(216))

			silence := make([]float32, 1024*215)
			s, err := engine.Forward(silence)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.FrameCount()).To(Equal(216))
			Expect(s.Bins()).To(Equal(1024))
			for _, frame := range s.Frames {
				Expect(frame.Real).To(HaveLen(1024))
				Expect(frame.Imag).To(HaveLen(1024))
			}

			waveform, err := engine.Inverse(s)
			Expect(err).NotTo(HaveOccurred())
			Expect(waveform).To(HaveLen(220160))
			for _, sample := range waveform {
				Expect(sample).To(BeNumerically("~", 0, 1e-6))
			}
		})

		It("puts a pure tone in its bin", func() {
			signal := make([]float32, 2048)
			for i := range signal {
				signal[i] = float32(math.Sin(2 * math.Pi * 8 * float64(i) / 256))
			}

			s, err := engine.Forward(signal)
			Expect(err).NotTo(HaveOccurred())
			Expect(peakBin(s.Frames[s.FrameCount()/2])).To(Equal(8))
		})

		It("produces a single frame for an empty waveform", func() {
			s, err := engine.Forward([]float32{})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.FrameCount()).To(Equal(1))
		})
	})

	Describe("Inverse", func() {
		var engine stft.Engine

		BeforeEach(func() {
			var err error
			engine, err = stft.New(256, 64, 129)
			Expect(err).NotTo(HaveOccurred())
		})

		It("reconstructs the waveform when no bins are dropped", func() {
			signal := testSignal(64 * 20)

			s, err := engine.Forward(signal)
			Expect(err).NotTo(HaveOccurred())

			reconstructed, err := engine.Inverse(s)
			Expect(err).NotTo(HaveOccurred())
			Expect(reconstructed).To(HaveLen(len(signal)))

			for i := range signal {
				Expect(reconstructed[i]).To(BeNumerically("~", signal[i], 1e-4))
			}
		})

		It("reconstructs the waveform at the model's FFT size and hop", func() {
			engine, err := stft.New(4096, 1024, 2049)
			Expect(err).NotTo(HaveOccurred())
			signal := testSignal(1024 * 40)

			s, err := engine.Forward(signal)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.FrameCount()).To(Equal(41))

			reconstructed, err := engine.Inverse(s)
			Expect(err).NotTo(HaveOccurred())
			Expect(reconstructed).To(HaveLen(len(signal)))

			for i := range signal {
				Expect(reconstructed[i]).To(BeNumerically("~", signal[i], 1e-4))
			}
		})

		It("returns hop times frames minus one samples", func() {
			s := spectrogram.New(10, 129)
			waveform, err := engine.Inverse(s)
			Expect(err).NotTo(HaveOccurred())
			Expect(waveform).To(HaveLen(64 * 9))
		})

		It("zero-fills bins above the spectrogram's bin count", func() {
			s := spectrogram.New(5, 20)
			waveform, err := engine.Inverse(s)
			Expect(err).NotTo(HaveOccurred())
			for _, sample := range waveform {
				Expect(sample).To(BeZero())
			}
		})

		It("rejects an empty spectrogram", func() {
			_, err := engine.Inverse(spectrogram.Spectrogram{})
			Expect(err).To(HaveOccurred())
		})

		It("rejects more bins than the FFT produces", func() {
			_, err := engine.Inverse(spectrogram.New(4, 130))
			Expect(err).To(HaveOccurred())
		})

		It("rejects ragged frames", func() {
			s := spectrogram.New(4, 129)
			s.Frames[2].Real = s.Frames[2].Real[:10]
			_, err := engine.Inverse(s)
			Expect(err).To(HaveOccurred())
		})
	})
})
