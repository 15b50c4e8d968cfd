// Package spectrogram holds the time-frequency data model produced by the
// STFT engine and the tensor layouts exchanged with the separation model.
package spectrogram

import (
	"fmt"
	"stem-separator-workers/src/lib/cerr"
)

// Frame is one analysis frame. Real and Imag always have the same length.
type Frame struct {
	Real []float32
	Imag []float32
}

// Spectrogram is an ordered sequence of frames sharing one bin count.
type Spectrogram struct {
	Frames []Frame
}

func New(frameCount int, bins int) Spectrogram {
	frames := make([]Frame, frameCount)
	for i := range frames {
		frames[i] = Frame{
			Real: make([]float32, bins),
			Imag: make([]float32, bins),
		}
	}

	return Spectrogram{Frames: frames}
}

func (s Spectrogram) FrameCount() int {
	return len(s.Frames)
}

// Bins is the per-frame bin count, zero for an empty spectrogram.
func (s Spectrogram) Bins() int {
	if len(s.Frames) == 0 {
		return 0
	}

	return len(s.Frames[0].Real)
}

func (s Spectrogram) Validate() error {
	bins := s.Bins()
	for i, frame := range s.Frames {
		if len(frame.Real) != bins || len(frame.Imag) != bins {
			return cerr.Field("frame_index", i).
				Wrap(&ShapeError{
					What:     "spectrogram frame",
					Expected: []int{bins, bins},
					Actual:   []int{len(frame.Real), len(frame.Imag)},
				}).
				Error("Spectrogram frames have inconsistent bin counts")
		}
	}

	return nil
}

// ShapeError reports a tensor or frame whose shape does not match what was expected.
type ShapeError struct {
	What     string
	Expected []int
	Actual   []int
}

func (s *ShapeError) Error() string {
	return fmt.Sprintf("unexpected %s shape: expected %v, got %v", s.What, s.Expected, s.Actual)
}
