package spectrogram

import (
	"math"
	"stem-separator-workers/src/lib/cerr"
)

const (
	realChannel = 0
	imagChannel = 1
)

// Tensor is a dense row-major float32 array.
type Tensor struct {
	Shape []int
	Data  []float32
}

func NewTensor(shape ...int) Tensor {
	size := 1
	for _, dim := range shape {
		size *= dim
	}

	return Tensor{
		Shape: append([]int{}, shape...),
		Data:  make([]float32, size),
	}
}

func (t Tensor) Rank() int {
	return len(t.Shape)
}

func (t Tensor) offset(index []int) int {
	if len(index) != len(t.Shape) {
		panic("tensor index rank does not match tensor rank")
	}

	offset := 0
	for i, idx := range index {
		if idx < 0 || idx >= t.Shape[i] {
			panic("tensor index out of range")
		}
		offset = offset*t.Shape[i] + idx
	}

	return offset
}

func (t Tensor) At(index ...int) float32 {
	return t.Data[t.offset(index)]
}

func (t Tensor) Set(value float32, index ...int) {
	t.Data[t.offset(index)] = value
}

func (t Tensor) HasShape(shape ...int) bool {
	if len(shape) != len(t.Shape) {
		return false
	}

	for i := range shape {
		if shape[i] != t.Shape[i] {
			return false
		}
	}

	return true
}

// CheckShape returns a *ShapeError when the tensor is not exactly of the given shape,
// including a data length that disagrees with its declared shape.
func (t Tensor) CheckShape(what string, shape ...int) error {
	size := 1
	for _, dim := range t.Shape {
		size *= dim
	}

	if !t.HasShape(shape...) || size != len(t.Data) {
		return &ShapeError{
			What:     what,
			Expected: append([]int{}, shape...),
			Actual:   append([]int{}, t.Shape...),
		}
	}

	return nil
}

// ToComplexTensor lays a (time, frequency) spectrogram out as a
// (frequency, time, realOrImag) tensor.
func ToComplexTensor(s Spectrogram) (Tensor, error) {
	if err := s.Validate(); err != nil {
		return Tensor{}, cerr.Wrap(err).Error("Cannot convert an invalid spectrogram to a tensor")
	}

	frames, bins := s.FrameCount(), s.Bins()
	tensor := NewTensor(bins, frames, 2)

	for t, frame := range s.Frames {
		for f := 0; f < bins; f++ {
			base := (f*frames + t) * 2
			tensor.Data[base+realChannel] = frame.Real[f]
			tensor.Data[base+imagChannel] = frame.Imag[f]
		}
	}

	return tensor, nil
}

// FromComplexTensor is the inverse of ToComplexTensor.
func FromComplexTensor(tensor Tensor) (Spectrogram, error) {
	if tensor.Rank() != 3 || tensor.Shape[2] != 2 {
		return Spectrogram{}, &ShapeError{
			What:     "complex tensor",
			Expected: []int{-1, -1, 2},
			Actual:   append([]int{}, tensor.Shape...),
		}
	}

	bins, frames := tensor.Shape[0], tensor.Shape[1]
	if err := tensor.CheckShape("complex tensor", bins, frames, 2); err != nil {
		return Spectrogram{}, err
	}

	s := New(frames, bins)
	for f := 0; f < bins; f++ {
		for t := 0; t < frames; t++ {
			base := (f*frames + t) * 2
			s.Frames[t].Real[f] = tensor.Data[base+realChannel]
			s.Frames[t].Imag[f] = tensor.Data[base+imagChannel]
		}
	}

	return s, nil
}

// StereoMagnitude stacks the magnitudes of two channels as a (channel, frequency, time) tensor.
func StereoMagnitude(left Spectrogram, right Spectrogram) (Tensor, error) {
	if err := checkStereo(left, right); err != nil {
		return Tensor{}, err
	}

	frames, bins := left.FrameCount(), left.Bins()
	magnitude := NewTensor(2, bins, frames)

	for c, channel := range []Spectrogram{left, right} {
		for t, frame := range channel.Frames {
			for f := 0; f < bins; f++ {
				re, im := float64(frame.Real[f]), float64(frame.Imag[f])
				magnitude.Data[(c*bins+f)*frames+t] = float32(math.Sqrt(re*re + im*im))
			}
		}
	}

	return magnitude, nil
}

// ApplyMask weights each channel's complex spectrogram by its slice of a
// (channel, frequency, time) mask and averages the two channels down to mono.
func ApplyMask(left Spectrogram, right Spectrogram, mask Tensor) (Spectrogram, error) {
	if err := checkStereo(left, right); err != nil {
		return Spectrogram{}, err
	}

	frames, bins := left.FrameCount(), left.Bins()
	if err := mask.CheckShape("mask", 2, bins, frames); err != nil {
		return Spectrogram{}, err
	}

	mono := New(frames, bins)
	for t := 0; t < frames; t++ {
		l, r, out := left.Frames[t], right.Frames[t], mono.Frames[t]
		for f := 0; f < bins; f++ {
			ml := mask.Data[f*frames+t]
			mr := mask.Data[(bins+f)*frames+t]
			out.Real[f] = (ml*l.Real[f] + mr*r.Real[f]) / 2
			out.Imag[f] = (ml*l.Imag[f] + mr*r.Imag[f]) / 2
		}
	}

	return mono, nil
}

func checkStereo(left Spectrogram, right Spectrogram) error {
	if err := left.Validate(); err != nil {
		return cerr.Wrap(err).Error("Left channel spectrogram is invalid")
	}

	if err := right.Validate(); err != nil {
		return cerr.Wrap(err).Error("Right channel spectrogram is invalid")
	}

	if left.FrameCount() != right.FrameCount() || left.Bins() != right.Bins() {
		return &ShapeError{
			What:     "stereo spectrogram pair",
			Expected: []int{left.FrameCount(), left.Bins()},
			Actual:   []int{right.FrameCount(), right.Bins()},
		}
	}

	return nil
}
