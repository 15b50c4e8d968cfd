package separator

import (
	"context"
	"stem-separator-workers/src/lib/cerr"
)

// Source serves stereo samples for any contiguous sub-range of [0, Length()).
type Source interface {
	Length() int
	SampleRate() float64
	ReadStereo(ctx context.Context, start int, end int) (left []float32, right []float32, err error)
}

// Sink receives one mono chunk at a time; call order is the final sample order.
type Sink interface {
	Append(samples []float32) error
}

var _ Source = Waveform{}

// Waveform is an in-memory stereo Source.
type Waveform struct {
	Left  []float32
	Right []float32
	Rate  float64
}

func (w Waveform) Length() int {
	if len(w.Left) < len(w.Right) {
		return len(w.Left)
	}

	return len(w.Right)
}

func (w Waveform) SampleRate() float64 {
	return w.Rate
}

func (w Waveform) ReadStereo(_ context.Context, start int, end int) ([]float32, []float32, error) {
	if start < 0 || end < start || end > w.Length() {
		return nil, nil, cerr.Field("start", start).
			Field("end", end).
			Field("length", w.Length()).
			Error("Requested range is outside of the waveform")
	}

	left := append([]float32{}, w.Left[start:end]...)
	right := append([]float32{}, w.Right[start:end]...)
	return left, right, nil
}

var _ Sink = &MemorySink{}

type MemorySink struct {
	Samples []float32
}

func (m *MemorySink) Append(samples []float32) error {
	m.Samples = append(m.Samples, samples...)
	return nil
}
