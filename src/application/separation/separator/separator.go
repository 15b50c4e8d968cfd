// Package separator splits a stereo recording into stems chunk by chunk:
// forward STFT, model masks, masked inverse STFT.
package separator

import (
	"context"
	"stem-separator-workers/src/application/separation/spectrogram"
	"stem-separator-workers/src/application/separation/stem"
	"stem-separator-workers/src/application/separation/stft"
	"stem-separator-workers/src/lib/cerr"

	"golang.org/x/sync/errgroup"
)

type Separator[L stem.Layout] struct {
	config Config
	engine stft.Engine
	model  Model[L]
}

func NewSeparator[L stem.Layout](config Config, model Model[L]) (Separator[L], error) {
	engine, err := config.newEngine()
	if err != nil {
		return Separator[L]{}, err
	}

	return Separator[L]{
		config: config,
		engine: engine,
		model:  model,
	}, nil
}

func (s Separator[L]) Config() Config {
	return s.config
}

// SeparateChunk separates at most ChunkSize samples per channel and returns one
// mono waveform per stem, each exactly as long as the input.
func (s Separator[L]) SeparateChunk(ctx context.Context, left []float32, right []float32) (stem.Stems[L, []float32], error) {
	length := len(left)
	errctx := cerr.Field("chunk_length", length)

	if len(right) != length {
		return stem.Stems[L, []float32]{}, errctx.Field("right_length", len(right)).
			Error("Left and right channels differ in length")
	}

	if length > s.config.ChunkSize() {
		return stem.Stems[L, []float32]{}, errctx.Field("chunk_size", s.config.ChunkSize()).
			Error("Chunk is longer than the model can take")
	}

	if length == 0 {
		return stem.FromFunc[L](func(stem.Name) []float32 { return []float32{} }), nil
	}

	leftSpec, rightSpec, err := s.forwardStereo(left, right)
	if err != nil {
		return stem.Stems[L, []float32]{}, errctx.Wrap(err).Error("Failed to transform chunk")
	}

	magnitude, err := spectrogram.StereoMagnitude(leftSpec, rightSpec)
	if err != nil {
		return stem.Stems[L, []float32]{}, errctx.Wrap(err).Error("Failed to compute magnitude")
	}

	masks, err := s.model.Predict(ctx, magnitude)
	if err != nil {
		return stem.Stems[L, []float32]{}, errctx.Wrap(err).Error("Model failed to predict masks")
	}

	return stem.AsyncMap(ctx, masks, func(ctx context.Context, name stem.Name, mask spectrogram.Tensor) ([]float32, error) {
		masked, err := spectrogram.ApplyMask(leftSpec, rightSpec, mask)
		if err != nil {
			return nil, cerr.Wrap(err).Error("Failed to apply mask")
		}

		waveform, err := s.engine.Inverse(masked)
		if err != nil {
			return nil, cerr.Wrap(err).Error("Failed to invert masked spectrogram")
		}

		return fitLength(waveform, length), nil
	})
}

func (s Separator[L]) forwardStereo(left []float32, right []float32) (spectrogram.Spectrogram, spectrogram.Spectrogram, error) {
	padded := s.config.ChunkSize()
	var leftSpec, rightSpec spectrogram.Spectrogram

	var group errgroup.Group
	group.Go(func() error {
		var err error
		leftSpec, err = s.engine.Forward(fitLength(left, padded))
		return err
	})
	group.Go(func() error {
		var err error
		rightSpec, err = s.engine.Forward(fitLength(right, padded))
		return err
	})

	if err := group.Wait(); err != nil {
		return spectrogram.Spectrogram{}, spectrogram.Spectrogram{}, err
	}

	return leftSpec, rightSpec, nil
}

// fitLength zero-pads or truncates samples to exactly length, always into a new slice.
func fitLength(samples []float32, length int) []float32 {
	out := make([]float32, length)
	copy(out, samples)
	return out
}
